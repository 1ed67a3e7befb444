// Package fail classifies errors into the three kinds the dispatcher distinguishes.
package fail

import (
	"errors"
	"fmt"
	"strings"
)

type Type int

const (
	// TypeBuildpack is an error produced by buildpack logic.
	TypeBuildpack Type = iota
	// TypeFramework is a failure of the framework itself, e.g. an unreadable layer file.
	TypeFramework
	// TypeFailedDetection is the expected, non-error outcome of a detect that does not apply.
	TypeFailedDetection
)

func (t Type) String() string {
	switch t {
	case TypeFramework:
		return "framework"
	case TypeFailedDetection:
		return "failed detection"
	default:
		return "buildpack"
	}
}

type Error struct {
	Err    error
	Type   Type
	Action []string
}

func (e *Error) Error() string {
	switch e.Type {
	case TypeFramework:
		message := "failed to " + strings.Join(e.Action, " ")
		if e.Err == nil {
			return message
		}
		return fmt.Sprintf("%s: %s", message, e.Err)
	case TypeFailedDetection:
		return "detection failed"
	default:
		if e.Err == nil {
			return "buildpack failed"
		}
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Cause() error {
	return e.Err
}

// Framework marks err as a framework failure that happened while performing action.
func Framework(err error, action ...string) *Error {
	return &Error{Err: err, Type: TypeFramework, Action: action}
}

// Buildpack marks err as a buildpack logic error unless it already carries a classification.
func Buildpack(err error) error {
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Err: err, Type: TypeBuildpack}
}

func FailedDetection() *Error {
	return &Error{Type: TypeFailedDetection}
}

// TypeOf returns the classification of err. Unclassified errors are buildpack errors.
// A framework error anywhere in the chain wins, so wrapping never downgrades it.
func TypeOf(err error) Type {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if fe, ok := e.(*Error); ok && fe.Type == TypeFramework {
			return TypeFramework
		}
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Type
	}
	return TypeBuildpack
}

func IsFramework(err error) bool {
	return err != nil && TypeOf(err) == TypeFramework
}
