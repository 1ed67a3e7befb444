// Package exit maps error kinds to the process exit codes the lifecycle expects.
package exit

import (
	"os"

	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/log"
)

const (
	CodeSuccess         = 0
	CodeBuildpack       = 1
	CodeFailedDetection = 100
	CodeFramework       = 254
)

var codes = map[fail.Type]int{
	fail.TypeBuildpack:       CodeBuildpack,
	fail.TypeFailedDetection: CodeFailedDetection,
	fail.TypeFramework:       CodeFramework,
}

func CodeFor(errType fail.Type) int {
	if code, ok := codes[errType]; ok {
		return code
	}
	return CodeBuildpack
}

//go:generate mockgen -package testmock -destination ../testmock/exit_handler.go github.com/buildpacks/libcnb/exit Handler

// Handler terminates a phase.
type Handler interface {
	// Error reports err and exits with the code for its kind.
	Error(err error)
	// Fail exits with the failed detection code.
	Fail()
	// Pass exits successfully.
	Pass()
}

type DefaultHandler struct {
	Logger log.Logger
	Exit   func(code int)
}

func NewHandler(logger log.Logger) *DefaultHandler {
	return &DefaultHandler{Logger: logger, Exit: os.Exit}
}

func (h *DefaultHandler) Error(err error) {
	if err == nil {
		h.Pass()
		return
	}
	errType := fail.TypeOf(err)
	switch errType {
	case fail.TypeFailedDetection:
		h.Fail()
		return
	case fail.TypeFramework:
		h.Logger.Errorf("buildpack framework failure: %s", err)
	default:
		h.Logger.Error(err.Error())
	}
	h.Exit(CodeFor(errType))
}

func (h *DefaultHandler) Fail() {
	h.Exit(CodeFailedDetection)
}

func (h *DefaultHandler) Pass() {
	h.Exit(CodeSuccess)
}
