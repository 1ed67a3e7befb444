package api

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

var regex = regexp.MustCompile(`^v?(\d+)\.?(\d*)$`)

// Version is a CNB API version. Only the major and minor components are meaningful.
type Version struct {
	Major int
	Minor int
}

func MustParse(v string) *Version {
	version, err := NewVersion(v)
	if err != nil {
		panic(err)
	}
	return version
}

func NewVersion(v string) (*Version, error) {
	matches := regex.FindAllStringSubmatch(v, -1)
	if len(matches) == 0 {
		return nil, errors.Errorf("could not parse '%s' as version", v)
	}

	var (
		major, minor int
		err          error
	)
	if len(matches[0]) == 3 {
		major, err = strconv.Atoi(matches[0][1])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing major '%s'", matches[0][1])
		}
		if matches[0][2] != "" {
			minor, err = strconv.Atoi(matches[0][2])
			if err != nil {
				return nil, errors.Wrapf(err, "parsing minor '%s'", matches[0][2])
			}
		}
	} else {
		return nil, errors.Errorf("could not parse version '%s'", v)
	}

	return &Version{Major: major, Minor: minor}, nil
}

func (v *Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// MarshalText makes Version usable as a TOML/JSON string.
func (v *Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := NewVersion(string(text))
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

func (v *Version) Equal(o *Version) bool {
	if o == nil {
		return false
	}
	return v.Compare(o) == 0
}

// IsSupersetOf returns true if an artifact implementing v also implements target.
// For 0.x versions the minor version must match exactly.
func (v *Version) IsSupersetOf(target *Version) bool {
	if v.Major == 0 {
		return v.Equal(target)
	}
	return v.Major == target.Major && v.Minor >= target.Minor
}

func (v *Version) Compare(o *Version) int {
	if v.Major != o.Major {
		if v.Major < o.Major {
			return -1
		}
		return 1
	}
	if v.Minor != o.Minor {
		if v.Minor < o.Minor {
			return -1
		}
		return 1
	}
	return 0
}

func (v *Version) LessThan(o string) bool {
	return v.Compare(MustParse(o)) < 0
}

func (v *Version) AtLeast(o string) bool {
	return v.Compare(MustParse(o)) >= 0
}
