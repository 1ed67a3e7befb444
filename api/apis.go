package api

import (
	"github.com/pkg/errors"
)

var (
	// Buildpack is the set of Buildpack APIs this module can run.
	// 0.6 is the first Buildpack API that keeps layer flags in the [types] table and is deprecated.
	Buildpack = newAPIsMustParse([]string{"0.6", "0.7", "0.8", "0.9", "0.10"}, []string{"0.6"})
)

type APIs struct {
	Supported  List
	Deprecated List
}

type List []*Version

func (l List) String() string {
	var out string
	for i, v := range l {
		if i > 0 {
			out += ", "
		}
		out += v.String()
	}
	return out
}

func newAPIsMustParse(supported []string, deprecated []string) APIs {
	apis, err := NewAPIs(supported, deprecated)
	if err != nil {
		panic(err)
	}
	return apis
}

// NewAPIs returns an APIs object with the given supported and deprecated APIs.
// All deprecated APIs must also be supported. For major versions greater than 0
// a deprecated API may only name a major version, deprecating every minor of it.
func NewAPIs(supported []string, deprecated []string) (APIs, error) {
	apis := APIs{}
	for _, v := range supported {
		apis.Supported = append(apis.Supported, MustParse(v))
	}
	for _, d := range deprecated {
		dAPI := MustParse(d)
		if dAPI.Major != 0 && dAPI.Minor != 0 {
			return APIs{}, errors.Errorf("invalid deprecated API '%s'", d)
		}
		if !apis.IsSupported(dAPI) {
			return APIs{}, errors.Errorf("invalid deprecated API '%s'", d)
		}
		apis.Deprecated = append(apis.Deprecated, dAPI)
	}
	return apis, nil
}

func (a APIs) IsSupported(target *Version) bool {
	for _, sAPI := range a.Supported {
		if sAPI.IsSupersetOf(target) {
			return true
		}
	}
	return false
}

func (a APIs) IsDeprecated(target *Version) bool {
	for _, dAPI := range a.Deprecated {
		if dAPI.Major == 0 && dAPI.Equal(target) {
			return true
		}
		if dAPI.Major != 0 && dAPI.Major == target.Major {
			return true
		}
	}
	return false
}

// Latest returns the highest supported API.
func (a APIs) Latest() *Version {
	var latest *Version
	for _, v := range a.Supported {
		if latest == nil || v.Compare(latest) > 0 {
			latest = v
		}
	}
	return latest
}
