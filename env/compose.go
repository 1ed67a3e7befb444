package env

import (
	"os"
)

// Policy picks the delimiter for prepend and append when no delim directive was given.
type Policy struct {
	Delimiters map[string]string
	Default    string
}

// PathLikeVars are joined with the OS path list separator by DefaultPolicy.
var PathLikeVars = []string{
	"PATH",
	"LD_LIBRARY_PATH",
	"LIBRARY_PATH",
	"CPATH",
	"PKG_CONFIG_PATH",
	"CLASSPATH",
	"GEM_PATH",
	"PYTHONPATH",
	"NODE_PATH",
	"MANPATH",
}

// DefaultPolicy joins path-like variables with the OS path list separator and concatenates everything else.
func DefaultPolicy() Policy {
	p := Policy{Delimiters: map[string]string{}}
	for _, name := range PathLikeVars {
		p.Delimiters[name] = string(os.PathListSeparator)
	}
	return p
}

// ConcatPolicy concatenates without a delimiter unless a delim directive says otherwise.
func ConcatPolicy() Policy {
	return Policy{}
}

func (p Policy) delimiter(name string) string {
	if d, ok := p.Delimiters[name]; ok {
		return d
	}
	return p.Default
}

// Compose folds directives over base in order and returns the result. Base is not modified.
func Compose(base map[string]string, directives []Directive, policy Policy) map[string]string {
	vars := make(map[string]string, len(base))
	for k, v := range base {
		vars[k] = v
	}
	c := composer{vars: vars, delims: map[string]string{}, policy: policy}
	c.apply(directives...)
	return c.vars
}

type composer struct {
	vars   map[string]string
	delims map[string]string
	policy Policy
}

func (c *composer) apply(directives ...Directive) {
	for _, d := range directives {
		current, set := c.vars[d.Name]
		switch d.Op {
		case OpOverride:
			c.vars[d.Name] = d.Value
		case OpDefault:
			if !set {
				c.vars[d.Name] = d.Value
			}
		case OpDelimiter:
			c.delims[d.Name] = d.Value
		case OpPrepend, OpAppend, OpPrependPath:
			if current == "" {
				c.vars[d.Name] = d.Value
				continue
			}
			delim := c.delimiter(d)
			if d.Op == OpAppend {
				c.vars[d.Name] = current + delim + d.Value
			} else {
				c.vars[d.Name] = d.Value + delim + current
			}
		}
	}
}

func (c *composer) delimiter(d Directive) string {
	if d.Op == OpPrependPath {
		return string(os.PathListSeparator)
	}
	if delim, ok := c.delims[d.Name]; ok {
		return delim
	}
	return c.policy.delimiter(d.Name)
}
