package env

import (
	"path/filepath"
)

// Op is how a directive modifies a variable.
type Op string

const (
	OpOverride  Op = "override"
	OpDefault   Op = "default"
	OpPrepend   Op = "prepend"
	OpAppend    Op = "append"
	OpDelimiter Op = "delim"

	// OpPrependPath prepends a layer root directory, always joining with the OS path list separator.
	// It is never read from or written to an env directory.
	OpPrependPath Op = "prepend-path"
)

// fileOps are the operations that have an on-disk representation, in the order
// they are applied within one env directory.
var fileOps = []Op{OpDelimiter, OpOverride, OpDefault, OpPrepend, OpAppend}

func parseOp(suffix string) (Op, bool) {
	if suffix == "" {
		return OpOverride, true
	}
	for _, op := range fileOps {
		if string(op) == suffix {
			return op, true
		}
	}
	return "", false
}

func opRank(op Op) int {
	for i, o := range fileOps {
		if o == op {
			return i
		}
	}
	return len(fileOps)
}

type ScopeKind int

const (
	KindAll ScopeKind = iota
	KindBuild
	KindLaunch
	KindProcess
)

// Scope selects the env directory a directive lives in.
type Scope struct {
	Kind    ScopeKind
	Process string
}

var (
	// ScopeAll is the shared env/ directory.
	ScopeAll = Scope{Kind: KindAll}
	// ScopeBuild is env.build/, applied only during the build.
	ScopeBuild = Scope{Kind: KindBuild}
	// ScopeLaunch is env.launch/, applied to every launched process.
	ScopeLaunch = Scope{Kind: KindLaunch}
)

// ScopeProcess is env.launch/<process>/, applied only when launching that process type.
func ScopeProcess(process string) Scope {
	return Scope{Kind: KindProcess, Process: process}
}

// Dir is the directory of the scope relative to a layer.
func (s Scope) Dir() string {
	switch s.Kind {
	case KindBuild:
		return "env.build"
	case KindLaunch:
		return "env.launch"
	case KindProcess:
		return filepath.Join("env.launch", s.Process)
	default:
		return "env"
	}
}

// Includes reports whether directives in other apply when resolving for s.
func (s Scope) Includes(other Scope) bool {
	switch other.Kind {
	case KindAll:
		return true
	case KindBuild:
		return s.Kind == KindBuild
	case KindLaunch:
		return s.Kind == KindLaunch || s.Kind == KindProcess
	case KindProcess:
		return s.Kind == KindProcess && s.Process == other.Process
	}
	return false
}

func (s Scope) String() string {
	return s.Dir()
}

// Directive is a single instruction to modify a variable.
type Directive struct {
	Name  string
	Op    Op
	Value string
	Scope Scope
}

func (d Directive) fileName() string {
	return d.Name + "." + string(d.Op)
}
