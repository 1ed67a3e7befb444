package launch

type Process struct {
	Type             string   `toml:"type"`
	Command          []string `toml:"command"`
	Args             []string `toml:"args,omitempty"`
	Default          bool     `toml:"default,omitempty"`
	Direct           bool     `toml:"direct,omitempty"`
	WorkingDirectory string   `toml:"working-dir,omitempty"`
}

// NewProcess creates a process of the given type running command.
func NewProcess(processType string, command ...string) Process {
	return Process{Type: processType, Command: command}
}

func (p Process) WithArgs(args ...string) Process {
	p.Args = append(append([]string{}, p.Args...), args...)
	return p
}

func (p Process) WithDefault(isDefault bool) Process {
	p.Default = isDefault
	return p
}

// WithDirect runs the command without a shell when direct is true.
func (p Process) WithDirect(direct bool) Process {
	p.Direct = direct
	return p
}

func (p Process) WithWorkingDirectory(dir string) Process {
	p.WorkingDirectory = dir
	return p
}
