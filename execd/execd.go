// Package execd writes the output of exec.d programs. The launcher runs every program in a
// layer's exec.d directory before a process starts and reads the TOML table the program writes
// to file descriptor 3 as environment variables for that process.
package execd

import (
	"io"
	"os"

	"github.com/buildpacks/libcnb/exit"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/encoding"
	"github.com/buildpacks/libcnb/log"
)

// OutputFD is the file descriptor the launcher reads exec.d output from.
const OutputFD = 3

// Output maps environment variable names to values.
type Output map[string]string

// Program computes the environment of a process at launch.
type Program func() (Output, error)

// Write encodes out as a TOML table.
func Write(w io.Writer, out Output) error {
	if out == nil {
		out = Output{}
	}
	b, err := encoding.MarshalTOML(map[string]string(out))
	if err != nil {
		return fail.Framework(err, "encode", "exec.d output")
	}
	if _, err := w.Write(b); err != nil {
		return fail.Framework(err, "write", "exec.d output")
	}
	return nil
}

// Run runs program, writes its output to w and terminates through handler.
func Run(program Program, w io.Writer, handler exit.Handler) {
	out, err := program()
	if err != nil {
		handler.Error(fail.Buildpack(err))
		return
	}
	if err := Write(w, out); err != nil {
		handler.Error(err)
		return
	}
	handler.Pass()
}

// Main is the entrypoint of an exec.d program.
func Main(program Program) {
	output := os.NewFile(OutputFD, "exec.d output")
	defer output.Close()
	Run(program, output, exit.NewHandler(log.NewDefaultLogger(os.Stderr)))
}
