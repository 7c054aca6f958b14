package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/typecheckhq/mycheck/pkg/console"
)

// Invocation is the raw outcome of one checker run: the combined diagnostic
// text on stdout, anything the checker printed to stderr, and its exit code.
type Invocation struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner invokes the external type checker on a set of paths. The parser
// treats the runner as an opaque collaborator that supplies text and an exit
// code; everything else about process lifecycle lives behind this interface.
type Runner interface {
	Check(paths []string) (Invocation, error)
}

// MypyRunner runs the checker directly, one process per Check call.
type MypyRunner struct {
	// Command is the argv prefix, e.g. ["mypy", "--show-column-numbers"].
	Command []string
	Verbose bool
}

// Check runs the checker over paths and captures its output. A non-zero exit
// code is a normal outcome (the checker found errors), not a Go error; only
// failures to start or run the process surface as errors.
func (r *MypyRunner) Check(paths []string) (Invocation, error) {
	if len(r.Command) == 0 {
		return Invocation{}, errors.New("checker command not configured")
	}

	args := append(append([]string{}, r.Command[1:]...), paths...)
	if r.Verbose {
		fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Executing: %s %s", r.Command[0], strings.Join(args, " "))))
	}

	spin := console.NewSpinner("Running type checker...")
	if !r.Verbose {
		spin.Start()
	}
	invocation, err := runCommand(r.Command[0], args)
	if !r.Verbose {
		spin.Stop()
	}
	return invocation, err
}

// runCommand executes argv and normalizes checker exit codes. exec.ExitError
// is folded into the Invocation; all other errors propagate.
func runCommand(name string, args []string) (Invocation, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	invocation := Invocation{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return invocation, fmt.Errorf("failed to run %s: %w", name, err)
		}
		invocation.ExitCode = exitErr.ExitCode()
	}

	return invocation, nil
}
