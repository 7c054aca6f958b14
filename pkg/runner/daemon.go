package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/typecheckhq/mycheck/pkg/console"
)

// ErrDaemonUnavailable indicates the daemon front-end could not be started.
var ErrDaemonUnavailable = errors.New("type checker daemon unavailable")

// DaemonRunner runs checks through the dmypy daemon for warm-cache
// incremental checking. It auto-starts the daemon on first use and, when
// RetryOnCrash is set, restarts it once after a detected crash and reruns
// the check.
type DaemonRunner struct {
	// Command is the daemon argv prefix, e.g. ["dmypy"].
	Command []string
	Verbose bool

	RetryOnCrash bool
}

// Status reports whether the daemon is running.
func (r *DaemonRunner) Status() error {
	invocation, err := r.run([]string{"status"})
	if err != nil {
		return err
	}
	if invocation.ExitCode != 0 {
		return fmt.Errorf("%w: daemon not running", ErrDaemonUnavailable)
	}
	return nil
}

// Start launches the daemon if it is not already running.
func (r *DaemonRunner) Start() error {
	if err := r.Status(); err == nil {
		return nil
	}

	fmt.Println(console.FormatInfoMessage("Starting type checker daemon..."))
	invocation, err := r.run([]string{"start"})
	if err != nil {
		return err
	}
	if invocation.ExitCode != 0 {
		return fmt.Errorf("%w: %s", ErrDaemonUnavailable, strings.TrimSpace(invocation.Stderr))
	}
	return nil
}

// Stop shuts the daemon down. Stopping a daemon that is not running is not
// an error.
func (r *DaemonRunner) Stop() error {
	_, err := r.run([]string{"stop"})
	return err
}

// Restart stops and starts the daemon.
func (r *DaemonRunner) Restart() error {
	if err := r.Stop(); err != nil {
		return err
	}
	invocation, err := r.run([]string{"start"})
	if err != nil {
		return err
	}
	if invocation.ExitCode != 0 {
		return fmt.Errorf("%w: %s", ErrDaemonUnavailable, strings.TrimSpace(invocation.Stderr))
	}
	return nil
}

// Check runs a daemon check over paths, restarting once on a detected
// daemon crash when RetryOnCrash is set.
func (r *DaemonRunner) Check(paths []string) (Invocation, error) {
	args := checkArgs(paths)

	invocation, err := r.run(args)
	if err != nil {
		return invocation, err
	}

	if r.RetryOnCrash && crashed(invocation) {
		fmt.Println(console.FormatWarningMessage("Daemon crashed, restarting and retrying..."))
		if err := r.Restart(); err != nil {
			return invocation, err
		}
		return r.run(args)
	}

	return invocation, nil
}

// checkArgs builds the dmypy check argv. Explicit paths go after "--" so
// path names never collide with daemon flags.
func checkArgs(paths []string) []string {
	if len(paths) == 1 && paths[0] == "." {
		return []string{"check", "."}
	}
	args := []string{"check", "--"}
	return append(args, paths...)
}

// crashed spots the daemon crash signatures dmypy prints instead of failing
// cleanly.
func crashed(invocation Invocation) bool {
	combined := invocation.Stdout + invocation.Stderr
	return strings.Contains(combined, "Daemon crashed") || strings.Contains(combined, "KeyError")
}

func (r *DaemonRunner) run(args []string) (Invocation, error) {
	if len(r.Command) == 0 {
		return Invocation{}, errors.New("daemon command not configured")
	}

	argv := append(append([]string{}, r.Command[1:]...), args...)
	if r.Verbose {
		fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Executing: %s %s", r.Command[0], strings.Join(argv, " "))))
	}

	spin := console.NewSpinner("Running daemon type check...")
	if !r.Verbose {
		spin.Start()
	}
	invocation, err := runCommand(r.Command[0], argv)
	if !r.Verbose {
		spin.Stop()
	}
	return invocation, err
}
