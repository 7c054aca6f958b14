package runner

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

// fakeRunner serves canned invocations keyed by the first path.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]Invocation
	errs    map[string]error
	calls   [][]string
}

func (f *fakeRunner) Check(paths []string) (Invocation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, paths)
	f.mu.Unlock()

	key := strings.Join(paths, " ")
	if err, ok := f.errs[key]; ok {
		return Invocation{}, err
	}
	return f.outputs[key], nil
}

func TestRunTypeCheckSingleInvocation(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Invocation{
		"src": {
			Stdout:   "src/a.py:1: error: boom [misc]\nFound 1 error in 1 file (checked 3 source files)",
			ExitCode: 1,
		},
	}}

	results, exitCode, err := RunTypeCheck(runner, CheckRequest{Paths: []string{"src"}})
	if err != nil {
		t.Fatalf("RunTypeCheck failed: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if results.ErrorCount() != 1 {
		t.Errorf("Expected 1 error, got %d", results.ErrorCount())
	}
	if results.FilesChecked != 3 {
		t.Errorf("Expected files checked 3, got %d", results.FilesChecked)
	}
	if len(runner.calls) != 1 || strings.Join(runner.calls[0], " ") != "src" {
		t.Errorf("Expected one invocation over all paths, got %v", runner.calls)
	}
}

func TestRunTypeCheckExitCodeCappedAtOne(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Invocation{
		"src": {Stdout: "mypy: error: cannot find config\n", ExitCode: 2},
	}}

	_, exitCode, err := RunTypeCheck(runner, CheckRequest{Paths: []string{"src"}})
	if err != nil {
		t.Fatalf("RunTypeCheck failed: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("Expected checker exit 2 capped at 1, got %d", exitCode)
	}
}

func TestRunTypeCheckEmptyOutputDefaultsFilesChecked(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Invocation{
		"src": {Stdout: "", ExitCode: 0},
	}}

	results, exitCode, err := RunTypeCheck(runner, CheckRequest{Paths: []string{"src"}})
	if err != nil {
		t.Fatalf("RunTypeCheck failed: %v", err)
	}
	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}
	if results.FilesChecked != 1 {
		t.Errorf("Expected files checked to default to 1, got %d", results.FilesChecked)
	}
	if len(results.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %d", len(results.Diagnostics))
	}
}

func TestRunTypeCheckCombinedMergesInPathOrder(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Invocation{
		"pkg_a": {
			Stdout:   "pkg_a/x.py:1: error: first [misc]\nFound 1 error in 1 file (checked 2 source files)",
			ExitCode: 1,
		},
		"pkg_b": {Stdout: "", ExitCode: 0},
		"pkg_c": {
			Stdout:   "pkg_c/y.py:2: error: second [misc]\nFound 1 error in 1 file (checked 4 source files)",
			ExitCode: 1,
		},
	}}

	results, exitCode, err := RunTypeCheck(runner, CheckRequest{
		Paths:    []string{"pkg_a", "pkg_b", "pkg_c"},
		Combined: true,
	})
	if err != nil {
		t.Fatalf("RunTypeCheck failed: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if len(results.Diagnostics) != 2 {
		t.Fatalf("Expected 2 merged diagnostics, got %d", len(results.Diagnostics))
	}
	if results.Diagnostics[0].Message != "first" || results.Diagnostics[1].Message != "second" {
		t.Errorf("Expected path-order merge, got %q then %q",
			results.Diagnostics[0].Message, results.Diagnostics[1].Message)
	}
	// pkg_b produced no output and contributes nothing, not a default of 1.
	if results.FilesChecked != 6 {
		t.Errorf("Expected files checked summed to 6, got %d", results.FilesChecked)
	}
	if len(runner.calls) != 3 {
		t.Errorf("Expected one invocation per path, got %d", len(runner.calls))
	}
	for _, call := range runner.calls {
		if len(call) != 1 {
			t.Errorf("Expected single-path invocations, got %v", call)
		}
	}
}

func TestRunTypeCheckCombinedCleanExit(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]Invocation{
		"pkg_a": {Stdout: "Found 0 errors in 0 files (checked 5 source files)", ExitCode: 0},
		"pkg_b": {Stdout: "", ExitCode: 0},
	}}

	results, exitCode, err := RunTypeCheck(runner, CheckRequest{
		Paths:    []string{"pkg_a", "pkg_b"},
		Combined: true,
	})
	if err != nil {
		t.Fatalf("RunTypeCheck failed: %v", err)
	}
	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}
	if results.FilesChecked != 5 {
		t.Errorf("Expected files checked 5, got %d", results.FilesChecked)
	}
}

func TestRunTypeCheckCombinedPropagatesRunnerError(t *testing.T) {
	bang := errors.New("checker not found")
	runner := &fakeRunner{
		outputs: map[string]Invocation{"pkg_a": {Stdout: ""}},
		errs:    map[string]error{"pkg_b": bang},
	}

	_, exitCode, err := RunTypeCheck(runner, CheckRequest{
		Paths:    []string{"pkg_a", "pkg_b"},
		Combined: true,
	})
	if !errors.Is(err, bang) {
		t.Fatalf("Expected runner error propagated, got %v", err)
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1 on failure, got %d", exitCode)
	}
}
