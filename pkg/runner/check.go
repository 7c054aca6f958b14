package runner

import (
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

// MaxConcurrentChecks bounds the number of checker processes combined mode
// runs in parallel.
const MaxConcurrentChecks = 4

// CheckRequest describes one logical type check: the paths to check, whether
// to check each path in isolation and merge (combined mode), and the parser
// configuration to apply to the checker's output.
type CheckRequest struct {
	Paths    []string
	Combined bool
	Parser   typecheck.Config
}

// RunTypeCheck runs the checker and parses its output into a Results
// aggregate. The returned exit code follows the checker contract: in
// combined mode it is 1 exactly when the merged results contain errors, and
// otherwise it mirrors the checker's own pass/fail signal capped at 1.
func RunTypeCheck(r Runner, req CheckRequest) (*typecheck.Results, int, error) {
	if req.Combined {
		return runCombined(r, req)
	}

	invocation, err := r.Check(req.Paths)
	if err != nil {
		return nil, 1, err
	}

	results := parseInvocation(invocation, req.Parser)
	exitCode := 0
	if invocation.ExitCode != 0 {
		exitCode = 1
	}
	return results, exitCode, nil
}

// runCombined checks every path in isolation, in parallel, then merges the
// per-path results in path order. Paths whose check produced no output
// contribute nothing to the merge.
func runCombined(r Runner, req CheckRequest) (*typecheck.Results, int, error) {
	type pathOutcome struct {
		index   int
		results *typecheck.Results
		err     error
	}

	p := pool.NewWithResults[pathOutcome]().WithMaxGoroutines(MaxConcurrentChecks)
	for i, path := range req.Paths {
		i, path := i, path
		p.Go(func() pathOutcome {
			invocation, err := r.Check([]string{path})
			if err != nil {
				return pathOutcome{index: i, err: err}
			}
			if strings.TrimSpace(invocation.Stdout) == "" {
				return pathOutcome{index: i}
			}
			// Each path gets its own parser: parse state is instance-scoped.
			parser := typecheck.NewParser(req.Parser)
			return pathOutcome{index: i, results: parser.ParseOutput(invocation.Stdout)}
		})
	}

	outcomes := p.Wait()
	sort.Slice(outcomes, func(a, b int) bool { return outcomes[a].index < outcomes[b].index })

	var perPath []*typecheck.Results
	for _, outcome := range outcomes {
		if outcome.err != nil {
			return nil, 1, outcome.err
		}
		if outcome.results != nil {
			perPath = append(perPath, outcome.results)
		}
	}

	merged := typecheck.Merge(perPath)
	exitCode := 0
	if merged.ErrorCount() > 0 {
		exitCode = 1
	}
	return merged, exitCode, nil
}

// parseInvocation parses one invocation's stdout. An empty blob means the
// checker found nothing to report; it yields an empty aggregate with
// files-checked defaulted to one, since the checker examined at least the
// requested target without printing a summary.
func parseInvocation(invocation Invocation, config typecheck.Config) *typecheck.Results {
	if strings.TrimSpace(invocation.Stdout) == "" {
		return &typecheck.Results{FilesChecked: 1}
	}
	parser := typecheck.NewParser(config)
	return parser.ParseOutput(invocation.Stdout)
}
