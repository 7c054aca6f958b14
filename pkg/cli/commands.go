package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/typecheckhq/mycheck/pkg/console"
	"github.com/typecheckhq/mycheck/pkg/constants"
	"github.com/typecheckhq/mycheck/pkg/formatter"
	"github.com/typecheckhq/mycheck/pkg/runner"
	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

// CheckOptions carries everything a check run needs from the command line.
type CheckOptions struct {
	Paths      []string
	ConfigFile string

	NoDaemon   bool
	Combined   bool
	NoCombined bool

	OutputFormat string
	OutputFile   string

	Verbose bool
	Debug   bool
}

// RunCheck performs one full type check: resolve configuration and paths,
// invoke the checker, parse, render, and report. The returned count is the
// number of error-level diagnostics; callers exit non-zero when it is
// positive.
func RunCheck(opts CheckOptions) (int, error) {
	config, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return 0, err
	}

	paths, err := resolvePaths(opts.Paths)
	if err != nil {
		return 0, err
	}

	patterns, err := config.CompilePatterns()
	if err != nil {
		return 0, err
	}

	parserConfig := typecheck.Config{
		ShowColumnNumbers: true,
		Debug:             opts.Debug,
		Patterns:          patterns,
	}

	combined := opts.Combined || (len(paths) > 1 && !opts.NoCombined)
	if config.Combined != nil && !opts.Combined && !opts.NoCombined {
		combined = *config.Combined
	}

	checkRunner, err := buildRunner(config, opts)
	if err != nil {
		return 0, err
	}

	results, exitCode, err := runner.RunTypeCheck(checkRunner, runner.CheckRequest{
		Paths:    paths,
		Combined: combined,
		Parser:   parserConfig,
	})
	if err != nil {
		return 0, err
	}

	if err := renderResults(results, config, opts); err != nil {
		return 0, err
	}

	if opts.Verbose {
		displayResultsOverview(results)
		reportParseErrors(results)
	}

	if combined {
		return results.ErrorCount(), nil
	}
	if exitCode != 0 && results.ErrorCount() == 0 {
		// The checker failed without parseable errors (e.g. usage error).
		return 1, nil
	}
	return results.ErrorCount(), nil
}

// buildRunner picks the daemon or plain checker front-end. Daemon mode
// auto-starts the daemon before the first check.
func buildRunner(config *Config, opts CheckOptions) (runner.Runner, error) {
	if opts.NoDaemon || !config.UseDaemon() {
		return &runner.MypyRunner{Command: config.CheckerCommand(), Verbose: opts.Verbose}, nil
	}

	daemon := &runner.DaemonRunner{
		Command:      []string{constants.DefaultDaemon},
		Verbose:      opts.Verbose,
		RetryOnCrash: true,
	}
	if err := daemon.Start(); err != nil {
		return nil, err
	}
	return daemon, nil
}

// resolvePaths drops arguments that do not exist on disk, warning for each.
// No arguments means the working directory.
func resolvePaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"."}, nil
	}

	var paths []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Skipping nonexistent path: %s", arg)))
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		return nil, errors.New("no valid paths provided")
	}
	return paths, nil
}

// renderResults picks the formatter from flags, then config, then the text
// default, and writes the results through it.
func renderResults(results *typecheck.Results, config *Config, opts CheckOptions) error {
	formatName := opts.OutputFormat
	if formatName == "" {
		formatName = config.Output.Format
	}
	if formatName == "" {
		formatName = "text"
	}

	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = config.Output.File
	}

	f, ok := formatter.ForName(formatName)
	if !ok {
		return fmt.Errorf("unknown output format %q (expected text or jsonl)", formatName)
	}
	return f.Format(results, outputFile)
}

// reportParseErrors surfaces unrecognized checker output lines on stderr.
// Parse errors never fail a run.
func reportParseErrors(results *typecheck.Results) {
	for _, parseError := range results.ParseErrors {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Unrecognized checker output at line %d: %s", parseError.LineNumber, parseError.LineContent)))
	}
}

// DaemonCommand dispatches the daemon lifecycle subcommands.
func DaemonCommand(action string, verbose bool) error {
	daemon := &runner.DaemonRunner{Command: []string{constants.DefaultDaemon}, Verbose: verbose}

	switch action {
	case "start":
		return daemon.Start()
	case "stop":
		fmt.Println(console.FormatInfoMessage("Stopping type checker daemon..."))
		return daemon.Stop()
	case "restart":
		fmt.Println(console.FormatInfoMessage("Restarting type checker daemon..."))
		return daemon.Restart()
	case "status":
		if err := daemon.Status(); err != nil {
			return err
		}
		fmt.Println(console.FormatSuccessMessage("Daemon is running"))
		return nil
	default:
		return fmt.Errorf("unknown daemon action %q", action)
	}
}
