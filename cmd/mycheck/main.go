package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typecheckhq/mycheck/pkg/cli"
	"github.com/typecheckhq/mycheck/pkg/console"
	"github.com/typecheckhq/mycheck/pkg/constants"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIBinaryName,
	Short: "Structured mypy output analysis",
	Long: `mycheck runs mypy (or the dmypy daemon), parses its diagnostic output
into a structured result model, and renders the model as text or
line-delimited JSON.

Diagnostics keep their attached notes, unrecognized output lines are
recorded instead of discarded, and checks over multiple paths can run in
isolation and merge into one report.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Type check paths and report structured results",
	Long: `Type check the given paths (default: current directory).

With multiple paths, each path is checked in isolation and the results are
merged; use --no-combined for a single checker invocation over all paths.

Examples:
  ` + constants.CLIBinaryName + ` check
  ` + constants.CLIBinaryName + ` check src tests
  ` + constants.CLIBinaryName + ` check --no-daemon src
  ` + constants.CLIBinaryName + ` check --output-format jsonl --output-file errors.jsonl src`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := checkOptionsFromFlags(cmd, args)
		errorCount, err := cli.RunCheck(opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
		if errorCount > 0 {
			os.Exit(1)
		}
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-run the type check whenever source files change",
	Run: func(cmd *cobra.Command, args []string) {
		opts := checkOptionsFromFlags(cmd, args)
		if err := cli.WatchAndCheck(opts); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var daemonCmd = &cobra.Command{
	Use:   "daemon <start|stop|restart|status>",
	Short: "Manage the type checker daemon",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.DaemonCommand(args[0], verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIBinaryName, version)))
	},
}

func checkOptionsFromFlags(cmd *cobra.Command, args []string) cli.CheckOptions {
	noDaemon, _ := cmd.Flags().GetBool("no-daemon")
	combined, _ := cmd.Flags().GetBool("combined")
	noCombined, _ := cmd.Flags().GetBool("no-combined")
	outputFormat, _ := cmd.Flags().GetString("output-format")
	outputFile, _ := cmd.Flags().GetString("output-file")
	configFile, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.CheckOptions{
		Paths:        args,
		ConfigFile:   configFile,
		NoDaemon:     noDaemon,
		Combined:     combined,
		NoCombined:   noCombined,
		OutputFormat: outputFormat,
		OutputFile:   outputFile,
		Verbose:      verbose,
		Debug:        debug,
	}
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-daemon", false, "Run the checker directly instead of through the daemon")
	cmd.Flags().Bool("combined", false, "Check each path in isolation and merge results")
	cmd.Flags().Bool("no-combined", false, "Disable combined mode even with multiple paths")
	cmd.Flags().String("output-format", "", "Output format: text or jsonl (default text)")
	cmd.Flags().StringP("output-file", "o", "", "Destination file for jsonl output")
	cmd.Flags().String("config", "", "Config file path (default "+constants.ConfigFileName+")")
	cmd.Flags().Bool("debug", false, "Trace the parse outcome of every checker output line")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")

	addCheckFlags(checkCmd)
	addCheckFlags(watchCmd)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
