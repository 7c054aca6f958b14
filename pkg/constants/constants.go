package constants

// CLIBinaryName is the name used in user-facing output to refer to the CLI
const CLIBinaryName = "mycheck"

// ConfigFileName is the project-level configuration file looked up from the
// working directory
const ConfigFileName = ".mycheck.yml"

// DefaultChecker is the type checker command invoked when the configuration
// does not override it
const DefaultChecker = "mypy"

// DefaultDaemon is the daemon front-end used for incremental checking
const DefaultDaemon = "dmypy"
