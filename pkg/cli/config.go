package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/typecheckhq/mycheck/pkg/constants"
	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

//go:embed schemas/config_schema.json
var configSchema string

// Config is the project-level configuration loaded from .mycheck.yml.
// Every field is optional; zero values defer to built-in defaults.
type Config struct {
	Checker  []string       `yaml:"checker,omitempty"`
	Daemon   *bool          `yaml:"daemon,omitempty"`
	Combined *bool          `yaml:"combined,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Patterns PatternStrings `yaml:"patterns,omitempty"`
}

// OutputConfig selects the default rendering and destination.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// PatternStrings holds custom line grammars as regex source, compiled into
// typecheck.Patterns after validation. Custom diagnostic and note patterns
// must use the named groups file/line/column/level/message/error_code.
type PatternStrings struct {
	Diagnostic string `yaml:"diagnostic,omitempty"`
	Note       string `yaml:"note,omitempty"`
	Summary    string `yaml:"summary,omitempty"`
}

// LoadConfig reads and validates the configuration file. A missing file is
// not an error: it yields the zero config. path empty means the default
// .mycheck.yml in the working directory.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = constants.ConfigFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Validate the raw document before binding it, so schema errors name
	// the offending key instead of surfacing as type mismatches.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := validateConfigWithSchema(raw); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &config, nil
}

// validateConfigWithSchema validates the config document against the
// embedded JSON schema.
func validateConfigWithSchema(document map[string]any) error {
	compiler := jsonschema.NewCompiler()

	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return fmt.Errorf("failed to parse config schema: %w", err)
	}

	schemaURL := "mycheck://config-schema.json"
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add config schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	// Round-trip through JSON to normalize YAML types for validation.
	if document == nil {
		document = make(map[string]any)
	}
	documentJSON, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal config document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(documentJSON, &normalized); err != nil {
		return fmt.Errorf("failed to normalize config document: %w", err)
	}

	return schema.Validate(normalized)
}

// CompilePatterns compiles the configured custom grammars. Unset patterns
// stay nil so the classifier falls back to the built-in grammar per line
// kind.
func (c *Config) CompilePatterns() (typecheck.Patterns, error) {
	var patterns typecheck.Patterns

	compile := func(source, kind string) (*regexp.Regexp, error) {
		if source == "" {
			return nil, nil
		}
		re, err := regexp.Compile(source)
		if err != nil {
			return nil, fmt.Errorf("invalid custom %s pattern: %w", kind, err)
		}
		return re, nil
	}

	var err error
	if patterns.Diagnostic, err = compile(c.Patterns.Diagnostic, "diagnostic"); err != nil {
		return typecheck.Patterns{}, err
	}
	if patterns.Note, err = compile(c.Patterns.Note, "note"); err != nil {
		return typecheck.Patterns{}, err
	}
	if patterns.Summary, err = compile(c.Patterns.Summary, "summary"); err != nil {
		return typecheck.Patterns{}, err
	}
	return patterns, nil
}

// CheckerCommand returns the configured checker argv, or the default.
func (c *Config) CheckerCommand() []string {
	if len(c.Checker) > 0 {
		return c.Checker
	}
	return []string{constants.DefaultChecker}
}

// UseDaemon reports whether checks should go through the daemon. The daemon
// is the default; config or the --no-daemon flag can disable it.
func (c *Config) UseDaemon() bool {
	if c.Daemon != nil {
		return *c.Daemon
	}
	return true
}
