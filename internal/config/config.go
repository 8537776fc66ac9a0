// Package config loads the settings shared by the language server and the
// command line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/mstoykov/envconfig"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

// DefaultFile is read when no configuration file is named explicitly.
const DefaultFile = "kidl.yaml"

// LogLevels lists the accepted log levels, quietest first.
var LogLevels = []string{"none", "critical", "error", "warning", "notice", "info", "debug"}

// TraceValues lists the accepted LSP trace levels.
var TraceValues = []string{"off", "messages", "verbose"}

// Config holds every setting of the tools.
type Config struct {
	LogLevel       string
	LogFile        string
	MaxProblems    int
	Trace          string
	SemanticTokens bool
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	srv := server.DefaultConfig()
	return Config{
		LogLevel:       "error",
		MaxProblems:    srv.MaxProblems,
		Trace:          srv.Trace,
		SemanticTokens: srv.SemanticTokens,
	}
}

// fileConfig is the YAML layout. Unset keys stay nil.
type fileConfig struct {
	LogLevel       *string `yaml:"logLevel"`
	LogFile        *string `yaml:"logFile"`
	MaxProblems    *int    `yaml:"maxProblems"`
	Trace          *string `yaml:"trace"`
	SemanticTokens *bool   `yaml:"semanticTokens"`
}

// envConfig is the environment layout. Unset variables stay nil.
type envConfig struct {
	LogLevel       *string `envconfig:"KIDL_LOG_LEVEL"`
	LogFile        *string `envconfig:"KIDL_LOG_FILE"`
	MaxProblems    *int    `envconfig:"KIDL_MAX_PROBLEMS"`
	Trace          *string `envconfig:"KIDL_TRACE"`
	SemanticTokens *bool   `envconfig:"KIDL_SEMANTIC_TOKENS"`
}

// Load merges the defaults, the YAML file at path and the environment
// visible through lookup, later sources winning. An empty path reads
// DefaultFile if it exists.
func Load(afs afero.Fs, path string, lookup func(string) (string, bool)) (Config, error) {
	result := Default()

	fileConf, err := readFile(afs, path)
	if err != nil {
		return result, err
	}
	result = result.apply(fileConf.LogLevel, fileConf.LogFile, fileConf.MaxProblems, fileConf.Trace, fileConf.SemanticTokens)

	var envConf envConfig
	if err := envconfig.Process("", &envConf, lookup); err != nil {
		return result, fmt.Errorf("invalid environment: %w", err)
	}
	result = result.apply(envConf.LogLevel, envConf.LogFile, envConf.MaxProblems, envConf.Trace, envConf.SemanticTokens)

	return result, nil
}

func readFile(afs afero.Fs, path string) (fileConfig, error) {
	var conf fileConfig

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return conf, nil
		}
		return conf, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return conf, nil
}

func (c Config) apply(logLevel, logFile *string, maxProblems *int, trace *string, semanticTokens *bool) Config {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logFile != nil {
		c.LogFile = *logFile
	}
	if maxProblems != nil {
		c.MaxProblems = *maxProblems
	}
	if trace != nil {
		c.Trace = *trace
	}
	if semanticTokens != nil {
		c.SemanticTokens = *semanticTokens
	}
	return c
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if c.MaxProblems < 0 {
		return fmt.Errorf("maxProblems must not be negative, got %d", c.MaxProblems)
	}
	if !slices.Contains(TraceValues, c.Trace) {
		return fmt.Errorf("unknown trace %q, expected one of %v", c.Trace, TraceValues)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("unknown log level %q, expected one of %v", c.LogLevel, LogLevels)
	}
	return nil
}

// Server returns the part of c the language server consumes.
func (c Config) Server() server.Config {
	return server.Config{
		MaxProblems:    c.MaxProblems,
		Trace:          c.Trace,
		SemanticTokens: c.SemanticTokens,
	}
}
