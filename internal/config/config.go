package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Tool under test
	ToolPath string
	Timeout  time.Duration

	// Stage outputs are written here, named by a hash of the case path
	ScratchDir string

	// Execution settings
	Processors int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Cases requiring any of these features are skipped
	SkipFeatures []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors   int
	TestPath     string
	NameFilter   string
	Tool         string
	Timeout      time.Duration
	ScratchDir   string
	SkipFeatures []string
	RunFeatures  []string
	NoProgress   bool
	Browse       bool
	Classify     bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		TestPath:    DefaultTestPath,
		ToolPath:    DefaultToolPath,
		Timeout:     DefaultTimeout,
		ScratchDir:  filepath.Join(os.TempDir(), DefaultScratchDirName),
		Processors:  DefaultProcessors,
		Flags:       Flags{Processors: DefaultProcessors},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	cfg.SkipFeatures = make([]string, len(DefaultSkipFeatures))
	copy(cfg.SkipFeatures, DefaultSkipFeatures)
	return cfg
}

// Load creates a config, applies the environment and then flags.
// Flags take precedence over the environment, which takes precedence over defaults.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadEnv applies the project .env file and the process environment
func (c *Config) LoadEnv() error {
	return c.ApplyEnv(envFromProject(c.ProjectPath))
}

// envFromProject merges the project .env file with the process environment.
// Process variables win, matching godotenv.Load.
func envFromProject(projectPath string) map[string]string {
	env, err := godotenv.Read(filepath.Join(projectPath, DefaultEnvFile))
	if err != nil {
		// .env file might not exist, that's okay
		env = map[string]string{}
	}
	for _, key := range []string{EnvTool, EnvProcessors, EnvTimeout, EnvScratchDir, EnvTestPath} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

// ApplyEnv overrides defaults with the given environment values
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvTool]; v != "" {
		c.ToolPath = v
	}
	if v := env[EnvTestPath]; v != "" {
		c.TestPath = v
	}
	if v := env[EnvScratchDir]; v != "" {
		c.ScratchDir = v
	}
	if v := env[EnvProcessors]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid %s value %q: must be a positive integer", EnvProcessors, v)
		}
		c.Processors = n
	}
	if v := env[EnvTimeout]; v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration or a bare number of milliseconds
func parseTimeout(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		if ms <= 0 {
			return 0, fmt.Errorf("must be positive")
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}

// ApplyFlags stores flags and applies the overrides they carry
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Tool != "" {
		c.ToolPath = flags.Tool
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.ScratchDir != "" {
		c.ScratchDir = flags.ScratchDir
	}
	if len(flags.SkipFeatures) > 0 {
		c.SkipFeatures = append(c.SkipFeatures, flags.SkipFeatures...)
	}
	if len(flags.RunFeatures) > 0 {
		allowed := make(map[string]bool, len(flags.RunFeatures))
		for _, f := range flags.RunFeatures {
			allowed[f] = true
		}
		kept := c.SkipFeatures[:0]
		for _, f := range c.SkipFeatures {
			if !allowed[f] {
				kept = append(kept, f)
			}
		}
		c.SkipFeatures = kept
	}
}

// GetTestPath returns the corpus root, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}
	if filepath.IsAbs(c.TestPath) {
		return c.TestPath
	}
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetToolPath returns the tool binary. Bare names are left for PATH lookup,
// relative paths are resolved against the project path.
func (c *Config) GetToolPath() string {
	if filepath.IsAbs(c.ToolPath) || !strings.ContainsRune(c.ToolPath, filepath.Separator) {
		return c.ToolPath
	}
	return filepath.Join(c.ProjectPath, c.ToolPath)
}

// GetScratchDir returns the absolute directory for stage outputs
func (c *Config) GetScratchDir() string {
	if abs, err := filepath.Abs(c.ScratchDir); err == nil {
		return abs
	}
	return c.ScratchDir
}
