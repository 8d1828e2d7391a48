package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the corpus root, relative to the project path
	DefaultTestPath = "test262/test"
	// DefaultToolPath is the tool under test, looked up in PATH when it has no separator
	DefaultToolPath = "esbuild"
	// DefaultScratchDirName is created under the OS temp dir for stage outputs
	DefaultScratchDirName = "t262"
	// DefaultEnvFile is read from the project path when present
	DefaultEnvFile = ".env"
	// DefaultProcessors is the default number of pipelines running at once
	DefaultProcessors = 5
	// DefaultTimeout is the wall-clock limit for one tool invocation
	DefaultTimeout = 1000 * time.Millisecond
)

// DefaultPathsToIgnore are directory names never descended into when scanning
var DefaultPathsToIgnore = []string{
	"node_modules",
}

// DefaultSkipFeatures are case features the tool does not support yet.
// Cases requiring any of them are counted as skipped without being run.
var DefaultSkipFeatures = []string{
	"class-fields-private",
	"class-methods-private",
	"class-static-fields-private",
	"class-static-methods-private",
	"hashbang",
	"regexp-match-indices",
	"regexp-named-groups",
	"regexp-unicode-property-escapes",
	"top-level-await",
}

// Environment keys read from the process environment and the project .env file
const (
	EnvTool       = "T262_TOOL"
	EnvProcessors = "T262_PROCESSORS"
	EnvTimeout    = "T262_TIMEOUT"
	EnvScratchDir = "T262_SCRATCH_DIR"
	EnvTestPath   = "T262_TEST_PATH"
)
