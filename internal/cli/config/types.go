// Package config provides configuration management for the rulecheck CLI.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

// Defaults applied before any other configuration source.
const (
	DefaultOutput      = "auto"
	DefaultHistoryPath = ".rulecheck/history.db"
)

// DefaultExcludes lists directory names skipped during discovery unless the
// config overrides them.
var DefaultExcludes = []string{"schemas", "scratch", "node_modules"}

// Config holds the resolved CLI configuration.
type Config struct {
	// ProjectRoot anchors relative paths. Inferred, never read from file.
	ProjectRoot string `koanf:"-"`

	// SchemaPath points at a YAML schema definition. Empty selects the
	// built-in default schema.
	SchemaPath string `koanf:"schema_path"`

	// Excludes lists directory names skipped during discovery.
	Excludes []string `koanf:"excludes"`

	// Workers bounds the validation pool; 0 means available parallelism.
	Workers int `koanf:"workers"`

	// Recursive controls whether discovery descends into subdirectories.
	Recursive bool `koanf:"recursive"`

	// Strict promotes WARN batches to a failing exit code.
	Strict bool `koanf:"strict"`

	// Output selects the report format: auto, text, or json.
	Output string `koanf:"output"`

	// History enables recording batch results to the history database.
	History bool `koanf:"history"`

	// HistoryPath locates the history database.
	HistoryPath string `koanf:"history_path"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}
