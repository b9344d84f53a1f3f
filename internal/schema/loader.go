package schema

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_schema.yaml
var defaultSchemaYAML []byte

// Default returns the built-in schema definition.
func Default() (*Definition, error) {
	return Parse(defaultSchemaYAML)
}

// DefaultSource returns the raw YAML of the built-in schema.
func DefaultSource() []byte {
	return defaultSchemaYAML
}

// Load reads a schema definition from a YAML file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read schema definition %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schema definition %s: %w", path, err)
	}
	return def, nil
}

// Parse unmarshals and validates a schema definition from YAML bytes.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse schema definition: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}
