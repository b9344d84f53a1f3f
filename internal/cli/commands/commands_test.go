// Package commands tests CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check <path>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// Note: --strict, --workers, --json are global persistent flags on root
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch <path>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("limit"), "flag %q should exist", "limit")
}

func TestNewSchemaCommand(t *testing.T) {
	cmd := NewSchemaCommand()

	assert.Equal(t, "schema", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "flag %q should exist", "force")
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "exit status 1", (&ExitError{Code: ExitFail}).Error())
	assert.Equal(t, "bad path", (&ExitError{Code: ExitUsage, Message: "bad path"}).Error())
}

func TestBuildValidatorDefaultSchema(t *testing.T) {
	cfg := getConfig()
	require.Empty(t, cfg.SchemaPath)

	v, err := buildValidator(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "v3.2", v.Schema().Version)
}

func TestBuildValidatorBadSchemaPathIsUsageError(t *testing.T) {
	cfg := getConfig()
	cfg.SchemaPath = "does-not-exist.yaml"

	_, err := buildValidator(cfg, nil)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected *ExitError, got %T", err)
	assert.Equal(t, ExitUsage, exitErr.Code)
}
