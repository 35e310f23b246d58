package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigSetAndShow(t *testing.T) {
	dataFile := setupCLI(t)
	cfgPath := filepath.Join(t.TempDir(), "tasktrack.yaml")

	out, _, err := executeCommand(t, dataFile, "config", "set", "data.format", "YML", "--path", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "data.format = yaml")

	_, _, err = executeCommand(t, dataFile, "config", "set", "data.lock", "true", "--path", cfgPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	var saved map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &saved))
	assert.Equal(t, "yaml", saved["data"]["format"])
	assert.Equal(t, true, saved["data"]["lock"])

	out, _, err = executeCommand(t, dataFile, "--config", cfgPath, "config", "show", "--json")
	require.NoError(t, err)
	var view configView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, cfgPath, view.ConfigFile)
	assert.Equal(t, "yaml", view.Data.Format)
	assert.True(t, view.Data.Lock)
	assert.Equal(t, dataFile, view.Data.ResolvedFile)
	assert.Equal(t, "warn", view.Logging.Level)
}

func TestConfigShow_YAML(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "config", "show")
	require.NoError(t, err)

	var view configView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "(none)", view.ConfigFile)
	assert.Equal(t, dataFile, view.Data.ResolvedFile)
}

func TestConfigGet(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "config", "get", "data.file")
	require.NoError(t, err)
	assert.Equal(t, dataFile+"\n", out)

	out, _, err = executeCommand(t, dataFile, "config", "get", "logging.level")
	require.NoError(t, err)
	assert.Equal(t, "warn\n", out)

	_, _, err = executeCommand(t, dataFile, "config", "get", "nope.key")
	assert.Error(t, err)
}

func TestConfigSet_Invalid(t *testing.T) {
	dataFile := setupCLI(t)
	cfgPath := filepath.Join(t.TempDir(), "tasktrack.yaml")

	_, _, err := executeCommand(t, dataFile, "config", "set", "data.format", "xml", "--path", cfgPath)
	assert.Error(t, err)

	_, _, err = executeCommand(t, dataFile, "config", "set", "unknown", "1", "--path", cfgPath)
	assert.Error(t, err)

	assert.NoFileExists(t, cfgPath)
}

func TestConfigFromEnvironment(t *testing.T) {
	dataFile := setupCLI(t)
	t.Setenv("TASKTRACK_LOGGING_LEVEL", "debug")

	out, _, err := executeCommand(t, dataFile, "config", "get", "logging.level")
	require.NoError(t, err)
	assert.Equal(t, "debug\n", out)
}
