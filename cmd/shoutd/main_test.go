package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "shoutouts.log")
	body := fmt.Sprintf(`log:
  path: %q
  format: text
  timezone: UTC
persistence:
  filePath: %q
  saveInterval: 1h
logger:
  level: error
  dir: %q
metrics:
  enabled: false
`, logPath, filepath.Join(dir, "stats.dat"), dir) + extra

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, logPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, debugMode, jsonOutput, actor = "", false, false, "console"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSubmit_WritesLogAndReplies(t *testing.T) {
	config, logPath := writeConfig(t, "")

	out, err := execute(t, "--config", config, "--actor", "Alice", "submit", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "Your shoutout has been logged!")
	assert.Contains(t, out, "Alice: hello world\n")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "] Alice: hello world\n")
}

func TestSubmit_DailyQuotaSurvivesAcrossInvocations(t *testing.T) {
	config, _ := writeConfig(t, "shoutout:\n  maxEventsPerDay: 1\n")

	_, err := execute(t, "--config", config, "--actor", "Alice", "submit", "first")
	require.NoError(t, err)

	out, err := execute(t, "--config", config, "--actor", "Alice", "submit", "second")
	require.NoError(t, err)
	assert.Contains(t, out, "daily limit of 1")

	out, err = execute(t, "--config", config, "recent", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice: first")
	assert.NotContains(t, out, "Alice: second")
}

func TestStats_JSON(t *testing.T) {
	config, _ := writeConfig(t, "")

	_, err := execute(t, "--config", config, "--actor", "Bob", "submit", "hi")
	require.NoError(t, err)

	out, err := execute(t, "--config", config, "stats", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_count": 1`)
	assert.Contains(t, out, `"Bob"`)
}

func TestRoot_MissingConfigFails(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yml"), "stats")
	assert.Error(t, err)
}
