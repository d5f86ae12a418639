package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/early-innings/internal/models"
)

const testConfig = `app:
  name: early-innings
  environment: development
  log_level: debug
cache:
  backend: memory
stats_api:
  enabled: false
archive:
  enabled: false
scheduler:
  timezone: America/New_York
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.ExecuteContext(context.Background())
	return stdout, stderr, err
}

func TestPredictPrintsOnlyJSON(t *testing.T) {
	stdout, stderr, err := execute(t, "predict", "--config", writeTestConfig(t), "--date", "2025-06-14", "--type", "over_2.5_runs_3")
	require.NoError(t, err)

	var preds []models.Prediction
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &preds), stdout.String())
	assert.Len(t, preds, 15)
	for _, p := range preds {
		assert.Equal(t, models.Over25RunsFirstThree, p.Type)
		assert.Equal(t, "2025-06-14", p.Date)
	}

	assert.Contains(t, stderr.String(), "Predictions recomputed")
}

func TestHistoryRequiresArchive(t *testing.T) {
	stdout, _, err := execute(t, "history", "--config", writeTestConfig(t), "--list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive is disabled")
	assert.Empty(t, stdout.String())
}
