package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "debug", "production")

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = newLogger(buf, "not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestPredictionLoggerRecompute(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogRecompute("2025-06-14", 15, 45, "generated", 3.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "prediction", logEntry["component"])
	assert.Equal(t, "2025-06-14", logEntry["date"])
	assert.Equal(t, float64(45), logEntry["predictions"])
	assert.Equal(t, "info", logEntry["level"])
}

func TestPredictionLoggerCacheHitIsDebug(t *testing.T) {
	log, buf := setupTestLogger()
	log.SetLevel(logrus.InfoLevel)
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogCacheHit("2025-06-14", "under_1_run_1st")

	assert.Empty(t, buf.String())
}

func TestPredictionLoggerPrewarmFailures(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogPrewarm([]string{"2025-06-14", "2025-06-15"}, 1)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, float64(1), logEntry["failed"])
}

func TestUpstreamLoggerFallback(t *testing.T) {
	log, buf := setupTestLogger()
	upstreamLogger := NewUpstreamLogger(log)

	upstreamLogger.LogFallback("people_search", "Paul Skenes", errors.New("timeout"), "static table")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "upstream", logEntry["component"])
	assert.Equal(t, "timeout", logEntry["error"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestAuditLoggerCacheCleared(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogCacheCleared("predictions", nil)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "predictions", logEntry["cache"])
	assert.Equal(t, "info", logEntry["level"])

	buf.Reset()
	auditLogger.LogCacheCleared("reference", errors.New("permission denied"))
	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
}

func TestAuditLoggerRefreshRequested(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogRefreshRequested("req-1", "127.0.0.1:5000", "http")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "req-1", logEntry["request_id"])
	assert.Equal(t, "audit", logEntry["component"])
}

func BenchmarkPredictionLoggerRecompute(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	predictionLogger := NewPredictionLogger(log)

	for i := 0; i < b.N; i++ {
		predictionLogger.LogRecompute("2025-06-14", 15, 45, "generated", 3.2)
	}
}
