package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for prediction recomputes and cache traffic.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogCacheHit logs a prediction request served from cache.
func (pl *PredictionLogger) LogCacheHit(date, predictionType string) {
	pl.WithFields(logrus.Fields{
		"date":            date,
		"prediction_type": predictionType,
	}).Debug("Predictions served from cache")
}

// LogRecompute logs a full recompute for one date.
func (pl *PredictionLogger) LogRecompute(date string, fixtures, predictions int, fixtureSource string, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"date":           date,
		"fixtures":       fixtures,
		"predictions":    predictions,
		"fixture_source": fixtureSource,
		"duration_ms":    durationMs,
	}).Info("Predictions recomputed")
}

// LogCacheWriteFailure logs a cache write that failed; the result is still returned.
func (pl *PredictionLogger) LogCacheWriteFailure(key string, err error) {
	pl.WithFields(logrus.Fields{
		"key":   key,
		"error": err.Error(),
	}).Warn("Failed to cache predictions")
}

// LogArchiveFailure logs a failed archive write.
func (pl *PredictionLogger) LogArchiveFailure(date string, err error) {
	pl.WithFields(logrus.Fields{
		"date":  date,
		"error": err.Error(),
	}).Warn("Failed to archive predictions")
}

// LogRefresh logs a completed refresh.
func (pl *PredictionLogger) LogRefresh(clearedCaches []string) {
	pl.WithFields(logrus.Fields{
		"cleared_caches": clearedCaches,
	}).Info("Prediction caches refreshed")
}

// LogPrewarm logs a prewarm run.
func (pl *PredictionLogger) LogPrewarm(dates []string, failed int) {
	entry := pl.WithFields(logrus.Fields{
		"dates":  dates,
		"failed": failed,
	})
	if failed > 0 {
		entry.Warn("Prediction prewarm finished with failures")
		return
	}
	entry.Info("Prediction prewarm finished")
}
