package logger

import (
	"github.com/sirupsen/logrus"
)

// UpstreamLogger provides dedicated logging for calls to the external stats provider.
type UpstreamLogger struct {
	*logrus.Entry
}

// NewUpstreamLogger creates a new upstream logger.
func NewUpstreamLogger(baseLogger *logrus.Logger) *UpstreamLogger {
	return &UpstreamLogger{
		Entry: baseLogger.WithField("component", "upstream"),
	}
}

// LogLookup logs a completed upstream request.
func (ul *UpstreamLogger) LogLookup(endpoint, subject string, found bool, latencyMs float64) {
	ul.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"subject":    subject,
		"found":      found,
		"latency_ms": latencyMs,
	}).Debug("Stats provider request completed")
}

// LogFallback logs an upstream failure that was answered from static data.
func (ul *UpstreamLogger) LogFallback(endpoint, subject string, err error, fallback string) {
	ul.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"subject":  subject,
		"error":    err.Error(),
		"fallback": fallback,
	}).Warn("Stats provider unavailable, using fallback")
}
