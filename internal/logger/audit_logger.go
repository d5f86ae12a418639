package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides an audit trail for operator actions such as refreshes.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRefreshRequested logs who asked for a cache refresh.
func (al *AuditLogger) LogRefreshRequested(requestID, remoteAddr, trigger string) {
	al.WithFields(logrus.Fields{
		"request_id":  requestID,
		"remote_addr": remoteAddr,
		"trigger":     trigger,
	}).Info("Cache refresh requested")
}

// LogCacheCleared logs a cache instance being emptied.
func (al *AuditLogger) LogCacheCleared(cacheName string, err error) {
	entry := al.WithField("cache", cacheName)
	if err != nil {
		entry.WithField("error", err.Error()).Error("Cache clear failed")
		return
	}
	entry.Info("Cache cleared")
}
