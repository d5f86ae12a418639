package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/metrics"
)

// Prewarmer recomputes and caches the predictions of the given dates
type Prewarmer interface {
	Prewarm(ctx context.Context, dates ...time.Time) error
}

// Scheduler runs the periodic prediction prewarm
type Scheduler struct {
	cron            *cron.Cron
	prewarmer       Prewarmer
	location        *time.Location
	logger          *logrus.Entry
	now             func() time.Time
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a scheduler whose specs are evaluated in loc
func NewScheduler(prewarmer Prewarmer, loc *time.Location, logger *logrus.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(loc)),
		prewarmer:       prewarmer,
		location:        loc,
		logger:          logger.WithField("component", "scheduler"),
		now:             time.Now,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      2 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// PrewarmDates returns today and the following daysAhead days, in loc
func PrewarmDates(now time.Time, loc *time.Location, daysAhead int) []time.Time {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if daysAhead < 0 {
		daysAhead = 0
	}
	dates := make([]time.Time, 0, daysAhead+1)
	for i := 0; i <= daysAhead; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// SchedulePrewarm adds a job that prewarms today and the next daysAhead days
func (s *Scheduler) SchedulePrewarm(cronExpression string, daysAhead int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		_ = s.RunPrewarm(ctx, daysAhead)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"spec":       cronExpression,
		"days_ahead": daysAhead,
	}).Info("Scheduled prediction prewarm")

	return nil
}

// RunPrewarm performs one prewarm immediately
func (s *Scheduler) RunPrewarm(ctx context.Context, daysAhead int) error {
	dates := PrewarmDates(s.now(), s.location, daysAhead)
	if err := s.prewarmer.Prewarm(ctx, dates...); err != nil {
		metrics.RecordScheduledPrewarm("failure")
		s.logger.WithError(err).Warn("Scheduled prewarm failed")
		return err
	}
	metrics.RecordScheduledPrewarm("success")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs, up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
