// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/events"
	"github.com/kuriftu/essence/internal/logging"
	"github.com/kuriftu/essence/internal/metrics"
	"github.com/kuriftu/essence/internal/store"
	"github.com/robfig/cron/v3"
)

// Scheduler owns the background maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	db     *store.DB
	hub    *events.Hub
	logDir string
}

// NewScheduler creates a scheduler running on UTC.
func NewScheduler(db *store.DB, hub *events.Hub, logDir string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		db:     db,
		hub:    hub,
		logDir: logDir,
	}
}

// Start registers the jobs, refreshes the gauges once and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(config.LogCleanupSchedule, s.cleanLogs); err != nil {
		return fmt.Errorf("schedule log cleanup: %w", err)
	}
	if _, err := s.cron.AddFunc(config.GaugeRefreshSchedule, s.refreshGauges); err != nil {
		return fmt.Errorf("schedule gauge refresh: %w", err)
	}

	s.refreshGauges()
	s.cron.Start()

	slog.Info("scheduler started",
		"jobs", len(s.cron.Entries()),
		"logCleanup", config.LogCleanupSchedule,
		"gaugeRefresh", config.GaugeRefreshSchedule,
	)
	return nil
}

// Stop halts the cron loop and waits for running jobs, up to SchedulerStopTimeout.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		slog.Info("scheduler stopped")
	case <-time.After(config.SchedulerStopTimeout):
		slog.Warn("scheduler stop timed out", "timeout", config.SchedulerStopTimeout)
	}
}

func (s *Scheduler) cleanLogs() {
	removed := logging.CleanOldLogs(s.logDir, config.LogMaxAgeDays)
	metrics.LogFilesRemoved.Add(float64(removed))
	slog.Info("log cleanup finished", "removed", removed, "maxAgeDays", config.LogMaxAgeDays)
}

func (s *Scheduler) refreshGauges() {
	n, err := s.db.CountAccounts()
	if err != nil {
		slog.Error("failed to refresh account gauge", "error", err)
	} else {
		metrics.Accounts.Set(float64(n))
	}
	metrics.EventClients.Set(float64(s.hub.ClientCount()))

	slog.Debug("gauges refreshed", "accounts", n, "eventClients", s.hub.ClientCount())
}
