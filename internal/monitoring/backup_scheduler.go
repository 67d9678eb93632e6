package monitoring

import (
	"fmt"
	"time"

	"github.com/pcruz7/notebook-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// BackupScheduler runs database snapshots on a cron schedule.
type BackupScheduler struct {
	backupSvc services.BackupServiceProvider
	schedule  cron.Schedule
	nextRun   time.Time
	ticker    *time.Ticker
	done      chan bool
}

// NewBackupScheduler creates a scheduler from a standard cron expression.
func NewBackupScheduler(backupSvc services.BackupServiceProvider, cronExpression string) (*BackupScheduler, error) {
	schedule, err := cron.ParseStandard(cronExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", cronExpression, err)
	}
	return &BackupScheduler{
		backupSvc: backupSvc,
		schedule:  schedule,
		done:      make(chan bool),
	}, nil
}

// Run starts the scheduler's ticking loop.
func (s *BackupScheduler) Run() {
	log.Info().Time("next_run", s.schedule.Next(time.Now())).Msg("Starting backup scheduler")
	s.nextRun = s.schedule.Next(time.Now())
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping backup scheduler")
			return
		case <-s.ticker.C:
			s.runIfDue()
		}
	}
}

// Stop halts the scheduler.
func (s *BackupScheduler) Stop() {
	s.done <- true
}

func (s *BackupScheduler) runIfDue() {
	now := time.Now()
	if now.Before(s.nextRun) {
		return
	}
	s.nextRun = s.schedule.Next(now)

	// Run in a goroutine to not block the ticking loop.
	go func() {
		backup, err := s.backupSvc.CreateBackup()
		if err != nil {
			log.Error().Err(err).Msg("Scheduled backup failed")
			return
		}
		log.Info().Str("backup", backup.Name).Int64("size_bytes", backup.SizeBytes).Msg("Scheduled backup created")
	}()
}
