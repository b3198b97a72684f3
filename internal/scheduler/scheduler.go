// Package scheduler runs the periodic full synchronization. It is a thin
// wrapper over robfig/cron so the wiring stays in one place and the sync
// service itself knows nothing about schedules.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/emirhan/coursedeck/internal/app/services"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
)

// Scheduler triggers full syncs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	sync   services.SyncService
	spec   string
	logger zerolog.Logger
}

// New creates a Scheduler that runs a full sync per the standard 5-field cron
// expression in spec.
func New(syncService services.SyncService, spec string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		sync:   syncService,
		spec:   spec,
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the sync job and starts the cron loop. The expression was
// validated at configuration load, so a parse failure here is a programming
// error worth surfacing.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runSync)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Str("cron", s.spec).Msg("Sync scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Sync scheduler stopped")
}

// runSync executes one scheduled full sync. A run that collides with a
// manually triggered sync is skipped, not queued.
func (s *Scheduler) runSync() {
	s.logger.Info().Msg("Scheduled sync starting")
	start := time.Now()

	err := s.sync.SyncAll(context.Background())
	switch {
	case errors.Is(err, apperrors.ErrSyncInProgress):
		s.logger.Warn().Msg("Scheduled sync skipped, another run is in progress")
	case err != nil:
		s.logger.Error().Err(err).Msg("Scheduled sync failed")
	default:
		s.logger.Info().Dur("elapsed", time.Since(start)).Msg("Scheduled sync completed")
	}
}
