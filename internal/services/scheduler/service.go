// Package scheduler runs the periodic cache sweep for the market data
// service so expired entries do not accumulate between lookups.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// CacheSweeper is the slice of the market data service the scheduler needs
type CacheSweeper interface {
	SweepCache() int
}

// Service owns the cron runner for cache maintenance
type Service struct {
	sweeper CacheSweeper
	cron    *cron.Cron
	logger  arbor.ILogger
	running bool
}

// NewService creates a scheduler around a cache sweeper
func NewService(sweeper CacheSweeper, logger arbor.ILogger) *Service {
	return &Service{
		sweeper: sweeper,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start begins sweeping on the given cron expression
func (s *Service) Start(cronExpr string) error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if cronExpr == "" {
		cronExpr = "*/5 * * * *" // Default: every 5 minutes
	}

	if _, err := s.cron.AddFunc(cronExpr, s.sweep); err != nil {
		return fmt.Errorf("failed to add cache sweep job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", cronExpr).
		Msg("Cache sweep scheduler started")

	return nil
}

// Stop halts the cron runner and waits for an in-flight sweep to finish
func (s *Service) Stop() {
	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Cache sweep scheduler stopped")
}

func (s *Service) sweep() {
	evicted := s.sweeper.SweepCache()
	if evicted > 0 {
		s.logger.Debug().
			Int("evicted", evicted).
			Msg("Swept expired cache entries")
	}
}
