package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// CarryOverRunner moves yesterday's unfinished tasks to today.
type CarryOverRunner interface {
	CarryOver(ctx context.Context) (int, error)
}

// Scheduler runs the periodic planning jobs.
type Scheduler struct {
	cron      *gocron.Scheduler
	carryOver CarryOverRunner
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a scheduler that evaluates times in loc.
func New(loc *time.Location, carryOver CarryOverRunner, logger *zap.Logger) *Scheduler {
	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()
	return &Scheduler{
		cron:      cron,
		carryOver: carryOver,
		timeout:   5 * time.Minute,
		logger:    logger.Named("jobs"),
	}
}

// ScheduleCarryOver runs the carry-over every day at at (HH:MM).
func (s *Scheduler) ScheduleCarryOver(at string) error {
	if _, err := s.cron.Every(1).Day().At(at).Tag("carry-over").Do(s.runCarryOver); err != nil {
		return fmt.Errorf("schedule carry-over at %s: %w", at, err)
	}
	s.logger.Info("carry-over scheduled", zap.String("at", at))
	return nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Jobs returns the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Jobs())
}

func (s *Scheduler) runCarryOver() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.carryOver.CarryOver(ctx)
	if err != nil {
		s.logger.Error("carry-over failed", zap.Error(err))
		return
	}
	s.logger.Info("carry-over finished",
		zap.Int("copied", n),
		zap.Duration("took", time.Since(start)),
	)
}
