package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/model"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
	apperrors "studie-planner/pkg/errors"
	"studie-planner/pkg/redis"
)

// Locker serializes plan regeneration per test across instances.
type Locker interface {
	// Lock takes key for at most ttl. It returns apperrors.ErrBusy when
	// another holder owns it.
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// NewRedisLocker adapts a Redis client. A nil client yields a Locker that
// never blocks, leaving the row lock taken by lockedTx as the only guard.
func NewRedisLocker(c *redis.Client) Locker {
	if c == nil {
		return noopLocker{}
	}
	return redisLocker{c: c}
}

type redisLocker struct{ c *redis.Client }

func (l redisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lock, err := l.c.AcquireLock(ctx, key, ttl)
	if errors.Is(err, redis.ErrLockHeld) {
		return nil, apperrors.ErrBusy
	}
	if err != nil {
		return nil, err
	}
	return func() { lock.Release(context.Background()) }, nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string, time.Duration) (func(), error) {
	return func() {}, nil
}

// planGenerator runs the planner for stored tests and persists the result.
// It is shared by the test and homework services.
type planGenerator struct {
	planner *planner.Planner
	locker  Locker
	lockTTL time.Duration
	loc     *time.Location
	clock   Clock
	logger  *zap.Logger
}

func (g *planGenerator) today() time.Time {
	return dayIn(g.clock(), g.loc)
}

// settingsFor returns the stored settings of userID, or the defaults.
func (g *planGenerator) settingsFor(ctx context.Context, repo *repository.Repository, userID string) (planner.Settings, error) {
	s, err := repo.Settings.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return planner.DefaultSettings(), nil
	}
	if err != nil {
		return planner.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return plannerSettings(s), nil
}

// lockedTx runs fn in one transaction while holding the regeneration lock of
// testID and a row lock on the test. The lock is released only after the
// transaction has committed or rolled back, so a second writer never sees
// a half-replaced plan.
func (g *planGenerator) lockedTx(ctx context.Context, repo *repository.Repository, testID string, fn func(tx *repository.Repository) error) error {
	unlock, err := g.locker.Lock(ctx, "plan:"+testID, g.lockTTL)
	if err != nil {
		return err
	}
	defer unlock()

	return repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Test.LockForUpdate(ctx, testID); err != nil {
			return err
		}
		return fn(tx)
	})
}

// regenerate plans test and replaces its stored entries through repo, which
// may be bound to a transaction. The test must have its Items loaded.
// Callers changing an existing test run it inside lockedTx.
func (g *planGenerator) regenerate(ctx context.Context, repo *repository.Repository, test *model.Test) (planner.Plan, error) {
	settings, err := g.settingsFor(ctx, repo, test.UserID)
	if err != nil {
		return planner.Plan{}, err
	}

	plan := g.planner.Generate(plannerTest(test), settings, g.today())
	items := planningItemsFromEntries(test.UserID, plan.Entries)

	if err := repo.Planning.ReplaceByTest(ctx, test.TestID, items); err != nil {
		return planner.Plan{}, fmt.Errorf("store planning: %w", err)
	}

	g.logger.Info("planning generated",
		zap.String("test_id", test.TestID),
		zap.String("user_id", test.UserID),
		zap.Int("entries", len(items)),
		zap.Int("warnings", len(plan.Warnings)),
	)
	return plan, nil
}
