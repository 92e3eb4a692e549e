package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"studie-planner/config"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
	"studie-planner/pkg/redis"
)

// Service aggregates every service.
type Service struct {
	Subject  SubjectService
	Test     TestService
	Homework HomeworkService
	Planning PlanningService
	Settings SettingsService
	Question QuestionService
	Credit   CreditService
	Export   ExportService
}

// NewService builds all services. rdb may be nil when Redis is not
// configured; clock may be nil to use the wall clock.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	clock Clock,
	logger *zap.Logger,
) (*Service, error) {
	policy, err := planner.ParseStartPolicy(cfg.Planning.StartPolicy)
	if err != nil {
		return nil, fmt.Errorf("planning.start_policy: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}

	gen := &planGenerator{
		planner: planner.New(planner.WithStartPolicy(policy)),
		locker:  NewRedisLocker(rdb),
		lockTTL: cfg.Planning.LockTTL,
		loc:     cfg.Planning.Location(),
		clock:   clock,
		logger:  logger.Named("planner"),
	}

	return &Service{
		Subject:  NewSubjectService(repo, logger),
		Test:     NewTestService(repo, gen, logger),
		Homework: NewHomeworkService(repo, gen, logger),
		Planning: NewPlanningService(repo, gen, cfg.Planning.CreditsPerMinute, logger),
		Settings: NewSettingsService(repo, logger),
		Question: NewQuestionService(repo, logger),
		Credit:   NewCreditService(repo, logger),
		Export:   NewExportService(repo, gen, cfg.Export.CalendarDays, cfg.Export.PDFTempDir, logger),
	}, nil
}
