package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
)

var (
	ErrTestNotFound    = errors.New("test not found")
	ErrTestDateInvalid = errors.New("test date must be YYYY-MM-DD")
)

// TestService manages tests and keeps their planning in sync.
type TestService interface {
	// Create stores the test with its items and plans it. A test without
	// available days is still stored; the plan then carries a warning.
	Create(ctx context.Context, userID string, req *dto.CreateTestRequest) (*dto.TestPlanResponse, error)
	// List returns the tests of userID by date with planning progress.
	List(ctx context.Context, userID string) ([]dto.TestResponse, error)
	Get(ctx context.Context, userID, id string) (*dto.TestResponse, error)
	// ReplaceItems swaps the whole item set and plans the test again.
	ReplaceItems(ctx context.Context, userID, id string, req *dto.ReplaceItemsRequest) (*dto.TestPlanResponse, error)
	// Regenerate replaces the planning of a test with a fresh one.
	Regenerate(ctx context.Context, userID, id string) (*dto.TestPlanResponse, error)
	Delete(ctx context.Context, userID, id string) error
	// Preview plans unsaved items without touching the database.
	Preview(ctx context.Context, userID string, req *dto.PreviewRequest) (*dto.PreviewResponse, error)
}

type testService struct {
	repo   *repository.Repository
	gen    *planGenerator
	logger *zap.Logger
}

// NewTestService creates a TestService.
func NewTestService(repo *repository.Repository, gen *planGenerator, logger *zap.Logger) TestService {
	return &testService{repo: repo, gen: gen, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *testService) Create(ctx context.Context, userID string, req *dto.CreateTestRequest) (*dto.TestPlanResponse, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, ErrTestDateInvalid
	}
	subject, err := ownedSubject(ctx, s.repo, s.logger, userID, req.SubjectID)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		UserID:    userID,
		SubjectID: subject.SubjectID,
		Title:     req.Title,
		Date:      date,
		Items:     testItemsFromRequest(req.Items),
	}
	if test.Title == "" {
		test.Title = subject.Name
	}

	var plan planner.Plan
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Test.Create(ctx, test); err != nil {
			return fmt.Errorf("create test: %w", err)
		}
		plan, err = s.gen.regenerate(ctx, tx, test)
		return err
	})
	if err != nil {
		s.logger.Error("create test failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	test.Subject = subject
	resp := s.toTestResponse(test, nil)
	return &dto.TestPlanResponse{Test: *resp, Plan: planSummary(plan)}, nil
}

// ────────────────────── List ──────────────────────

func (s *testService) List(ctx context.Context, userID string) ([]dto.TestResponse, error) {
	tests, err := s.repo.Test.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list tests failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	ids := make([]string, len(tests))
	for i := range tests {
		ids[i] = tests[i].TestID
	}
	progress, err := s.repo.Planning.ProgressByTests(ctx, ids)
	if err != nil {
		s.logger.Error("load planning progress failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TestResponse, 0, len(tests))
	for i := range tests {
		p := progress[tests[i].TestID]
		result = append(result, *s.toTestResponse(&tests[i], &p))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *testService) Get(ctx context.Context, userID, id string) (*dto.TestResponse, error) {
	test, err := s.owned(ctx, s.repo, userID, id)
	if err != nil {
		return nil, err
	}
	progress, err := s.repo.Planning.ProgressByTests(ctx, []string{id})
	if err != nil {
		s.logger.Error("load planning progress failed", zap.String("test_id", id), zap.Error(err))
		return nil, err
	}
	p := progress[id]
	return s.toTestResponse(test, &p), nil
}

// ────────────────────── ReplaceItems ──────────────────────

func (s *testService) ReplaceItems(ctx context.Context, userID, id string, req *dto.ReplaceItemsRequest) (*dto.TestPlanResponse, error) {
	if _, err := s.owned(ctx, s.repo, userID, id); err != nil {
		return nil, err
	}

	var (
		test *model.Test
		plan planner.Plan
	)
	err := s.gen.lockedTx(ctx, s.repo, id, func(tx *repository.Repository) error {
		if err := tx.Test.ReplaceItems(ctx, id, testItemsFromRequest(req.Items)); err != nil {
			return fmt.Errorf("replace items: %w", err)
		}
		var err error
		if test, err = tx.Test.GetByID(ctx, id); err != nil {
			return fmt.Errorf("reload test: %w", err)
		}
		plan, err = s.gen.regenerate(ctx, tx, test)
		return err
	})
	if err != nil {
		s.logger.Error("replace test items failed", zap.String("test_id", id), zap.Error(err))
		return nil, err
	}

	return &dto.TestPlanResponse{Test: *s.toTestResponse(test, nil), Plan: planSummary(plan)}, nil
}

// ────────────────────── Regenerate ──────────────────────

func (s *testService) Regenerate(ctx context.Context, userID, id string) (*dto.TestPlanResponse, error) {
	if _, err := s.owned(ctx, s.repo, userID, id); err != nil {
		return nil, err
	}

	var (
		test *model.Test
		plan planner.Plan
	)
	err := s.gen.lockedTx(ctx, s.repo, id, func(tx *repository.Repository) error {
		// reload under the lock: a concurrent ReplaceItems may have changed
		// the items since the ownership check
		var err error
		if test, err = tx.Test.GetByID(ctx, id); err != nil {
			return fmt.Errorf("reload test: %w", err)
		}
		plan, err = s.gen.regenerate(ctx, tx, test)
		return err
	})
	if err != nil {
		s.logger.Error("regenerate planning failed", zap.String("test_id", id), zap.Error(err))
		return nil, err
	}

	return &dto.TestPlanResponse{Test: *s.toTestResponse(test, nil), Plan: planSummary(plan)}, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes the test; its items and planning entries cascade.
func (s *testService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, s.repo, userID, id); err != nil {
		return err
	}
	if err := s.repo.Test.Delete(ctx, id); err != nil {
		s.logger.Error("delete test failed", zap.String("test_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Preview ──────────────────────

func (s *testService) Preview(ctx context.Context, userID string, req *dto.PreviewRequest) (*dto.PreviewResponse, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, ErrTestDateInvalid
	}
	today := s.gen.today()
	if req.Today != "" {
		if today, err = dto.ParseDate(req.Today); err != nil {
			return nil, ErrTestDateInvalid
		}
	}

	settings, err := s.gen.settingsFor(ctx, s.repo, userID)
	if err != nil {
		s.logger.Error("load settings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	plan := PreviewPlan(s.gen.planner, date, today, settings, req)
	resp := &dto.PreviewResponse{
		PlanSummary: planSummary(plan),
		Entries:     make([]dto.PlanningItemResponse, 0, len(plan.Entries)),
	}
	for _, e := range plan.Entries {
		resp.Entries = append(resp.Entries, entryToResponse(e))
	}
	return resp, nil
}

// PreviewPlan plans the unsaved items of req. Items get the ids
// "onderdeel-1", "onderdeel-2", ... so warnings can point at them. The
// settings in req, if any, override base.
func PreviewPlan(p *planner.Planner, date, today time.Time, base planner.Settings, req *dto.PreviewRequest) planner.Plan {
	settings := base
	if o := req.Settings; o != nil {
		if o.DailyMinutes != nil {
			settings.DailyMinutes = *o.DailyMinutes
		}
		if o.StudyOnWeekends != nil {
			settings.StudyOnWeekends = *o.StudyOnWeekends
		}
		if o.BufferDays != nil {
			settings.BufferDays = *o.BufferDays
		}
		if o.RepetitionFrequency != nil {
			settings.RepetitionFrequency = *o.RepetitionFrequency
		}
	}

	test := planner.Test{ID: "preview", Date: planner.Day(date)}
	for i, r := range req.Items {
		it := testItemFromRequest(r, i)
		it.TestItemID = fmt.Sprintf("onderdeel-%d", i+1)
		test.Items = append(test.Items, plannerItem(&it))
	}
	return p.Generate(test, settings, planner.Day(today))
}

// ── helpers ──

func (s *testService) owned(ctx context.Context, repo *repository.Repository, userID, id string) (*model.Test, error) {
	test, err := repo.Test.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		s.logger.Error("get test failed", zap.String("test_id", id), zap.Error(err))
		return nil, err
	}
	if test.UserID != userID {
		return nil, ErrTestNotFound
	}
	return test, nil
}

func (s *testService) toTestResponse(t *model.Test, p *repository.Progress) *dto.TestResponse {
	resp := &dto.TestResponse{
		ID:        t.TestID,
		SubjectID: t.SubjectID,
		Subject:   subjectBrief(t.Subject),
		Title:     t.Title,
		Date:      dto.FormatDate(t.Date),
		DaysLeft:  planner.DaysBetween(s.gen.today(), t.Date),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	for i := range t.Items {
		resp.Items = append(resp.Items, testItemToResponse(&t.Items[i]))
	}
	if p != nil {
		resp.Progress = &dto.ProgressResponse{Total: p.Total, Done: p.Done}
		if p.Total > 0 {
			resp.Progress.Percent = p.Done * 100 / p.Total
		}
	}
	return resp
}
