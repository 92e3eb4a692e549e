package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/repository"
)

var (
	ErrPlanningItemNotFound = errors.New("planning item not found")
	ErrDateInvalid          = errors.New("date must be YYYY-MM-DD")
	ErrForbiddenHousehold   = errors.New("user is not in your household")
)

// carryOverPrefix marks a task moved from an earlier day.
const carryOverPrefix = "🔄 "

// PlanningService reads and updates the stored planning.
type PlanningService interface {
	// Day returns the tasks of one day, longest first. An empty date means
	// today.
	Day(ctx context.Context, userID, date string) (*dto.DayPlanningResponse, error)
	// Week returns Monday through Sunday of the week containing start.
	Week(ctx context.Context, userID, start string) (*dto.WeekPlanningResponse, error)
	// ChildDay and ChildWeek let a parent read the planning of a household
	// member.
	ChildDay(ctx context.Context, caller Caller, childID, date string) (*dto.DayPlanningResponse, error)
	ChildWeek(ctx context.Context, caller Caller, childID, start string) (*dto.WeekPlanningResponse, error)
	// Complete marks a task done. The first completion of a task awards
	// the whole household one credit per minute of study.
	Complete(ctx context.Context, caller Caller, itemID string) (*dto.CompleteResponse, error)
	Incomplete(ctx context.Context, caller Caller, itemID string) (*dto.PlanningItemResponse, error)
	// CarryOver copies yesterday's unfinished tasks to today and returns the
	// number copied.
	CarryOver(ctx context.Context) (int, error)
}

type planningService struct {
	repo      *repository.Repository
	gen       *planGenerator
	perMinute int
	logger    *zap.Logger
}

// NewPlanningService creates a PlanningService. Every household member gets
// creditsPerMinute for each estimated minute of a completed task.
func NewPlanningService(repo *repository.Repository, gen *planGenerator, creditsPerMinute int, logger *zap.Logger) PlanningService {
	return &planningService{repo: repo, gen: gen, perMinute: creditsPerMinute, logger: logger}
}

// ────────────────────── Day / Week ──────────────────────

func (s *planningService) Day(ctx context.Context, userID, date string) (*dto.DayPlanningResponse, error) {
	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Planning.ListByUserOn(ctx, userID, day)
	if err != nil {
		s.logger.Error("list day planning failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toDayResponse(day, items)
	return &resp, nil
}

func (s *planningService) Week(ctx context.Context, userID, start string) (*dto.WeekPlanningResponse, error) {
	day, err := s.parseDay(start)
	if err != nil {
		return nil, err
	}
	monday := weekStart(day)
	items, err := s.repo.Planning.ListByUserBetween(ctx, userID, monday, monday.AddDate(0, 0, 7))
	if err != nil {
		s.logger.Error("list week planning failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toWeekResponse(monday, items), nil
}

func (s *planningService) ChildDay(ctx context.Context, caller Caller, childID, date string) (*dto.DayPlanningResponse, error) {
	if err := s.checkHousehold(ctx, caller, childID); err != nil {
		return nil, err
	}
	return s.Day(ctx, childID, date)
}

func (s *planningService) ChildWeek(ctx context.Context, caller Caller, childID, start string) (*dto.WeekPlanningResponse, error) {
	if err := s.checkHousehold(ctx, caller, childID); err != nil {
		return nil, err
	}
	return s.Week(ctx, childID, start)
}

// ────────────────────── Complete ──────────────────────

func (s *planningService) Complete(ctx context.Context, caller Caller, itemID string) (*dto.CompleteResponse, error) {
	item, err := s.owned(ctx, caller.UserID, itemID)
	if err != nil {
		return nil, err
	}

	var awarded int
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if !item.Done {
			now := s.gen.clock()
			if err := tx.Planning.SetDone(ctx, itemID, true, &now); err != nil {
				return fmt.Errorf("mark done: %w", err)
			}
			item.Done, item.DoneAt = true, &now
			if item.HomeworkID != nil {
				if err := tx.Homework.SetDone(ctx, *item.HomeworkID, true); err != nil {
					return fmt.Errorf("mark homework done: %w", err)
				}
			}
		}
		var err error
		awarded, err = awardCompletion(ctx, tx, item, caller.HouseholdID, s.perMinute)
		return err
	})
	if err != nil {
		s.logger.Error("complete planning item failed", zap.String("id", itemID), zap.Error(err))
		return nil, err
	}

	if awarded > 0 {
		s.logger.Info("credits awarded",
			zap.String("planning_item_id", itemID),
			zap.String("household_id", caller.HouseholdID),
			zap.Int("amount", awarded),
		)
	}
	return &dto.CompleteResponse{Item: planningItemToResponse(item), CreditsAwarded: awarded}, nil
}

// ────────────────────── Incomplete ──────────────────────

func (s *planningService) Incomplete(ctx context.Context, caller Caller, itemID string) (*dto.PlanningItemResponse, error) {
	item, err := s.owned(ctx, caller.UserID, itemID)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Planning.SetDone(ctx, itemID, false, nil); err != nil {
			return fmt.Errorf("mark not done: %w", err)
		}
		if item.HomeworkID != nil {
			if err := tx.Homework.SetDone(ctx, *item.HomeworkID, false); err != nil {
				return fmt.Errorf("mark homework not done: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("uncomplete planning item failed", zap.String("id", itemID), zap.Error(err))
		return nil, err
	}

	item.Done, item.DoneAt = false, nil
	resp := planningItemToResponse(item)
	return &resp, nil
}

// ────────────────────── CarryOver ──────────────────────

// CarryOver copies every unfinished task of yesterday to today. A task is
// skipped when today already has one for the same test item or homework,
// so running it twice copies nothing the second time.
func (s *planningService) CarryOver(ctx context.Context) (int, error) {
	today := s.gen.today()
	yesterday := today.AddDate(0, 0, -1)

	pending, err := s.repo.Planning.ListUnfinishedOn(ctx, yesterday)
	if err != nil {
		return 0, fmt.Errorf("list unfinished: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	byUser := make(map[string][]model.PlanningItem)
	var order []string
	for _, p := range pending {
		if _, ok := byUser[p.UserID]; !ok {
			order = append(order, p.UserID)
		}
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	copied := 0
	for _, userID := range order {
		existing, err := s.repo.Planning.ListByUserOn(ctx, userID, today)
		if err != nil {
			return copied, fmt.Errorf("list today for %s: %w", userID, err)
		}
		seen := make(map[string]bool, len(existing))
		for i := range existing {
			seen[existing[i].SourceKey()] = true
		}

		var copies []model.PlanningItem
		for i := range byUser[userID] {
			src := &byUser[userID][i]
			if seen[src.SourceKey()] {
				continue
			}
			c := carriedCopy(src, today)
			seen[c.SourceKey()] = true
			copies = append(copies, c)
		}
		if len(copies) == 0 {
			continue
		}
		if err := s.repo.Planning.BatchCreate(ctx, copies); err != nil {
			return copied, fmt.Errorf("copy tasks for %s: %w", userID, err)
		}
		copied += len(copies)
	}

	s.logger.Info("carried over unfinished tasks",
		zap.String("from", dto.FormatDate(yesterday)),
		zap.Int("count", copied),
	)
	return copied, nil
}

func carriedCopy(src *model.PlanningItem, day time.Time) model.PlanningItem {
	c := model.PlanningItem{
		UserID:           src.UserID,
		Date:             day,
		Kind:             src.Kind,
		Description:      src.Description,
		EstimatedMinutes: src.EstimatedMinutes,
		TestID:           src.TestID,
		TestItemID:       src.TestItemID,
		HomeworkID:       src.HomeworkID,
		ChapterNumbers:   src.ChapterNumbers,
		WordsFrom:        src.WordsFrom,
		WordsTo:          src.WordsTo,
		ExercisesFrom:    src.ExercisesFrom,
		ExercisesTo:      src.ExercisesTo,
		CarriedOver:      true,
		CarriedFromID:    strPtr(src.PlanningItemID),
	}
	if src.CarriedFromID != nil {
		c.CarriedFromID = src.CarriedFromID
	}
	if !strings.HasPrefix(c.Description, carryOverPrefix) {
		c.Description = carryOverPrefix + c.Description
	}
	return c
}

// ── helpers ──

func (s *planningService) parseDay(date string) (time.Time, error) {
	if date == "" {
		return s.gen.today(), nil
	}
	d, err := dto.ParseDate(date)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	return d, nil
}

func (s *planningService) owned(ctx context.Context, userID, id string) (*model.PlanningItem, error) {
	item, err := s.repo.Planning.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanningItemNotFound
		}
		s.logger.Error("get planning item failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrPlanningItemNotFound
	}
	return item, nil
}

func (s *planningService) checkHousehold(ctx context.Context, caller Caller, userID string) error {
	u, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbiddenHousehold
		}
		s.logger.Error("get user failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	if u.HouseholdID != caller.HouseholdID {
		return ErrForbiddenHousehold
	}
	return nil
}

func toDayResponse(day time.Time, items []model.PlanningItem) dto.DayPlanningResponse {
	resp := dto.DayPlanningResponse{
		Date:  dto.FormatDate(day),
		Items: make([]dto.PlanningItemResponse, 0, len(items)),
	}
	for i := range items {
		resp.Items = append(resp.Items, planningItemToResponse(&items[i]))
		resp.TotalMinutes += items[i].EstimatedMinutes
		if items[i].Done {
			resp.DoneMinutes += items[i].EstimatedMinutes
		}
	}
	return resp
}

// toWeekResponse groups items by day; items must fall within the week.
func toWeekResponse(monday time.Time, items []model.PlanningItem) *dto.WeekPlanningResponse {
	byDay := make(map[string][]model.PlanningItem, 7)
	for _, it := range items {
		k := dto.FormatDate(it.Date)
		byDay[k] = append(byDay[k], it)
	}

	_, week := monday.ISOWeek()
	resp := &dto.WeekPlanningResponse{
		Start: dto.FormatDate(monday),
		End:   dto.FormatDate(monday.AddDate(0, 0, 6)),
		Week:  week,
		Days:  make([]dto.DayPlanningResponse, 0, 7),
	}
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		resp.Days = append(resp.Days, toDayResponse(d, byDay[dto.FormatDate(d)]))
	}
	return resp
}
