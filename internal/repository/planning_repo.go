package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"studie-planner/internal/model"
)

// Progress counts the planning entries of one test.
type Progress struct {
	TestID string `gorm:"column:test_id"`
	Total  int    `gorm:"column:total"`
	Done   int    `gorm:"column:done"`
}

// PlanningRepository stores planning entries.
type PlanningRepository interface {
	BatchCreate(ctx context.Context, items []model.PlanningItem) error
	GetByID(ctx context.Context, id string) (*model.PlanningItem, error)
	// ListByUserBetween returns entries with from <= date < to, ordered by
	// date then estimate descending.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]model.PlanningItem, error)
	// ListUnfinishedOn returns every unfinished entry of all users on date.
	ListUnfinishedOn(ctx context.Context, date time.Time) ([]model.PlanningItem, error)
	ListByUserOn(ctx context.Context, userID string, date time.Time) ([]model.PlanningItem, error)
	// ReplaceByTest deletes every entry of testID and inserts items in one
	// transaction.
	ReplaceByTest(ctx context.Context, testID string, items []model.PlanningItem) error
	DeleteByTest(ctx context.Context, testID string) error
	DeleteByHomework(ctx context.Context, homeworkID string) error
	// SetDone updates the completion state.
	SetDone(ctx context.Context, id string, done bool, at *time.Time) error
	// MarkCreditsAwarded flips the award flag once; it reports false when the
	// flag was already set.
	MarkCreditsAwarded(ctx context.Context, id string) (bool, error)
	ProgressByTests(ctx context.Context, testIDs []string) (map[string]Progress, error)
}

type planningRepo struct {
	db *gorm.DB
}

func NewPlanningRepo(db *gorm.DB) PlanningRepository {
	return &planningRepo{db: db}
}

func (r *planningRepo) BatchCreate(ctx context.Context, items []model.PlanningItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&items, 200).Error
}

func (r *planningRepo) GetByID(ctx context.Context, id string) (*model.PlanningItem, error) {
	var item model.PlanningItem
	err := r.db.WithContext(ctx).
		Where("planning_item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *planningRepo) withSubjects(db *gorm.DB) *gorm.DB {
	return db.Preload("Test").Preload("Test.Subject").
		Preload("Homework").Preload("Homework.Subject")
}

func (r *planningRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]model.PlanningItem, error) {
	var items []model.PlanningItem
	err := r.withSubjects(r.db.WithContext(ctx)).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, estimated_minutes DESC").
		Find(&items).Error
	return items, err
}

func (r *planningRepo) ListByUserOn(ctx context.Context, userID string, date time.Time) ([]model.PlanningItem, error) {
	return r.ListByUserBetween(ctx, userID, date, date.AddDate(0, 0, 1))
}

func (r *planningRepo) ListUnfinishedOn(ctx context.Context, date time.Time) ([]model.PlanningItem, error) {
	var items []model.PlanningItem
	err := r.db.WithContext(ctx).
		Where("date = ? AND done = ?", date, false).
		Order("user_id ASC").
		Find(&items).Error
	return items, err
}

func (r *planningRepo) ReplaceByTest(ctx context.Context, testID string, items []model.PlanningItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.PlanningItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(&items, 200).Error
	})
}

func (r *planningRepo) DeleteByTest(ctx context.Context, testID string) error {
	return r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Delete(&model.PlanningItem{}).Error
}

func (r *planningRepo) DeleteByHomework(ctx context.Context, homeworkID string) error {
	return r.db.WithContext(ctx).
		Where("homework_id = ?", homeworkID).
		Delete(&model.PlanningItem{}).Error
}

func (r *planningRepo) SetDone(ctx context.Context, id string, done bool, at *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.PlanningItem{}).
		Where("planning_item_id = ?", id).
		Updates(map[string]interface{}{
			"done":       done,
			"done_at":    at,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *planningRepo) MarkCreditsAwarded(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PlanningItem{}).
		Where("planning_item_id = ? AND credits_awarded = ?", id, false).
		Update("credits_awarded", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *planningRepo) ProgressByTests(ctx context.Context, testIDs []string) (map[string]Progress, error) {
	out := make(map[string]Progress, len(testIDs))
	if len(testIDs) == 0 {
		return out, nil
	}
	var rows []Progress
	err := r.db.WithContext(ctx).
		Model(&model.PlanningItem{}).
		Select("test_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE done) AS done").
		Where("test_id IN ?", testIDs).
		Group("test_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.TestID] = row
	}
	return out, nil
}
