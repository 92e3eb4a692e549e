package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studie-planner/internal/model"
)

// TestRepository stores tests together with their content items.
type TestRepository interface {
	// Create inserts the test and its Items.
	Create(ctx context.Context, test *model.Test) error
	GetByID(ctx context.Context, id string) (*model.Test, error)
	ListByUser(ctx context.Context, userID string) ([]model.Test, error)
	// ReplaceItems swaps the whole item set of a test in one transaction.
	ReplaceItems(ctx context.Context, testID string, items []model.TestItem) error
	// Delete removes the test; items and planning entries cascade.
	Delete(ctx context.Context, id string) error
	// LockForUpdate takes a row lock on the test until the surrounding
	// transaction ends.
	LockForUpdate(ctx context.Context, id string) error
}

type testRepo struct {
	db *gorm.DB
}

func NewTestRepo(db *gorm.DB) TestRepository {
	return &testRepo{db: db}
}

func (r *testRepo) Create(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepo) GetByID(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("test_id = ?", id).
		First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepo) ReplaceItems(ctx context.Context, testID string, items []model.TestItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.TestItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].TestID = testID
		}
		return tx.Create(&items).Error
	})
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("test_id = ?", id).
		Delete(&model.Test{}).Error
}

func (r *testRepo) LockForUpdate(ctx context.Context, id string) error {
	var test model.Test
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("test_id").
		Where("test_id = ?", id).
		First(&test).Error
}
