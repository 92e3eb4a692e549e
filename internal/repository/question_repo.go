package repository

import (
	"context"

	"gorm.io/gorm"

	"studie-planner/internal/model"
)

// QuestionRepository stores household Q&A threads.
type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	// ListByHousehold returns one page of threads newest first with the total
	// count; an empty status means all.
	ListByHousehold(ctx context.Context, householdID, status string, offset, limit int) ([]model.Question, int64, error)
	CreateAnswer(ctx context.Context, a *model.Answer) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type questionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, q *model.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	err := r.db.WithContext(ctx).Where("question_id = ?", id).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepo) ListByHousehold(ctx context.Context, householdID, status string, offset, limit int) ([]model.Question, int64, error) {
	var (
		list  []model.Question
		total int64
	)
	db := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("household_id = ?", householdID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.
		Preload("Asker").
		Preload("Subject").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Answers.User").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error
	return list, total, err
}

func (r *questionRepo) CreateAnswer(ctx context.Context, a *model.Answer) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *questionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Question{}).
		Where("question_id = ?", id).
		Update("status", status).Error
}
