package repository

import (
	"context"

	"gorm.io/gorm"

	"studie-planner/internal/model"
)

// HomeworkRepository stores homework assignments.
type HomeworkRepository interface {
	Create(ctx context.Context, hw *model.Homework) error
	GetByID(ctx context.Context, id string) (*model.Homework, error)
	ListByUser(ctx context.Context, userID string) ([]model.Homework, error)
	SetDone(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
}

type homeworkRepo struct {
	db *gorm.DB
}

func NewHomeworkRepo(db *gorm.DB) HomeworkRepository {
	return &homeworkRepo{db: db}
}

func (r *homeworkRepo) Create(ctx context.Context, hw *model.Homework) error {
	return r.db.WithContext(ctx).Create(hw).Error
}

func (r *homeworkRepo) GetByID(ctx context.Context, id string) (*model.Homework, error) {
	var hw model.Homework
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("homework_id = ?", id).
		First(&hw).Error
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

func (r *homeworkRepo) ListByUser(ctx context.Context, userID string) ([]model.Homework, error) {
	var list []model.Homework
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ?", userID).
		Order("done ASC, deadline ASC").
		Find(&list).Error
	return list, err
}

func (r *homeworkRepo) SetDone(ctx context.Context, id string, done bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Homework{}).
		Where("homework_id = ?", id).
		Update("done", done).Error
}

func (r *homeworkRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("homework_id = ?", id).
		Delete(&model.Homework{}).Error
}
