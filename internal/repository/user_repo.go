package repository

import (
	"context"

	"gorm.io/gorm"

	"studie-planner/internal/model"
)

// UserRepository reads household members.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListByHousehold(ctx context.Context, householdID string) ([]model.User, error)
	ListIDsByHousehold(ctx context.Context, householdID string) ([]string, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListByHousehold(ctx context.Context, householdID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListIDsByHousehold(ctx context.Context, householdID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("household_id = ?", householdID).
		Pluck("user_id", &ids).Error
	return ids, err
}
