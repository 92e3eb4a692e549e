package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository.
type Repository struct {
	db *gorm.DB

	User     UserRepository
	Subject  SubjectRepository
	Test     TestRepository
	Homework HomeworkRepository
	Planning PlanningRepository
	Settings SettingsRepository
	Question QuestionRepository
	Credit   CreditRepository
}

// NewRepository builds the aggregate on top of db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:       db,
		User:     NewUserRepo(db),
		Subject:  NewSubjectRepo(db),
		Test:     NewTestRepo(db),
		Homework: NewHomeworkRepo(db),
		Planning: NewPlanningRepo(db),
		Settings: NewSettingsRepo(db),
		Question: NewQuestionRepo(db),
		Credit:   NewCreditRepo(db),
	}
}

// Transaction runs fn with a Repository bound to one database transaction.
// A Repository without a database (assembled from mocks in tests) runs fn
// directly on itself.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
