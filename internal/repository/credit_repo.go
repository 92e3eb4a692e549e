package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studie-planner/internal/model"
)

// CreditRepository stores arcade credits and scores.
type CreditRepository interface {
	Get(ctx context.Context, userID string) (*model.GameCredit, error)
	// Add increments the balance of every user, creating missing rows.
	Add(ctx context.Context, userIDs []string, amount int) error
	// Spend decrements the balance by one if it is positive and reports
	// whether it did.
	Spend(ctx context.Context, userID string) (bool, error)
	LogTransactions(ctx context.Context, txs []model.CreditTransaction) error
	CreateScore(ctx context.Context, score *model.GameScore) error
	// Leaderboard returns the best scores of game within one household.
	Leaderboard(ctx context.Context, game, householdID string, limit int) ([]model.GameScore, error)
}

type creditRepo struct {
	db *gorm.DB
}

func NewCreditRepo(db *gorm.DB) CreditRepository {
	return &creditRepo{db: db}
}

func (r *creditRepo) Get(ctx context.Context, userID string) (*model.GameCredit, error) {
	var c model.GameCredit
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creditRepo) Add(ctx context.Context, userIDs []string, amount int) error {
	if len(userIDs) == 0 || amount == 0 {
		return nil
	}
	rows := make([]model.GameCredit, len(userIDs))
	for i, id := range userIDs {
		rows[i] = model.GameCredit{UserID: id, Credits: amount}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"credits":    gorm.Expr("game_credits.credits + EXCLUDED.credits"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&rows).Error
}

func (r *creditRepo) Spend(ctx context.Context, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.GameCredit{}).
		Where("user_id = ? AND credits > 0", userID).
		Updates(map[string]interface{}{
			"credits":    gorm.Expr("credits - 1"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *creditRepo) LogTransactions(ctx context.Context, txs []model.CreditTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&txs).Error
}

func (r *creditRepo) CreateScore(ctx context.Context, score *model.GameScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *creditRepo) Leaderboard(ctx context.Context, game, householdID string, limit int) ([]model.GameScore, error) {
	var scores []model.GameScore
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.user_id = game_scores.user_id").
		Where("game_scores.game = ? AND users.household_id = ?", game, householdID).
		Order("game_scores.score DESC, game_scores.created_at ASC").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}
