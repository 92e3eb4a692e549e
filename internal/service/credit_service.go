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
	"studie-planner/internal/repository"
)

var (
	ErrNoCredits   = errors.New("no credits left")
	ErrUnknownGame = errors.New("unknown game")
)

const defaultLeaderboardLimit = 10

// CreditService manages arcade credits and scores.
type CreditService interface {
	Balance(ctx context.Context, userID string) (*dto.CreditsResponse, error)
	// Spend takes one credit from the caller's own balance.
	Spend(ctx context.Context, userID string) (*dto.CreditsResponse, error)
	SaveScore(ctx context.Context, userID string, req *dto.SaveScoreRequest) (*dto.ScoreResponse, error)
	// Leaderboard ranks the scores of one game within the household.
	Leaderboard(ctx context.Context, caller Caller, req *dto.LeaderboardRequest) ([]dto.ScoreResponse, error)
}

type creditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCreditService creates a CreditService.
func NewCreditService(repo *repository.Repository, logger *zap.Logger) CreditService {
	return &creditService{repo: repo, logger: logger}
}

// ────────────────────── Balance ──────────────────────

func (s *creditService) Balance(ctx context.Context, userID string) (*dto.CreditsResponse, error) {
	n, err := balance(ctx, s.repo, userID)
	if err != nil {
		s.logger.Error("load credits failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &dto.CreditsResponse{Credits: n}, nil
}

// ────────────────────── Spend ──────────────────────

func (s *creditService) Spend(ctx context.Context, userID string) (*dto.CreditsResponse, error) {
	var left int
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		ok, err := tx.Credit.Spend(ctx, userID)
		if err != nil {
			return fmt.Errorf("spend credit: %w", err)
		}
		if !ok {
			return ErrNoCredits
		}
		if err := tx.Credit.LogTransactions(ctx, []model.CreditTransaction{{
			UserID: userID,
			Amount: -1,
			Reason: model.CreditReasonSpend,
		}}); err != nil {
			return fmt.Errorf("log credit spend: %w", err)
		}
		left, err = balance(ctx, tx, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNoCredits) {
			s.logger.Error("spend credit failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	return &dto.CreditsResponse{Credits: left}, nil
}

// ────────────────────── Scores ──────────────────────

func (s *creditService) SaveScore(ctx context.Context, userID string, req *dto.SaveScoreRequest) (*dto.ScoreResponse, error) {
	if !dto.IsGame(req.Game) {
		return nil, ErrUnknownGame
	}
	score := &model.GameScore{UserID: userID, Game: req.Game, Score: req.Score}
	if err := s.repo.Credit.CreateScore(ctx, score); err != nil {
		s.logger.Error("save score failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &dto.ScoreResponse{
		Game:      score.Game,
		Score:     score.Score,
		CreatedAt: score.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *creditService) Leaderboard(ctx context.Context, caller Caller, req *dto.LeaderboardRequest) ([]dto.ScoreResponse, error) {
	game, limit := model.GameBreakout, defaultLeaderboardLimit
	if req != nil {
		if req.Game != "" {
			game = req.Game
		}
		if req.Limit > 0 {
			limit = req.Limit
		}
	}
	if !dto.IsGame(game) {
		return nil, ErrUnknownGame
	}

	scores, err := s.repo.Credit.Leaderboard(ctx, game, caller.HouseholdID, limit)
	if err != nil {
		s.logger.Error("load leaderboard failed", zap.String("game", game), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScoreResponse, 0, len(scores))
	for i := range scores {
		result = append(result, dto.ScoreResponse{
			Rank:      i + 1,
			Game:      scores[i].Game,
			Score:     scores[i].Score,
			User:      userBrief(scores[i].User),
			CreatedAt: scores[i].CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// ── helpers ──

func balance(ctx context.Context, repo *repository.Repository, userID string) (int, error) {
	c, err := repo.Credit.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Credits, nil
}

// awardCompletion gives every member of the household perMinute credits for
// each estimated minute of item. The award flag on the item makes this happen
// at most once per item; it returns the amount per member actually awarded.
func awardCompletion(ctx context.Context, tx *repository.Repository, item *model.PlanningItem, householdID string, perMinute int) (int, error) {
	amount := item.EstimatedMinutes * perMinute
	if amount <= 0 {
		return 0, nil
	}
	first, err := tx.Planning.MarkCreditsAwarded(ctx, item.PlanningItemID)
	if err != nil {
		return 0, fmt.Errorf("mark credits awarded: %w", err)
	}
	if !first {
		return 0, nil
	}

	members := []string{item.UserID}
	if householdID != "" {
		ids, err := tx.User.ListIDsByHousehold(ctx, householdID)
		if err != nil {
			return 0, fmt.Errorf("list household: %w", err)
		}
		if len(ids) > 0 {
			members = ids
		}
	}

	if err := tx.Credit.Add(ctx, members, amount); err != nil {
		return 0, fmt.Errorf("add credits: %w", err)
	}
	txs := make([]model.CreditTransaction, len(members))
	for i, id := range members {
		txs[i] = model.CreditTransaction{
			UserID:         id,
			Amount:         amount,
			Reason:         model.CreditReasonCompletion,
			PlanningItemID: strPtr(item.PlanningItemID),
		}
	}
	if err := tx.Credit.LogTransactions(ctx, txs); err != nil {
		return 0, fmt.Errorf("log credits: %w", err)
	}
	return amount, nil
}
