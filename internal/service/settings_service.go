package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
)

// SettingsService reads and stores planning settings.
type SettingsService interface {
	// Get returns the stored settings, or the defaults when none are stored.
	Get(ctx context.Context, userID string) (*dto.SettingsResponse, error)
	// Update merges req into the current settings and stores the result.
	Update(ctx context.Context, userID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	current, stored, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(current, stored), nil
}

func (s *settingsService) Update(ctx context.Context, userID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	current, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	applySettings(current, req)

	if err := s.repo.Settings.Upsert(ctx, current); err != nil {
		s.logger.Error("store settings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(current, true), nil
}

func (s *settingsService) load(ctx context.Context, userID string) (*model.UserSettings, bool, error) {
	current, err := s.repo.Settings.Get(ctx, userID)
	if err == nil {
		return current, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("load settings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, false, err
	}
	d := planner.DefaultSettings()
	return &model.UserSettings{
		UserID:              userID,
		DailyMinutes:        d.DailyMinutes,
		StudyOnWeekends:     d.StudyOnWeekends,
		BufferDays:          d.BufferDays,
		RepetitionFrequency: d.RepetitionFrequency,
	}, false, nil
}

// applySettings copies the non-nil fields of req onto s.
func applySettings(s *model.UserSettings, req *dto.UpdateSettingsRequest) {
	if req == nil {
		return
	}
	if req.DailyMinutes != nil {
		s.DailyMinutes = *req.DailyMinutes
	}
	if req.StudyOnWeekends != nil {
		s.StudyOnWeekends = *req.StudyOnWeekends
	}
	if req.BufferDays != nil {
		s.BufferDays = *req.BufferDays
	}
	if req.RepetitionFrequency != nil {
		s.RepetitionFrequency = *req.RepetitionFrequency
	}
}

func toSettingsResponse(s *model.UserSettings, stored bool) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		DailyMinutes:        s.DailyMinutes,
		StudyOnWeekends:     s.StudyOnWeekends,
		BufferDays:          s.BufferDays,
		RepetitionFrequency: s.RepetitionFrequency,
		Stored:              stored,
	}
}
