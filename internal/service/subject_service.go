package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/repository"
)

var ErrSubjectNotFound = errors.New("subject not found")

const defaultSubjectColor = "#3b82f6"

// SubjectService manages the subjects of a student.
type SubjectService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	List(ctx context.Context, userID string) ([]dto.SubjectResponse, error)
	Get(ctx context.Context, userID, id string) (*dto.SubjectResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService creates a SubjectService.
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *subjectService) Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := &model.Subject{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}
	if subject.Color == "" {
		subject.Color = defaultSubjectColor
	}

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("create subject failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

// ────────────────────── List ──────────────────────

func (s *subjectService) List(ctx context.Context, userID string) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list subjects failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *subjectService) Get(ctx context.Context, userID, id string) (*dto.SubjectResponse, error) {
	subject, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, userID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Color != nil {
		subject.Color = *req.Color
	}

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("update subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes the subject together with its tests and homework.
func (s *subjectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		s.logger.Error("delete subject failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *subjectService) owned(ctx context.Context, userID, id string) (*model.Subject, error) {
	return ownedSubject(ctx, s.repo, s.logger, userID, id)
}

// ownedSubject loads a subject of userID. Subjects of other users are
// reported as not found.
func ownedSubject(ctx context.Context, repo *repository.Repository, logger *zap.Logger, userID, id string) (*model.Subject, error) {
	subject, err := repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		logger.Error("get subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if subject.UserID != userID {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

func toSubjectResponse(s *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:        s.SubjectID,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
