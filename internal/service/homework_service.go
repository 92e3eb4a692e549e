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
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
)

var (
	ErrHomeworkNotFound        = errors.New("homework not found")
	ErrHomeworkDeadlineInvalid = errors.New("homework deadline must be YYYY-MM-DD")
)

// HomeworkService manages homework and its single planning entry.
type HomeworkService interface {
	// Create stores the homework and plans it for the day before the
	// deadline, or today when the deadline is at most a day away.
	Create(ctx context.Context, userID string, req *dto.CreateHomeworkRequest) (*dto.HomeworkResponse, error)
	List(ctx context.Context, userID string, req *dto.HomeworkListRequest) ([]dto.HomeworkResponse, error)
	// Toggle flips the done flag of the homework itself.
	Toggle(ctx context.Context, userID, id string) (*dto.HomeworkResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type homeworkService struct {
	repo   *repository.Repository
	gen    *planGenerator
	logger *zap.Logger
}

// NewHomeworkService creates a HomeworkService.
func NewHomeworkService(repo *repository.Repository, gen *planGenerator, logger *zap.Logger) HomeworkService {
	return &homeworkService{repo: repo, gen: gen, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *homeworkService) Create(ctx context.Context, userID string, req *dto.CreateHomeworkRequest) (*dto.HomeworkResponse, error) {
	deadline, err := dto.ParseDate(req.Deadline)
	if err != nil {
		return nil, ErrHomeworkDeadlineInvalid
	}
	subject, err := ownedSubject(ctx, s.repo, s.logger, userID, req.SubjectID)
	if err != nil {
		return nil, err
	}

	hw := &model.Homework{
		UserID:           userID,
		SubjectID:        subject.SubjectID,
		Description:      req.Description,
		Deadline:         deadline,
		Type:             req.Type,
		EstimatedMinutes: req.EstimatedMinutes,
		Notes:            req.Notes,
	}
	if hw.Type == "" {
		hw.Type = model.HomeworkMake
	}
	if hw.EstimatedMinutes <= 0 {
		hw.EstimatedMinutes = planner.DefaultHomeworkMinutes
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Homework.Create(ctx, hw); err != nil {
			return fmt.Errorf("create homework: %w", err)
		}
		entry := planner.PlanHomework(plannerHomework(hw), s.gen.today())
		item := planningItemFromEntry(userID, entry)
		item.HomeworkID = strPtr(hw.HomeworkID)
		if err := tx.Planning.BatchCreate(ctx, []model.PlanningItem{item}); err != nil {
			return fmt.Errorf("plan homework: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("create homework failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	hw.Subject = subject
	return toHomeworkResponse(hw), nil
}

// ────────────────────── List ──────────────────────

func (s *homeworkService) List(ctx context.Context, userID string, req *dto.HomeworkListRequest) ([]dto.HomeworkResponse, error) {
	list, err := s.repo.Homework.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list homework failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HomeworkResponse, 0, len(list))
	for i := range list {
		if req != nil && req.Open && list[i].Done {
			continue
		}
		result = append(result, *toHomeworkResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Toggle ──────────────────────

func (s *homeworkService) Toggle(ctx context.Context, userID, id string) (*dto.HomeworkResponse, error) {
	hw, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	hw.Done = !hw.Done
	if err := s.repo.Homework.SetDone(ctx, id, hw.Done); err != nil {
		s.logger.Error("toggle homework failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toHomeworkResponse(hw), nil
}

// ────────────────────── Delete ──────────────────────

func (s *homeworkService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Homework.Delete(ctx, id); err != nil {
		s.logger.Error("delete homework failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *homeworkService) owned(ctx context.Context, userID, id string) (*model.Homework, error) {
	hw, err := s.repo.Homework.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeworkNotFound
		}
		s.logger.Error("get homework failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if hw.UserID != userID {
		return nil, ErrHomeworkNotFound
	}
	return hw, nil
}

func toHomeworkResponse(hw *model.Homework) *dto.HomeworkResponse {
	return &dto.HomeworkResponse{
		ID:               hw.HomeworkID,
		Subject:          subjectBrief(hw.Subject),
		Description:      hw.Description,
		Deadline:         dto.FormatDate(hw.Deadline),
		Type:             hw.Type,
		EstimatedMinutes: hw.EstimatedMinutes,
		Notes:            hw.Notes,
		Done:             hw.Done,
		CreatedAt:        hw.CreatedAt.Format(time.RFC3339),
	}
}
