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

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrQuestionForbidden = errors.New("only the asker or a parent can resolve a question")
)

// QuestionService runs the household Q&A threads.
type QuestionService interface {
	// List returns one page of household threads, newest first, with
	// answers in the order they were given.
	List(ctx context.Context, caller Caller, req *dto.QuestionListRequest) ([]dto.QuestionResponse, int64, error)
	Ask(ctx context.Context, caller Caller, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	Answer(ctx context.Context, caller Caller, questionID string, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error)
	// Resolve marks a thread opgelost.
	Resolve(ctx context.Context, caller Caller, questionID string) error
}

type questionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewQuestionService creates a QuestionService.
func NewQuestionService(repo *repository.Repository, logger *zap.Logger) QuestionService {
	return &questionService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *questionService) List(ctx context.Context, caller Caller, req *dto.QuestionListRequest) ([]dto.QuestionResponse, int64, error) {
	list, total, err := s.repo.Question.ListByHousehold(ctx, caller.HouseholdID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list questions failed", zap.String("household_id", caller.HouseholdID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.QuestionResponse, 0, len(list))
	for i := range list {
		result = append(result, *toQuestionResponse(&list[i]))
	}
	return result, total, nil
}

// ────────────────────── Ask ──────────────────────

func (s *questionService) Ask(ctx context.Context, caller Caller, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	q := &model.Question{
		HouseholdID: caller.HouseholdID,
		UserID:      caller.UserID,
		Body:        req.Body,
		Context:     req.Context,
		Status:      model.QuestionOpen,
	}

	if req.SubjectID != nil && *req.SubjectID != "" {
		subject, err := s.householdSubject(ctx, caller, *req.SubjectID)
		if err != nil {
			return nil, err
		}
		q.SubjectID = strPtr(subject.SubjectID)
		q.Subject = subject
	}

	if err := s.repo.Question.Create(ctx, q); err != nil {
		s.logger.Error("create question failed", zap.String("user_id", caller.UserID), zap.Error(err))
		return nil, err
	}
	return toQuestionResponse(q), nil
}

// ────────────────────── Answer ──────────────────────

func (s *questionService) Answer(ctx context.Context, caller Caller, questionID string, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error) {
	if _, err := s.inHousehold(ctx, caller, questionID); err != nil {
		return nil, err
	}

	a := &model.Answer{QuestionID: questionID, UserID: caller.UserID, Body: req.Body}
	if err := s.repo.Question.CreateAnswer(ctx, a); err != nil {
		s.logger.Error("create answer failed", zap.String("question_id", questionID), zap.Error(err))
		return nil, err
	}
	resp := toAnswerResponse(a)
	return &resp, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *questionService) Resolve(ctx context.Context, caller Caller, questionID string) error {
	q, err := s.inHousehold(ctx, caller, questionID)
	if err != nil {
		return err
	}
	if q.UserID != caller.UserID && caller.Role != model.RoleParent {
		return ErrQuestionForbidden
	}
	if err := s.repo.Question.UpdateStatus(ctx, questionID, model.QuestionResolved); err != nil {
		s.logger.Error("resolve question failed", zap.String("question_id", questionID), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *questionService) inHousehold(ctx context.Context, caller Caller, id string) (*model.Question, error) {
	q, err := s.repo.Question.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		s.logger.Error("get question failed", zap.String("question_id", id), zap.Error(err))
		return nil, err
	}
	if q.HouseholdID != caller.HouseholdID {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// householdSubject loads a subject that belongs to any household member.
func (s *questionService) householdSubject(ctx context.Context, caller Caller, id string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("get subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if subject.UserID == caller.UserID {
		return subject, nil
	}
	owner, err := s.repo.User.GetByID(ctx, subject.UserID)
	if err != nil || owner.HouseholdID != caller.HouseholdID {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

func toQuestionResponse(q *model.Question) *dto.QuestionResponse {
	resp := &dto.QuestionResponse{
		ID:        q.QuestionID,
		Asker:     userBrief(q.Asker),
		Subject:   subjectBrief(q.Subject),
		Body:      q.Body,
		Context:   q.Context,
		Status:    q.Status,
		Answers:   make([]dto.AnswerResponse, 0, len(q.Answers)),
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
	for i := range q.Answers {
		resp.Answers = append(resp.Answers, toAnswerResponse(&q.Answers[i]))
	}
	return resp
}

func toAnswerResponse(a *model.Answer) dto.AnswerResponse {
	return dto.AnswerResponse{
		ID:        a.AnswerID,
		User:      userBrief(a.User),
		Body:      a.Body,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
