package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Domain errors for exam authoring.
var (
	ErrTooManyQuestions = errors.New("question count exceeds the per-exam ceiling")
	ErrTooManyPoints    = errors.New("total points exceed the per-exam ceiling")
)

// ExamService handles exam authoring business logic.
type ExamService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// GetByID retrieves an exam by its UUID.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// List retrieves exams with pagination.
func (s *ExamService) List(ctx context.Context, page, perPage int) ([]model.Exam, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return s.examRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
}

// Create inserts a new exam owned by the calling staff member.
func (s *ExamService) Create(ctx context.Context, exam *model.Exam) error {
	return s.examRepo.Create(ctx, exam)
}

// Delete removes an exam and its questions.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.examRepo.Delete(ctx, id)
}

// ListQuestions retrieves an exam's current question bank.
func (s *ExamService) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	return s.questionRepo.ListByExam(ctx, examID)
}

// ReplaceQuestions swaps an exam's question set after enforcing the
// authoring ceilings: at most 20 questions, at most 100 total points.
// The ceilings bind at creation time only; deployments that already
// snapshotted an older set are unaffected.
func (s *ExamService) ReplaceQuestions(ctx context.Context, examID uuid.UUID, reqs []model.QuestionRequest) ([]model.Question, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	if len(reqs) > model.MaxQuestionsPerExam {
		return nil, ErrTooManyQuestions
	}

	totalPoints := 0
	questions := make([]model.Question, len(reqs))
	for i, req := range reqs {
		totalPoints += req.Point
		questions[i] = model.Question{
			ExamID:     examID,
			Kind:       req.Kind,
			Text:       req.Text,
			Prompt:     req.Prompt,
			BlankCount: req.BlankCount,
			Options:    req.Options,
			Answer:     req.Answer,
			Point:      req.Point,
			Position:   i + 1,
		}
	}
	if totalPoints > model.MaxPointsPerExam {
		return nil, ErrTooManyPoints
	}

	if err := s.questionRepo.ReplaceForExam(ctx, examID, questions); err != nil {
		return nil, fmt.Errorf("replace questions: %w", err)
	}

	s.log.Info().
		Str("exam_id", examID.String()).
		Int("questions", len(questions)).
		Int("total_points", totalPoints).
		Msg("Question bank replaced")
	return questions, nil
}
