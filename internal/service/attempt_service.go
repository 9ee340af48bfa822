package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/devroute/bootcamp-backend/internal/config"
	"github.com/devroute/bootcamp-backend/internal/grading"
	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AttemptService handles the student-facing attempt lifecycle: idempotent
// entry, resume state, and row-locked explicit submission.
type AttemptService struct {
	pool       *pgxpool.Pool
	subRepo    *repository.SubmissionRepository
	deployRepo *repository.DeploymentRepository
	examRepo   *repository.ExamRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	pool *pgxpool.Pool,
	subRepo *repository.SubmissionRepository,
	deployRepo *repository.DeploymentRepository,
	examRepo *repository.ExamRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		pool:       pool,
		subRepo:    subRepo,
		deployRepo: deployRepo,
		examRepo:   examRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "attempt_service").Logger(),
	}
}

// StudentQuestion is one snapshot question as shown to the student, with
// the canonical answer stripped and an empty input scaffold per kind.
type StudentQuestion struct {
	QuestionID  uuid.UUID          `json:"question_id"`
	Number      int                `json:"number"`
	Type        model.QuestionKind `json:"type"`
	Question    string             `json:"question"`
	Point       int                `json:"point"`
	Prompt      *string            `json:"prompt,omitempty"`
	BlankCount  *int               `json:"blank_count,omitempty"`
	Options     []string           `json:"options,omitempty"`
	AnswerInput any                `json:"answer_input"`
}

// TakeExamView is the take/resume response for an attempt.
type TakeExamView struct {
	ExamID        uuid.UUID         `json:"exam_id"`
	ExamName      string            `json:"exam_name"`
	DurationTime  int               `json:"duration_time"`
	ElapsedTime   int               `json:"elapsed_time"`
	CheatingCount int               `json:"cheating_count"`
	Questions     []StudentQuestion `json:"questions"`
}

// Enter idempotently begins or resumes a student's attempt. started_at is
// seeded only on first creation; repeated calls converge on the same
// submission row and never reset the clock.
func (s *AttemptService) Enter(ctx context.Context, deploymentID uuid.UUID, studentID int, role model.Role) (*TakeExamView, error) {
	deployment, err := s.deployRepo.GetByID(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("get deployment: %w", err)
	}

	if role != model.RoleStudent {
		return nil, ErrNotStudent
	}

	if err := windowError(deployment.WindowAt(time.Now())); err != nil {
		return nil, err
	}

	submission, created, err := s.subRepo.GetOrCreate(ctx, deploymentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("get or create submission: %w", err)
	}
	if submission.Submitted() {
		return nil, ErrAlreadySubmitted
	}
	if created {
		s.log.Info().
			Str("deployment_id", deploymentID.String()).
			Int("student_id", studentID).
			Msg("Attempt started")
	}

	exam, err := s.examRepo.GetByID(ctx, deployment.ExamID)
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := deployment.SnapshotQuestions()
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	elapsed := int(time.Since(submission.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	view := &TakeExamView{
		ExamID:        deployment.ExamID,
		ExamName:      exam.Title,
		DurationTime:  deployment.DurationMinutes,
		ElapsedTime:   elapsed,
		CheatingCount: s.violationCount(ctx, deploymentID, studentID, submission.ViolationCount),
		Questions:     make([]StudentQuestion, len(questions)),
	}
	for i, q := range questions {
		view.Questions[i] = StudentQuestion{
			QuestionID:  q.ID,
			Number:      q.Position,
			Type:        q.Kind,
			Question:    q.Text,
			Point:       q.Point,
			Prompt:      q.Prompt,
			BlankCount:  q.BlankCount,
			Options:     q.Options,
			AnswerInput: emptyInput(q),
		}
	}

	return view, nil
}

// violationCount reads the live counter, falling back to the durable
// record when the ephemeral key is absent or Redis is unreachable.
func (s *AttemptService) violationCount(ctx context.Context, deploymentID uuid.UUID, studentID, stored int) int {
	val, err := s.rdb.Get(ctx, config.CacheKey.ViolationCountKey(deploymentID, studentID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Violation counter read failed, using stored count")
		}
		return stored
	}
	count, err := strconv.Atoi(val)
	if err != nil || count < stored {
		return stored
	}
	return count
}

// emptyInput builds the per-kind answer scaffold the client renders into.
func emptyInput(q model.Question) any {
	switch q.Kind {
	case model.KindFillBlank:
		n := 1
		if q.BlankCount != nil {
			n = *q.BlankCount
		}
		return make([]string, n)
	case model.KindMultiSelect, model.KindOrdering:
		return []string{}
	default:
		return ""
	}
}

// Submit finalizes an attempt exactly once. The submission row is resolved
// under a row lock so concurrent submits from the same student serialize;
// the window check precedes the double-submit check because time-based
// invalidation takes priority.
func (s *AttemptService) Submit(ctx context.Context, studentID int, req *model.SubmitRequest) (*model.SubmitResponse, error) {
	deployment, err := s.deployRepo.GetByID(ctx, req.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("get deployment: %w", err)
	}

	sheet, err := model.ParseAnswerSheet(req.Answers)
	if err != nil {
		return nil, err
	}
	normalized, err := json.Marshal(sheet)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	submission, err := s.subRepo.GetForUpdate(ctx, tx, req.DeploymentID, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The deployment exists but the student never entered: a
			// validation error, deliberately distinct from a not-found.
			return nil, ErrAttemptMissing
		}
		return nil, fmt.Errorf("lock submission: %w", err)
	}

	if time.Now().After(deployment.CloseAt) {
		return nil, ErrClosed
	}
	if submission.Submitted() {
		return nil, ErrAlreadySubmitted
	}

	if err := s.subRepo.Finalize(ctx, tx, submission.ID, normalized, req.StartedAt, req.CheatingCount); err != nil {
		return nil, fmt.Errorf("finalize: %w", err)
	}

	questions, err := deployment.SnapshotQuestions()
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	result := grading.Grade(questions, sheet)

	if err := s.subRepo.SetGrade(ctx, tx, submission.ID, result.Score, result.CorrectCount); err != nil {
		return nil, fmt.Errorf("set grade: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Str("submission_id", submission.ID.String()).
		Int("score", result.Score).
		Int("correct", result.CorrectCount).
		Msg("Attempt submitted")

	return &model.SubmitResponse{
		SubmissionID:       submission.ID,
		Score:              result.Score,
		CorrectAnswerCount: result.CorrectCount,
		RedirectURL:        "/api/v1/exams/submissions/" + submission.ID.String(),
	}, nil
}

// GetByID retrieves a submission record.
func (s *AttemptService) GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	return s.subRepo.GetByID(ctx, id)
}

// ListResults retrieves all attempts for one deployment (staff review).
func (s *AttemptService) ListResults(ctx context.Context, deploymentID uuid.UUID) ([]repository.SubmissionResult, error) {
	return s.subRepo.ListByDeployment(ctx, deploymentID)
}
