package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoQuestions is returned when deploying an exam with an empty bank.
var ErrNoQuestions = fmt.Errorf("exam has no questions, cannot deploy")

// DeploymentService handles deployment lifecycle and the access gate.
type DeploymentService struct {
	deployRepo   *repository.DeploymentRepository
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	cohortRepo   *repository.CohortRepository
	log          zerolog.Logger
}

// NewDeploymentService creates a new DeploymentService.
func NewDeploymentService(
	deployRepo *repository.DeploymentRepository,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	cohortRepo *repository.CohortRepository,
	log zerolog.Logger,
) *DeploymentService {
	return &DeploymentService{
		deployRepo:   deployRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		cohortRepo:   cohortRepo,
		log:          log.With().Str("component", "deployment_service").Logger(),
	}
}

// Create deploys an exam to a cohort: generates an opaque access code and
// freezes the question snapshot so later edits to the bank never reach an
// in-flight or historical exam. Duplicate (exam, cohort, window)
// combinations surface repository.ErrDuplicateWindow.
func (s *DeploymentService) Create(ctx context.Context, req *model.CreateDeploymentRequest) (*model.Deployment, error) {
	if _, err := s.examRepo.GetByID(ctx, req.ExamID); err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}
	if _, err := s.cohortRepo.GetByID(ctx, req.CohortID); err != nil {
		return nil, fmt.Errorf("get cohort: %w", err)
	}

	questions, err := s.questionRepo.ListByExam(ctx, req.ExamID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	snapshot, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	deployment := &model.Deployment{
		ExamID:           req.ExamID,
		CohortID:         req.CohortID,
		AccessCode:       generateAccessCode(),
		OpenAt:           req.OpenAt,
		CloseAt:          req.CloseAt,
		DurationMinutes:  req.DurationMinutes,
		Status:           model.DeploymentActivated,
		QuestionSnapshot: snapshot,
	}

	if err := s.deployRepo.Create(ctx, deployment); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("deployment_id", deployment.ID.String()).
		Str("exam_id", req.ExamID.String()).
		Int("cohort_id", req.CohortID).
		Int("questions", len(questions)).
		Msg("Exam deployed")
	return deployment, nil
}

// GetByID retrieves a deployment.
func (s *DeploymentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Deployment, error) {
	return s.deployRepo.GetByID(ctx, id)
}

// ListByExam retrieves all deployments of one exam.
func (s *DeploymentService) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Deployment, error) {
	return s.deployRepo.ListByExam(ctx, examID)
}

// UpdateStatus toggles a deployment's administrative status.
func (s *DeploymentService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DeploymentStatus) error {
	return s.deployRepo.UpdateStatus(ctx, id, status)
}

// Delete removes a deployment and its submissions.
func (s *DeploymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deployRepo.Delete(ctx, id)
}

// CheckCode validates an access code against a deployment and verifies
// the caller may attempt it and the window is open, in that order. The
// code comparison is exact and case-sensitive; a mismatch is a validation
// error, never a not-found, so code probing cannot distinguish existing
// deployments.
func (s *DeploymentService) CheckCode(ctx context.Context, id uuid.UUID, code string, role model.Role) error {
	deployment, err := s.deployRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get deployment: %w", err)
	}

	if deployment.AccessCode != code {
		return ErrAccessCodeMismatch
	}

	if role != model.RoleStudent {
		return ErrNotStudent
	}

	return windowError(deployment.WindowAt(time.Now()))
}

// windowError maps a non-open window state to its domain error.
func windowError(state model.WindowState) error {
	switch state {
	case model.WindowNotYetOpen:
		return ErrNotYetOpen
	case model.WindowDeactivated:
		return ErrDeactivated
	case model.WindowClosed:
		return ErrClosed
	default:
		return nil
	}
}

// generateAccessCode returns an opaque 8-character uppercase code.
func generateAccessCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
