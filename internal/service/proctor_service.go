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

const (
	// ViolationThreshold is the violation count that force-closes an attempt.
	ViolationThreshold = 3

	// forceLockTTL bounds the short-lived mutex guarding the forced-submit
	// action against concurrent threshold-crossing reports.
	forceLockTTL = 10 * time.Second
)

// ProctorService counts proctoring violations on an ephemeral Redis
// counter and force-terminates attempts at the threshold. The counter
// absorbs violation bursts without touching the durable submission row;
// only the threshold-crossing event pays for a locked durable write.
type ProctorService struct {
	pool       *pgxpool.Pool
	subRepo    *repository.SubmissionRepository
	deployRepo *repository.DeploymentRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewProctorService creates a new ProctorService.
func NewProctorService(
	pool *pgxpool.Pool,
	subRepo *repository.SubmissionRepository,
	deployRepo *repository.DeploymentRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ProctorService {
	return &ProctorService{
		pool:       pool,
		subRepo:    subRepo,
		deployRepo: deployRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "proctor_service").Logger(),
	}
}

// violationEvent is the raw audit record queued for async persistence.
type violationEvent struct {
	DeploymentID string          `json:"deployment_id"`
	StudentID    int             `json:"student_id"`
	Count        int             `json:"count"`
	Timestamp    int64           `json:"timestamp"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// RecordViolation processes one proctoring violation report. The role is
// checked after the deployment resolves, same ordering as the other
// session endpoints. The answers payload is used only if this report
// crosses the threshold and forces submission.
func (s *ProctorService) RecordViolation(ctx context.Context, deploymentID uuid.UUID, studentID int, role model.Role, answersJSON json.RawMessage) (*model.ViolationResponse, error) {
	deployment, err := s.deployRepo.GetByID(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("get deployment: %w", err)
	}

	if role != model.RoleStudent {
		return nil, ErrNotStudent
	}

	// A window that is no longer open is terminal for violation
	// reporting, whatever the reason it is not open.
	if deployment.WindowAt(time.Now()) != model.WindowOpen {
		return nil, ErrClosed
	}

	existing, err := s.subRepo.GetByDeploymentAndStudent(ctx, deploymentID, studentID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if existing != nil && existing.Submitted() {
		return nil, ErrAlreadySubmitted
	}

	count, err := s.bump(ctx, deployment, studentID)
	if err != nil {
		return nil, err
	}

	forced := count >= ViolationThreshold
	status := "open"
	if forced {
		status = "closed"
		if err := s.forceSubmit(ctx, deployment, studentID, count, answersJSON); err != nil {
			// The counter value still stands and grading is idempotent:
			// the next report or an explicit submit re-triggers it.
			s.log.Error().Err(err).
				Str("deployment_id", deploymentID.String()).
				Int("student_id", studentID).
				Msg("Forced submit failed, will retry on next trigger")
		}
	}

	s.enqueueAudit(ctx, deploymentID, studentID, count, answersJSON)

	return &model.ViolationResponse{
		CheatingCount: count,
		ExamStatus:    status,
		ForceSubmit:   forced,
	}, nil
}

// bump advances the ephemeral counter. First report initializes the key
// with TTL equal to the deployment duration; at or past the threshold the
// value freezes so retried reports cannot grow it unboundedly. The rare
// lost increment between the read and the INCR is an accepted tradeoff —
// the counter only gates a threshold, never a score.
func (s *ProctorService) bump(ctx context.Context, deployment *model.Deployment, studentID int) (int, error) {
	key := config.CacheKey.ViolationCountKey(deployment.ID, studentID)

	ttl := time.Duration(deployment.DurationMinutes) * time.Minute
	if ttl < time.Second {
		ttl = time.Second
	}

	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		if err := s.rdb.Set(ctx, key, 1, ttl).Err(); err != nil {
			return 0, fmt.Errorf("init violation counter: %w", err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read violation counter: %w", err)
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid violation counter value %q: %w", val, err)
	}
	if count >= ViolationThreshold {
		return count, nil
	}

	next, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment violation counter: %w", err)
	}
	return int(next), nil
}

// forceSubmit finalizes and grades the attempt under a short-lived Redis
// mutex plus a transactional row lock, so concurrent reports arriving at
// the threshold cannot double force-submit.
func (s *ProctorService) forceSubmit(ctx context.Context, deployment *model.Deployment, studentID, count int, answersJSON json.RawMessage) error {
	lockKey := config.CacheKey.ForceSubmitLockKey(deployment.ID, studentID)
	locked, err := s.rdb.SetNX(ctx, lockKey, "1", forceLockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire force lock: %w", err)
	}
	if !locked {
		// A concurrent report is already forcing this attempt.
		return nil
	}
	defer s.rdb.Del(ctx, lockKey)

	sheet, err := model.ParseAnswerSheet(answersJSON)
	if err != nil {
		// A malformed payload must not block the forced close.
		sheet = model.AnswerSheet{}
	}
	normalized, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	submission, err := s.subRepo.UpsertLocked(ctx, tx, deployment.ID, studentID)
	if err != nil {
		return fmt.Errorf("lock submission: %w", err)
	}
	if submission.Submitted() {
		return nil
	}

	if err := s.subRepo.Finalize(ctx, tx, submission.ID, normalized, nil, &count); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	questions, err := deployment.SnapshotQuestions()
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	result := grading.Grade(questions, sheet)

	if err := s.subRepo.SetGrade(ctx, tx, submission.ID, result.Score, result.CorrectCount); err != nil {
		return fmt.Errorf("set grade: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.log.Warn().
		Str("deployment_id", deployment.ID.String()).
		Int("student_id", studentID).
		Int("violations", count).
		Int("score", result.Score).
		Msg("Attempt force-submitted")
	return nil
}

// enqueueAudit pushes the raw event onto the persistence queue. Best
// effort: the audit trail carries no correctness burden.
func (s *ProctorService) enqueueAudit(ctx context.Context, deploymentID uuid.UUID, studentID, count int, payload json.RawMessage) {
	event := violationEvent{
		DeploymentID: deploymentID.String(),
		StudentID:    studentID,
		Count:        count,
		Timestamp:    time.Now().Unix(),
		Payload:      payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistViolationsQueue, data).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Violation audit enqueue failed")
	}
}
