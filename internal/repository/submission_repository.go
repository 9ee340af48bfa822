package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles attempt/submission data access. The
// submission row is the only contended shared resource in the system, so
// every read-modify-write path here goes through an explicit row lock.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, deployment_id, student_id, started_at, answers,
	violation_count, score, correct_count, created_at, updated_at`

func scanSubmission(row pgx.Row) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(&s.ID, &s.DeploymentID, &s.StudentID, &s.StartedAt, &s.Answers,
		&s.ViolationCount, &s.Score, &s.CorrectCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a submission by its UUID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
}

// GetByDeploymentAndStudent retrieves a student's attempt for one deployment.
func (r *SubmissionRepository) GetByDeploymentAndStudent(ctx context.Context, deploymentID uuid.UUID, studentID int) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE deployment_id = $1 AND student_id = $2`, deploymentID, studentID))
}

// GetOrCreate idempotently resolves a student's attempt row, creating it
// with a fresh started_at only on first entry. Two near-simultaneous calls
// converge on one row: the loser of the insert race falls through to the
// fetch. Returns whether this call created the row.
func (r *SubmissionRepository) GetOrCreate(ctx context.Context, deploymentID uuid.UUID, studentID int) (*model.Submission, bool, error) {
	s, err := scanSubmission(r.pool.QueryRow(ctx,
		`INSERT INTO submissions (deployment_id, student_id, started_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (deployment_id, student_id) DO NOTHING
		 RETURNING `+submissionColumns,
		deploymentID, studentID))
	if err == nil {
		return s, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	s, err = r.GetByDeploymentAndStudent(ctx, deploymentID, studentID)
	if err != nil {
		return nil, false, err
	}
	return s, false, nil
}

// GetForUpdate resolves a student's attempt under a row lock, serializing
// concurrent submit attempts within the surrounding transaction.
func (r *SubmissionRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, deploymentID uuid.UUID, studentID int) (*model.Submission, error) {
	return scanSubmission(tx.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE deployment_id = $1 AND student_id = $2
		 FOR UPDATE`, deploymentID, studentID))
}

// UpsertLocked get-or-creates the attempt row inside a transaction, taking
// the row lock either way. Used by the forced-submit path, where the
// student may never have entered through the normal gate.
func (r *SubmissionRepository) UpsertLocked(ctx context.Context, tx pgx.Tx, deploymentID uuid.UUID, studentID int) (*model.Submission, error) {
	return scanSubmission(tx.QueryRow(ctx,
		`INSERT INTO submissions (deployment_id, student_id, started_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (deployment_id, student_id)
		 DO UPDATE SET updated_at = NOW()
		 RETURNING `+submissionColumns,
		deploymentID, studentID))
}

// Finalize persists the answer payload and the optional client-reported
// started_at/violation fields. Must run on a row previously locked in tx.
func (r *SubmissionRepository) Finalize(ctx context.Context, tx pgx.Tx, id uuid.UUID, answers json.RawMessage, startedAt *time.Time, violationCount *int) error {
	_, err := tx.Exec(ctx,
		`UPDATE submissions
		 SET answers = $1,
		     started_at = COALESCE($2, started_at),
		     violation_count = COALESCE($3, violation_count),
		     updated_at = NOW()
		 WHERE id = $4`,
		answers, startedAt, violationCount, id)
	return err
}

// SetGrade overwrites the score fields. Grading is recomputed, never
// accumulated, so repeated calls are safe.
func (r *SubmissionRepository) SetGrade(ctx context.Context, tx pgx.Tx, id uuid.UUID, score, correctCount int) error {
	_, err := tx.Exec(ctx,
		`UPDATE submissions
		 SET score = $1, correct_count = $2, updated_at = NOW()
		 WHERE id = $3`,
		score, correctCount, id)
	return err
}

// ListByDeployment retrieves all attempts for one deployment with the
// submitting students' names, for staff result review.
func (r *SubmissionRepository) ListByDeployment(ctx context.Context, deploymentID uuid.UUID) ([]SubmissionResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.student_id, u.name, u.email, s.started_at,
		        s.answers IS NOT NULL AS submitted,
		        s.violation_count, s.score, s.correct_count
		 FROM submissions s
		 JOIN users u ON s.student_id = u.id
		 WHERE s.deployment_id = $1
		 ORDER BY u.name`, deploymentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SubmissionResult
	for rows.Next() {
		var res SubmissionResult
		if err := rows.Scan(&res.SubmissionID, &res.StudentID, &res.Name, &res.Email, &res.StartedAt,
			&res.Submitted, &res.ViolationCount, &res.Score, &res.CorrectCount); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// SubmissionResult combines a student's identity with attempt outcome for
// staff result listings.
type SubmissionResult struct {
	SubmissionID   uuid.UUID `json:"submission_id"`
	StudentID      int       `json:"student_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	StartedAt      time.Time `json:"started_at"`
	Submitted      bool      `json:"submitted"`
	ViolationCount int       `json:"cheating_count"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_answer_count"`
}
