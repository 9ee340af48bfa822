package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateWindow signals a deployment for the identical
// (exam, cohort, open_at, close_at) combination already exists.
var ErrDuplicateWindow = errors.New("duplicate deployment window")

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// DeploymentRepository handles deployment data access.
type DeploymentRepository struct {
	pool *pgxpool.Pool
}

// NewDeploymentRepository creates a new DeploymentRepository.
func NewDeploymentRepository(pool *pgxpool.Pool) *DeploymentRepository {
	return &DeploymentRepository{pool: pool}
}

// GetByID retrieves a deployment by its UUID, snapshot included.
func (r *DeploymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Deployment, error) {
	d := &model.Deployment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, cohort_id, access_code, open_at, close_at,
		        duration_minutes, status, question_snapshot, created_at, updated_at
		 FROM deployments WHERE id = $1`, id,
	).Scan(&d.ID, &d.ExamID, &d.CohortID, &d.AccessCode, &d.OpenAt, &d.CloseAt,
		&d.DurationMinutes, &d.Status, &d.QuestionSnapshot, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts a new deployment with its frozen question snapshot.
// A duplicate (exam, cohort, open_at, close_at) window maps to
// ErrDuplicateWindow via the unique constraint.
func (r *DeploymentRepository) Create(ctx context.Context, d *model.Deployment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO deployments
		   (exam_id, cohort_id, access_code, open_at, close_at, duration_minutes, status, question_snapshot)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		d.ExamID, d.CohortID, d.AccessCode, d.OpenAt, d.CloseAt,
		d.DurationMinutes, d.Status, d.QuestionSnapshot,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateWindow
		}
		return err
	}
	return nil
}

// ListByCohort retrieves a cohort's deployments, newest window first.
func (r *DeploymentRepository) ListByCohort(ctx context.Context, cohortID int) ([]model.Deployment, error) {
	return r.list(ctx,
		`SELECT id, exam_id, cohort_id, access_code, open_at, close_at,
		        duration_minutes, status, question_snapshot, created_at, updated_at
		 FROM deployments WHERE cohort_id = $1
		 ORDER BY open_at DESC`, cohortID)
}

// ListByExam retrieves all deployments of one exam.
func (r *DeploymentRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Deployment, error) {
	return r.list(ctx,
		`SELECT id, exam_id, cohort_id, access_code, open_at, close_at,
		        duration_minutes, status, question_snapshot, created_at, updated_at
		 FROM deployments WHERE exam_id = $1
		 ORDER BY open_at DESC`, examID)
}

func (r *DeploymentRepository) list(ctx context.Context, query string, args ...any) ([]model.Deployment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deployments []model.Deployment
	for rows.Next() {
		var d model.Deployment
		if err := rows.Scan(&d.ID, &d.ExamID, &d.CohortID, &d.AccessCode, &d.OpenAt, &d.CloseAt,
			&d.DurationMinutes, &d.Status, &d.QuestionSnapshot, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return deployments, rows.Err()
}

// UpdateStatus toggles a deployment's administrative status.
func (r *DeploymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DeploymentStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE deployments SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deployment %s: %w", id, ErrNoRowsAffected)
	}
	return nil
}

// Delete removes a deployment and, through FK cascades, its submissions.
func (r *DeploymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deployments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deployment %s: %w", id, ErrNoRowsAffected)
	}
	return nil
}
