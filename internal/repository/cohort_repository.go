package repository

import (
	"context"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CohortRepository handles cohort data access.
type CohortRepository struct {
	pool *pgxpool.Pool
}

// NewCohortRepository creates a new CohortRepository.
func NewCohortRepository(pool *pgxpool.Pool) *CohortRepository {
	return &CohortRepository{pool: pool}
}

// GetByID retrieves a cohort by ID.
func (r *CohortRepository) GetByID(ctx context.Context, id int) (*model.Cohort, error) {
	c := &model.Cohort{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, course_name, thumbnail_url, starts_on, ends_on, created_at, updated_at
		 FROM cohorts WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CourseName, &c.ThumbnailURL, &c.StartsOn, &c.EndsOn, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all cohorts ordered by start date.
func (r *CohortRepository) List(ctx context.Context) ([]model.Cohort, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, course_name, thumbnail_url, starts_on, ends_on, created_at, updated_at
		 FROM cohorts ORDER BY starts_on DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []model.Cohort
	for rows.Next() {
		var c model.Cohort
		if err := rows.Scan(&c.ID, &c.Name, &c.CourseName, &c.ThumbnailURL, &c.StartsOn, &c.EndsOn, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, rows.Err()
}

// Create inserts a new cohort.
func (r *CohortRepository) Create(ctx context.Context, c *model.Cohort) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO cohorts (name, course_name, thumbnail_url, starts_on, ends_on)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.CourseName, c.ThumbnailURL, c.StartsOn, c.EndsOn,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update rewrites a cohort's mutable fields.
func (r *CohortRepository) Update(ctx context.Context, c *model.Cohort) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE cohorts
		 SET name = $1, course_name = $2, thumbnail_url = $3, starts_on = $4, ends_on = $5, updated_at = NOW()
		 WHERE id = $6`,
		c.Name, c.CourseName, c.ThumbnailURL, c.StartsOn, c.EndsOn, c.ID)
	return err
}

// Delete removes a cohort.
func (r *CohortRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cohorts WHERE id = $1`, id)
	return err
}
