package repository

import (
	"context"
	"encoding/json"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question-bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByExam retrieves all questions for a given exam, ordered by position.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, kind, text, prompt, blank_count, options, answer, point, position
		 FROM questions WHERE exam_id = $1
		 ORDER BY position`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Kind, &q.Text, &q.Prompt, &q.BlankCount, &options, &q.Answer, &q.Point, &q.Position); err != nil {
			return nil, err
		}
		if options != nil {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, err
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ReplaceForExam atomically swaps an exam's question set.
func (r *QuestionRepository) ReplaceForExam(ctx context.Context, examID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, examID); err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		var options []byte
		if q.Options != nil {
			options, err = json.Marshal(q.Options)
			if err != nil {
				return err
			}
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, kind, text, prompt, blank_count, options, answer, point, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			examID, q.Kind, q.Text, q.Prompt, q.BlankCount, options, q.Answer, q.Point, q.Position,
		).Scan(&q.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
