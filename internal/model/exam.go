package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam is a question bank authored by a staff member. Deployments freeze
// a snapshot of its questions; the bank itself stays editable.
type Exam struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Title string `json:"title" binding:"required,min=3,max=255"`
}
