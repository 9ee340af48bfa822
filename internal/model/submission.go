package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Submission is one student's attempt record for one deployment. It is
// "unsubmitted" while Answers is empty and "submitted" once populated;
// a populated submission can never be written again.
type Submission struct {
	ID             uuid.UUID       `json:"id"`
	DeploymentID   uuid.UUID       `json:"deployment_id"`
	StudentID      int             `json:"student_id"`
	StartedAt      time.Time       `json:"started_at"`
	Answers        json.RawMessage `json:"answers,omitempty"`
	ViolationCount int             `json:"cheating_count"`
	Score          int             `json:"score"`
	CorrectCount   int             `json:"correct_answer_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Submitted reports whether the attempt has a finalized answer payload.
// The column is NULL until finalization, so any stored value — including
// an empty list written by a forced submit — means the attempt is closed.
func (s *Submission) Submitted() bool {
	return len(s.Answers) > 0 && string(s.Answers) != "null"
}

// SubmitRequest is the payload for finalizing an attempt.
type SubmitRequest struct {
	DeploymentID  uuid.UUID       `json:"deployment_id" binding:"required"`
	StartedAt     *time.Time      `json:"started_at" binding:"omitempty"`
	CheatingCount *int            `json:"cheating_count" binding:"omitempty,min=0"`
	Answers       json.RawMessage `json:"answers" binding:"required"`
}

// SubmitResponse is returned after a successful explicit submission.
type SubmitResponse struct {
	SubmissionID       uuid.UUID `json:"submission_id"`
	Score              int       `json:"score"`
	CorrectAnswerCount int       `json:"correct_answer_count"`
	RedirectURL        string    `json:"redirect_url"`
}

// ViolationRequest is the payload for a proctoring violation report. The
// answer payload is used only if this report forces submission.
type ViolationRequest struct {
	AnswersJSON json.RawMessage `json:"answers_json" binding:"omitempty"`
}

// ViolationResponse reports the counter state after a violation report.
type ViolationResponse struct {
	CheatingCount int    `json:"cheating_count"`
	ExamStatus    string `json:"exam_status"`
	ForceSubmit   bool   `json:"force_submit"`
}
