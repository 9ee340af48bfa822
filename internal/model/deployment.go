package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DeploymentStatus enumerates the administrative states of a deployment.
type DeploymentStatus string

const (
	DeploymentActivated   DeploymentStatus = "ACTIVATED"
	DeploymentDeactivated DeploymentStatus = "DEACTIVATED"
)

// WindowState is the derived attemptability of a deployment at a point in
// time. It is never persisted; it is recomputed from the stored fields on
// every decision point.
type WindowState string

const (
	WindowOpen        WindowState = "OPEN"
	WindowNotYetOpen  WindowState = "NOT_YET_OPEN"
	WindowClosed      WindowState = "CLOSED"
	WindowDeactivated WindowState = "DEACTIVATED"
)

// Deployment is a scheduled instance of an exam assigned to one cohort,
// with its own access code and time window. QuestionSnapshot is the frozen
// copy of the exam's questions taken at creation time; later edits to the
// question bank never affect it.
type Deployment struct {
	ID               uuid.UUID        `json:"id"`
	ExamID           uuid.UUID        `json:"exam_id"`
	CohortID         int              `json:"cohort_id"`
	AccessCode       string           `json:"access_code,omitempty"`
	OpenAt           time.Time        `json:"open_at"`
	CloseAt          time.Time        `json:"close_at"`
	DurationMinutes  int              `json:"duration_minutes"`
	Status           DeploymentStatus `json:"status"`
	QuestionSnapshot json.RawMessage  `json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// WindowAt derives the deployment's window state at the given instant.
// A passed close time wins over everything else, including DEACTIVATED.
func (d *Deployment) WindowAt(now time.Time) WindowState {
	if now.After(d.CloseAt) {
		return WindowClosed
	}
	if d.Status == DeploymentDeactivated {
		return WindowDeactivated
	}
	if now.Before(d.OpenAt) {
		return WindowNotYetOpen
	}
	return WindowOpen
}

// SnapshotQuestions decodes the frozen question copy.
func (d *Deployment) SnapshotQuestions() ([]Question, error) {
	var qs []Question
	if err := json.Unmarshal(d.QuestionSnapshot, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// CreateDeploymentRequest is the payload for deploying an exam to a cohort.
type CreateDeploymentRequest struct {
	ExamID          uuid.UUID `json:"exam_id" binding:"required"`
	CohortID        int       `json:"cohort_id" binding:"required"`
	OpenAt          time.Time `json:"open_at" binding:"required"`
	CloseAt         time.Time `json:"close_at" binding:"required,gtfield=OpenAt"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=480"`
}

// CheckCodeRequest is the payload for verifying a deployment access code.
type CheckCodeRequest struct {
	Code string `json:"code" binding:"required,min=4,max=40"`
}
