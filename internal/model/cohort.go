package model

import "time"

// Cohort represents one intake of a bootcamp course.
type Cohort struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	CourseName   string    `json:"course_name"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	StartsOn     time.Time `json:"starts_on"`
	EndsOn       time.Time `json:"ends_on"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CohortRequest is the payload for creating or updating a cohort.
type CohortRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100"`
	CourseName   string    `json:"course_name" binding:"required,min=2,max=100"`
	ThumbnailURL *string   `json:"thumbnail_url" binding:"omitempty,max=500"`
	StartsOn     time.Time `json:"starts_on" binding:"required"`
	EndsOn       time.Time `json:"ends_on" binding:"required,gtfield=StartsOn"`
}
