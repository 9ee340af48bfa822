package service

import "errors"

// Exam-session domain errors. Handlers map these onto the status
// families the API guarantees (423 locked, 410 gone, 409 conflict, …).
var (
	ErrAccessCodeMismatch = errors.New("access code mismatch")
	ErrNotStudent         = errors.New("exam attempts are for students only")
	ErrNotYetOpen         = errors.New("deployment is not open yet")
	ErrDeactivated        = errors.New("deployment is deactivated")
	ErrClosed             = errors.New("deployment is already closed")
	ErrAlreadySubmitted   = errors.New("submission already finalized")
	ErrAttemptMissing     = errors.New("no attempt exists for this deployment")
)
