package handler

import (
	"errors"
	"net/http"

	"github.com/devroute/bootcamp-backend/internal/middleware"
	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/response"
	"github.com/devroute/bootcamp-backend/internal/service"
	"github.com/devroute/bootcamp-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StudentExamHandler handles the student-facing exam session endpoints:
// access-code verification, take/resume, violation reports and submission.
type StudentExamHandler struct {
	deploymentService *service.DeploymentService
	attemptService    *service.AttemptService
	proctorService    *service.ProctorService
}

// NewStudentExamHandler creates a new StudentExamHandler.
func NewStudentExamHandler(
	deploymentService *service.DeploymentService,
	attemptService *service.AttemptService,
	proctorService *service.ProctorService,
) *StudentExamHandler {
	return &StudentExamHandler{
		deploymentService: deploymentService,
		attemptService:    attemptService,
		proctorService:    proctorService,
	}
}

// CheckCode godoc
// POST /api/v1/exams/deployments/:id/check_code
// Verifies a deployment access code without starting an attempt.
func (h *StudentExamHandler) CheckCode(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req model.CheckCodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	err := h.deploymentService.CheckCode(c.Request.Context(), id, req.Code, claims.Role)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// Take godoc
// GET /api/v1/exams/deployments/:id
// Enters (or resumes) an exam attempt and returns the student question view.
func (h *StudentExamHandler) Take(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	claims := middleware.GetClaims(c)
	view, err := h.attemptService.Enter(c.Request.Context(), id, claims.UserID, claims.Role)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// ReportViolation godoc
// POST /api/v1/exams/deployments/:id/cheating
// Records one proctoring violation, force-submitting at the threshold.
func (h *StudentExamHandler) ReportViolation(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req model.ViolationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.proctorService.RecordViolation(c.Request.Context(), id, claims.UserID, claims.Role, req.AnswersJSON)
	if err != nil {
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Submit godoc
// POST /api/v1/exams/submissions
// Finalizes an attempt and grades it synchronously.
func (h *StudentExamHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.Role != model.RoleStudent {
		response.Fail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
		return
	}

	var req model.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, model.ErrUnrecognizedAnswerShape) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		failSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetSubmission godoc
// GET /api/v1/exams/submissions/:id
// Returns one submission. Students may only read their own; staff may read any.
func (h *StudentExamHandler) GetSubmission(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	submission, err := h.attemptService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	claims := middleware.GetClaims(c)
	if claims.Role != model.RoleStaff && submission.StudentID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
		return
	}

	response.Success(c, http.StatusOK, submission)
}

// failSessionError maps exam-session domain errors onto the status
// families the API guarantees.
func failSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrAccessCodeMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrAccessCodeMismatch)
	case errors.Is(err, service.ErrNotStudent):
		response.Fail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
	case errors.Is(err, service.ErrNotYetOpen), errors.Is(err, service.ErrDeactivated):
		response.Fail(c, http.StatusLocked, response.ErrExamNotYetOpen)
	case errors.Is(err, service.ErrClosed):
		response.Fail(c, http.StatusGone, response.ErrExamClosed)
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, service.ErrAttemptMissing):
		response.Fail(c, http.StatusBadRequest, response.ErrAttemptNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseUUID parses a UUID path parameter, failing the request on bad input.
func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
