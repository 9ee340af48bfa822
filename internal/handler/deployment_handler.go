package handler

import (
	"errors"
	"net/http"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/repository"
	"github.com/devroute/bootcamp-backend/internal/response"
	"github.com/devroute/bootcamp-backend/internal/service"
	"github.com/devroute/bootcamp-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// DeploymentHandler handles staff deployment management endpoints.
type DeploymentHandler struct {
	deploymentService *service.DeploymentService
	attemptService    *service.AttemptService
}

// NewDeploymentHandler creates a new DeploymentHandler.
func NewDeploymentHandler(
	deploymentService *service.DeploymentService,
	attemptService *service.AttemptService,
) *DeploymentHandler {
	return &DeploymentHandler{
		deploymentService: deploymentService,
		attemptService:    attemptService,
	}
}

// Create godoc
// POST /api/v1/staff/deployments
// Deploys an exam to a cohort: generates the access code and freezes the
// question snapshot. A duplicate (exam, cohort, window) is a conflict.
func (h *DeploymentHandler) Create(c *gin.Context) {
	var req model.CreateDeploymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	deployment, err := h.deploymentService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		case errors.Is(err, repository.ErrDuplicateWindow):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateDeployment)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, deployment)
}

// Get godoc
// GET /api/v1/staff/deployments/:id
func (h *DeploymentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	deployment, err := h.deploymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, deployment)
}

// ListByExam godoc
// GET /api/v1/staff/exams/:id/deployments
func (h *DeploymentHandler) ListByExam(c *gin.Context) {
	examID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	deployments, err := h.deploymentService.ListByExam(c.Request.Context(), examID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deployments": deployments})
}

// UpdateStatus godoc
// PATCH /api/v1/staff/deployments/:id/status
// Toggles a deployment between ACTIVATED and DEACTIVATED.
func (h *DeploymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status model.DeploymentStatus `json:"status" binding:"required,oneof=ACTIVATED DEACTIVATED"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.deploymentService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// Delete godoc
// DELETE /api/v1/staff/deployments/:id
func (h *DeploymentHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.deploymentService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// ListResults godoc
// GET /api/v1/staff/deployments/:id/results
// Lists all attempts for one deployment, graded or still in progress.
func (h *DeploymentHandler) ListResults(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.deploymentService.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	results, err := h.attemptService.ListResults(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}
