package handler

import (
	"net/http"
	"strconv"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/repository"
	"github.com/devroute/bootcamp-backend/internal/response"
	"github.com/devroute/bootcamp-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// CohortHandler handles staff cohort management endpoints.
type CohortHandler struct {
	cohortRepo *repository.CohortRepository
	userRepo   *repository.UserRepository
}

// NewCohortHandler creates a new CohortHandler.
func NewCohortHandler(cohortRepo *repository.CohortRepository, userRepo *repository.UserRepository) *CohortHandler {
	return &CohortHandler{
		cohortRepo: cohortRepo,
		userRepo:   userRepo,
	}
}

// List godoc
// GET /api/v1/staff/cohorts
func (h *CohortHandler) List(c *gin.Context) {
	cohorts, err := h.cohortRepo.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cohorts": cohorts})
}

// Get godoc
// GET /api/v1/staff/cohorts/:id
func (h *CohortHandler) Get(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	cohort, err := h.cohortRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, cohort)
}

// Create godoc
// POST /api/v1/staff/cohorts
func (h *CohortHandler) Create(c *gin.Context) {
	var req model.CohortRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cohort := &model.Cohort{
		Name:         req.Name,
		CourseName:   req.CourseName,
		ThumbnailURL: req.ThumbnailURL,
		StartsOn:     req.StartsOn,
		EndsOn:       req.EndsOn,
	}
	if err := h.cohortRepo.Create(c.Request.Context(), cohort); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, cohort)
}

// Update godoc
// PUT /api/v1/staff/cohorts/:id
func (h *CohortHandler) Update(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	var req model.CohortRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cohort, err := h.cohortRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	cohort.Name = req.Name
	cohort.CourseName = req.CourseName
	cohort.ThumbnailURL = req.ThumbnailURL
	cohort.StartsOn = req.StartsOn
	cohort.EndsOn = req.EndsOn
	if err := h.cohortRepo.Update(c.Request.Context(), cohort); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, cohort)
}

// Delete godoc
// DELETE /api/v1/staff/cohorts/:id
func (h *CohortHandler) Delete(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.cohortRepo.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// ListStudents godoc
// GET /api/v1/staff/cohorts/:id/students
func (h *CohortHandler) ListStudents(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	students, err := h.userRepo.ListByCohort(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// parseIntParam parses an integer path parameter, failing the request on
// bad input.
func parseIntParam(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
