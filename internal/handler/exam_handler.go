package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devroute/bootcamp-backend/internal/middleware"
	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/devroute/bootcamp-backend/internal/response"
	"github.com/devroute/bootcamp-backend/internal/service"
	"github.com/devroute/bootcamp-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// ExamHandler handles staff exam authoring endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// List godoc
// GET /api/v1/staff/exams?page=&per_page=
func (h *ExamHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	exams, total, err := h.examService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"exams": exams,
		"total": total,
	})
}

// Get godoc
// GET /api/v1/staff/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Create godoc
// POST /api/v1/staff/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	exam := &model.Exam{
		Title:    req.Title,
		AuthorID: claims.UserID,
	}
	if err := h.examService.Create(c.Request.Context(), exam); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, exam)
}

// Delete godoc
// DELETE /api/v1/staff/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusNoContent, nil)
}

// ListQuestions godoc
// GET /api/v1/staff/exams/:id/questions
func (h *ExamHandler) ListQuestions(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	questions, err := h.examService.ListQuestions(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// ReplaceQuestions godoc
// PUT /api/v1/staff/exams/:id/questions
// Replaces the full question bank, enforcing the authoring ceilings.
func (h *ExamHandler) ReplaceQuestions(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req model.ReplaceQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.examService.ReplaceQuestions(c.Request.Context(), id, req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrTooManyQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrQuestionLimit)
		case errors.Is(err, service.ErrTooManyPoints):
			response.Fail(c, http.StatusBadRequest, response.ErrPointLimit)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
