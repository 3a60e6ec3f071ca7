package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

type SemesterHandler struct {
	semesterService *service.SemesterService
}

func NewSemesterHandler(semesterService *service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterService: semesterService}
}

// List godoc
// GET /api/v1/semesters?academic_year=
func (h *SemesterHandler) List(c *gin.Context) {
	year := c.Query("academic_year")
	if year != "" && !validator.ValidAcademicYear(year) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"academic_year": "must look like 2025-2026",
		})
		return
	}

	semesters, err := h.semesterService.List(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	if semesters == nil {
		semesters = []model.Semester{}
	}
	response.Success(c, http.StatusOK, gin.H{"semesters": semesters})
}

// Get godoc
// GET /api/v1/semesters/:id
func (h *SemesterHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := h.semesterService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semester": s})
}

// Create godoc
// POST /api/v1/semesters
func (h *SemesterHandler) Create(c *gin.Context) {
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	s, err := h.semesterService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"semester": s})
}

// Update godoc
// PUT /api/v1/semesters/:id
func (h *SemesterHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	s, err := h.semesterService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semester": s})
}

// Delete godoc
// DELETE /api/v1/semesters/:id
func (h *SemesterHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.semesterService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "semester deleted successfully"})
}
