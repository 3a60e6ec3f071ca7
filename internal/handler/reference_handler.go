package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

// ReferenceHandler serves degrees and departments.
type ReferenceHandler struct {
	referenceService *service.ReferenceService
}

func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// ─── Degrees ────────────────────────────────────────────────────────────

// ListDegrees godoc
// GET /api/v1/degrees
func (h *ReferenceHandler) ListDegrees(c *gin.Context) {
	degrees, err := h.referenceService.ListDegrees(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if degrees == nil {
		degrees = []model.Degree{}
	}
	response.Success(c, http.StatusOK, gin.H{"degrees": degrees})
}

// GetDegree godoc
// GET /api/v1/degrees/:id
func (h *ReferenceHandler) GetDegree(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.referenceService.GetDegree(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"degree": d})
}

// CreateDegree godoc
// POST /api/v1/degrees
func (h *ReferenceHandler) CreateDegree(c *gin.Context) {
	var req model.CreateDegreeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	d, err := h.referenceService.CreateDegree(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"degree": d})
}

// UpdateDegree godoc
// PUT /api/v1/degrees/:id
func (h *ReferenceHandler) UpdateDegree(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.UpdateDegreeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	d, err := h.referenceService.UpdateDegree(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"degree": d})
}

// DeleteDegree godoc
// DELETE /api/v1/degrees/:id
func (h *ReferenceHandler) DeleteDegree(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.referenceService.DeleteDegree(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "degree deleted successfully"})
}

// ─── Departments ────────────────────────────────────────────────────────

// ListDepartments godoc
// GET /api/v1/departments
func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	departments, err := h.referenceService.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if departments == nil {
		departments = []model.Department{}
	}
	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}

// GetDepartment godoc
// GET /api/v1/departments/:id
func (h *ReferenceHandler) GetDepartment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.referenceService.GetDepartment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": d})
}

// CreateDepartment godoc
// POST /api/v1/departments
func (h *ReferenceHandler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	d, err := h.referenceService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"department": d})
}

// UpdateDepartment godoc
// PUT /api/v1/departments/:id
func (h *ReferenceHandler) UpdateDepartment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	d, err := h.referenceService.UpdateDepartment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": d})
}

// DeleteDepartment godoc
// DELETE /api/v1/departments/:id
func (h *ReferenceHandler) DeleteDepartment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.referenceService.DeleteDepartment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "department deleted successfully"})
}
