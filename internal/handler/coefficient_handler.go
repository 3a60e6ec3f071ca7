package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

// CoefficientHandler serves the per-year payroll reference data.
type CoefficientHandler struct {
	coefficientService *service.CoefficientService
}

func NewCoefficientHandler(coefficientService *service.CoefficientService) *CoefficientHandler {
	return &CoefficientHandler{coefficientService: coefficientService}
}

// ─── Hourly rates ───────────────────────────────────────────────────────

// ListHourlyRates godoc
// GET /api/v1/hourly-rates
func (h *CoefficientHandler) ListHourlyRates(c *gin.Context) {
	rates, err := h.coefficientService.ListHourlyRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if rates == nil {
		rates = []model.HourlyRate{}
	}
	response.Success(c, http.StatusOK, gin.H{"hourly_rates": rates})
}

// GetHourlyRate godoc
// GET /api/v1/hourly-rates/:id
func (h *CoefficientHandler) GetHourlyRate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	rate, err := h.coefficientService.GetHourlyRate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hourly_rate": rate})
}

// GetHourlyRateByYear godoc
// GET /api/v1/hourly-rates/years/:year
func (h *CoefficientHandler) GetHourlyRateByYear(c *gin.Context) {
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}
	rate, err := h.coefficientService.GetHourlyRateByYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hourly_rate": rate})
}

// CreateHourlyRate godoc
// POST /api/v1/hourly-rates
func (h *CoefficientHandler) CreateHourlyRate(c *gin.Context) {
	var req model.CreateHourlyRateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	rate, err := h.coefficientService.CreateHourlyRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"hourly_rate": rate})
}

// UpdateHourlyRate godoc
// PUT /api/v1/hourly-rates/:id
func (h *CoefficientHandler) UpdateHourlyRate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.UpdateHourlyRateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	rate, err := h.coefficientService.UpdateHourlyRate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hourly_rate": rate})
}

// DeleteHourlyRate godoc
// DELETE /api/v1/hourly-rates/:id
func (h *CoefficientHandler) DeleteHourlyRate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.coefficientService.DeleteHourlyRate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "hourly rate deleted successfully"})
}

// ─── Teacher coefficients ───────────────────────────────────────────────

// ListTeacherCoefficients godoc
// GET /api/v1/teacher-coefficients?academic_year=
func (h *CoefficientHandler) ListTeacherCoefficients(c *gin.Context) {
	coefs, err := h.coefficientService.ListTeacherCoefficients(c.Request.Context(), c.Query("academic_year"))
	if err != nil {
		respondError(c, err)
		return
	}
	if coefs == nil {
		coefs = []model.TeacherCoefficient{}
	}
	response.Success(c, http.StatusOK, gin.H{"teacher_coefficients": coefs})
}

// TeacherCoefficientsForYear godoc
// GET /api/v1/teacher-coefficients/years/:year
// Lists every degree; degrees without a stored value show a suggestion
// flagged "defaulted".
func (h *CoefficientHandler) TeacherCoefficientsForYear(c *gin.Context) {
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}
	views, err := h.coefficientService.TeacherCoefficientsForYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher_coefficients": views})
}

// GetTeacherCoefficient godoc
// GET /api/v1/teacher-coefficients/:id
func (h *CoefficientHandler) GetTeacherCoefficient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	coef, err := h.coefficientService.GetTeacherCoefficient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher_coefficient": coef})
}

// CreateTeacherCoefficient godoc
// POST /api/v1/teacher-coefficients
func (h *CoefficientHandler) CreateTeacherCoefficient(c *gin.Context) {
	var req model.CreateTeacherCoefficientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	coef, err := h.coefficientService.CreateTeacherCoefficient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"teacher_coefficient": coef})
}

// BatchUpsertTeacherCoefficients godoc
// PUT /api/v1/teacher-coefficients/batch
func (h *CoefficientHandler) BatchUpsertTeacherCoefficients(c *gin.Context) {
	var req model.BatchTeacherCoefficientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	views, err := h.coefficientService.BatchUpsertTeacherCoefficients(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher_coefficients": views})
}

// UpdateTeacherCoefficient godoc
// PUT /api/v1/teacher-coefficients/:id
func (h *CoefficientHandler) UpdateTeacherCoefficient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.UpdateTeacherCoefficientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	coef, err := h.coefficientService.UpdateTeacherCoefficient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher_coefficient": coef})
}

// DeleteTeacherCoefficient godoc
// DELETE /api/v1/teacher-coefficients/:id
func (h *CoefficientHandler) DeleteTeacherCoefficient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.coefficientService.DeleteTeacherCoefficient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "teacher coefficient deleted successfully"})
}

// ─── Class coefficients ─────────────────────────────────────────────────

// StudentRanges godoc
// GET /api/v1/class-coefficients/ranges
// Lists the class-size bands in order.
func (h *CoefficientHandler) StudentRanges(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"ranges":  payroll.StudentRanges,
		"default": payroll.DefaultRange,
	})
}

// ListClassCoefficients godoc
// GET /api/v1/class-coefficients
func (h *CoefficientHandler) ListClassCoefficients(c *gin.Context) {
	coefs, err := h.coefficientService.ListClassCoefficients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if coefs == nil {
		coefs = []model.ClassCoefficient{}
	}
	response.Success(c, http.StatusOK, gin.H{"class_coefficients": coefs})
}

// ClassCoefficientForYear godoc
// GET /api/v1/class-coefficients/years/:year
func (h *CoefficientHandler) ClassCoefficientForYear(c *gin.Context) {
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}
	view, err := h.coefficientService.ClassCoefficientForYear(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class_coefficient": view})
}

// UpsertClassCoefficient godoc
// PUT /api/v1/class-coefficients/years/:year
func (h *CoefficientHandler) UpsertClassCoefficient(c *gin.Context) {
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}
	var req model.UpdateClassCoefficientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	coef, err := h.coefficientService.UpsertClassCoefficient(c.Request.Context(), year, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class_coefficient": coef})
}

// GetClassCoefficient godoc
// GET /api/v1/class-coefficients/:id
func (h *CoefficientHandler) GetClassCoefficient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	coef, err := h.coefficientService.GetClassCoefficient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class_coefficient": coef})
}

// CreateClassCoefficient godoc
// POST /api/v1/class-coefficients
func (h *CoefficientHandler) CreateClassCoefficient(c *gin.Context) {
	var req model.CreateClassCoefficientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	coef, err := h.coefficientService.CreateClassCoefficient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"class_coefficient": coef})
}

// UpdateClassCoefficient godoc
// PUT /api/v1/class-coefficients/:id
func (h *CoefficientHandler) UpdateClassCoefficient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.UpdateClassCoefficientRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	coef, err := h.coefficientService.UpdateClassCoefficient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class_coefficient": coef})
}

// DeleteClassCoefficient godoc
// DELETE /api/v1/class-coefficients/:id
func (h *CoefficientHandler) DeleteClassCoefficient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.coefficientService.DeleteClassCoefficient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "class coefficient deleted successfully"})
}
