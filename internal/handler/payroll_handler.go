package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/export"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

// PayrollHandler runs standalone payroll calculations.
type PayrollHandler struct {
	reportService *service.ReportService
}

func NewPayrollHandler(reportService *service.ReportService) *PayrollHandler {
	return &PayrollHandler{reportService: reportService}
}

// Calculate godoc
// POST /api/v1/payroll/calculate
// Prices every class of a teacher in one semester.
func (h *PayrollHandler) Calculate(c *gin.Context) {
	var req model.CalculatePayrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.reportService.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CalculateExport godoc
// POST /api/v1/payroll/calculate/export
func (h *PayrollHandler) CalculateExport(c *gin.Context) {
	var req model.CalculatePayrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.reportService.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	wb, err := export.SinglePayroll(res)
	writeWorkbook(c, wb, err)
}

// AcademicYears godoc
// GET /api/v1/payroll/academic-years
func (h *PayrollHandler) AcademicYears(c *gin.Context) {
	years, err := h.reportService.AcademicYears(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if years == nil {
		years = []string{}
	}
	response.Success(c, http.StatusOK, gin.H{"academic_years": years})
}

// ConfigStatus godoc
// GET /api/v1/payroll/config-status/:year
// Reports which reference data the year still needs before payroll runs.
func (h *PayrollHandler) ConfigStatus(c *gin.Context) {
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}

	st, err := h.reportService.ConfigStatus(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func writeWorkbook(c *gin.Context, wb *export.Workbook, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	response.Attachment(c, wb.Filename, export.ContentType, wb.Data)
}
