package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/export"
	"github.com/stemsi/teachpay-backend/internal/middleware"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

// ReportHandler serves payroll reports as JSON and xlsx, and manages
// background exports.
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
}

func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// ─── Teacher ────────────────────────────────────────────────────────────

// TeacherYearly godoc
// GET /api/v1/reports/teachers/:teacher_id/years/:year
func (h *ReportHandler) TeacherYearly(c *gin.Context) {
	teacherID, ok := uuidParam(c, "teacher_id")
	if !ok {
		return
	}
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}

	r, err := h.reportService.TeacherYearly(c.Request.Context(), teacherID, year)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.TeacherYearly(r)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// TeacherSemester godoc
// GET /api/v1/reports/teachers/:teacher_id/semesters/:semester_id
func (h *ReportHandler) TeacherSemester(c *gin.Context) {
	teacherID, ok := uuidParam(c, "teacher_id")
	if !ok {
		return
	}
	semesterID, ok := uuidParam(c, "semester_id")
	if !ok {
		return
	}

	r, err := h.reportService.TeacherSemester(c.Request.Context(), teacherID, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.TeacherSemester(r)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// ─── Department & institution ───────────────────────────────────────────

// Department godoc
// GET /api/v1/reports/departments/:department_id/years/:year?semester_id=
func (h *ReportHandler) Department(c *gin.Context) {
	deptID, ok := uuidParam(c, "department_id")
	if !ok {
		return
	}
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}
	semesterID, ok := uuidQuery(c, "semester_id")
	if !ok {
		return
	}

	r, err := h.reportService.Department(c.Request.Context(), deptID, year, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.Department(r)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// Institution godoc
// GET /api/v1/reports/institution/years/:year?semester_id=
func (h *ReportHandler) Institution(c *gin.Context) {
	year, ok := yearParam(c, "year")
	if !ok {
		return
	}
	semesterID, ok := uuidQuery(c, "semester_id")
	if !ok {
		return
	}

	r, err := h.reportService.Institution(c.Request.Context(), year, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.Institution(r)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// ─── Background exports ─────────────────────────────────────────────────

// EnqueueExport godoc
// POST /api/v1/reports/exports
// Queues an export; follow it on /ws/v1/exports/:job_id or poll its status.
func (h *ReportHandler) EnqueueExport(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ExportParams
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	job, err := h.exportService.Enqueue(c.Request.Context(), req, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"job": job})
}

// ExportStatus godoc
// GET /api/v1/reports/exports/:job_id
func (h *ReportHandler) ExportStatus(c *gin.Context) {
	jobID, ok := uuidParam(c, "job_id")
	if !ok {
		return
	}

	job, err := h.exportService.Status(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccessJob(middleware.GetClaims(c), job) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": job})
}

// DownloadExport godoc
// GET /api/v1/reports/exports/:job_id/download
func (h *ReportHandler) DownloadExport(c *gin.Context) {
	jobID, ok := uuidParam(c, "job_id")
	if !ok {
		return
	}

	job, err := h.exportService.Status(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccessJob(middleware.GetClaims(c), job) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	job, data, err := h.exportService.Download(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Attachment(c, job.Filename, export.ContentType, data)
}

const exportKey = "export_xlsx"

// AsExport marks the request for an xlsx rendering of the same report.
func AsExport(c *gin.Context) {
	c.Set(exportKey, true)
	c.Next()
}

// canAccessJob lets the requester follow their own job; report readers
// with institution-wide access may follow any.
func canAccessJob(claims *service.Claims, job *model.ExportJob) bool {
	if claims == nil {
		return false
	}
	return job.RequestedBy == claims.UserID || claims.HasPermission(model.PermissionReportsReadAll)
}
