package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/export"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
)

// StatisticsHandler serves teacher head counts.
type StatisticsHandler struct {
	statsService *service.StatisticsService
}

func NewStatisticsHandler(statsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// ByDepartment godoc
// GET /api/v1/statistics/by-department
func (h *StatisticsHandler) ByDepartment(c *gin.Context) {
	st, err := h.statsService.ByDepartment(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.DepartmentStatistics(st)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// ByDegree godoc
// GET /api/v1/statistics/by-degree
func (h *StatisticsHandler) ByDegree(c *gin.Context) {
	st, err := h.statsService.ByDegree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.DegreeStatistics(st)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// ByAge godoc
// GET /api/v1/statistics/by-age
func (h *StatisticsHandler) ByAge(c *gin.Context) {
	st, err := h.statsService.ByAge(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetBool(exportKey) {
		wb, err := export.AgeStatistics(st)
		writeWorkbook(c, wb, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}
