package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

// uuidParam parses a path parameter, answering 400 INVALID_ID on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery parses an optional query parameter. An empty value yields nil.
func uuidQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, map[string]string{name: "must be a UUID"})
		return nil, false
	}
	return &id, true
}

// yearParam validates an academic year path parameter such as 2025-2026.
func yearParam(c *gin.Context, name string) (string, bool) {
	year := c.Param(name)
	if !validator.ValidAcademicYear(year) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			name: "must look like 2025-2026",
		})
		return "", false
	}
	return year, true
}

// pageQuery reads ?page=&per_page=; the service clamps the values.
func pageQuery(c *gin.Context) service.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return service.Page{Number: page, PerPage: perPage}
}
