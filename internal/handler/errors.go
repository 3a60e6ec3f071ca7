package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
)

// respondError maps service and payroll errors to API error responses.
// Anything unrecognised is a 500 and is attached to the context for the
// request logger.
func respondError(c *gin.Context, err error) {
	var missing *payroll.ConfigurationMissingError
	switch {
	case errors.As(err, &missing):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrConfigurationMissing, map[string]string{
			"kind":          string(missing.Kind),
			"academic_year": missing.AcademicYear,
		})
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, payroll.ErrSemesterYearMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrSemesterYearMismatch)
	case errors.Is(err, service.ErrAlreadyConfigured):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyConfigured)
	case errors.Is(err, service.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrDependencyExists):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, service.ErrClassAlreadyAssigned):
		response.Fail(c, http.StatusConflict, response.ErrClassAlreadyAssigned)
	case errors.Is(err, service.ErrInvalidReference):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidReference)
	case errors.Is(err, service.ErrInvalidDateRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDateRange)
	case errors.Is(err, service.ErrTeacherLinkRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrTeacherLinkRequired)
	case errors.Is(err, service.ErrInvalidExportParams):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"kind": err.Error(),
		})
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.Fail(c, http.StatusForbidden, response.ErrCannotDeleteSelf)
	case errors.Is(err, service.ErrExportNotReady):
		response.Fail(c, http.StatusConflict, response.ErrExportNotReady)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrAccountDisabled):
		response.Fail(c, http.StatusForbidden, response.ErrAccountDisabled)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
