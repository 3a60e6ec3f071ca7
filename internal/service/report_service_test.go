package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/teachpay-backend/internal/logger"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/response"
)

func TestBuildConfigStatus(t *testing.T) {
	master := model.Degree{ID: uuid.New(), FullName: "Thạc sĩ"}
	doctor := model.Degree{ID: uuid.New(), FullName: "Tiến sĩ"}
	degrees := []model.Degree{master, doctor}
	stored := []model.TeacherCoefficient{{DegreeID: master.ID}}
	rate := &model.HourlyRate{AcademicYear: "2025-2026"}
	class := &model.ClassCoefficient{AcademicYear: "2025-2026", StandardStudentRange: payroll.Range40To49}

	t.Run("default policy tolerates missing degree coefficients", func(t *testing.T) {
		st := buildConfigStatus("2025-2026", payroll.PolicyDefault, rate, class, degrees, stored)
		assert.True(t, st.Ready)
		assert.Empty(t, st.Missing)
		assert.Equal(t, []model.Degree{doctor}, st.DegreesWithoutCoefficient)
	})

	t.Run("required policy flags them", func(t *testing.T) {
		st := buildConfigStatus("2025-2026", payroll.PolicyRequired, rate, class, degrees, stored)
		assert.False(t, st.Ready)
		assert.Equal(t, []payroll.ConfigKind{payroll.ConfigTeacherCoefficient}, st.Missing)
	})

	t.Run("nothing configured", func(t *testing.T) {
		st := buildConfigStatus("2026-2027", payroll.PolicyDefault, nil, nil, nil, nil)
		assert.False(t, st.Ready)
		assert.Equal(t, []payroll.ConfigKind{payroll.ConfigHourlyRate, payroll.ConfigClassCoefficient}, st.Missing)
		assert.NotNil(t, st.DegreesWithoutCoefficient)
	})
}

func TestValidateExportParams(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		params model.ExportParams
		ok     bool
	}{
		{"teacher yearly", model.ExportParams{Kind: model.ExportTeacherYearly, TeacherID: &id, AcademicYear: "2025-2026"}, true},
		{"teacher yearly without year", model.ExportParams{Kind: model.ExportTeacherYearly, TeacherID: &id}, false},
		{"teacher semester", model.ExportParams{Kind: model.ExportTeacherSemester, TeacherID: &id, SemesterID: &id}, true},
		{"teacher semester without semester", model.ExportParams{Kind: model.ExportTeacherSemester, TeacherID: &id}, false},
		{"department", model.ExportParams{Kind: model.ExportDepartment, DepartmentID: &id, AcademicYear: "2025-2026"}, true},
		{"department without id", model.ExportParams{Kind: model.ExportDepartment, AcademicYear: "2025-2026"}, false},
		{"institution", model.ExportParams{Kind: model.ExportInstitution, AcademicYear: "2025-2026"}, true},
		{"unknown kind", model.ExportParams{Kind: "payslip", AcademicYear: "2025-2026"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExportParams(tt.params)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidExportParams)
			}
		})
	}
}

func TestJobErrorCode(t *testing.T) {
	missing := &payroll.ConfigurationMissingError{Kind: payroll.ConfigHourlyRate, AcademicYear: "2025-2026"}

	assert.Equal(t, response.ErrConfigurationMissing, JobErrorCode(fmt.Errorf("render: %w", missing)))
	assert.Equal(t, response.ErrSemesterYearMismatch, JobErrorCode(payroll.ErrSemesterYearMismatch))
	assert.Equal(t, response.ErrNotFound, JobErrorCode(fmt.Errorf("teacher x: %w", payroll.ErrNotFound)))
	assert.Equal(t, response.ErrValidation, JobErrorCode(ErrInvalidExportParams))
	assert.Equal(t, response.ErrExportFailed, JobErrorCode(errors.New("boom")))
}

func TestReportService_LogFailureCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	s := &ReportService{log: zerolog.New(&buf)}
	ctx := logger.WithRequestID(context.Background(), "req-9")

	s.logFailure(ctx, &payroll.ConfigurationMissingError{Kind: payroll.ConfigHourlyRate, AcademicYear: "2030-2031"}, "2030-2031")
	s.logFailure(ctx, errors.New("connection reset"), "2030-2031")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "req-9", entry["request_id"])
	}
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[1], `"level":"error"`)
}
