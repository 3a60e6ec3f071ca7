package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/teachpay-backend/internal/model"
)

func TestSemesterFromRequest(t *testing.T) {
	req := model.CreateSemesterRequest{
		TermNumber:   1,
		AcademicYear: "2025-2026",
		StartDate:    "2025-09-01",
		EndDate:      "2026-01-15",
	}

	sem, err := semesterFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, 2025, sem.StartDate.Year())
	assert.Equal(t, 15, sem.EndDate.Day())

	req.EndDate = req.StartDate
	_, err = semesterFromRequest(req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestTeacherFromRequest(t *testing.T) {
	_, err := teacherFromRequest(model.CreateTeacherRequest{FullName: "A", DateOfBirth: "1990-13-01"})
	assert.Error(t, err)

	teacher, err := teacherFromRequest(model.CreateTeacherRequest{FullName: "A", DateOfBirth: "1990-02-01"})
	require.NoError(t, err)
	assert.Equal(t, 1990, teacher.DateOfBirth.Year())
	assert.Empty(t, teacher.Code)
}
