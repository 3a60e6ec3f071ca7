package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/stemsi/teachpay-backend/internal/model"
)

func TestSummarizeWorkload(t *testing.T) {
	id := uuid.New()
	w := summarizeWorkload(id, []model.WorkloadLine{
		{Credits: 3, Periods: 45, StudentCount: 40},
		{Credits: 2, Periods: 30, StudentCount: 25},
	})

	assert.Equal(t, id, w.TeacherID)
	assert.Equal(t, 2, w.TotalClasses)
	assert.Equal(t, 65, w.TotalStudents)
	assert.Equal(t, 5, w.TotalCredits)
	assert.Equal(t, 75, w.TotalPeriods)

	empty := summarizeWorkload(id, []model.WorkloadLine{})
	assert.Zero(t, empty.TotalClasses)
	assert.NotNil(t, empty.Assignments)
}
