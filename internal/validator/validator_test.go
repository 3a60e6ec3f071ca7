package validator

import (
	"strings"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	AcademicYear string `json:"academic_year" validate:"required,academic_year"`
	Range        string `json:"standard_student_range" validate:"omitempty,student_range"`
	Periods      int    `json:"total_periods" validate:"omitempty,total_periods"`
	Username     string `json:"username" validate:"omitempty,username"`
}

func newValidate() *govalidator.Validate {
	v := govalidator.New()
	Register(v)
	return v
}

func TestValidAcademicYear(t *testing.T) {
	assert.True(t, ValidAcademicYear("2025-2026"))
	assert.False(t, ValidAcademicYear("2025-2027"))
	assert.False(t, ValidAcademicYear("2025/2026"))
	assert.False(t, ValidAcademicYear("25-26"))
	assert.False(t, ValidAcademicYear(""))
}

func TestCustomTags(t *testing.T) {
	v := newValidate()

	assert.NoError(t, v.Struct(sample{AcademicYear: "2024-2025", Range: "40-49", Periods: 45, Username: "gv.0001"}))

	err := v.Struct(sample{AcademicYear: "2024-2026", Range: "15-25", Periods: 40, Username: "bad name"})
	require.Error(t, err)

	fields := TranslateErrors(err)
	assert.Len(t, fields, 4)
	assert.Contains(t, fields["academic_year"], "2025-2026")
	assert.Contains(t, fields["standard_student_range"], "100+")
	assert.Contains(t, fields["total_periods"], "135")
	assert.Contains(t, fields, "username")
}

func TestTranslateErrors_NonValidation(t *testing.T) {
	fields := TranslateErrors(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), fields["detail"])
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, ValidRequestID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.True(t, ValidRequestID("lb:edge-1.req_42"))
	assert.True(t, ValidRequestID(strings.Repeat("x", 64)))

	assert.False(t, ValidRequestID(""))
	assert.False(t, ValidRequestID(strings.Repeat("x", 65)))
	assert.False(t, ValidRequestID("a/b"))
	assert.False(t, ValidRequestID("id\r\nX-Injected: 1"))
}
