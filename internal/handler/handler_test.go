package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/teachpay-backend/internal/export"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testYear = "2025-2026"

// stubStore serves one teacher with one class in term 1 of testYear.
type stubStore struct {
	teacher    payroll.Teacher
	department payroll.Department
	semester   payroll.Semester
	assignment payroll.Assignment
	rate       *payroll.HourlyRate
	standard   *payroll.ClassStandard
	coef       *payroll.DegreeCoefficient
}

func newStubStore() *stubStore {
	dept := payroll.Department{ID: uuid.New(), FullName: "Khoa Công nghệ thông tin", ShortName: "CNTT"}
	sem := payroll.Semester{ID: uuid.New(), AcademicYear: testYear, TermNumber: 1}
	teacher := payroll.Teacher{
		ID:             uuid.New(),
		Code:           "GV01",
		FullName:       "Trần Thị B",
		DepartmentID:   dept.ID,
		DepartmentName: dept.FullName,
		DegreeID:       uuid.New(),
		DegreeName:     "Thạc sĩ",
	}
	return &stubStore{
		teacher:    teacher,
		department: dept,
		semester:   sem,
		assignment: payroll.Assignment{
			ID:                 uuid.New(),
			TeacherID:          teacher.ID,
			CourseClassID:      uuid.New(),
			CourseClassCode:    "LHP0001N01",
			StudentCount:       25,
			SemesterID:         sem.ID,
			SubjectID:          uuid.New(),
			SubjectCode:        "HP0001",
			Credits:            3,
			SubjectCoefficient: decimal.RequireFromString("1.2"),
			TotalPeriods:       60,
		},
		rate:     &payroll.HourlyRate{ID: uuid.New(), AcademicYear: testYear, RatePerHour: decimal.NewFromInt(15000)},
		standard: &payroll.ClassStandard{ID: uuid.New(), AcademicYear: testYear, StandardStudentRange: payroll.Range40To49},
		coef:     &payroll.DegreeCoefficient{ID: uuid.New(), Coefficient: decimal.RequireFromString("1.5")},
	}
}

func (s *stubStore) FindTeacher(_ context.Context, id uuid.UUID) (*payroll.Teacher, error) {
	if id != s.teacher.ID {
		return nil, nil
	}
	t := s.teacher
	return &t, nil
}

func (s *stubStore) FindDepartment(_ context.Context, id uuid.UUID) (*payroll.Department, error) {
	if id != s.department.ID {
		return nil, nil
	}
	d := s.department
	return &d, nil
}

func (s *stubStore) FindSemester(_ context.Context, id uuid.UUID) (*payroll.Semester, error) {
	if id != s.semester.ID {
		return nil, nil
	}
	sem := s.semester
	return &sem, nil
}

func (s *stubStore) ListDepartments(context.Context) ([]payroll.Department, error) {
	return []payroll.Department{s.department}, nil
}

func (s *stubStore) ListTeachersByDepartment(_ context.Context, id uuid.UUID) ([]payroll.Teacher, error) {
	if id != s.department.ID {
		return nil, nil
	}
	return []payroll.Teacher{s.teacher}, nil
}

func (s *stubStore) ListSemestersByYear(_ context.Context, year string) ([]payroll.Semester, error) {
	if year != s.semester.AcademicYear {
		return nil, nil
	}
	return []payroll.Semester{s.semester}, nil
}

func (s *stubStore) ListAssignments(_ context.Context, teacherID uuid.UUID, semesterIDs []uuid.UUID) ([]payroll.Assignment, error) {
	if teacherID != s.teacher.ID {
		return nil, nil
	}
	for _, id := range semesterIDs {
		if id == s.assignment.SemesterID {
			return []payroll.Assignment{s.assignment}, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindHourlyRate(_ context.Context, year string) (*payroll.HourlyRate, error) {
	if s.rate == nil || year != s.rate.AcademicYear {
		return nil, nil
	}
	return s.rate, nil
}

func (s *stubStore) FindClassStandard(_ context.Context, year string) (*payroll.ClassStandard, error) {
	if s.standard == nil || year != s.standard.AcademicYear {
		return nil, nil
	}
	return s.standard, nil
}

func (s *stubStore) FindTeacherCoefficient(context.Context, string, uuid.UUID) (*payroll.DegreeCoefficient, error) {
	return s.coef, nil
}

func reportRouter(store payroll.Store) *gin.Engine {
	engine := payroll.NewEngine(store, payroll.Options{}, zerolog.Nop())
	rs := service.NewReportService(engine, nil, nil, nil, nil, nil, zerolog.Nop())
	h := NewReportHandler(rs, nil)

	r := gin.New()
	r.GET("/reports/teachers/:teacher_id/years/:year", h.TeacherYearly)
	r.GET("/reports/teachers/:teacher_id/years/:year/export", AsExport, h.TeacherYearly)
	r.GET("/reports/institution/years/:year", h.Institution)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorBody `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestReportHandler_TeacherYearly(t *testing.T) {
	store := newStubStore()
	r := reportRouter(store)

	w := get(r, fmt.Sprintf("/reports/teachers/%s/years/%s", store.teacher.ID, testYear))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report struct {
		AcademicYear string `json:"academic_year"`
		Summary      struct {
			TotalClasses int             `json:"total_classes"`
			TotalSalary  decimal.Decimal `json:"total_salary"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &report))
	assert.Equal(t, testYear, report.AcademicYear)
	assert.Equal(t, 1, report.Summary.TotalClasses)
	assert.True(t, decimal.NewFromInt(1296000).Equal(report.Summary.TotalSalary), report.Summary.TotalSalary.String())
}

func TestReportHandler_TeacherYearlyExport(t *testing.T) {
	store := newStubStore()
	r := reportRouter(store)

	w := get(r, fmt.Sprintf("/reports/teachers/%s/years/%s/export", store.teacher.ID, testYear))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bao-cao-tien-day-GV01-2025-2026.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestReportHandler_MissingHourlyRate(t *testing.T) {
	store := newStubStore()
	store.rate = nil
	r := reportRouter(store)

	w := get(r, fmt.Sprintf("/reports/teachers/%s/years/%s", store.teacher.ID, testYear))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrConfigurationMissing, env.Error.Code)
	assert.Equal(t, string(payroll.ConfigHourlyRate), env.Error.Fields["kind"])
	assert.Equal(t, testYear, env.Error.Fields["academic_year"])
}

func TestReportHandler_BadParams(t *testing.T) {
	store := newStubStore()
	r := reportRouter(store)

	w := get(r, "/reports/teachers/not-a-uuid/years/"+testYear)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidID, decode(t, w).Error.Code)

	w = get(r, fmt.Sprintf("/reports/teachers/%s/years/2025-2027", store.teacher.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrValidation, decode(t, w).Error.Code)

	w = get(r, fmt.Sprintf("/reports/teachers/%s/years/%s", uuid.New(), testYear))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/reports/institution/years/"+testYear+"?semester_id=xyz")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_InstitutionSemesterFromOtherYear(t *testing.T) {
	store := newStubStore()
	store.rate.AcademicYear = "2024-2025"
	store.standard.AcademicYear = "2024-2025"
	r := reportRouter(store)

	w := get(r, fmt.Sprintf("/reports/institution/years/2024-2025?semester_id=%s", store.semester.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrSemesterYearMismatch, decode(t, w).Error.Code)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   response.ErrCode
	}{
		{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
		{fmt.Errorf("get: %w", service.ErrConflict), http.StatusConflict, response.ErrConflict},
		{service.ErrAlreadyConfigured, http.StatusConflict, response.ErrAlreadyConfigured},
		{service.ErrDependencyExists, http.StatusConflict, response.ErrDependencyExists},
		{service.ErrClassAlreadyAssigned, http.StatusConflict, response.ErrClassAlreadyAssigned},
		{service.ErrInvalidReference, http.StatusBadRequest, response.ErrInvalidReference},
		{service.ErrInvalidDateRange, http.StatusBadRequest, response.ErrInvalidDateRange},
		{service.ErrCannotDeleteSelf, http.StatusForbidden, response.ErrCannotDeleteSelf},
		{service.ErrExportNotReady, http.StatusConflict, response.ErrExportNotReady},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
		{payroll.ErrSemesterYearMismatch, http.StatusBadRequest, response.ErrSemesterYearMismatch},
		{&payroll.ConfigurationMissingError{Kind: payroll.ConfigClassCoefficient, AcademicYear: testYear},
			http.StatusUnprocessableEntity, response.ErrConfigurationMissing},
		{errors.New("boom"), http.StatusInternalServerError, response.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		})
	}
}

func TestCanAccessJob(t *testing.T) {
	owner := uuid.New()
	job := &model.ExportJob{ID: uuid.New(), RequestedBy: owner}

	teacher := &service.Claims{UserID: uuid.New(), Permissions: model.RoleTeacher.Permissions()}
	accountant := &service.Claims{UserID: uuid.New(), Permissions: model.RoleAccountant.Permissions()}
	requester := &service.Claims{UserID: owner, Permissions: model.RoleTeacher.Permissions()}

	assert.False(t, canAccessJob(nil, job))
	assert.False(t, canAccessJob(teacher, job))
	assert.True(t, canAccessJob(accountant, job))
	assert.True(t, canAccessJob(requester, job))
}

func TestPageQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&per_page=25", nil)

	p := pageQuery(c)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 25, p.PerPage)
}
