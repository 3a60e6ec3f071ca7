package payroll_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// memStore is an in-memory payroll.Store for engine tests.
type memStore struct {
	mu sync.RWMutex

	departments  map[uuid.UUID]payroll.Department
	teachers     map[uuid.UUID]payroll.Teacher
	semesters    map[uuid.UUID]payroll.Semester
	assignments  []payroll.Assignment
	rates        map[string]payroll.HourlyRate
	standards    map[string]payroll.ClassStandard
	coefficients map[coefKey]payroll.DegreeCoefficient

	// failAssignments makes ListAssignments return an error.
	failAssignments error
}

type coefKey struct {
	year     string
	degreeID uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		departments:  make(map[uuid.UUID]payroll.Department),
		teachers:     make(map[uuid.UUID]payroll.Teacher),
		semesters:    make(map[uuid.UUID]payroll.Semester),
		rates:        make(map[string]payroll.HourlyRate),
		standards:    make(map[string]payroll.ClassStandard),
		coefficients: make(map[coefKey]payroll.DegreeCoefficient),
	}
}

// ─── Fixture builders ─────────────────────────────────────────────────

func (m *memStore) addDepartment(name string) payroll.Department {
	d := payroll.Department{ID: uuid.New(), FullName: name, ShortName: name}
	m.departments[d.ID] = d
	return d
}

func (m *memStore) addTeacher(dept payroll.Department, degreeID uuid.UUID, name string) payroll.Teacher {
	t := payroll.Teacher{
		ID:             uuid.New(),
		Code:           "GV" + name,
		FullName:       name,
		DepartmentID:   dept.ID,
		DepartmentName: dept.FullName,
		DegreeID:       degreeID,
	}
	m.teachers[t.ID] = t
	return t
}

func (m *memStore) addSemester(year string, term int, supplementary bool) payroll.Semester {
	s := payroll.Semester{ID: uuid.New(), AcademicYear: year, TermNumber: term, IsSupplementary: supplementary}
	m.semesters[s.ID] = s
	return s
}

func (m *memStore) assign(t payroll.Teacher, s payroll.Semester, studentCount, totalPeriods int, subjectCoef string) payroll.Assignment {
	a := payroll.Assignment{
		ID:                 uuid.New(),
		TeacherID:          t.ID,
		CourseClassID:      uuid.New(),
		CourseClassCode:    "LHP0001N01",
		StudentCount:       studentCount,
		SemesterID:         s.ID,
		SubjectID:          uuid.New(),
		SubjectCode:        "HP0001",
		Credits:            3,
		SubjectCoefficient: decimal.RequireFromString(subjectCoef),
		TotalPeriods:       totalPeriods,
	}
	m.assignments = append(m.assignments, a)
	return a
}

func (m *memStore) configureYear(year, rate string, standard payroll.StudentRange) {
	m.rates[year] = payroll.HourlyRate{ID: uuid.New(), AcademicYear: year, RatePerHour: decimal.RequireFromString(rate)}
	m.standards[year] = payroll.ClassStandard{ID: uuid.New(), AcademicYear: year, StandardStudentRange: standard}
}

func (m *memStore) setCoefficient(year string, degreeID uuid.UUID, value string) payroll.DegreeCoefficient {
	c := payroll.DegreeCoefficient{ID: uuid.New(), Coefficient: decimal.RequireFromString(value)}
	m.coefficients[coefKey{year, degreeID}] = c
	return c
}

// ─── payroll.Store ────────────────────────────────────────────────────

func (m *memStore) FindTeacher(_ context.Context, id uuid.UUID) (*payroll.Teacher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.teachers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *memStore) FindDepartment(_ context.Context, id uuid.UUID) (*payroll.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.departments[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (m *memStore) FindSemester(_ context.Context, id uuid.UUID) (*payroll.Semester, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.semesters[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memStore) ListDepartments(_ context.Context) ([]payroll.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]payroll.Department, 0, len(m.departments))
	for _, d := range m.departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *memStore) ListTeachersByDepartment(_ context.Context, departmentID uuid.UUID) ([]payroll.Teacher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []payroll.Teacher
	for _, t := range m.teachers {
		if t.DepartmentID == departmentID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *memStore) ListSemestersByYear(_ context.Context, academicYear string) ([]payroll.Semester, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []payroll.Semester
	for _, s := range m.semesters {
		if s.AcademicYear == academicYear {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TermNumber != out[j].TermNumber {
			return out[i].TermNumber < out[j].TermNumber
		}
		return !out[i].IsSupplementary && out[j].IsSupplementary
	})
	return out, nil
}

func (m *memStore) ListAssignments(_ context.Context, teacherID uuid.UUID, semesterIDs []uuid.UUID) ([]payroll.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failAssignments != nil {
		return nil, m.failAssignments
	}
	in := make(map[uuid.UUID]bool, len(semesterIDs))
	for _, id := range semesterIDs {
		in[id] = true
	}
	var out []payroll.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID && in[a.SemesterID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) FindHourlyRate(_ context.Context, academicYear string) (*payroll.HourlyRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rates[academicYear]; ok {
		return &r, nil
	}
	return nil, nil
}

func (m *memStore) FindClassStandard(_ context.Context, academicYear string) (*payroll.ClassStandard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.standards[academicYear]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memStore) FindTeacherCoefficient(_ context.Context, academicYear string, degreeID uuid.UUID) (*payroll.DegreeCoefficient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.coefficients[coefKey{academicYear, degreeID}]; ok {
		return &c, nil
	}
	return nil, nil
}

var errStoreDown = errors.New("store down")
