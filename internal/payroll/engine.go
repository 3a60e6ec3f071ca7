package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Options tunes an Engine.
type Options struct {
	Policy CoefficientPolicy
	// Concurrency bounds how many teachers or departments are priced at once.
	Concurrency int
	Now         func() time.Time
}

// Engine computes payrolls and payroll reports from a Store. It keeps no
// state between calls.
type Engine struct {
	store       Store
	policy      CoefficientPolicy
	concurrency int
	now         func() time.Time
	log         zerolog.Logger
}

// NewEngine creates a new Engine.
func NewEngine(store Store, opts Options, log zerolog.Logger) *Engine {
	if opts.Policy == "" {
		opts.Policy = PolicyDefault
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:       store,
		policy:      opts.Policy,
		concurrency: opts.Concurrency,
		now:         opts.Now,
		log:         log.With().Str("component", "payroll_engine").Logger(),
	}
}

// Policy returns the teacher coefficient policy in effect.
func (e *Engine) Policy() CoefficientPolicy {
	return e.policy
}

// ─── Single payroll ───────────────────────────────────────────────────

// CalculateSinglePayroll prices every class a teacher teaches in one
// semester. A teacher with no assignments in the semester is ErrNotFound.
func (e *Engine) CalculateSinglePayroll(ctx context.Context, academicYear string, semesterID, teacherID uuid.UUID) (*PayrollResult, error) {
	teacher, err := e.teacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	semester, err := e.semester(ctx, semesterID, academicYear)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadYearConfig(ctx, e.store, academicYear, e.policy)
	if err != nil {
		return nil, err
	}

	load, err := e.priceTeacher(ctx, cfg, *teacher, []uuid.UUID{semester.ID})
	if err != nil {
		return nil, err
	}
	if len(load.classes) == 0 {
		return nil, notFound("no assignments for teacher %s in semester %s", teacherID, semesterID)
	}

	return &PayrollResult{
		Teacher:      *teacher,
		Semester:     semesterInfo(*semester),
		Coefficients: cfg.used(&load.coefficient),
		Classes:      classLines(load.classes, 2),
		Summary:      load.totals.summary(),
		CalculatedAt: e.now().UTC(),
	}, nil
}

// ─── Teacher reports ──────────────────────────────────────────────────

// TeacherSemesterReport summarises one teacher in one semester. Unlike
// CalculateSinglePayroll, an empty semester yields a zero report.
func (e *Engine) TeacherSemesterReport(ctx context.Context, teacherID, semesterID uuid.UUID) (*TeacherSemesterReport, error) {
	teacher, err := e.teacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	semester, err := e.semester(ctx, semesterID, "")
	if err != nil {
		return nil, err
	}

	cfg, err := LoadYearConfig(ctx, e.store, semester.AcademicYear, e.policy)
	if err != nil {
		return nil, err
	}

	load, err := e.priceTeacher(ctx, cfg, *teacher, []uuid.UUID{semester.ID})
	if err != nil {
		return nil, err
	}

	return &TeacherSemesterReport{
		Teacher:      *teacher,
		Semester:     semesterInfo(*semester),
		Coefficients: cfg.used(&load.coefficient),
		Classes:      classLines(load.classes, 2),
		Summary:      load.totals.summary(),
	}, nil
}

// TeacherYearlyReport summarises a teacher per semester over an academic year.
func (e *Engine) TeacherYearlyReport(ctx context.Context, teacherID uuid.UUID, academicYear string) (*TeacherYearlyReport, error) {
	teacher, err := e.teacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	semesters, err := e.semestersOf(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadYearConfig(ctx, e.store, academicYear, e.policy)
	if err != nil {
		return nil, err
	}

	load, err := e.priceTeacher(ctx, cfg, *teacher, semesterIDs(semesters))
	if err != nil {
		return nil, err
	}

	perSemester := make(map[uuid.UUID]*totals, len(semesters))
	for _, s := range semesters {
		perSemester[s.ID] = &totals{}
	}
	for _, p := range load.classes {
		if t, ok := perSemester[p.Assignment.SemesterID]; ok {
			t.addClass(p)
		}
	}

	lines := make([]SemesterLine, len(semesters))
	for i, s := range semesters {
		lines[i] = SemesterLine{
			Semester: semesterInfo(s),
			Summary:  perSemester[s.ID].summary(),
		}
	}

	e.log.Debug().
		Str("teacher_id", teacherID.String()).
		Str("academic_year", academicYear).
		Int("classes", load.totals.classes).
		Msg("Teacher yearly report computed")

	return &TeacherYearlyReport{
		Teacher:      *teacher,
		AcademicYear: academicYear,
		Coefficients: cfg.used(&load.coefficient),
		Semesters:    lines,
		Summary:      load.totals.summary(),
	}, nil
}

// ─── Department & institution reports ─────────────────────────────────

// DepartmentReport summarises every teacher of a department, including
// teachers without assignments. A nil semesterID covers the whole year.
// The year's configuration is checked before the semester scope.
func (e *Engine) DepartmentReport(ctx context.Context, departmentID uuid.UUID, academicYear string, semesterID *uuid.UUID) (*DepartmentReport, error) {
	dept, err := e.store.FindDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("find department: %w", err)
	}
	if dept == nil {
		return nil, notFound("department %s", departmentID)
	}

	teachers, err := e.store.ListTeachersByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	if len(teachers) == 0 {
		return nil, notFound("no teachers in department %s", departmentID)
	}

	cfg, err := LoadYearConfig(ctx, e.store, academicYear, e.policy)
	if err != nil {
		return nil, err
	}

	scope, err := e.scope(ctx, academicYear, semesterID)
	if err != nil {
		return nil, err
	}

	loads := make([]teacherLoad, len(teachers))
	err = e.forEach(ctx, len(teachers), func(ctx context.Context, i int) error {
		load, err := e.priceTeacher(ctx, cfg, teachers[i], scope.semesterIDs)
		if err != nil {
			return err
		}
		loads[i] = load
		return nil
	})
	if err != nil {
		return nil, err
	}

	var sum totals
	lines := make([]TeacherLine, len(teachers))
	for i, load := range loads {
		sum.merge(load.totals)
		lines[i] = TeacherLine{
			Teacher:            teachers[i],
			TeacherCoefficient: load.coefficient,
			Summary:            load.totals.summary(),
		}
	}

	e.log.Debug().
		Str("department_id", departmentID.String()).
		Str("academic_year", academicYear).
		Int("teachers", len(lines)).
		Int("classes", sum.classes).
		Msg("Department report computed")

	return &DepartmentReport{
		Department:   *dept,
		AcademicYear: academicYear,
		Semester:     scope.semester,
		Coefficients: cfg.used(nil),
		Teachers:     lines,
		Summary:      sum.summary(),
	}, nil
}

// InstitutionReport summarises every department, including departments
// without assignments. A nil semesterID covers the whole year.
func (e *Engine) InstitutionReport(ctx context.Context, academicYear string, semesterID *uuid.UUID) (*InstitutionReport, error) {
	depts, err := e.store.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	if len(depts) == 0 {
		return nil, notFound("no departments")
	}

	cfg, err := LoadYearConfig(ctx, e.store, academicYear, e.policy)
	if err != nil {
		return nil, err
	}

	scope, err := e.scope(ctx, academicYear, semesterID)
	if err != nil {
		return nil, err
	}

	lines := make([]DepartmentLine, len(depts))
	deptTotals := make([]totals, len(depts))
	err = e.forEach(ctx, len(depts), func(ctx context.Context, i int) error {
		teachers, err := e.store.ListTeachersByDepartment(ctx, depts[i].ID)
		if err != nil {
			return fmt.Errorf("list teachers: %w", err)
		}
		var t totals
		for _, teacher := range teachers {
			load, err := e.priceTeacher(ctx, cfg, teacher, scope.semesterIDs)
			if err != nil {
				return err
			}
			t.merge(load.totals)
		}
		deptTotals[i] = t
		lines[i] = DepartmentLine{
			Department:   depts[i],
			TeacherCount: len(teachers),
			Summary:      t.summary(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var sum totals
	for _, t := range deptTotals {
		sum.merge(t)
	}

	e.log.Debug().
		Str("academic_year", academicYear).
		Int("departments", len(lines)).
		Int("classes", sum.classes).
		Msg("Institution report computed")

	return &InstitutionReport{
		AcademicYear: academicYear,
		Semester:     scope.semester,
		Coefficients: cfg.used(nil),
		Departments:  lines,
		Summary:      sum.summary(),
	}, nil
}

// ─── Internal helpers ─────────────────────────────────────────────────

type teacherLoad struct {
	coefficient TeacherCoefficient
	classes     []ClassPayroll
	totals      totals
}

// priceTeacher prices a teacher's assignments within the given semesters.
// A teacher without assignments never fails on a missing coefficient, so
// zero-load teachers stay in reports under either policy.
func (e *Engine) priceTeacher(ctx context.Context, cfg *YearConfig, teacher Teacher, semesters []uuid.UUID) (teacherLoad, error) {
	var load teacherLoad

	assignments, err := e.store.ListAssignments(ctx, teacher.ID, semesters)
	if err != nil {
		return load, fmt.Errorf("list assignments: %w", err)
	}

	coef, err := cfg.TeacherCoefficient(ctx, teacher.DegreeID)
	if err != nil {
		if len(assignments) > 0 || !errors.Is(err, ErrConfigurationMissing) {
			return load, err
		}
		coef = Defaulted()
	}
	load.coefficient = coef

	rates := cfg.Rates(coef)
	load.classes = make([]ClassPayroll, 0, len(assignments))
	for _, a := range assignments {
		p := ComputeClassPayroll(a, rates)
		load.classes = append(load.classes, p)
		load.totals.addClass(p)
	}
	return load, nil
}

type reportScope struct {
	semesterIDs []uuid.UUID
	semester    *SemesterInfo
}

// scope resolves the semester filter: one semester of the year, or all of them.
func (e *Engine) scope(ctx context.Context, academicYear string, semesterID *uuid.UUID) (reportScope, error) {
	if semesterID != nil {
		s, err := e.semester(ctx, *semesterID, academicYear)
		if err != nil {
			return reportScope{}, err
		}
		info := semesterInfo(*s)
		return reportScope{semesterIDs: []uuid.UUID{s.ID}, semester: &info}, nil
	}

	semesters, err := e.semestersOf(ctx, academicYear)
	if err != nil {
		return reportScope{}, err
	}
	return reportScope{semesterIDs: semesterIDs(semesters)}, nil
}

func (e *Engine) teacher(ctx context.Context, id uuid.UUID) (*Teacher, error) {
	t, err := e.store.FindTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	if t == nil {
		return nil, notFound("teacher %s", id)
	}
	return t, nil
}

// semester loads a semester and, when academicYear is set, checks it
// belongs to that year.
func (e *Engine) semester(ctx context.Context, id uuid.UUID, academicYear string) (*Semester, error) {
	s, err := e.store.FindSemester(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find semester: %w", err)
	}
	if s == nil {
		return nil, notFound("semester %s", id)
	}
	if academicYear != "" && s.AcademicYear != academicYear {
		return nil, fmt.Errorf("semester %s is in %s, not %s: %w", id, s.AcademicYear, academicYear, ErrSemesterYearMismatch)
	}
	return s, nil
}

func (e *Engine) semestersOf(ctx context.Context, academicYear string) ([]Semester, error) {
	semesters, err := e.store.ListSemestersByYear(ctx, academicYear)
	if err != nil {
		return nil, fmt.Errorf("list semesters: %w", err)
	}
	if len(semesters) == 0 {
		return nil, notFound("no semesters in academic year %s", academicYear)
	}
	return semesters, nil
}

// forEach runs fn for 0..n-1 with bounded parallelism. Callers write results
// by index so output order never depends on completion order.
func (e *Engine) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

func semesterIDs(semesters []Semester) []uuid.UUID {
	ids := make([]uuid.UUID, len(semesters))
	for i, s := range semesters {
		ids[i] = s.ID
	}
	return ids
}

func classLines(classes []ClassPayroll, convertedPlaces int32) []ClassLine {
	lines := make([]ClassLine, len(classes))
	for i, p := range classes {
		lines[i] = classLine(p, convertedPlaces)
	}
	return lines
}
