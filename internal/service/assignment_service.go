package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/response"
)

// AssignmentService links teachers to the course classes they teach. A
// course class has at most one teacher.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	classRepo      *repository.CourseClassRepository
	teacherRepo    *repository.TeacherRepository
	log            zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	classRepo *repository.CourseClassRepository,
	teacherRepo *repository.TeacherRepository,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		classRepo:      classRepo,
		teacherRepo:    teacherRepo,
		log:            log.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *AssignmentService) List(ctx context.Context, f model.AssignmentFilter, page Page) ([]model.Assignment, *response.Pagination, error) {
	page = page.normalize()
	limit, offset := page.limitOffset()

	assignments, total, err := s.assignmentRepo.ListPaginated(ctx, f, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return assignments, page.pagination(total), nil
}

func (s *AssignmentService) Get(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	return a, readErr(err)
}

// Create assigns a course class to a teacher. It fails with
// ErrClassAlreadyAssigned when the class already has one.
func (s *AssignmentService) Create(ctx context.Context, req model.CreateAssignmentRequest) (*model.Assignment, error) {
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return nil, readErr(err)
	}
	class, err := s.classRepo.GetByID(ctx, req.CourseClassID)
	if err != nil {
		return nil, readErr(err)
	}
	if class.TeacherID != nil {
		return nil, ErrClassAlreadyAssigned
	}

	id, err := s.assignmentRepo.Create(ctx, req.TeacherID, req.CourseClassID, req.Notes)
	if err != nil {
		// Lost a race with another assignment of the same class.
		if pgCode(err) == pgUniqueViolation {
			return nil, ErrClassAlreadyAssigned
		}
		return nil, writeErr(err)
	}

	s.log.Info().Str("teacher_id", req.TeacherID.String()).Str("course_class_id", req.CourseClassID.String()).Msg("class assigned")
	return s.Get(ctx, id)
}

// CreateBulk assigns several course classes to one teacher, skipping those
// that do not exist or already have a teacher.
func (s *AssignmentService) CreateBulk(ctx context.Context, req model.BulkAssignmentRequest) (*model.BulkAssignmentResult, error) {
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return nil, readErr(err)
	}

	ids, skipped, err := s.assignmentRepo.CreateBulk(ctx, req.TeacherID, req.CourseClassIDs, req.Notes)
	if err != nil {
		return nil, writeErr(err)
	}

	result := &model.BulkAssignmentResult{Assigned: []model.Assignment{}, Skipped: skipped}
	if len(ids) > 0 {
		if result.Assigned, err = s.assignmentRepo.ListByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Str("teacher_id", req.TeacherID.String()).
		Int("assigned", len(ids)).
		Int("skipped", len(skipped)).
		Msg("bulk assignment")
	return result, nil
}

// Update moves an assignment to another teacher.
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAssignmentRequest) (*model.Assignment, error) {
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return nil, readErr(err)
	}
	if err := s.assignmentRepo.Update(ctx, id, req.TeacherID, req.Notes); err != nil {
		return nil, writeErr(err)
	}
	return s.Get(ctx, id)
}

func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.assignmentRepo.Delete(ctx, id))
}

// Workload totals a teacher's assigned classes, optionally within one semester.
func (s *AssignmentService) Workload(ctx context.Context, teacherID uuid.UUID, semesterID *uuid.UUID) (*model.Workload, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, readErr(err)
	}

	lines, err := s.assignmentRepo.Workload(ctx, teacherID, semesterID)
	if err != nil {
		return nil, err
	}
	return summarizeWorkload(teacherID, lines), nil
}

func summarizeWorkload(teacherID uuid.UUID, lines []model.WorkloadLine) *model.Workload {
	w := &model.Workload{TeacherID: teacherID, TotalClasses: len(lines), Assignments: lines}
	for _, l := range lines {
		w.TotalStudents += l.StudentCount
		w.TotalCredits += l.Credits
		w.TotalPeriods += l.Periods
	}
	return w
}
