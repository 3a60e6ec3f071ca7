package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/response"
)

// CourseClassService opens course classes and tracks their enrolment.
type CourseClassService struct {
	classRepo    *repository.CourseClassRepository
	semesterRepo *repository.SemesterRepository
	log          zerolog.Logger
}

// NewCourseClassService creates a new CourseClassService.
func NewCourseClassService(classRepo *repository.CourseClassRepository, semesterRepo *repository.SemesterRepository, log zerolog.Logger) *CourseClassService {
	return &CourseClassService{
		classRepo:    classRepo,
		semesterRepo: semesterRepo,
		log:          log.With().Str("component", "course_class_service").Logger(),
	}
}

func (s *CourseClassService) List(ctx context.Context, f model.CourseClassFilter, page Page) ([]model.CourseClass, *response.Pagination, error) {
	page = page.normalize()
	limit, offset := page.limitOffset()

	classes, total, err := s.classRepo.ListPaginated(ctx, f, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return classes, page.pagination(total), nil
}

func (s *CourseClassService) Get(ctx context.Context, id uuid.UUID) (*model.CourseClass, error) {
	c, err := s.classRepo.GetByID(ctx, id)
	return c, readErr(err)
}

// Create opens NumberOfClasses new sections numbered after the existing ones.
func (s *CourseClassService) Create(ctx context.Context, req model.CreateCourseClassesRequest) ([]model.CourseClass, error) {
	if _, err := s.semesterRepo.GetByID(ctx, req.SemesterID); err != nil {
		return nil, readErr(err)
	}

	classes, err := s.classRepo.CreateBatch(ctx, req.SubjectID, req.SemesterID, req.NumberOfClasses)
	if err != nil {
		return nil, writeErr(err)
	}

	s.log.Info().
		Str("subject_id", req.SubjectID.String()).
		Str("semester_id", req.SemesterID.String()).
		Int("count", len(classes)).
		Msg("course classes opened")
	return classes, nil
}

// UpdateStudentCount records a section's enrolment.
func (s *CourseClassService) UpdateStudentCount(ctx context.Context, id uuid.UUID, req model.UpdateCourseClassRequest) (*model.CourseClass, error) {
	if err := s.classRepo.UpdateStudentCount(ctx, id, *req.StudentCount); err != nil {
		return nil, writeErr(err)
	}
	return s.Get(ctx, id)
}

func (s *CourseClassService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.classRepo.Delete(ctx, id))
}
