package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

type CourseClassHandler struct {
	classService *service.CourseClassService
}

func NewCourseClassHandler(classService *service.CourseClassService) *CourseClassHandler {
	return &CourseClassHandler{classService: classService}
}

// List godoc
// GET /api/v1/course-classes?semester_id=&subject_id=&department_id=&unassigned=true
func (h *CourseClassHandler) List(c *gin.Context) {
	var filter model.CourseClassFilter
	var ok bool
	if filter.SemesterID, ok = uuidQuery(c, "semester_id"); !ok {
		return
	}
	if filter.SubjectID, ok = uuidQuery(c, "subject_id"); !ok {
		return
	}
	if filter.DepartmentID, ok = uuidQuery(c, "department_id"); !ok {
		return
	}
	filter.UnassignedOnly = c.Query("unassigned") == "true"

	classes, pagination, err := h.classService.List(c.Request.Context(), filter, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if classes == nil {
		classes = []model.CourseClass{}
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"course_classes": classes}, pagination)
}

// Get godoc
// GET /api/v1/course-classes/:id
func (h *CourseClassHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cc, err := h.classService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course_class": cc})
}

// Create godoc
// POST /api/v1/course-classes
// Opens number_of_classes new sections, numbered after the existing ones.
func (h *CourseClassHandler) Create(c *gin.Context) {
	var req model.CreateCourseClassesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	classes, err := h.classService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course_classes": classes})
}

// UpdateStudentCount godoc
// PUT /api/v1/course-classes/:id
func (h *CourseClassHandler) UpdateStudentCount(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCourseClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	cc, err := h.classService.UpdateStudentCount(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course_class": cc})
}

// Delete godoc
// DELETE /api/v1/course-classes/:id
func (h *CourseClassHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course class deleted successfully"})
}
