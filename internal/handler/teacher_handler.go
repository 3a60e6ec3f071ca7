package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

// TeacherHandler manages teaching staff.
type TeacherHandler struct {
	teacherService    *service.TeacherService
	assignmentService *service.AssignmentService
}

func NewTeacherHandler(teacherService *service.TeacherService, assignmentService *service.AssignmentService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService, assignmentService: assignmentService}
}

// List godoc
// GET /api/v1/teachers?department_id=&degree_id=&search=&page=&per_page=
func (h *TeacherHandler) List(c *gin.Context) {
	deptID, ok := uuidQuery(c, "department_id")
	if !ok {
		return
	}
	degreeID, ok := uuidQuery(c, "degree_id")
	if !ok {
		return
	}

	filter := model.TeacherFilter{DepartmentID: deptID, DegreeID: degreeID, Search: c.Query("search")}
	teachers, pagination, err := h.teacherService.List(c.Request.Context(), filter, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if teachers == nil {
		teachers = []model.Teacher{}
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"teachers": teachers}, pagination)
}

// Get godoc
// GET /api/v1/teachers/:id
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := h.teacherService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher": t})
}

// Create godoc
// POST /api/v1/teachers
// Also opens a TEACHER login named after the generated teacher code.
func (h *TeacherHandler) Create(c *gin.Context) {
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	t, err := h.teacherService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"teacher": t})
}

// Update godoc
// PUT /api/v1/teachers/:id
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	t, err := h.teacherService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher": t})
}

// Delete godoc
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "teacher deleted successfully"})
}

// Workload godoc
// GET /api/v1/teachers/:id/workload?semester_id=
// Lists assigned classes with period totals, without pricing them.
func (h *TeacherHandler) Workload(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	semesterID, ok := uuidQuery(c, "semester_id")
	if !ok {
		return
	}

	w, err := h.assignmentService.Workload(c.Request.Context(), id, semesterID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"workload": w})
}
