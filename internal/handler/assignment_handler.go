package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/response"
	"github.com/stemsi/teachpay-backend/internal/service"
	"github.com/stemsi/teachpay-backend/internal/validator"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// List godoc
// GET /api/v1/assignments?teacher_id=&semester_id=&subject_id=&department_id=
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter model.AssignmentFilter
	var ok bool
	if filter.TeacherID, ok = uuidQuery(c, "teacher_id"); !ok {
		return
	}
	if filter.SemesterID, ok = uuidQuery(c, "semester_id"); !ok {
		return
	}
	if filter.SubjectID, ok = uuidQuery(c, "subject_id"); !ok {
		return
	}
	if filter.DepartmentID, ok = uuidQuery(c, "department_id"); !ok {
		return
	}

	assignments, pagination, err := h.assignmentService.List(c.Request.Context(), filter, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"assignments": assignments}, pagination)
}

// Get godoc
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	a, err := h.assignmentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignment": a})
}

// Create godoc
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	a, err := h.assignmentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"assignment": a})
}

// CreateBulk godoc
// POST /api/v1/assignments/bulk
// Classes that are missing or already taken are skipped, not failed.
func (h *AssignmentHandler) CreateBulk(c *gin.Context) {
	var req model.BulkAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	res, err := h.assignmentService.CreateBulk(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Update godoc
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	a, err := h.assignmentService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignment": a})
}

// Delete godoc
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "assignment deleted successfully"})
}
