package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "course created", "course_id": course.ID})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	resp, err := h.courseService.List(c.Request.Context(),
		h.parseIntQuery(c, "page", 1),
		h.parseIntQuery(c, "size", 10))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.courseService.Update(c.Request.Context(), id, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course updated", "course_id": id})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted", "course_id": id})
}
