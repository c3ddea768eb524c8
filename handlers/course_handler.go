package handlers

import (
	"net/http"
	"strconv"

	"elearn-backend/models"
	"elearn-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseHandler struct {
	courseService *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// ListCourses lists catalog courses with optional filters
// GET /api/v1/courses?subject=Math&level=Beginner&search=algebra
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req models.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	courses, err := h.courseService.ListCourses(req.Subject, req.Level, req.Search)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses": coursesToResponses(courses),
		"count":   len(courses),
	})
}

// GetCourse fetches a single course by id
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid course id")
		return
	}

	course, err := h.courseService.GetCourse(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondNotFound(c, "course not found")
			return
		}
		respondInternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, course.ToResponse())
}
