package handlers

import (
	"net/http"

	"elearn-backend/models"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Response Helpers
// =============================================================================

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, code int, error, message string) {
	c.JSON(code, models.ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	})
}

// respondBadRequest sends a 400 error response
func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, "Invalid request", message)
}

// respondInternalError sends a 500 error response
func respondInternalError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, "Internal error", message)
}

// respondNotFound sends a 404 error response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, "Not found", message)
}

// =============================================================================
// Course Conversion Helpers
// =============================================================================

// coursesToResponses converts a slice of Courses to CourseResponses
func coursesToResponses(courses []models.Course) []models.CourseResponse {
	responses := make([]models.CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = course.ToResponse()
	}
	return responses
}
