package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"elearn-backend/models"
	"elearn-backend/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
	courseService         *services.CourseService
	llmService            *services.LLMService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	recommendationService *services.RecommendationService,
	courseService *services.CourseService,
	llmService *services.LLMService,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		courseService:         courseService,
		llmService:            llmService,
	}
}

// GetRecommendations returns ranked course recommendations for a user
// GET /api/v1/recommendations?user_id=42&top_n=3&subject=Math&level=Beginner
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "user_id is required")
		return
	}

	topN := h.recommendationService.ClampTopN(req.TopN)
	courseIDs, message, err := h.recommendationService.Recommend(
		req.UserID,
		topN,
		req.Subject,
		req.Level,
	)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	courses, err := h.courseService.GetCoursesByIDs(courseIDs)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	responses := coursesToResponses(courses)
	if h.llmService.Enabled() {
		h.llmService.GenerateBlurbsBatch(courses, responses)
	}

	filters := map[string]string{}
	if req.Subject != "" {
		filters["subject"] = req.Subject
	}
	if req.Level != "" {
		filters["level"] = req.Level
	}

	c.JSON(http.StatusOK, models.RecommendResponse{
		CourseIDs: courseIDs,
		Courses:   responses,
		Message:   message,
		Metadata:  models.NewResponseMetadata(len(courseIDs), topN, filters),
	})
}

// RebuildSnapshot triggers a re-extraction of the recommendation matrices
// POST /api/v1/recommendations/rebuild
func (h *RecommendationHandler) RebuildSnapshot(c *gin.Context) {
	rebuilt, err := h.recommendationService.RebuildSnapshot()
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	if !rebuilt {
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "success",
			"message": "Snapshot rebuild already in progress",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Snapshot rebuilt",
	})
}

// GetStats returns snapshot dimensions and event counts
// GET /api/v1/recommendations/stats
func (h *RecommendationHandler) GetStats(c *gin.Context) {
	stats, err := h.recommendationService.GetStats()
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecordEnrollment enrolls a user in a course
// POST /api/v1/enrollments
// Body: {"user_id": 42, "course_id": 7}
func (h *RecommendationHandler) RecordEnrollment(c *gin.Context) {
	var req models.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.recommendationService.RecordEnrollment(req.UserID, req.CourseID); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("User %d enrolled in course %d", req.UserID, req.CourseID),
	})
}

// RecordInteraction records a viewed/rated/completed event
// POST /api/v1/interactions
// Body: {"user_id": 42, "course_id": 7, "type": "rated", "rating": 5}
func (h *RecommendationHandler) RecordInteraction(c *gin.Context) {
	var req models.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	interactionType := strings.ToLower(req.Type)
	if err := h.recommendationService.RecordInteraction(req.UserID, req.CourseID, interactionType, req.Rating); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Interaction recorded",
	})
}

// RecordProgress upserts learning progress
// POST /api/v1/progress
// Body: {"user_id": 42, "course_id": 7, "progress": 75}
func (h *RecommendationHandler) RecordProgress(c *gin.Context) {
	var req models.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.recommendationService.RecordProgress(req.UserID, req.CourseID, req.Progress); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Progress recorded",
	})
}
