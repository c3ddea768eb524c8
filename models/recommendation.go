package models

// RecommendRequest represents an incoming recommendation query
type RecommendRequest struct {
	UserID  uint   `json:"user_id" form:"user_id" binding:"required"`
	TopN    int    `json:"top_n" form:"top_n"`
	Subject string `json:"subject" form:"subject"`
	Level   string `json:"level" form:"level"`
}

// RecommendResponse represents the recommendation API response.
// Message is non-empty whenever the fallback selector answered the request.
type RecommendResponse struct {
	CourseIDs []uint            `json:"course_ids"`
	Courses   []CourseResponse  `json:"courses"`
	Message   string            `json:"message,omitempty"`
	Metadata  *ResponseMetadata `json:"metadata"`
}

// EnrollmentRequest records a new enrollment
type EnrollmentRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"course_id" binding:"required"`
}

// InteractionRequest records a course interaction event
type InteractionRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	CourseID uint   `json:"course_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Rating   *int   `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
}

// ProgressRequest upserts learning progress for a (user, course) pair
type ProgressRequest struct {
	UserID   uint    `json:"user_id" binding:"required"`
	CourseID uint    `json:"course_id" binding:"required"`
	Progress float64 `json:"progress" binding:"min=0,max=100"`
}

// CourseListRequest filters the course catalog listing
type CourseListRequest struct {
	Subject string `form:"subject"`
	Level   string `form:"level"`
	Search  string `form:"search"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ResponseMetadata contains count and filter information for API responses
type ResponseMetadata struct {
	Count   int               `json:"count"`             // Number of courses returned
	TopN    int               `json:"top_n"`             // Requested list size after clamping
	Filters map[string]string `json:"filters,omitempty"` // Applied filters (subject, level)
}

// NewResponseMetadata creates a new ResponseMetadata
func NewResponseMetadata(count, topN int, filters map[string]string) *ResponseMetadata {
	return &ResponseMetadata{
		Count:   count,
		TopN:    topN,
		Filters: filters,
	}
}
