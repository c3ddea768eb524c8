package models

import (
	"time"
)

// Enrollment represents a user enrolled in a course.
// Enrollments are the exclusion signal for recommendations: an enrolled
// course is never recommended back to the same user.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_enrollment_user;uniqueIndex:idx_enrollment_pair" json:"user_id"`
	CourseID   uint      `gorm:"uniqueIndex:idx_enrollment_pair" json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// CourseInteraction represents a user interaction with a course
type CourseInteraction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_interaction_user" json:"user_id"`
	CourseID  uint      `gorm:"index:idx_interaction_course" json:"course_id"`
	Type      string    `gorm:"index:idx_interaction_type" json:"type"` // "viewed", "rated", "completed"
	Rating    *int      `json:"rating,omitempty"`                       // 1 to 5, only on "rated"
	Timestamp time.Time `gorm:"index:idx_interaction_ts" json:"timestamp"`
}

// LearningProgress tracks how far a user has progressed through a course
type LearningProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index:idx_progress_user;uniqueIndex:idx_progress_pair" json:"user_id"`
	CourseID     uint      `gorm:"uniqueIndex:idx_progress_pair" json:"course_id"`
	Progress     float64   `json:"progress"` // 0 to 100
	LastAccessed time.Time `json:"last_accessed"`
}

// Interaction type constants
const (
	InteractionViewed    = "viewed"
	InteractionRated     = "rated"
	InteractionCompleted = "completed"
)

// Interaction score weights. An enrollment counts 1.0 flat and progress
// contributes percent/100; both are folded in during extraction.
const (
	WeightEnrollment = 1.0
	WeightViewed     = 0.5
	WeightRated      = 1.0
	WeightCompleted  = 2.0
)

// GetInteractionWeight returns the score contribution of a single interaction
// event. A rating, when present, adds rating/5 on top of the base weight.
// Unknown types contribute nothing; recording validates types, so a non-zero
// weight here would silently reward rows that slipped in another way.
func GetInteractionWeight(interactionType string, rating *int) float64 {
	var weight float64
	switch interactionType {
	case InteractionViewed:
		weight = WeightViewed
	case InteractionRated:
		weight = WeightRated
	case InteractionCompleted:
		weight = WeightCompleted
	default:
		return 0
	}

	if rating != nil {
		weight += float64(*rating) / 5.0
	}
	return weight
}
