package models

import (
	"time"
)

// Course levels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course represents a course in the catalog
// This is the core domain model with GORM tags for database operations
type Course struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index:idx_title" json:"title"`
	Subject         string    `gorm:"index:idx_subject" json:"subject"`
	Level           string    `gorm:"index:idx_level" json:"level"` // "Beginner", "Intermediate", "Advanced"
	DifficultyScore float64   `json:"difficulty_score"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CombinedFeatures builds the text field fed into TF-IDF vectorization.
// Missing fields contribute an empty string, never an error.
func (c *Course) CombinedFeatures() string {
	return c.Title + " " + c.Subject + " " + c.Level + " " + c.Description
}

// CourseResponse represents the API response structure
type CourseResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Subject         string  `json:"subject"`
	Level           string  `json:"level"`
	DifficultyScore float64 `json:"difficulty_score"`
	Description     string  `json:"description"`
	Blurb           string  `json:"blurb,omitempty"`
}

// ToResponse converts a Course to CourseResponse
func (c *Course) ToResponse() CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Subject:         c.Subject,
		Level:           c.Level,
		DifficultyScore: c.DifficultyScore,
		Description:     c.Description,
	}
}
