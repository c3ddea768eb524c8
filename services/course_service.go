package services

import (
	"fmt"
	"strings"

	"elearn-backend/config"
	"elearn-backend/database"
	"elearn-backend/models"

	"gorm.io/gorm"
)

// CourseService serves the thin catalog surface the recommender's output
// is rendered with
type CourseService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewCourseService creates a new course service instance
func NewCourseService(cfg *config.Config) *CourseService {
	return &CourseService{
		db:  database.GetDB(),
		cfg: cfg,
	}
}

// ListCourses returns catalog courses matching the optional filters,
// ordered by id
func (s *CourseService) ListCourses(subject, level, search string) ([]models.Course, error) {
	query := s.db.Model(&models.Course{})

	if subject != "" {
		query = s.filterByField(query, "subject", subject)
	}
	if level != "" {
		query = s.filterByField(query, "level", level)
	}
	if search != "" {
		query = s.applyTextSearch(query, search)
	}

	var courses []models.Course
	if err := query.Order("id asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourse fetches a single course by id
func (s *CourseService) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// GetCoursesByIDs fetches courses by id preserving the given order.
// Used to expand a ranked recommendation list into course details.
func (s *CourseService) GetCoursesByIDs(ids []uint) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	var courses []models.Course
	if err := s.db.Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	byID := make(map[uint]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	ordered := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// filterByField adds an exact-match condition on a single column
func (s *CourseService) filterByField(query *gorm.DB, field, value string) *gorm.DB {
	return query.Where(field+" = ?", value)
}

// applyTextSearch adds a case-insensitive search over title and description
func (s *CourseService) applyTextSearch(query *gorm.DB, searchText string) *gorm.DB {
	pattern := "%" + strings.ToLower(searchText) + "%"
	return query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
}
