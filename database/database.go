package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"elearn-backend/config"
	"elearn-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection
func InitDB(cfg *config.Config) error {
	var err error

	// Configure GORM logger
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate schemas
	err = DB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.CourseInteraction{},
		&models.LearningProgress{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database initialized successfully")
	return nil
}

// LoadCourseData loads the course catalog from a JSON file into the database
func LoadCourseData(filePath string) error {
	// Check if data already exists
	var count int64
	DB.Model(&models.Course{}).Count(&count)
	if count > 0 {
		log.Printf("Database already contains %d courses, skipping data load", count)
		return nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.Printf("Course data file %s not found, starting with an empty catalog", filePath)
		return nil
	}

	log.Println("Loading course data from file:", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	log.Printf("Parsed %d courses from file", len(courses))

	// Insert courses in batches
	batchSize := 100
	successCount := 0
	errorCount := 0

	for i := 0; i < len(courses); i += batchSize {
		end := i + batchSize
		if end > len(courses) {
			end = len(courses)
		}

		batch := courses[i:end]
		if err := DB.Create(&batch).Error; err != nil {
			log.Printf("Failed to insert batch: %v", err)
			errorCount += len(batch)
		} else {
			successCount += len(batch)
		}
	}

	log.Printf("Data load complete: %d successful, %d errors", successCount, errorCount)
	return nil
}

// SeedSampleData generates deterministic sample users and interaction
// history so the recommender has something to chew on locally
func SeedSampleData() error {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Printf("Database already contains %d users, skipping sample seed", count)
		return nil
	}

	var courses []models.Course
	DB.Order("id asc").Limit(50).Find(&courses)
	if len(courses) == 0 {
		return fmt.Errorf("no courses found to seed interactions for")
	}

	log.Println("Seeding sample users and interaction history...")

	userCount := 20
	users := make([]models.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		users = append(users, models.User{
			Email: fmt.Sprintf("student%d@example.com", i),
			Role:  models.RoleStudent,
		})
	}
	if err := DB.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	now := time.Now()
	enrollments := []models.Enrollment{}
	interactions := []models.CourseInteraction{}
	progress := []models.LearningProgress{}

	for i, user := range users {
		// Each user touches a different overlapping slice of the catalog so
		// that user vectors are neither identical nor disjoint
		for j := 0; j < 4; j++ {
			course := courses[(i+j*3)%len(courses)]

			enrollments = append(enrollments, models.Enrollment{
				UserID:     user.ID,
				CourseID:   course.ID,
				EnrolledAt: now.Add(-time.Duration(24*(j+1)) * time.Hour),
			})

			interactionType := models.InteractionViewed
			var rating *int
			if j%2 == 0 {
				interactionType = models.InteractionRated
				r := 3 + (i+j)%3 // ratings 3..5
				rating = &r
			}
			if j == 3 {
				interactionType = models.InteractionCompleted
				rating = nil
			}

			interactions = append(interactions, models.CourseInteraction{
				UserID:    user.ID,
				CourseID:  course.ID,
				Type:      interactionType,
				Rating:    rating,
				Timestamp: now.Add(-time.Duration(12*(j+1)) * time.Hour),
			})

			progress = append(progress, models.LearningProgress{
				UserID:       user.ID,
				CourseID:     course.ID,
				Progress:     float64((25 * (j + 1)) % 101),
				LastAccessed: now.Add(-time.Duration(6*(j+1)) * time.Hour),
			})
		}
	}

	if err := DB.Create(&enrollments).Error; err != nil {
		return fmt.Errorf("failed to seed enrollments: %w", err)
	}
	if err := DB.Create(&interactions).Error; err != nil {
		return fmt.Errorf("failed to seed interactions: %w", err)
	}
	if err := DB.Create(&progress).Error; err != nil {
		return fmt.Errorf("failed to seed progress: %w", err)
	}

	log.Printf("Seeded %d users, %d enrollments, %d interactions, %d progress rows",
		len(users), len(enrollments), len(interactions), len(progress))
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
