package main

import (
	"log"

	"elearn-backend/config"
	"elearn-backend/database"
	"elearn-backend/handlers"
	"elearn-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.LoadCourseData(cfg.CourseDataPath); err != nil {
		log.Fatalf("Failed to load course data: %v", err)
	}

	if cfg.SeedSampleData {
		if err := database.SeedSampleData(); err != nil {
			log.Printf("Sample data seeding failed: %v", err)
		}
	}

	// Services
	llmService := services.NewLLMService(cfg)
	courseService := services.NewCourseService(cfg)
	snapshotService := services.NewSnapshotService(cfg)
	recommendationService := services.NewRecommendationService(cfg, snapshotService)

	if cfg.RebuildOnStart {
		if _, err := recommendationService.RebuildSnapshot(); err != nil {
			log.Printf("Initial snapshot build failed, will retry on first request: %v", err)
		}
	}

	// Handlers
	courseHandler := handlers.NewCourseHandler(courseService)
	recommendationHandler := handlers.NewRecommendationHandler(
		recommendationService, courseService, llmService)

	r := gin.Default()
	v1 := r.Group("/api/v1")
	{
		v1.GET("/courses", courseHandler.ListCourses)
		v1.GET("/courses/:id", courseHandler.GetCourse)

		v1.GET("/recommendations", recommendationHandler.GetRecommendations)
		v1.POST("/recommendations/rebuild", recommendationHandler.RebuildSnapshot)
		v1.GET("/recommendations/stats", recommendationHandler.GetStats)

		v1.POST("/enrollments", recommendationHandler.RecordEnrollment)
		v1.POST("/interactions", recommendationHandler.RecordInteraction)
		v1.POST("/progress", recommendationHandler.RecordProgress)
	}

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
