package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	// Server Configuration
	ServerPort string

	// Database Configuration
	DatabasePath string

	// Seed Data Configuration
	CourseDataPath string
	SeedSampleData bool

	// LLM Configuration (optional recommendation blurbs)
	LLMProvider string // "none", "openai" or "groq"
	OpenAIKey   string
	GroqKey     string
	LLMBaseURL  string
	BlurbModel  string

	// Recommendation Configuration
	DefaultTopN        int
	MaxRecommendations int
	MaxCatalogCourses  int
	TFIDFMaxFeatures   int
	FallbackLevel      string

	// Snapshot Configuration
	SnapshotPath   string // empty disables persistence
	RebuildOnStart bool
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DB_PATH", "elearn.db"),
		CourseDataPath:     getEnv("COURSE_DATA_PATH", "course_data.json"),
		SeedSampleData:     getEnvBool("SEED_SAMPLE_DATA", false),
		LLMProvider:        getEnv("LLM_PROVIDER", "none"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		GroqKey:            os.Getenv("GROQ_API_KEY"),
		LLMBaseURL:         getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		BlurbModel:         getEnv("BLURB_MODEL", "llama-3.1-8b-instant"),
		DefaultTopN:        getEnvInt("DEFAULT_TOP_N", 3),
		MaxRecommendations: getEnvInt("MAX_RECOMMENDATIONS", 20),
		MaxCatalogCourses:  getEnvInt("MAX_CATALOG_COURSES", 5000),
		TFIDFMaxFeatures:   getEnvInt("TFIDF_MAX_FEATURES", 1000),
		FallbackLevel:      getEnv("FALLBACK_LEVEL", "Beginner"),
		SnapshotPath:       getEnv("SNAPSHOT_PATH", ""),
		RebuildOnStart:     getEnvBool("REBUILD_ON_START", true),
	}

	// Validate required configuration
	if AppConfig.LLMProvider == "openai" && AppConfig.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required when LLM_PROVIDER is 'openai'")
	}
	if AppConfig.LLMProvider == "groq" && AppConfig.GroqKey == "" {
		log.Fatal("GROQ_API_KEY is required when LLM_PROVIDER is 'groq'")
	}
	if AppConfig.DefaultTopN < 1 {
		log.Fatal("DEFAULT_TOP_N must be >= 1")
	}

	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
