package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"elearn-backend/config"
	"elearn-backend/models"
	"elearn-backend/prompts"

	openai "github.com/sashabaranov/go-openai"
)

// LLMService generates short course blurbs for recommendation responses.
// Optional: with provider "none" every call is a cheap no-op.
type LLMService struct {
	client     *openai.Client
	cfg        *config.Config
	blurbCache sync.Map // course id -> generated blurb
}

// NewLLMService creates a new LLM service instance
func NewLLMService(cfg *config.Config) *LLMService {
	var client *openai.Client

	switch cfg.LLMProvider {
	case "openai":
		clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
		client = openai.NewClientWithConfig(clientConfig)
	case "groq":
		clientConfig := openai.DefaultConfig(cfg.GroqKey)
		clientConfig.BaseURL = cfg.LLMBaseURL
		client = openai.NewClientWithConfig(clientConfig)
	case "none":
		client = nil
	default:
		log.Fatalf("Invalid LLM provider: %s", cfg.LLMProvider)
	}

	return &LLMService{
		client: client,
		cfg:    cfg,
	}
}

// Enabled reports whether blurb generation is configured
func (s *LLMService) Enabled() bool {
	return s.client != nil
}

// GenerateBlurb creates a one-sentence blurb for a course
func (s *LLMService) GenerateBlurb(course *models.Course) string {
	if s.client == nil {
		return ""
	}

	// Check cache first
	if cached, ok := s.blurbCache.Load(course.ID); ok {
		return cached.(string)
	}

	text := course.CombinedFeatures()
	if len(strings.TrimSpace(text)) < 10 {
		return ""
	}
	// Truncate very long descriptions to save tokens
	if len(text) > 1000 {
		text = text[:1000]
	}

	ctx := context.Background()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.BlurbModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: "system", Content: prompts.BlurbPrompt},
			{Role: "user", Content: fmt.Sprintf("Title: %s\nSubject: %s\nLevel: %s\nDescription: %s",
				course.Title, course.Subject, course.Level, course.Description)},
		},
		Temperature: 0.3,
		MaxTokens:   80,
	})
	if err != nil {
		log.Printf("LLM blurb error for course %d: %v", course.ID, err)
		return ""
	}

	blurb := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.blurbCache.Store(course.ID, blurb)
	return blurb
}

// GenerateBlurbsBatch fills in blurbs for multiple responses concurrently
func (s *LLMService) GenerateBlurbsBatch(courses []models.Course, responses []models.CourseResponse) {
	if s.client == nil {
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // Limit concurrent LLM calls

	for i := range courses {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			responses[idx].Blurb = s.GenerateBlurb(&courses[idx])
		}(i)
	}

	wg.Wait()
}
