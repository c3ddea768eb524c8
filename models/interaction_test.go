package models

import (
	"math"
	"testing"
)

func TestGetInteractionWeight(t *testing.T) {
	four := 4
	five := 5

	tests := []struct {
		name            string
		interactionType string
		rating          *int
		expected        float64
	}{
		{"Viewed", InteractionViewed, nil, 0.5},
		{"Completed", InteractionCompleted, nil, 2.0},
		{"Rated without rating value", InteractionRated, nil, 1.0},
		{"Rated 4 of 5", InteractionRated, &four, 1.8},
		{"Rated 5 of 5", InteractionRated, &five, 2.0},
		{"Unknown type contributes nothing", "bookmarked", nil, 0},
		{"Unknown type ignores a stray rating", "bookmarked", &five, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetInteractionWeight(tt.interactionType, tt.rating)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("weight = %v, expected %v", got, tt.expected)
			}
		})
	}
}
