package utils

import (
	"sort"
)

// =============================================================================
// Hybrid Score Ranking
// =============================================================================

// Hybrid score combination weights
const (
	WeightCollaborative = 0.6 // Weight for the collaborative-filtering signal
	WeightContent       = 0.4 // Weight for the content-based signal
)

// ExcludedScore marks courses removed from consideration (enrolled or
// failing an explicit filter); only scores > 0 can be recommended.
const ExcludedScore = -1.0

// NormalizeByMax divides every score by the maximum score in place.
// Leaves the slice untouched when the maximum is not positive.
func NormalizeByMax(scores []float64) {
	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max <= 0 {
		return
	}
	for i := range scores {
		scores[i] /= max
	}
}

// CombineHybrid merges collaborative and content score slices into the
// final hybrid score per course.
func CombineHybrid(collab, content []float64) []float64 {
	hybrid := make([]float64, len(collab))
	for i := range hybrid {
		hybrid[i] = WeightCollaborative*collab[i] + WeightContent*content[i]
	}
	return hybrid
}

// ScoredCourse pairs a course id with its score
type ScoredCourse struct {
	CourseID uint
	Score    float64
}

// TopPositive returns up to topN course ids whose score is strictly
// positive, ordered by score descending with ties broken by lower course id
// so results are deterministic.
func TopPositive(courseIDs []uint, scores []float64, topN int) []uint {
	candidates := make([]ScoredCourse, 0, len(courseIDs))
	for i, id := range courseIDs {
		if scores[i] > 0 {
			candidates = append(candidates, ScoredCourse{CourseID: id, Score: scores[i]})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].CourseID < candidates[j].CourseID
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	ids := make([]uint, len(candidates))
	for i, c := range candidates {
		ids[i] = c.CourseID
	}
	return ids
}

// RankedUser pairs a user id with its similarity to the target user
type RankedUser struct {
	UserID     uint
	Similarity float64
}

// SimilarUsers returns users with similarity > 0 ordered by similarity
// descending, ties broken by lower user id. The target user is skipped.
func SimilarUsers(userIDs []uint, sims []float64, targetIdx int) []RankedUser {
	ranked := make([]RankedUser, 0, len(userIDs))
	for i, id := range userIDs {
		if i == targetIdx || sims[i] <= 0 {
			continue
		}
		ranked = append(ranked, RankedUser{UserID: id, Similarity: sims[i]})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	return ranked
}

// EncodeCategories assigns each distinct value an integer code by
// lexicographic order. Used to encode subject and level as numeric features.
func EncodeCategories(values []string) map[string]int {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}

	sorted := make([]string, 0, len(distinct))
	for v := range distinct {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)

	codes := make(map[string]int, len(sorted))
	for i, v := range sorted {
		codes[v] = i
	}
	return codes
}
