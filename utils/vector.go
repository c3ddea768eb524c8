package utils

import (
	"math"
)

// =============================================================================
// Vector Math Utilities
// =============================================================================

// Dot computes the dot product of two equal-length vectors
func Dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm computes the Euclidean norm of a vector
func Norm(a []float64) float64 {
	sum := 0.0
	for _, v := range a {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 when either vector has zero norm, never NaN.
func CosineSimilarity(a, b []float64) float64 {
	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return Dot(a, b) / (normA * normB)
}

// CosineAgainstRows computes the cosine similarity of one vector against
// every row of a matrix. Used for target-user similarity at request time,
// where only one row of the full pairwise matrix is needed.
func CosineAgainstRows(vec []float64, rows [][]float64) []float64 {
	sims := make([]float64, len(rows))
	for i, row := range rows {
		sims[i] = CosineSimilarity(vec, row)
	}
	return sims
}

// PairwiseCosine computes the full pairwise cosine similarity matrix over
// the rows of a matrix. The result is symmetric with diagonal 1.0 for
// nonzero rows and 0.0 for zero rows.
func PairwiseCosine(rows [][]float64) [][]float64 {
	n := len(rows)
	norms := make([]float64, n)
	for i, row := range rows {
		norms[i] = Norm(row)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if norms[i] > 0 {
			sim[i][i] = 1.0
		}
		for j := i + 1; j < n; j++ {
			var s float64
			if norms[i] > 0 && norms[j] > 0 {
				s = Dot(rows[i], rows[j]) / (norms[i] * norms[j])
			}
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}
