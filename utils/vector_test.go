package utils

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{
			name:     "Self similarity is 1",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "Identical vectors of different users",
			a:        []float64{0.5, 0, 2.0},
			b:        []float64{0.5, 0, 2.0},
			expected: 1.0,
		},
		{
			name:     "Orthogonal vectors",
			a:        []float64{1, 0},
			b:        []float64{0, 1},
			expected: 0.0,
		},
		{
			name:     "Zero vector against nonzero is 0, not NaN",
			a:        []float64{0, 0, 0},
			b:        []float64{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "Both zero vectors",
			a:        []float64{0, 0},
			b:        []float64{0, 0},
			expected: 0.0,
		},
		{
			name:     "Scaled vectors still similarity 1",
			a:        []float64{1, 1},
			b:        []float64{5, 5},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CosineSimilarity(tt.a, tt.b)
			if math.IsNaN(result) {
				t.Fatalf("CosineSimilarity() returned NaN")
			}
			if math.Abs(result-tt.expected) > epsilon {
				t.Errorf("CosineSimilarity() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestPairwiseCosine(t *testing.T) {
	rows := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{0, 0, 0},
	}

	sim := PairwiseCosine(rows)

	if len(sim) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(sim))
	}

	// Diagonal: 1.0 for nonzero rows, 0.0 for the zero row
	for i := 0; i < 3; i++ {
		if math.Abs(sim[i][i]-1.0) > epsilon {
			t.Errorf("diagonal[%d] = %v, expected 1.0", i, sim[i][i])
		}
	}
	if sim[3][3] != 0 {
		t.Errorf("diagonal of zero row = %v, expected 0", sim[3][3])
	}

	// Symmetry
	for i := range sim {
		for j := range sim {
			if math.Abs(sim[i][j]-sim[j][i]) > epsilon {
				t.Errorf("matrix not symmetric at (%d,%d): %v vs %v", i, j, sim[i][j], sim[j][i])
			}
		}
	}

	// Known value: cos([1,0,0],[1,1,0]) = 1/sqrt(2)
	expected := 1.0 / math.Sqrt(2)
	if math.Abs(sim[0][2]-expected) > epsilon {
		t.Errorf("sim[0][2] = %v, expected %v", sim[0][2], expected)
	}

	// Zero row produces zeros everywhere
	for j := 0; j < 4; j++ {
		if sim[3][j] != 0 {
			t.Errorf("zero row similarity at col %d = %v, expected 0", j, sim[3][j])
		}
	}
}

func TestPairwiseCosine_SingleRow(t *testing.T) {
	sim := PairwiseCosine([][]float64{{0.2, 1.5, 3.0}})
	if len(sim) != 1 || len(sim[0]) != 1 {
		t.Fatalf("expected 1x1 matrix, got %dx%d", len(sim), len(sim[0]))
	}
	if math.Abs(sim[0][0]-1.0) > epsilon {
		t.Errorf("single-row self similarity = %v, expected 1.0", sim[0][0])
	}
}

func TestCosineAgainstRows(t *testing.T) {
	rows := [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	}
	sims := CosineAgainstRows([]float64{1, 0}, rows)

	if len(sims) != 3 {
		t.Fatalf("expected 3 similarities, got %d", len(sims))
	}
	if math.Abs(sims[0]-1.0) > epsilon {
		t.Errorf("sims[0] = %v, expected 1.0", sims[0])
	}
	if math.Abs(sims[1]) > epsilon {
		t.Errorf("sims[1] = %v, expected 0", sims[1])
	}
	if math.Abs(sims[2]-1.0/math.Sqrt(2)) > epsilon {
		t.Errorf("sims[2] = %v, expected %v", sims[2], 1.0/math.Sqrt(2))
	}
}
