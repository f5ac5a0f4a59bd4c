package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(deltas []float64) float64 {
	total := 0.0
	for _, d := range deltas {
		total += d
	}
	return total
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		budget   float64
		expected []float64
	}{
		{
			name:     "proportional split",
			scores:   []float64{1, 3},
			budget:   40,
			expected: []float64{10, 30},
		},
		{
			name:     "single pair takes the whole budget",
			scores:   []float64{0.7},
			budget:   120,
			expected: []float64{120},
		},
		{
			name:     "all-zero scores fall back to equal division",
			scores:   []float64{0, 0},
			budget:   100,
			expected: []float64{50, 50},
		},
		{
			name:     "zero budget collapses every gap",
			scores:   []float64{1, 2, 3},
			budget:   0,
			expected: []float64{0, 0, 0},
		},
		{
			name:     "dominant pair gets nearly everything",
			scores:   []float64{0.001, 0.999},
			budget:   1000,
			expected: []float64{1, 999},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := Allocate(tt.scores, tt.budget)
			require.Len(t, deltas, len(tt.scores))
			for i, want := range tt.expected {
				assert.InDelta(t, want, deltas[i], 1e-9, "delta %d", i)
			}
			assert.InDelta(t, tt.budget, sum(deltas), 1e-6, "deltas must sum to the budget")
		})
	}
}

func TestAllocateEmptyScores(t *testing.T) {
	assert.Nil(t, Allocate(nil, 40))
	assert.Nil(t, Allocate([]float64{}, 40))
}

func TestAllocateSumIsExact(t *testing.T) {
	/**********************************************************************************************
	** Budgets that do not divide evenly are the interesting case: the final delta must absorb
	** whatever the proportional shares left over.
	**********************************************************************************************/
	tests := []struct {
		name   string
		scores []float64
		budget float64
	}{
		{
			name:   "thirds never sum cleanly in binary",
			scores: []float64{1, 1, 1},
			budget: 10,
		},
		{
			name:   "equal division of an odd budget",
			scores: []float64{0, 0, 0, 0, 0, 0, 0},
			budget: 13,
		},
		{
			name:   "many tiny scores",
			scores: []float64{0.1, 0.2, 0.3, 0.1, 0.1, 0.05, 0.15},
			budget: 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := Allocate(tt.scores, tt.budget)
			assert.InDelta(t, tt.budget, sum(deltas), 1e-6)
		})
	}
}

func TestAllocateChecked(t *testing.T) {
	deltas, err := AllocateChecked([]float64{1, 3}, 40, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30}, deltas)

	deltas, err = AllocateChecked([]float64{0, 1}, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 90}, deltas, "the floor is applied through the checked path")

	_, err = AllocateChecked([]float64{1, 3}, -1, 0)
	assert.Error(t, err, "negative budget is a caller bug")

	_, err = AllocateChecked([]float64{1, -3}, 40, 0)
	assert.Error(t, err, "negative score is a caller bug")
}

func TestAllocateWithFloor(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		budget   float64
		floor    float64
		expected []float64
	}{
		{
			name:     "floor disabled behaves like plain allocation",
			scores:   []float64{1, 3},
			budget:   40,
			floor:    0,
			expected: []float64{10, 30},
		},
		{
			name:     "zero-score pair is lifted to the floor",
			scores:   []float64{0, 1},
			budget:   100,
			floor:    10,
			expected: []float64{10, 90},
		},
		{
			name:     "pinning cascades until stable",
			scores:   []float64{0, 0.001, 1},
			budget:   100,
			floor:    20,
			expected: []float64{20, 20, 60},
		},
		{
			name:     "shares exactly at the floor stay proportional",
			scores:   []float64{1, 1},
			budget:   40,
			floor:    20,
			expected: []float64{20, 20},
		},
		{
			name:     "unsatisfiable floor degrades to equal division",
			scores:   []float64{1, 3},
			budget:   10,
			floor:    6,
			expected: []float64{5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := AllocateWithFloor(tt.scores, tt.budget, tt.floor)
			require.Len(t, deltas, len(tt.scores))
			for i, want := range tt.expected {
				assert.InDelta(t, want, deltas[i], 1e-9, "delta %d", i)
			}
			assert.InDelta(t, tt.budget, sum(deltas), 1e-6, "deltas must sum to the budget")
		})
	}
}

func TestAllocateWithFloorEmpty(t *testing.T) {
	assert.Nil(t, AllocateWithFloor(nil, 40, 5))
}
