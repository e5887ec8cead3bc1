package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive number", 5, 5},
		{"negative number", -5, 5},
		{"zero", 0, 0},
		{"min int special case", math.MinInt32 + 1, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Abs(tt.input))
		})
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		min, max int
	}{
		{"a smaller", 3, 5, 3, 5},
		{"b smaller", 7, 2, 2, 7},
		{"equal", 4, 4, 4, 4},
		{"negative numbers", -5, -3, -5, -3},
		{"zero and negative", 0, -10, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.min, Min(tt.a, tt.b))
			assert.Equal(t, tt.max, Max(tt.a, tt.b))
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		x, lo, hi int
		expected  int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 12, 0, 10, 10},
		{"at lower bound", 0, 0, 10, 0},
		{"health floor", -2, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.x, tt.lo, tt.hi))
		})
	}
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.0, ClampFloat(-0.5, 0, 1))
	assert.Equal(t, 1.0, ClampFloat(1.7, 0, 1))
	assert.Equal(t, 0.25, ClampFloat(0.25, 0, 1))
}
