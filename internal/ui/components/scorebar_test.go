package components

import (
	"strings"
	"testing"
)

func TestScoreBar_Fraction(t *testing.T) {
	tests := []struct {
		score, max int
		want       float64
	}{
		{5, 10, 0.5},
		{0, 10, 0},
		{12, 10, 1},
		{-3, 10, 0},
		{4, 0, 0},
	}
	for _, tt := range tests {
		got := NewScoreBar("g", tt.score, tt.max, 40).Fraction()
		if got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.score, tt.max, got, tt.want)
		}
	}
}

func TestScoreBar_View(t *testing.T) {
	v := NewScoreBar("energy", 6, 8, 40).View()
	if !strings.Contains(v, "energy") || !strings.Contains(v, "6/8") {
		t.Errorf("unexpected view %q", v)
	}
}
