package match

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "", 0.0},
		{"", "abc", 0.0},
		{"Hello", "hELLO", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"Back in Black", "back in black", 1.0},
		{"Intro", "Intro (Remastered)", 1.0 - 13.0/18.0},
		{"Café", "cafe", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "Thunderstruck", "日本語のタイトル", "AC/DC"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", s, s, got)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Song", "Track Two"},
		{"Hells Bells", "Hell's Bells"},
		{"", "x"},
		{"Shoot to Thrill", "shoot"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if !almostEqual(ab, ba) {
			t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"a", "bcdefgh"},
		{"What Do You Do for Money Honey", "Money"},
		{"Rock and Roll Ain't Noise Pollution", "Rock n Roll"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestSimilarity_IncreasesAsDistanceDecreases(t *testing.T) {
	far := Similarity("Thunderstruck", "Thxxxxxxxxxxx")
	near := Similarity("Thunderstruck", "Thunderstrxxx")
	if near <= far {
		t.Errorf("closer string scored %v, farther %v", near, far)
	}
}
