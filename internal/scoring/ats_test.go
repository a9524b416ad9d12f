package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestATSScore(t *testing.T) {
	tests := []struct {
		name     string
		matched  int
		required int
		keywords int
		want     int
	}{
		{"perfect match", 10, 10, 30, 100},
		{"no requirements full skill credit", 0, 0, 0, 70},
		{"half skills no keywords", 5, 10, 0, 35},
		{"no skills many keywords capped", 0, 10, 50, 30},
		{"keywords capped at 30", 10, 10, 99, 100},
		{"matched above required is clamped", 15, 10, 0, 70},
		{"negative inputs clamped", -3, 10, -5, 0},
		{"partial everything", 3, 4, 12, 64}, // 3*70/4=52 + 12
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ATSScore(tt.matched, tt.required, tt.keywords))
		})
	}
}

func TestATSScore_NeverExceedsBounds(t *testing.T) {
	for matched := 0; matched <= 12; matched += 3 {
		for required := 0; required <= 12; required += 3 {
			for keywords := 0; keywords <= 60; keywords += 15 {
				got := ATSScore(matched, required, keywords)
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 100)
			}
		}
	}
}
