package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntensityLevel(t *testing.T) {
	tests := []struct {
		count, max, want int
	}{
		{0, 10, 0},
		{0, 0, 0},
		{1, 10, 1},
		{2, 10, 2},
		{4, 10, 3},
		{6, 10, 4},
		{7, 10, 4},
		{8, 10, 5},
		{10, 10, 5},
		{1, 1, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntensityLevel(tt.count, tt.max), "count=%d max=%d", tt.count, tt.max)
	}
}

func TestHourBar(t *testing.T) {
	assert.Equal(t, "░░░░░", HourBar(0))
	assert.Equal(t, "███░░", HourBar(3))
	assert.Equal(t, "█████", HourBar(5))
	assert.Equal(t, "█████", HourBar(9))
	assert.Equal(t, "░░░░░", HourBar(-1))
}

func TestLevelColorGradient(t *testing.T) {
	seen := map[string]bool{}
	for level := 0; level <= MaxIntensity; level++ {
		c := LevelColor(level)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, c)
		seen[c] = true
	}
	assert.Len(t, seen, MaxIntensity+1, "each level gets its own shade")
	assert.Equal(t, LevelColor(MaxIntensity), LevelColor(MaxIntensity+3))
}

func TestColorBarNoColor(t *testing.T) {
	assert.Equal(t, HourBar(4), colorBar(4, true))
}

func TestTopN(t *testing.T) {
	counts := map[string]int{"Read": 3, "Bash": 3, "Edit": 7, "Grep": 1}
	assert.Equal(t, []Ranked{{"Edit", 7}, {"Bash", 3}, {"Read", 3}}, TopN(counts, 3))
	assert.Len(t, TopN(counts, 0), 4)
	assert.Empty(t, TopN(nil, 5))
}
