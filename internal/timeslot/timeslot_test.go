package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock string
		want  float64
	}{
		{"09:00", 9.0},
		{"14:30", 14.5},
		{"00:00", 0.0},
		{"23:45", 23.75},
		{"08:15", 8.25},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.clock)
		require.NoError(t, err, tc.clock)
		assert.InDelta(t, tc.want, got, 1e-9, tc.clock)
	}
}

func TestParseClockRejectsMalformedInput(t *testing.T) {
	bad := []string{"", "9", "9:00:00", "ab:cd", "24:00", "12:60", "-1:30", "12:-5"}

	for _, clock := range bad {
		_, err := ParseClock(clock)
		assert.Error(t, err, clock)
	}
}

func TestCombineDateAndClockUsesLocalCalendar(t *testing.T) {
	got, err := CombineDateAndClock("2024-10-24", "14:30")
	require.NoError(t, err)

	want := time.Date(2024, time.October, 24, 14, 30, 0, 0, time.Local)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
	assert.Equal(t, time.Local, got.Location())
}

func TestCombineDateAndClockRejectsMalformedInput(t *testing.T) {
	_, err := CombineDateAndClock("2024/10/24", "14:30")
	assert.Error(t, err)

	_, err = CombineDateAndClock("2024-13-01", "14:30")
	assert.Error(t, err)

	_, err = CombineDateAndClock("2024-10-24", "14:30:00")
	assert.Error(t, err)
}

func TestAdmissionInstant(t *testing.T) {
	start := time.Date(2024, time.October, 24, 14, 0, 0, 0, time.Local)
	assert.Equal(t, start.Add(-10*time.Minute), AdmissionInstant(start))
}

func TestOverlapsSymmetry(t *testing.T) {
	intervals := [][2]float64{
		{9, 12}, {10, 11}, {11, 13}, {12, 14}, {8, 9.5}, {13.5, 18},
	}

	for _, a := range intervals {
		for _, b := range intervals {
			got := Overlaps(a[0], a[1], b[0], b[1])
			mirror := Overlaps(b[0], b[1], a[0], a[1])
			want := a[0] < b[1] && b[0] < a[1]
			assert.Equal(t, want, got, "a=%v b=%v", a, b)
			assert.Equal(t, got, mirror, "symmetry a=%v b=%v", a, b)
		}
	}
}

func TestOverlapsTouchingEndpointsAreNotConflicts(t *testing.T) {
	assert.False(t, Overlaps(9, 11, 11, 13))
	assert.False(t, Overlaps(11, 13, 9, 11))
	assert.True(t, Overlaps(9, 11.25, 11, 13))
}
