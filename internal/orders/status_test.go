package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusForTimeCheckpoints(t *testing.T) {
	start := time.Date(2024, 10, 24, 14, 0, 0, 0, time.Local)
	end := time.Date(2024, 10, 24, 18, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"well before admission", start.Add(-2 * time.Hour), StatusPending},
		{"one second before admission", start.Add(-10*time.Minute - time.Second), StatusPending},
		{"exactly at admission", start.Add(-10 * time.Minute), StatusActive},
		{"at nominal start", start, StatusActive},
		{"mid session", start.Add(2 * time.Hour), StatusActive},
		{"exactly at end", end, StatusActive},
		{"one second past end", end.Add(time.Second), StatusCompleted},
		{"long after end", end.Add(48 * time.Hour), StatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusForTime(tc.now, start, end))
		})
	}
}

func TestStatusTerminality(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestOnlyActiveOrdersAreCancellable(t *testing.T) {
	assert.True(t, StatusActive.CanBeCancelled())
	assert.False(t, StatusPending.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
}

func TestStatusValidation(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusActive, StatusCompleted, StatusCancelled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("paid").IsValid())
	assert.False(t, Status("").IsValid())
}
