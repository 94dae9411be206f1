package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReviewCutoff(t *testing.T) {
	cases := []struct {
		now      time.Time
		expected time.Time
	}{
		{
			// no leap day in range, plain two calendar years back
			now:      time.Date(2026, time.March, 1, 0, 0, 0, 0, Location),
			expected: time.Date(2024, time.March, 1, 0, 0, 0, 0, Location),
		},
		{
			// spans one leap day, so the cutoff lands a day earlier
			// than a calendar-based two years would
			now:      time.Date(2025, time.June, 15, 12, 0, 0, 0, Location),
			expected: time.Date(2023, time.June, 16, 12, 0, 0, 0, Location),
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, ReviewCutoff(test.now))
	}
}
