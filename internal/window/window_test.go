package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		now       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "mid month",
			now:       "2024-03-15T00:00:00Z",
			wantStart: "2024-03-08T00:00:00.000Z",
			wantEnd:   "2024-03-08T23:59:00.000Z",
		},
		{
			name:      "month rollover",
			now:       "2024-03-04T12:30:45Z",
			wantStart: "2024-02-26T00:00:00.000Z",
			wantEnd:   "2024-02-26T23:59:00.000Z",
		},
		{
			name:      "year rollover",
			now:       "2024-01-03T08:00:00Z",
			wantStart: "2023-12-27T00:00:00.000Z",
			wantEnd:   "2023-12-27T23:59:00.000Z",
		},
		{
			name:      "leap day in range",
			now:       "2024-03-07T23:59:59Z",
			wantStart: "2024-02-29T00:00:00.000Z",
			wantEnd:   "2024-02-29T23:59:00.000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.now)
			require.NoError(t, err)

			w := Compute(now)
			assert.Equal(t, tt.wantStart, w.StartString())
			assert.Equal(t, tt.wantEnd, w.EndString())
			assert.False(t, w.End.Before(w.Start))
		})
	}
}

// The window end is 23:59:00, not 23:59:59.999. This is a documented quirk
// of the original trigger configuration, pinned here so nobody "fixes" it.
func TestCompute_EndTruncatedToMinute(t *testing.T) {
	w := Compute(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, 23, w.End.Hour())
	assert.Equal(t, 59, w.End.Minute())
	assert.Equal(t, 0, w.End.Second())
	assert.Equal(t, 0, w.End.Nanosecond())
}

func TestCompute_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 2024-03-15T02:00+05:00 is 2024-03-14T21:00Z; the window must be
	// derived from the UTC date.
	w := Compute(time.Date(2024, 3, 15, 2, 0, 0, 0, loc))

	assert.Equal(t, "2024-03-07T00:00:00.000Z", w.StartString())
}
