package reembed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTrackerReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 5)
	tracker.Start()

	tracker.Update(3)
	assert.Empty(t, buf.String(), "below the report interval")

	tracker.Update(5)
	assert.Contains(t, buf.String(), "5/10")

	tracker.Finish()
	assert.Contains(t, buf.String(), "10/10")
	assert.Contains(t, buf.String(), "100.0%")
}

func TestProgressTrackerIncrement(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 2)
	tracker.Start()

	tracker.Increment(1)
	tracker.Increment(1)
	assert.Contains(t, buf.String(), "2/4")

	// Increments past the total are capped.
	tracker.Increment(10)
	tracker.Finish()
	assert.Contains(t, buf.String(), "4/4")
}

func TestProgressTrackerIgnoresUpdatesBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Update(5)
	tracker.Finish()
	require.Empty(t, buf.String())
}
