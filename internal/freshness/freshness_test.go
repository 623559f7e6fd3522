package freshness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveLiveTransitions(t *testing.T) {
	tr := NewTracker(false)

	observations := []bool{false, true, true, false, true}
	want := []bool{false, true, false, false, true}

	for idx, live := range observations {
		assert.Equal(t, want[idx], tr.ObserveLive("streamer", live), "observation %d", idx)
	}
}

func TestObserveLiveFirstSeenLive(t *testing.T) {
	// With first-seen notification on, a creator who is already live at
	// startup notifies immediately
	tr := NewTracker(true)
	assert.True(t, tr.ObserveLive("streamer", true))
	assert.False(t, tr.ObserveLive("streamer", true))

	// Baseline mode records silently instead
	baseline := NewTracker(false)
	assert.False(t, baseline.ObserveLive("streamer", true))
	assert.False(t, baseline.ObserveLive("streamer", true))
	assert.False(t, baseline.ObserveLive("streamer", false))
	assert.True(t, baseline.ObserveLive("streamer", true))
}

func TestObserveContentSequence(t *testing.T) {
	tr := NewTracker(true)

	assert.True(t, tr.ObserveContent("channel", "v1"))
	assert.False(t, tr.ObserveContent("channel", "v1"))
	assert.True(t, tr.ObserveContent("channel", "v2"))
}

func TestObserveContentBaseline(t *testing.T) {
	tr := NewTracker(false)

	// First sighting is recorded but not notifiable
	assert.False(t, tr.ObserveContent("channel", "v1"))
	assert.False(t, tr.ObserveContent("channel", "v1"))
	assert.True(t, tr.ObserveContent("channel", "v2"))
}

func TestTrackersAreIndependentPerCreator(t *testing.T) {
	tr := NewTracker(true)

	assert.True(t, tr.ObserveContent("a", "v1"))
	assert.True(t, tr.ObserveContent("b", "v1"))
	assert.False(t, tr.ObserveContent("a", "v1"))
}
