// Package freshness tracks what each poller has already seen, so new
// content notifies at most once. State lives in memory only and is
// rebuilt from empty on process start.
package freshness

import "sync"

// Tracker records the last observed state per creator for one platform.
// Each poller owns its own Tracker instance.
//
// The record happens during the observation, before any delivery: if a
// downstream send fails, the state has already advanced and the event
// is not retried.
type Tracker struct {
	mu sync.Mutex

	// notifyFirstSeen controls whether the first observation of a
	// creator after process start can signal novelty, or is silently
	// baselined
	notifyFirstSeen bool

	live    map[string]bool
	content map[string]string
}

// NewTracker creates an empty tracker
func NewTracker(notifyFirstSeen bool) *Tracker {
	return &Tracker{
		notifyFirstSeen: notifyFirstSeen,
		live:            make(map[string]bool),
		content:         make(map[string]string),
	}
}

// ObserveLive records a streaming creator's live state and reports
// whether this observation is a notifiable transition to live
func (t *Tracker) ObserveLive(handle string, live bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.live[handle]
	t.live[handle] = live

	if !live {
		return false
	}
	if !seen {
		return t.notifyFirstSeen
	}
	return !prev
}

// ObserveContent records a creator's newest content identifier and
// reports whether it differs from the previously recorded one
func (t *Tracker) ObserveContent(handle, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.content[handle]
	t.content[handle] = id

	if !seen {
		return t.notifyFirstSeen
	}
	return prev != id
}
