package monitor

import (
	"time"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

type event int

const (
	eventNone event = iota
	eventTransition
	eventRepeat
)

type hostState struct {
	prev        domain.Classification
	lastAlertAt time.Time
}

// tracker keeps the per-host previous classification and the time of
// the last alert. Only the monitor goroutine touches it.
type tracker struct {
	states map[domain.HostID]*hostState
}

func newTracker() *tracker {
	return &tracker{states: make(map[domain.HostID]*hostState)}
}

// observe records the new classification and decides whether it
// warrants a notification. Before the first sample a host is Unknown,
// so the first classification always counts as a transition. A host
// that stays Disconnected re-alerts every repeatEvery (0 = every tick).
func (t *tracker) observe(id domain.HostID, c domain.Classification, now time.Time, repeatEvery time.Duration) event {
	st, ok := t.states[id]
	if !ok {
		st = &hostState{prev: domain.Unknown}
		t.states[id] = st
	}

	changed := c != st.prev
	st.prev = c

	if changed {
		st.lastAlertAt = now
		return eventTransition
	}
	if c == domain.Disconnected && now.Sub(st.lastAlertAt) >= repeatEvery {
		st.lastAlertAt = now
		return eventRepeat
	}
	return eventNone
}

// previous returns the current known classification for a host.
func (t *tracker) previous(id domain.HostID) domain.Classification {
	if st, ok := t.states[id]; ok {
		return st.prev
	}
	return domain.Unknown
}
