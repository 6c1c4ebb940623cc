package latest

import "sync"

// Tracker hands out monotonically increasing tickets per key so that the
// completion of a superseded request can be detected and dropped. Rapid
// navigation fires overlapping fetches for the same resource; only the
// newest ticket's result may be applied, whatever the arrival order.
type Tracker struct {
	mu  sync.Mutex
	seq map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{seq: make(map[string]uint64)}
}

// Begin issues the next ticket for the key, superseding all prior tickets.
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq[key]++
	return Ticket{tracker: t, key: key, seq: t.seq[key]}
}

// Ticket identifies one issued request for a key.
type Ticket struct {
	tracker *Tracker
	key     string
	seq     uint64
}

// Current reports whether the ticket is still the newest for its key.
func (tk Ticket) Current() bool {
	if tk.tracker == nil {
		return false
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	return tk.tracker.seq[tk.key] == tk.seq
}

// Apply runs fn only while the ticket is still current, holding the ticket
// current-check and fn under the tracker lock so a newer Begin cannot
// interleave with a stale apply. Returns whether fn ran.
func (tk Ticket) Apply(fn func()) bool {
	if tk.tracker == nil {
		return false
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	if tk.tracker.seq[tk.key] != tk.seq {
		return false
	}
	fn()
	return true
}
