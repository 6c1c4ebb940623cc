package notices

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notice for presentation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is one transient banner shown to the user.
type Notice struct {
	ID      string
	Level   Level
	Message string
}

// Center holds the active notices and dismisses each one after the
// configured lifetime. Publish after Close is a no-op.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	active  []Notice
	timers  map[string]*time.Timer
	subs    map[int]func()
	nextSub int
	closed  bool
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = 1500 * time.Millisecond
	}
	return &Center{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		subs:   make(map[int]func()),
	}
}

// Publish adds a notice and schedules its dismissal. It returns the notice
// ID so callers can dismiss early.
func (c *Center) Publish(level Level, message string) string {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ""
	}
	id := uuid.NewString()
	c.active = append(c.active, Notice{ID: id, Level: level, Message: message})
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs)
	return id
}

// Dismiss removes a notice before its lifetime ends. Unknown IDs are
// ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	found := false
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return
	}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs)
}

// Active returns the notices currently on screen, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.active))
	copy(out, c.active)
	return out
}

// Subscribe registers a callback invoked after every change.
func (c *Center) Subscribe(fn func()) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Close stops all pending timers and drops the active notices.
func (c *Center) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
	return nil
}

func (c *Center) snapshotSubs() []func() {
	out := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
