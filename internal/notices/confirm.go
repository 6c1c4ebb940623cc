package notices

import (
	"sync"
	"time"
)

// Confirmer guards a destructive action behind a second press. The first
// press arms it for a short window; a second press inside the window runs
// the action, otherwise the button quietly reverts.
type Confirmer struct {
	mu         sync.Mutex
	window     time.Duration
	action     func()
	now        func() time.Time
	armedUntil time.Time
	revert     *time.Timer
	subs       map[int]func()
	nextSub    int
	closed     bool
}

func NewConfirmer(window time.Duration, action func()) *Confirmer {
	if window <= 0 {
		window = 3 * time.Second
	}
	return &Confirmer{
		window: window,
		action: action,
		now:    time.Now,
		subs:   make(map[int]func()),
	}
}

// Press registers a click. It reports whether the action ran.
func (c *Confirmer) Press() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	now := c.now()
	if now.Before(c.armedUntil) {
		c.disarmLocked()
		action := c.action
		subs := c.snapshotSubs()
		c.mu.Unlock()

		if action != nil {
			action()
		}
		notify(subs)
		return true
	}

	c.armedUntil = now.Add(c.window)
	if c.revert != nil {
		c.revert.Stop()
	}
	c.revert = time.AfterFunc(c.window, c.expire)
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs)
	return false
}

// Armed reports whether the next press confirms.
func (c *Confirmer) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Before(c.armedUntil)
}

// Subscribe registers a callback invoked whenever the armed state changes.
func (c *Confirmer) Subscribe(fn func()) (cancel func()) {
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

// Close stops the revert timer; further presses are ignored.
func (c *Confirmer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.disarmLocked()
	return nil
}

func (c *Confirmer) expire() {
	c.mu.Lock()
	if c.closed || c.now().Before(c.armedUntil) {
		c.mu.Unlock()
		return
	}
	c.armedUntil = time.Time{}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs)
}

func (c *Confirmer) disarmLocked() {
	c.armedUntil = time.Time{}
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}

func (c *Confirmer) snapshotSubs() []func() {
	out := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}
