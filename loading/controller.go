// Package loading drives the blocking "work in progress" overlay shared by
// every request the client makes.
//
// The overlay is reference counted: each Show must be matched by a Hide
// before it disappears, and once visible it stays up for at least
// MinVisible so quick requests do not make it flicker. Lock pins the
// overlay across a multi-step sequence; Hide calls made while locked are
// held back and released together by Unlock.
package loading

import (
	"sync"
	"time"

	"relman/clock"
)

const (
	// DefaultMinVisible is how long the overlay stays up once shown.
	DefaultMinVisible = time.Second
	// DefaultMessage is shown when Show or Lock get an empty message.
	DefaultMessage = "Syncing data..."
)

// State is a snapshot of the overlay as the view should render it.
type State struct {
	Visible bool
	Message string
	Active  int
	Locked  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the real clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithMinVisible sets the minimum time the overlay stays visible.
func WithMinVisible(d time.Duration) Option {
	return func(ctl *Controller) {
		if d < 0 {
			d = 0
		}
		ctl.minVisible = d
	}
}

// WithDefaultMessage sets the text used when no message is given.
func WithDefaultMessage(msg string) Option {
	return func(ctl *Controller) { ctl.defaultMessage = msg }
}

// WithListener registers fn to receive every state change.
func WithListener(fn func(State)) Option {
	return func(ctl *Controller) { ctl.listener = fn }
}

// Controller owns the overlay state. It is safe for concurrent use. The
// listener is invoked without the state lock held, one call at a time, and
// receives states in the order they were committed.
type Controller struct {
	mu             sync.Mutex
	clock          clock.Clock
	minVisible     time.Duration
	defaultMessage string
	listener       func(State)

	active       int
	locked       bool
	lockHolds    int // Lock calls since the last Unlock
	suppressed   int // Hide calls swallowed while locked
	visible      bool
	visibleSince time.Time
	message      string

	pending clock.Timer
	hideSeq uint64
	last    State

	// notifyMu guards outbox and delivering. Lock order: mu, then notifyMu.
	notifyMu   sync.Mutex
	outbox     []notification
	delivering bool
}

type notification struct {
	fn    func(State)
	state State
}

// New returns a hidden, unlocked Controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		clock:          clock.Real(),
		minVisible:     DefaultMinVisible,
		defaultMessage: DefaultMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.message = c.defaultMessage
	c.last = c.snapshot()
	return c
}

// SetListener replaces the state change listener. A nil fn removes it.
func (c *Controller) SetListener(fn func(State)) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

// Show registers one more operation in flight and makes the overlay
// visible if it was hidden.
func (c *Controller) Show(message string) {
	c.mu.Lock()
	c.show(message)
	c.commit()
}

// Hide releases one operation. It does nothing while the controller is
// locked; use ForceHide or Unlock to get past the lock.
func (c *Controller) Hide() {
	c.mu.Lock()
	if c.locked {
		c.suppressed++
	} else {
		c.release(1)
	}
	c.commit()
}

// ForceHide releases one operation even while locked.
func (c *Controller) ForceHide() {
	c.mu.Lock()
	c.release(1)
	c.commit()
}

// Lock shows the overlay and keeps it up until Unlock, whatever Hide
// calls happen in between.
func (c *Controller) Lock(message string) {
	c.mu.Lock()
	c.locked = true
	c.lockHolds++
	c.show(message)
	c.commit()
}

// Unlock lifts the lock, applies the Hide calls it held back and releases
// the lock's own hold on the overlay.
func (c *Controller) Unlock() {
	c.mu.Lock()
	held := c.suppressed
	if c.lockHolds > 1 {
		held += c.lockHolds - 1
	}
	c.locked = false
	c.lockHolds = 0
	c.suppressed = 0
	c.release(held + 1)
	c.commit()
}

// Track shows the overlay and returns a release func that hides it. The
// release func is safe to call more than once; only the first call counts.
func (c *Controller) Track(message string) (release func()) {
	c.Show(message)
	var once sync.Once
	return func() { once.Do(c.Hide) }
}

// Run keeps the overlay up for the duration of fn.
func (c *Controller) Run(message string, fn func() error) error {
	release := c.Track(message)
	defer release()
	return fn()
}

// Visible reports whether the overlay is currently shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Active returns the number of operations in flight.
func (c *Controller) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Locked reports whether Hide calls are currently held back.
func (c *Controller) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Message returns the text the overlay displays.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// State returns a snapshot of the overlay.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) show(message string) {
	if message == "" {
		message = c.defaultMessage
	}
	c.message = message

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	// A show during the deferred hide window finds the overlay still up,
	// so visibleSince keeps counting from the first show. Restarting the
	// window here would stretch an overlay that never went away.
	if !c.visible {
		c.visible = true
		c.visibleSince = c.clock.Now()
	}
	c.active++
}

// release drops n operations and schedules the hide once none are left.
func (c *Controller) release(n int) {
	c.active -= n
	if c.active > 0 {
		return
	}
	c.active = 0
	if !c.visible || c.pending != nil {
		return
	}

	delay := c.minVisible - c.clock.Now().Sub(c.visibleSince)
	if delay <= 0 {
		c.conceal()
		return
	}
	c.hideSeq++
	seq := c.hideSeq
	c.pending = c.clock.AfterFunc(delay, func() { c.expire(seq) })
}

func (c *Controller) expire(seq uint64) {
	c.mu.Lock()
	if seq != c.hideSeq || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	if c.active == 0 {
		c.conceal()
	}
	c.commit()
}

func (c *Controller) conceal() {
	c.visible = false
	c.visibleSince = time.Time{}
}

func (c *Controller) snapshot() State {
	return State{
		Visible: c.visible,
		Message: c.message,
		Active:  c.active,
		Locked:  c.locked,
	}
}

// commit unlocks c.mu and notifies the listener if the state moved.
// Notifications are queued while c.mu is still held, so the queue follows
// commit order; whichever goroutine finds nobody delivering drains it.
func (c *Controller) commit() {
	st := c.snapshot()
	changed := st != c.last
	c.last = st
	if !changed || c.listener == nil {
		c.mu.Unlock()
		return
	}

	c.notifyMu.Lock()
	c.outbox = append(c.outbox, notification{fn: c.listener, state: st})
	if c.delivering {
		c.notifyMu.Unlock()
		c.mu.Unlock()
		return
	}
	c.delivering = true
	c.notifyMu.Unlock()
	c.mu.Unlock()

	c.notifyMu.Lock()
	for len(c.outbox) > 0 {
		n := c.outbox[0]
		c.outbox = c.outbox[1:]
		c.notifyMu.Unlock()
		n.fn(n.state)
		c.notifyMu.Lock()
	}
	c.outbox = nil
	c.delivering = false
	c.notifyMu.Unlock()
}
