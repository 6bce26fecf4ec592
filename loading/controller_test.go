package loading

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relman/clock"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestController(t *testing.T) (*Controller, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(epoch)
	return New(WithClock(fake)), fake
}

func TestInitialState(t *testing.T) {
	c, _ := newTestController(t)

	require.Equal(t, State{Visible: false, Message: DefaultMessage}, c.State())
	require.False(t, c.Locked())
	require.Zero(t, c.Active())
}

func TestShowThenImmediateHideHonoursMinimumDuration(t *testing.T) {
	c, fake := newTestController(t)

	c.Show("")
	require.True(t, c.Visible())

	fake.Advance(5 * time.Millisecond)
	c.Hide()
	require.Zero(t, c.Active())
	require.True(t, c.Visible(), "hide before the minimum duration must be deferred")

	fake.Advance(994 * time.Millisecond)
	require.True(t, c.Visible())

	fake.Advance(time.Millisecond)
	require.False(t, c.Visible())
	require.Zero(t, fake.Pending())
}

func TestHideAfterMinimumDurationIsImmediate(t *testing.T) {
	c, fake := newTestController(t)

	c.Show("")
	fake.Advance(1500 * time.Millisecond)
	c.Hide()

	require.False(t, c.Visible())
	require.Zero(t, fake.Pending())
}

func TestHideWithoutShowDoesNotUnderflow(t *testing.T) {
	c, fake := newTestController(t)

	c.Hide()
	c.Hide()
	require.Zero(t, c.Active())
	require.False(t, c.Visible())
	require.Zero(t, fake.Pending())

	c.Show("")
	require.Equal(t, 1, c.Active())
	require.True(t, c.Visible())
}

func TestNestedShowsNeedMatchingHides(t *testing.T) {
	c, fake := newTestController(t)

	const n = 4
	for i := 0; i < n; i++ {
		c.Show("")
	}
	fake.Advance(2 * time.Second)

	for i := 0; i < n-1; i++ {
		c.Hide()
		require.True(t, c.Visible(), "overlay hid after %d of %d hides", i+1, n)
	}
	c.Hide()
	require.False(t, c.Visible())
}

func TestTwoShowsTwoHidesMeasuresFromFirstShow(t *testing.T) {
	c, fake := newTestController(t)

	c.Show("")
	fake.Advance(300 * time.Millisecond)
	c.Show("")
	fake.Advance(100 * time.Millisecond)
	c.Hide()
	require.True(t, c.Visible())
	c.Hide()
	require.True(t, c.Visible())

	// 400ms elapsed since the first show, so 600ms remain.
	fake.Advance(599 * time.Millisecond)
	require.True(t, c.Visible())
	fake.Advance(time.Millisecond)
	require.False(t, c.Visible())
}

func TestShowDuringDeferredHideAbortsIt(t *testing.T) {
	c, fake := newTestController(t)

	c.Show("")
	c.Hide()
	fake.Advance(200 * time.Millisecond)

	c.Show("")
	fake.Advance(5 * time.Second)
	require.True(t, c.Visible(), "pending hide must be abandoned once a new show arrives")
	require.Equal(t, 1, c.Active())

	c.Hide()
	require.False(t, c.Visible(), "minimum duration already elapsed since the first show")
}

func TestStaleDeferredHideDoesNotCutShortNewWindow(t *testing.T) {
	c, fake := newTestController(t)

	c.Show("")
	c.Hide() // deferred to t=1000ms
	fake.Advance(500 * time.Millisecond)
	c.Show("")
	fake.Advance(100 * time.Millisecond)
	c.Hide() // still measured from t=0, deferred to t=1000ms

	fake.Advance(399 * time.Millisecond)
	require.True(t, c.Visible())
	fake.Advance(time.Millisecond)
	require.False(t, c.Visible())
}

func TestLockSuppressesHide(t *testing.T) {
	c, fake := newTestController(t)

	c.Lock("Saving")
	for i := 0; i < 5; i++ {
		c.Hide()
	}
	fake.Advance(10 * time.Second)
	require.True(t, c.Visible())
	require.True(t, c.Locked())
	require.Equal(t, "Saving", c.Message())

	c.Unlock()
	require.False(t, c.Locked())
	require.False(t, c.Visible())
}

func TestLockShowHideHideThenUnlock(t *testing.T) {
	c, fake := newTestController(t)

	c.Lock("Saving")
	c.Show("")
	c.Hide()
	c.Hide()
	require.True(t, c.Visible())
	require.Equal(t, 2, c.Active())

	c.Unlock()
	require.Zero(t, c.Active())
	require.True(t, c.Visible(), "unlock still honours the minimum duration")

	fake.Advance(time.Second)
	require.False(t, c.Visible())
}

func TestUnlockKeepsOperationsStillInFlight(t *testing.T) {
	c, fake := newTestController(t)

	c.Lock("")
	c.Show("")
	c.Show("")
	c.Hide()
	c.Unlock()

	fake.Advance(5 * time.Second)
	require.True(t, c.Visible())
	require.Equal(t, 1, c.Active())

	c.Hide()
	require.False(t, c.Visible())
}

func TestForceHideBypassesLock(t *testing.T) {
	c, fake := newTestController(t)

	c.Lock("")
	fake.Advance(2 * time.Second)
	c.ForceHide()

	require.False(t, c.Visible())
	require.True(t, c.Locked(), "force hide does not lift the lock")
}

func TestUnlockWithoutLockActsAsForcedHide(t *testing.T) {
	c, fake := newTestController(t)

	c.Show("")
	c.Show("")
	fake.Advance(2 * time.Second)
	c.Unlock()

	require.Equal(t, 1, c.Active())
	require.True(t, c.Visible())
}

func TestMessages(t *testing.T) {
	fake := clock.NewFake(epoch)
	c := New(WithClock(fake), WithDefaultMessage("Working"))

	require.Equal(t, "Working", c.Message())
	c.Show("Loading people")
	require.Equal(t, "Loading people", c.Message())
	c.Show("")
	require.Equal(t, "Working", c.Message())
}

func TestWithMinVisibleZeroHidesImmediately(t *testing.T) {
	fake := clock.NewFake(epoch)
	c := New(WithClock(fake), WithMinVisible(0))

	c.Show("")
	c.Hide()
	require.False(t, c.Visible())
	require.Zero(t, fake.Pending())
}

func TestListenerSeesTransitions(t *testing.T) {
	fake := clock.NewFake(epoch)
	var states []State
	c := New(WithClock(fake), WithListener(func(s State) { states = append(states, s) }))

	c.Show("a")
	c.Hide()
	fake.Advance(time.Second)

	require.Equal(t, []State{
		{Visible: true, Message: "a", Active: 1},
		{Visible: true, Message: "a", Active: 0},
		{Visible: false, Message: "a", Active: 0},
	}, states)
}

func TestListenerReceivesStatesInCommitOrder(t *testing.T) {
	fake := clock.NewFake(epoch)
	entered := make(chan struct{})
	gate := make(chan struct{})

	var mu sync.Mutex
	var states []State
	var once sync.Once
	c := New(WithClock(fake), WithMinVisible(0), WithListener(func(s State) {
		once.Do(func() {
			close(entered)
			<-gate
		})
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Show("a")
	}()
	<-entered

	// The first notification is still being delivered; this one must wait
	// behind it instead of overtaking it.
	c.Hide()
	close(gate)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []State{
		{Visible: true, Message: "a", Active: 1},
		{Visible: false, Message: "a", Active: 0},
	}, states)
	require.Equal(t, c.State(), states[len(states)-1])
}

func TestListenerMayCallBackIntoController(t *testing.T) {
	fake := clock.NewFake(epoch)
	c := New(WithClock(fake), WithMinVisible(0))
	var states []State
	c.SetListener(func(s State) {
		states = append(states, s)
		if s.Active == 1 && len(states) == 1 {
			c.Hide()
		}
	})

	c.Show("a")
	require.Equal(t, []State{
		{Visible: true, Message: "a", Active: 1},
		{Visible: false, Message: "a", Active: 0},
	}, states)
}

func TestListenerMayQueryController(t *testing.T) {
	fake := clock.NewFake(epoch)
	c := New(WithClock(fake))
	var seen []bool
	c.SetListener(func(State) { seen = append(seen, c.Visible()) })

	c.Show("")
	c.Hide()
	fake.Advance(time.Second)
	require.Equal(t, []bool{true, true, false}, seen)
}

func TestTrackReleaseIsIdempotent(t *testing.T) {
	c, fake := newTestController(t)

	other := c.Track("")
	release := c.Track("")
	release()
	release()
	require.Equal(t, 1, c.Active())

	other()
	fake.Advance(time.Second)
	require.False(t, c.Visible())
}

func TestRunReleasesOnError(t *testing.T) {
	c, fake := newTestController(t)
	boom := errors.New("boom")

	err := c.Run("", func() error {
		assert.True(t, c.Visible())
		assert.Equal(t, 1, c.Active())
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, c.Active())

	fake.Advance(time.Second)
	require.False(t, c.Visible())
}

func TestConcurrentTrackBalances(t *testing.T) {
	c := New(WithMinVisible(0))

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := c.Track("")
			defer release()
		}()
	}
	wg.Wait()

	require.Zero(t, c.Active())
	require.False(t, c.Visible())
}
