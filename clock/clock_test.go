package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeAdvanceFiresInDeadlineOrder(t *testing.T) {
	c := NewFake(epoch)
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })
	require.Equal(t, 2, c.Pending())

	c.Advance(200 * time.Millisecond)
	require.Equal(t, []string{"early"}, fired)
	require.Equal(t, epoch.Add(200*time.Millisecond), c.Now())

	c.Advance(100 * time.Millisecond)
	require.Equal(t, []string{"early", "late"}, fired)
	require.Zero(t, c.Pending())
}

func TestFakeCallbackSeesDeadlineTime(t *testing.T) {
	c := NewFake(epoch)
	var at time.Time
	c.AfterFunc(time.Second, func() { at = c.Now() })

	c.Advance(5 * time.Second)
	require.Equal(t, epoch.Add(time.Second), at)
	require.Equal(t, epoch.Add(5*time.Second), c.Now())
}

func TestFakeStop(t *testing.T) {
	c := NewFake(epoch)
	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())
	c.Advance(2 * time.Second)
	require.False(t, called)
}

func TestFakeNonPositiveDelayRunsImmediately(t *testing.T) {
	c := NewFake(epoch)
	called := false
	timer := c.AfterFunc(0, func() { called = true })

	require.True(t, called)
	require.False(t, timer.Stop())
	require.Zero(t, c.Pending())
}

func TestFakeTimerRegisteredDuringAdvance(t *testing.T) {
	c := NewFake(epoch)
	var fired []time.Duration
	c.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, c.Now().Sub(epoch))
		c.AfterFunc(100*time.Millisecond, func() {
			fired = append(fired, c.Now().Sub(epoch))
		})
	})

	c.Advance(time.Second)
	require.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, fired)
}
