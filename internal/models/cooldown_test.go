package models

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var cooldownStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCooldownTracker_AdmitsThenWaits(t *testing.T) {
	c := NewCooldownTracker()

	d := c.CheckAndReserve("Alice", cooldownStart, time.Minute, 10, 0)
	assert.True(t, d.Admitted)
	last, ok := c.LastEventAt("Alice")
	assert.True(t, ok)
	assert.Equal(t, cooldownStart, last)

	d = c.CheckAndReserve("Alice", cooldownStart.Add(20*time.Second), time.Minute, 10, 1)
	assert.False(t, d.Admitted)
	assert.Equal(t, RejectCooldown, d.Reason)
	assert.Equal(t, 40*time.Second, d.Wait)

	d = c.CheckAndReserve("Alice", cooldownStart.Add(time.Minute), time.Minute, 10, 1)
	assert.True(t, d.Admitted)
}

func TestCooldownTracker_QuotaBeforeCooldown(t *testing.T) {
	c := NewCooldownTracker()
	c.CheckAndReserve("Alice", cooldownStart, time.Minute, 10, 0)

	d := c.CheckAndReserve("Alice", cooldownStart.Add(time.Second), time.Minute, 1, 1)
	assert.Equal(t, RejectQuota, d.Reason)
	assert.Zero(t, d.Wait)

	last, _ := c.LastEventAt("Alice")
	assert.Equal(t, cooldownStart, last)
}

func TestCooldownTracker_ZeroCooldown(t *testing.T) {
	c := NewCooldownTracker()
	for i := 0; i < 3; i++ {
		assert.True(t, c.CheckAndReserve("Alice", cooldownStart, 0, 10, i).Admitted)
	}
}

func TestCooldownTracker_ClockStepsBack(t *testing.T) {
	c := NewCooldownTracker()
	c.CheckAndReserve("Alice", cooldownStart, time.Minute, 10, 0)

	d := c.CheckAndReserve("Alice", cooldownStart.Add(-time.Hour), time.Minute, 10, 1)
	assert.Equal(t, RejectCooldown, d.Reason)
	assert.Equal(t, time.Minute, d.Wait)
}

func TestCooldownTracker_Forget(t *testing.T) {
	c := NewCooldownTracker()
	c.CheckAndReserve("Alice", cooldownStart, time.Minute, 10, 0)
	assert.Equal(t, 1, c.Len())

	c.Forget("Alice")
	c.Forget("nobody")
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.CheckAndReserve("Alice", cooldownStart.Add(time.Second), time.Minute, 10, 1).Admitted)
}

func TestCooldownTracker_ConcurrentSameActor(t *testing.T) {
	c := NewCooldownTracker()
	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.CheckAndReserve("Alice", cooldownStart, time.Minute, 10, 0).Admitted {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), admitted.Load())
}
