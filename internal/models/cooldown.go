package models

import (
	"sync"
	"time"
)

type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectCooldown
	RejectQuota
)

// Decision is the outcome of CheckAndReserve. Wait is only set for cooldown
// rejections; the daily cap resets at the local day boundary instead.
type Decision struct {
	Admitted bool
	Reason   RejectReason
	Wait     time.Duration
}

// CooldownTracker remembers when each actor was last admitted.
type CooldownTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{last: make(map[string]time.Time)}
}

// CheckAndReserve admits when the actor is under dailyCap and its cooldown has
// elapsed. Admission records now as the actor's last event in the same
// critical section, so concurrent calls for one actor cannot both pass.
func (c *CooldownTracker) CheckAndReserve(actor string, now time.Time, cooldown time.Duration, dailyCap, todayCount int) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	if todayCount >= dailyCap {
		return Decision{Reason: RejectQuota}
	}

	if last, ok := c.last[actor]; ok && cooldown > 0 {
		elapsed := now.Sub(last)
		if elapsed < cooldown {
			wait := cooldown - elapsed
			if wait > cooldown {
				wait = cooldown
			}
			return Decision{Reason: RejectCooldown, Wait: wait}
		}
	}

	c.last[actor] = now
	return Decision{Admitted: true}
}

// Forget drops the actor's record. Unknown actors are ignored.
func (c *CooldownTracker) Forget(actor string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.last, actor)
}

func (c *CooldownTracker) LastEventAt(actor string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.last[actor]
	return t, ok
}

func (c *CooldownTracker) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}
