package models

import "time"

const (
	ActorHistoryCapacity = 100
	HourSampleCapacity   = 1000
	DefaultPeakHours     = 5
	DefaultTopActors     = 10
)

// ActorStats holds the counters of one actor. CountToday is counted against
// DayAnchor, the local midnight of the day it belongs to.
type ActorStats struct {
	TotalCount  int
	CountToday  int
	DayAnchor   time.Time
	LastEventAt time.Time
	history     *Ring[time.Time]
}

func newActorStats() *ActorStats {
	return &ActorStats{history: NewRing[time.Time](ActorHistoryCapacity)}
}

// History returns the most recent event timestamps, oldest first.
func (a *ActorStats) History() []time.Time {
	if a.history == nil {
		return nil
	}
	return a.history.Items()
}

func (a *ActorStats) clone() ActorStats {
	c := *a
	c.history = RingFrom(ActorHistoryCapacity, a.History())
	return c
}

type ActorCount struct {
	Actor string `json:"actor"`
	Count int    `json:"count"`
}

// StatsView is the read-only summary answered by the stats query.
type StatsView struct {
	TotalCount int          `json:"total_count"`
	TopActors  []ActorCount `json:"top_actors"`
	PeakHours  []int        `json:"peak_hours"`
}
