package models

import (
	"sort"
	"sync"
	"time"
)

// StatsStore aggregates per-actor counters and the time-of-day histogram.
// Record is its only mutator besides Restore.
type StatsStore struct {
	mu          sync.RWMutex
	loc         *time.Location
	actors      map[string]*ActorStats
	totalCount  int
	hourSamples *Ring[int] // seconds since local midnight
	lastUpdate  time.Time
}

func NewStatsStore(loc *time.Location) *StatsStore {
	if loc == nil {
		loc = time.Local
	}
	return &StatsStore{
		loc:         loc,
		actors:      make(map[string]*ActorStats),
		hourSamples: NewRing[int](HourSampleCapacity),
	}
}

func (s *StatsStore) Location() *time.Location {
	return s.loc
}

func (s *StatsStore) dayOf(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *StatsStore) secondOfDay(t time.Time) int {
	local := t.In(s.loc)
	return local.Hour()*3600 + local.Minute()*60 + local.Second()
}

func (s *StatsStore) Record(actor string, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.actors[actor]
	if !ok {
		stats = newActorStats()
		s.actors[actor] = stats
	}

	day := s.dayOf(ts)
	if !stats.DayAnchor.Equal(day) {
		stats.CountToday = 0
		stats.DayAnchor = day
	}

	stats.TotalCount++
	stats.CountToday++
	stats.LastEventAt = ts
	stats.history.Push(ts)

	s.totalCount++
	s.hourSamples.Push(s.secondOfDay(ts))
	s.lastUpdate = ts
}

// TodayCount reports the actor's count for the calendar day containing now.
// A count anchored to another day reads as zero.
func (s *StatsStore) TodayCount(actor string, now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.actors[actor]
	if !ok || !stats.DayAnchor.Equal(s.dayOf(now)) {
		return 0
	}
	return stats.CountToday
}

func (s *StatsStore) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalCount
}

func (s *StatsStore) ActorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.actors)
}

func (s *StatsStore) Actor(actor string) (ActorStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.actors[actor]
	if !ok {
		return ActorStats{}, false
	}
	return stats.clone(), true
}

// TopActors orders by total count descending, then actor ascending.
func (s *StatsStore) TopActors(n int) []ActorCount {
	if n <= 0 {
		return []ActorCount{}
	}

	s.mu.RLock()
	result := make([]ActorCount, 0, len(s.actors))
	for actor, stats := range s.actors {
		result = append(result, ActorCount{Actor: actor, Count: stats.TotalCount})
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Actor < result[j].Actor
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// PeakHours buckets the time-of-day samples by hour and ranks buckets by size
// descending, then hour ascending.
func (s *StatsStore) PeakHours(n int) []int {
	if n <= 0 {
		return []int{}
	}

	var buckets [24]int
	s.mu.RLock()
	s.hourSamples.Each(func(sec int) {
		buckets[(sec/3600)%24]++
	})
	s.mu.RUnlock()

	hours := make([]int, 0, 24)
	for h, c := range buckets {
		if c > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return buckets[hours[i]] > buckets[hours[j]]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

func (s *StatsStore) View(topN, peakN int) StatsView {
	return StatsView{
		TotalCount: s.TotalCount(),
		TopActors:  s.TopActors(topN),
		PeakHours:  s.PeakHours(peakN),
	}
}

func (s *StatsStore) Snapshot() *StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &StatsSnapshot{
		Version:     SnapshotVersion,
		TotalCount:  s.totalCount,
		Actors:      make(map[string]*ActorSnapshot, len(s.actors)),
		HourSamples: s.hourSamples.Items(),
		LastUpdate:  s.lastUpdate,
	}
	for actor, stats := range s.actors {
		snap.Actors[actor] = &ActorSnapshot{
			TotalCount:  stats.TotalCount,
			CountToday:  stats.CountToday,
			DayAnchor:   stats.DayAnchor,
			LastEventAt: stats.LastEventAt,
			History:     stats.History(),
		}
	}
	return snap
}

// Restore replaces the whole state. A nil snapshot resets the store.
func (s *StatsStore) Restore(snap *StatsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.actors = make(map[string]*ActorStats)
	s.totalCount = 0
	s.hourSamples = NewRing[int](HourSampleCapacity)
	s.lastUpdate = time.Time{}
	if snap == nil {
		return
	}

	for actor, as := range snap.Actors {
		if as == nil || actor == "" {
			continue
		}
		anchor := as.DayAnchor
		if !anchor.IsZero() {
			anchor = s.dayOf(anchor)
		}
		s.actors[actor] = &ActorStats{
			TotalCount:  as.TotalCount,
			CountToday:  as.CountToday,
			DayAnchor:   anchor,
			LastEventAt: as.LastEventAt,
			history:     RingFrom(ActorHistoryCapacity, as.History),
		}
	}
	samples := make([]int, 0, len(snap.HourSamples))
	for _, sec := range snap.HourSamples {
		if sec >= 0 && sec < 24*3600 {
			samples = append(samples, sec)
		}
	}
	s.hourSamples = RingFrom(HourSampleCapacity, samples)
	s.totalCount = snap.TotalCount
	s.lastUpdate = snap.LastUpdate
}
