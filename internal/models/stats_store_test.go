package models

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestStatsStore_Record(t *testing.T) {
	s := NewStatsStore(time.UTC)
	s.Record("Alice", at(1, 10, 0))
	s.Record("Alice", at(1, 11, 0))
	s.Record("Bob", at(1, 11, 30))

	assert.Equal(t, 3, s.TotalCount())
	assert.Equal(t, 2, s.ActorCount())
	assert.Equal(t, 2, s.TodayCount("Alice", at(1, 23, 59)))
	assert.Equal(t, 0, s.TodayCount("Carol", at(1, 12, 0)))

	alice, ok := s.Actor("Alice")
	require.True(t, ok)
	assert.Equal(t, 2, alice.TotalCount)
	assert.Equal(t, at(1, 11, 0), alice.LastEventAt)
	assert.Equal(t, []time.Time{at(1, 10, 0), at(1, 11, 0)}, alice.History())

	_, ok = s.Actor("Carol")
	assert.False(t, ok)
}

func TestStatsStore_DayRollover(t *testing.T) {
	s := NewStatsStore(time.UTC)
	s.Record("Alice", at(1, 23, 0))
	s.Record("Alice", at(1, 23, 30))

	assert.Equal(t, 0, s.TodayCount("Alice", at(2, 0, 1)))

	s.Record("Alice", at(2, 0, 5))
	assert.Equal(t, 1, s.TodayCount("Alice", at(2, 0, 6)))
	alice, _ := s.Actor("Alice")
	assert.Equal(t, 3, alice.TotalCount)
}

func TestStatsStore_DayFollowsLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	s := NewStatsStore(ny)

	// 03:00 UTC on the 2nd is still the 1st in New York
	s.Record("Alice", at(1, 20, 0))
	assert.Equal(t, 1, s.TodayCount("Alice", at(2, 3, 0)))
	assert.Equal(t, 0, s.TodayCount("Alice", at(2, 6, 0)))
	assert.Equal(t, []int{15}, s.PeakHours(5))
}

func TestStatsStore_HistoryIsBounded(t *testing.T) {
	s := NewStatsStore(time.UTC)
	start := at(1, 0, 0)
	for i := 0; i < ActorHistoryCapacity+20; i++ {
		s.Record("Alice", start.Add(time.Duration(i)*time.Second))
	}
	alice, _ := s.Actor("Alice")
	history := alice.History()
	require.Len(t, history, ActorHistoryCapacity)
	assert.Equal(t, start.Add(20*time.Second), history[0])
	assert.Equal(t, ActorHistoryCapacity+20, alice.TotalCount)
}

func TestStatsStore_TopActors(t *testing.T) {
	s := NewStatsStore(time.UTC)
	for i, actor := range []string{"Carol", "Bob", "Alice", "Bob", "Alice", "Dave"} {
		s.Record(actor, at(1, 10, i))
	}

	assert.Equal(t, []ActorCount{{"Alice", 2}, {"Bob", 2}, {"Carol", 1}}, s.TopActors(3))
	assert.Len(t, s.TopActors(10), 4)
	assert.Empty(t, s.TopActors(0))
	assert.NotNil(t, s.TopActors(-1))
}

func TestStatsStore_PeakHours(t *testing.T) {
	s := NewStatsStore(time.UTC)
	for _, h := range []int{18, 18, 18, 9, 9, 21, 21, 3} {
		s.Record("Alice", at(1, h, 0))
	}

	assert.Equal(t, []int{18, 9, 21, 3}, s.PeakHours(5))
	assert.Equal(t, []int{18, 9}, s.PeakHours(2))
	assert.Empty(t, s.PeakHours(0))
	assert.Empty(t, NewStatsStore(time.UTC).PeakHours(5))
}

func TestStatsStore_HourSamplesAreBounded(t *testing.T) {
	s := NewStatsStore(time.UTC)
	for i := 0; i < HourSampleCapacity; i++ {
		s.Record("Alice", at(1, 2, 0))
	}
	for i := 0; i < HourSampleCapacity; i++ {
		s.Record("Alice", at(1, 7, 0))
	}
	assert.Equal(t, []int{7}, s.PeakHours(5))
	assert.Equal(t, 2*HourSampleCapacity, s.TotalCount())
}

func TestStatsStore_View(t *testing.T) {
	s := NewStatsStore(time.UTC)
	s.Record("Alice", at(1, 10, 0))

	v := s.View(DefaultTopActors, DefaultPeakHours)
	assert.Equal(t, StatsView{TotalCount: 1, TopActors: []ActorCount{{"Alice", 1}}, PeakHours: []int{10}}, v)
}

func TestStatsStore_SnapshotRestore(t *testing.T) {
	s := NewStatsStore(time.UTC)
	s.Record("Alice", at(1, 10, 0))
	s.Record("Bob", at(1, 11, 0))
	s.Record("Alice", at(1, 12, 0))

	snap := s.Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)

	r := NewStatsStore(time.UTC)
	r.Record("Zed", at(1, 1, 0))
	r.Restore(snap)

	assert.Equal(t, s.View(10, 5), r.View(10, 5))
	assert.Equal(t, 2, r.TodayCount("Alice", at(1, 13, 0)))
	_, ok := r.Actor("Zed")
	assert.False(t, ok)

	alice, _ := r.Actor("Alice")
	assert.Equal(t, []time.Time{at(1, 10, 0), at(1, 12, 0)}, alice.History())
}

func TestStatsStore_RestoreDropsBadSamples(t *testing.T) {
	s := NewStatsStore(time.UTC)
	s.Restore(&StatsSnapshot{
		Version:     SnapshotVersion,
		TotalCount:  2,
		Actors:      map[string]*ActorSnapshot{"": {TotalCount: 1}, "Ghost": nil, "Alice": {TotalCount: 2}},
		HourSamples: []int{-1, 3600, 24 * 3600},
	})

	assert.Equal(t, 1, s.ActorCount())
	assert.Equal(t, []int{1}, s.PeakHours(5))

	s.Restore(nil)
	assert.Equal(t, 0, s.TotalCount())
	assert.Equal(t, 0, s.ActorCount())
}

func TestStatsStore_ConcurrentRecord(t *testing.T) {
	s := NewStatsStore(time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := fmt.Sprintf("actor_%d", i)
			for j := 0; j < 100; j++ {
				s.Record(actor, at(1, j%24, 0))
				_ = s.TopActors(3)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1000, s.TotalCount())
	assert.Equal(t, 10, s.ActorCount())
}
