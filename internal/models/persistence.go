package models

import "time"

const SnapshotVersion = 1

// ActorSnapshot is the persisted form of one actor's counters.
type ActorSnapshot struct {
	TotalCount  int         `json:"total_count"`
	CountToday  int         `json:"count_today"`
	DayAnchor   time.Time   `json:"day_anchor"`
	LastEventAt time.Time   `json:"last_event_at"`
	History     []time.Time `json:"history"`
}

// StatsSnapshot is the whole-state persistence envelope of a StatsStore.
// HourSamples are seconds since local midnight, oldest first.
type StatsSnapshot struct {
	Version     int                       `json:"version"`
	TotalCount  int                       `json:"total_count"`
	Actors      map[string]*ActorSnapshot `json:"actors"`
	HourSamples []int                     `json:"hour_samples"`
	LastUpdate  time.Time                 `json:"last_update"`
}

// LegacyPlayerStats is one entry of the stats file written by the first
// plugin release. Timestamps carry no zone.
type LegacyPlayerStats struct {
	TotalShoutouts int      `json:"TotalShoutouts"`
	LastShoutout   string   `json:"LastShoutout"`
	ShoutoutsToday int      `json:"ShoutoutsToday"`
	LastDayReset   string   `json:"LastDayReset"`
	History        []string `json:"ShoutoutHistory"`
}

// LegacyStats is the stats file layout of the first plugin release.
// PeakTimes hold "HH:MM:SS[.fffffff]" time-of-day values.
type LegacyStats struct {
	PlayerStatistics map[string]*LegacyPlayerStats `json:"PlayerStatistics"`
	PeakTimes        []string                      `json:"PeakTimes"`
	LastUpdate       string                        `json:"LastUpdate"`
	TotalShoutouts   int                           `json:"TotalShoutouts"`
}
