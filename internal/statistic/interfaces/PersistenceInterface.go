package interfaces

import (
	"shoutd/internal/models"
	"time"
)

// SnapshotterInterface is the whole-state view FileManager persists.
type SnapshotterInterface interface {
	Snapshot() *models.StatsSnapshot
	Restore(snap *models.StatsSnapshot)
	Location() *time.Location
}

// PersisterInterface is the save/load boundary driven by the lifecycle layer.
type PersisterInterface interface {
	Save() error
	Load() error
}

// Broadcaster delivers a message to every connected session.
type Broadcaster interface {
	Broadcast(message string)
}
