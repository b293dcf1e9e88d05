package statistic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/statistic/interfaces"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var ErrUnknownSnapshot = errors.New("unrecognized stats file")

type FileManager struct {
	snapshotter interfaces.SnapshotterInterface
	compressor  interfaces.CompressorInterface
	metrics     providers.MetricsProviderInterface
	logger      providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, snapshotter interfaces.SnapshotterInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor:  compressor,
		snapshotter: snapshotter,
		metrics:     metrics,
		logger:      logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	jsonData, err := json.Marshal(f.snapshotter.Snapshot())
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the snapshotter from fileName. A missing file is not
// an error. Files written by the first plugin release are plain JSON and are
// migrated on the fly.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	payload, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Stats file %s is not compressed, reading as plain JSON", fileName)
		payload = data
	}

	var snap models.StatsSnapshot
	if err := json.Unmarshal(payload, &snap); err == nil && snap.Version >= 1 && snap.Actors != nil {
		f.snapshotter.Restore(&snap)
		return nil
	}

	f.logger.Warnf(providers.TypeApp, "Inconsistent stats file found, try to migrate from legacy format")
	var legacy models.LegacyStats
	if err := json.Unmarshal(payload, &legacy); err != nil || legacy.PlayerStatistics == nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		if err == nil {
			err = ErrUnknownSnapshot
		}
		return fmt.Errorf("load %s: %w", fileName, err)
	}

	f.snapshotter.Restore(migrateLegacy(&legacy, f.snapshotter.Location()))
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful: %d actors", len(legacy.PlayerStatistics))
	return nil
}

// migrateLegacy converts the first-release layout. Zone-less timestamps are
// read in loc; unparseable values are dropped rather than failing the load.
func migrateLegacy(legacy *models.LegacyStats, loc *time.Location) *models.StatsSnapshot {
	snap := &models.StatsSnapshot{
		Version:    models.SnapshotVersion,
		TotalCount: legacy.TotalShoutouts,
		Actors:     make(map[string]*models.ActorSnapshot, len(legacy.PlayerStatistics)),
	}

	sum := 0
	for actor, ps := range legacy.PlayerStatistics {
		if ps == nil || actor == "" {
			continue
		}
		as := &models.ActorSnapshot{
			TotalCount: ps.TotalShoutouts,
			CountToday: ps.ShoutoutsToday,
		}
		if ts, err := models.ParseLooseTime(ps.LastDayReset, loc); err == nil {
			as.DayAnchor = ts
		}
		if ts, err := models.ParseLooseTime(ps.LastShoutout, loc); err == nil {
			as.LastEventAt = ts
		}
		for _, raw := range ps.History {
			if ts, err := models.ParseLooseTime(raw, loc); err == nil {
				as.History = append(as.History, ts)
			}
		}
		sum += ps.TotalShoutouts
		snap.Actors[actor] = as
	}
	if snap.TotalCount == 0 {
		snap.TotalCount = sum
	}

	for _, raw := range legacy.PeakTimes {
		if sec, ok := parseTimeOfDay(raw); ok {
			snap.HourSamples = append(snap.HourSamples, sec)
		}
	}
	if ts, err := models.ParseLooseTime(legacy.LastUpdate, loc); err == nil {
		snap.LastUpdate = ts
	}
	return snap
}

// parseTimeOfDay reads "[d.]HH:MM:SS[.fffffff]" and returns seconds since midnight.
func parseTimeOfDay(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return 0, false
	}
	if dot := strings.IndexByte(raw[:colon], '.'); dot >= 0 {
		raw = raw[dot+1:]
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return 0, false
	}
	secPart, _, _ := strings.Cut(parts[2], ".")

	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	s, errS := strconv.Atoi(secPart)
	if errH != nil || errM != nil || errS != nil || h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, false
	}
	return h*3600 + m*60 + s, true
}
