package services

import (
	"fmt"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/statistic"
	"shoutd/internal/structures"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

type ShoutoutServiceInterface interface {
	Submit(actor, rawText string, now time.Time) models.SubmitResult
	Recent(n int) ([]string, error)
	Stats() models.StatsView
	Forget(actor string)
	Save() error
	Load() error
	Limits() models.Limits
	SetLimits(limits models.Limits)
	ClearCache()
	TrackedActors() int
}

// ShoutoutService admits, records and logs shoutouts. Submissions are
// serialized by submitMu; reads only take the short locks of the store and
// the log.
type ShoutoutService struct {
	submitMu sync.Mutex
	cooldown *models.CooldownTracker
	stats    *models.StatsStore
	journal  *statistic.RotatingLog
	files    *statistic.FileManager
	cache    providers.CacheProviderInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	statsAt  string

	limitsMu sync.RWMutex
	limits   models.Limits
}

func LimitsFromConfig(conf structures.Config) models.Limits {
	return models.Limits{
		Cooldown:         time.Duration(conf.Shoutout.CooldownSeconds) * time.Second,
		MaxMessageLength: conf.Shoutout.MaxMessageLength,
		MaxEventsPerDay:  conf.Shoutout.MaxEventsPerDay,
	}
}

// NewStatsStore builds the store in the configured log timezone.
func NewStatsStore(conf *structures.Config) (*models.StatsStore, error) {
	loc, err := conf.Log.Location()
	if err != nil {
		return nil, fmt.Errorf("log timezone: %w", err)
	}
	return models.NewStatsStore(loc), nil
}

func NewShoutoutService(
	conf *structures.Config,
	stats *models.StatsStore,
	journal *statistic.RotatingLog,
	files *statistic.FileManager,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	settings providers.SettingsProviderInterface,
	logger providers.Logger,
) *ShoutoutService {
	s := &ShoutoutService{
		cooldown: models.NewCooldownTracker(),
		stats:    stats,
		journal:  journal,
		files:    files,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		statsAt:  conf.Persistence.FilePath,
		limits:   LimitsFromConfig(*conf),
	}
	var cacheSize atomic.Int64
	cacheSize.Store(int64(conf.Cache.Size))
	settings.Subscribe(func(c structures.Config) {
		s.SetLimits(LimitsFromConfig(c))
		if prev := cacheSize.Swap(int64(c.Cache.Size)); prev != int64(c.Cache.Size) {
			s.cache.Resize(c.Cache.Size)
		}
	})
	return s
}

func (s *ShoutoutService) Limits() models.Limits {
	s.limitsMu.RLock()
	defer s.limitsMu.RUnlock()
	return s.limits
}

// SetLimits applies to submissions that start after the call.
func (s *ShoutoutService) SetLimits(limits models.Limits) {
	s.limitsMu.Lock()
	defer s.limitsMu.Unlock()
	s.limits = limits
}

func (s *ShoutoutService) Submit(actor, rawText string, now time.Time) models.SubmitResult {
	res := s.submit(actor, rawText, now.UTC())
	s.metrics.IncSubmissions(res.Status.String())
	return res
}

func (s *ShoutoutService) submit(actor, rawText string, now time.Time) models.SubmitResult {
	limits := s.Limits()

	if err := models.ValidateActor(actor); err != nil {
		return models.SubmitResult{Status: models.StatusRejectedInvalid, Reason: err}
	}
	text := models.Sanitize(rawText, limits.MaxMessageLength)
	if text == "" {
		return models.SubmitResult{Status: models.StatusRejectedInvalid, Reason: models.ErrEmptyText}
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	today := s.stats.TodayCount(actor, now)
	decision := s.cooldown.CheckAndReserve(actor, now, limits.Cooldown, limits.MaxEventsPerDay, today)
	if !decision.Admitted {
		switch decision.Reason {
		case models.RejectQuota:
			s.logger.Debugf(providers.TypeSubmit, "Rejected %s: daily cap %d reached", actor, limits.MaxEventsPerDay)
			return models.SubmitResult{Status: models.StatusRejectedQuota}
		default:
			s.logger.Debugf(providers.TypeSubmit, "Rejected %s: cooldown, %s left", actor, decision.Wait)
			return models.SubmitResult{Status: models.StatusRejectedCooldown, Wait: decision.Wait}
		}
	}

	entry := models.Event{Timestamp: now, Actor: actor, Text: text}
	s.stats.Record(actor, now)

	start := time.Now()
	err := s.journal.Append(entry)
	s.metrics.ObserveAppendDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeSubmit, "Shoutout from %s counted but not logged: %s", actor, err)
		return models.SubmitResult{Status: models.StatusFailed, Entry: entry, Err: err}
	}

	s.logger.Debugf(providers.TypeSubmit, "Accepted shoutout from %s", actor)
	return models.SubmitResult{Status: models.StatusAccepted, Entry: entry}
}

// Recent returns up to n entries of the live log rendered for display,
// newest last. Lines that do not decode are skipped.
func (s *ShoutoutService) Recent(n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	key := fmt.Sprintf("recent:%d:%d", n, s.journal.Generation())
	if cached, ok := s.cache.Get(key); ok {
		var lines []string
		if err := json.Unmarshal(cached, &lines); err == nil {
			return lines, nil
		}
	}

	raw, err := s.journal.ReadTail(n)
	if err != nil {
		s.logger.Errorf(providers.TypeRead, "Error reading shoutout log: %s", err)
		return nil, err
	}

	codec := s.journal.Codec()
	loc := s.stats.Location()
	lines := make([]string, 0, len(raw))
	malformed := 0
	for _, line := range raw {
		e, err := codec.Decode(line)
		if err != nil {
			malformed++
			s.logger.Debugf(providers.TypeRead, "Skipping malformed log line: %s", err)
			continue
		}
		lines = append(lines, e.Display(loc))
	}
	s.metrics.AddMalformedLines(malformed)

	if data, err := json.Marshal(lines); err == nil {
		s.cache.Set(key, data)
	}
	return lines, nil
}

func (s *ShoutoutService) Stats() models.StatsView {
	return s.stats.View(models.DefaultTopActors, models.DefaultPeakHours)
}

// Forget drops the actor's cooldown record; stats are kept.
func (s *ShoutoutService) Forget(actor string) {
	s.cooldown.Forget(actor)
}

func (s *ShoutoutService) TrackedActors() int {
	return s.cooldown.Len()
}

func (s *ShoutoutService) ClearCache() {
	s.cache.Clear()
}

// Save writes the stats snapshot.
func (s *ShoutoutService) Save() error {
	if err := s.files.SaveToFile(s.statsAt); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeApp, "Saved stats to %s", s.statsAt)
	return nil
}

// Load restores the stats snapshot and re-reads the live log size.
func (s *ShoutoutService) Load() error {
	if err := s.files.LoadFromFile(s.statsAt); err != nil {
		return err
	}
	if err := s.journal.Refresh(); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeApp, "Loaded stats: %d shoutouts from %d actors", s.stats.TotalCount(), s.stats.ActorCount())
	return nil
}
