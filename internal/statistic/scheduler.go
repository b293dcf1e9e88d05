package statistic

import (
	"shoutd/internal/providers"
	"shoutd/internal/statistic/interfaces"
	"shoutd/internal/structures"
	"sync"
	"time"
)

// Scheduler runs the periodic stats save and the reminder broadcast.
// Interval and path are fixed at construction; runtime settings only reach
// the reminder, through UpdateReminder.
type Scheduler struct {
	saveEvery   time.Duration
	statsAt     string
	logger      providers.Logger
	persister   interfaces.PersisterInterface
	broadcaster interfaces.Broadcaster
	opsMu       sync.Mutex

	reminderMu      sync.Mutex
	reminderEvery   time.Duration
	reminderMessage string
	reminderUnit    time.Duration
	reset           chan struct{}

	stop    chan struct{}
	wg      sync.WaitGroup
	running bool
}

func (s *Scheduler) Init() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})

	s.wg.Add(2)
	go s.saveLoop(s.saveEvery)
	go s.reminderLoop()
}

func (s *Scheduler) saveLoop(interval time.Duration) {
	defer s.wg.Done()
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.save(); err != nil {
				continue
			}
			s.logger.Debugf(providers.TypeApp, "Persisted stats to file %s", s.statsAt)
		}
	}
}

// reminderLoop broadcasts the reminder every interval. A zero interval
// parks the loop until UpdateReminder enables it.
func (s *Scheduler) reminderLoop() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	arm := func() {
		if every, _ := s.reminder(); every > 0 {
			timer.Reset(every)
		}
	}
	arm()

	for {
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-s.reset:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			arm()
		case <-timer.C:
			if _, msg := s.reminder(); msg != "" {
				s.broadcaster.Broadcast(msg)
			}
			arm()
		}
	}
}

func (s *Scheduler) reminder() (time.Duration, string) {
	s.reminderMu.Lock()
	defer s.reminderMu.Unlock()
	return s.reminderEvery, s.reminderMessage
}

// UpdateReminder applies a new reminder interval (in minutes) and message.
// The next broadcast is scheduled a full interval after the change.
func (s *Scheduler) UpdateReminder(intervalMinutes int, message string) {
	s.reminderMu.Lock()
	s.reminderEvery = time.Duration(intervalMinutes) * s.reminderUnit
	s.reminderMessage = message
	s.reminderMu.Unlock()

	select {
	case s.reset <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Stop() {
	s.opsMu.Lock()
	if !s.running {
		s.opsMu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.opsMu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) Restore() error {
	return s.persister.Load()
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting stats to file...")
	return s.save()
}

func (s *Scheduler) save() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.persister.Save(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, persister interfaces.PersisterInterface, broadcaster interfaces.Broadcaster, settings providers.SettingsProviderInterface) *Scheduler {
	s := &Scheduler{
		saveEvery:    config.Persistence.SaveInterval,
		statsAt:      config.Persistence.FilePath,
		logger:       logger,
		persister:    persister,
		broadcaster:  broadcaster,
		reminderUnit: time.Minute,
		reset:        make(chan struct{}, 1),
	}
	s.reminderEvery = time.Duration(config.Reminder.IntervalMinutes) * s.reminderUnit
	s.reminderMessage = config.Reminder.Message

	settings.Subscribe(func(conf structures.Config) {
		s.UpdateReminder(conf.Reminder.IntervalMinutes, conf.Reminder.Message)
	})
	return s
}

var _ interfaces.LifecycleInterface = (*Scheduler)(nil)
