package providers

import (
	"errors"
	"fmt"
	"shoutd/internal/structures"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid value")
)

type SettingKind string

const (
	KindInt    SettingKind = "int"
	KindString SettingKind = "string"
)

type setting struct {
	name  string
	kind  SettingKind
	get   func(c *structures.Config) string
	apply func(c *structures.Config, raw string) error
}

// positiveIntSetting is an intSetting that rejects values below one. The
// validator skips zero values, so the floor is checked here.
func positiveIntSetting(name string, field func(c *structures.Config) *int) setting {
	st := intSetting(name, field)
	apply := st.apply
	st.apply = func(c *structures.Config, raw string) error {
		if err := apply(c, raw); err != nil {
			return err
		}
		if *field(c) < 1 {
			return errors.New("must be at least 1")
		}
		return nil
	}
	return st
}

func intSetting(name string, field func(c *structures.Config) *int) setting {
	return setting{
		name: name,
		kind: KindInt,
		get: func(c *structures.Config) string {
			return strconv.Itoa(*field(c))
		},
		apply: func(c *structures.Config, raw string) error {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("expected %s", KindInt)
			}
			*field(c) = n
			return nil
		},
	}
}

func stringSetting(name string, field func(c *structures.Config) *string) setting {
	return setting{
		name: name,
		kind: KindString,
		get: func(c *structures.Config) string {
			return *field(c)
		},
		apply: func(c *structures.Config, raw string) error {
			*field(c) = raw
			return nil
		},
	}
}

var settingTable = []setting{
	positiveIntSetting("CacheSize", func(c *structures.Config) *int { return &c.Cache.Size }),
	intSetting("CooldownSeconds", func(c *structures.Config) *int { return &c.Shoutout.CooldownSeconds }),
	intSetting("MaxMessageLength", func(c *structures.Config) *int { return &c.Shoutout.MaxMessageLength }),
	intSetting("MaxShoutoutsPerDay", func(c *structures.Config) *int { return &c.Shoutout.MaxEventsPerDay }),
	intSetting("ReminderIntervalMinutes", func(c *structures.Config) *int { return &c.Reminder.IntervalMinutes }),
	stringSetting("ReminderMessage", func(c *structures.Config) *string { return &c.Reminder.Message }),
}

type SettingsProviderInterface interface {
	Get(name string) (string, error)
	Set(name, raw string) error
	Names() []string
	Current() structures.Config
	Subscribe(fn func(conf structures.Config))
}

// Settings maps setting names to typed setters. Names are case-insensitive.
// It owns a private copy of the configuration taken at construction; the
// startup *Config is never written. Every change is validated against the
// whole copy before it is committed; listeners get a value copy after the
// commit, outside the lock.
type Settings struct {
	mu        sync.Mutex
	conf      structures.Config
	byName    map[string]setting
	listeners []func(conf structures.Config)
}

func NewSettingsProvider(conf *structures.Config) SettingsProviderInterface {
	byName := make(map[string]setting, len(settingTable))
	for _, s := range settingTable {
		byName[strings.ToLower(s.name)] = s
	}
	return &Settings{conf: *conf, byName: byName}
}

func (s *Settings) lookup(name string) (setting, error) {
	st, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return setting{}, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return st, nil
}

func (s *Settings) Get(name string) (string, error) {
	st, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return st.get(&s.conf), nil
}

func (s *Settings) Set(name, raw string) error {
	st, err := s.lookup(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	candidate := s.conf
	if err := st.apply(&candidate, raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w for %s: %s", ErrInvalidValue, st.name, err)
	}
	if err := NewCnfValidator(&candidate).Validate(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w for %s: %s", ErrInvalidValue, st.name, err)
	}
	s.conf = candidate
	listeners := append([]func(structures.Config){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(candidate)
	}
	return nil
}

// Current returns a copy of the committed configuration.
func (s *Settings) Current() structures.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf
}

func (s *Settings) Names() []string {
	names := make([]string, 0, len(settingTable))
	for _, st := range settingTable {
		names = append(names, st.name)
	}
	sort.Strings(names)
	return names
}

func (s *Settings) Subscribe(fn func(conf structures.Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
