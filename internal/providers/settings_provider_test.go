package providers

import (
	"shoutd/internal/structures"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_GetIsCaseInsensitive(t *testing.T) {
	s := NewSettingsProvider(validConfig())

	v, err := s.Get("cooldownseconds")
	require.NoError(t, err)
	assert.Equal(t, "60", v)

	v, err = s.Get("ReminderMessage")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestSettings_SetInt(t *testing.T) {
	conf := validConfig()
	s := NewSettingsProvider(conf)

	require.NoError(t, s.Set("CooldownSeconds", "30"))
	assert.Equal(t, 30, s.Current().Shoutout.CooldownSeconds)

	require.NoError(t, s.Set("maxshoutoutsperday", " 4 "))
	assert.Equal(t, 4, s.Current().Shoutout.MaxEventsPerDay)

	// the startup config is never written
	assert.Equal(t, 60, conf.Shoutout.CooldownSeconds)
	assert.Equal(t, 10, conf.Shoutout.MaxEventsPerDay)
}

func TestSettings_SetString(t *testing.T) {
	conf := validConfig()
	s := NewSettingsProvider(conf)

	require.NoError(t, s.Set("ReminderMessage", "say hi with /shoutout"))
	assert.Equal(t, "say hi with /shoutout", s.Current().Reminder.Message)
	assert.Equal(t, "hello", conf.Reminder.Message)
}

func TestSettings_UnknownSetting(t *testing.T) {
	s := NewSettingsProvider(validConfig())
	err := s.Set("EnableSounds", "true")
	assert.ErrorIs(t, err, ErrUnknownSetting)

	_, err = s.Get("LogFilePath")
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

func TestSettings_ParseFailureLeavesConfig(t *testing.T) {
	s := NewSettingsProvider(validConfig())

	err := s.Set("CooldownSeconds", "soon")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 60, s.Current().Shoutout.CooldownSeconds)
}

func TestSettings_ValidationFailureLeavesConfig(t *testing.T) {
	s := NewSettingsProvider(validConfig())

	assert.ErrorIs(t, s.Set("MaxMessageLength", "5000"), ErrInvalidValue)
	assert.ErrorIs(t, s.Set("CooldownSeconds", "-5"), ErrInvalidValue)
	assert.ErrorIs(t, s.Set("MaxShoutoutsPerDay", "0"), ErrInvalidValue)

	assert.Equal(t, 200, s.Current().Shoutout.MaxMessageLength)
	assert.Equal(t, 60, s.Current().Shoutout.CooldownSeconds)
}

func TestSettings_ListenersReceiveCommittedConfig(t *testing.T) {
	s := NewSettingsProvider(validConfig())

	var got []structures.Config
	s.Subscribe(func(conf structures.Config) {
		got = append(got, conf)
	})

	require.NoError(t, s.Set("ReminderIntervalMinutes", "5"))
	assert.Error(t, s.Set("ReminderIntervalMinutes", "-1"))

	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Reminder.IntervalMinutes)
}

func TestSettings_Names(t *testing.T) {
	s := NewSettingsProvider(validConfig())
	names := s.Names()
	assert.Contains(t, names, "CooldownSeconds")
	assert.Contains(t, names, "MaxShoutoutsPerDay")
	assert.Contains(t, names, "CacheSize")
	assert.IsIncreasing(t, names)
}

func TestSettings_CacheSizeBounds(t *testing.T) {
	s := NewSettingsProvider(validConfig())

	require.NoError(t, s.Set("cachesize", "16"))
	assert.Equal(t, 16, s.Current().Cache.Size)

	assert.ErrorIs(t, s.Set("CacheSize", "0"), ErrInvalidValue)
	assert.ErrorIs(t, s.Set("CacheSize", "1001"), ErrInvalidValue)
	assert.Equal(t, 16, s.Current().Cache.Size)
}

func TestSettings_ConcurrentSetAndRead(t *testing.T) {
	conf := validConfig()
	s := NewSettingsProvider(conf)
	s.Subscribe(func(c structures.Config) { _ = c.Persistence.FilePath })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = s.Set("CooldownSeconds", strconv.Itoa(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = conf.Persistence.FilePath
			_, _ = s.Get("CooldownSeconds")
			_ = s.Current()
		}
	}()
	wg.Wait()

	assert.Equal(t, 199, s.Current().Shoutout.CooldownSeconds)
	assert.Equal(t, 60, conf.Shoutout.CooldownSeconds)
}
