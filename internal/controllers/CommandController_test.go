package controllers

import (
	"errors"
	"path/filepath"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func settingsConfig(t *testing.T) *structures.Config {
	dir := t.TempDir()
	return &structures.Config{
		Shoutout: structures.ShoutoutConfig{CooldownSeconds: 60, MaxMessageLength: 200, MaxEventsPerDay: 10},
		Log: structures.LogConfig{
			Path:           filepath.Join(dir, "shoutouts.log"),
			Format:         "text",
			RotationSizeMB: 10,
			MaxLogFiles:    5,
		},
		Persistence: structures.Persistence{FilePath: filepath.Join(dir, "stats.dat"), SaveInterval: time.Minute},
		Reminder:    structures.ReminderConfig{IntervalMinutes: 60, Message: "Let us know you were here! /shoutout"},
		Logger:      structures.LoggerConfig{Level: "info", Mode: 0644, Dir: dir},
		Cache:       structures.CacheConfig{Enabled: true, Size: 1},
	}
}

func newCommandController(t *testing.T, svc *mockService) (*CommandController, providers.SettingsProviderInterface) {
	settings := providers.NewSettingsProvider(settingsConfig(t))
	return NewCommandController(svc, settings, &mockLogger{}), settings
}

func TestHandle_IgnoresPlainChat(t *testing.T) {
	svc := &mockService{}
	cc, _ := newCommandController(t, svc)

	assert.Equal(t, Reply{}, cc.Handle("Alice", "hello everyone", now))
	assert.Empty(t, svc.submitCalls)
}

func TestHandle_UnknownCommand(t *testing.T) {
	cc, _ := newCommandController(t, &mockService{})

	r := cc.Handle("Alice", "/dance", now)
	assert.Equal(t, []string{"Unknown command: /dance"}, r.Private)
}

func TestHandle_Leave(t *testing.T) {
	svc := &mockService{}
	cc, _ := newCommandController(t, svc)

	r := cc.Handle("Alice", "/leave", now)
	assert.Equal(t, Reply{}, r)
	assert.Equal(t, []string{"Alice"}, svc.forgotten)
}

func TestShoutout_Accepted(t *testing.T) {
	svc := &mockService{result: models.SubmitResult{
		Status: models.StatusAccepted,
		Entry:  models.Event{Timestamp: now, Actor: "Alice", Text: "hello world"},
	}}
	cc, _ := newCommandController(t, svc)

	r := cc.Handle("Alice", "/shoutout   hello world", now)

	require.Len(t, svc.submitCalls, 1)
	assert.Equal(t, submitCall{Actor: "Alice", Text: "hello world", Now: now}, svc.submitCalls[0])
	assert.Equal(t, []string{"Alice: hello world"}, r.Broadcast)
	assert.Equal(t, []string{"Your shoutout has been logged!"}, r.Private)
}

func TestShoutout_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		result models.SubmitResult
		want   string
	}{
		{"cooldown rounds up", models.SubmitResult{Status: models.StatusRejectedCooldown, Wait: 29500 * time.Millisecond}, "Please wait 30 seconds before sending another shoutout."},
		{"quota", models.SubmitResult{Status: models.StatusRejectedQuota}, "You have reached the daily limit of 10 shoutouts. Try again tomorrow."},
		{"empty text", models.SubmitResult{Status: models.StatusRejectedInvalid, Reason: models.ErrEmptyText}, "Usage: /shoutout <message>"},
		{"bad actor", models.SubmitResult{Status: models.StatusRejectedInvalid, Reason: models.ErrInvalidActor}, "Your name cannot be used for shoutouts."},
		{"failed", models.SubmitResult{Status: models.StatusFailed, Err: errors.New("disk full")}, "There was an error processing your shoutout."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{result: tt.result, limits: models.Limits{MaxEventsPerDay: 10}}
			cc, _ := newCommandController(t, svc)

			r := cc.Shoutout("Alice", "hi", now)
			assert.Equal(t, []string{tt.want}, r.Private)
			assert.Empty(t, r.Broadcast)
		})
	}
}

func TestShoutout_MissingMessage(t *testing.T) {
	svc := &mockService{}
	cc, _ := newCommandController(t, svc)

	r := cc.Handle("Alice", "/shoutout", now)
	assert.Equal(t, []string{"Usage: /shoutout <message>"}, r.Private)
	assert.Empty(t, svc.submitCalls)
}

func TestView_DefaultAndBounds(t *testing.T) {
	svc := &mockService{recent: []string{"[2024-03-01 12:00:00] Alice: hi", "[2024-03-01 12:01:00] Bob: yo"}}
	cc, _ := newCommandController(t, svc)

	r := cc.Handle("Carol", "/shoutouts", now)
	assert.Equal(t, []string{
		"=== Last 2 Shoutout(s) ===",
		"[2024-03-01 12:00:00] Alice: hi",
		"[2024-03-01 12:01:00] Bob: yo",
	}, r.Private)

	cc.Handle("Carol", "/shoutouts 50", now)
	assert.Equal(t, []int{10, 50}, svc.recentN)

	r = cc.Handle("Carol", "/shoutouts 51", now)
	assert.Equal(t, []string{"Number of shoutouts must be between 1 and 50."}, r.Private)

	r = cc.Handle("Carol", "/shoutouts lots", now)
	assert.Equal(t, []string{"Invalid number format. Usage: /shoutouts [number]"}, r.Private)
	assert.Len(t, svc.recentN, 2)
}

func TestView_EmptyAndError(t *testing.T) {
	cc, _ := newCommandController(t, &mockService{})
	assert.Equal(t, []string{"No shoutouts found."}, cc.View("").Private)

	cc, _ = newCommandController(t, &mockService{recentErr: errors.New("boom")})
	assert.Equal(t, []string{"An error occurred while reading shoutouts."}, cc.View("").Private)
}

func TestAdmin_Stats(t *testing.T) {
	svc := &mockService{view: models.StatsView{
		TotalCount: 12345,
		TopActors:  []models.ActorCount{{Actor: "Alice", Count: 1200}, {Actor: "Bob", Count: 3}},
		PeakHours:  []int{18, 9},
	}}
	cc, _ := newCommandController(t, svc)

	r := cc.Handle("Admin", "/shoutoutadmin stats", now)
	assert.Equal(t, []string{
		"=== Shoutout Statistics ===",
		"Total Shoutouts: 12,345",
		"Top Users:",
		"- Alice: 1,200",
		"- Bob: 3",
		"Peak Hours:",
		"- 18:00",
		"- 09:00",
	}, r.Private)
}

func TestAdmin_ConfigList(t *testing.T) {
	cc, _ := newCommandController(t, &mockService{})

	r := cc.Admin("config")
	assert.Equal(t, []string{
		"=== Current Configuration ===",
		"CacheSize: 1",
		"CooldownSeconds: 60",
		"MaxMessageLength: 200",
		"MaxShoutoutsPerDay: 10",
		"ReminderIntervalMinutes: 60",
		"ReminderMessage: Let us know you were here! /shoutout",
	}, r.Private)
}

func TestAdmin_ConfigSet(t *testing.T) {
	cc, settings := newCommandController(t, &mockService{})

	r := cc.Admin("config reminderMessage Welcome back, friends")
	assert.Equal(t, []string{"Successfully updated reminderMessage to Welcome back, friends"}, r.Private)
	assert.Equal(t, "Welcome back, friends", settings.Current().Reminder.Message)

	r = cc.Admin("config CooldownSeconds -5")
	require.Len(t, r.Private, 1)
	assert.Contains(t, r.Private[0], "Invalid value for CooldownSeconds")
	assert.Equal(t, 60, settings.Current().Shoutout.CooldownSeconds)

	r = cc.Admin("config Colour red")
	assert.Equal(t, []string{"Invalid setting: Colour"}, r.Private)

	r = cc.Admin("config CooldownSeconds")
	assert.Equal(t, []string{"Please provide a value for the setting."}, r.Private)
}

func TestAdmin_ClearAndUsage(t *testing.T) {
	svc := &mockService{}
	cc, _ := newCommandController(t, svc)

	assert.Equal(t, []string{"Shoutout cache cleared."}, cc.Admin("clear").Private)
	assert.Equal(t, 1, svc.cleared)

	assert.Equal(t, []string{"Usage: /shoutoutadmin <stats|config|clear>"}, cc.Admin("").Private)
	assert.Equal(t, []string{"Invalid command. Use stats, config, or clear."}, cc.Admin("reboot").Private)
}
