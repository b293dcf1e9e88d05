package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type ShoutoutConfig struct {
	CooldownSeconds  int `yaml:"cooldownSeconds" mapstructure:"cooldownSeconds" validate:"int|min:0"`
	MaxMessageLength int `yaml:"maxMessageLength" mapstructure:"maxMessageLength" validate:"required|int|min:1|max:1000"`
	MaxEventsPerDay  int `yaml:"maxEventsPerDay" mapstructure:"maxEventsPerDay" validate:"required|int|min:1"`
}

type LogConfig struct {
	Path           string `yaml:"path" mapstructure:"path" validate:"required"`
	Format         string `yaml:"format" mapstructure:"format" validate:"required|in:text,json,csv"`
	RotationSizeMB int    `yaml:"rotationSizeMB" mapstructure:"rotationSizeMB" validate:"required|int|min:1"`
	MaxLogFiles    int    `yaml:"maxLogFiles" mapstructure:"maxLogFiles" validate:"required|int|min:1"`
	Timezone       string `yaml:"timezone" mapstructure:"timezone"`
}

// RotationBytes is the live-file size at which the next append rotates first.
func (l LogConfig) RotationBytes() int64 {
	return int64(l.RotationSizeMB) * 1024 * 1024
}

// Location resolves Timezone; empty and "Local" both mean the process zone.
func (l LogConfig) Location() (*time.Location, error) {
	if l.Timezone == "" || l.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(l.Timezone)
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" mapstructure:"filePath" validate:"required"`
	SaveInterval time.Duration `yaml:"saveInterval" mapstructure:"saveInterval" validate:"required|min:1"`
}

type ReminderConfig struct {
	IntervalMinutes int    `yaml:"intervalMinutes" mapstructure:"intervalMinutes" validate:"int|min:0"`
	Message         string `yaml:"message" mapstructure:"message"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Size    int  `yaml:"size" mapstructure:"size" validate:"int|min:1|max:1000"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr    string `yaml:"addr" mapstructure:"addr"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Shoutout    ShoutoutConfig `yaml:"shoutout" mapstructure:"shoutout"`
	Log         LogConfig      `yaml:"log" mapstructure:"log"`
	Persistence Persistence    `yaml:"persistence" mapstructure:"persistence"`
	Reminder    ReminderConfig `yaml:"reminder" mapstructure:"reminder"`
	Logger      LoggerConfig   `yaml:"logger" mapstructure:"logger"`
	Cache       CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
}
