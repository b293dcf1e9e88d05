package providers

import (
	"fmt"
	"path/filepath"
	"shoutd/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AppName = "ShoutoutDaemon"

func setDefaults(v *viper.Viper) {
	v.SetDefault("shoutout.cooldownSeconds", 60)
	v.SetDefault("shoutout.maxMessageLength", 200)
	v.SetDefault("shoutout.maxEventsPerDay", 10)
	v.SetDefault("log.path", "shoutouts.log")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.rotationSizeMB", 10)
	v.SetDefault("log.maxLogFiles", 5)
	v.SetDefault("log.timezone", "Local")
	v.SetDefault("persistence.filePath", "shoutout-stats.dat")
	v.SetDefault("persistence.saveInterval", 5*time.Minute)
	v.SetDefault("reminder.intervalMinutes", 60)
	v.SetDefault("reminder.message", "Let us know you were here! /shoutout")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 1)
	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "SHOUTD_LOG_LEVEL")
	v.BindEnv("shoutout.cooldownSeconds", "SHOUTD_COOLDOWN_SECONDS")
	v.BindEnv("shoutout.maxEventsPerDay", "SHOUTD_MAX_EVENTS_PER_DAY")
	v.BindEnv("log.path", "SHOUTD_LOG_PATH")
	v.BindEnv("log.format", "SHOUTD_LOG_FORMAT")

	if flags.ConfigPath != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Log.Format = strings.ToLower(conf.Log.Format)
	if conf.Log.Format == "txt" {
		conf.Log.Format = "text"
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
