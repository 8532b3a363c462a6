package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the CLI needs. Values come from the environment
// (SALON_* keys) with sensible defaults; the booking directory's base URL is
// deployment glue, not part of the domain.
type Config struct {
	APIBaseURL         string   `mapstructure:"SALON_API_URL"`
	AuthToken          string   `mapstructure:"SALON_AUTH_TOKEN"`
	HTTPTimeoutSeconds int      `mapstructure:"SALON_HTTP_TIMEOUT_SECONDS"`
	TickSeconds        int      `mapstructure:"SALON_TICK_SECONDS"`
	StartHour          int      `mapstructure:"SALON_SLOT_START_HOUR"`
	EndHour            int      `mapstructure:"SALON_SLOT_END_HOUR"`
	IntervalMinutes    int      `mapstructure:"SALON_SLOT_INTERVAL_MINUTES"`
	Services           []string `mapstructure:"SALON_SERVICES"`
	LogLevel           string   `mapstructure:"SALON_LOG_LEVEL"`
	Env                string   `mapstructure:"SALON_ENV"`
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SALON_API_URL", "http://localhost:5000")
	v.SetDefault("SALON_AUTH_TOKEN", "")
	v.SetDefault("SALON_HTTP_TIMEOUT_SECONDS", 10)
	v.SetDefault("SALON_TICK_SECONDS", 60)
	v.SetDefault("SALON_SLOT_START_HOUR", 9)
	v.SetDefault("SALON_SLOT_END_HOUR", 18)
	v.SetDefault("SALON_SLOT_INTERVAL_MINUTES", 30)
	v.SetDefault("SALON_SERVICES", []string{})
	v.SetDefault("SALON_LOG_LEVEL", "info")
	v.SetDefault("SALON_ENV", "development")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("SALON_API_URL is required")
	}
	if cfg.HTTPTimeoutSeconds < 1 {
		return Config{}, fmt.Errorf("invalid SALON_HTTP_TIMEOUT_SECONDS")
	}
	if cfg.TickSeconds < 1 {
		return Config{}, fmt.Errorf("invalid SALON_TICK_SECONDS")
	}
	if cfg.EndHour <= cfg.StartHour || cfg.StartHour < 0 || cfg.EndHour > 24 {
		return Config{}, fmt.Errorf("invalid slot window %d..%d", cfg.StartHour, cfg.EndHour)
	}
	if cfg.IntervalMinutes < 1 || cfg.IntervalMinutes > 60 || 60%cfg.IntervalMinutes != 0 {
		return Config{}, fmt.Errorf("SALON_SLOT_INTERVAL_MINUTES must divide 60 evenly")
	}

	return cfg, nil
}
