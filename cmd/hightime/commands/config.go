package commands

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"

	"github.com/noodlebox/hightime"
)

// Config is read from the environment. Command line flags override it.
type Config struct {
	Timespec string `env:"HIGHTIME_TIMESPEC" env-default:"auto" env-description:"ISO 8601 precision for printed instants"`
	TZ       string `env:"HIGHTIME_TZ" env-description:"zone for now and @timestamps, empty for naive local time"`
	LogLevel string `env:"HIGHTIME_LOG_LEVEL" env-default:"warn" env-description:"logrus level"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration from environment: %w", err)
	}
	return cfg, nil
}

// Spec returns the configured timespec.
func (c Config) Spec() (hightime.Timespec, error) {
	return hightime.ParseTimespec(c.Timespec)
}

// Location returns the configured zone, or nil for naive local time.
func (c Config) Location() (*time.Location, error) {
	switch c.TZ {
	case "":
		return nil, nil
	case "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TZ)
	if err != nil {
		return nil, fmt.Errorf("unknown zone %q: %w", c.TZ, err)
	}
	return loc, nil
}

// SetupLogging configures the standard logrus logger for the CLI.
func SetupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetFormatter(PreConfiguredFormatter())
	logrus.SetLevel(lvl)
	return nil
}

// PreConfiguredFormatter returns the TextFormatter the CLI logs with.
func PreConfiguredFormatter() *logrus.TextFormatter {
	return &logrus.TextFormatter{
		FullTimestamp: true,
	}
}
