package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/signage-go/internal/timetable"
)

type Config struct {
	ListenAddr      string
	TimetableSource string
	Files           timetable.TimetableFiles
	StopsFile       string
	DisplayCount    int
	ClockInterval   time.Duration
	FetchTimeout    time.Duration
	TripIdentity    string
	NATSURL         string
	NATSSubject     string
	MetricsEnabled  bool
	LogFormat       string
	Debug           bool
	Location        *time.Location
}

// Load reads envFile (or .env when empty) into the environment, ignoring a
// missing file, and builds the configuration from environment variables
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	defaults := timetable.DefaultTimetableFiles()
	cfg := &Config{
		ListenAddr:      getenvDefault("LISTEN_ADDR", ":8080"),
		TimetableSource: getenvDefault("TIMETABLE_SOURCE", "data"),
		Files: timetable.TimetableFiles{
			Weekday: getenvDefault("WEEKDAY_FILE", defaults.Weekday),
			Weekend: getenvDefault("WEEKEND_FILE", defaults.Weekend),
		},
		StopsFile:    os.Getenv("STOPS_FILE"),
		TripIdentity: getenvDefault("TRIP_IDENTITY", "composite"),
		NATSURL:      os.Getenv("NATS_URL"),
		NATSSubject:  getenvDefault("NATS_SUBJECT", "signage.board"),
		LogFormat:    strings.ToLower(getenvDefault("LOG_FORMAT", "console")),
	}

	var err error
	if cfg.DisplayCount, err = positiveInt("DISPLAY_COUNT", 10); err != nil {
		return nil, err
	}

	ms, err := positiveInt("CLOCK_INTERVAL_MS", 1000)
	if err != nil {
		return nil, err
	}
	cfg.ClockInterval = time.Duration(ms) * time.Millisecond

	sec, err := positiveInt("FETCH_TIMEOUT_SEC", 30)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(sec) * time.Second

	if cfg.MetricsEnabled, err = boolean("METRICS_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.Debug, err = boolean("DEBUG", false); err != nil {
		return nil, err
	}

	switch cfg.TripIdentity {
	case "composite", "random":
	default:
		return nil, fmt.Errorf("invalid TRIP_IDENTITY: %q", cfg.TripIdentity)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q", cfg.LogFormat)
	}

	// Time zone
	tzName := getenvDefault("TZ", "")
	if tzName == "" {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ: %v", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

// NATSEnabled reports whether boards should be published
func (c *Config) NATSEnabled() bool {
	return strings.TrimSpace(c.NATSURL) != ""
}

func positiveInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func boolean(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s: %q", key, v)
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
