package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Connectivity modes.
const (
	ConnectivityProbe   = "probe"
	ConnectivityOnline  = "online"
	ConnectivityOffline = "offline"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Home is the directory holding the persisted settings file.
	Home string

	// USGS feed configuration.
	USGSBaseURL         string
	USGSLimit           int
	USGSTimeout         time.Duration
	DefaultMinMagnitude float64

	RetryDelay time.Duration

	ConnectivityMode      string
	ConnectivityProbeAddr string
	ConnectivityTimeout   time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	usgsTimeout, err := parsePositiveDuration("USGS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDuration("RETRY_DELAY", "1s")
	if err != nil {
		return nil, err
	}

	probeTimeout, err := parsePositiveDuration("CONNECTIVITY_TIMEOUT", "2s")
	if err != nil {
		return nil, err
	}

	limit, err := strconv.Atoi(sharedcfg.EnvOrDefault("USGS_LIMIT", "10"))
	if err != nil || limit <= 0 || limit > 20000 {
		return nil, errors.New("invalid USGS_LIMIT: must be between 1 and 20000")
	}

	minMag, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("DEFAULT_MIN_MAGNITUDE", "6"), 64)
	if err != nil || minMag < 0 || minMag > 10 {
		return nil, errors.New("invalid DEFAULT_MIN_MAGNITUDE: must be between 0 and 10")
	}

	home, err := resolveHome()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Home:            home,

		USGSBaseURL:         sharedcfg.EnvOrDefault("USGS_BASE_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
		USGSLimit:           limit,
		USGSTimeout:         usgsTimeout,
		DefaultMinMagnitude: minMag,

		RetryDelay: retryDelay,

		ConnectivityMode:      sharedcfg.EnvOrDefault("CONNECTIVITY_MODE", ConnectivityProbe),
		ConnectivityProbeAddr: sharedcfg.EnvOrDefault("CONNECTIVITY_PROBE_ADDR", "earthquake.usgs.gov:443"),
		ConnectivityTimeout:   probeTimeout,
	}

	if cfg.USGSBaseURL == "" {
		return nil, errors.New("USGS_BASE_URL is required")
	}
	switch cfg.ConnectivityMode {
	case ConnectivityProbe, ConnectivityOnline, ConnectivityOffline:
	default:
		return nil, errors.New("invalid CONNECTIVITY_MODE: must be probe, online or offline")
	}
	if cfg.ConnectivityMode == ConnectivityProbe && cfg.ConnectivityProbeAddr == "" {
		return nil, errors.New("CONNECTIVITY_MODE is probe but CONNECTIVITY_PROBE_ADDR is not set")
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := parseDuration(key, def)
	if err != nil || d == 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// resolveHome returns QUAKEREPORT_HOME, or ~/.quakereport when unset.
func resolveHome() (string, error) {
	if h := os.Getenv("QUAKEREPORT_HOME"); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("QUAKEREPORT_HOME is not set and the user home directory is unknown")
	}
	return filepath.Join(dir, ".quakereport"), nil
}
