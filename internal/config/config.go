package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vinetool/vine/internal/fault"
)

// Browser kinds supported by the session manager.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// Video recording modes.
const (
	VideoOn              = "on"
	VideoOff             = "off"
	VideoRetainOnFailure = "retain-on-failure"
)

// Screenshot capture modes.
const (
	ScreenshotOn            = "on"
	ScreenshotOff           = "off"
	ScreenshotOnlyOnFailure = "only-on-failure"
)

// Base URLs per environment, used when BASE_URL is not set.
var envBaseURLs = map[string]string{
	"dev":     "https://dev.example.com",
	"staging": "https://staging.example.com",
	"prod":    "https://example.com",
}

// Config holds all run settings resolved from the process environment.
// It is created once per run and never mutated afterwards.
type Config struct {
	Environment string
	BaseURL     string
	APIBaseURL  string
	DatabaseURL string

	Browser    string
	Headless   bool
	SlowMo     time.Duration
	Timeout    time.Duration
	Video      string
	Screenshot string

	Username      string
	Password      string
	AdminUsername string
	AdminPassword string

	LogLevel string
	CI       bool
}

// Timeouts are the named waits the step vocabulary refers to
// ("short", "long", ...).
var Timeouts = map[string]time.Duration{
	"default":      30 * time.Second,
	"short":        5 * time.Second,
	"medium":       15 * time.Second,
	"long":         60 * time.Second,
	"page_load":    30 * time.Second,
	"element_wait": 10 * time.Second,
}

// Load resolves the run configuration from environment variables. Malformed
// values fail fast with a ConfigError instead of silently defaulting.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getenv("TEST_ENV", "dev"),
		APIBaseURL:    os.Getenv("API_BASE_URL"),
		DatabaseURL:   os.Getenv("TEST_DB_URL"),
		Browser:       getenv("BROWSER", BrowserChromium),
		Video:         getenv("VIDEO", VideoOff),
		Screenshot:    getenv("SCREENSHOT", ScreenshotOnlyOnFailure),
		Username:      getenv("TEST_USERNAME", "testuser"),
		Password:      getenv("TEST_PASSWORD", "testpass"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "adminpass"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		CI:            detectCI(),
	}

	switch cfg.Environment {
	case "dev", "staging", "prod":
	default:
		return nil, &fault.ConfigError{Var: "TEST_ENV", Value: cfg.Environment, Reason: "must be one of dev, staging, prod"}
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		cfg.BaseURL = envBaseURLs[cfg.Environment]
	}

	switch cfg.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, &fault.ConfigError{Var: "BROWSER", Value: cfg.Browser, Reason: "must be one of chromium, firefox, webkit"}
	}

	headless, err := boolEnv("HEADLESS", false)
	if err != nil {
		return nil, err
	}
	cfg.Headless = headless

	slowMo, err := millisEnv("SLOW_MO", 0)
	if err != nil {
		return nil, err
	}
	cfg.SlowMo = slowMo

	timeout, err := millisEnv("TIMEOUT", 30000)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	switch cfg.Video {
	case VideoOn, VideoOff, VideoRetainOnFailure:
	default:
		return nil, &fault.ConfigError{Var: "VIDEO", Value: cfg.Video, Reason: "must be one of on, off, retain-on-failure"}
	}

	switch cfg.Screenshot {
	case ScreenshotOn, ScreenshotOff, ScreenshotOnlyOnFailure:
	default:
		return nil, &fault.ConfigError{Var: "SCREENSHOT", Value: cfg.Screenshot, Reason: "must be one of on, off, only-on-failure"}
	}

	return cfg, nil
}

// OutputDirs lists the directories a run expects to exist.
var OutputDirs = []string{
	"screenshots",
	"reports",
	filepath.Join("reports", "allure-results"),
	filepath.Join("reports", "html"),
	"downloads",
}

// EnsureDirs creates the output directory layout if absent.
func EnsureDirs(root string) error {
	for _, dir := range OutputDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &fault.ConfigError{Var: key, Value: v, Reason: "must be a boolean"}
	}
	return b, nil
}

func millisEnv(key string, fallback int) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return 0, &fault.ConfigError{Var: key, Value: v, Reason: "must be a non-negative integer (milliseconds)"}
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func detectCI() bool {
	for _, key := range []string{"CI", "CONTINUOUS_INTEGRATION", "GITHUB_ACTIONS", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}
