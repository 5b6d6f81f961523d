package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Env variable names understood by the service. Credentials are read
// separately via Credentials().
const (
	envHeadless     = "WOODGATE_HEADLESS"
	envBaseURL      = "WOODGATE_BASE_URL"
	envLoginURL     = "WOODGATE_LOGIN_URL"
	envBrowserTO    = "WOODGATE_BROWSER_TIMEOUT"
	envDefaultRows  = "WOODGATE_DEFAULT_ROWS"
	envDefaultSort  = "WOODGATE_DEFAULT_SORT"
	envMaxRetries   = "WOODGATE_MAX_RETRIES"
	envRetryDelay   = "WOODGATE_RETRY_DELAY"
	envHost         = "WOODGATE_HOST"
	envPort         = "WOODGATE_PORT"
	envLogLevel     = "WOODGATE_LOG_LEVEL"
	envStorageState = "WOODGATE_STORAGE_STATE"

	envUsername = "REDHAT_USERNAME"
	envPassword = "REDHAT_PASSWORD"
)

// Config carries every runtime knob. Components receive it (or a slice of
// it) at construction; nothing reads the environment after FromEnv.
type Config struct {
	Headless bool

	// Portal endpoints.
	BaseURL  string
	LoginURL string

	// Bounded waits. BrowserTimeout caps navigation; the step waits bound
	// individual element/condition polls.
	BrowserTimeout time.Duration
	BodyWait       time.Duration
	FieldWait      time.Duration
	PasswordWait   time.Duration
	VerifyWait     time.Duration
	ConsentWait    time.Duration
	ResultsWait    time.Duration
	BounceWait     time.Duration

	DefaultRows int
	DefaultSort string
	MaxRetries  int
	RetryDelay  time.Duration

	// Server settings for the SSE transport.
	Host     string
	Port     int
	LogLevel string

	// Optional path for persisting/reusing browser storage state.
	StorageStatePath string

	Selectors Selectors
}

// FromEnv builds the configuration from environment variables, applying the
// documented defaults for anything unset.
func FromEnv() Config {
	browserTO := durationEnvSeconds(envBrowserTO, 20*time.Second)
	return Config{
		Headless:       boolEnv(envHeadless, true),
		BaseURL:        stringEnv(envBaseURL, "https://access.redhat.com"),
		LoginURL:       stringEnv(envLoginURL, "https://access.redhat.com/login"),
		BrowserTimeout: browserTO,
		BodyWait:       5 * time.Second,
		FieldWait:      3 * time.Second,
		PasswordWait:   3 * time.Second,
		VerifyWait:     15 * time.Second,
		ConsentWait:    500 * time.Millisecond,
		ResultsWait:    15 * time.Second,
		BounceWait:     3 * time.Second,

		DefaultRows: intEnv(envDefaultRows, 20),
		DefaultSort: stringEnv(envDefaultSort, "relevant"),
		MaxRetries:  intEnv(envMaxRetries, 3),
		RetryDelay:  durationEnvSeconds(envRetryDelay, 3*time.Second),

		Host:     stringEnv(envHost, "127.0.0.1"),
		Port:     intEnv(envPort, 8000),
		LogLevel: stringEnv(envLogLevel, "info"),

		StorageStatePath: strings.TrimSpace(os.Getenv(envStorageState)),

		Selectors: DefaultSelectors(),
	}
}

// SearchURL returns the search endpoint under the configured base.
func (c Config) SearchURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/search/"
}

// Credentials returns the portal username/password pair. Values are consumed
// at form entry and must never be logged.
func Credentials() (string, string, error) {
	username := strings.TrimSpace(os.Getenv(envUsername))
	password := os.Getenv(envPassword)
	if username == "" || password == "" {
		return "", "", fmt.Errorf("credentials not configured: set %s and %s", envUsername, envPassword)
	}
	return username, password, nil
}

func stringEnv(name, def string) string {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	return val
}

func boolEnv(name string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func intEnv(name string, def int) int {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// durationEnvSeconds reads an integer number of seconds.
func durationEnvSeconds(name string, def time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
