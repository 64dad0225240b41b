package app

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"stayreal/internal/domain"
)

const (
	appDirName = "stayreal"

	defaultLogLevel    = "info"
	defaultHTTPTimeout = 15 * time.Second
	defaultRateLimit   = 2.0
	defaultRateBurst   = 4

	envHome            = "STAYREAL_HOME"
	envLogLevel        = "STAYREAL_LOG_LEVEL"
	envHTTPTimeout     = "STAYREAL_HTTP_TIMEOUT"
	envRateLimit       = "STAYREAL_RATE_LIMIT"
	envRateBurst       = "STAYREAL_RATE_BURST"
	envTokenURL        = "STAYREAL_TOKEN_URL"
	envMomentsURL      = "STAYREAL_MOMENTS_URL"
	envMetricsTextfile = "STAYREAL_METRICS_TEXTFILE"

	envAllowPrivateImageHosts = "STAYREAL_ALLOW_PRIVATE_IMAGE_HOSTS"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home            string        // data directory holding credentials.json and preferences.json
	LogLevel        string        // debug, info, warn or error
	HTTPTimeout     time.Duration // per-request timeout of the outbound client
	RateLimit       float64       // outbound requests per second
	RateBurst       int
	MetricsTextfile string // optional; metrics are dumped here after each command
	Profile         domain.ClientProfile
	HTTP            *http.Client          // optional; built from HTTPTimeout when nil
	Clock           domain.ClockAndLocale // optional; the host clock when nil

	// AllowPrivateImageHosts lets image downloads reach loopback and private
	// addresses, for use against a local mock.
	AllowPrivateImageHosts bool
	ImageHTTP              *http.Client // optional; overrides the image client
}

// LoadConfig returns the defaults overridden by STAYREAL_* environment
// variables. A variable that is set but unparsable is an error.
//
// Home is left empty when STAYREAL_HOME is unset so a --home flag can still
// apply; call ResolveHome before wiring.
func LoadConfig() (Config, error) {
	cfg := Config{
		LogLevel:        strings.ToLower(getEnv(envLogLevel, defaultLogLevel)),
		HTTPTimeout:     defaultHTTPTimeout,
		RateLimit:       defaultRateLimit,
		RateBurst:       defaultRateBurst,
		MetricsTextfile: os.Getenv(envMetricsTextfile),
		Profile:         domain.DefaultClientProfile(),
	}

	cfg.Home = os.Getenv(envHome)

	var err error
	if cfg.HTTPTimeout, err = getEnvDuration(envHTTPTimeout, cfg.HTTPTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getEnvFloat(envRateLimit, cfg.RateLimit); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = getEnvInt(envRateBurst, cfg.RateBurst); err != nil {
		return Config{}, err
	}
	cfg.Profile.TokenURL = getEnv(envTokenURL, cfg.Profile.TokenURL)
	cfg.Profile.MomentsURL = getEnv(envMomentsURL, cfg.Profile.MomentsURL)
	if cfg.AllowPrivateImageHosts, err = getEnvBool(envAllowPrivateImageHosts, false); err != nil {
		return Config{}, err
	}

	return cfg, cfg.validateSettings()
}

// ResolveHome fills an empty Home with DefaultHome.
func (c *Config) ResolveHome() error {
	if c.Home != "" {
		return nil
	}
	home, err := DefaultHome()
	if err != nil {
		return err
	}
	c.Home = home
	return nil
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("%w: empty home directory", domain.ErrConfiguration)
	}
	return c.validateSettings()
}

func (c Config) validateSettings() error {
	switch {
	case c.HTTPTimeout <= 0:
		return fmt.Errorf("%w: http timeout must be positive", domain.ErrConfiguration)
	case c.RateLimit <= 0:
		return fmt.Errorf("%w: rate limit must be positive", domain.ErrConfiguration)
	case c.RateBurst < 1:
		return fmt.Errorf("%w: rate burst must be at least 1", domain.ErrConfiguration)
	}
	for _, raw := range []string{c.Profile.TokenURL, c.Profile.MomentsURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: invalid endpoint %q", domain.ErrConfiguration, raw)
		}
	}
	return nil
}

// DefaultHome returns the per-user local data directory of the app.
func DefaultHome() (string, error) {
	return defaultHome(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func defaultHome(goos string, getenv func(string) string, userHome func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		if dir := getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appDirName), nil
		}
	case "darwin", "ios":
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return filepath.Join(dir, appDirName), nil
		}
	}

	home, err := userHome()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: cannot locate home directory: %v", domain.ErrEnvironment, err)
	}
	switch goos {
	case "windows":
		return filepath.Join(home, "AppData", "Local", appDirName), nil
	case "darwin", "ios":
		return filepath.Join(home, "Library", "Application Support", appDirName), nil
	default:
		return filepath.Join(home, ".local", "share", appDirName), nil
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %w", domain.ErrConfiguration, key, err)
	}
	return i, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %w", domain.ErrConfiguration, key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %w", domain.ErrConfiguration, key, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: invalid %s: %w", domain.ErrConfiguration, key, err)
	}
	return b, nil
}
