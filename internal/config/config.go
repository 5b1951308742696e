package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Draft storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var (
	// ErrInvalidConfig is returned when a loaded configuration fails validation
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the service configuration read from config.toml
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Drafts     DraftsConfig     `toml:"drafts"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	CORS       CORSConfig       `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingAPIConfig points at the salon booking API the calendar reads from and books into
type BookingAPIConfig struct {
	URL         string `toml:"url"`
	Timeout     int    `toml:"timeout"` // seconds
	RefreshPath string `toml:"refresh_path"`
}

type CalendarConfig struct {
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	TimeZone            string `toml:"time_zone"`
}

// Location loads the salon time zone.
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// SlotDuration returns the slot size as a duration.
func (c CalendarConfig) SlotDuration() time.Duration {
	return time.Duration(c.SlotDurationMinutes) * time.Minute
}

type DraftsConfig struct {
	Backend         string `toml:"backend"`          // memory | postgres | redis
	TTLMinutes      int    `toml:"ttl_minutes"`      // drafts untouched for longer are gone
	CleanupInterval int    `toml:"cleanup_interval"` // seconds, memory and postgres sweep
}

// TTL returns the draft lifetime.
func (c DraftsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load reads the configuration file, fills in defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-booking-calendar",
		},
		BookingAPI: BookingAPIConfig{
			Timeout:     10,
			RefreshPath: "/accounts/token/refresh/",
		},
		Calendar: CalendarConfig{
			SlotDurationMinutes: 30,
			TimeZone:            "Europe/Dublin",
		},
		Drafts: DraftsConfig{
			Backend:         BackendMemory,
			TTLMinutes:      120,
			CleanupInterval: 300,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "calendar:draft:",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}

func (c *Config) applyDefaults() {
	c.BookingAPI.URL = strings.TrimRight(c.BookingAPI.URL, "/")
	c.Drafts.Backend = strings.ToLower(strings.TrimSpace(c.Drafts.Backend))
	if c.Drafts.Backend == "" {
		c.Drafts.Backend = BackendMemory
	}
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.BookingAPI.URL == "" {
		return fmt.Errorf("%w: booking_api.url is required", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.BookingAPI.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: booking_api.url %q is not an absolute URL", ErrInvalidConfig, c.BookingAPI.URL)
	}
	if c.BookingAPI.Timeout <= 0 {
		return fmt.Errorf("%w: booking_api.timeout must be positive", ErrInvalidConfig)
	}

	if c.Calendar.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: calendar.slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: calendar.time_zone %q: %v", ErrInvalidConfig, c.Calendar.TimeZone, err)
	}

	switch c.Drafts.Backend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("%w: drafts.backend %q (want memory, postgres or redis)", ErrInvalidConfig, c.Drafts.Backend)
	}
	if c.Drafts.TTLMinutes <= 0 {
		return fmt.Errorf("%w: drafts.ttl_minutes must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	return nil
}
