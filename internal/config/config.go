package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config конфигурация сервиса назначения медиков
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	TravelTime     TravelTimeConfig     `toml:"travel_time"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
	Matching       MatchingConfig       `toml:"matching"`
	Compliance     ComplianceConfig     `toml:"compliance"`
	Schedule       ScheduleConfig       `toml:"schedule"`
	AssignmentAPI  AssignmentAPIConfig  `toml:"assignment_api"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
}

type TravelTimeConfig struct {
	URL             string  `toml:"url" validate:"required,url"`
	Timeout         int     `toml:"timeout" validate:"min=1"`
	CacheTTL        int     `toml:"cache_ttl" validate:"min=0"` // секунды, 0 - без in-memory кэша
	CacheEntries    int     `toml:"cache_entries" validate:"min=0"`
	FallbackMinutes int     `toml:"fallback_minutes" validate:"min=1"`
	FallbackMiles   float64 `toml:"fallback_miles" validate:"gte=0"`
}

type GoogleCalendarConfig struct {
	Enabled       bool   `toml:"enabled"`
	ClientID      string `toml:"client_id" validate:"required_if=Enabled true"`
	ClientSecret  string `toml:"client_secret" validate:"required_if=Enabled true"`
	Timeout       int    `toml:"timeout" validate:"min=1"`
	RefreshWindow int    `toml:"refresh_window" validate:"min=0"` // секунды до истечения токена
	Endpoint      string `toml:"endpoint" validate:"omitempty,url"`  // переопределение Calendar API (тесты, прокси)
	TokenURL      string `toml:"token_url" validate:"omitempty,url"` // по умолчанию google.Endpoint
}

type MatchingConfig struct {
	AutoAssignThreshold float64 `toml:"auto_assign_threshold" validate:"gte=0"`
	TopCandidates       int     `toml:"top_candidates" validate:"min=1"`
	ScoringWorkers      int     `toml:"scoring_workers" validate:"min=1"`
}

type ComplianceConfig struct {
	MaxWeeklyHours float64 `toml:"max_weekly_hours" validate:"gt=0"`
	MinRestHours   float64 `toml:"min_rest_hours" validate:"gt=0"`
}

type ScheduleConfig struct {
	Timezone string `toml:"timezone" validate:"required"`
}

// Location загружает часовой пояс расписания
func (s ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type AssignmentAPIConfig struct {
	URL     string `toml:"url" validate:"omitempty,url"`
	Timeout int    `toml:"timeout" validate:"min=1"`
}

var validate = validator.New()

// Load читает TOML файл, подставляет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет структуру и часовой пояс
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Schedule.Location(); err != nil {
		return fmt.Errorf("invalid schedule timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	return nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "assignment_service",
		},
		TravelTime: TravelTimeConfig{
			Timeout:         3,
			CacheTTL:        3600,
			CacheEntries:    10000,
			FallbackMinutes: 60,
			FallbackMiles:   30,
		},
		GoogleCalendar: GoogleCalendarConfig{
			Timeout:       5,
			RefreshWindow: 300,
		},
		Matching: MatchingConfig{
			AutoAssignThreshold: 50,
			TopCandidates:       5,
			ScoringWorkers:      8,
		},
		Compliance: ComplianceConfig{
			MaxWeeklyHours: 48,
			MinRestHours:   11,
		},
		Schedule: ScheduleConfig{
			Timezone: "Europe/London",
		},
		AssignmentAPI: AssignmentAPIConfig{
			URL:     "http://localhost:8080",
			Timeout: 10,
		},
	}
}
