package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, перекрывающих config.toml (TURF_DATABASE_HOST и т.д.)
const EnvPrefix = "TURF"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var (
	// ErrLoad возвращается, если не удалось прочитать конфигурацию
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается, если конфигурация не прошла проверку
	ErrInvalid = errors.New("config: invalid configuration")
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	CORS     CORSConfig     `toml:"cors"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Driver   string `toml:"driver"` // postgres | sqlite3
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`

	// Path файл базы для sqlite3
	Path string `toml:"path"`

	MaxOpenConns    int  `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int  `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int  `toml:"conn_max_lifetime" split_words:"true"` // секунды
	AutoMigrate     bool `toml:"auto_migrate" split_words:"true"`
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", d.Path)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AuthConfig параметры проверки JWT от провайдера идентификации
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret" split_words:"true"`
	JWTIssuer   string `toml:"jwt_issuer" split_words:"true"`
	TokenTTLMin int    `toml:"token_ttl_min" split_words:"true"`
}

type BookingConfig struct {
	LockTimeoutMs      int     `toml:"lock_timeout_ms" split_words:"true"`
	NearbyRadiusMeters float64 `toml:"nearby_radius_meters" split_words:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// EventsConfig публикация событий бронирований в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
	Timeout  int    `toml:"timeout"` // секунды
}

// Load читает config.toml, затем .env (если есть) и переменные окружения TURF_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoad, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "turf-service",
		},
		Auth: AuthConfig{
			JWTIssuer:   "turf-identity",
			TokenTTLMin: 60,
		},
		Booking: BookingConfig{
			LockTimeoutMs:      5000,
			NearbyRadiusMeters: 5000,
		},
		Events: EventsConfig{
			Exchange: "turf.reservations",
			Timeout:  2,
		},
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			problems = append(problems, "database.path is required for sqlite3")
		}
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Booking.LockTimeoutMs < 0 {
		problems = append(problems, "booking.lock_timeout_ms must not be negative")
	}
	if c.Booking.NearbyRadiusMeters < 0 {
		problems = append(problems, "booking.nearby_radius_meters must not be negative")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		problems = append(problems, "events.url is required when events are enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
