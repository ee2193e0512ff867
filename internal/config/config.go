// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"exercise-tracker/pkg/db"
)

// DefaultConfigFile is read when CONFIG_FILE is not set. It is optional.
const DefaultConfigFile = "exercise-tracker.yaml"

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort        string     `yaml:"server_port"`
	LogLevel          string     `yaml:"log_level"`
	CORSAllowedOrigin string     `yaml:"cors_allowed_origin"`
	HTTP              HTTPConfig `yaml:"http"`
	DB                db.Config  `yaml:"database"`
}

// HTTPConfig holds the HTTP server timeouts. WriteTimeout must exceed
// RequestTimeout so a timed-out handler can still write its response.
type HTTPConfig struct {
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() AppConfig {
	return AppConfig{
		ServerPort:        "3000",
		LogLevel:          "info",
		CORSAllowedOrigin: "*",
		HTTP: HTTPConfig{
			RequestTimeout:  30 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    35 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		DB: db.Config{
			URL:             "mongodb://localhost:27017/" + db.DefaultDatabaseName,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			ConnectTimeout:  10 * time.Second,
		},
	}
}

// LoadConfig builds the configuration from defaults, then the optional YAML
// file, then environment variables.
func LoadConfig() (*AppConfig, error) {
	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerPort, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.CORSAllowedOrigin, "CORS_ALLOWED_ORIGIN")
	setString(&cfg.DB.URL, "MONGO_URI")
	setString(&cfg.DB.URL, "DATABASE_URL")
	setString(&cfg.DB.DatabaseName, "MONGO_DATABASE")

	if err := setInt(&cfg.DB.MaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}
	if err := setInt(&cfg.DB.MaxIdleConns, "DB_MAX_IDLE_CONNS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.DB.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME"); err != nil {
		return err
	}
	if err := setDuration(&cfg.DB.ConnectTimeout, "DB_CONNECT_TIMEOUT"); err != nil {
		return err
	}

	for key, dst := range map[string]*time.Duration{
		"HTTP_REQUEST_TIMEOUT": &cfg.HTTP.RequestTimeout,
		"HTTP_READ_TIMEOUT":    &cfg.HTTP.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":   &cfg.HTTP.WriteTimeout,
		"HTTP_IDLE_TIMEOUT":    &cfg.HTTP.IdleTimeout,
		"SHUTDOWN_TIMEOUT":     &cfg.HTTP.ShutdownTimeout,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}

	if cfg.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", cfg.HTTP.RequestTimeout)
	}
	if cfg.HTTP.WriteTimeout > 0 && cfg.HTTP.WriteTimeout <= cfg.HTTP.RequestTimeout {
		return fmt.Errorf("write timeout %s must exceed request timeout %s", cfg.HTTP.WriteTimeout, cfg.HTTP.RequestTimeout)
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("invalid server port %q: %w", cfg.ServerPort, err)
	}
	if _, err := cfg.DB.Driver(); err != nil {
		return err
	}
	return nil
}

// setString overwrites dst when key is set to a non-empty value. Later calls win.
func setString(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = parsed
	return nil
}
