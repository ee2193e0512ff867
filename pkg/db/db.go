// pkg/db/db.go
package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverMongo    Driver = "mongodb"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

// DefaultDatabaseName is used when the connection string names no database.
const DefaultDatabaseName = "exercise-tracker"

// Config holds storage connection configuration.
type Config struct {
	URL             string        `yaml:"url"`
	DatabaseName    string        `yaml:"database_name"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

// Driver resolves the backend from the scheme of the connection URL.
func (c Config) Driver() (Driver, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "memory":
		return DriverMemory, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
}

// Database returns the configured database name, falling back to the URL path
// and finally to DefaultDatabaseName.
func (c Config) Database() string {
	if c.DatabaseName != "" {
		return c.DatabaseName
	}
	if u, err := url.Parse(c.URL); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return DefaultDatabaseName
}
