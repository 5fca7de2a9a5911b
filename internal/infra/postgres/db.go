// Package postgres provides the PostgreSQL connection factory and the
// embedded schema migrations for the snack price service.
//
// The service opens a fresh connection for every tool call and closes it
// before returning, so Connect deliberately configures the pool down to a
// single connection instead of sharing a long-lived pool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	// Register the lib/pq driver under the name "postgres".
	_ "github.com/lib/pq"
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DefaultConfig returns connection settings for a local development database.
func DefaultConfig() Config {
	return Config{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		Name:    "snackdb",
		SSLMode: "disable",
	}
}

// DSN renders the config as a postgres:// URL understood by lib/pq.
// User and password are URL-escaped, so credentials may contain any byte.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", c.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Addr returns "host:port/name" for log and error messages. Never includes
// the password.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) + "/" + c.Name
}

// Ping opens a connection, verifies it, and closes it again. Used by the
// health endpoint.
func (c Config) Ping(ctx context.Context) error {
	db, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	return db.Close()
}

// Connect opens a fresh connection to the database and verifies it with a
// ping. Each tool call gets its own connection; the caller must Close it
// before returning.
func (c Config) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.Connect: open %s: %w", c.Addr(), err)
	}

	// One connection per call, no idle reuse across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.Connect: ping %s: %w", c.Addr(), err)
	}

	return db, nil
}
