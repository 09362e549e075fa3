package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/dataclient"
)

// DefaultSQLitePath is the database file used when no DSN is configured
const DefaultSQLitePath = "./data/app.db"

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Driver string
	DSN    string

	// Remote data API references, carried for deployments that provision
	// the database out of band
	ClusterARN string
	SecretARN  string
	Name       string

	// Used to build a postgres DSN when DSN is empty
	Host     string
	Port     string
	User     string
	Password string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	MaxRetries      int
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case dataclient.DriverSQLite, "sqlite", dataclient.DriverPostgres, "pgx":
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}

	if c.DSN == "" {
		return fmt.Errorf("database DSN cannot be empty")
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open connections must be at least 1")
	}

	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max idle connections cannot be negative")
	}

	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}

	return nil
}

// IsPostgres reports whether the postgres backend is configured
func (c *DatabaseConfig) IsPostgres() bool {
	return c.Driver == dataclient.DriverPostgres || c.Driver == "pgx"
}

// ToOptions converts DatabaseConfig to dataclient.Options
func (c *DatabaseConfig) ToOptions(logger *logrus.Logger) dataclient.Options {
	return dataclient.Options{
		Driver:          c.Driver,
		DSN:             c.DSN,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnectTimeout:  c.ConnectTimeout,
		MaxRetries:      uint(c.MaxRetries),
		Logger:          logger,
	}
}

// LogFields returns the non-secret connection settings for startup logs
func (c *DatabaseConfig) LogFields() logrus.Fields {
	fields := logrus.Fields{
		"driver":         c.Driver,
		"max_open_conns": c.MaxOpenConns,
	}
	if c.Name != "" {
		fields["database"] = c.Name
	}
	if c.ClusterARN != "" {
		fields["cluster_arn"] = c.ClusterARN
	}
	if c.SecretARN != "" {
		fields["secret_arn"] = c.SecretARN
	}
	return fields
}

func (c *DatabaseConfig) defaultDSN() string {
	if !c.IsPostgres() {
		return DefaultSQLitePath
	}
	if c.Host == "" {
		return ""
	}

	dbname := c.Name
	if dbname == "" {
		dbname = "postgres"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + dbname,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}
