package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"http_server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Security  SecurityConfig  `mapstructure:"security"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type SecurityConfig struct {
	JWTKey           string        `mapstructure:"jwt_key"`
	JWTIssuer        string        `mapstructure:"jwt_issuer"`
	JWTAudience      string        `mapstructure:"jwt_audience"`
	JWTExpiresIn     time.Duration `mapstructure:"jwt_expires_in"`
	JWTExpiresInMins int           `mapstructure:"jwt_expires_in_minutes"`
	BCryptCost       int           `mapstructure:"bcrypt_cost"`
}

type BootstrapConfig struct {
	AdminEmail       string `mapstructure:"admin_email"`
	AdminPassword    string `mapstructure:"admin_password"`
	SeedTestData     bool   `mapstructure:"seed_test_data"`
	TestUserCount    int    `mapstructure:"test_user_count"`
	TestUserPassword string `mapstructure:"test_user_password"`
}

type MessagingConfig struct {
	RabbitMQURL   string `mapstructure:"rabbitmq_url"`
	EventsQueue   string `mapstructure:"events_queue"`
	QueueDurable  bool   `mapstructure:"queue_durable"`
	PrefetchCount int    `mapstructure:"prefetch_count"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != DriverPostgres && c.Driver != DriverSQLite {
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if strings.TrimSpace(c.JWTKey) == "" {
		return errors.New("jwt_key is required (JWT_KEY)")
	}
	if len(c.JWTKey) < 32 {
		return errors.New("jwt_key must be at least 32 characters")
	}
	if c.TokenTTL() <= 0 {
		return errors.New("token lifetime must be positive")
	}
	if c.BCryptCost != 0 && (c.BCryptCost < 4 || c.BCryptCost > 15) {
		return errors.New("bcrypt_cost must be between 4 and 15")
	}
	return nil
}

// TokenTTL prefers the minute count used by the environment over the duration form.
func (c *SecurityConfig) TokenTTL() time.Duration {
	if c.JWTExpiresInMins > 0 {
		return time.Duration(c.JWTExpiresInMins) * time.Minute
	}
	return c.JWTExpiresIn
}

func (c *BootstrapConfig) Validate() error {
	if strings.TrimSpace(c.AdminPassword) == "" {
		return errors.New("admin password must be set in HRTOOL_ADMIN_PASSWORD environment variable")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}
