package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hrtool",
	Short: "HR Tool",
	Long:  `Employee profiles, directory, out-of-office tracking, notifications and company links.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":                             "APP_ENV",
	"http_server.port":                "HTTP_PORT",
	"http_server.allowed_origins":     "ALLOWED_ORIGINS",
	"database.driver":                 "DATABASE_DRIVER",
	"database.source":                 "DATABASE_URL",
	"database.auto_migrate":           "DATABASE_AUTO_MIGRATE",
	"security.jwt_key":                "JWT_KEY",
	"security.jwt_issuer":             "JWT_ISSUER",
	"security.jwt_audience":           "JWT_AUDIENCE",
	"security.jwt_expires_in_minutes": "JWT_EXPIRES_IN_MINUTES",
	"bootstrap.admin_email":           "HRTOOL_ADMIN_EMAIL",
	"bootstrap.admin_password":        "HRTOOL_ADMIN_PASSWORD",
	"bootstrap.seed_test_data":        "ENABLE_TEST_DATA_SEEDING",
	"messaging.rabbitmq_url":          "RABBITMQ_URL",
	"messaging.events_queue":          "RABBITMQ_EVENTS_QUEUE",
	"logging.level":                   "LOG_LEVEL",
	"logging.format":                  "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.allowed_origins", "http://localhost:3000")
	v.SetDefault("http_server.read_header_timeout", "5s")
	v.SetDefault("http_server.read_timeout", "15s")
	v.SetDefault("http_server.write_timeout", "15s")
	v.SetDefault("http_server.idle_timeout", "60s")
	v.SetDefault("database.driver", internal.DriverPostgres)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("security.jwt_issuer", "hrtool")
	v.SetDefault("security.jwt_audience", "hrtool")
	v.SetDefault("security.jwt_expires_in", "60m")
	v.SetDefault("bootstrap.test_user_count", 30)
	v.SetDefault("messaging.events_queue", "hrtool.events")
	v.SetDefault("messaging.queue_durable", true)
	v.SetDefault("messaging.prefetch_count", 10)
}

// loadConfig reads config.yml from path when present, then .env, then the
// process environment. Later sources win.
func loadConfig(path string) (*internal.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	logger.InitWithLevel(cfg.Env, cfg.Logging.Level, cfg.Logging.Format)
	return &cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
