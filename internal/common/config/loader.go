// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_HOST
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, e.g. config.production.yaml
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the usual locations so the service can be run
// from the repo root or from cmd/recommender during development.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// expandEnvVars substitutes ${VAR} references in string values so secrets can
// be referenced from the config file without being committed to it.
func expandEnvVars() {
	for _, key := range viper.AllKeys() {
		if val, ok := viper.Get(key).(string); ok && strings.Contains(val, "$") {
			viper.Set(key, os.ExpandEnv(val))
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "mentorlink-engine"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 5000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "mentors"
	}
	if cfg.Engine.CacheBackend == "" {
		cfg.Engine.CacheBackend = "postgres"
	}
	if cfg.Engine.CandidateSource == "" {
		cfg.Engine.CandidateSource = "postgres"
	}
	if cfg.Engine.CacheTTL == 0 {
		cfg.Engine.CacheTTL = time.Hour
	}
	if cfg.Engine.SweepInterval == 0 {
		cfg.Engine.SweepInterval = 15 * time.Minute
	}
	if cfg.Engine.DefaultLimit == 0 {
		cfg.Engine.DefaultLimit = 5
	}
	if cfg.Engine.ScoringTimeout == 0 {
		cfg.Engine.ScoringTimeout = 10000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Engine.CacheBackend {
	case "postgres", "redis":
	default:
		return fmt.Errorf("engine.cache_backend must be postgres or redis, got %q", cfg.Engine.CacheBackend)
	}
	switch cfg.Engine.CandidateSource {
	case "postgres", "elasticsearch":
	default:
		return fmt.Errorf("engine.candidate_source must be postgres or elasticsearch, got %q", cfg.Engine.CandidateSource)
	}
	if cfg.Engine.CacheTTL < 0 {
		return fmt.Errorf("engine.cache_ttl must not be negative")
	}
	if cfg.Engine.DefaultLimit < 1 {
		return fmt.Errorf("engine.default_limit must be at least 1")
	}
	return nil
}
