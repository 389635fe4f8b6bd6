package config

import (
	"fmt"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the traffic route service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the API server, which also serves /healthz and /metrics.
// - ProviderType: The source of traffic snapshots (simulated, feed, file, postgres).
// - FeedURL: The remote snapshot endpoint (required for the feed provider).
// - FeedRateLimit: Requests per second allowed against the feed.
// - SnapshotFile: The snapshot fixture (required for the file provider).
// - RefreshInterval: The duration between snapshot refreshes.
// - Seed: The seed of the simulated readings, 0 for a time-based seed.
// - Sensors: The sensor layout of the simulated provider, loaded from the config file.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env             string          `mapstructure:"env"              validate:"required"`
	Port            int             `mapstructure:"port"             validate:"gt=0,lte=65535"`
	ProviderType    string          `mapstructure:"provider_type"    validate:"oneof=simulated feed file postgres"`
	FeedURL         string          `mapstructure:"feed_url"         validate:"required_if=ProviderType feed,omitempty,url"`
	FeedRateLimit   int             `mapstructure:"feed_rate_limit"  validate:"gte=0"`
	SnapshotFile    string          `mapstructure:"snapshot_file"    validate:"required_if=ProviderType file"`
	RefreshInterval time.Duration   `mapstructure:"refresh_interval" validate:"gt=0"`
	Seed            int64           `mapstructure:"seed"`
	Sensors         []models.Sensor `mapstructure:"sensors"          validate:"unique=ID,dive"`
	Database        PostgresConfig  `mapstructure:"database"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"name"`     // Name is the name of the database.
}

// UsesDatabase reports whether the configured provider needs PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.ProviderType == "postgres"
}

// MustLoad loads the configuration from the environment, an optional .env file and
// an optional YAML file named by HERMES_CONFIG. Environment values win over the file.
// It panics when the configuration cannot be parsed or is invalid.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HERMES")
	v.AutomaticEnv()

	setDefaults(v)
	bindDatabaseEnv(v)

	if err := v.BindEnv("config"); err != nil {
		panic("failed to bind config file variable")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("failed to parse configuration, check value types")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("port", 8080)
	v.SetDefault("provider_type", "simulated")
	v.SetDefault("feed_url", "")
	v.SetDefault("feed_rate_limit", 5)
	v.SetDefault("snapshot_file", "")
	v.SetDefault("refresh_interval", "5s")
	v.SetDefault("seed", 0)
	v.SetDefault("database.port", "5432")
}

// bindDatabaseEnv keeps the unprefixed DB_* variables shared with the other services.
func bindDatabaseEnv(v *viper.Viper) {
	bindings := map[string]string{
		"database.host":     "DB_HOST",
		"database.port":     "DB_PORT",
		"database.user":     "DB_USERNAME",
		"database.password": "DB_PASSWORD",
		"database.name":     "DB_NAME",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			panic(fmt.Sprintf("failed to bind %s", env))
		}
	}
}
