package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vivaria/terrahub/internal/models"
)

// Config holds all configuration for the service
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Monitoring  MonitoringConfig
	FileStore   FileStoreConfig
	Aggregation AggregationConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	TimescaleDB PostgresConfig `mapstructure:"timescaledb"`
	AppDB       PostgresConfig `mapstructure:"postgres_app"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type FileStoreConfig struct {
	BasePath    string `mapstructure:"base_path"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// AggregationConfig tunes the measurement aggregation engine.
type AggregationConfig struct {
	// SensorMergeMode selects how readings within the same minute bucket
	// merge: "first", "average" or "last".
	SensorMergeMode string `mapstructure:"sensor_merge_mode"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("TERRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.timescaledb.sslmode", "disable")
	viper.SetDefault("database.postgres_app.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.db", 0)

	// Monitoring defaults
	viper.SetDefault("monitoring.log_level", "info")

	// FileStore defaults
	viper.SetDefault("filestore.base_path", "./data")
	viper.SetDefault("filestore.max_file_size", 10*1024*1024) // 10MB

	// Aggregation defaults
	viper.SetDefault("aggregation.sensor_merge_mode", string(models.MergeAverage))
}

func validateConfig(config *Config) error {
	if config.Database.TimescaleDB.Host == "" {
		return fmt.Errorf("timescaledb host is required")
	}
	if config.Database.AppDB.Host == "" {
		return fmt.Errorf("postgres app host is required")
	}
	if !models.ValidMergeMode(models.MergeMode(config.Aggregation.SensorMergeMode)) {
		return fmt.Errorf("invalid sensor merge mode %q", config.Aggregation.SensorMergeMode)
	}
	return nil
}
