package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Korona   KoronaConfig   `mapstructure:"korona"`
	Export   ExportConfig   `mapstructure:"export"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

// DatabaseConfig holds the price cache database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// KoronaConfig holds KORONA cloud API configuration
type KoronaConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	AccountID  string        `mapstructure:"account_id"`
	Username   string        `mapstructure:"username"`
	Password   string        `mapstructure:"password"`
	APITimeout time.Duration `mapstructure:"api_timeout"`
}

// ExportConfig holds export pipeline configuration
type ExportConfig struct {
	// MaxPages caps how many receipt pages a single export may fetch.
	// 0 means no ceiling; termination then relies on the API reporting an
	// empty page or three consecutive fetch failures.
	MaxPages int `mapstructure:"max_pages"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Credentials live in .env during local development; missing file is fine
	_ = gotenv.Load()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.static_dir", "web")

	// Database defaults
	viper.SetDefault("database.path", "data/products.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// KORONA defaults
	viper.SetDefault("korona.base_url", "https://167.koronacloud.com/web/api/v3")
	viper.SetDefault("korona.api_timeout", 30*time.Second)

	// Export defaults
	viper.SetDefault("export.max_pages", 0)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("korona.account_id", "KORONA_ACCOUNT_ID")
	viper.BindEnv("korona.username", "KORONA_USERNAME")
	viper.BindEnv("korona.password", "KORONA_PASSWORD")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Korona.AccountID == "" {
		return fmt.Errorf("korona.account_id is required")
	}
	if c.Korona.Username == "" {
		return fmt.Errorf("korona.username is required")
	}
	if c.Korona.Password == "" {
		return fmt.Errorf("korona.password is required")
	}
	if c.Export.MaxPages < 0 {
		return fmt.Errorf("export.max_pages must not be negative")
	}
	return nil
}
