package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	HubSpot  HubSpotConfig  `yaml:"hubspot"`
	Phone    PhoneConfig    `yaml:"phone"`
	Import   ImportConfig   `yaml:"import"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Redis    RedisConfig    `yaml:"redis"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds the Postgres connection for the applications table
type DatabaseConfig struct {
	URL             string `yaml:"url"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxIdleSecs int    `yaml:"conn_max_idle_secs"`
}

// HubSpotConfig holds HubSpot CRM API configuration
type HubSpotConfig struct {
	AccessToken    string `yaml:"access_token"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	BatchSize      int    `yaml:"batch_size"`
	BatchDelayMS   int    `yaml:"batch_delay_ms"`
}

// Timeout returns the configured timeout as a duration
func (c HubSpotConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BatchDelay returns the fixed inter-batch delay as a duration
func (c HubSpotConfig) BatchDelay() time.Duration {
	return time.Duration(c.BatchDelayMS) * time.Millisecond
}

// PhoneConfig holds the phone normalization rules injected into the mapper.
// Defaults target Lebanon (+961, trunk prefix 0, 8-digit subscriber numbers).
type PhoneConfig struct {
	CountryCode      string `yaml:"country_code"`
	TrunkPrefix      string `yaml:"trunk_prefix"`
	MaxSubscriberLen int    `yaml:"max_subscriber_len"`
}

// ImportConfig holds bulk import defaults
type ImportConfig struct {
	Source string `yaml:"source"` // application-source tag for imported rows
}

// ArchiveConfig holds S3 archival settings for cleaned import files
type ArchiveConfig struct {
	Enabled    bool   `yaml:"enabled"`
	S3Bucket   string `yaml:"s3_bucket"`
	S3Region   string `yaml:"s3_region"`
	AWSProfile string `yaml:"aws_profile"`
	Prefix     string `yaml:"prefix"`
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c ArchiveConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return "" // default credential chain (IAM role)
		}
		return envProfile
	}
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}

// RedisConfig holds Redis settings for submission rate limiting
type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	SubmitPerMin int    `yaml:"submit_per_min"`
}

// AdminConfig holds the admin API token for the dashboard endpoints
type AdminConfig struct {
	APIToken string `yaml:"api_token"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.HubSpot.BaseURL == "" {
		cfg.HubSpot.BaseURL = "https://api.hubapi.com"
	}
	if cfg.HubSpot.TimeoutSeconds == 0 {
		cfg.HubSpot.TimeoutSeconds = 30
	}
	if cfg.HubSpot.BatchSize == 0 {
		cfg.HubSpot.BatchSize = 100
	}
	if cfg.HubSpot.BatchDelayMS == 0 {
		cfg.HubSpot.BatchDelayMS = 100
	}
	if cfg.Phone.CountryCode == "" {
		cfg.Phone.CountryCode = "+961"
	}
	if cfg.Phone.TrunkPrefix == "" {
		cfg.Phone.TrunkPrefix = "0"
	}
	if cfg.Phone.MaxSubscriberLen == 0 {
		cfg.Phone.MaxSubscriberLen = 8
	}
	if cfg.Import.Source == "" {
		cfg.Import.Source = "excel_import"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.SubmitPerMin == 0 {
		cfg.Redis.SubmitPerMin = 10
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if token := os.Getenv("HUBSPOT_ACCESS_TOKEN"); token != "" {
		cfg.HubSpot.AccessToken = token
	}
	// Older deployments used the private-app variable name
	if token := os.Getenv("HUBSPOT_PRIVATE_APP_TOKEN"); token != "" && cfg.HubSpot.AccessToken == "" {
		cfg.HubSpot.AccessToken = token
	}
	if baseURL := os.Getenv("HUBSPOT_BASE_URL"); baseURL != "" {
		cfg.HubSpot.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if token := os.Getenv("ADMIN_API_TOKEN"); token != "" {
		cfg.Admin.APIToken = token
	}
	if bucket := os.Getenv("ARCHIVE_S3_BUCKET"); bucket != "" {
		cfg.Archive.S3Bucket = bucket
	}
	if region := os.Getenv("ARCHIVE_S3_REGION"); region != "" {
		cfg.Archive.S3Region = region
	}

	return cfg, nil
}
