package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	ModelAPI  ModelAPIConfig
	Inference InferenceConfig
	Assembly  AssemblyAIConfig
	Pipeline  PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meetingmind"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration for the result cache
type RedisConfig struct {
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string        `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"24h"`
}

// ModelAPIConfig holds configuration for the remote summarization sidecar
type ModelAPIConfig struct {
	BaseURL          string        `envconfig:"MODEL_API_URL" default:"http://localhost:5001"`
	SummarizeTimeout time.Duration `envconfig:"MODEL_API_TIMEOUT" default:"30s"`
	HealthTimeout    time.Duration `envconfig:"MODEL_API_HEALTH_TIMEOUT" default:"5s"`
	MaxLength        int           `envconfig:"MODEL_API_MAX_LENGTH" default:"128"`
	PreferRemote     bool          `envconfig:"MODEL_API_PREFER_REMOTE" default:"true"`
}

// InferenceConfig holds configuration for the local inference sidecar
type InferenceConfig struct {
	BaseURL string        `envconfig:"INFERENCE_API_URL" default:"http://localhost:5002"`
	Timeout time.Duration `envconfig:"INFERENCE_API_TIMEOUT" default:"60s"`
}

// AssemblyAIConfig holds configuration for the ASR boundary
type AssemblyAIConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
}

// PipelineConfig holds extraction pipeline thresholds
type PipelineConfig struct {
	MinTranscriptChars int `envconfig:"PIPELINE_MIN_TRANSCRIPT_CHARS" default:"20"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ModelAPI.MaxLength <= 0 {
		return fmt.Errorf("MODEL_API_MAX_LENGTH must be positive")
	}
	if c.Pipeline.MinTranscriptChars <= 0 {
		return fmt.Errorf("PIPELINE_MIN_TRANSCRIPT_CHARS must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
