package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres  = "postgres"
	DriverMongo     = "mongodb"
	DriverFirestore = "firestore"

	StorageLocal = "local"
	StorageS3    = "s3"
	StorageGCS   = "gcs"

	SinkLog   = "log"
	SinkRedis = "redis"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Firestore FirestoreConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Analytics AnalyticsConfig
	Gemini    GeminiConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	PublicURL       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	HealthInterval time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

type StorageConfig struct {
	Type            string
	BasePath        string
	BaseURL         string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKey       string
	SecretKey       string
	CredentialsFile string
	MaxUploadBytes  int64
}

type AnalyticsConfig struct {
	Enabled    bool
	Sink       string
	Stream     string
	BufferSize int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type LoggingConfig struct {
	Level      string
	Production bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("PUBLIC_URL", "http://localhost:8080")

	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_HEALTH_INTERVAL", "15s")
	viper.SetDefault("MONGO_DATABASE", "glosscard")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "5m")

	viper.SetDefault("STORAGE_TYPE", StorageLocal)
	viper.SetDefault("STORAGE_PATH", "public")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)

	viper.SetDefault("ANALYTICS_ENABLED", true)
	viper.SetDefault("ANALYTICS_SINK", SinkLog)
	viper.SetDefault("ANALYTICS_STREAM", "glosscard:analytics")
	viper.SetDefault("ANALYTICS_BUFFER", 256)

	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "logs/api.log")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 30)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)
	viper.SetDefault("LOG_COMPRESS", true)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:            viper.GetString("SERVER_HOST"),
			Port:            viper.GetInt("SERVER_PORT"),
			Env:             viper.GetString("ENV"),
			PublicURL:       viper.GetString("PUBLIC_URL"),
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:         viper.GetString("DB_DRIVER"),
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetInt("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			DBName:         viper.GetString("DB_NAME"),
			SSLMode:        viper.GetString("DB_SSL_MODE"),
			HealthInterval: viper.GetDuration("DB_HEALTH_INTERVAL"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       viper.GetString("FIRESTORE_PROJECT_ID"),
			CredentialsFile: viper.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetDuration("REDIS_CACHE_TTL"),
		},
		Storage: StorageConfig{
			Type:            viper.GetString("STORAGE_TYPE"),
			BasePath:        viper.GetString("STORAGE_PATH"),
			BaseURL:         viper.GetString("STORAGE_BASE_URL"),
			Bucket:          viper.GetString("STORAGE_BUCKET"),
			Region:          viper.GetString("STORAGE_REGION"),
			Endpoint:        viper.GetString("STORAGE_ENDPOINT"),
			AccessKey:       viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:       viper.GetString("STORAGE_SECRET_KEY"),
			CredentialsFile: viper.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			MaxUploadBytes:  viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Analytics: AnalyticsConfig{
			Enabled:    viper.GetBool("ANALYTICS_ENABLED"),
			Sink:       viper.GetString("ANALYTICS_SINK"),
			Stream:     viper.GetString("ANALYTICS_STREAM"),
			BufferSize: viper.GetInt("ANALYTICS_BUFFER"),
		},
		Gemini: GeminiConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Model:  viper.GetString("GEMINI_MODEL"),
		},
		Logging: LoggingConfig{
			Level:      viper.GetString("LOG_LEVEL"),
			Production: viper.GetString("ENV") == "production",
			File:       viper.GetString("LOG_FILE"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
			Compress:   viper.GetBool("LOG_COMPRESS"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo URI is required")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo database name is required")
		}
	case DriverFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("firestore project ID is required")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Storage.Type {
	case StorageLocal:
		if c.Storage.BasePath == "" {
			return fmt.Errorf("storage path is required for local storage")
		}
	case StorageS3, StorageGCS:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required for %s storage", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("upload size limit must be positive")
	}

	switch c.Analytics.Sink {
	case SinkLog:
	case SinkRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("redis analytics sink requires REDIS_ENABLED")
		}
	default:
		return fmt.Errorf("unsupported analytics sink: %q", c.Analytics.Sink)
	}

	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}
