package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: DriverPostgres,
			Host:   "localhost",
			User:   "glosscard",
			DBName: "glosscard",
		},
		Storage:   StorageConfig{Type: StorageLocal, BasePath: "public", MaxUploadBytes: 5 << 20},
		Analytics: AnalyticsConfig{Sink: SinkLog},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid postgres config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing database host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Host = ""
		assert.EqualError(t, cfg.Validate(), "database host is required")
	})

	t.Run("mongo requires URI", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = DriverMongo
		cfg.Mongo.Database = "glosscard"
		assert.EqualError(t, cfg.Validate(), "mongo URI is required")

		cfg.Mongo.URI = "mongodb://localhost:27017"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("firestore requires project", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = DriverFirestore
		assert.EqualError(t, cfg.Validate(), "firestore project ID is required")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "couchdb"
		assert.Error(t, cfg.Validate())
	})

	t.Run("cloud storage requires bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Type = StorageS3
		assert.EqualError(t, cfg.Validate(), "storage bucket is required for s3 storage")

		cfg.Storage.Type = StorageGCS
		cfg.Storage.Bucket = "glosscard.appspot.com"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("redis sink requires redis", func(t *testing.T) {
		cfg := validConfig()
		cfg.Analytics.Sink = SinkRedis
		assert.Error(t, cfg.Validate())

		cfg.Redis.Enabled = true
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "cards")
	t.Setenv("DB_NAME", "cards")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
	assert.Equal(t, "host=db.internal port=5432 user=cards password= dbname=cards sslmode=disable", cfg.Database.GetDSN())
}

func TestLoadMissingRequiredFields(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DB_HOST", "")

	_, err := Load()
	assert.EqualError(t, err, "database host is required")
}
