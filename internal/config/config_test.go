package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_PORT", "")
	t.Setenv("CONTEXT_TIMEOUT", "")
	t.Setenv("CACHE_DB", "not-a-number")
	t.Setenv("BLOOM_FILTER_SIZE", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.Equal(t, defaultCacheDB, cfg.Cache.DB)
	assert.Equal(t, uint64(defaultBloomBitSize), cfg.BloomBitSize)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "oracle")
}

func TestConnString(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		d := Database{Driver: DriverMySQL, Host: "db", Port: "3306", User: "forum", Pass: "pw", Name: "forum"}
		dsn := d.ConnString()
		assert.Contains(t, dsn, "forum:pw@tcp(db:3306)/forum")
		assert.Contains(t, dsn, "parseTime=true")
	})

	t.Run("postgres", func(t *testing.T) {
		d := Database{Driver: DriverPostgres, Host: "db", Port: "5432", User: "forum", Pass: "pw", Name: "forum"}
		assert.Equal(t, "host=db user=forum password=pw dbname=forum port=5432 sslmode=disable TimeZone=UTC", d.ConnString())
	})

	t.Run("override", func(t *testing.T) {
		d := Database{Driver: DriverPostgres, DSN: "postgres://x"}
		assert.Equal(t, "postgres://x", d.ConnString())
	})
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	Config{LogLevel: "debug", LogFormat: "json"}.SetupLogging()
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	Config{LogLevel: "loud"}.SetupLogging()
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
