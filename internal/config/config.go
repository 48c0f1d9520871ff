package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	defaultTimeout      = 30
	defaultAddress      = ":9090"
	defaultCacheDB      = 0
	defaultBloomBitSize = 10000000
	defaultJWTHours     = 24
)

type Database struct {
	Driver string
	Host   string
	Port   string
	User   string
	Pass   string
	Name   string
	DSN    string
}

type Cache struct {
	Host string
	Port string
	Pass string
	DB   int
}

type Config struct {
	Database       Database
	Cache          Cache
	BloomBitSize   uint64
	ContextTimeout time.Duration
	ServerAddress  string
	JWTSecret      []byte
	JWTTTL         time.Duration
	LogLevel       string
	LogFormat      string
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Database: Database{
			Driver: strings.ToLower(getenv("DATABASE_DRIVER", DriverMySQL)),
			Host:   getenv("DATABASE_HOST", "localhost"),
			Port:   os.Getenv("DATABASE_PORT"),
			User:   os.Getenv("DATABASE_USER"),
			Pass:   os.Getenv("DATABASE_PASS"),
			Name:   os.Getenv("DATABASE_NAME"),
			DSN:    os.Getenv("DATABASE_DSN"),
		},
		Cache: Cache{
			Host: getenv("CACHE_HOST", "localhost"),
			Port: getenv("CACHE_PORT", "6379"),
			Pass: os.Getenv("CACHE_PASS"),
			DB:   getInt("CACHE_DB", defaultCacheDB),
		},
		BloomBitSize:   getUint("BLOOM_FILTER_SIZE", defaultBloomBitSize),
		ContextTimeout: time.Duration(getInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		ServerAddress:  getenv("SERVER_ADDRESS", defaultAddress),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:         time.Duration(getInt("JWT_EXPIRE_HOURS", defaultJWTHours)) * time.Hour,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
	}

	if cfg.Database.Driver != DriverMySQL && cfg.Database.Driver != DriverPostgres {
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
	if len(cfg.JWTSecret) == 0 {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
		if cfg.Database.Driver == DriverPostgres {
			cfg.Database.Port = "5432"
		}
	}
	return cfg, nil
}

// ConnString returns DATABASE_DSN when set, otherwise a DSN for the configured driver.
func (d Database) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			d.Host, d.User, d.Pass, d.Name, d.Port)
	}

	mc := mysqldrv.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, d.Port)
	mc.DBName = d.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func (c Cache) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// SetupLogging configures the package-level logrus logger.
func (c Config) SetupLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.EqualFold(c.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}

func getUint(key string, def uint64) uint64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}
