package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const envPrefix = "storefront"

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Config is read from STOREFRONT_* environment variables.
type Config struct {
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"file"`
	StoragePath    string `envconfig:"STORAGE_PATH" default:".storefront.json"`
	StoragePrefix  string `envconfig:"STORAGE_PREFIX" default:"boutique"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"storefront"`

	// CatalogDB wins over CatalogFile; with neither set the embedded demo
	// catalog is used.
	CatalogFile string `envconfig:"CATALOG_FILE"`
	CatalogDB   string `envconfig:"CATALOG_DB"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.Wrapf(ErrUnknownBackend, "%q", c.StorageBackend)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// NewLogger builds the process logger. Output goes to stderr so command
// output on stdout stays clean.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if c.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
