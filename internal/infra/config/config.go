package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceFile  = "file"
	SourceMongo = "mongo"
	SourceS3    = "s3"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	HTTPAddr         string
	CatalogSource    string
	CatalogPath      string
	CatalogRefresh   string
	MongoURI         string
	MongoDB          string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	S3Bucket         string
	S3Object         string
	S3UseSSL         bool
	KafkaBrokers     []string
	KafkaTopicPrefix string
	AdminUser        string
	AdminPassword    string
	ShutdownTimeout  time.Duration
}

// LoadDotEnv copies values from the given files into the environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CatalogSource:    strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		CatalogPath:      getEnv("CATALOG_PATH", "data/rooms.json"),
		CatalogRefresh:   strings.TrimSpace(os.Getenv("CATALOG_REFRESH")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "bnb"),
		S3Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:9000"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:      getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:         getEnv("S3_BUCKET", "bnb-site"),
		S3Object:         getEnv("S3_OBJECT", "rooms.json"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		AdminUser:        getEnv("ADMIN_USER", "admin"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.CatalogSource {
	case SourceFile:
		if cfg.CatalogPath == "" {
			return Config{}, fmt.Errorf("CATALOG_PATH is required for the file source")
		}
	case SourceMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required for the mongo source")
		}
	case SourceS3:
		if cfg.S3Bucket == "" || cfg.S3Object == "" {
			return Config{}, fmt.Errorf("S3_BUCKET and S3_OBJECT are required for the s3 source")
		}
	default:
		return Config{}, fmt.Errorf("invalid CATALOG_SOURCE %q", cfg.CatalogSource)
	}
	return cfg, nil
}

// AdminEnabled reports whether the admin endpoints should be mounted.
func (c Config) AdminEnabled() bool {
	return c.AdminUser != "" && c.AdminPassword != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
