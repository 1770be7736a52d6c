package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"pmis/logger"
)

type Config struct {
	Port           string
	DBType         string
	PostgresURL    string
	MongoURL       string
	MongoDB        string
	MigrationsPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	DraftTTL      time.Duration

	Storage StorageConfig

	CurrencyLocale string
	CurrencySymbol string
	AllowedOrigins []string

	Log logger.LogConfig
}

type StorageConfig struct {
	Driver       string // local, r2 or minio
	Dir          string
	PublicPrefix string
	ExternalURL  string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2PublicURL       string

	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	S3Region          string
	S3UseSSL          bool
	S3Prefix          string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	defLog := logger.DefaultConfig()
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DBType:         strings.ToLower(getenv("DB_TYPE", "postgres")),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		MongoURL:       os.Getenv("MONGO_URL"),
		MongoDB:        getenv("MONGO_DB", "pmis"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "file://db/migrations"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		RedisPrefix:   getenv("REDIS_PREFIX", "pmis"),
		DraftTTL:      time.Duration(getint("DRAFT_TTL_HOURS", 72)) * time.Hour,

		Storage: StorageConfig{
			Driver:       strings.ToLower(getenv("STORAGE_DRIVER", "local")),
			Dir:          getenv("STORAGE_DIR", "./documents"),
			PublicPrefix: getenv("STORAGE_PUBLIC_PREFIX", "/files"),
			ExternalURL:  os.Getenv("EXTERNAL_URL"),

			R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			R2Bucket:          os.Getenv("R2_BUCKET"),
			R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

			S3Endpoint:        os.Getenv("S3_ENDPOINT"),
			S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			S3Bucket:          os.Getenv("S3_BUCKET"),
			S3Region:          os.Getenv("S3_REGION"),
			S3UseSSL:          getbool("S3_USE_SSL", true),
			S3Prefix:          os.Getenv("S3_PREFIX"),
		},

		CurrencyLocale: getenv("CURRENCY_LOCALE", "en-IN"),
		CurrencySymbol: getenv("CURRENCY_SYMBOL", "₹"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		Log: logger.LogConfig{
			Level:      getenv("LOG_LEVEL", defLog.Level),
			Format:     getenv("LOG_FORMAT", defLog.Format),
			TimeFormat: getenv("LOG_TIME_FORMAT", defLog.TimeFormat),
			Output:     getenv("LOG_OUTPUT", defLog.Output),
		},
	}
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getbool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", def).Msg("invalid boolean, using default")
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
