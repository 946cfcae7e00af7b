package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	MySQLDSN       string
	MigrateOnStart bool
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	CORSOrigin     string
	RequestTimeout time.Duration

	CloudinaryBase   string
	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	UploadRPS        int
	UploadWorkers    int
	MaxImageBytes    int64
	MaxUpdateBytes   int64
}

// Load reads the process environment. A .env file in the working directory,
// when present, is applied first without overriding variables already set.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":5000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_booking?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		MigrateOnStart: env("MIGRATE_ON_START", "true") == "true",
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		JWTSecret:      env("JWT_SECRET", ""),
		TokenTTL:       time.Duration(atoi("TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:     atoi("BCRYPT_COST", 8),
		CORSOrigin:     env("CORS_ORIGIN", "http://localhost:5173"),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,

		CloudinaryBase:   env("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1"),
		CloudinaryCloud:  env("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    env("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: env("CLOUDINARY_API_SECRET", ""),
		UploadRPS:        atoi("UPLOAD_RPS", 10),
		UploadWorkers:    atoi("UPLOAD_WORKERS", 6),
		MaxImageBytes:    int64(atoi("MAX_IMAGE_BYTES", 5*1024*1024)),
		MaxUpdateBytes:   int64(atoi("MAX_UPDATE_BYTES", 35*1024*1024)),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	if c.CloudinaryKey == "" || c.CloudinarySecret == "" {
		log.Warn().Msg("CLOUDINARY_API_KEY or CLOUDINARY_API_SECRET is empty")
	}
	return c
}

// MigrateURL turns the driver DSN into the URL form golang-migrate expects.
func (c Config) MigrateURL() string {
	return "mysql://" + c.MySQLDSN
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
