package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/madhelp/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "MADHELP_"

// parseEnv loads the dotenv file (-e / -env, default ".env") without
// overriding variables already set, then overlays cfg with MADHELP_*
// variables. A missing default .env is not an error; a missing file named
// on the command line is.
func parseEnv(cfg *Config) {
	path := flagx.EnvFilePath(os.Args[1:])
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	cfg.ServerURL = getEnv("SERVER_URL", cfg.ServerURL)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.CoursesFile = getEnv("COURSES_FILE", cfg.CoursesFile)
	cfg.FacultySource = getEnv("FACULTY_SOURCE", cfg.FacultySource)
	cfg.DownloadDir = getEnv("DOWNLOAD_DIR", cfg.DownloadDir)
	cfg.RequestTimeout = getDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.OnlineCheckInterval = getDuration("ONLINE_CHECK_INTERVAL", cfg.OnlineCheckInterval)
	cfg.RequestsPerSecond = getFloat("REQUESTS_PER_SECOND", cfg.RequestsPerSecond)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.S3Bucket = getEnv("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Prefix = getEnv("S3_PREFIX", cfg.S3Prefix)
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", cfg.S3BaseEndpoint)
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.S3SecretKey)

	// The standard OpenTelemetry variable is honoured as well.
	cfg.OTLPEndpoint = getEnv("OTLP_ENDPOINT", cfg.OTLPEndpoint)
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); v != "" && cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = v
	}
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go duration strings ("30s") or whole seconds ("30").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
