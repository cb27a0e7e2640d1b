package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds runtime settings for the MadHelp CLI.
//
// Durations are time.Duration; RequestsPerSecond <= 0 disables client-side
// rate limiting. An empty S3Bucket disables document archiving and an empty
// OTLPEndpoint disables tracing export.
type Config struct {
	ServerURL           string
	DatabasePath        string
	CoursesFile         string
	FacultySource       string
	DownloadDir         string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	RequestsPerSecond   float64
	LogLevel            string
	OTLPEndpoint        string

	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DatabasePath = "madhelp.db"
	c.CoursesFile = "courses.csv"
	c.FacultySource = "api"
	c.DownloadDir = "downloads"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestsPerSecond = 5
	c.LogLevel = "warn"
	c.S3Prefix = "madhelp"
	c.S3Region = "us-east-1"
}

// LoadConfig applies defaults, then the JSON file, then the environment
// (including an optional .env file) and finally command-line flags. Later
// sources win. Malformed input panics, as the process cannot start with it.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q must be an absolute http(s) URL", c.ServerURL)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if strings.TrimSpace(c.DownloadDir) == "" {
		return fmt.Errorf("download dir cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	if c.S3Bucket != "" && c.S3Region == "" {
		return fmt.Errorf("s3 region is required when a bucket is set")
	}
	return nil
}
