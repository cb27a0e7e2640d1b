package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/madhelp/internal/flagx"
)

var ownFlags = []string{"-s", "-d", "-courses", "-faculty", "-o", "-t", "-i", "-rps", "-log", "-bucket"}

// parseFlags overlays cfg with the command-line flags it owns:
//
//	-s string       backend base URL
//	-d string       local database file
//	-courses string course catalogue CSV
//	-faculty string faculty source: "api", *.json, *.csv, *.db or postgres DSN
//	-o string       download directory
//	-t int          request timeout (seconds)
//	-i int          online check interval (seconds)
//	-rps float      client-side request rate limit
//	-log string     log level
//	-bucket string  S3 bucket for document archiving
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], ownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.CoursesFile, "courses", cfg.CoursesFile, "course catalogue CSV")
	fs.StringVar(&cfg.FacultySource, "faculty", cfg.FacultySource, "faculty source")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "rps", cfg.RequestsPerSecond, "requests per second, 0 disables limiting")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket for document archiving")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
