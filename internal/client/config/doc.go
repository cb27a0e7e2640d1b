// Package config loads runtime configuration for the MadHelp CLI.
//
// # Sources and precedence
//
//  1. Built-in defaults ((*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed MADHELP_, after loading an optional
//     dotenv file (-e / -env, default ".env").
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work.
// Keys that are absent leave the earlier value untouched.
//
//	{
//	  "server_url": "https://madhelp.example.edu",
//	  "database_path": "~/.madhelp/madhelp.db",
//	  "courses_file": "courses.csv",
//	  "faculty_source": "api",
//	  "download_dir": "downloads",
//	  "request_timeout": "30s",
//	  "online_check_interval": "5s",
//	  "requests_per_second": 5,
//	  "log_level": "info",
//	  "s3_bucket": "madhelp-archive",
//	  "s3_region": "us-east-1"
//	}
//
// # Environment
//
//	MADHELP_SERVER_URL, MADHELP_DATABASE_PATH, MADHELP_COURSES_FILE,
//	MADHELP_FACULTY_SOURCE, MADHELP_DOWNLOAD_DIR, MADHELP_REQUEST_TIMEOUT,
//	MADHELP_ONLINE_CHECK_INTERVAL, MADHELP_REQUESTS_PER_SECOND,
//	MADHELP_LOG_LEVEL, MADHELP_OTLP_ENDPOINT (or OTEL_EXPORTER_OTLP_ENDPOINT),
//	MADHELP_S3_BUCKET, MADHELP_S3_PREFIX, MADHELP_S3_REGION,
//	MADHELP_S3_BASE_ENDPOINT, MADHELP_S3_ACCESS_KEY, MADHELP_S3_SECRET_KEY
package config
