package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/madhelp/internal/flagx"
	"github.com/dmitrijs2005/madhelp/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields distinguish an
// absent key from a zero value so the file only overrides what it names.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	DatabasePath        *string         `json:"database_path"`
	CoursesFile         *string         `json:"courses_file"`
	FacultySource       *string         `json:"faculty_source"`
	DownloadDir         *string         `json:"download_dir"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestsPerSecond   *float64        `json:"requests_per_second"`
	LogLevel            *string         `json:"log_level"`
	OTLPEndpoint        *string         `json:"otlp_endpoint"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Prefix            *string         `json:"s3_prefix"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	S3AccessKey         *string         `json:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the file named by -c / -config, if any.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.CoursesFile, jc.CoursesFile)
	setString(&cfg.FacultySource, jc.FacultySource)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.OTLPEndpoint, jc.OTLPEndpoint)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
