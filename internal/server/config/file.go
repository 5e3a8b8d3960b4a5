package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/recrutement/internal/flagx"
	"github.com/dmitrijs2005/recrutement/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// "168h" style strings or integer nanoseconds. Empty fields leave the
// current value untouched.
type FileConfig struct {
	HTTPAddr        string         `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	MigrateOnStart  *bool          `json:"migrate_on_start" yaml:"migrate_on_start"`
	SecretKey       string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL        timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	RequestTimeout  timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	CORSOrigins     []string       `json:"cors_origins" yaml:"cors_origins"`
	RedisURL        string         `json:"redis_url" yaml:"redis_url"`
	S3AccessKey     string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Bucket        string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region        string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	DocumentURLTTL  timex.Duration `json:"document_url_ttl" yaml:"document_url_ttl"`
	LogBackend      string         `json:"log_backend" yaml:"log_backend"`
	Env             string         `json:"env" yaml:"env"`

	AllowCandidatSignup *bool `json:"allow_candidat_signup" yaml:"allow_candidat_signup"`
}

// parseFile overlays values from the file given by -c/-config. JSON is used
// for *.json, YAML otherwise.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	fc := &FileConfig{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, fc)
	} else {
		err = yaml.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	if fc.MigrateOnStart != nil {
		c.MigrateOnStart = *fc.MigrateOnStart
	}
	if fc.AllowCandidatSignup != nil {
		c.AllowCandidatSignup = *fc.AllowCandidatSignup
	}
	setString(&c.SecretKey, fc.SecretKey)
	if fc.TokenTTL.Duration != 0 {
		c.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.RequestTimeout.Duration != 0 {
		c.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.ShutdownTimeout.Duration != 0 {
		c.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}
	setString(&c.RedisURL, fc.RedisURL)
	setString(&c.S3AccessKey, fc.S3AccessKey)
	setString(&c.S3SecretKey, fc.S3SecretKey)
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	if fc.DocumentURLTTL.Duration != 0 {
		c.DocumentURLTTL = fc.DocumentURLTTL.Duration
	}
	setString(&c.LogBackend, fc.LogBackend)
	setString(&c.Env, fc.Env)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
