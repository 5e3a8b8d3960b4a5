package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from environment variables. Variables from
// envFile (a dotenv file, optional) are used only when the process
// environment does not define them.
//
// Recognized variables:
//
//	PORT, HTTP_ADDR, DATABASE_URL, MIGRATE_ON_START, CANDIDAT_SIGNUP, JWT_SECRET, TOKEN_TTL,
//	REQUEST_TIMEOUT, CORS_ORIGINS, REDIS_URL, S3_ACCESS_KEY, S3_SECRET_KEY,
//	S3_BUCKET, S3_REGION, S3_ENDPOINT, DOCUMENT_URL_TTL, LOG_BACKEND, ENV
func parseEnv(config *Config, envFile string, lookup func(string) (string, bool)) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("error reading %s: %w", envFile, err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		config.HTTPAddr = ":" + v
	}
	if v, ok := get("HTTP_ADDR"); ok {
		config.HTTPAddr = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{"MIGRATE_ON_START", &config.MigrateOnStart},
		{"CANDIDAT_SIGNUP", &config.AllowCandidatSignup},
	}
	for _, b := range bools {
		v, ok := get(b.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.key, err)
		}
		*b.dst = parsed
	}
	if v, ok := get("JWT_SECRET"); ok {
		config.SecretKey = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"TOKEN_TTL", &config.TokenTTL},
		{"REQUEST_TIMEOUT", &config.RequestTimeout},
		{"DOCUMENT_URL_TTL", &config.DocumentURLTTL},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v, ok := get("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}
	if v, ok := get("REDIS_URL"); ok {
		config.RedisURL = v
	}
	if v, ok := get("S3_ACCESS_KEY"); ok {
		config.S3AccessKey = v
	}
	if v, ok := get("S3_SECRET_KEY"); ok {
		config.S3SecretKey = v
	}
	if v, ok := get("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := get("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := get("S3_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := get("LOG_BACKEND"); ok {
		config.LogBackend = v
	}
	if v, ok := get("ENV"); ok {
		config.Env = v
	}
	return nil
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
