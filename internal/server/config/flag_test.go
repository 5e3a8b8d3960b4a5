package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-t", "2h", "-r", "redis://r:6379", "-b", "bucket", "-e", "http://endpoint", "-l", "zap",
		},
			expected: &Config{
				HTTPAddr:       "127.0.0.1:9090",
				DatabaseDSN:    "db",
				SecretKey:      "secret",
				TokenTTL:       2 * time.Hour,
				RedisURL:       "redis://r:6379",
				S3Bucket:       "bucket",
				S3BaseEndpoint: "http://endpoint",
				LogBackend:     "zap",
			}},
		{name: "unknown flags ignored", args: []string{"-x", "1", "-c", "conf.yaml", "-a", ":1"},
			expected: &Config{HTTPAddr: ":1"}},
		{name: "invalid duration", args: []string{"-t", "soon"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
