package config

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTempConfig writes content to a YAML file in a per-test directory.
func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.API.Address())
	assert.Equal(t, 10*datasize.MB, cfg.API.MaxUpload)
	assert.Equal(t, png.DefaultCompression, cfg.PNG.Level())
}

func TestLoad_File(t *testing.T) {
	path := createTempConfig(t, `
api:
  host: 127.0.0.1
  port: 9090
  max-upload: 512KB
  read-timeout: 5s
png:
  compression: best
log:
  level: debug
  type: json
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.API.Host)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, 512*datasize.KB, cfg.API.MaxUpload)
	assert.Equal(t, 5*time.Second, cfg.API.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.API.WriteTimeout, "unset keys keep their default")
	assert.Equal(t, png.BestCompression, cfg.PNG.Level())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("IMAGE_STEG_API_PORT", "7070")
	t.Setenv("IMAGE_STEG_API_MAX_UPLOAD", "2MB")
	t.Setenv("IMAGE_STEG_PNG_COMPRESSION", "none")

	path := createTempConfig(t, "api:\n  port: 9090\n")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.API.Port, "environment overrides the file")
	assert.Equal(t, 2*datasize.MB, cfg.API.MaxUpload)
	assert.Equal(t, png.NoCompression, cfg.PNG.Level())
}

func TestBindFlags(t *testing.T) {
	t.Setenv("IMAGE_STEG_API_PORT", "7070")

	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.Int("port", 8080, "")
	fs.String("log-level", "info", "")
	fs.String("png.compression", "default", "")
	fs.String("unrelated", "", "")

	v := New()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--port=6060", "--log-level=warn", "--png.compression=fast"}))

	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 6060, cfg.API.Port, "flags override the environment")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, png.BestSpeed, cfg.PNG.Level())
}

func TestBindFlags_UnsetFlagKeepsEnvironment(t *testing.T) {
	t.Setenv("IMAGE_STEG_API_PORT", "7070")

	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.Int("port", 8080, "")

	v := New()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.API.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"ephemeral port", func(c *Config) { c.API.Port = 0 }, ""},
		{"port too large", func(c *Config) { c.API.Port = 70000 }, "api.port"},
		{"negative port", func(c *Config) { c.API.Port = -1 }, "api.port"},
		{"zero upload", func(c *Config) { c.API.MaxUpload = 0 }, "api.max-upload"},
		{"negative timeout", func(c *Config) { c.API.ReadTimeout = -time.Second }, "must not be negative"},
		{"bad compression", func(c *Config) { c.PNG.Compression = "ultra" }, "png.compression"},
		{"bad log type", func(c *Config) { c.Log.Type = "xml" }, "log.type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_InvalidFileValue(t *testing.T) {
	path := createTempConfig(t, "png:\n  compression: ultra\n")

	_, err := Load(New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "png.compression")
}
