// Package config loads runtime settings from defaults, an optional YAML file,
// IMAGE_STEG_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-steg/internal/raster"
)

const (
	environmentVariablePrefix = "IMAGE_STEG"
	configType                = "yaml"
)

// Keys
const (
	KeyAPIHost         = "api.host"
	KeyAPIPort         = "api.port"
	KeyAPIMaxUpload    = "api.max-upload"
	KeyAPIReadTimeout  = "api.read-timeout"
	KeyAPIWriteTimeout = "api.write-timeout"
	KeyPNGCompression  = "png.compression"
	KeyLogLevel        = "log.level"
	KeyLogType         = "log.type"
)

var (
	environmentVariableReplace = strings.NewReplacer(".", "_", "-", "_")
	configDecoderHook          = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
)

// Config is the fully resolved configuration.
type Config struct {
	API API `mapstructure:"api"`
	PNG PNG `mapstructure:"png"`
	Log Log `mapstructure:"log"`
}

// API configures the HTTP server.
type API struct {
	Host         string            `mapstructure:"host"`
	Port         int               `mapstructure:"port"`
	MaxUpload    datasize.ByteSize `mapstructure:"max-upload"`
	ReadTimeout  time.Duration     `mapstructure:"read-timeout"`
	WriteTimeout time.Duration     `mapstructure:"write-timeout"`
}

// Address returns host:port for net.Listen.
func (a API) Address() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// PNG configures how encoded images are written.
type PNG struct {
	Compression string `mapstructure:"compression"`
}

// Level returns the compression level named by Compression.
func (p PNG) Level() png.CompressionLevel {
	level, err := raster.ParseCompression(p.Compression)
	if err != nil {
		return png.DefaultCompression
	}
	return level
}

// Log configures the global logger.
type Log struct {
	Level string `mapstructure:"level"`
	Type  string `mapstructure:"type"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: API{
			Host:         "0.0.0.0",
			Port:         8080,
			MaxUpload:    10 * datasize.MB,
			ReadTimeout:  20 * time.Second,
			WriteTimeout: 20 * time.Second,
		},
		PNG: PNG{Compression: "default"},
		Log: Log{Level: "info", Type: "text"},
	}
}

// New returns a viper instance with defaults and environment lookup wired.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvPrefix(environmentVariablePrefix)
	v.SetEnvKeyReplacer(environmentVariableReplace)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(KeyAPIHost, d.API.Host)
	v.SetDefault(KeyAPIPort, d.API.Port)
	v.SetDefault(KeyAPIMaxUpload, d.API.MaxUpload.String())
	v.SetDefault(KeyAPIReadTimeout, d.API.ReadTimeout.String())
	v.SetDefault(KeyAPIWriteTimeout, d.API.WriteTimeout.String())
	v.SetDefault(KeyPNGCompression, d.PNG.Compression)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogType, d.Log.Type)
	return v
}

// BindFlags binds every flag in fs named after a key. A key is matched as
// written (api.port), dashed (api-port) or without its section (port).
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeyAPIHost, KeyAPIPort, KeyAPIMaxUpload, KeyAPIReadTimeout, KeyAPIWriteTimeout,
		KeyPNGCompression, KeyLogLevel, KeyLogType,
	} {
		var f *pflag.Flag
		for _, name := range []string{key, strings.Replace(key, ".", "-", 1), key[strings.Index(key, ".")+1:]} {
			if f = fs.Lookup(name); f != nil {
				break
			}
		}
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// Load reads the optional config file and resolves v into a Config.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var out Config
	if err := v.Unmarshal(&out, configDecoderHook); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid %s: %d", KeyAPIPort, c.API.Port)
	}
	if c.API.MaxUpload == 0 {
		return fmt.Errorf("invalid %s: must be greater than zero", KeyAPIMaxUpload)
	}
	if c.API.ReadTimeout < 0 || c.API.WriteTimeout < 0 {
		return fmt.Errorf("invalid %s or %s: must not be negative", KeyAPIReadTimeout, KeyAPIWriteTimeout)
	}
	if _, err := raster.ParseCompression(c.PNG.Compression); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyPNGCompression, err)
	}
	switch strings.ToLower(c.Log.Type) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid %s: %q (want text or json)", KeyLogType, c.Log.Type)
	}
	return nil
}
