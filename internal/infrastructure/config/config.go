// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compliance:
//   - III. Config: Store config in the environment
//   - Configuration is loaded from environment variables (BOXOPT_ prefix)
//   - An optional boxopt.yaml may override the defaults
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/infrastructure/render"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BOXOPT"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// Render contains image and text output configuration
	Render RenderConfig `mapstructure:"render"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (e.g., development, staging, production)
	Environment string `mapstructure:"environment"`

	// Version of the application
	Version string `mapstructure:"version"`

	// Debug mode flag
	Debug bool `mapstructure:"debug"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RequestTimeout bounds the handling of a single request
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// MaxRequestSize is the maximum allowed request body size
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// RateLimitRPS is the sustained number of requests per second per client IP
	RateLimitRPS float64 `mapstructure:"rate_limit_rps"`

	// RateLimitBurst is the number of requests a client may burst above RateLimitRPS
	RateLimitBurst int `mapstructure:"rate_limit_burst"`
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig contains logger configuration.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is json or console
	Format string `mapstructure:"format"`
}

// RenderConfig contains output configuration shared by the CLI and the HTTP API.
type RenderConfig struct {
	Width     int     `mapstructure:"width"`
	Height    int     `mapstructure:"height"`
	Elevation float64 `mapstructure:"elevation"`
	Azimuth   float64 `mapstructure:"azimuth"`
	Opacity   float64 `mapstructure:"opacity"`
	Labels    bool    `mapstructure:"labels"`
	Frames    int     `mapstructure:"frames"`
	Delay     int     `mapstructure:"delay"`

	// Precision is the number of decimals shown in text output
	Precision int `mapstructure:"precision"`
}

// Renderer converts the section into a render.Config.
func (r RenderConfig) Renderer() render.Config {
	return render.Config{
		Width:     r.Width,
		Height:    r.Height,
		Elevation: r.Elevation,
		Azimuth:   r.Azimuth,
		Opacity:   r.Opacity,
		Labels:    r.Labels,
		Frames:    r.Frames,
		Delay:     r.Delay,
	}
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (if provided)
//  3. Default values
//
// Parameters:
//   - configFile: explicit config file path, or "" to search the default locations
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func Load(configFile string) (*Config, error) {
	return LoadViper(viper.New(), configFile)
}

// LoadViper is like Load but reads through v, so callers can bind
// command-line flags to configuration keys before loading.
//
// Parameters:
//   - v: the viper instance to populate
//   - configFile: explicit config file path, or "" to search the default locations
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func LoadViper(v *viper.Viper, configFile string) (*Config, error) {
	// Set default values
	setDefaults(v)

	// Set config file settings
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("boxopt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/boxopt")
	}

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		// A missing file is only an error when it was named explicitly
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "boxopt")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.max_request_size", 1<<20)             // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"}) // Allow all origins by default
	v.SetDefault("server.rate_limit_rps", 10)
	v.SetDefault("server.rate_limit_burst", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Render defaults
	d := render.DefaultConfig()
	v.SetDefault("render.width", d.Width)
	v.SetDefault("render.height", d.Height)
	v.SetDefault("render.elevation", d.Elevation)
	v.SetDefault("render.azimuth", d.Azimuth)
	v.SetDefault("render.opacity", d.Opacity)
	v.SetDefault("render.labels", d.Labels)
	v.SetDefault("render.frames", d.Frames)
	v.SetDefault("render.delay", d.Delay)
	v.SetDefault("render.precision", presenter.DefaultPrecision)
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		"app.environment": {EnvPrefix + "_ENVIRONMENT"},
		"server.port":     {EnvPrefix + "_SERVER_PORT", "PORT"}, // Common convention
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the loaded values.
//
// Returns:
//   - error: ErrInvalidConfig wrapping the first problem found
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: server rate limit must be positive", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Render.Precision < 0 || c.Render.Precision > presenter.MaxPrecision {
		return fmt.Errorf("%w: render.precision: %w", ErrInvalidConfig, presenter.ErrInvalidPrecision)
	}
	if err := c.Render.Renderer().Validate(); err != nil {
		return fmt.Errorf("%w: render: %w", ErrInvalidConfig, err)
	}
	return nil
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
//
// Returns:
//   - *Config: The loaded configuration
func MustLoad() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
