package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full process configuration.
type Config struct {
	Server Server
	Redis   RedisConfig
	Log     LogConfig
	Tracing TracingConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// RedisConfig locates the single Redis instance backing the directory.
type RedisConfig struct {
	Host         string
	Port         int
	DB           int
	Password     string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns host:port for the Redis dialer.
func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string
	Format string
}

// TracingConfig controls span sampling. SampleRatio is the probability a root
// span is recorded.
type TracingConfig struct {
	SampleRatio float64
}

func defaults(v *viper.Viper) {
	v.SetDefault("PHONEDIR_ADDR", ":8000")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("TRACE_SAMPLE_RATIO", 1.0)
}

// Load reads the optional dotenv files (missing files are skipped), then builds
// a Config from the environment. Variables already set in the environment win
// over dotenv values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	cfg := Config{
		Server: Server{
			Addr:            v.GetString("PHONEDIR_ADDR"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Redis: RedisConfig{
			Host:         v.GetString("REDIS_HOST"),
			Port:         v.GetInt("REDIS_PORT"),
			DB:           v.GetInt("REDIS_DB"),
			Password:     v.GetString("REDIS_PASSWORD"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Tracing: TracingConfig{
			SampleRatio: v.GetFloat64("TRACE_SAMPLE_RATIO"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Redis.Host == "" {
		return errors.New("REDIS_HOST must not be empty")
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT out of range: %d", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative: %d", c.Redis.DB)
	}
	if c.Server.Addr == "" {
		return errors.New("PHONEDIR_ADDR must not be empty")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATIO must be within [0, 1]: %g", c.Tracing.SampleRatio)
	}
	return nil
}
