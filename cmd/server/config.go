package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_naco/internal/core/domain"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
	DefaultStreamTimeout  = 60 * time.Second
)

// ErrInvalidCase is returned when a config file names a case mode other
// than "upper" or "lower".
var ErrInvalidCase = errors.New("invalid case mode")

// Config holds the server settings. It can be loaded from YAML and then
// overridden by command-line flags.
type Config struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxRequestSize int           `yaml:"max_request_size"`
	Concurrency    int           `yaml:"concurrency"`
	WarmUp         bool          `yaml:"warm_up"`
	LogFile        string        `yaml:"log_file"`

	// DefaultCase applies when a request does not name a case.
	DefaultCase string       `yaml:"default_case"`
	Stream      StreamConfig `yaml:"stream"`
}

// StreamConfig tunes the /normalize/stream endpoint.
type StreamConfig struct {
	Parallel  bool          `yaml:"parallel"`
	Workers   int           `yaml:"workers"`
	BatchSize int           `yaml:"batch_size"`
	ChunkSize int           `yaml:"chunk_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Port:           DefaultPort,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxRequestSize: DefaultMaxRequestSize,
		Concurrency:    DefaultConcurrency,
		WarmUp:         true,
		DefaultCase:    domain.CaseUpper,
		Stream: StreamConfig{
			Parallel: true,
			Timeout:  DefaultStreamTimeout,
		},
	}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML data on top of DefaultConfig. Keys missing from
// the document keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyDefaults replaces zero values that an explicit YAML key may have set.
func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.MaxRequestSize == 0 {
		cfg.MaxRequestSize = DefaultMaxRequestSize
	}
	if cfg.DefaultCase == "" {
		cfg.DefaultCase = domain.CaseUpper
	}
	if cfg.Stream.Timeout == 0 {
		cfg.Stream.Timeout = DefaultStreamTimeout
	}
}

// Validate checks the values a normalizer would otherwise accept silently.
func (c Config) Validate() error {
	if c.DefaultCase != domain.CaseUpper && c.DefaultCase != domain.CaseLower {
		return fmt.Errorf("default_case %q: %w", c.DefaultCase, ErrInvalidCase)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxRequestSize < 0 {
		return fmt.Errorf("max_request_size must not be negative")
	}
	return nil
}

// parseFlags builds the configuration from the command line. When -config
// is given the file is loaded first and only flags that were set on the
// command line override it.
func parseFlags(args []string) (Config, error) {
	def := DefaultConfig()

	fs := flag.NewFlagSet("naco-server", flag.ContinueOnError)
	configFile := fs.String("config", "", "YAML config file")
	port := fs.Int("port", def.Port, "HTTP server port")
	readTimeout := fs.Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	maxRequestSize := fs.Int("max-request-size", def.MaxRequestSize, "Maximum request size in bytes")
	concurrency := fs.Int("concurrency", def.Concurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := fs.Bool("warm-up", def.WarmUp, "Perform system warm-up on startup")
	logFile := fs.String("log-file", def.LogFile, "Log file path (empty = stdout)")
	defaultCase := fs.String("case", def.DefaultCase, "Case used when a request names none (upper or lower)")
	parallel := fs.Bool("parallel", def.Stream.Parallel, "Normalize stream requests on a worker pool")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if *configFile != "" {
		var err error
		cfg, err = LoadConfig(*configFile)
		if err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "read-timeout":
			cfg.ReadTimeout = *readTimeout
		case "write-timeout":
			cfg.WriteTimeout = *writeTimeout
		case "max-request-size":
			cfg.MaxRequestSize = *maxRequestSize
		case "concurrency":
			cfg.Concurrency = *concurrency
		case "warm-up":
			cfg.WarmUp = *warmUp
		case "log-file":
			cfg.LogFile = *logFile
		case "case":
			cfg.DefaultCase = *defaultCase
		case "parallel":
			cfg.Stream.Parallel = *parallel
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
