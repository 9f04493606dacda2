package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Modes the harness can run in. Mock keeps every external proof system
// stubbed; integration delegates proof verification to the real verifier.
const (
	ModeMock        = "mock"
	ModeIntegration = "integration"
)

type Config struct {
	Environment string `yaml:"environment"`
	Mode        string `yaml:"mode"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Fixtures struct {
		Seed      int64         `yaml:"seed"`
		Length    int           `yaml:"length"`
		StartDate string        `yaml:"start_date"`
		Backend   string        `yaml:"backend"` // kafka | clickhouse | none
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		ReplayGap time.Duration `yaml:"replay_gap"`
	} `yaml:"fixtures"`
	Verifier struct {
		URL       string        `yaml:"url"`
		Algorithm string        `yaml:"algorithm"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"verifier"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			Enabled    bool          `yaml:"enabled"`
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Queue struct {
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"queue"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// TEST_MODE and RANDOM_SEED mirror the names the CI pipeline exports.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TEST_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("RANDOM_SEED must be an integer, got %q", v)
		}
		c.Fixtures.Seed = seed
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Fixtures.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("VERIFIER_URL"); v != "" {
		c.Verifier.URL = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Mode != ModeMock && c.Mode != ModeIntegration {
		return fmt.Errorf("mode must be 'mock' or 'integration', got '%s'", c.Mode)
	}
	if c.Mode == ModeIntegration && c.Verifier.URL == "" {
		return fmt.Errorf("verifier.url is required in integration mode")
	}
	if c.Fixtures.Seed < 0 {
		return fmt.Errorf("fixtures.seed must be non-negative, got %d", c.Fixtures.Seed)
	}
	if c.Fixtures.Length <= 0 {
		return fmt.Errorf("fixtures.length must be positive, got %d", c.Fixtures.Length)
	}
	switch c.Fixtures.Backend {
	case "kafka", "clickhouse", "none":
	default:
		return fmt.Errorf("fixtures.backend must be 'kafka', 'clickhouse' or 'none', got '%s'", c.Fixtures.Backend)
	}
	return nil
}

// IsMock reports whether the harness runs with stubbed proof systems.
func (c *Config) IsMock() bool {
	return c.Mode != ModeIntegration
}
