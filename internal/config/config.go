package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Logging struct {
	Level  string // debug, info, warn, error
	Format string // "json" o "text"
	File   string // empty = stdout
}

type Kafka struct {
	Brokers []string // empty = relay disabled
	Topic   string
}

type Config struct {
	Port string

	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	Logging Logging
	Kafka   Kafka
}

// KafkaEnabled reports whether chat updates should be relayed to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadEnvFile preloads variables from a dotenv file. A missing file is not
// an error; variables already set in the environment win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads all env vars and builds the config
func Load() (*Config, error) {
	if err := LoadEnvFile(getEnv("DCA_ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port: getEnv("DCA_PORT", getEnv("PORT", "3000")),

		AllowedOrigins:  getSliceEnv("DCA_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: time.Duration(getIntEnv("DCA_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,

		Logging: Logging{
			Level:  getEnv("DCA_LOG_LEVEL", "info"),
			Format: getEnv("DCA_LOG_FORMAT", "json"),
			File:   getEnv("DCA_LOG_FILE", ""),
		},

		Kafka: Kafka{
			Brokers: getSliceEnv("DCA_KAFKA_BROKERS", nil),
			Topic:   getEnv("DCA_KAFKA_TOPIC", "dca-chat-updates"),
		},
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", cfg.Port, err)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg, nil
}
