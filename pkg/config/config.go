package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the process configuration read from the environment
type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	PolicyPath string
}

// envPaths are tried in order; the first .env found is loaded
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnv loads the first .env file found next to or above the working directory.
// Variables already set in the environment win.
func LoadEnv() {
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Port:       get("PORT", "8000"),
		GinMode:    os.Getenv("GIN_MODE"),
		LogLevel:   get("LOG_LEVEL", "info"),
		PolicyPath: os.Getenv("SOLVER_POLICY_PATH"),
	}
}

// NewLogger builds a JSON production logger at the configured level, or a
// development logger when the level is "debug"
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if level == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
