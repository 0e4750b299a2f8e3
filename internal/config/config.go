// SPDX-License-Identifier: EPL-2.0

// Package config reads vgmdecode settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel      zapcore.Level
	BufferSamples int
	LoopCount     int
	OutputRate    int // 0 keeps the source rate
}

// Load returns the configuration from VGM_* variables, falling back to
// defaults for unset ones. A set but malformed value is an error.
func Load() (*Config, error) {
	var cfg Config

	if err := cfg.LogLevel.Set(getEnv("VGM_LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("VGM_LOG_LEVEL: %w", err)
	}

	var err error
	if cfg.BufferSamples, err = getEnvInt("VGM_BUFFER_SAMPLES", 4096); err != nil {
		return nil, err
	}
	if cfg.LoopCount, err = getEnvInt("VGM_LOOP_COUNT", 2); err != nil {
		return nil, err
	}
	if cfg.OutputRate, err = getEnvInt("VGM_OUTPUT_RATE", 0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BufferSamples < 1 {
		return fmt.Errorf("%w: buffer samples %d", ErrInvalidValue, c.BufferSamples)
	}
	if c.LoopCount < 0 {
		return fmt.Errorf("%w: loop count %d", ErrInvalidValue, c.LoopCount)
	}
	if c.OutputRate < 0 {
		return fmt.Errorf("%w: output rate %d", ErrInvalidValue, c.OutputRate)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
