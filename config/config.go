// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/luckydraw/deck"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting the entry points need
type Config struct {
	Port           int    `env:"LUCKYDRAW_PORT,default=8000"`
	ConditionsPath string `env:"LUCKYDRAW_CONDITIONS,default=conditions.json"`
	HandSize       int    `env:"LUCKYDRAW_HAND_SIZE,default=4"`
	Seed           int64  `env:"LUCKYDRAW_SEED,default=0"`
	HistoryPath    string `env:"LUCKYDRAW_HISTORY_PATH"`
	AllowedOrigins string `env:"LUCKYDRAW_ALLOWED_ORIGINS,default=*"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Port:           8000,
		ConditionsPath: "conditions.json",
		HandSize:       deck.DefaultHandSize,
		AllowedOrigins: "*",
	}
}

// Load decodes the environment into a Config and validates it
func Load() (Config, error) {
	cfg := Default()
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that envdecode cannot express
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.HandSize < 0 || c.HandSize > len(deck.New()) {
		return fmt.Errorf("%w: hand size %d: %v", ErrInvalidConfig, c.HandSize, deck.ErrInvalidHandSize)
	}
	if strings.TrimSpace(c.ConditionsPath) == "" {
		return fmt.Errorf("%w: conditions path is empty", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Origins splits AllowedOrigins on commas
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Source returns a source seeded with Seed, or from crypto/rand when Seed is zero
func (c Config) Source() (deck.Source, error) {
	if c.Seed == 0 {
		return deck.NewRandomSource()
	}
	return deck.NewSource(c.Seed), nil
}

// Sources returns a factory handing out one source per session. With a
// non-zero Seed the n-th source is seeded with Seed+n.
func (c Config) Sources() func() (deck.Source, error) {
	if c.Seed == 0 {
		return deck.NewRandomSource
	}
	var n atomic.Int64
	seed := c.Seed
	return func() (deck.Source, error) {
		return deck.NewSource(seed + n.Add(1) - 1), nil
	}
}
