// Package config loads simulator configuration documents. The same schema is
// accepted in YAML and JSON so traces and configurations can be shared with
// other implementations of the model.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfig is wrapped by all configuration validation failures.
var ErrConfig = errors.New("invalid configuration")

// L1Cache describes the cache geometry.
type L1Cache struct {
	SizeKB        int    `yaml:"size_kb" json:"size_kb"`
	BlockSize     int    `yaml:"block_size" json:"block_size"`
	Associativity int    `yaml:"associativity" json:"associativity"`
	Policy        string `yaml:"policy,omitempty" json:"policy,omitempty"`
}

// DRAM carries the memory timing parameters. The batch simulator does not
// consume them, but they are part of the shared document schema and are
// validated and preserved on round trips.
type DRAM struct {
	Banks int `yaml:"banks" json:"banks"`
	TRCD  int `yaml:"tRCD" json:"tRCD"`
	TCAS  int `yaml:"tCAS" json:"tCAS"`
	TRP   int `yaml:"tRP" json:"tRP"`
	TRAS  int `yaml:"tRAS" json:"tRAS"`
}

// Config is a full configuration document.
type Config struct {
	L1Cache L1Cache `yaml:"l1_cache" json:"l1_cache"`
	DRAM    DRAM    `yaml:"dram" json:"dram"`
}

// Load reads a configuration file, choosing the codec by extension:
// .yaml/.yml or .json.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q",
			ErrConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that both sections are present and self-consistent.
func (c *Config) Validate() error {
	if err := c.L1Cache.validate(); err != nil {
		return err
	}

	return c.DRAM.validate()
}

func (c L1Cache) validate() error {
	if c.SizeKB < 1 {
		return fmt.Errorf("%w: l1_cache.size_kb must be at least 1, got %d",
			ErrConfig, c.SizeKB)
	}

	if c.BlockSize < 1 || c.BlockSize&(c.BlockSize-1) != 0 {
		return fmt.Errorf(
			"%w: l1_cache.block_size must be a positive power of two, got %d",
			ErrConfig, c.BlockSize)
	}

	if c.Associativity < 1 {
		return fmt.Errorf(
			"%w: l1_cache.associativity must be at least 1, got %d",
			ErrConfig, c.Associativity)
	}

	return nil
}

func (d DRAM) validate() error {
	if d.Banks < 1 {
		return fmt.Errorf("%w: dram.banks must be at least 1, got %d",
			ErrConfig, d.Banks)
	}

	timings := map[string]int{
		"tRCD": d.TRCD,
		"tCAS": d.TCAS,
		"tRP":  d.TRP,
		"tRAS": d.TRAS,
	}
	for name, v := range timings {
		if v < 1 {
			return fmt.Errorf("%w: dram.%s must be at least 1, got %d",
				ErrConfig, name, v)
		}
	}

	return nil
}

// CacheParams derives the simulator geometry from the cache section. The
// total capacity must divide into full sets.
func (c *Config) CacheParams() (numSets, associativity, blockSize int, err error) {
	capacity := c.L1Cache.SizeKB * 1024
	lineCapacity := c.L1Cache.BlockSize * c.L1Cache.Associativity

	if capacity%lineCapacity != 0 {
		return 0, 0, 0, fmt.Errorf(
			"%w: %d KB does not divide into full sets of %d ways x %d B",
			ErrConfig, c.L1Cache.SizeKB, c.L1Cache.Associativity,
			c.L1Cache.BlockSize)
	}

	return capacity / lineCapacity, c.L1Cache.Associativity,
		c.L1Cache.BlockSize, nil
}
