// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config holds the kernel configuration.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tochemey/goactive/errors"
	"github.com/tochemey/goactive/internal/validation"
	"github.com/tochemey/goactive/log"
)

const (
	// DefaultMaxActive is the default number of active object priorities
	DefaultMaxActive = 63
	// DefaultTicksPerSecond is the default clock tick rate
	DefaultTicksPerSecond = 100
	// DefaultQueueCapacity is the default capacity of an active object queue
	DefaultQueueCapacity = 16

	maxActiveLimit = math.MaxUint8
	maxPools       = math.MaxUint8
)

// PoolConfig declares one event pool
type PoolConfig struct {
	// BlockSize is the largest payload, in bytes, a block of the pool can hold
	BlockSize int `yaml:"blockSize"`
	// Blocks is the number of blocks preallocated by the pool
	Blocks int `yaml:"blocks"`
}

// Config defines the kernel configuration
type Config struct {
	// MaxActive is the highest priority an active object can be started at
	MaxActive int `yaml:"maxActive"`
	// TicksPerSecond is the rate at which Kernel.Run advances time events
	TicksPerSecond uint32 `yaml:"ticksPerSecond"`
	// Pools lists the event pools in strictly ascending block size order
	Pools []PoolConfig `yaml:"pools"`
	// DefaultQueueCapacity is used when an active object is started with a zero capacity
	DefaultQueueCapacity int `yaml:"defaultQueueCapacity"`
	// ExecutorPoolSize bounds the number of execution contexts.
	// Zero runs every active object on its own goroutine.
	ExecutorPoolSize int `yaml:"executorPoolSize"`
	// LogLevel is only read from configuration files. It builds Logger when set.
	LogLevel string `yaml:"logLevel,omitempty"`
	// MetricsEnabled turns the OpenTelemetry instruments on
	MetricsEnabled bool `yaml:"metricsEnabled"`
	// Logger is the logger used by the kernel
	Logger log.Logger `yaml:"-"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		MaxActive:      DefaultMaxActive,
		TicksPerSecond: DefaultTicksPerSecond,
		Pools: []PoolConfig{
			{BlockSize: 16, Blocks: 64},
			{BlockSize: 64, Blocks: 32},
			{BlockSize: 256, Blocks: 16},
		},
		DefaultQueueCapacity: DefaultQueueCapacity,
		Logger:               log.DefaultLogger,
	}
}

// New creates a validated Config from the defaults and the given options
func New(opts ...Option) (*Config, error) {
	config := Default()
	for _, opt := range opts {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile reads a YAML configuration file. Keys absent from the file keep their default value.
func LoadFile(path string, opts ...Option) (*Config, error) {
	bytea, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(bytea, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if config.LogLevel != "" {
		config.Logger = log.NewZap(log.ParseLevel(config.LogLevel), os.Stdout)
	}

	for _, opt := range opts {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration and returns every violation found
func (c *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddValidator(validation.NewRangeValidator("maxActive", int64(c.MaxActive), 1, maxActiveLimit, errors.ErrInvalidMaxActive)).
		AddAssertion(c.TicksPerSecond > 0, errors.ErrInvalidTicksPerSecond).
		AddAssertion(c.DefaultQueueCapacity > 0, errors.ErrInvalidQueueCapacity).
		AddAssertion(c.ExecutorPoolSize >= 0, errors.ErrInvalidExecutorPoolSize).
		AddAssertion(len(c.Pools) <= maxPools, errors.ErrTooManyPools)

	sizes := make([]int, 0, len(c.Pools))
	for i, pool := range c.Pools {
		if pool.BlockSize <= 0 || pool.Blocks <= 0 {
			chain.AddAssertion(false, fmt.Errorf("pools[%d]: %w", i, errors.ErrInvalidPool))
		}
		sizes = append(sizes, pool.BlockSize)
	}
	chain.AddValidator(validation.NewAscendingValidator("pools", sizes, errors.ErrPoolsNotAscending))

	return chain.Validate()
}
