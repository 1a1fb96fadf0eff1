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

package config

import "github.com/tochemey/goactive/log"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Config)

// Apply applies the option to the config
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithMaxActive sets the highest usable active object priority
func WithMaxActive(max int) Option {
	return OptionFunc(func(c *Config) {
		c.MaxActive = max
	})
}

// WithTicksPerSecond sets the clock tick rate
func WithTicksPerSecond(rate uint32) Option {
	return OptionFunc(func(c *Config) {
		c.TicksPerSecond = rate
	})
}

// WithPools replaces the event pools
func WithPools(pools ...PoolConfig) Option {
	return OptionFunc(func(c *Config) {
		c.Pools = append([]PoolConfig(nil), pools...)
	})
}

// WithPool appends an event pool after the configured ones
func WithPool(blockSize, blocks int) Option {
	return OptionFunc(func(c *Config) {
		c.Pools = append(c.Pools, PoolConfig{BlockSize: blockSize, Blocks: blocks})
	})
}

// WithDefaultQueueCapacity sets the queue capacity used when none is given at start
func WithDefaultQueueCapacity(capacity int) Option {
	return OptionFunc(func(c *Config) {
		c.DefaultQueueCapacity = capacity
	})
}

// WithExecutorPoolSize runs active objects on a worker pool of the given size
func WithExecutorPoolSize(size int) Option {
	return OptionFunc(func(c *Config) {
		c.ExecutorPoolSize = size
	})
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *Config) {
		c.Logger = logger
	})
}

// WithMetrics enables the OpenTelemetry instruments
func WithMetrics() Option {
	return OptionFunc(func(c *Config) {
		c.MetricsEnabled = true
	})
}
