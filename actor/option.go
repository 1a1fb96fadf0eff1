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

package actor

import (
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goactive/config"
	gerrors "github.com/tochemey/goactive/errors"
	"github.com/tochemey/goactive/log"
	"github.com/tochemey/goactive/port"
)

// Option is the interface that applies a kernel option.
type Option interface {
	// Apply sets the Option value of a kernel.
	Apply(kernel *Kernel)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Kernel)

// Apply applies the option to the kernel
func (f OptionFunc) Apply(k *Kernel) {
	f(k)
}

// WithConfig sets the kernel configuration
func WithConfig(cfg *config.Config) Option {
	return OptionFunc(func(k *Kernel) {
		k.config = cfg
	})
}

// WithLogger overrides the logger of the configuration
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(k *Kernel) {
		k.logger = logger
	})
}

// WithExecutor sets the executor providing the active object execution contexts.
// The kernel does not release an executor it did not create.
func WithExecutor(executor port.Executor) Option {
	return OptionFunc(func(k *Kernel) {
		k.executor = executor
	})
}

// WithCriticalSection sets the kernel-wide critical section
func WithCriticalSection(section port.CriticalSection) Option {
	return OptionFunc(func(k *Kernel) {
		k.section = section
	})
}

// WithTickSource sets the source of clock ticks driven by Run
func WithTickSource(source port.TickSource) Option {
	return OptionFunc(func(k *Kernel) {
		k.tickSource = source
	})
}

// WithMeterProvider sets the meter provider used when metrics are enabled.
// The global OpenTelemetry provider is used otherwise.
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(k *Kernel) {
		k.meterProvider = provider
	})
}

// WithAssertHandler sets a hook called with every fatal assertion before the kernel panics.
// The hook observes the failure and must not try to resume.
func WithAssertHandler(handler func(fatal *gerrors.FatalError)) Option {
	return OptionFunc(func(k *Kernel) {
		k.onAssert = handler
	})
}

// WithStartupHook sets a hook called by Run before any active object processes events
func WithStartupHook(hook func()) Option {
	return OptionFunc(func(k *Kernel) {
		k.onStartup = hook
	})
}

// WithCleanupHook sets a hook called by Run once the tick loop returned
func WithCleanupHook(hook func()) Option {
	return OptionFunc(func(k *Kernel) {
		k.onCleanup = hook
	})
}

// WithClockTickHook sets a hook called after every clock tick has been processed
func WithClockTickHook(hook func()) Option {
	return OptionFunc(func(k *Kernel) {
		k.onClockTick = hook
	})
}
