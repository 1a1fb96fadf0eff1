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

package event

import (
	"github.com/tochemey/goactive/internal/assertion"
	"github.com/tochemey/goactive/port"
)

// Option is the interface that applies an Allocator option
type Option interface {
	// Apply sets the Option value of an Allocator.
	Apply(allocator *Allocator, handler *assertion.Handler)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Allocator, *assertion.Handler)

// Apply applies the option
func (f OptionFunc) Apply(allocator *Allocator, handler *assertion.Handler) {
	f(allocator, handler)
}

// WithCriticalSection shares the given critical section with the allocator.
// The kernel passes the section its queues use so that reference counts and
// queue metadata are updated under the same exclusive region.
func WithCriticalSection(section port.CriticalSection) Option {
	return OptionFunc(func(allocator *Allocator, _ *assertion.Handler) {
		allocator.section = section
	})
}

// WithAssertHandler sets the hook notified before a fatal assertion stops the caller
func WithAssertHandler(h assertion.Handler) Option {
	return OptionFunc(func(_ *Allocator, handler *assertion.Handler) {
		*handler = h
	})
}
