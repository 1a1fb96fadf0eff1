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

// Package port adapts the kernel to its host: exclusive sections, execution
// contexts and the clock tick source. Everything the kernel needs from the
// underlying runtime goes through the interfaces declared here.
package port

import (
	"sync"
	"time"

	"github.com/tochemey/goactive/internal/ticker"
)

// CriticalSection is the kernel-wide exclusive region protecting event pool
// free lists, reference counts and queue metadata.
//
// Recursive entry is not supported. The section must never be held across a
// blocking wait.
type CriticalSection interface {
	// Enter acquires the section
	Enter()
	// Leave releases the section
	Leave()
}

// TickSource delivers the periodic clock ticks consumed by the kernel
type TickSource interface {
	// Start starts delivering ticks
	Start()
	// Stop stops delivering ticks
	Stop()
	// C returns the channel the ticks are delivered on
	C() <-chan time.Time
}

type mutexSection struct {
	mu sync.Mutex
}

// enforce compilation error
var _ CriticalSection = (*mutexSection)(nil)

// NewCriticalSection returns a mutex backed CriticalSection
func NewCriticalSection() CriticalSection {
	return &mutexSection{}
}

func (s *mutexSection) Enter() {
	s.mu.Lock()
}

func (s *mutexSection) Leave() {
	s.mu.Unlock()
}

// NewTickSource returns a TickSource firing ticksPerSecond times per second
func NewTickSource(ticksPerSecond uint32) TickSource {
	return ticker.NewFromRate(ticksPerSecond)
}
