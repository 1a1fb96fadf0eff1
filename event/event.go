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

// Package event implements the kernel events and the memory they live in.
//
// An event is either static or pooled. Static events are owned by the code
// that created them and are never reference counted. Pooled events are taken
// from fixed block size pools by an Allocator; every holder (a queue slot, the
// context dispatching it) accounts for one reference and the block returns to
// its pool exactly when the last reference is released.
package event

import "fmt"

// Signal identifies the class of an event
type Signal uint16

// Event is a message delivered to active objects.
//
// The payload must be written by the allocating context before the event is
// posted for the first time. After that the event is shared and read-only.
type Event struct {
	signal Signal
	value  any
	block  []byte
	size   int
	// poolID is 0 for static events and the 1-based index of the owning pool otherwise
	poolID uint8
	// refCount is guarded by the kernel critical section
	refCount uint16
}

// NewStatic creates a static event.
// Static events are never reference counted nor collected; the caller keeps
// them alive for as long as any queue may hold them.
func NewStatic(signal Signal, value any) *Event {
	return &Event{
		signal: signal,
		value:  value,
	}
}

// Signal returns the event signal
func (e *Event) Signal() Signal {
	return e.signal
}

// Value returns the event value payload
func (e *Event) Value() any {
	return e.value
}

// SetValue sets the event value payload. It returns the event to allow chaining.
// It must only be called by the allocating context before the event is posted.
func (e *Event) SetValue(value any) *Event {
	e.value = value
	return e
}

// Bytes returns the block payload of a pooled event, sized to the allocation request.
// Static events have no block and return nil.
func (e *Event) Bytes() []byte {
	if e.block == nil {
		return nil
	}
	return e.block[:e.size]
}

// PoolID returns the 1-based index of the pool owning the event, or 0 for a static event
func (e *Event) PoolID() uint8 {
	return e.poolID
}

// IsStatic reports whether the event is static
func (e *Event) IsStatic() bool {
	return e.poolID == 0
}

// String returns a short description of the event
func (e *Event) String() string {
	if e.IsStatic() {
		return fmt.Sprintf("event(sig=%d, static)", e.signal)
	}
	return fmt.Sprintf("event(sig=%d, pool=%d)", e.signal, e.poolID)
}

// IncRefLocked adds one reference to a pooled event. It returns false, leaving
// the count untouched, when the count is saturated.
// The caller must hold the kernel critical section. No-op for static events.
func (e *Event) IncRefLocked() bool {
	if e.poolID == 0 {
		return true
	}
	if e.refCount == maxRefCount {
		return false
	}
	e.refCount++
	return true
}

// RefCountLocked returns the reference count of a pooled event, 0 for a static event.
// The caller must hold the kernel critical section.
func (e *Event) RefCountLocked() int {
	return int(e.refCount)
}

// reset invalidates a block returned to its pool
func (e *Event) reset() {
	e.signal = 0
	e.value = nil
	e.size = 0
	e.refCount = 0
}
