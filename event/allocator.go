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
	"math"

	"github.com/tochemey/goactive/internal/assertion"
	"github.com/tochemey/goactive/port"
)

const moduleName = "event"

// assertion identifiers raised by the allocator
const (
	assertPoolInvalid    = 100
	assertPoolsNotAscend = 110
	assertTooManyPools   = 120
	assertNoPool         = 200
	assertPoolExhausted  = 210
	assertRefUnderflow   = 300
	assertRefOverflow    = 310
	assertForeignEvent   = 320
)

const (
	maxPools    = math.MaxUint8
	maxRefCount = math.MaxUint16
	noMargin    = 0
)

// Allocator owns the event pools and implements the reference counting
// garbage collector of pooled events.
type Allocator struct {
	section  port.CriticalSection
	asserter *assertion.Asserter
	pools    []*Pool
}

// NewAllocator creates an Allocator without any pool
func NewAllocator(opts ...Option) *Allocator {
	allocator := &Allocator{
		section: port.NewCriticalSection(),
	}

	var handler assertion.Handler
	for _, opt := range opts {
		opt.Apply(allocator, &handler)
	}

	allocator.asserter = assertion.New(moduleName, handler)
	return allocator
}

// Section returns the critical section guarding the allocator
func (a *Allocator) Section() port.CriticalSection {
	return a.section
}

// AddPool registers a pool of blocks of blockSize bytes.
// Pools must be registered in strictly ascending block size order.
func (a *Allocator) AddPool(blockSize, blocks int) {
	a.asserter.Require(blockSize > 0 && blocks > 0, assertPoolInvalid, "pool must have a positive block size and block count")

	a.section.Enter()
	count := len(a.pools)
	ascending := count == 0 || a.pools[count-1].blockSize < blockSize
	if count < maxPools && ascending {
		a.pools = append(a.pools, newPool(uint8(count+1), blockSize, blocks))
	}
	a.section.Leave()

	a.asserter.Require(count < maxPools, assertTooManyPools, "too many event pools")
	a.asserter.Require(ascending, assertPoolsNotAscend, "event pools must be registered in ascending block size order")
}

// MaxBlockSize returns the block size of the largest pool, 0 without any pool
func (a *Allocator) MaxBlockSize() int {
	a.section.Enter()
	defer a.section.Leave()
	if len(a.pools) == 0 {
		return 0
	}
	return a.pools[len(a.pools)-1].blockSize
}

// Allocate returns a new pooled event of the given signal whose payload holds size bytes.
// The event comes from the smallest pool with a large enough block that still
// has a free block, and starts with a reference count of 1.
//
// Running out of blocks is a fatal assertion.
func (a *Allocator) Allocate(signal Signal, size int) *Event {
	e, fits := a.allocate(signal, size, noMargin)
	a.asserter.Require(fits, assertNoPool, "no event pool can hold the requested size")
	if e == nil {
		a.asserter.Fail(assertPoolExhausted, "event pools exhausted for size %d", size)
	}
	return e
}

// TryAllocate is the non asserting variant of Allocate: it only takes a block
// from a pool that keeps at least margin free blocks after the allocation.
// It returns false when no pool satisfies the request.
func (a *Allocator) TryAllocate(signal Signal, size, margin int) (*Event, bool) {
	if margin < 0 {
		margin = 0
	}
	e, _ := a.allocate(signal, size, margin)
	return e, e != nil
}

// Retain adds one reference to a pooled event. No-op for static events.
func (a *Allocator) Retain(e *Event) {
	if e.IsStatic() {
		return
	}

	a.section.Enter()
	overflow := !e.IncRefLocked()
	a.section.Leave()

	a.asserter.Require(!overflow, assertRefOverflow, "reference count overflow")
}

// Release removes one reference from a pooled event and returns its block to
// the owning pool when no reference remains. No-op for static events.
//
// Releasing an event that holds no reference is a fatal assertion.
func (a *Allocator) Release(e *Event) {
	if e.IsStatic() {
		return
	}

	a.section.Enter()
	pool, known := a.poolOf(e)
	underflow := known && e.refCount == 0
	if known && !underflow {
		e.refCount--
		if e.refCount == 0 {
			pool.put(e)
		}
	}
	a.section.Leave()

	a.asserter.Require(known, assertForeignEvent, "event does not belong to this allocator")
	a.asserter.Require(!underflow, assertRefUnderflow, "reference count underflow")
}

// Unshare drops one reference of a pooled event that is known to be held
// elsewhere. It never collects the event: when the count is not above 1 it
// leaves the event untouched and returns false with the observed count.
// Static events always succeed.
func (a *Allocator) Unshare(e *Event) (count int, ok bool) {
	if e.IsStatic() {
		return 0, true
	}

	a.section.Enter()
	defer a.section.Leave()
	if e.refCount <= 1 {
		return int(e.refCount), false
	}
	e.refCount--
	return int(e.refCount), true
}

// RefCount returns the current reference count of an event, 0 for static events
func (a *Allocator) RefCount(e *Event) int {
	a.section.Enter()
	defer a.section.Leave()
	return int(e.refCount)
}

// PoolStats returns a snapshot of every pool occupancy, smallest block size first
func (a *Allocator) PoolStats() []PoolStat {
	a.section.Enter()
	defer a.section.Leave()
	stats := make([]PoolStat, 0, len(a.pools))
	for _, pool := range a.pools {
		stats = append(stats, pool.stat())
	}
	return stats
}

// allocate walks the pools from the smallest block size up.
// fits reports whether at least one pool is large enough for size.
func (a *Allocator) allocate(signal Signal, size, margin int) (e *Event, fits bool) {
	if size < 0 {
		size = 0
	}

	a.section.Enter()
	for _, pool := range a.pools {
		if pool.blockSize < size {
			continue
		}
		fits = true
		if e = pool.get(margin); e != nil {
			e.signal = signal
			e.size = size
			e.refCount = 1
			break
		}
	}
	a.section.Leave()
	return e, fits
}

// poolOf returns the pool owning e. The caller holds the critical section.
func (a *Allocator) poolOf(e *Event) (*Pool, bool) {
	index := int(e.poolID) - 1
	if index < 0 || index >= len(a.pools) {
		return nil, false
	}
	return a.pools[index], true
}
