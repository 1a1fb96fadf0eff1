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
	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/internal/pset"
)

// Subscribe makes ao receive every event published with signal.
// The object must have been started.
func (k *Kernel) Subscribe(ao *ActiveObject, signal event.Signal) {
	k.requireStarted(ao, "subscribe")

	k.mu.Lock()
	set, ok := k.subscribers[signal]
	if !ok {
		set = pset.New(uint8(k.config.MaxActive))
		k.subscribers[signal] = set
	}
	set.Insert(ao.Priority())
	k.mu.Unlock()

	ao.signals.Add(signal)
}

// Unsubscribe stops the delivery of signal to ao
func (k *Kernel) Unsubscribe(ao *ActiveObject, signal event.Signal) {
	k.requireStarted(ao, "unsubscribe")

	k.mu.Lock()
	k.unsubscribeLocked(ao, signal)
	k.mu.Unlock()

	ao.signals.Remove(signal)
}

// UnsubscribeAll removes every subscription of ao
func (k *Kernel) UnsubscribeAll(ao *ActiveObject) {
	if ao == nil {
		k.kernelAsserter.Fail(assertNilActiveObject, "cannot unsubscribe a nil active object")
	}

	signals := ao.signals.ToSlice()
	k.mu.Lock()
	for _, signal := range signals {
		k.unsubscribeLocked(ao, signal)
	}
	k.mu.Unlock()

	ao.signals.Clear()
}

// Subscribers returns the priorities subscribed to signal, highest first
func (k *Kernel) Subscribers(signal event.Signal) []uint8 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if set, ok := k.subscribers[signal]; ok {
		return set.Descending()
	}
	return nil
}

// Publish posts e to every subscriber of its signal, from the highest priority down.
//
// The kernel holds its own reference during the multicast, so a subscriber
// consuming e early cannot collect it while other subscribers are being
// served. The publisher keeps the reference it allocated and releases it as
// usual. A subscriber with a full queue is fatal.
func (k *Kernel) Publish(e *event.Event) {
	k.allocator.Retain(e)

	k.mu.RLock()
	if set, ok := k.subscribers[e.Signal()]; ok {
		for _, priority := range set.Descending() {
			subscriber := k.registry[priority]
			if subscriber == nil {
				continue
			}
			if posted, accepting := subscriber.deliver(e, 0, false); !posted && accepting {
				k.mu.RUnlock()
				k.kernelAsserter.Fail(assertPublishOverflow, "cannot publish %s: queue of (%s) is full", e, subscriber.name)
			}
		}
	}
	k.mu.RUnlock()

	k.published.Inc()
	k.allocator.Release(e)
}

func (k *Kernel) unsubscribeLocked(ao *ActiveObject, signal event.Signal) {
	set, ok := k.subscribers[signal]
	if !ok {
		return
	}
	set.Remove(ao.Priority())
	if set.IsEmpty() {
		delete(k.subscribers, signal)
	}
}

func (k *Kernel) requireStarted(ao *ActiveObject, operation string) {
	if ao == nil {
		k.kernelAsserter.Fail(assertNilActiveObject, "cannot %s a nil active object", operation)
	}
	if ao.Priority() == 0 {
		k.kernelAsserter.Fail(assertNotStarted, "cannot %s (%s) before it is started", operation, ao.name)
	}
}
