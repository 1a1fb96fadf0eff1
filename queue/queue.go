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

// Package queue implements the bounded event queue of the kernel.
//
// An EventQueue is safe for multiple producers and a single consumer. Every
// slot holds one reference of the event it stores: posting retains the event,
// and taking an event out hands that reference over to the caller, who must
// eventually release it.
package queue

import (
	"context"

	"github.com/tochemey/goactive/errors"
	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/port"
)

// EventQueue is a fixed capacity ring buffer of events supporting FIFO and
// front insertion.
//
// Posting never blocks: a post on a full queue fails and leaves both the
// queue and the event untouched. Only Get blocks, while the queue is empty.
type EventQueue struct {
	section   port.CriticalSection
	ring      []*event.Event
	head      int
	tail      int
	count     int
	highWater int
	// signal is an auto-reset event raised on the empty to non-empty transition
	signal chan struct{}
}

// New creates an EventQueue of the given capacity.
// section must be the critical section of the allocator the posted events come from.
func New(section port.CriticalSection, capacity int) (*EventQueue, error) {
	if capacity < 1 {
		return nil, errors.ErrInvalidQueueCapacity
	}
	return &EventQueue{
		section: section,
		ring:    make([]*event.Event, capacity),
		signal:  make(chan struct{}, 1),
	}, nil
}

// PostFIFO appends e at the tail of the queue.
// It returns false without any side effect when the queue is full or the
// reference count of e cannot grow anymore.
func (q *EventQueue) PostFIFO(e *event.Event) bool {
	return q.post(e, 0, false)
}

// PostFIFOMargin appends e at the tail only when more than margin slots are free.
// It returns false without any side effect otherwise.
func (q *EventQueue) PostFIFOMargin(e *event.Event, margin int) bool {
	if margin < 0 {
		margin = 0
	}
	return q.post(e, margin, false)
}

// PostFront inserts e at the head of the queue, ahead of every queued event.
// It returns false without any side effect when the queue is full or the
// reference count of e cannot grow anymore.
func (q *EventQueue) PostFront(e *event.Event) bool {
	return q.post(e, 0, true)
}

// Get removes and returns the head event, blocking while the queue is empty.
// The reference held by the queue slot is handed over to the caller.
// It returns the context error when ctx is done before an event arrives.
func (q *EventQueue) Get(ctx context.Context) (*event.Event, error) {
	for {
		if e, ok := q.TryGet(); ok {
			return e, nil
		}

		select {
		case <-q.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryGet removes and returns the head event without blocking.
// The reference held by the queue slot is handed over to the caller.
func (q *EventQueue) TryGet() (*event.Event, bool) {
	q.section.Enter()
	if q.count == 0 {
		q.section.Leave()
		return nil, false
	}

	e := q.ring[q.head]
	q.ring[q.head] = nil
	q.head = q.next(q.head)
	q.count--
	q.section.Leave()
	return e, true
}

// Drain empties the queue, handing every event with its slot reference to release.
// It returns the number of drained events.
func (q *EventQueue) Drain(release func(*event.Event)) int {
	q.section.Enter()
	drained := make([]*event.Event, 0, q.count)
	for q.count > 0 {
		drained = append(drained, q.ring[q.head])
		q.ring[q.head] = nil
		q.head = q.next(q.head)
		q.count--
	}
	q.section.Leave()

	for _, e := range drained {
		release(e)
	}
	return len(drained)
}

// Len returns the number of queued events
func (q *EventQueue) Len() int {
	q.section.Enter()
	defer q.section.Leave()
	return q.count
}

// Free returns the number of free slots
func (q *EventQueue) Free() int {
	q.section.Enter()
	defer q.section.Leave()
	return len(q.ring) - q.count
}

// IsEmpty reports whether the queue holds no event
func (q *EventQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Cap returns the queue capacity
func (q *EventQueue) Cap() int {
	return len(q.ring)
}

// HighWaterMark returns the maximum number of events ever queued at once
func (q *EventQueue) HighWaterMark() int {
	q.section.Enter()
	defer q.section.Leave()
	return q.highWater
}

func (q *EventQueue) post(e *event.Event, margin int, front bool) bool {
	q.section.Enter()
	if len(q.ring)-q.count <= margin || !e.IncRefLocked() {
		q.section.Leave()
		return false
	}

	if front {
		q.head = q.prev(q.head)
		q.ring[q.head] = e
	} else {
		q.ring[q.tail] = e
		q.tail = q.next(q.tail)
	}

	q.count++
	if q.count > q.highWater {
		q.highWater = q.count
	}
	wasEmpty := q.count == 1
	q.section.Leave()

	if wasEmpty {
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}
	return true
}

func (q *EventQueue) next(i int) int {
	i++
	if i == len(q.ring) {
		return 0
	}
	return i
}

func (q *EventQueue) prev(i int) int {
	if i == 0 {
		return len(q.ring) - 1
	}
	return i - 1
}
