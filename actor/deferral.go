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
	"github.com/tochemey/goactive/queue"
)

// Defer parks e in the auxiliary queue aux until the object recalls it.
// The queue slot takes its own reference, so e survives the end of the current dispatch.
// It returns false, leaving e untouched, when aux is full.
//
// Auxiliary queues belong to the behavior, not to the kernel: events still
// deferred when the object terminates are only released by PurgeDeferred.
func (ao *ActiveObject) Defer(aux *queue.EventQueue, e *event.Event) bool {
	return aux.PostFIFO(e)
}

// Recall moves the oldest event deferred in aux to the front of the object queue,
// so that it is dispatched before any other queued event.
// It returns false when aux holds no event.
//
// The reference owned by the aux slot is handed over to the object queue. An
// auxiliary queue must only be recalled by the object that deferred into it.
func (ao *ActiveObject) Recall(aux *queue.EventQueue) bool {
	e, ok := aux.TryGet()
	if !ok {
		return false
	}

	k := ao.kernel
	if posted, _ := ao.deliver(e, 0, true); !posted {
		k.objectAsserter.Fail(assertRecallOverflow, "(%s) cannot recall %s: queue is full or closed", ao.name, e)
	}

	// the object queue holds a new reference, drop the one of the aux slot
	if count, ok := k.allocator.Unshare(e); !ok {
		k.objectAsserter.Fail(assertRecallRefCount, "(%s) recalled %s with reference count %d", ao.name, e, count)
	}
	return true
}

// PurgeDeferred releases every event still deferred in aux and returns how many
// were dropped. It is meant for the owner of aux once the object no longer
// recalls from it, typically after Done is closed.
func (ao *ActiveObject) PurgeDeferred(aux *queue.EventQueue) int {
	return aux.Drain(ao.kernel.allocator.Release)
}
