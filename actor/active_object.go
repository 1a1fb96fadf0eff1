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
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/goactive/errors"
	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/log"
	"github.com/tochemey/goactive/queue"
)

// ActiveObject is an event-driven state machine with a private event queue
// and a dedicated execution context.
//
// Events are dispatched one at a time, each one to completion. Other active
// objects and the kernel only interact with an ActiveObject by posting events
// to it.
type ActiveObject struct {
	id       uuid.UUID
	name     string
	kernel   *Kernel
	behavior Behavior
	logger   log.Logger
	context  *Context

	priority *atomic.Uint32
	state    *atomic.Uint32

	ctx    context.Context
	cancel context.CancelFunc

	// inboxMu orders posts against termination so that nothing is
	// posted after the queue has been drained
	inboxMu sync.RWMutex
	queue   *queue.EventQueue
	closed  bool

	dispatching *atomic.Bool
	processed   *atomic.Int64
	signals     goset.Set[event.Signal]

	done     chan struct{}
	doneOnce sync.Once
}

// NewActiveObject creates an active object driving the given behavior.
// The object does nothing until it is started.
func (k *Kernel) NewActiveObject(name string, behavior Behavior) *ActiveObject {
	if behavior == nil {
		k.objectAsserter.Fail(assertNilBehavior, "active object (%s) has no behavior", name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ao := &ActiveObject{
		id:          uuid.New(),
		name:        name,
		kernel:      k,
		behavior:    behavior,
		logger:      k.logger.With("active_object", name),
		priority:    atomic.NewUint32(0),
		state:       atomic.NewUint32(uint32(Created)),
		ctx:         ctx,
		cancel:      cancel,
		dispatching: atomic.NewBool(false),
		processed:   atomic.NewInt64(0),
		signals:     goset.NewSet[event.Signal](),
		done:        make(chan struct{}),
	}
	ao.context = newContext(ctx, ao)
	return ao
}

// ID returns the active object unique identifier
func (ao *ActiveObject) ID() string {
	return ao.id.String()
}

// Name returns the active object name
func (ao *ActiveObject) Name() string {
	return ao.name
}

// Priority returns the priority the object was started at, 0 before Start
func (ao *ActiveObject) Priority() uint8 {
	return uint8(ao.priority.Load())
}

// State returns the lifecycle state
func (ao *ActiveObject) State() State {
	return State(ao.state.Load())
}

// Processed returns the number of events dispatched so far
func (ao *ActiveObject) Processed() int64 {
	return ao.processed.Load()
}

// Queue returns the event queue of the object, nil before Start
func (ao *ActiveObject) Queue() *queue.EventQueue {
	ao.inboxMu.RLock()
	defer ao.inboxMu.RUnlock()
	return ao.queue
}

// Subscriptions returns the signals the object is subscribed to
func (ao *ActiveObject) Subscriptions() []event.Signal {
	return ao.signals.ToSlice()
}

// Done is closed once the object has terminated
func (ao *ActiveObject) Done() <-chan struct{} {
	return ao.done
}

// Start registers the object at priority, creates its queue, runs the initial
// transition of its behavior and requests an execution context from the kernel.
//
// A zero queueCapacity selects the configured default capacity. Starting an
// object twice, at an out of range priority or at a priority already in use
// is fatal. The object processes events once the kernel runs.
func (ao *ActiveObject) Start(priority uint8, queueCapacity int, initial *event.Event) {
	k := ao.kernel
	if !ao.state.CompareAndSwap(uint32(Created), uint32(Starting)) {
		k.objectAsserter.Fail(assertNotCreated, "cannot start (%s) in state %s", ao.name, ao.State())
	}

	if queueCapacity == 0 {
		queueCapacity = k.config.DefaultQueueCapacity
	}

	eventQueue, err := k.NewQueue(queueCapacity)
	if err != nil {
		k.objectAsserter.Fail(assertQueueCapacity, "invalid queue capacity %d for (%s)", queueCapacity, ao.name)
	}

	k.register(ao, priority)

	ao.inboxMu.Lock()
	ao.queue = eventQueue
	ao.inboxMu.Unlock()

	ao.behavior.Init(ao.context, initial)
	ao.state.Store(uint32(Running))

	if err := k.executor.Go(priority, ao.name, ao.run); err != nil {
		ao.terminate()
		k.objectAsserter.Fail(assertNoExecution, "no execution context for (%s): %v", ao.name, err)
	}

	ao.logger.Infof("active object (%s) started at priority %d", ao.name, priority)
}

// Stop asks the object to terminate. An in-flight dispatch is never
// interrupted: the object stops before taking its next event, unsubscribes
// from every signal, leaves the kernel registry and releases its queued events.
func (ao *ActiveObject) Stop() {
	if ao.state.CompareAndSwap(uint32(Created), uint32(Terminated)) {
		ao.cancel()
		ao.doneOnce.Do(func() { close(ao.done) })
		return
	}
	ao.cancel()
}

// Post appends e to the object queue. It returns false, leaving e untouched,
// when the queue is full or the object does not accept events.
func (ao *ActiveObject) Post(e *event.Event) bool {
	posted, _ := ao.deliver(e, 0, false)
	return posted
}

// PostMargin appends e only when more than margin slots of the queue are free
func (ao *ActiveObject) PostMargin(e *event.Event, margin int) bool {
	posted, _ := ao.deliver(e, margin, false)
	return posted
}

// PostFront inserts e ahead of every queued event
func (ao *ActiveObject) PostFront(e *event.Event) bool {
	posted, _ := ao.deliver(e, 0, true)
	return posted
}

// deliver posts e unless the object is not accepting events anymore.
// accepting is false when the object was never started or has terminated.
func (ao *ActiveObject) deliver(e *event.Event, margin int, front bool) (posted, accepting bool) {
	ao.inboxMu.RLock()
	defer ao.inboxMu.RUnlock()
	if ao.closed || ao.queue == nil {
		return false, false
	}
	if front {
		return ao.queue.PostFront(e), true
	}
	return ao.queue.PostFIFOMargin(e, margin), true
}

// run is the execution context of the object
func (ao *ActiveObject) run() {
	defer ao.terminate()

	if !ao.kernel.awaitGate(ao.ctx) {
		return
	}

	for ao.ctx.Err() == nil {
		e, err := ao.queue.Get(ao.ctx)
		if err != nil {
			return
		}
		ao.dispatch(e)
	}
}

// dispatch hands e to the behavior and then releases the reference taken out of the queue
func (ao *ActiveObject) dispatch(e *event.Event) {
	defer ao.kernel.allocator.Release(e)

	if !ao.dispatching.CompareAndSwap(false, true) {
		ao.kernel.objectAsserter.Fail(assertReentrantCall, "(%s) received %s while dispatching", ao.name, e)
	}
	defer ao.dispatching.Store(false)
	defer ao.recovery(e)

	ao.behavior.Dispatch(ao.context, e)
	ao.processed.Inc()
}

// recovery logs a panic raised by the behavior. Kernel assertions keep panicking.
func (ao *ActiveObject) recovery(e *event.Event) {
	r := recover()
	if r == nil {
		return
	}

	if _, ok := gerrors.IsFatal(r); ok {
		panic(r)
	}

	var perr *gerrors.PanicError
	pc, fn, line, _ := runtime.Caller(2)
	switch err, ok := r.(error); {
	case ok:
		if !errors.As(err, &perr) {
			perr = gerrors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line))
		}
	default:
		perr = gerrors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
	}

	ao.logger.Errorf("active object (%s) recovered while dispatching %s: %v", ao.name, e, perr)
}

// terminate releases every resource held by the object
func (ao *ActiveObject) terminate() {
	k := ao.kernel
	ao.state.Store(uint32(Stopping))
	ao.cancel()

	k.UnsubscribeAll(ao)
	k.disarmAll(ao)

	ao.inboxMu.Lock()
	ao.closed = true
	ao.inboxMu.Unlock()

	k.deregister(ao)
	drained := ao.queue.Drain(k.allocator.Release)

	ao.state.Store(uint32(Terminated))
	ao.logger.Infof("active object (%s) terminated, %d queued events released", ao.name, drained)
	ao.doneOnce.Do(func() { close(ao.done) })
}
