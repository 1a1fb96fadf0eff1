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

	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/log"
	"github.com/tochemey/goactive/queue"
)

// Behavior is the state machine driven by an active object.
//
// Dispatch runs to completion: the active object never hands it another event
// before it returns. Dispatch must not block waiting for other active objects;
// it communicates by posting and publishing events.
type Behavior interface {
	// Init runs the initial transition, synchronously, when the active object starts.
	// initial is owned by the caller of Start and may be nil.
	Init(ctx *Context, initial *event.Event)
	// Dispatch handles one event. The event is only valid until Dispatch returns
	// unless it is deferred, posted or retained.
	Dispatch(ctx *Context, e *event.Event)
}

// BehaviorFunc adapts a function into a Behavior with an empty initial transition
type BehaviorFunc func(ctx *Context, e *event.Event)

var _ Behavior = BehaviorFunc(nil)

// Init implements Behavior
func (f BehaviorFunc) Init(*Context, *event.Event) {}

// Dispatch implements Behavior
func (f BehaviorFunc) Dispatch(ctx *Context, e *event.Event) {
	f(ctx, e)
}

// Context is handed to a Behavior by its active object.
// It is only meant to be used from the active object execution context.
type Context struct {
	ctx  context.Context
	self *ActiveObject
}

func newContext(ctx context.Context, self *ActiveObject) *Context {
	return &Context{ctx: ctx, self: self}
}

// Context returns the context of the active object. It is done once the object is stopped.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Self returns the active object running the behavior
func (c *Context) Self() *ActiveObject {
	return c.self
}

// Kernel returns the kernel the active object belongs to
func (c *Context) Kernel() *Kernel {
	return c.self.kernel
}

// Logger returns the active object logger
func (c *Context) Logger() log.Logger {
	return c.self.logger
}

// Allocate takes a pooled event from the kernel allocator
func (c *Context) Allocate(signal event.Signal, size int) *event.Event {
	return c.self.kernel.Allocate(signal, size)
}

// Publish multicasts e to the subscribers of its signal
func (c *Context) Publish(e *event.Event) {
	c.self.kernel.Publish(e)
}

// Subscribe subscribes the active object to signal
func (c *Context) Subscribe(signal event.Signal) {
	c.self.kernel.Subscribe(c.self, signal)
}

// Unsubscribe unsubscribes the active object from signal
func (c *Context) Unsubscribe(signal event.Signal) {
	c.self.kernel.Unsubscribe(c.self, signal)
}

// Defer parks e in aux. See ActiveObject.Defer.
func (c *Context) Defer(aux *queue.EventQueue, e *event.Event) bool {
	return c.self.Defer(aux, e)
}

// Recall moves the oldest deferred event of aux to the front of the active object queue.
// See ActiveObject.Recall.
func (c *Context) Recall(aux *queue.EventQueue) bool {
	return c.self.Recall(aux)
}

// PurgeDeferred releases every event still deferred in aux. See ActiveObject.PurgeDeferred.
func (c *Context) PurgeDeferred(aux *queue.EventQueue) int {
	return c.self.PurgeDeferred(aux)
}

// Stop asks the active object to terminate once the current dispatch returns
func (c *Context) Stop() {
	c.self.Stop()
}
