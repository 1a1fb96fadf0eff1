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

// Package actor implements the active object kernel.
//
// A Kernel owns the event allocator, the registry of active objects indexed by
// priority, the subscriber lists and the time events. Active objects are
// started on an execution context provided by the kernel executor and only
// begin processing events once the kernel runs.
package actor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/goactive/config"
	gerrors "github.com/tochemey/goactive/errors"
	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/internal/assertion"
	"github.com/tochemey/goactive/internal/errorschain"
	"github.com/tochemey/goactive/internal/pset"
	"github.com/tochemey/goactive/log"
	"github.com/tochemey/goactive/port"
	"github.com/tochemey/goactive/queue"
)

// Kernel runs a set of active objects sharing one event allocator
type Kernel struct {
	id     uuid.UUID
	config *config.Config
	logger log.Logger

	section   port.CriticalSection
	allocator *event.Allocator

	kernelAsserter *assertion.Asserter
	objectAsserter *assertion.Asserter
	timeAsserter   *assertion.Asserter

	executor     port.Executor
	ownsExecutor bool
	tickSource   port.TickSource

	// mu guards the registry and the subscriber lists
	mu          sync.RWMutex
	registry    []*ActiveObject
	subscribers map[event.Signal]*pset.PrioritySet

	// timeMu guards the armed time events
	timeMu sync.Mutex
	armed  []*TimeEvent

	gate     chan struct{}
	gateOnce sync.Once
	stopCh   chan struct{}
	stopOnce sync.Once
	running  *atomic.Bool
	stopped  *atomic.Bool

	published     *atomic.Int64
	meterProvider otelmetric.MeterProvider

	onAssert    func(*gerrors.FatalError)
	onStartup   func()
	onCleanup   func()
	onClockTick func()
}

// NewKernel creates a Kernel. Without WithConfig the default configuration is used.
func NewKernel(opts ...Option) (*Kernel, error) {
	k := &Kernel{
		id:          uuid.New(),
		subscribers: make(map[event.Signal]*pset.PrioritySet),
		gate:        make(chan struct{}),
		stopCh:      make(chan struct{}),
		running:     atomic.NewBool(false),
		stopped:     atomic.NewBool(false),
		published:   atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(k)
	}

	if k.config == nil {
		cfg, err := config.New()
		if err != nil {
			return nil, err
		}
		k.config = cfg
	} else if err := k.config.Validate(); err != nil {
		return nil, err
	}

	if k.logger == nil {
		k.logger = k.config.Logger
	}
	if k.logger == nil {
		k.logger = log.DiscardLogger
	}

	if k.section == nil {
		k.section = port.NewCriticalSection()
	}

	k.kernelAsserter = assertion.New(kernelModule, k.handleAssert)
	k.objectAsserter = assertion.New(activeObjectModule, k.handleAssert)
	k.timeAsserter = assertion.New(timeEventModule, k.handleAssert)

	k.allocator = event.NewAllocator(
		event.WithCriticalSection(k.section),
		event.WithAssertHandler(k.handleAssert))
	for _, pool := range k.config.Pools {
		k.allocator.AddPool(pool.BlockSize, pool.Blocks)
	}

	k.registry = make([]*ActiveObject, k.config.MaxActive+1)

	if k.executor == nil {
		executor, err := newExecutor(k.config.ExecutorPoolSize)
		if err != nil {
			return nil, err
		}
		k.executor = executor
		k.ownsExecutor = true
	}

	if k.config.MetricsEnabled {
		if err := k.registerMetrics(); err != nil {
			_ = k.releaseExecutor()
			return nil, err
		}
	}

	return k, nil
}

// ID returns the kernel unique identifier
func (k *Kernel) ID() string {
	return k.id.String()
}

// Config returns the kernel configuration
func (k *Kernel) Config() *config.Config {
	return k.config
}

// Logger returns the kernel logger
func (k *Kernel) Logger() log.Logger {
	return k.logger
}

// Allocator returns the event allocator of the kernel
func (k *Kernel) Allocator() *event.Allocator {
	return k.allocator
}

// Section returns the kernel-wide critical section
func (k *Kernel) Section() port.CriticalSection {
	return k.section
}

// Allocate takes a pooled event able to hold size bytes. Exhaustion is fatal.
func (k *Kernel) Allocate(signal event.Signal, size int) *event.Event {
	return k.allocator.Allocate(signal, size)
}

// TryAllocate takes a pooled event only when its pool keeps at least margin free blocks
func (k *Kernel) TryAllocate(signal event.Signal, size, margin int) (*event.Event, bool) {
	return k.allocator.TryAllocate(signal, size, margin)
}

// Retain adds a reference to e
func (k *Kernel) Retain(e *event.Event) {
	k.allocator.Retain(e)
}

// Release drops a reference to e and collects it on the last one
func (k *Kernel) Release(e *event.Event) {
	k.allocator.Release(e)
}

// NewQueue creates an event queue sharing the kernel critical section,
// typically used as the auxiliary queue of Defer and Recall.
func (k *Kernel) NewQueue(capacity int) (*queue.EventQueue, error) {
	return queue.New(k.section, capacity)
}

// ActiveObject returns the active object started at the given priority
func (k *Kernel) ActiveObject(priority uint8) (*ActiveObject, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if int(priority) >= len(k.registry) {
		return nil, false
	}
	ao := k.registry[priority]
	return ao, ao != nil
}

// ActiveObjects returns the registered active objects in ascending priority
func (k *Kernel) ActiveObjects() []*ActiveObject {
	k.mu.RLock()
	defer k.mu.RUnlock()
	objects := make([]*ActiveObject, 0, len(k.registry))
	for _, ao := range k.registry {
		if ao != nil {
			objects = append(objects, ao)
		}
	}
	return objects
}

// Published returns the number of events published so far
func (k *Kernel) Published() int64 {
	return k.published.Load()
}

// Running reports whether Run is driving the kernel
func (k *Kernel) Running() bool {
	return k.running.Load()
}

// Run lets the started active objects process their events and drives the
// clock tick until ctx is done or Stop is called.
//
// The startup hook runs before any active object receives an event and the
// cleanup hook once the tick loop has returned.
func (k *Kernel) Run(ctx context.Context) error {
	if k.stopped.Load() {
		return gerrors.ErrKernelStopped
	}
	if !k.running.CompareAndSwap(false, true) {
		return gerrors.ErrKernelAlreadyRunning
	}
	defer k.running.Store(false)

	if k.onStartup != nil {
		k.onStartup()
	}

	k.openGate()
	k.logger.Infof("kernel (%s) running at %d ticks per second", k.ID(), k.config.TicksPerSecond)

	source := k.tickSource
	if source == nil {
		source = port.NewTickSource(k.config.TicksPerSecond)
	}
	source.Start()

	k.tickLoop(ctx, source)

	source.Stop()
	if k.onCleanup != nil {
		k.onCleanup()
	}

	k.logger.Infof("kernel (%s) stopped running", k.ID())
	return nil
}

// Stop makes Run return. Active objects keep running until stopped or shut down.
func (k *Kernel) Stop() {
	k.stopOnce.Do(func() {
		k.stopped.Store(true)
		close(k.stopCh)
	})
}

// Shutdown stops the kernel and every registered active object, then waits
// for them to terminate or for ctx to be done.
func (k *Kernel) Shutdown(ctx context.Context) error {
	k.Stop()

	objects := k.ActiveObjects()
	k.logger.Infof("kernel (%s) shutting down %d active objects", k.ID(), len(objects))

	eg := new(errgroup.Group)
	for _, ao := range objects {
		eg.Go(func() error {
			ao.Stop()
			select {
			case <-ao.Done():
				return nil
			case <-ctx.Done():
				return fmt.Errorf("failed to stop active object (%s): %w", ao.Name(), ctx.Err())
			}
		})
	}

	waitErr := eg.Wait()
	return errorschain.New(errorschain.ReturnAll()).
		AddError(waitErr).
		AddErrorFn(func() error {
			if waitErr == nil {
				k.executor.Wait()
			}
			return k.releaseExecutor()
		}).
		Error()
}

func (k *Kernel) tickLoop(ctx context.Context, source port.TickSource) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-k.stopCh:
			return
		case <-source.C():
			k.Tick()
		}
	}
}

func (k *Kernel) openGate() {
	k.gateOnce.Do(func() { close(k.gate) })
}

// awaitGate blocks until the kernel runs or ctx is done
func (k *Kernel) awaitGate(ctx context.Context) bool {
	select {
	case <-k.gate:
		return true
	case <-ctx.Done():
		return false
	}
}

func (k *Kernel) register(ao *ActiveObject, priority uint8) {
	if priority == 0 || int(priority) > k.config.MaxActive {
		k.objectAsserter.Fail(assertPriorityRange, "priority %d of (%s) not in [1, %d]", priority, ao.name, k.config.MaxActive)
	}

	k.mu.Lock()
	if holder := k.registry[priority]; holder != nil {
		k.mu.Unlock()
		k.objectAsserter.Fail(assertPriorityInUse, "priority %d of (%s) already used by (%s)", priority, ao.name, holder.name)
	}
	// published with the object so that registry readers never see a partial start
	ao.priority.Store(uint32(priority))
	ao.logger = ao.logger.With("priority", priority)
	k.registry[priority] = ao
	k.mu.Unlock()
}

func (k *Kernel) deregister(ao *ActiveObject) {
	priority := ao.Priority()
	k.mu.Lock()
	if k.registry[priority] == ao {
		k.registry[priority] = nil
	}
	k.mu.Unlock()
}

func (k *Kernel) handleAssert(fatal *gerrors.FatalError) {
	k.logger.Error(fatal.Error())
	if k.onAssert != nil {
		k.onAssert(fatal)
	}
}

func (k *Kernel) releaseExecutor() error {
	if !k.ownsExecutor {
		return nil
	}
	return k.executor.Release()
}

func newExecutor(poolSize int) (port.Executor, error) {
	if poolSize > 0 {
		executor, err := port.NewPoolExecutor(poolSize)
		if err != nil {
			return nil, err
		}
		return executor, nil
	}
	return port.NewGoroutineExecutor(), nil
}
