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

package port

import (
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/goactive/errors"
)

// Executor creates the dedicated execution context of an active object.
type Executor interface {
	// Go runs fn on a new execution context bound to the given priority.
	// The priority is a hint: the host decides how, if at all, it maps to a
	// scheduling class.
	Go(priority uint8, name string, fn func()) error
	// Wait blocks until every execution context handed out has returned
	Wait()
	// Release frees the executor resources. Go fails afterwards.
	Release() error
}

// GoroutineExecutor runs every execution context on its own goroutine
type GoroutineExecutor struct {
	wg     sync.WaitGroup
	closed *atomic.Bool
}

// enforce compilation error
var _ Executor = (*GoroutineExecutor)(nil)

// NewGoroutineExecutor creates an instance of GoroutineExecutor
func NewGoroutineExecutor() *GoroutineExecutor {
	return &GoroutineExecutor{closed: atomic.NewBool(false)}
}

// Go starts fn on a new goroutine.
// The Go runtime has no goroutine priorities, so the priority is ignored.
func (x *GoroutineExecutor) Go(_ uint8, _ string, fn func()) error {
	if x.closed.Load() {
		return gerrors.ErrExecutorClosed
	}
	x.wg.Add(1)
	go func() {
		defer x.wg.Done()
		fn()
	}()
	return nil
}

// Wait blocks until every started goroutine has returned
func (x *GoroutineExecutor) Wait() {
	x.wg.Wait()
}

// Release marks the executor as closed
func (x *GoroutineExecutor) Release() error {
	x.closed.Store(true)
	return nil
}

const releaseTimeout = 5 * time.Second

// PoolExecutor hands out execution contexts from a bounded ants worker pool.
// The pool size caps the number of active objects that can run at once.
type PoolExecutor struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

// enforce compilation error
var _ Executor = (*PoolExecutor)(nil)

// NewPoolExecutor creates a PoolExecutor with size workers
func NewPoolExecutor(size int) (*PoolExecutor, error) {
	pool, err := ants.NewPool(size,
		ants.WithNonblocking(true),
		// a kernel assertion inside an active object must stop the program,
		// the pool must not swallow it
		ants.WithPanicHandler(func(v any) { panic(v) }),
	)
	if err != nil {
		return nil, err
	}
	return &PoolExecutor{pool: pool}, nil
}

// Go submits fn to the worker pool
func (x *PoolExecutor) Go(_ uint8, _ string, fn func()) error {
	x.wg.Add(1)
	err := x.pool.Submit(func() {
		defer x.wg.Done()
		fn()
	})

	if err != nil {
		x.wg.Done()
		switch {
		case errors.Is(err, ants.ErrPoolOverload):
			return gerrors.ErrExecutorSaturated
		case errors.Is(err, ants.ErrPoolClosed):
			return gerrors.ErrExecutorClosed
		default:
			return err
		}
	}
	return nil
}

// Running returns the number of busy workers
func (x *PoolExecutor) Running() int {
	return x.pool.Running()
}

// Wait blocks until every submitted execution context has returned
func (x *PoolExecutor) Wait() {
	x.wg.Wait()
}

// Release closes the worker pool and waits for its workers to exit
func (x *PoolExecutor) Release() error {
	return x.pool.ReleaseTimeout(releaseTimeout)
}
