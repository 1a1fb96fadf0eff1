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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrAssertion is the root of every unrecoverable kernel invariant violation.
	// It is never returned: it only travels inside a panicking *FatalError.
	ErrAssertion = errors.New("kernel assertion failed")

	// ErrQueueFull is reported when an event cannot be posted because the target queue has no free slot.
	ErrQueueFull = errors.New("event queue is full")

	// ErrKernelAlreadyRunning is returned when Run is called on a kernel that is already running.
	ErrKernelAlreadyRunning = errors.New("kernel is already running")

	// ErrKernelStopped is returned when an operation requires a kernel that has not been stopped.
	ErrKernelStopped = errors.New("kernel has been stopped")

	// ErrExecutorClosed is returned when an execution context is requested from a released executor.
	ErrExecutorClosed = errors.New("executor has been released")

	// ErrExecutorSaturated is returned when the executor cannot provide another execution context.
	ErrExecutorSaturated = errors.New("executor has no free execution context")

	// ErrInvalidMaxActive is returned when the maximum number of active objects is out of range.
	ErrInvalidMaxActive = errors.New("max active must be between 1 and 255")

	// ErrInvalidTicksPerSecond is returned when the clock tick rate is not positive.
	ErrInvalidTicksPerSecond = errors.New("ticks per second must be greater than zero")

	// ErrInvalidQueueCapacity is returned when an event queue capacity is not positive.
	ErrInvalidQueueCapacity = errors.New("queue capacity must be greater than zero")

	// ErrInvalidPool is returned when an event pool has no blocks or a zero block size.
	ErrInvalidPool = errors.New("event pool must have a positive block size and block count")

	// ErrPoolsNotAscending is returned when event pools are not declared in strictly ascending block size order.
	ErrPoolsNotAscending = errors.New("event pools must be declared in strictly ascending block size order")

	// ErrTooManyPools is returned when more event pools are declared than the kernel can address.
	ErrTooManyPools = errors.New("too many event pools")

	// ErrInvalidExecutorPoolSize is returned when the executor pool size is negative.
	ErrInvalidExecutorPoolSize = errors.New("executor pool size must not be negative")
)

// FatalError describes an unrecoverable invariant violation detected by the kernel.
// The kernel raises it with panic after notifying the assertion hook.
type FatalError struct {
	// Module names the kernel component that detected the violation
	Module string
	// ID identifies the assertion inside the module
	ID int
	// Reason is a human readable description of the violation
	Reason string
}

// enforce compilation error
var _ error = (*FatalError)(nil)

// NewFatalError creates an instance of FatalError
func NewFatalError(module string, id int, reason string) *FatalError {
	return &FatalError{
		Module: module,
		ID:     id,
		Reason: reason,
	}
}

// Error implements the standard error interface
func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: module=%s id=%d: %s", ErrAssertion.Error(), e.Module, e.ID, e.Reason)
}

// Unwrap returns ErrAssertion so that errors.Is can classify any fatal error
func (e *FatalError) Unwrap() error {
	return ErrAssertion
}

// PanicError wraps a panic recovered while an active object dispatched an event
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// IsFatal reports whether the given value, typically obtained from recover, is a kernel FatalError
func IsFatal(v any) (*FatalError, bool) {
	err, ok := v.(error)
	if !ok {
		return nil, false
	}
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return fatal, true
	}
	return nil, false
}
