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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"

	"github.com/tochemey/goactive/config"
	gerrors "github.com/tochemey/goactive/errors"
	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/log"
)

func TestNewKernel(t *testing.T) {
	t.Run("With default configuration", func(t *testing.T) {
		k, err := NewKernel(WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		assert.NotEmpty(t, k.ID())
		assert.Equal(t, config.DefaultMaxActive, k.Config().MaxActive)
		assert.Len(t, k.Allocator().PoolStats(), len(k.Config().Pools))
		assert.Equal(t, log.DiscardLogger, k.Logger())
		assert.Same(t, k.Section(), k.Allocator().Section())
		assert.Empty(t, k.ActiveObjects())
		assert.False(t, k.Running())
		require.NoError(t, k.Shutdown(context.Background()))
	})
	t.Run("With invalid configuration", func(t *testing.T) {
		cfg := config.Default()
		cfg.MaxActive = 0
		cfg.DefaultQueueCapacity = 0
		k, err := NewKernel(WithConfig(cfg))
		require.Nil(t, k)
		assert.ErrorIs(t, err, gerrors.ErrInvalidMaxActive)
		assert.ErrorIs(t, err, gerrors.ErrInvalidQueueCapacity)
	})
	t.Run("With metrics enabled", func(t *testing.T) {
		k, err := NewKernel(
			WithConfig(testConfig(t, config.WithMetrics())),
			WithMeterProvider(noop.NewMeterProvider()))
		require.NoError(t, err)
		require.NoError(t, k.Shutdown(context.Background()))
	})
	t.Run("With pool executor", func(t *testing.T) {
		k := newTestKernel(t, WithConfig(testConfig(t, config.WithExecutorPoolSize(2))))
		stop := runKernel(t, k)

		first := newRecorder()
		second := newRecorder()
		k.NewActiveObject("first", first).Start(1, 0, nil)
		k.NewActiveObject("second", second).Start(2, 0, nil)

		// both workers are owned by the running active objects
		third := k.NewActiveObject("third", newRecorder())
		requireFatal(t, activeObjectModule, assertNoExecution, func() {
			third.Start(3, 0, nil)
		})
		assert.Equal(t, Terminated, third.State())
		_, ok := k.ActiveObject(3)
		assert.False(t, ok)

		ping := event.NewStatic(sigPing, nil)
		ao, ok := k.ActiveObject(1)
		require.True(t, ok)
		require.True(t, ao.Post(ping))
		assert.Equal(t, sigPing, first.next(t))

		stop()
	})
}

func TestRun(t *testing.T) {
	t.Run("With hooks and clock ticks", func(t *testing.T) {
		source := newManualTickSource()
		startup := atomic.NewInt32(0)
		cleanup := atomic.NewInt32(0)
		ticks := atomic.NewInt32(0)

		k := newTestKernel(t,
			WithTickSource(source),
			WithStartupHook(func() { startup.Inc() }),
			WithCleanupHook(func() { cleanup.Inc() }),
			WithClockTickHook(func() { ticks.Inc() }))

		errCh := make(chan error, 1)
		go func() { errCh <- k.Run(context.Background()) }()
		source.waitStarted(t)
		assert.EqualValues(t, 1, startup.Load())

		source.tick(t)
		source.tick(t)
		require.Eventually(t, func() bool { return ticks.Load() == 2 }, time.Second, time.Millisecond)

		k.Stop()
		require.NoError(t, <-errCh)
		assert.EqualValues(t, 1, cleanup.Load())
		assert.False(t, source.started.Load())
		assert.False(t, k.Running())
	})
	t.Run("With kernel already running", func(t *testing.T) {
		k := newTestKernel(t)
		stop := runKernel(t, k)
		require.ErrorIs(t, k.Run(context.Background()), gerrors.ErrKernelAlreadyRunning)
		stop()
	})
	t.Run("With stopped kernel", func(t *testing.T) {
		k := newTestKernel(t)
		k.Stop()
		require.ErrorIs(t, k.Run(context.Background()), gerrors.ErrKernelStopped)
	})
	t.Run("With context canceled", func(t *testing.T) {
		k := newTestKernel(t)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		require.NoError(t, k.Run(ctx))
		require.NoError(t, k.Shutdown(context.Background()))
	})
	t.Run("With the default tick source", func(t *testing.T) {
		ticks := atomic.NewInt32(0)
		k, err := NewKernel(
			WithConfig(testConfig(t, config.WithTicksPerSecond(1000))),
			WithClockTickHook(func() { ticks.Inc() }))
		require.NoError(t, err)

		stop := runKernel(t, k)
		require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
		stop()
	})
}

func TestShutdown(t *testing.T) {
	t.Run("With every active object terminated", func(t *testing.T) {
		k := newTestKernel(t)
		stop := runKernel(t, k)

		objects := make([]*ActiveObject, 0, 3)
		for i := 1; i <= 3; i++ {
			ao := k.NewActiveObject("worker", newRecorder())
			ao.Start(uint8(i), 0, nil)
			objects = append(objects, ao)
		}
		require.Len(t, k.ActiveObjects(), 3)

		stop()
		for _, ao := range objects {
			waitDone(t, ao)
			assert.Equal(t, Terminated, ao.State())
		}
		assert.Empty(t, k.ActiveObjects())
		assert.Equal(t, testBlocks, freeBlocks(k))
	})
	t.Run("With an active object stuck in dispatch", func(t *testing.T) {
		k := newTestKernel(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = k.Run(ctx) }()
		require.Eventually(t, k.Running, time.Second, time.Millisecond)

		entered := make(chan struct{})
		unblock := make(chan struct{})
		ao := k.NewActiveObject("stuck", BehaviorFunc(func(*Context, *event.Event) {
			close(entered)
			<-unblock
		}))
		ao.Start(1, 0, nil)
		require.True(t, ao.Post(event.NewStatic(sigPing, nil)))
		<-entered

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer shutdownCancel()
		err := k.Shutdown(shutdownCtx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "stuck")

		close(unblock)
		waitDone(t, ao)
		require.Eventually(t, func() bool { return !k.Running() }, time.Second, time.Millisecond)
	})
}

func TestAssertHandler(t *testing.T) {
	var observed *gerrors.FatalError
	k := newManualKernel(t, WithAssertHandler(func(fatal *gerrors.FatalError) {
		observed = fatal
	}))

	requireFatal(t, "event", 200, func() {
		k.Allocate(sigPing, 1024)
	})
	require.NotNil(t, observed)
	assert.Equal(t, "event", observed.Module)
	assert.ErrorIs(t, observed, gerrors.ErrAssertion)
}

func TestAllocation(t *testing.T) {
	k := newManualKernel(t)

	e := k.Allocate(sigPing, 10)
	assert.EqualValues(t, 1, e.PoolID())
	assert.Len(t, e.Bytes(), 10)

	k.Retain(e)
	assert.Equal(t, 2, k.Allocator().RefCount(e))
	k.Release(e)
	k.Release(e)
	assert.Equal(t, testBlocks, freeBlocks(k))

	big, ok := k.TryAllocate(sigPing, 40, 3)
	require.True(t, ok)
	_, ok = k.TryAllocate(sigPing, 40, 3)
	assert.False(t, ok)
	k.Release(big)

	aux, err := k.NewQueue(2)
	require.NoError(t, err)
	assert.Equal(t, 2, aux.Cap())
	_, err = k.NewQueue(0)
	require.ErrorIs(t, err, gerrors.ErrInvalidQueueCapacity)
}
