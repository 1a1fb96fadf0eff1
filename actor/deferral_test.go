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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goactive/event"
	"github.com/tochemey/goactive/queue"
)

func TestDeferRecall(t *testing.T) {
	t.Run("With round trip", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 4, nil)
		aux, err := k.NewQueue(2)
		require.NoError(t, err)

		// the in-flight reference held by the dispatching context
		e := k.Allocate(sigRequest, 1)
		require.True(t, ao.Defer(aux, e))
		assert.Equal(t, 2, k.Allocator().RefCount(e))

		pending := event.NewStatic(sigPing, nil)
		require.True(t, ao.Post(pending))

		require.True(t, ao.Recall(aux))
		assert.Equal(t, 2, k.Allocator().RefCount(e))
		assert.True(t, aux.IsEmpty())
		assert.Equal(t, 2, ao.Queue().Len())

		head, ok := ao.Queue().TryGet()
		require.True(t, ok)
		assert.Same(t, e, head)

		k.Release(e)
		k.Release(head)
		assert.Equal(t, testBlocks, freeBlocks(k))
	})
	t.Run("With deferred events purged", func(t *testing.T) {
		k := newTestKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 4, nil)
		aux, err := k.NewQueue(4)
		require.NoError(t, err)

		for range 3 {
			e := k.Allocate(sigRequest, 1)
			require.True(t, ao.Defer(aux, e))
			k.Release(e)
		}
		require.True(t, ao.Defer(aux, event.NewStatic(sigPing, nil)))
		assert.Equal(t, testBlocks-3, freeBlocks(k))

		stop := runKernel(t, k)
		stop()
		waitDone(t, ao)

		// termination leaves the auxiliary queue to its owner
		assert.Equal(t, 4, aux.Len())
		assert.Equal(t, 4, ao.PurgeDeferred(aux))
		assert.True(t, aux.IsEmpty())
		assert.Equal(t, testBlocks, freeBlocks(k))
		assert.Zero(t, ao.PurgeDeferred(aux))
	})
	t.Run("With empty auxiliary queue", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 4, nil)
		aux, err := k.NewQueue(2)
		require.NoError(t, err)

		assert.False(t, ao.Recall(aux))
		assert.True(t, ao.Queue().IsEmpty())
		assert.Equal(t, testBlocks, freeBlocks(k))
	})
	t.Run("With full auxiliary queue", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 4, nil)
		aux, err := k.NewQueue(1)
		require.NoError(t, err)

		first := k.Allocate(sigRequest, 1)
		second := k.Allocate(sigRequest, 1)
		require.True(t, ao.Defer(aux, first))
		assert.False(t, ao.Defer(aux, second))
		assert.Equal(t, 1, k.Allocator().RefCount(second))
		assert.Equal(t, 1, aux.Len())

		k.Release(second)
		k.Release(first)
		aux.Drain(k.Release)
		assert.Equal(t, testBlocks, freeBlocks(k))
	})
	t.Run("With static event", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 4, nil)
		aux, err := k.NewQueue(1)
		require.NoError(t, err)

		e := event.NewStatic(sigRequest, nil)
		require.True(t, ao.Defer(aux, e))
		require.True(t, ao.Recall(aux))
		head, ok := ao.Queue().TryGet()
		require.True(t, ok)
		assert.Same(t, e, head)
	})
	t.Run("With full object queue", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 1, nil)
		aux, err := k.NewQueue(1)
		require.NoError(t, err)

		require.True(t, ao.Post(event.NewStatic(sigPing, nil)))
		require.True(t, ao.Defer(aux, event.NewStatic(sigRequest, nil)))
		requireFatal(t, activeObjectModule, assertRecallOverflow, func() {
			ao.Recall(aux)
		})
	})
	t.Run("With inconsistent reference count", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("server", newRecorder())
		ao.Start(1, 4, nil)
		aux, err := k.NewQueue(1)
		require.NoError(t, err)

		e := k.Allocate(sigRequest, 1)
		require.True(t, ao.Defer(aux, e))

		// the producer releases one reference too many: the aux slot no longer owns one
		k.Release(e)
		k.Release(e)

		requireFatal(t, activeObjectModule, assertRecallRefCount, func() {
			ao.Recall(aux)
		})
	})
}

// requestServer handles one request at a time, deferring the requests that
// arrive while it is busy and recalling one each time it becomes idle
type requestServer struct {
	aux     *queue.EventQueue
	done    *event.Event
	busy    bool
	mu      sync.Mutex
	handled []byte
	ready   chan struct{}
	expect  int
}

func (s *requestServer) Init(*Context, *event.Event) {}

func (s *requestServer) Dispatch(ctx *Context, e *event.Event) {
	switch e.Signal() {
	case sigRequest:
		if s.busy {
			if !ctx.Defer(s.aux, e) {
				ctx.Logger().Warnf("dropping request %d", e.Bytes()[0])
			}
			return
		}
		s.busy = true
		s.record(e.Bytes()[0])
		if !ctx.Self().Post(s.done) {
			ctx.Logger().Error("cannot post done")
		}
	case sigDone:
		s.busy = false
		ctx.Recall(s.aux)
	}
}

func (s *requestServer) record(id byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handled = append(s.handled, id)
	if len(s.handled) == s.expect {
		close(s.ready)
	}
}

func TestDeferredRequestServer(t *testing.T) {
	k := newTestKernel(t)
	aux, err := k.NewQueue(4)
	require.NoError(t, err)

	server := &requestServer{
		aux:    aux,
		done:   event.NewStatic(sigDone, nil),
		ready:  make(chan struct{}),
		expect: 3,
	}
	ao := k.NewActiveObject("server", server)
	ao.Start(1, 8, nil)

	for id := byte(1); id <= 3; id++ {
		e := k.Allocate(sigRequest, 1)
		e.Bytes()[0] = id
		require.True(t, ao.Post(e))
		k.Release(e)
	}

	stop := runKernel(t, k)
	select {
	case <-server.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("requests were not all handled")
	}

	server.mu.Lock()
	assert.Equal(t, []byte{1, 2, 3}, server.handled)
	server.mu.Unlock()

	require.Eventually(t, func() bool { return freeBlocks(k) == testBlocks }, time.Second, time.Millisecond)
	assert.True(t, aux.IsEmpty())
	stop()
}
