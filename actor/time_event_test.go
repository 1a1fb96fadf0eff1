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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEvent(t *testing.T) {
	t.Run("With one shot expiry", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 4, nil)

		te := k.NewTimeEvent(ao, sigTimeout)
		assert.Same(t, ao, te.Owner())
		assert.True(t, te.Event().IsStatic())
		assert.Same(t, te, te.Event().Value())

		te.Arm(3, 0)
		assert.True(t, te.IsArmed())
		k.Tick()
		k.Tick()
		assert.True(t, ao.Queue().IsEmpty())
		assert.EqualValues(t, 1, te.CountdownTicks())

		k.Tick()
		assert.False(t, te.IsArmed())
		e, ok := ao.Queue().TryGet()
		require.True(t, ok)
		assert.Same(t, te.Event(), e)

		k.Tick()
		assert.True(t, ao.Queue().IsEmpty())
	})
	t.Run("With periodic expiry", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 4, nil)

		te := k.NewTimeEvent(ao, sigTimeout)
		te.Arm(1, 2)
		for range 5 {
			k.Tick()
		}
		assert.Equal(t, 3, ao.Queue().Len())
		assert.True(t, te.IsArmed())
		assert.EqualValues(t, 2, te.CountdownTicks())
	})
	t.Run("With disarm and rearm", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 4, nil)

		te := k.NewTimeEvent(ao, sigTimeout)
		assert.False(t, te.Disarm())

		te.Arm(2, 0)
		assert.True(t, te.Disarm())
		assert.False(t, te.IsArmed())
		assert.Zero(t, te.CountdownTicks())
		k.Tick()
		k.Tick()
		assert.True(t, ao.Queue().IsEmpty())

		assert.False(t, te.Rearm(2))
		k.Tick()
		assert.True(t, te.Rearm(2))
		k.Tick()
		assert.True(t, ao.Queue().IsEmpty())
		k.Tick()
		assert.Equal(t, 1, ao.Queue().Len())
	})
	t.Run("With expiry order following arming order", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 4, nil)

		first := k.NewTimeEvent(ao, sigPing)
		second := k.NewTimeEvent(ao, sigPong)
		first.Arm(1, 0)
		second.Arm(1, 0)
		k.Tick()

		e, _ := ao.Queue().TryGet()
		assert.Same(t, first.Event(), e)
		e, _ = ao.Queue().TryGet()
		assert.Same(t, second.Event(), e)
	})
	t.Run("With invalid arming", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 4, nil)
		te := k.NewTimeEvent(ao, sigTimeout)

		requireFatal(t, timeEventModule, assertTimeEventTicks, func() { te.Arm(0, 0) })
		requireFatal(t, timeEventModule, assertTimeEventTicks, func() { te.Rearm(0) })
		te.Arm(1, 0)
		requireFatal(t, timeEventModule, assertTimeEventArmed, func() { te.Arm(1, 0) })
		requireFatal(t, timeEventModule, assertTimeEventOwner, func() { k.NewTimeEvent(nil, sigTimeout) })
	})
	t.Run("With full owner queue", func(t *testing.T) {
		k := newManualKernel(t)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 1, nil)

		k.NewTimeEvent(ao, sigPing).Arm(1, 0)
		k.NewTimeEvent(ao, sigPong).Arm(1, 0)
		requireFatal(t, timeEventModule, assertTimeEventOverflow, k.Tick)
	})
	t.Run("With kernel clock", func(t *testing.T) {
		source := newManualTickSource()
		k := newTestKernel(t, WithTickSource(source))
		behavior := newRecorder()
		ao := k.NewActiveObject("worker", behavior)
		ao.Start(1, 4, nil)

		stop := runKernel(t, k)
		source.waitStarted(t)

		te := k.NewTimeEvent(ao, sigTimeout)
		te.Arm(2, 0)
		source.tick(t)
		source.tick(t)
		assert.Equal(t, sigTimeout, behavior.next(t))
		stop()
	})
	t.Run("With owner stopped", func(t *testing.T) {
		k := newTestKernel(t)
		stop := runKernel(t, k)
		ao := k.NewActiveObject("worker", newRecorder())
		ao.Start(1, 4, nil)

		te := k.NewTimeEvent(ao, sigTimeout)
		te.Arm(5, 5)
		ao.Stop()
		waitDone(t, ao)
		assert.False(t, te.IsArmed())
		stop()
	})
}
