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

import "github.com/tochemey/goactive/event"

// TimeEvent posts a static event to its owner after a number of clock ticks,
// once or periodically. Clock ticks are produced by Kernel.Tick.
type TimeEvent struct {
	kernel *Kernel
	owner  *ActiveObject
	event  *event.Event

	// guarded by kernel.timeMu
	counter  uint32
	interval uint32
	armed    bool
}

// NewTimeEvent creates a disarmed time event posting signal to owner.
// The posted event is static and carries the TimeEvent as its value.
func (k *Kernel) NewTimeEvent(owner *ActiveObject, signal event.Signal) *TimeEvent {
	if owner == nil {
		k.timeAsserter.Fail(assertTimeEventOwner, "time event with signal %d has no owner", signal)
	}

	te := &TimeEvent{kernel: k, owner: owner}
	te.event = event.NewStatic(signal, te)
	return te
}

// Event returns the static event posted on expiry
func (te *TimeEvent) Event() *event.Event {
	return te.event
}

// Owner returns the active object receiving the event
func (te *TimeEvent) Owner() *ActiveObject {
	return te.owner
}

// Arm schedules the event ticks clock ticks from now, then every interval
// ticks when interval is not zero. Arming an armed time event is fatal.
func (te *TimeEvent) Arm(ticks, interval uint32) {
	k := te.kernel
	if ticks == 0 {
		k.timeAsserter.Fail(assertTimeEventTicks, "time event %s armed with zero ticks", te.event)
	}

	k.timeMu.Lock()
	if te.armed {
		k.timeMu.Unlock()
		k.timeAsserter.Fail(assertTimeEventArmed, "time event %s is already armed", te.event)
	}
	te.counter = ticks
	te.interval = interval
	te.armed = true
	k.armed = append(k.armed, te)
	k.timeMu.Unlock()
}

// Disarm cancels the time event. It reports whether the event was armed,
// false meaning it already expired or was never armed.
func (te *TimeEvent) Disarm() bool {
	k := te.kernel
	k.timeMu.Lock()
	defer k.timeMu.Unlock()

	wasArmed := te.armed
	if wasArmed {
		k.removeArmedLocked(te)
	}
	return wasArmed
}

// Rearm restarts the countdown at ticks, arming the event if needed while
// keeping its interval. It reports whether the event was armed.
func (te *TimeEvent) Rearm(ticks uint32) bool {
	k := te.kernel
	if ticks == 0 {
		k.timeAsserter.Fail(assertTimeEventTicks, "time event %s rearmed with zero ticks", te.event)
	}

	k.timeMu.Lock()
	defer k.timeMu.Unlock()

	wasArmed := te.armed
	te.counter = ticks
	if !wasArmed {
		te.armed = true
		k.armed = append(k.armed, te)
	}
	return wasArmed
}

// IsArmed reports whether the time event is armed
func (te *TimeEvent) IsArmed() bool {
	te.kernel.timeMu.Lock()
	defer te.kernel.timeMu.Unlock()
	return te.armed
}

// CountdownTicks returns the number of ticks left before expiry, 0 when disarmed
func (te *TimeEvent) CountdownTicks() uint32 {
	te.kernel.timeMu.Lock()
	defer te.kernel.timeMu.Unlock()
	return te.counter
}

// Tick processes one clock tick: every armed time event counts down and the
// expired ones are posted to their owners in arming order. Periodic time
// events are rearmed with their interval. A full owner queue is fatal.
func (k *Kernel) Tick() {
	k.timeMu.Lock()
	var overflow *TimeEvent
	kept := k.armed[:0]
	for _, te := range k.armed {
		te.counter--
		if te.counter > 0 {
			kept = append(kept, te)
			continue
		}

		if posted, accepting := te.owner.deliver(te.event, 0, false); !posted && accepting && overflow == nil {
			overflow = te
		}

		if te.interval > 0 {
			te.counter = te.interval
			kept = append(kept, te)
			continue
		}
		te.armed = false
	}

	for i := len(kept); i < len(k.armed); i++ {
		k.armed[i] = nil
	}
	k.armed = kept
	k.timeMu.Unlock()

	if overflow != nil {
		k.timeAsserter.Fail(assertTimeEventOverflow, "cannot post %s: queue of (%s) is full", overflow.event, overflow.owner.name)
	}

	if k.onClockTick != nil {
		k.onClockTick()
	}
}

// disarmAll disarms every time event owned by ao
func (k *Kernel) disarmAll(ao *ActiveObject) {
	k.timeMu.Lock()
	defer k.timeMu.Unlock()

	kept := k.armed[:0]
	for _, te := range k.armed {
		if te.owner == ao {
			te.armed = false
			te.counter = 0
			continue
		}
		kept = append(kept, te)
	}
	for i := len(kept); i < len(k.armed); i++ {
		k.armed[i] = nil
	}
	k.armed = kept
}

func (k *Kernel) removeArmedLocked(te *TimeEvent) {
	for i, armed := range k.armed {
		if armed == te {
			k.armed = append(k.armed[:i], k.armed[i+1:]...)
			break
		}
	}
	te.armed = false
	te.counter = 0
}
