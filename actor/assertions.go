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

// modules reported by the kernel fatal assertions
const (
	kernelModule       = "kernel"
	activeObjectModule = "active_object"
	timeEventModule    = "time_event"
)

// active object assertions
const (
	assertPriorityRange   = 100
	assertPriorityInUse   = 110
	assertNotCreated      = 120
	assertQueueCapacity   = 130
	assertNoExecution     = 140
	assertNilBehavior     = 150
	assertReentrantCall   = 200
	assertRecallOverflow  = 300
	assertRecallRefCount  = 310
)

// kernel assertions
const (
	assertPublishOverflow = 100
	assertNotStarted      = 110
	assertNilActiveObject = 120
)

// time event assertions
const (
	assertTimeEventOwner    = 100
	assertTimeEventTicks    = 110
	assertTimeEventArmed    = 120
	assertTimeEventOverflow = 200
)
