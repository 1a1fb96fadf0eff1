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

package assertion

import (
	"fmt"

	gerrors "github.com/tochemey/goactive/errors"
)

// Handler observes a fatal assertion before the kernel stops.
// It cannot prevent the stop: once it returns the assertion panics.
type Handler func(fatal *gerrors.FatalError)

// Asserter raises the fatal assertions of one kernel module
type Asserter struct {
	module  string
	handler Handler
}

// New creates an Asserter for the given module
func New(module string, handler Handler) *Asserter {
	return &Asserter{
		module:  module,
		handler: handler,
	}
}

// Module returns the module name
func (a *Asserter) Module() string {
	return a.module
}

// Require fails with the given id when cond is false
func (a *Asserter) Require(cond bool, id int, reason string) {
	if !cond {
		a.Fail(id, "%s", reason)
	}
}

// Fail raises the assertion with the given id. It never returns.
func (a *Asserter) Fail(id int, format string, args ...any) {
	reason := format
	if len(args) > 0 {
		reason = fmt.Sprintf(format, args...)
	}

	fatal := gerrors.NewFatalError(a.module, id, reason)
	if a.handler != nil {
		a.handler(fatal)
	}
	panic(fatal)
}
