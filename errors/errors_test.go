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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	fatal := NewFatalError("event", 210, "reference count underflow")
	require.Error(t, fatal)
	require.EqualError(t, fatal, "kernel assertion failed: module=event id=210: reference count underflow")
	assert.ErrorIs(t, fatal, ErrAssertion)

	err := errors.New("something went wrong")
	panicErr := NewPanicError(err)
	require.EqualError(t, panicErr, "panic: something went wrong")
	assert.ErrorIs(t, panicErr.Unwrap(), err)
}

func TestIsFatal(t *testing.T) {
	t.Run("With a fatal error", func(t *testing.T) {
		fatal, ok := IsFatal(NewFatalError("queue", 1, "overflow"))
		require.True(t, ok)
		assert.Equal(t, "queue", fatal.Module)
		assert.Equal(t, 1, fatal.ID)
	})
	t.Run("With a wrapped fatal error", func(t *testing.T) {
		wrapped := fmt.Errorf("dispatch: %w", NewFatalError("actor", 3, "reentrancy"))
		fatal, ok := IsFatal(wrapped)
		require.True(t, ok)
		assert.Equal(t, 3, fatal.ID)
	})
	t.Run("With an ordinary error", func(t *testing.T) {
		_, ok := IsFatal(errors.New("boom"))
		assert.False(t, ok)
	})
	t.Run("With a non error value", func(t *testing.T) {
		_, ok := IsFatal("boom")
		assert.False(t, ok)
	})
}
