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

package validation

import "fmt"

// RangeValidator checks that an integer setting lies within inclusive bounds
type RangeValidator struct {
	field string
	value int64
	min   int64
	max   int64
	cause error
}

var _ Validator = (*RangeValidator)(nil)

// NewRangeValidator creates a RangeValidator. cause is wrapped in the returned violation.
func NewRangeValidator(field string, value, min, max int64, cause error) *RangeValidator {
	return &RangeValidator{
		field: field,
		value: value,
		min:   min,
		max:   max,
		cause: cause,
	}
}

// Validate implements Validator
func (v *RangeValidator) Validate() error {
	if v.value < v.min || v.value > v.max {
		return fmt.Errorf("%s=%d not in [%d, %d]: %w", v.field, v.value, v.min, v.max, v.cause)
	}
	return nil
}
