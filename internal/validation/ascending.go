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

// AscendingValidator checks that a sequence of sizes is strictly increasing
type AscendingValidator struct {
	field  string
	values []int
	cause  error
}

var _ Validator = (*AscendingValidator)(nil)

// NewAscendingValidator creates an AscendingValidator. cause is wrapped in the returned violation.
func NewAscendingValidator(field string, values []int, cause error) *AscendingValidator {
	return &AscendingValidator{field: field, values: values, cause: cause}
}

// Validate implements Validator
func (v *AscendingValidator) Validate() error {
	for i := 1; i < len(v.values); i++ {
		if v.values[i] <= v.values[i-1] {
			return fmt.Errorf("%s[%d]=%d must be larger than %s[%d]=%d: %w",
				v.field, i, v.values[i], v.field, i-1, v.values[i-1], v.cause)
		}
	}
	return nil
}
