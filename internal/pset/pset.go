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

// Package pset implements the priority sets holding the subscribers of a signal.
package pset

import "github.com/Workiva/go-datastructures/bitarray"

// PrioritySet is a set of active object priorities in [1, max].
// It is not safe for concurrent use.
type PrioritySet struct {
	bits bitarray.BitArray
	max  uint8
}

// New creates an empty PrioritySet accepting priorities up to max
func New(max uint8) *PrioritySet {
	return &PrioritySet{
		bits: bitarray.NewBitArray(uint64(max) + 1),
		max:  max,
	}
}

// Insert adds priority p. It reports false when p is out of range.
func (s *PrioritySet) Insert(p uint8) bool {
	if !s.valid(p) {
		return false
	}
	return s.bits.SetBit(uint64(p)) == nil
}

// Remove deletes priority p. It reports false when p is out of range.
func (s *PrioritySet) Remove(p uint8) bool {
	if !s.valid(p) {
		return false
	}
	return s.bits.ClearBit(uint64(p)) == nil
}

// Has reports whether p belongs to the set
func (s *PrioritySet) Has(p uint8) bool {
	if !s.valid(p) {
		return false
	}
	ok, err := s.bits.GetBit(uint64(p))
	return err == nil && ok
}

// IsEmpty reports whether the set holds no priority
func (s *PrioritySet) IsEmpty() bool {
	return s.bits.IsEmpty()
}

// Len returns the number of priorities in the set
func (s *PrioritySet) Len() int {
	return len(s.bits.ToNums())
}

// Descending returns the priorities of the set from the highest down
func (s *PrioritySet) Descending() []uint8 {
	nums := s.bits.ToNums()
	out := make([]uint8, len(nums))
	for i, n := range nums {
		out[len(nums)-1-i] = uint8(n)
	}
	return out
}

func (s *PrioritySet) valid(p uint8) bool {
	return p >= 1 && p <= s.max
}
