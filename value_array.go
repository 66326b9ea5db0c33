/*
 * kws, (C) 2024 The kws Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kws

import "math"

// defaultArrayCapacity mirrors JX_DEFAULT_ARRAY_SIZE from the original
// C implementation.
const defaultArrayCapacity = 8

// arrayValue is a growable sequence of owned Values. Capacity doubles
// on push when full.
type arrayValue struct {
	items []*Value
}

func newArrayValue(capacity int) *arrayValue {
	if capacity <= 0 {
		capacity = defaultArrayCapacity
	}
	return &arrayValue{items: make([]*Value, 0, capacity)}
}

func (a *arrayValue) push(v *Value) {
	if len(a.items) == cap(a.items) {
		newCap := cap(a.items) * 2
		if newCap == 0 {
			newCap = defaultArrayCapacity
		}
		nd := make([]*Value, len(a.items), newCap)
		copy(nd, a.items)
		a.items = nd
	}
	a.items = append(a.items, v)
}

func (a *arrayValue) pop() (*Value, bool) {
	n := len(a.items)
	if n == 0 {
		return nil, false
	}
	v := a.items[n-1]
	a.items[n-1] = nil
	a.items = a.items[:n-1]
	return v, true
}

func (a *arrayValue) top() (*Value, bool) {
	n := len(a.items)
	if n == 0 {
		return nil, false
	}
	return a.items[n-1], true
}

func (a *arrayValue) get(i int) (*Value, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

func (a *arrayValue) length() int { return len(a.items) }

// NewArray constructs a new, empty Array value with the given initial
// capacity hint.
func NewArray(capacity int) *Value {
	return &Value{tag: TagArray, arr: newArrayValue(capacity)}
}

// Len returns the number of elements in an Array value, or 0 for any
// other type.
func (v *Value) Len() int {
	if v == nil || v.tag != TagArray || v.arr == nil {
		return 0
	}
	return v.arr.length()
}

// PushValue appends value to an Array value, taking ownership of it.
func (v *Value) PushValue(value *Value) bool {
	if v == nil || v.tag != TagArray || v.arr == nil {
		return false
	}
	v.arr.push(value)
	return true
}

// PopValue removes and returns the last element of an Array, transferring
// ownership to the caller.
func (v *Value) PopValue() (*Value, bool) {
	if v == nil || v.tag != TagArray || v.arr == nil {
		return nil, false
	}
	return v.arr.pop()
}

// TopValue returns the last element of an Array without removing it.
func (v *Value) TopValue() (*Value, bool) {
	if v == nil || v.tag != TagArray || v.arr == nil {
		return nil, false
	}
	return v.arr.top()
}

// Get returns the element at index i, or (nil, false) if out of range
// or v is not an Array.
func (v *Value) Get(i int) (*Value, bool) {
	if v == nil || v.tag != TagArray || v.arr == nil {
		return nil, false
	}
	return v.arr.get(i)
}

// GetType returns the tag of the i'th array element.
func (v *Value) GetType(i int) Tag {
	e, ok := v.Get(i)
	if !ok {
		return TagUndef
	}
	return e.Type()
}

// PushNumber is a typed convenience wrapping PushValue(NewNumber(f)).
func (v *Value) PushNumber(f float64) bool {
	return v.PushValue(NewNumber(f))
}

// GetNumberAt returns the i'th array element as a number, or NaN if
// out of range or not a Number.
func (v *Value) GetNumberAt(i int) float64 {
	e, ok := v.Get(i)
	if !ok {
		return math.NaN()
	}
	return e.GetNumber()
}

// PushPtr is a typed convenience wrapping PushValue(NewPtr(p)).
func (v *Value) PushPtr(p interface{}) bool {
	return v.PushValue(NewPtr(p))
}

// GetPtrAt returns the i'th array element's opaque pointer payload.
func (v *Value) GetPtrAt(i int) interface{} {
	e, ok := v.Get(i)
	if !ok {
		return nil
	}
	return e.GetPtr()
}
