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

import "fmt"

// stringMinCapacity is the smallest capacity a string buffer grows to;
// growth beyond it doubles until the requirement is satisfied.
const stringMinCapacity = 16

// stringValue is a mutable, growable byte buffer holding UTF-8 text.
// It always keeps a NUL byte at data[length], satisfying size >=
// length+1 the way the original C implementation's jx_value string
// payload does, even though Go code never reads that sentinel byte.
type stringValue struct {
	data   []byte
	length int
	bad    bool
}

func newStringValue(s string) *stringValue {
	sv := &stringValue{}
	sv.grow(stringMinCapacity)
	if len(s) > 0 {
		sv.appendBytes([]byte(s))
	}
	return sv
}

func (s *stringValue) grow(minCap int) {
	if len(s.data) >= minCap {
		return
	}
	newCap := stringMinCapacity
	if len(s.data) > newCap {
		newCap = len(s.data)
	}
	for newCap < minCap {
		newCap *= 2
	}
	nd := make([]byte, newCap)
	copy(nd, s.data[:s.length])
	s.data = nd
}

func (s *stringValue) ensure(extra int) {
	needed := s.length + extra + 1 // +1 keeps the NUL terminator invariant
	s.grow(needed)
}

func (s *stringValue) appendByte(b byte) {
	s.ensure(1)
	s.data[s.length] = b
	s.length++
	s.data[s.length] = 0
}

func (s *stringValue) appendBytes(p []byte) {
	if len(p) == 0 {
		return
	}
	s.ensure(len(p))
	copy(s.data[s.length:], p)
	s.length += len(p)
	s.data[s.length] = 0
}

func (s *stringValue) appendFormat(format string, args ...interface{}) {
	s.appendBytes([]byte(fmt.Sprintf(format, args...)))
}

// push treats the string as a byte stack, as does appendByte.
func (s *stringValue) push(b byte) { s.appendByte(b) }

func (s *stringValue) pop() (byte, bool) {
	if s.length == 0 {
		return 0, false
	}
	s.length--
	b := s.data[s.length]
	s.data[s.length] = 0
	return b, true
}

func (s *stringValue) top() (byte, bool) {
	if s.length == 0 {
		return 0, false
	}
	return s.data[s.length-1], true
}

func (s *stringValue) Len() int { return s.length }

func (s *stringValue) String() string { return string(s.data[:s.length]) }

func (s *stringValue) Bytes() []byte { return s.data[:s.length] }

// NewString constructs a new String value, optionally seeded with an
// initial byte sequence.
func NewString(s string) *Value {
	return &Value{tag: TagString, str: newStringValue(s)}
}

// GetString returns the byte contents of v as a string. Non-strings
// return "".
func (v *Value) GetString() string {
	if v == nil || v.tag != TagString || v.str == nil {
		return ""
	}
	return v.str.String()
}

// StringLen returns the byte length of a String value, or 0 otherwise.
func (v *Value) StringLen() int {
	if v == nil || v.tag != TagString || v.str == nil {
		return 0
	}
	return v.str.Len()
}

// AppendByte appends a single byte to a String value.
func (v *Value) AppendByte(b byte) {
	if v == nil || v.tag != TagString || v.str == nil {
		return
	}
	v.str.appendByte(b)
}

// AppendString appends s to a String value.
func (v *Value) AppendString(s string) {
	if v == nil || v.tag != TagString || v.str == nil {
		return
	}
	v.str.appendBytes([]byte(s))
}

// AppendFormat appends a printf-formatted string, mirroring the
// original jxs_append_fmt vararg signature.
func (v *Value) AppendFormat(format string, args ...interface{}) {
	if v == nil || v.tag != TagString || v.str == nil {
		return
	}
	v.str.appendFormat(format, args...)
}

// Push appends a single byte, treating the string as a byte stack.
func (v *Value) Push(b byte) {
	if v == nil || v.tag != TagString || v.str == nil {
		return
	}
	v.str.push(b)
}

// Pop removes and returns the last byte of a String value.
func (v *Value) Pop() (byte, bool) {
	if v == nil || v.tag != TagString || v.str == nil {
		return 0, false
	}
	return v.str.pop()
}

// Top returns the last byte of a String value without removing it.
func (v *Value) Top() (byte, bool) {
	if v == nil || v.tag != TagString || v.str == nil {
		return 0, false
	}
	return v.str.top()
}
