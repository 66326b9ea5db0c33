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

// Package kws implements a streaming, incremental JSON parser and
// serializer backed by a dynamically-typed value model: a tagged union
// over null, bool, number, string, array and object, with objects
// stored in a nibble-indexed trie.
package kws

import "math"

// Tag identifies the dynamic type carried by a Value.
type Tag uint8

const (
	TagUndef Tag = iota
	TagNull
	TagArray
	TagObject
	TagNumber
	TagBool
	TagString
	// TagPtr wraps an opaque pointer. It is used internally by the
	// parser's frame stack and is never produced by parsing.
	TagPtr
)

func (t Tag) String() string {
	switch t {
	case TagUndef:
		return "undef"
	case TagNull:
		return "null"
	case TagArray:
		return "array"
	case TagObject:
		return "object"
	case TagNumber:
		return "number"
	case TagBool:
		return "bool"
	case TagString:
		return "string"
	case TagPtr:
		return "ptr"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the JSON value space plus the
// internal Ptr tag. Every non-singleton Value has exactly one owner;
// freeing an owner recursively frees owned values (see Free).
type Value struct {
	tag Tag

	num float64
	b   bool
	ptr interface{}

	str *stringValue
	arr *arrayValue
	obj *objectValue

	// bad records an allocation or capacity failure. Once set, further
	// mutations are accepted as no-ops and IsValid reports false.
	bad bool
}

var (
	nullSingleton  = &Value{tag: TagNull}
	trueSingleton  = &Value{tag: TagBool, b: true}
	falseSingleton = &Value{tag: TagBool, b: false}
)

// Null returns the canonical Null value. There is at most one; freeing
// it is a no-op.
func Null() *Value { return nullSingleton }

// True returns the canonical true Value.
func True() *Value { return trueSingleton }

// False returns the canonical false Value.
func False() *Value { return falseSingleton }

// NewBool returns one of the two canonical Bool singletons.
func NewBool(v bool) *Value {
	if v {
		return trueSingleton
	}
	return falseSingleton
}

// NewNumber constructs a new Number value wrapping f.
func NewNumber(f float64) *Value {
	return &Value{tag: TagNumber, num: f}
}

// NewPtr wraps an opaque pointer. Used only by the parser's internal
// state; never produced by parsing.
func NewPtr(p interface{}) *Value {
	return &Value{tag: TagPtr, ptr: p}
}

// Type reports the dynamic tag of v. A nil Value reports TagUndef.
func (v *Value) Type() Tag {
	if v == nil {
		return TagUndef
	}
	return v.tag
}

// IsValid reports whether v (and, transitively, any mutation performed
// on it) has not hit an allocation or capacity failure.
func (v *Value) IsValid() bool {
	if v == nil {
		return false
	}
	return !v.bad
}

// GetNumber returns the numeric payload, or NaN if v is not a Number.
func (v *Value) GetNumber() float64 {
	if v == nil || v.tag != TagNumber {
		return math.NaN()
	}
	return v.num
}

// GetBool returns the boolean payload, or false if v is not a Bool.
func (v *Value) GetBool() bool {
	if v == nil || v.tag != TagBool {
		return false
	}
	return v.b
}

// GetPtr returns the opaque pointer payload, or nil if v is not a Ptr.
func (v *Value) GetPtr() interface{} {
	if v == nil || v.tag != TagPtr {
		return nil
	}
	return v.ptr
}

// IsNull reports whether v is the Null value.
func (v *Value) IsNull() bool {
	return v != nil && v.tag == TagNull
}

// Free releases v and, for Array and Object, recursively frees owned
// children. Null and Bool are singletons; freeing them is a no-op.
func Free(v *Value) {
	if v == nil {
		return
	}
	switch v.tag {
	case TagArray:
		if v.arr != nil {
			for _, child := range v.arr.items {
				Free(child)
			}
			v.arr.items = nil
		}
	case TagObject:
		if v.obj != nil {
			v.obj.free()
		}
	case TagString:
		v.str = nil
	case TagPtr:
		v.ptr = nil
	}
}
