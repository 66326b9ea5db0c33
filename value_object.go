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

// trieNode is one node of the 16-way digit trie keyed by nibbles of
// the object's keys. Two trie levels encode one key byte: a node's
// nibble field records which nibble value reaches it from its parent,
// reconstructed during iteration to recover the original key bytes.
//
// The original C implementation indexes child slots by (nibble+1) to
// keep a zero value free as an absent-child sentinel in a plain array.
// Go's child slots are typed pointers, where nil already distinguishes
// absent from present, so this port drops the +1 shift; externally the
// lexicographic ordering and key reconstruction are identical.
type trieNode struct {
	children [16]*trieNode
	value    *Value
	nibble   byte
}

type objectValue struct {
	root *trieNode
}

func newObjectValue() *objectValue {
	return &objectValue{root: &trieNode{}}
}

func nibblesOf(b byte) (hi, lo byte) {
	return b >> 4, b & 0x0F
}

func (n *trieNode) descend(nibble byte, create bool) *trieNode {
	child := n.children[nibble]
	if child == nil && create {
		child = &trieNode{nibble: nibble}
		n.children[nibble] = child
	}
	return child
}

func (o *objectValue) walk(key []byte, create bool) *trieNode {
	node := o.root
	for _, b := range key {
		hi, lo := nibblesOf(b)
		node = node.descend(hi, create)
		if node == nil {
			return nil
		}
		node = node.descend(lo, create)
		if node == nil {
			return nil
		}
	}
	return node
}

// put inserts value at key, returning (and not freeing) any prior
// value stored at the same key so the caller can free it.
func (o *objectValue) put(key []byte, value *Value) *Value {
	node := o.walk(key, true)
	old := node.value
	node.value = value
	return old
}

func (o *objectValue) get(key []byte) *Value {
	node := o.walk(key, false)
	if node == nil {
		return nil
	}
	return node.value
}

func (o *objectValue) has(key []byte) bool {
	return o.get(key) != nil
}

// del removes the value at key, pruning any ancestor that becomes both
// value-less and child-less on the way back up.
func (o *objectValue) del(key []byte) (*Value, bool) {
	type step struct {
		parent *trieNode
		nibble byte
		node   *trieNode
	}
	path := make([]step, 0, len(key)*2)
	node := o.root
	for _, b := range key {
		hi, lo := nibblesOf(b)
		next := node.descend(hi, false)
		if next == nil {
			return nil, false
		}
		path = append(path, step{node, hi, next})
		node = next
		next = node.descend(lo, false)
		if next == nil {
			return nil, false
		}
		path = append(path, step{node, lo, next})
		node = next
	}
	if node.value == nil {
		return nil, false
	}
	removed := node.value
	node.value = nil

	for i := len(path) - 1; i >= 0; i-- {
		n := path[i].node
		if n.value != nil {
			break
		}
		if n.hasChildren() {
			break
		}
		path[i].parent.children[path[i].nibble] = nil
	}
	return removed, true
}

func (n *trieNode) hasChildren() bool {
	for _, c := range n.children {
		if c != nil {
			return true
		}
	}
	return false
}

func decodeKey(nibbles []byte) []byte {
	key := make([]byte, len(nibbles)/2)
	for i := range key {
		key[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	return key
}

// iterate yields every (key, value) pair exactly once, in strictly
// increasing byte-lexicographic key order.
func (o *objectValue) iterate(cb func(key []byte, value *Value)) {
	path := make([]byte, 0, 32)
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		if n.value != nil {
			cb(decodeKey(path), n.value)
		}
		for i := 0; i < 16; i++ {
			c := n.children[i]
			if c == nil {
				continue
			}
			path = append(path, byte(i))
			walk(c)
			path = path[:len(path)-1]
		}
	}
	walk(o.root)
}

func (o *objectValue) free() {
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		if n == nil {
			return
		}
		Free(n.value)
		for i, c := range n.children {
			walk(c)
			n.children[i] = nil
		}
		n.value = nil
	}
	walk(o.root)
	o.root = &trieNode{}
}

// NewObject constructs a new, empty Object value.
func NewObject() *Value {
	return &Value{tag: TagObject, obj: newObjectValue()}
}

// Put inserts value at key, taking ownership of it and freeing any
// prior value stored at the same key.
func (v *Value) Put(key string, value *Value) bool {
	if v == nil || v.tag != TagObject || v.obj == nil {
		return false
	}
	old := v.obj.put([]byte(key), value)
	Free(old)
	return true
}

// GetKey borrows the value stored at key, or nil if absent.
func (v *Value) GetKey(key string) *Value {
	if v == nil || v.tag != TagObject || v.obj == nil {
		return nil
	}
	return v.obj.get([]byte(key))
}

// HasKey reports whether key is present.
func (v *Value) HasKey(key string) bool {
	if v == nil || v.tag != TagObject || v.obj == nil {
		return false
	}
	return v.obj.has([]byte(key))
}

// Del removes and returns the value at key, transferring ownership to
// the caller. Ancestor trie nodes that become empty are pruned.
func (v *Value) Del(key string) (*Value, bool) {
	if v == nil || v.tag != TagObject || v.obj == nil {
		return nil, false
	}
	return v.obj.del([]byte(key))
}

// DelFree removes the value at key and frees it immediately.
func (v *Value) DelFree(key string) bool {
	old, ok := v.Del(key)
	if !ok {
		return false
	}
	Free(old)
	return true
}

// KeyType returns the tag stored at key and whether key was found.
func (v *Value) KeyType(key string) (Tag, bool) {
	e := v.GetKey(key)
	if e == nil {
		return TagUndef, false
	}
	return e.Type(), true
}

// Iterate walks every member in lexicographic byte order of the key.
func (v *Value) Iterate(cb func(key string, value *Value)) {
	if v == nil || v.tag != TagObject || v.obj == nil {
		return
	}
	v.obj.iterate(func(key []byte, value *Value) {
		cb(string(key), value)
	})
}

// PutNumber is a typed convenience wrapping Put(key, NewNumber(f)).
func (v *Value) PutNumber(key string, f float64) bool {
	return v.Put(key, NewNumber(f))
}

// GetNumberKey returns the numeric value at key, and whether it was
// found (a found-but-non-number value reports NaN, true).
func (v *Value) GetNumberKey(key string) (float64, bool) {
	e := v.GetKey(key)
	if e == nil {
		return math.NaN(), false
	}
	return e.GetNumber(), true
}

// PutBool is a typed convenience wrapping Put(key, NewBool(b)).
func (v *Value) PutBool(key string, b bool) bool {
	return v.Put(key, NewBool(b))
}

// GetBoolKey returns the boolean value at key, and whether it was
// found.
func (v *Value) GetBoolKey(key string) (bool, bool) {
	e := v.GetKey(key)
	if e == nil {
		return false, false
	}
	return e.GetBool(), true
}

// PutString is a typed convenience wrapping Put(key, NewString(s)).
func (v *Value) PutString(key string, s string) bool {
	return v.Put(key, NewString(s))
}

// GetStringKey returns the string value at key, and whether it was
// found.
func (v *Value) GetStringKey(key string) (string, bool) {
	e := v.GetKey(key)
	if e == nil {
		return "", false
	}
	return e.GetString(), true
}
