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

// ExtSet is a bitset of optional relaxations to strict JSON.
type ExtSet uint32

const (
	ExtNone                ExtSet = 0
	ExtArrayTrailingComma  ExtSet = 1 << 0
	ExtObjectTrailingComma ExtSet = 1 << 1
	ExtUtf8Pi              ExtSet = 1 << 2
	ExtAll                        = ExtArrayTrailingComma | ExtObjectTrailingComma | ExtUtf8Pi
)

// Has reports whether flag is set in e.
func (e ExtSet) Has(flag ExtSet) bool { return e&flag == flag }

// ParserOption configures a Context at construction time. Following
// the teacher's WithCopyStrings pattern (simdjson-go's options.go),
// each option is a closure applied over the fresh Context before any
// parsing has occurred.
type ParserOption func(c *Context)

// WithTabStopWidth sets the tab stop width used when advancing column
// tracking over a tab byte. Default is 4.
func WithTabStopWidth(n int) ParserOption {
	return func(c *Context) {
		c.SetTabStopWidth(n)
	}
}

// WithExtensions selects the set of optional JSON relaxations a
// Context will accept.
func WithExtensions(ext ExtSet) ParserOption {
	return func(c *Context) {
		c.SetExtensions(ext)
	}
}

// WithReadBufferSize sets the chunk size ReadFrom uses when driving
// this Context from an io.Reader. Default is 2048, clamped to a
// maximum of 8192.
func WithReadBufferSize(n int) ParserOption {
	return func(c *Context) {
		c.SetReadBufferSize(n)
	}
}

// SetTabStopWidth is a no-op once the first Parse call has been made
// (the locking rule in the design notes: configuration may not drift
// mid-parse).
func (c *Context) SetTabStopWidth(n int) {
	if c.locked || n <= 0 {
		return
	}
	c.tabStopWidth = n
}

// SetExtensions is a no-op once the first Parse call has been made.
func (c *Context) SetExtensions(ext ExtSet) {
	if c.locked {
		return
	}
	c.ext = ext
}

// SetReadBufferSize is a no-op once the first Parse call has been
// made. n <= 0 selects the default of 2048; n above 8192 is clamped
// to 8192.
func (c *Context) SetReadBufferSize(n int) {
	if c.locked {
		return
	}
	if n <= 0 {
		n = defaultReadBufferSize
	}
	if n > maxReadBufferSize {
		n = maxReadBufferSize
	}
	c.readBufferSize = n
}
