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

// mode is the coarse parsing state: which grammar non-terminal the
// frame is currently consuming.
type mode uint8

const (
	modeUndefined mode = iota
	modeStart
	modeArray
	modeObject
	modeNumber
	modeString
	modeKeyword
	modeUtf8
	modeDone
)

// frame is one entry on the parser's explicit stack: mode, fine-grained
// state, the in-progress value, and (for objects) the pending key.
//
// The original C frame tuple also names a "pending return" slot for a
// completed child value waiting to be absorbed by its parent. This
// port resolves a completed child synchronously, within the same
// feedByte call that finished it (see Context.returnValue), so no
// separate slot needs to survive across Parse calls; functionally this
// is the same handoff, just not parked in a struct field between
// calls.
type frame struct {
	mode mode

	value *Value // in-progress array/object/string value
	key   *Value // pending object key, object frames only

	arrState int
	objState int
	numState uint16
	strState int
}

const tokenBufSize = 26

// Context is an incremental parser context. It owns the frame stack,
// cursor state, scratch buffers, and extension/lock flags described in
// the data model. A Context is not safe for concurrent use; disjoint
// contexts may be driven from separate goroutines without
// coordination.
type Context struct {
	frames []*frame

	line, col int
	depth     int

	tabStopWidth   int
	readBufferSize int

	tokBuf [tokenBufSize]byte
	tokLen int

	code      [2]uint16
	codeIndex int
	shifts    int

	uniTok [5]byte
	uniLen int
	uniI   int

	locked bool
	ext    ExtSet

	errCode Error
	errMsg  string

	result *Value
}

const (
	defaultTabStopWidth   = 4
	defaultReadBufferSize = 2048
	maxReadBufferSize     = 8192
)

// New creates a parser context with default configuration, applying
// any supplied ParserOption values.
func New(opts ...ParserOption) *Context {
	c := &Context{
		line:           1,
		col:            1,
		tabStopWidth:   defaultTabStopWidth,
		readBufferSize: defaultReadBufferSize,
	}
	c.frames = append(c.frames, &frame{mode: modeStart})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) topFrame() *frame {
	return c.frames[len(c.frames)-1]
}

func (c *Context) pushFrame(f *frame) {
	c.frames = append(c.frames, f)
	if f.mode == modeArray || f.mode == modeObject {
		c.depth++
	}
}

func (c *Context) popFrame() *frame {
	n := len(c.frames)
	f := c.frames[n-1]
	c.frames = c.frames[:n-1]
	if f.mode == modeArray || f.mode == modeObject {
		c.depth--
	}
	return f
}

// Depth reports the current container nesting depth.
func (c *Context) Depth() int { return c.depth }

// Line reports the current 1-origin source line.
func (c *Context) Line() int { return c.line }

// Col reports the current 1-origin source column.
func (c *Context) Col() int { return c.col }

// ErrorCode returns the sticky error code recorded on the context, or
// ErrNone if no error has occurred.
func (c *Context) ErrorCode() Error { return c.errCode }

// ErrorMessage returns the formatted error message, or "" if no error
// has occurred.
func (c *Context) ErrorMessage() string { return c.errMsg }

// Err returns the recorded error as a Go error, or nil.
func (c *Context) Err() error {
	if c.errCode == ErrNone {
		return nil
	}
	return &parseError{code: c.errCode, msg: c.errMsg}
}

// Result returns the fully materialized root value once parsing has
// completed, transferring ownership to the caller. ok is false until a
// complete root value has been produced.
func (c *Context) Result() (value *Value, ok bool) {
	if c.frames[0].mode != modeDone {
		return nil, false
	}
	v := c.result
	c.result = nil
	return v, true
}

func (c *Context) advance(b byte) {
	switch b {
	case '\n', 0x0B:
		c.line++
		c.col = 1
	case '\t':
		width := c.tabStopWidth
		if width <= 0 {
			width = 1
		}
		col0 := c.col - 1
		c.col = ((col0 / width) + 1) * width
		c.col++
	default:
		c.col++
	}
}
