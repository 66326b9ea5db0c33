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

// Parse feeds b into the context, byte by byte, resuming whatever
// state a prior Parse call left behind. It returns -1 on error (the
// context is from then on permanently rejecting), 0 if no complete
// root value has been produced yet, or 1 once one has.
//
// A call with an empty or single-byte b is exactly as valid as one
// bulk call with the whole input: the context keeps everything needed
// to resume mid-token across the boundary (see the frame and Context
// field docs).
func (c *Context) Parse(b []byte) (int, error) {
	c.locked = true

	if c.errCode != ErrNone {
		return -1, c.Err()
	}

	fastEligible := SupportedAcceleration()

	for i := 0; i < len(b); i++ {
		by := b[i]

		if by == ' ' && fastEligible && c.topIsStructural() {
			j := i
			for j < len(b) && b[j] == ' ' {
				j++
			}
			if run := j - i; run > 1 {
				c.col += run
				i = j - 1
				continue
			}
		}

		if err := c.feedByte(by); err != nil {
			return -1, c.Err()
		}
	}

	if c.errCode != ErrNone {
		return -1, c.Err()
	}
	if c.frames[0].mode == modeDone {
		return 1, nil
	}
	return 0, nil
}

func (c *Context) topIsStructural() bool {
	switch c.topFrame().mode {
	case modeStart, modeArray, modeObject:
		return true
	default:
		return false
	}
}

// feedByte processes exactly one raw input byte, advancing line/col
// bookkeeping on success. Position is captured for error messages
// before any transition, so a rejected byte reports the position it
// was read at, not the position after it.
func (c *Context) feedByte(b byte) error {
	if err := c.dispatch(b); err != nil {
		return err
	}
	c.advance(b)
	return nil
}

// dispatch routes b to the sub-parser the top frame's mode implies.
// Number/String/Keyword/Utf8 frames are exactly the "inside a token"
// states: whitespace skipping never applies while one of them is on
// top, since a blank byte there is token content (e.g. a literal space
// inside a string), not a separator. This makes the inside_token /
// find_next_token flags of the original design redundant with a direct
// switch on frame mode; dispatch may recurse on the same byte (see
// feedNumber) when a sub-parser completes without consuming it.
func (c *Context) dispatch(b byte) error {
	switch c.topFrame().mode {
	case modeDone:
		return c.handleTrailing(b)
	case modeNumber:
		return c.feedNumber(b)
	case modeString:
		return c.feedString(b)
	case modeKeyword:
		return c.feedKeyword(b)
	case modeUtf8:
		return c.feedUtf8(b)
	default: // modeStart, modeArray, modeObject
		return c.feedStructural(b)
	}
}

func (c *Context) handleTrailing(b byte) error {
	if isWhitespace(b) {
		return nil
	}
	return c.trailingChars(b)
}

func (c *Context) feedStructural(b byte) error {
	if isWhitespace(b) {
		return nil
	}
	tok := classify(b)
	switch c.topFrame().mode {
	case modeStart:
		return c.handleStart(tok, b)
	case modeArray:
		return c.handleArray(tok, b)
	case modeObject:
		return c.handleObject(tok, b)
	}
	return nil
}

// handleStart enforces the root-type rule: the root value must be an
// array or an object (the Utf8Pi extension admits a bare code point at
// any other value position, but not at the root).
func (c *Context) handleStart(tok token, b byte) error {
	switch tok {
	case tokArrayBegin, tokObjBegin:
		return c.beginValue(tok, b)
	default:
		return c.invalidRoot()
	}
}

// beginValue starts parsing whatever value tok introduces at a value
// position (array element, object member value, object key, or root).
func (c *Context) beginValue(tok token, b byte) error {
	switch tok {
	case tokArrayBegin:
		c.pushFrame(&frame{mode: modeArray, value: NewArray(0), arrState: arrStateDefault})
		return nil
	case tokObjBegin:
		c.pushFrame(&frame{mode: modeObject, value: NewObject(), objState: objAcceptKey | objAcceptClose})
		return nil
	case tokNumber:
		c.tokLen = 0
		c.pushFrame(&frame{mode: modeNumber, numState: numberInitialState()})
		return c.feedNumber(b)
	case tokString:
		c.pushFrame(&frame{mode: modeString, value: NewString(""), strState: strDefault})
		return nil
	case tokKeyword:
		c.tokLen = 0
		c.pushFrame(&frame{mode: modeKeyword})
		return c.feedKeyword(b)
	case tokUnicode:
		if !c.ext.Has(ExtUtf8Pi) {
			return c.illegalToken(b)
		}
		return c.beginUtf8(b)
	default:
		return c.illegalToken(b)
	}
}

// returnValue hands a completed child value to its parent frame,
// resolving the "pending return" slot synchronously instead of parking
// it across calls (see the frame doc comment).
func (c *Context) returnValue(v *Value) error {
	parent := c.topFrame()
	switch parent.mode {
	case modeStart:
		parent.mode = modeDone
		c.result = v
		return nil
	case modeArray:
		return c.handleArrayChild(parent, v)
	case modeObject:
		return c.handleObjectChild(parent, v)
	default:
		return nil
	}
}
