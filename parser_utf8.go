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

// Utf8Pi admits a single bare UTF-8 code point at a value position as
// a shorthand numeric literal, modeled on the reference pi-literal
// extension: the only code point recognized is U+03C0 (pi), which
// parses as the number 3.14159. It is never admitted at the root (see
// handleStart).

var piBytes = [2]byte{0xCF, 0x80}

// beginUtf8 starts the Utf8Pi sub-parser on the lead byte of a raw
// multi-byte UTF-8 sequence encountered at a value position.
func (c *Context) beginUtf8(b byte) error {
	length, ok := utf8LeadLength(b)
	if !ok {
		return c.illegalToken(b)
	}
	c.uniTok[0] = b
	c.uniLen = length
	c.uniI = 1
	c.pushFrame(&frame{mode: modeUtf8})
	if c.uniI >= c.uniLen {
		return c.completeUtf8()
	}
	return nil
}

func (c *Context) feedUtf8(b byte) error {
	if b&0xC0 != 0x80 {
		return c.illegalToken(b)
	}
	c.uniTok[c.uniI] = b
	c.uniI++
	if c.uniI < c.uniLen {
		return nil
	}
	return c.completeUtf8()
}

func (c *Context) completeUtf8() error {
	c.popFrame()
	if c.uniLen == len(piBytes) && c.uniTok[0] == piBytes[0] && c.uniTok[1] == piBytes[1] {
		return c.returnValue(NewNumber(3.14159))
	}
	return c.illegalTokenStr("unrecognized code point")
}
