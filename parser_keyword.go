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

// keywordMaxLen is the length of "false", the longest of the three
// recognized keywords.
const keywordMaxLen = 5

// feedKeyword accumulates lowercase letters and completes as soon as
// the buffer exactly matches null/true/false; the completing byte is
// consumed, unlike the number sub-parser, since no keyword is a prefix
// of another's continuation once the accumulated text diverges.
func (c *Context) feedKeyword(b byte) error {
	if b < 'a' || b > 'z' {
		return c.illegalToken(b)
	}
	if c.tokLen >= keywordMaxLen {
		return c.illegalTokenStr("unrecognized keyword")
	}
	c.tokBuf[c.tokLen] = b
	c.tokLen++

	var v *Value
	switch string(c.tokBuf[:c.tokLen]) {
	case "null":
		v = Null()
	case "true":
		v = NewBool(true)
	case "false":
		v = NewBool(false)
	default:
		if !isKeywordPrefix(c.tokBuf[:c.tokLen]) {
			return c.illegalTokenStr("unrecognized keyword")
		}
		return nil
	}

	c.tokLen = 0
	c.popFrame()
	return c.returnValue(v)
}

func isKeywordPrefix(buf []byte) bool {
	for _, kw := range []string{"null", "true", "false"} {
		if len(buf) > len(kw) {
			continue
		}
		if string(buf) == kw[:len(buf)] {
			return true
		}
	}
	return false
}
