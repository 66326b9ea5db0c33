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

const (
	arrStateDefault = iota
	arrStateNewMember
	arrStateSeparator
)

func (c *Context) handleArray(tok token, b byte) error {
	top := c.topFrame()
	switch tok {
	case tokArrayEnd:
		switch top.arrState {
		case arrStateDefault, arrStateNewMember:
			return c.completeArray()
		case arrStateSeparator:
			if c.ext.Has(ExtArrayTrailingComma) {
				return c.completeArray()
			}
			return c.unexpectedToken("]")
		}
		return c.unexpectedToken("]")
	case tokMemberSeparator:
		if top.arrState == arrStateNewMember {
			top.arrState = arrStateSeparator
			return nil
		}
		return c.unexpectedToken(",")
	default:
		switch top.arrState {
		case arrStateDefault, arrStateSeparator:
			return c.beginValue(tok, b)
		case arrStateNewMember:
			return c.expectedToken(",")
		}
		return c.expectedToken(",")
	}
}

func (c *Context) handleArrayChild(parent *frame, v *Value) error {
	parent.value.PushValue(v)
	parent.arrState = arrStateNewMember
	return nil
}

func (c *Context) completeArray() error {
	top := c.popFrame()
	return c.returnValue(top.value)
}
