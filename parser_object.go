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
	objAcceptOpen = 1 << iota
	objAcceptKey
	objAcceptKvDelimiter
	objAcceptValue
	objAcceptMemberDelimiter
	objAcceptClose
)

func (c *Context) handleObject(tok token, b byte) error {
	top := c.topFrame()
	switch tok {
	case tokObjEnd:
		if top.objState&objAcceptClose != 0 {
			return c.completeObject()
		}
		return c.unexpectedToken("}")
	case tokKvSeparator:
		if top.objState&objAcceptKvDelimiter != 0 {
			top.objState = objAcceptValue
			return nil
		}
		return c.unexpectedToken(":")
	case tokMemberSeparator:
		if top.objState&objAcceptMemberDelimiter != 0 {
			next := objAcceptKey
			if c.ext.Has(ExtObjectTrailingComma) {
				next |= objAcceptClose
			}
			top.objState = next
			return nil
		}
		return c.unexpectedToken(",")
	default:
		if top.objState&(objAcceptKey|objAcceptValue) != 0 {
			return c.beginValue(tok, b)
		}
		return c.expectedToken(",")
	}
}

func (c *Context) handleObjectChild(parent *frame, v *Value) error {
	switch {
	case parent.objState&objAcceptKey != 0:
		if v.Type() != TagString {
			return c.illegalObjKey()
		}
		parent.key = v
		parent.objState = objAcceptKvDelimiter
		return nil
	case parent.objState&objAcceptValue != 0:
		old := parent.value.obj.put([]byte(parent.key.GetString()), v)
		Free(old)
		parent.key = nil
		parent.objState = objAcceptMemberDelimiter | objAcceptClose
		return nil
	default:
		return c.expectedToken(",")
	}
}

func (c *Context) completeObject() error {
	top := c.popFrame()
	return c.returnValue(top.value)
}
