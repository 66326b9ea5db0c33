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

import (
	"strconv"
	"strings"
)

// Serialize renders v as compact JSON text. Only Array and Object
// values are valid at the root, matching the root-type rule Parse
// enforces; any other root tag reports ok=false.
//
// Serialize never reproduces the Utf8Pi extension's input form: a
// value built with NewNumber(3.14159) round-trips as the number
// 3.14159, not as the bare code point that produced it on parse, since
// the value model keeps no memory of how a number literal was spelled.
func Serialize(v *Value) (string, bool) {
	if v == nil || (v.Type() != TagArray && v.Type() != TagObject) {
		return "", false
	}
	var b strings.Builder
	writeValue(&b, v)
	return b.String(), true
}

func writeValue(b *strings.Builder, v *Value) {
	switch v.Type() {
	case TagNull, TagUndef:
		b.WriteString("null")
	case TagBool:
		if v.GetBool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TagNumber:
		b.WriteString(strconv.FormatFloat(v.GetNumber(), 'g', -1, 64))
	case TagString:
		writeString(b, v.GetString())
	case TagArray:
		writeArray(b, v)
	case TagObject:
		writeObject(b, v)
	default:
		b.WriteString("null")
	}
}

func writeArray(b *strings.Builder, v *Value) {
	b.WriteByte('[')
	n := v.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		e, _ := v.Get(i)
		writeValue(b, e)
	}
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, v *Value) {
	b.WriteByte('{')
	first := true
	v.Iterate(func(key string, mv *Value) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		writeString(b, key)
		b.WriteByte(':')
		writeValue(b, mv)
	})
	b.WriteByte('}')
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString("\\u")
				const hex = "0123456789abcdef"
				b.WriteByte('0')
				b.WriteByte('0')
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xF])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
}

// Escape renders s as a quoted JSON string literal, for embedding
// arbitrary text as one JSON string value (e.g. wrapping an error
// message for transport in a JSON envelope).
func Escape(s string) string {
	var b strings.Builder
	writeString(&b, s)
	return b.String()
}
