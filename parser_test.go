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
	"testing"
)

func parseOne(t *testing.T, in string, opts ...ParserOption) *Value {
	t.Helper()
	c := New(opts...)
	status, err := c.Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", in, err)
	}
	if status != 1 {
		t.Fatalf("Parse(%q) status = %d, want 1 (complete)", in, status)
	}
	v, ok := c.Result()
	if !ok {
		t.Fatalf("Result() ok = false after status 1")
	}
	return v
}

func TestParseEmptyArray(t *testing.T) {
	v := parseOne(t, "[]")
	defer Free(v)
	if v.Type() != TagArray || v.Len() != 0 {
		t.Fatalf("got type=%v len=%d, want empty array", v.Type(), v.Len())
	}
}

func TestParseArraySum(t *testing.T) {
	v := parseOne(t, "[1024, 99, 24, -35, -788.0, 2048, -322]")
	defer Free(v)
	var sum float64
	for i := 0; i < v.Len(); i++ {
		sum += v.GetNumberAt(i)
	}
	if sum != 2050 {
		t.Fatalf("sum = %v, want 2050", sum)
	}
}

func TestParsePiLiteralString(t *testing.T) {
	v := parseOne(t, `[ "π = 3.15159..." ]`)
	defer Free(v)
	e, ok := v.Get(0)
	if !ok {
		t.Fatal("missing element 0")
	}
	want := []byte{0xCF, 0x80, 0x20, 0x3D}
	got := []byte(e.GetString())
	if len(got) < len(want) {
		t.Fatalf("got %x, want prefix %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %x, want prefix %x", got, want)
		}
	}
}

func TestParseSurrogatePairAndBmp(t *testing.T) {
	v := parseOne(t, "[ \"\\uD801\\uDC37\\u03c0\\uD801\\uDC37\" ]")
	defer Free(v)
	e, _ := v.Get(0)
	got := []byte(e.GetString())
	// U+10437 (4 bytes) + U+03C0 (2 bytes) + U+10437 (4 bytes) = 10 bytes.
	if len(got) != 10 {
		t.Fatalf("GetString() byte length = %d, want 10 (got %x)", len(got), got)
	}
}

func TestParseUnpairedSurrogateIsIllegal(t *testing.T) {
	c := New()
	_, err := c.Parse([]byte(`[ "\uDC37\uD801" ]`))
	if err == nil {
		t.Fatal("expected an error for an unpaired surrogate")
	}
	if c.ErrorCode() != ErrIllegalToken {
		t.Fatalf("ErrorCode() = %v, want ErrIllegalToken", c.ErrorCode())
	}
}

func TestParseControlCharIsIllegal(t *testing.T) {
	c := New()
	_, err := c.Parse([]byte("[ \"\x06\" ]"))
	if err == nil {
		t.Fatal("expected an error for a raw control character")
	}
	if c.ErrorCode() != ErrIllegalToken {
		t.Fatalf("ErrorCode() = %v, want ErrIllegalToken", c.ErrorCode())
	}
}

func TestParseObjectKeyOrder(t *testing.T) {
	v := parseOne(t, `{ "π" : 3.14159, "b": true, "a": [true, false, 0.1, "", {}], "o": {} }`)
	defer Free(v)
	var keys []string
	v.Iterate(func(key string, _ *Value) {
		keys = append(keys, key)
	})
	want := []string{"a", "b", "o", "π"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys %v, want %v", len(keys), keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestParseChunkedAcrossCalls(t *testing.T) {
	c := New()
	status, err := c.Parse([]byte("[1, 2, 3, "))
	if err != nil {
		t.Fatalf("first chunk error: %v", err)
	}
	if status != 0 {
		t.Fatalf("first chunk status = %d, want 0 (incomplete)", status)
	}
	status, err = c.Parse([]byte("4, 5]"))
	if err != nil {
		t.Fatalf("second chunk error: %v", err)
	}
	if status != 1 {
		t.Fatalf("second chunk status = %d, want 1 (complete)", status)
	}
	v, _ := c.Result()
	defer Free(v)
	if v.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", v.Len())
	}
	for i := 0; i < 5; i++ {
		if v.GetNumberAt(i) != float64(i+1) {
			t.Fatalf("element %d = %v, want %d", i, v.GetNumberAt(i), i+1)
		}
	}
}

func TestChunkingInvariance(t *testing.T) {
	in := `[1024, 99, 24, -35, -788.0, 2048, -322, "π", {"a":1,"b":2}]`

	whole := New()
	if _, err := whole.Parse([]byte(in)); err != nil {
		t.Fatalf("single-shot parse error: %v", err)
	}
	wholeResult, _ := whole.Result()
	defer Free(wholeResult)
	wholeText, _ := Serialize(wholeResult)

	chunked := New()
	for i := 0; i < len(in); i++ {
		if _, err := chunked.Parse([]byte{in[i]}); err != nil {
			t.Fatalf("byte-at-a-time parse error at byte %d: %v", i, err)
		}
	}
	chunkedResult, ok := chunked.Result()
	if !ok {
		t.Fatal("byte-at-a-time parse never completed")
	}
	defer Free(chunkedResult)
	chunkedText, _ := Serialize(chunkedResult)

	if wholeText != chunkedText {
		t.Fatalf("chunking invariance violated:\nwhole:   %s\nchunked: %s", wholeText, chunkedText)
	}
}

func TestParseUtf8PiExtension(t *testing.T) {
	v := parseOne(t, "[ π ]", WithExtensions(ExtUtf8Pi))
	defer Free(v)
	e, _ := v.Get(0)
	if e.Type() != TagNumber || e.GetNumber() != 3.14159 {
		t.Fatalf("got type=%v value=%v, want number 3.14159", e.Type(), e.GetNumber())
	}
}

func TestParseUtf8PiRejectedWithoutExtension(t *testing.T) {
	c := New()
	_, err := c.Parse([]byte("[ π ]"))
	if err == nil {
		t.Fatal("expected an error without the Utf8Pi extension enabled")
	}
}

func TestParseUtf8PiRejectedAtRoot(t *testing.T) {
	c := New(WithExtensions(ExtUtf8Pi))
	_, err := c.Parse([]byte("π"))
	if err == nil {
		t.Fatal("expected InvalidRoot for a bare code point at the root")
	}
	if c.ErrorCode() != ErrInvalidRoot {
		t.Fatalf("ErrorCode() = %v, want ErrInvalidRoot", c.ErrorCode())
	}
}

func TestParseTrailingCommaInArrayRejectedByDefault(t *testing.T) {
	c := New()
	_, err := c.Parse([]byte("[1,]"))
	if err == nil {
		t.Fatal("expected an error for a trailing comma without the extension enabled")
	}
}

func TestParseTrailingCommaInArrayWithExtension(t *testing.T) {
	v := parseOne(t, "[1,]", WithExtensions(ExtArrayTrailingComma))
	defer Free(v)
	if v.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", v.Len())
	}
}

func TestParseTrailingCommaInObjectWithExtension(t *testing.T) {
	v := parseOne(t, `{"a":1,}`, WithExtensions(ExtObjectTrailingComma))
	defer Free(v)
	if f, ok := v.GetNumberKey("a"); !ok || f != 1 {
		t.Fatalf("GetNumberKey(a) = (%v, %v), want (1, true)", f, ok)
	}
}

func TestParseLeadingCommaInArrayIsUnexpectedToken(t *testing.T) {
	c := New()
	_, err := c.Parse([]byte("[,]"))
	if err == nil {
		t.Fatal("expected UnexpectedToken(\",\")")
	}
	if c.ErrorCode() != ErrUnexpectedToken {
		t.Fatalf("ErrorCode() = %v, want ErrUnexpectedToken", c.ErrorCode())
	}
	if c.Col() != 2 {
		t.Fatalf("Col() = %d, want 2", c.Col())
	}
}

func TestParseRootMustBeContainer(t *testing.T) {
	for _, in := range []string{"1", `"x"`, "true", "null"} {
		c := New()
		_, err := c.Parse([]byte(in))
		if err == nil {
			t.Fatalf("Parse(%q): expected InvalidRoot", in)
		}
		if c.ErrorCode() != ErrInvalidRoot {
			t.Fatalf("Parse(%q): ErrorCode() = %v, want ErrInvalidRoot", in, c.ErrorCode())
		}
	}
}

func TestParseKeywords(t *testing.T) {
	v := parseOne(t, "[null, true, false]")
	defer Free(v)
	if v.GetType(0) != TagNull {
		t.Fatalf("element 0 type = %v, want TagNull", v.GetType(0))
	}
	e1, _ := v.Get(1)
	if !e1.GetBool() {
		t.Fatal("element 1 should be true")
	}
	e2, _ := v.Get(2)
	if e2.GetBool() {
		t.Fatal("element 2 should be false")
	}
}

func TestParseNestedDepthReturnsToZero(t *testing.T) {
	in := "[[[[[[[[[[1]]]]]]]]]]"
	c := New()
	if _, err := c.Parse([]byte(in)); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	v, _ := c.Result()
	defer Free(v)
	if c.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", c.Depth())
	}
}

func TestParseTabStopColumnTracking(t *testing.T) {
	c := New(WithTabStopWidth(4))
	// '[' advances column 1 -> 2; a tab there advances to the next
	// 4-wide stop, landing at column 5.
	if _, err := c.Parse([]byte("[\t")); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.Col() != 5 {
		t.Fatalf("Col() after '[' + tab = %d, want 5", c.Col())
	}
}

func TestParseLockingIgnoresOptionsAfterFirstParse(t *testing.T) {
	c := New(WithTabStopWidth(4))
	if _, err := c.Parse([]byte("[")); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	c.SetTabStopWidth(8)
	if c.tabStopWidth != 4 {
		t.Fatalf("tabStopWidth = %d, want 4 (SetTabStopWidth must no-op once locked)", c.tabStopWidth)
	}
}

func TestParseStickyErrorRejectsFurtherInput(t *testing.T) {
	c := New()
	if _, err := c.Parse([]byte("nope")); err == nil {
		t.Fatal("expected an error")
	}
	firstCode := c.ErrorCode()
	status, err := c.Parse([]byte("[]"))
	if status != -1 || err == nil {
		t.Fatal("expected the context to keep rejecting input after its first error")
	}
	if c.ErrorCode() != firstCode {
		t.Fatalf("ErrorCode() changed from %v to %v after a second error", firstCode, c.ErrorCode())
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	in := `{"a":1,"b":[true,false,null,"x"]}`
	v := parseOne(t, in)
	defer Free(v)
	out, ok := Serialize(v)
	if !ok {
		t.Fatal("Serialize() ok = false")
	}
	v2 := parseOne(t, out)
	defer Free(v2)
	out2, _ := Serialize(v2)
	if out != out2 {
		t.Fatalf("round-trip mismatch:\nfirst:  %s\nsecond: %s", out, out2)
	}
}
