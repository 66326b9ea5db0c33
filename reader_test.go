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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFromSmallChunks(t *testing.T) {
	c := New(WithReadBufferSize(1))
	r := strings.NewReader(`{"a":[1,2,3],"b":"hello"}`)
	v, err := c.ReadFrom(r)
	if err != nil {
		t.Fatalf("ReadFrom error: %v", err)
	}
	defer Free(v)

	a := v.GetKey("a")
	if a == nil || a.Len() != 3 {
		t.Fatalf("key a = %v, want a 3-element array", a)
	}
	if s, ok := v.GetStringKey("b"); !ok || s != "hello" {
		t.Fatalf("GetStringKey(b) = (%q, %v), want (hello, true)", s, ok)
	}
}

func TestReadFromIncompleteReportsIncompleteObject(t *testing.T) {
	c := New()
	r := strings.NewReader(`{"a": [1, 2`)
	_, err := c.ReadFrom(r)
	if err == nil {
		t.Fatal("expected an error for a truncated document")
	}
	if c.ErrorCode() != ErrIncompleteObject {
		t.Fatalf("ErrorCode() = %v, want ErrIncompleteObject", c.ErrorCode())
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`[1,2,3]`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	v, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	defer Free(v)
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseString(t *testing.T) {
	v, err := ParseString(`{"x":1}`)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	defer Free(v)
	if f, ok := v.GetNumberKey("x"); !ok || f != 1 {
		t.Fatalf("GetNumberKey(x) = (%v, %v), want (1, true)", f, ok)
	}
}
