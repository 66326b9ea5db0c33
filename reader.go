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
	"bufio"
	"errors"
	"io"
	"os"
	"syscall"
)

// ReadFrom drives the Context from r in readBufferSize chunks,
// reading until a complete root value is produced, r is exhausted, or
// an error occurs. A short read that lands mid-token is always safe:
// Parse resumes exactly where the prior chunk left off.
//
// If r is exhausted before a root value completes, ReadFrom reports
// IncompleteObject rather than a bare io.EOF, since "not enough bytes
// yet" and "never going to get enough bytes" are different failures
// for a caller to handle.
//
// A read error matching syscall.EAGAIN or syscall.EINTR is returned
// as-is without recording an error on the Context, so the caller may
// call ReadFrom again; any other read error is recorded as ErrIO.
func (c *Context) ReadFrom(r io.Reader) (*Value, error) {
	br := bufio.NewReaderSize(r, c.readBufferSize)
	buf := make([]byte, c.readBufferSize)

	for {
		n, err := br.Read(buf)
		if n > 0 {
			status, perr := c.Parse(buf[:n])
			if perr != nil {
				return nil, perr
			}
			if status == 1 {
				v, _ := c.Result()
				return v, nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, c.incompleteObject()
			}
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR) {
				return nil, err
			}
			return nil, c.ioError(err)
		}
	}
}

// ParseFile reads path from disk and parses it fully, using a fresh
// Context configured by opts.
func ParseFile(path string, opts ...ParserOption) (*Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := New(opts...)
	return c.ReadFrom(f)
}

// ParseString is a convenience wrapper around Parse for a single,
// already-complete buffer of input.
func ParseString(s string, opts ...ParserOption) (*Value, error) {
	c := New(opts...)
	status, err := c.Parse([]byte(s))
	if err != nil {
		return nil, err
	}
	if status != 1 {
		return nil, c.incompleteObject()
	}
	v, _ := c.Result()
	return v, nil
}
