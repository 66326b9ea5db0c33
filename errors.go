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

import "fmt"

// Error is a parser error code. Once a Context records a non-None
// code, it rejects all further input.
type Error uint8

const (
	ErrNone Error = iota
	ErrInvalidContext
	ErrIO
	ErrInvalidRoot
	ErrTrailingChars
	ErrExpectedToken
	ErrUnexpectedToken
	ErrIllegalToken
	ErrIllegalObjKey
	ErrIncompleteObject
)

func (e Error) String() string {
	switch e {
	case ErrNone:
		return "None"
	case ErrInvalidContext:
		return "InvalidContext"
	case ErrIO:
		return "IO"
	case ErrInvalidRoot:
		return "InvalidRoot"
	case ErrTrailingChars:
		return "TrailingChars"
	case ErrExpectedToken:
		return "ExpectedToken"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrIllegalToken:
		return "IllegalToken"
	case ErrIllegalObjKey:
		return "IllegalObjKey"
	case ErrIncompleteObject:
		return "IncompleteObject"
	default:
		return "Unknown"
	}
}

// parseError satisfies the error interface and carries the numeric
// code alongside the message; callers outside the package read the
// code through Context.ErrorCode.
type parseError struct {
	code Error
	msg  string
}

func (e *parseError) Error() string { return e.msg }

// formatByte renders b for embedding in an error message: printable
// ASCII is emitted literally, anything else is hex-escaped. This
// resolves the open question in the design notes about the %c
// conversion being unsafe for non-ASCII bytes.
func formatByte(b byte) string {
	if b >= 0x20 && b < 0x7F {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02x", b)
}

func (c *Context) setError(code Error, msg string) error {
	if c.errCode == ErrNone {
		c.errCode = code
		c.errMsg = msg
	}
	return &parseError{code: code, msg: msg}
}

func (c *Context) invalidRoot() error {
	return c.setError(ErrInvalidRoot, fmt.Sprintf(
		"Syntax Error [%d:%d]: Root value must be either an array or an object.",
		c.line, c.col))
}

func (c *Context) trailingChars(b byte) error {
	return c.setError(ErrTrailingChars, fmt.Sprintf(
		"Syntax Error [%d:%d]: Illegal characters outside of root object, starting with (%s).",
		c.line, c.col, formatByte(b)))
}

func (c *Context) expectedToken(tok string) error {
	return c.setError(ErrExpectedToken, fmt.Sprintf(
		"Syntax Error [%d:%d]: Missing token, expected (%s).",
		c.line, c.col, tok))
}

func (c *Context) unexpectedToken(tok string) error {
	return c.setError(ErrUnexpectedToken, fmt.Sprintf(
		"Syntax Error [%d:%d]: Unexpected token (%s).",
		c.line, c.col, tok))
}

func (c *Context) illegalToken(b byte) error {
	return c.setError(ErrIllegalToken, fmt.Sprintf(
		"Syntax Error [%d:%d]: Illegal token (%s).",
		c.line, c.col, formatByte(b)))
}

func (c *Context) illegalTokenStr(s string) error {
	return c.setError(ErrIllegalToken, fmt.Sprintf(
		"Syntax Error [%d:%d]: Illegal token (%s).",
		c.line, c.col, s))
}

func (c *Context) illegalObjKey() error {
	return c.setError(ErrIllegalObjKey, fmt.Sprintf(
		"Syntax Error [%d:%d]: Illegal value type for key in object, member keys must be of type string.",
		c.line, c.col))
}

func (c *Context) incompleteObject() error {
	return c.setError(ErrIncompleteObject, fmt.Sprintf(
		"Syntax Error [%d:%d]: Incomplete JSON object.",
		c.line, c.col))
}

func (c *Context) ioError(err error) error {
	return c.setError(ErrIO, fmt.Sprintf(
		"LIBC Error: %s.", err.Error()))
}
