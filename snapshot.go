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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// A snapshot (WriteSnapshot / ReadSnapshot) is a compact binary form of
// a Value tree, for caching a parsed document instead of reparsing its
// JSON text. The
// wire format is a flat tag stream plus a deduplicated string pool,
// compressed as one block; it is not JSON and is not meant to be
// portable across kws versions.
//
// Two compression modes are offered, mirroring the fast-vs-better
// tradeoff the original snapshot tooling exposed: s2 favors encode
// speed, zstd favors ratio. zstd is the default.
type snapshotTag byte

const (
	snapTagNull snapshotTag = iota
	snapTagTrue
	snapTagFalse
	snapTagNumber
	snapTagString
	snapTagArrayStart
	snapTagArrayEnd
	snapTagObjectStart
	snapTagObjectEnd
)

const (
	snapBlockUncompressed byte = 0
	snapBlockS2           byte = 1
	snapBlockZstd         byte = 2
)

// SnapshotOption configures Snapshot writing.
type SnapshotOption func(*snapshotConfig)

type snapshotConfig struct {
	block byte
}

// WithFastCompression selects s2 instead of the default zstd, trading
// compression ratio for encode speed.
func WithFastCompression() SnapshotOption {
	return func(cfg *snapshotConfig) { cfg.block = snapBlockS2 }
}

// WithNoCompression disables snapshot compression entirely.
func WithNoCompression() SnapshotOption {
	return func(cfg *snapshotConfig) { cfg.block = snapBlockUncompressed }
}

// WriteSnapshot encodes v to w. v must be an Array or Object at the
// root, matching Serialize's root-type rule.
func WriteSnapshot(w io.Writer, v *Value, opts ...SnapshotOption) error {
	if v == nil || (v.Type() != TagArray && v.Type() != TagObject) {
		return errors.New("kws: snapshot root must be an array or object")
	}
	cfg := snapshotConfig{block: snapBlockZstd}
	for _, opt := range opts {
		opt(&cfg)
	}

	sw := &snapshotWriter{strings: map[string]uint32{}}
	sw.encode(v)

	var raw bytes.Buffer
	var lenBuf [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(lenBuf[:], uint64(len(sw.tags)))
	raw.Write(lenBuf[:n])
	raw.Write(sw.tags)

	n = binary.PutUvarint(lenBuf[:], uint64(len(sw.pool)))
	raw.Write(lenBuf[:n])
	raw.Write(sw.pool)

	if _, err := w.Write([]byte{cfg.block}); err != nil {
		return err
	}
	return compressBlock(w, cfg.block, raw.Bytes())
}

func compressBlock(w io.Writer, block byte, raw []byte) error {
	switch block {
	case snapBlockUncompressed:
		_, err := w.Write(raw)
		return err
	case snapBlockS2:
		enc := s2.NewWriter(w)
		if _, err := enc.Write(raw); err != nil {
			return err
		}
		return enc.Close()
	case snapBlockZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := enc.Write(raw); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("kws: unknown snapshot block type %d", block)
	}
}

// ReadSnapshot decodes a Value tree previously written by
// WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Value, error) {
	var blockBuf [1]byte
	if _, err := io.ReadFull(r, blockBuf[:]); err != nil {
		return nil, err
	}
	raw, err := decompressBlock(r, blockBuf[0])
	if err != nil {
		return nil, err
	}

	br := bytes.NewReader(raw)
	tagsLen, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	tags := make([]byte, tagsLen)
	if _, err := io.ReadFull(br, tags); err != nil {
		return nil, err
	}
	poolLen, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	pool := make([]byte, poolLen)
	if _, err := io.ReadFull(br, pool); err != nil {
		return nil, err
	}

	sr := &snapshotReader{tags: tags, pool: pool}
	v, err := sr.decode()
	if err != nil {
		return nil, err
	}
	if sr.pos != len(sr.tags) {
		return nil, errors.New("kws: trailing snapshot data")
	}
	return v, nil
}

func decompressBlock(r io.Reader, block byte) ([]byte, error) {
	switch block {
	case snapBlockUncompressed:
		return io.ReadAll(r)
	case snapBlockS2:
		return io.ReadAll(s2.NewReader(r))
	case snapBlockZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return io.ReadAll(dec)
	default:
		return nil, fmt.Errorf("kws: unknown snapshot block type %d", block)
	}
}

type snapshotWriter struct {
	tags    []byte
	pool    []byte
	strings map[string]uint32
}

func (s *snapshotWriter) encode(v *Value) {
	switch v.Type() {
	case TagNull, TagUndef:
		s.tags = append(s.tags, byte(snapTagNull))
	case TagBool:
		if v.GetBool() {
			s.tags = append(s.tags, byte(snapTagTrue))
		} else {
			s.tags = append(s.tags, byte(snapTagFalse))
		}
	case TagNumber:
		s.tags = append(s.tags, byte(snapTagNumber))
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.GetNumber()))
		s.tags = append(s.tags, buf[:]...)
	case TagString:
		s.tags = append(s.tags, byte(snapTagString))
		s.writeStringRef(v.GetString())
	case TagArray:
		s.tags = append(s.tags, byte(snapTagArrayStart))
		n := v.Len()
		for i := 0; i < n; i++ {
			e, _ := v.Get(i)
			s.encode(e)
		}
		s.tags = append(s.tags, byte(snapTagArrayEnd))
	case TagObject:
		s.tags = append(s.tags, byte(snapTagObjectStart))
		v.Iterate(func(key string, mv *Value) {
			s.writeStringRef(key)
			s.encode(mv)
		})
		s.tags = append(s.tags, byte(snapTagObjectEnd))
	}
}

func (s *snapshotWriter) writeStringRef(str string) {
	var buf [binary.MaxVarintLen64]byte
	if off, ok := s.strings[str]; ok {
		n := binary.PutUvarint(buf[:], uint64(len(str)))
		s.tags = append(s.tags, buf[:n]...)
		n = binary.PutUvarint(buf[:], uint64(off))
		s.tags = append(s.tags, buf[:n]...)
		return
	}
	off := uint32(len(s.pool))
	s.strings[str] = off
	s.pool = append(s.pool, str...)

	n := binary.PutUvarint(buf[:], uint64(len(str)))
	s.tags = append(s.tags, buf[:n]...)
	n = binary.PutUvarint(buf[:], uint64(off))
	s.tags = append(s.tags, buf[:n]...)
}

type snapshotReader struct {
	tags []byte
	pool []byte
	pos  int
}

func (s *snapshotReader) readByte() (byte, error) {
	if s.pos >= len(s.tags) {
		return 0, io.ErrUnexpectedEOF
	}
	b := s.tags[s.pos]
	s.pos++
	return b, nil
}

func (s *snapshotReader) readUvarint() (uint64, error) {
	var x uint64
	var shift uint
	for {
		b, err := s.readByte()
		if err != nil {
			return 0, err
		}
		if b < 0x80 {
			return x | uint64(b)<<shift, nil
		}
		x |= uint64(b&0x7F) << shift
		shift += 7
	}
}

func (s *snapshotReader) readString() (string, error) {
	length, err := s.readUvarint()
	if err != nil {
		return "", err
	}
	off, err := s.readUvarint()
	if err != nil {
		return "", err
	}
	if off+length > uint64(len(s.pool)) {
		return "", errors.New("kws: snapshot string out of range")
	}
	return string(s.pool[off : off+length]), nil
}

func (s *snapshotReader) decode() (*Value, error) {
	tag, err := s.readByte()
	if err != nil {
		return nil, err
	}
	switch snapshotTag(tag) {
	case snapTagNull:
		return Null(), nil
	case snapTagTrue:
		return True(), nil
	case snapTagFalse:
		return False(), nil
	case snapTagNumber:
		if s.pos+8 > len(s.tags) {
			return nil, io.ErrUnexpectedEOF
		}
		bits := binary.LittleEndian.Uint64(s.tags[s.pos : s.pos+8])
		s.pos += 8
		return NewNumber(math.Float64frombits(bits)), nil
	case snapTagString:
		str, err := s.readString()
		if err != nil {
			return nil, err
		}
		return NewString(str), nil
	case snapTagArrayStart:
		arr := NewArray(0)
		for {
			if s.pos >= len(s.tags) {
				return nil, io.ErrUnexpectedEOF
			}
			if snapshotTag(s.tags[s.pos]) == snapTagArrayEnd {
				s.pos++
				return arr, nil
			}
			e, err := s.decode()
			if err != nil {
				return nil, err
			}
			arr.PushValue(e)
		}
	case snapTagObjectStart:
		obj := NewObject()
		for {
			if s.pos >= len(s.tags) {
				return nil, io.ErrUnexpectedEOF
			}
			if snapshotTag(s.tags[s.pos]) == snapTagObjectEnd {
				s.pos++
				return obj, nil
			}
			key, err := s.readString()
			if err != nil {
				return nil, err
			}
			mv, err := s.decode()
			if err != nil {
				return nil, err
			}
			obj.Put(key, mv)
		}
	default:
		return nil, fmt.Errorf("kws: unknown snapshot tag %d", tag)
	}
}
