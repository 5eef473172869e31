// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package varint

import (
	"bufio"
	"io"
)

// Reader reads bytes and varint encoded values from a stream.
type Reader interface {
	// Uint8 reads a single raw byte.
	Uint8() uint8
	// Uint64 reads a varint encoded unsigned integer.
	Uint64() uint64
	// Data reads len(p) raw bytes into p.
	Data(p []byte)
	// Offset returns the number of bytes consumed so far.
	Offset() int64
	// Error returns the error which stopped reading from the stream, or nil.
	Error() error
	// SetError sets the error state and stops reading from the stream.
	SetError(error)
}

// NewReader returns a Reader that reads from r. If r does not implement
// io.ByteReader it is buffered, which may consume bytes from r beyond the
// last value read.
func NewReader(r io.Reader) Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		buffered := bufio.NewReader(r)
		r, br = buffered, buffered
	}
	return &reader{from: r, bytes: br}
}

type reader struct {
	from   io.Reader
	bytes  io.ByteReader
	offset int64
	err    error
}

func (r *reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	b, err := r.bytes.ReadByte()
	if err != nil {
		r.setReadError(err)
		return 0
	}
	r.offset++
	return b
}

func (r *reader) Uint64() uint64 {
	var v uint64
	var shift uint
	for r.err == nil {
		if shift >= maxShift {
			r.err = ErrOverflow
			return 0
		}
		b := r.Uint8()
		if r.err != nil {
			return 0
		}
		var err error
		if v, shift, err = accumulate(v, shift, b); err != nil {
			r.err = err
			return 0
		}
		if b&continuation == 0 {
			return v
		}
	}
	return 0
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.from, p)
	r.offset += int64(n)
	if err != nil {
		r.setReadError(err)
	}
}

func (r *reader) Offset() int64 { return r.offset }

func (r *reader) Error() error { return r.err }

func (r *reader) SetError(err error) {
	if r.err != nil {
		return
	}
	r.err = err
}

// setReadError records err, turning a clean end of stream into
// io.ErrUnexpectedEOF: every read is for a value the stream promised.
func (r *reader) setReadError(err error) {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	r.SetError(err)
}
