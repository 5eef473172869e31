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

import "io"

// Writer writes bytes and varint encoded values to a stream.
type Writer interface {
	// Uint8 writes a single raw byte.
	Uint8(uint8)
	// Uint64 writes v as a varint.
	Uint64(v uint64)
	// Data writes the data bytes in their entirety.
	Data([]byte)
	// Offset returns the number of bytes written so far.
	Offset() int64
	// Error returns the error which stopped writing to the stream, or nil.
	Error() error
	// SetError sets the error state and stops writing to the stream.
	SetError(error)
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) Writer {
	return &writer{to: w}
}

type writer struct {
	to     io.Writer
	tmp    [MaxLen]byte
	offset int64
	err    error
}

func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (w *writer) Uint64(v uint64) {
	w.Data(Append(w.tmp[:0], v))
}

func (w *writer) Data(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.to.Write(data)
	w.offset += int64(n)
	if err != nil {
		w.err = err
		return
	}
	if n != len(data) {
		w.err = io.ErrShortWrite
	}
}

func (w *writer) Offset() int64 { return w.offset }

func (w *writer) Error() error { return w.err }

func (w *writer) SetError(err error) {
	if w.err != nil {
		return
	}
	w.err = err
}
