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
	"io"

	"github.com/model-checking/rmc/core/fault"
)

const (
	// ErrOverflow is returned when decoding an encoding that does not fit in
	// 64 bits.
	ErrOverflow = fault.Const("Varint overflows 64 bits")

	// MaxLen is the maximum number of bytes a 64 bit value encodes to.
	MaxLen = 10

	continuation = 0x80
	payload      = 0x7f
	maxShift     = 64
)

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	for v >= continuation {
		dst = append(dst, byte(v)|continuation)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Size returns the number of bytes Append would use to encode v.
func Size(v uint64) int {
	n := 1
	for v >= continuation {
		v >>= 7
		n++
	}
	return n
}

// Decode decodes a value from the start of buf, returning the value and the
// number of bytes consumed.
func Decode(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		var err error
		if v, shift, err = accumulate(v, shift, b); err != nil {
			return 0, 0, err
		}
		if b&continuation == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, io.ErrUnexpectedEOF
}

// accumulate folds the byte b into v at the given shift, guarding against
// groups that would land beyond bit 63.
func accumulate(v uint64, shift uint, b byte) (uint64, uint, error) {
	if shift >= maxShift {
		return 0, shift, ErrOverflow
	}
	if shift == maxShift-1 && b&payload > 1 {
		return 0, shift, ErrOverflow
	}
	return v | uint64(b&payload)<<shift, shift + 7, nil
}
