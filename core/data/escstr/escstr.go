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

// Package escstr implements the zero terminated, escaped string encoding
// used by goto binary streams.
//
// A string is written byte for byte followed by a single unescaped 0x00
// terminator. The two bytes that carry meaning, the terminator 0x00 and the
// escape byte '\' (0x5C), are prefixed with '\' when they appear in the
// content. On reading, '\' makes the following byte literal whatever its
// value.
//
// Only those two byte values are inspected. The bytes of a multi-byte UTF-8
// sequence all have their high bit set, so they never collide with either
// special byte and pass through unchanged.
package escstr

import (
	"io"

	"github.com/model-checking/rmc/core/data/varint"
)

const (
	// Terminator ends an encoded string.
	Terminator = 0x00
	// Escape makes the byte that follows it literal.
	Escape = '\\'
)

// Append appends the encoding of s to dst and returns the extended slice.
func Append(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == Terminator || c == Escape {
			dst = append(dst, Escape)
		}
		dst = append(dst, c)
	}
	return append(dst, Terminator)
}

// Size returns the number of bytes Append would use to encode s.
func Size(s string) int {
	n := len(s) + 1
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == Terminator || c == Escape {
			n++
		}
	}
	return n
}

// Write writes the encoding of s to w.
func Write(w varint.Writer, s string) {
	w.Data(Append(make([]byte, 0, len(s)+1), s))
}

// Read reads an encoded string from r. If the stream ends before the
// terminator, the reader's error is set to io.ErrUnexpectedEOF and the empty
// string is returned.
func Read(r varint.Reader) string {
	var buf []byte
	for {
		c := r.Uint8()
		if r.Error() != nil {
			return ""
		}
		switch c {
		case Terminator:
			return string(buf)
		case Escape:
			c = r.Uint8()
			if r.Error() != nil {
				return ""
			}
		}
		buf = append(buf, c)
	}
}

// Decode decodes a string from the start of buf, returning the string and
// the number of bytes consumed.
func Decode(buf []byte) (string, int, error) {
	var out []byte
	for i := 0; i < len(buf); i++ {
		switch c := buf[i]; c {
		case Terminator:
			return string(out), i + 1, nil
		case Escape:
			i++
			if i == len(buf) {
				return "", 0, io.ErrUnexpectedEOF
			}
			out = append(out, buf[i])
		default:
			out = append(out, c)
		}
	}
	return "", 0, io.ErrUnexpectedEOF
}
