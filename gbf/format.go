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

package gbf

import (
	"fmt"
	"io"

	"github.com/model-checking/rmc/core/data/varint"
	"github.com/model-checking/rmc/core/fault"
	"github.com/pkg/errors"
)

// Version is the format version written and accepted by this package.
const Version = 5

// flagBits is the number of symbol flag bits in a record.
const flagBits = 17

// magic starts every goto binary stream.
var magic = [4]byte{0x7f, 'G', 'B', 'F'}

// Node content tags.
const (
	tagEnd   = 0x00
	tagSub   = 'S'
	tagNamed = 'N'
)

const (
	// ErrIncorrectMagic is returned when the stream does not start with the
	// goto binary magic bytes.
	ErrIncorrectMagic = fault.Const("Incorrect goto binary magic header")
	// ErrReservedField is returned when the obsolete symbol ordering byte is
	// not zero.
	ErrReservedField = fault.Const("Reserved symbol field is not zero")
	// ErrFunctionMap is returned when the stream carries goto functions.
	ErrFunctionMap = fault.Const("Function map is not empty")
	// ErrSubAfterNamed is returned when a positional child follows a named
	// child of the same node.
	ErrSubAfterNamed = fault.Const("Positional child after named child")
)

// Kind identifies the table a reference number belongs to.
type Kind uint8

const (
	AtomKind Kind = iota
	NodeKind
)

func (k Kind) String() string {
	switch k {
	case AtomKind:
		return "atom"
	case NodeKind:
		return "node"
	default:
		return fmt.Sprintf("kind<%d>", uint8(k))
	}
}

// ErrUnsupportedVersion is returned when the header version is one this
// package cannot handle.
type ErrUnsupportedVersion struct{ Version uint64 }

func (e ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("Unsupported goto binary version: %d (want %d)", e.Version, Version)
}

// ErrUnknownTag is returned when a node's contents hold a tag byte other
// than 'S', 'N' or the terminator.
type ErrUnknownTag struct{ Tag byte }

func (e ErrUnknownTag) Error() string {
	return fmt.Sprintf("Unknown node tag 0x%02x", e.Tag)
}

// ErrFlags is returned when symbol flags have bits set above is_weak.
type ErrFlags struct{ Flags uint64 }

func (e ErrFlags) Error() string {
	return fmt.Sprintf("Undefined symbol flag bits set: %#x", e.Flags)
}

// ErrDuplicateMapping is returned when the contents of a stream number are
// read a second time.
type ErrDuplicateMapping struct {
	Kind   Kind
	Number uint64
}

func (e ErrDuplicateMapping) Error() string {
	return fmt.Sprintf("Duplicate contents for %v %d", e.Kind, e.Number)
}

// ErrUnmappedReference is returned when a stream number is referenced again
// before its contents are complete, such as a node that contains itself.
type ErrUnmappedReference struct {
	Kind   Kind
	Number uint64
}

func (e ErrUnmappedReference) Error() string {
	return fmt.Sprintf("Reference to incomplete %v %d", e.Kind, e.Number)
}

// IsFormatError returns true if err is caused by a malformed stream rather
// than by a failure of the underlying reader or writer.
func IsFormatError(err error) bool {
	switch errors.Cause(err).(type) {
	case ErrUnsupportedVersion, ErrUnknownTag, ErrFlags, ErrDuplicateMapping, ErrUnmappedReference:
		return true
	}
	switch errors.Cause(err) {
	case ErrIncorrectMagic, ErrReservedField, ErrFunctionMap, ErrSubAfterNamed,
		varint.ErrOverflow, io.ErrUnexpectedEOF:
		return true
	}
	return false
}
