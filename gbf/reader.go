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
	"context"
	"io"

	"github.com/model-checking/rmc/core/data/escstr"
	"github.com/model-checking/rmc/core/data/varint"
	"github.com/model-checking/rmc/irep"
	"github.com/model-checking/rmc/irep/numbering"
)

// Reader reads goto binary streams.
//
// Stream numbers are mapped onto the reader's own numbering, which may
// number the same content differently from the writer. Errors are sticky:
// once a read fails every later read returns a zero value and Error reports
// the first failure.
type Reader struct {
	r varint.Reader
	n *numbering.Numbering

	// atoms and nodes map stream numbers to their occurrences.
	atoms map[uint64]*occurrence
	nodes map[uint64]*occurrence

	frames  []frame
	symbols int
}

// occurrence tracks one stream number.
type occurrence struct {
	count  uint64
	number uint64
	mapped bool
}

type want uint8

const (
	wantTag want = iota
	wantSub
	wantValue
)

// frame is a node whose contents are being read.
type frame struct {
	stream uint64
	id     uint64
	sub    []uint64
	named  []numbering.Pair
	key    uint64
	want   want
}

// NewReader returns a Reader that reads from from, numbering with n.
// If n is nil a new numbering is used.
func NewReader(from io.Reader, n *numbering.Numbering) *Reader {
	if n == nil {
		n = numbering.New()
	}
	return &Reader{
		r:     varint.NewReader(from),
		n:     n,
		atoms: map[uint64]*occurrence{},
		nodes: map[uint64]*occurrence{},
	}
}

// Numbering returns the numbering used by the reader.
func (r *Reader) Numbering() *numbering.Numbering { return r.n }

// Error returns the first error encountered by the reader, or nil.
func (r *Reader) Error() error { return r.r.Error() }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.r.Offset() }

// ReadHeader reads and checks the magic bytes and the format version.
func (r *Reader) ReadHeader() {
	var m [len(magic)]byte
	r.r.Data(m[:])
	if r.r.Error() != nil {
		return
	}
	if m != magic {
		r.r.SetError(ErrIncorrectMagic)
		return
	}
	if v := r.r.Uint64(); r.r.Error() == nil && v != Version {
		r.r.SetError(ErrUnsupportedVersion{Version: v})
	}
}

// lookup returns the occurrence of stream in table, counting one more
// reference to it.
func lookup(table map[uint64]*occurrence, stream uint64) *occurrence {
	o, ok := table[stream]
	if !ok {
		o = &occurrence{}
		table[stream] = o
	}
	o.count++
	return o
}

// bind maps the stream number of o to an engine number.
func (r *Reader) bind(kind Kind, o *occurrence, stream, number uint64) {
	if o.mapped {
		r.r.SetError(ErrDuplicateMapping{Kind: kind, Number: stream})
		return
	}
	o.number, o.mapped = number, true
}

// ReadAtomRef reads an atom reference, and the atom's text if this is its
// first occurrence in the stream.
func (r *Reader) ReadAtomRef() numbering.NumberedAtom {
	stream := r.r.Uint64()
	if r.r.Error() != nil {
		return numbering.NumberedAtom{}
	}
	o := lookup(r.atoms, stream)
	if o.count > 1 {
		if !o.mapped {
			r.r.SetError(ErrUnmappedReference{Kind: AtomKind, Number: stream})
			return numbering.NumberedAtom{}
		}
		return r.n.AtomByNumber(o.number)
	}
	s := escstr.Read(r.r)
	if r.r.Error() != nil {
		return numbering.NumberedAtom{}
	}
	a := r.n.Atom(irep.Atom(s))
	r.bind(AtomKind, o, stream, a.Number)
	return a
}

// ReadNodeRef reads a node reference, and the node's contents if this is its
// first occurrence in the stream. Contents are read with an explicit stack of
// partially read nodes, so nesting depth is bounded by memory only.
func (r *Reader) ReadNodeRef() numbering.NumberedNode {
	base := len(r.frames)
	defer func() { r.frames = r.frames[:base] }()

	var nn numbering.NumberedNode
	done := r.beginNode(&nn)
	for len(r.frames) > base {
		if r.r.Error() != nil {
			return numbering.NumberedNode{}
		}
		f := &r.frames[len(r.frames)-1]
		if done {
			switch f.want {
			case wantSub:
				f.sub = append(f.sub, nn.Number)
			case wantValue:
				f.named = append(f.named, numbering.Pair{Key: f.key, Value: nn.Number})
			}
			f.want, done = wantTag, false
			continue
		}
		switch tag := r.r.Uint8(); {
		case r.r.Error() != nil:
		case tag == tagSub:
			if len(f.named) > 0 {
				r.r.SetError(ErrSubAfterNamed)
				break
			}
			f.want = wantSub
			done = r.beginNode(&nn)
		case tag == tagNamed:
			f.key = r.ReadAtomRef().Number
			f.want = wantValue
			done = r.beginNode(&nn)
		case tag == tagEnd:
			nn = r.n.Compose(f.id, f.sub, f.named)
			r.bind(NodeKind, r.nodes[f.stream], f.stream, nn.Number)
			r.frames = r.frames[:len(r.frames)-1]
			done = true
		default:
			r.r.SetError(ErrUnknownTag{Tag: tag})
		}
	}
	if !done || r.r.Error() != nil {
		return numbering.NumberedNode{}
	}
	return nn
}

// beginNode reads a node reference. If the node is already known it is
// stored in nn and beginNode returns true. Otherwise the node's id is read
// and a frame is pushed to collect its children.
func (r *Reader) beginNode(nn *numbering.NumberedNode) bool {
	stream := r.r.Uint64()
	if r.r.Error() != nil {
		return false
	}
	o := lookup(r.nodes, stream)
	if o.count > 1 {
		if !o.mapped {
			r.r.SetError(ErrUnmappedReference{Kind: NodeKind, Number: stream})
			return false
		}
		*nn = r.n.NodeByNumber(o.number)
		return true
	}
	id := r.ReadAtomRef()
	if r.r.Error() != nil {
		return false
	}
	if len(r.frames) < cap(r.frames) {
		r.frames = r.frames[:len(r.frames)+1]
		f := &r.frames[len(r.frames)-1]
		*f = frame{stream: stream, id: id.Number, sub: f.sub[:0], named: f.named[:0]}
	} else {
		r.frames = append(r.frames, frame{stream: stream, id: id.Number})
	}
	return false
}

// ReadSymbol reads a symbol record. The symbol's trees are built by the
// reader's numbering and share equal subtrees, so they must not be modified.
// The deprecated binding flag is dropped.
func (r *Reader) ReadSymbol() *irep.Symbol {
	typ := r.ReadNodeRef()
	value := r.ReadNodeRef()
	location := r.ReadNodeRef()
	s := &irep.Symbol{
		Name:       r.ReadAtomRef().Atom,
		Module:     r.ReadAtomRef().Atom,
		BaseName:   r.ReadAtomRef().Atom,
		Mode:       r.ReadAtomRef().Atom,
		PrettyName: r.ReadAtomRef().Atom,
	}
	if reserved := r.r.Uint8(); r.r.Error() == nil && reserved != 0 {
		r.r.SetError(ErrReservedField)
	}
	flags := r.r.Uint64()
	if r.r.Error() != nil {
		return nil
	}
	if flags>>flagBits != 0 {
		r.r.SetError(ErrFlags{Flags: flags})
		return nil
	}
	s.Flags = irep.SymbolFlags(flags) & irep.ValidFlags
	s.Type = r.n.Materialize(typ)
	s.Value = r.n.Materialize(value)
	s.Location = r.n.Materialize(location)
	r.symbols++
	return s
}

// ReadTable reads the symbol count and every symbol record. Reading stops
// with the context's error if ctx is done between two records.
func (r *Reader) ReadTable(ctx context.Context) *irep.SymbolTable {
	count := r.r.Uint64()
	t := irep.NewSymbolTable()
	for i := uint64(0); i < count && r.r.Error() == nil; i++ {
		if err := ctx.Err(); err != nil {
			r.r.SetError(err)
			break
		}
		if s := r.ReadSymbol(); s != nil {
			t.Add(s)
		}
	}
	if r.r.Error() != nil {
		return nil
	}
	return t
}

// ReadFunctionMap reads the function map that ends the stream and checks
// that it is empty.
func (r *Reader) ReadFunctionMap() {
	if count := r.r.Uint64(); r.r.Error() == nil && count != 0 {
		r.r.SetError(ErrFunctionMap)
	}
}

// Stats returns the statistics of the stream read so far. Reference counts
// are keyed by stream number.
func (r *Reader) Stats() Stats {
	s := Stats{
		Symbols:     r.symbols,
		EngineAtoms: r.n.Atoms(),
		EngineNodes: r.n.Nodes(),
		KeyWords:    r.n.KeyWords(),
		Bytes:       r.r.Offset(),
	}
	for number, o := range r.atoms {
		s.Atoms.add(number, o.count)
	}
	for number, o := range r.nodes {
		s.Nodes.add(number, o.count)
	}
	return s
}
