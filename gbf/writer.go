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
	"bufio"
	"context"
	"io"

	"github.com/model-checking/rmc/core/data/escstr"
	"github.com/model-checking/rmc/core/data/varint"
	"github.com/model-checking/rmc/irep"
	"github.com/model-checking/rmc/irep/numbering"
)

// Writer writes goto binary streams.
// Writes are buffered; call Flush once the stream is complete.
//
// Errors are sticky: once a write fails every later write is a no-op and
// Error reports the first failure.
type Writer struct {
	buf *bufio.Writer
	w   varint.Writer
	n   *numbering.Numbering

	// atoms and nodes count the references written for each engine number.
	atoms []uint64
	nodes []uint64

	work    []writeTask
	symbols int
}

type writeKind uint8

const (
	writeNode writeKind = iota
	writeAtom
	writeTag
)

type writeTask struct {
	kind  writeKind
	value uint64
}

// NewWriter returns a Writer that writes to to, numbering with n.
// If n is nil a new numbering is used.
func NewWriter(to io.Writer, n *numbering.Numbering) *Writer {
	if n == nil {
		n = numbering.New()
	}
	buf := bufio.NewWriter(to)
	return &Writer{buf: buf, w: varint.NewWriter(buf), n: n}
}

// Numbering returns the numbering used by the writer.
func (w *Writer) Numbering() *numbering.Numbering { return w.n }

// Error returns the first error encountered by the writer, or nil.
func (w *Writer) Error() error { return w.w.Error() }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Error(); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		w.w.SetError(err)
	}
	return w.w.Error()
}

// WriteHeader writes the magic bytes and the format version.
func (w *Writer) WriteHeader() {
	w.w.Data(magic[:])
	w.w.Uint64(Version)
}

// WriteAtomRef writes a reference to a, followed by its text if this is the
// first reference to a in the stream.
func (w *Writer) WriteAtomRef(a irep.Atom) {
	w.writeAtom(w.n.Atom(a))
}

// WriteNodeRef writes a reference to node, followed by its contents if this
// is the first reference to an equal node in the stream. A nil node is
// written as irep.Nil(). A node that contains itself sets the error to
// numbering.ErrCycle.
func (w *Writer) WriteNodeRef(node *irep.Node) {
	if w.w.Error() != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok && err == numbering.ErrCycle {
				w.w.SetError(err)
				return
			}
			panic(r)
		}
	}()
	w.writeNode(w.n.Node(node))
}

func (w *Writer) writeAtom(a numbering.NumberedAtom) {
	w.w.Uint64(a.Number)
	if w.atoms = grow(w.atoms, a.Number); w.atoms[a.Number] > 0 {
		w.atoms[a.Number]++
		return
	}
	w.atoms[a.Number]++
	escstr.Write(w.w, string(a.Atom))
}

// writeNode writes the reference and, on first occurrence, the contents of
// nn. Contents are expanded with an explicit stack in stream order: the id,
// each positional child after an 'S' tag, each named child's key and value
// after an 'N' tag and then the terminator.
func (w *Writer) writeNode(nn numbering.NumberedNode) {
	w.work = append(w.work[:0], writeTask{kind: writeNode, value: nn.Number})
	for len(w.work) > 0 && w.w.Error() == nil {
		t := w.work[len(w.work)-1]
		w.work = w.work[:len(w.work)-1]
		switch t.kind {
		case writeTag:
			w.w.Uint8(uint8(t.value))
		case writeAtom:
			w.writeAtom(w.n.AtomByNumber(t.value))
		case writeNode:
			w.w.Uint64(t.value)
			w.nodes = grow(w.nodes, t.value)
			w.nodes[t.value]++
			if w.nodes[t.value] > 1 {
				continue
			}
			nn := w.n.NodeByNumber(t.value)
			w.work = append(w.work, writeTask{kind: writeTag, value: tagEnd})
			for i := w.n.NamedCount(nn) - 1; i >= 0; i-- {
				k, v := w.n.Named(nn, i)
				w.work = append(w.work,
					writeTask{kind: writeNode, value: v.Number},
					writeTask{kind: writeAtom, value: k.Number},
					writeTask{kind: writeTag, value: tagNamed})
			}
			for i := w.n.SubCount(nn) - 1; i >= 0; i-- {
				w.work = append(w.work,
					writeTask{kind: writeNode, value: w.n.Sub(nn, i).Number},
					writeTask{kind: writeTag, value: tagSub})
			}
			w.writeAtom(w.n.ID(nn))
		}
	}
	w.work = w.work[:0]
}

// WriteSymbol writes a symbol record. The deprecated binding flag is always
// written as zero.
func (w *Writer) WriteSymbol(s *irep.Symbol) {
	if uint64(s.Flags)>>flagBits != 0 {
		w.w.SetError(ErrFlags{Flags: uint64(s.Flags)})
		return
	}
	w.WriteNodeRef(s.Type)
	w.WriteNodeRef(s.Value)
	w.WriteNodeRef(s.Location)
	w.WriteAtomRef(s.Name)
	w.WriteAtomRef(s.Module)
	w.WriteAtomRef(s.BaseName)
	w.WriteAtomRef(s.Mode)
	w.WriteAtomRef(s.PrettyName)
	w.w.Uint8(0)
	w.w.Uint64(uint64(s.Flags & irep.ValidFlags))
	if w.w.Error() == nil {
		w.symbols++
	}
}

// WriteTable writes the symbol count followed by every symbol of t in name
// order. Writing stops with the context's error if ctx is done between two
// records.
func (w *Writer) WriteTable(ctx context.Context, t *irep.SymbolTable) {
	symbols := t.Symbols()
	w.w.Uint64(uint64(len(symbols)))
	for _, s := range symbols {
		if w.w.Error() != nil {
			return
		}
		if err := ctx.Err(); err != nil {
			w.w.SetError(err)
			return
		}
		w.WriteSymbol(s)
	}
}

// WriteFunctionMap writes the empty function map that ends the stream.
func (w *Writer) WriteFunctionMap() {
	w.w.Uint64(0)
}

// Stats returns the statistics of the stream written so far.
func (w *Writer) Stats() Stats {
	s := Stats{
		Symbols:     w.symbols,
		EngineAtoms: w.n.Atoms(),
		EngineNodes: w.n.Nodes(),
		KeyWords:    w.n.KeyWords(),
		Bytes:       w.w.Offset(),
	}
	for number, count := range w.atoms {
		s.Atoms.add(uint64(number), count)
	}
	for number, count := range w.nodes {
		s.Nodes.add(uint64(number), count)
	}
	return s
}

// grow extends counts so that index i is valid.
func grow(counts []uint64, i uint64) []uint64 {
	if i < uint64(len(counts)) {
		return counts
	}
	return append(counts, make([]uint64, i+1-uint64(len(counts)))...)
}
