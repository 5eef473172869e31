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

package numbering

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/model-checking/rmc/core/fault"
	"github.com/model-checking/rmc/irep"
	"github.com/pkg/errors"
)

// ErrUnknownNumber is the panic cause when a number that was never assigned
// is looked up.
const ErrUnknownNumber = fault.Const("Number was never assigned")

// none terminates collision chains.
const none = ^uint64(0)

// NumberedAtom is an atom paired with its number.
type NumberedAtom struct {
	Number uint64
	Atom   irep.Atom
}

// NumberedNode is a node number paired with the offset of the node's key.
type NumberedNode struct {
	Number uint64
	Start  int
}

// Pair holds the numbers of a named child: an atom number for the key and a
// node number for the value.
type Pair struct {
	Key   uint64
	Value uint64
}

// Numbering is a content addressed numbering of atoms and nodes.
// It is not safe for concurrent use.
type Numbering struct {
	atoms     map[irep.Atom]uint64
	atomIndex []NumberedAtom

	// nodes maps a key digest to the most recently numbered node with that
	// digest. Older nodes with the same digest are reached through chain.
	nodes     map[uint64]uint64
	nodeIndex []NumberedNode
	chain     []uint64
	keys      []uint64

	// hash overrides the key digest. nil selects xxhash.
	hash func(key []uint64) uint64

	scratch []uint64
	hashBuf []byte
	work    []task
	results []uint64
	memo    map[*irep.Node]uint64
	trees   []*irep.Node
}

// New returns a new, empty Numbering.
func New() *Numbering {
	return &Numbering{
		atoms: map[irep.Atom]uint64{},
		nodes: map[uint64]uint64{},
		memo:  map[*irep.Node]uint64{},
	}
}

// Atom returns the numbered form of a, numbering it if it has not been seen.
func (n *Numbering) Atom(a irep.Atom) NumberedAtom {
	if number, ok := n.atoms[a]; ok {
		return n.atomIndex[number]
	}
	number := uint64(len(n.atomIndex))
	n.atoms[a] = number
	n.atomIndex = append(n.atomIndex, NumberedAtom{Number: number, Atom: a})
	return n.atomIndex[number]
}

// Compose returns the numbered node for the key built from already numbered
// parts: the id atom number, the positional child numbers and the named child
// number pairs.
func (n *Numbering) Compose(id uint64, sub []uint64, named []Pair) NumberedNode {
	key := append(n.scratch[:0], id, uint64(len(sub)))
	key = append(key, sub...)
	key = append(key, uint64(len(named)))
	for _, p := range named {
		key = append(key, p.Key, p.Value)
	}
	n.scratch = key
	return n.insert(key)
}

// insert returns the existing node with the given key, or numbers a new one.
func (n *Numbering) insert(key []uint64) NumberedNode {
	digest := n.digest(key)
	head, found := n.nodes[digest]
	if found {
		for number := head; number != none; number = n.chain[number] {
			if n.keyEqual(n.nodeIndex[number], key) {
				return n.nodeIndex[number]
			}
		}
	} else {
		head = none
	}
	number := uint64(len(n.nodeIndex))
	nn := NumberedNode{Number: number, Start: len(n.keys)}
	n.keys = append(n.keys, key...)
	n.nodeIndex = append(n.nodeIndex, nn)
	n.chain = append(n.chain, head)
	n.nodes[digest] = number
	return nn
}

func (n *Numbering) digest(key []uint64) uint64 {
	if n.hash != nil {
		return n.hash(key)
	}
	buf := n.hashBuf[:0]
	for _, k := range key {
		buf = binary.LittleEndian.AppendUint64(buf, k)
	}
	n.hashBuf = buf
	return xxhash.Sum64(buf)
}

func (n *Numbering) keyEqual(nn NumberedNode, key []uint64) bool {
	stored := n.Key(nn)
	if len(stored) != len(key) {
		return false
	}
	for i, k := range key {
		if stored[i] != k {
			return false
		}
	}
	return true
}

// AtomByNumber returns the atom with the given number.
// It panics with ErrUnknownNumber if the number was never assigned.
func (n *Numbering) AtomByNumber(number uint64) NumberedAtom {
	if number >= uint64(len(n.atomIndex)) {
		panic(errors.Wrapf(ErrUnknownNumber, "atom %d of %d", number, len(n.atomIndex)))
	}
	return n.atomIndex[number]
}

// NodeByNumber returns the node with the given number.
// It panics with ErrUnknownNumber if the number was never assigned.
func (n *Numbering) NodeByNumber(number uint64) NumberedNode {
	if number >= uint64(len(n.nodeIndex)) {
		panic(errors.Wrapf(ErrUnknownNumber, "node %d of %d", number, len(n.nodeIndex)))
	}
	return n.nodeIndex[number]
}

// Key returns the key of nn. The returned slice aliases the numbering's
// storage and must not be modified.
func (n *Numbering) Key(nn NumberedNode) []uint64 {
	subs := int(n.keys[nn.Start+1])
	named := int(n.keys[nn.Start+2+subs])
	end := nn.Start + 3 + subs + 2*named
	return n.keys[nn.Start:end:end]
}

// ID returns the id atom of nn.
func (n *Numbering) ID(nn NumberedNode) NumberedAtom {
	return n.atomIndex[n.keys[nn.Start]]
}

// SubCount returns the number of positional children of nn.
func (n *Numbering) SubCount(nn NumberedNode) int {
	return int(n.keys[nn.Start+1])
}

// Sub returns the i'th positional child of nn.
func (n *Numbering) Sub(nn NumberedNode, i int) NumberedNode {
	return n.nodeIndex[n.keys[nn.Start+2+i]]
}

// NamedCount returns the number of named children of nn.
func (n *Numbering) NamedCount(nn NumberedNode) int {
	return int(n.keys[nn.Start+2+n.SubCount(nn)])
}

// Named returns the key and value of the i'th named child of nn.
func (n *Numbering) Named(nn NumberedNode, i int) (NumberedAtom, NumberedNode) {
	at := nn.Start + 3 + n.SubCount(nn) + 2*i
	return n.atomIndex[n.keys[at]], n.nodeIndex[n.keys[at+1]]
}

// Atoms returns the number of distinct atoms numbered so far.
func (n *Numbering) Atoms() int { return len(n.atomIndex) }

// Nodes returns the number of distinct nodes numbered so far.
func (n *Numbering) Nodes() int { return len(n.nodeIndex) }

// KeyWords returns the total length of all stored keys.
func (n *Numbering) KeyWords() int { return len(n.keys) }
