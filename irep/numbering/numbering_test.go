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

package numbering_test

import (
	"testing"

	"github.com/model-checking/rmc/irep"
	"github.com/model-checking/rmc/irep/numbering"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(id irep.Atom) *irep.Node { return irep.New(id) }

func TestAtoms(t *testing.T) {
	n := numbering.New()
	a := n.Atom("main")
	b := n.Atom("x")
	c := n.Atom(irep.Atom([]byte("main")))
	assert.Equal(t, numbering.NumberedAtom{Number: 0, Atom: "main"}, a)
	assert.Equal(t, numbering.NumberedAtom{Number: 1, Atom: "x"}, b)
	assert.Equal(t, a, c)
	assert.Equal(t, 2, n.Atoms())
	assert.Equal(t, b, n.AtomByNumber(1))
}

func TestSameStructureSameNumber(t *testing.T) {
	n := numbering.New()
	first := n.Node(irep.New("and", leaf("X"), leaf("Y")))
	second := n.Node(irep.New("and", leaf("X"), leaf("Y")))
	swapped := n.Node(irep.New("and", leaf("Y"), leaf("X")))
	assert.Equal(t, first, second)
	assert.NotEqual(t, first.Number, swapped.Number)
}

func TestContentAddressing(t *testing.T) {
	attrs := func(n *irep.Node) *irep.Node {
		return n.With("type", leaf("int")).With("loc", leaf("main.c"))
	}
	base := func() *irep.Node { return attrs(irep.New("plus", leaf("a"), leaf("b"))) }
	variants := map[string]*irep.Node{
		"id":             attrs(irep.New("minus", leaf("a"), leaf("b"))),
		"child":          attrs(irep.New("plus", leaf("a"), leaf("c"))),
		"child order":    attrs(irep.New("plus", leaf("b"), leaf("a"))),
		"extra child":    attrs(irep.New("plus", leaf("a"), leaf("b"), leaf("b"))),
		"deeper change":  attrs(irep.New("plus", irep.New("a", leaf("x")), leaf("b"))),
		"child as named": attrs(irep.New("plus", leaf("a")).With("b", leaf("b"))),
		"named key":      irep.New("plus", leaf("a"), leaf("b")).With("kind", leaf("int")).With("loc", leaf("main.c")),
		"named value":    irep.New("plus", leaf("a"), leaf("b")).With("type", leaf("uint")).With("loc", leaf("main.c")),
		"named order":    irep.New("plus", leaf("a"), leaf("b")).With("loc", leaf("main.c")).With("type", leaf("int")),
		"duplicate key":  base().With("loc", leaf("main.c")),
	}

	n := numbering.New()
	want := n.Node(base())
	assert.Equal(t, want, n.Node(base()))
	seen := map[uint64]string{want.Number: "base"}
	for name, v := range variants {
		got := n.Node(v)
		assert.NotEqual(t, want.Number, got.Number, name)
		if other, dup := seen[got.Number]; dup {
			t.Errorf("%s and %s share number %d", name, other, got.Number)
		}
		seen[got.Number] = name
	}
}

func TestNilNode(t *testing.T) {
	n := numbering.New()
	assert.Equal(t, n.Node(irep.Nil()), n.Node(nil))
	assert.Equal(t, irep.NilID, n.ID(n.Node(nil)).Atom)
}

func TestNumberingOrder(t *testing.T) {
	n := numbering.New()
	root := irep.New("id", leaf("s0"), leaf("s1")).With("k0", leaf("v0")).With("k1", leaf("v1"))
	nn := n.Node(root)

	var atoms []irep.Atom
	for i := 0; i < n.Atoms(); i++ {
		atoms = append(atoms, n.AtomByNumber(uint64(i)).Atom)
	}
	assert.Equal(t, []irep.Atom{"id", "s0", "s1", "k0", "v0", "k1", "v1"}, atoms)

	var nodes []irep.Atom
	for i := 0; i < n.Nodes(); i++ {
		nodes = append(nodes, n.ID(n.NodeByNumber(uint64(i))).Atom)
	}
	assert.Equal(t, []irep.Atom{"s0", "s1", "v0", "v1", "id"}, nodes)
	assert.Equal(t, uint64(4), nn.Number)
}

func TestAccessors(t *testing.T) {
	n := numbering.New()
	x, y := leaf("x"), leaf("y")
	nn := n.Node(irep.New("and", x, y, x).With("type", leaf("bool")).With("type", leaf("bool")))

	assert.Equal(t, irep.Atom("and"), n.ID(nn).Atom)
	require.Equal(t, 3, n.SubCount(nn))
	assert.Equal(t, n.Node(x), n.Sub(nn, 0))
	assert.Equal(t, n.Node(y), n.Sub(nn, 1))
	assert.Equal(t, n.Node(x), n.Sub(nn, 2))
	require.Equal(t, 2, n.NamedCount(nn))
	for i := 0; i < 2; i++ {
		k, v := n.Named(nn, i)
		assert.Equal(t, irep.Atom("type"), k.Atom)
		assert.Equal(t, irep.Atom("bool"), n.ID(v).Atom)
	}

	key := n.Key(nn)
	assert.Equal(t, []uint64{
		n.Atom("and").Number,
		3, n.Node(x).Number, n.Node(y).Number, n.Node(x).Number,
		2, n.Atom("type").Number, n.Node(leaf("bool")).Number, n.Atom("type").Number, n.Node(leaf("bool")).Number,
	}, key)
	assert.Equal(t, nn, n.NodeByNumber(nn.Number))
}

func TestComposeMatchesNode(t *testing.T) {
	tree := irep.New("index", leaf("a"), leaf("0")).With("type", leaf("int"))

	n := numbering.New()
	a := n.Node(leaf("a"))
	zero := n.Node(leaf("0"))
	intType := n.Node(leaf("int"))
	composed := n.Compose(n.Atom("index").Number, []uint64{a.Number, zero.Number},
		[]numbering.Pair{{Key: n.Atom("type").Number, Value: intType.Number}})
	assert.Equal(t, composed, n.Node(tree))
	assert.Equal(t, 4, n.Nodes())
}

func TestRepeatsAddNoKeys(t *testing.T) {
	n := numbering.New()
	letters := "abcdefghijklmnopqrstuvwxyz"
	big := irep.New("big")
	for i := 0; i < 100; i++ {
		big.Sub = append(big.Sub, leaf(irep.Atom(letters[i%26:i%26+1])))
	}
	first := n.Node(big)
	words := n.KeyWords()
	for i := 0; i < 1000; i++ {
		wrapper := n.Node(irep.New("wrapper", big))
		assert.Equal(t, first, n.Sub(wrapper, 0))
	}
	// one key for the wrapper node, none for the repeats.
	assert.Equal(t, words+4, n.KeyWords())
	assert.Equal(t, 28, n.Nodes())
}

func TestMaterialize(t *testing.T) {
	n := numbering.New()
	shared := irep.New("plus", leaf("a"), leaf("b"))
	tree := irep.New("mult", shared, shared).With("type", leaf("int")).With("type", leaf("int"))
	nn := n.Node(tree)

	got := n.Materialize(nn)
	assert.True(t, tree.Equal(got))
	assert.Same(t, got.Sub[0], got.Sub[1])
	assert.Same(t, got.Named[0].Value, got.Named[1].Value)
	assert.Same(t, got, n.Materialize(nn))
	assert.Same(t, got.Sub[0], n.Materialize(n.Node(shared)))
}

func TestDeepTree(t *testing.T) {
	const depth = 100000
	tree := leaf("leaf")
	for i := 0; i < depth; i++ {
		tree = irep.New("not", tree).With("depth", leaf("d"))
	}
	n := numbering.New()
	nn := n.Node(tree)
	assert.Equal(t, depth+2, n.Nodes())
	assert.Equal(t, uint64(depth+1), nn.Number)

	got := n.Materialize(nn)
	for i := 0; i < depth; i++ {
		require.Equal(t, irep.Atom("not"), got.ID)
		got = got.Sub[0]
	}
	assert.Equal(t, irep.Atom("leaf"), got.ID)
}

func TestUnknownNumber(t *testing.T) {
	n := numbering.New()
	n.Node(leaf("x"))
	for _, test := range []struct {
		name string
		f    func()
		msg  string
	}{
		{"atom", func() { n.AtomByNumber(1) }, "atom 1 of 1: Number was never assigned"},
		{"node", func() { n.NodeByNumber(1) }, "node 1 of 1: Number was never assigned"},
	} {
		err := unknownNumber(test.f)
		assert.Equal(t, numbering.ErrUnknownNumber, errors.Cause(err), "%s cause", test.name)
		assert.EqualError(t, err, test.msg, "%s message", test.name)
	}
}

func unknownNumber(f func()) (err error) {
	defer func() { err, _ = recover().(error) }()
	f()
	return nil
}

func TestCycle(t *testing.T) {
	loop := irep.New("loop")
	loop.Sub = append(loop.Sub, irep.New("body", loop))
	n := numbering.New()
	assert.PanicsWithValue(t, numbering.ErrCycle, func() { n.Node(loop) })
}
