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

package irep_test

import (
	"testing"

	"github.com/model-checking/rmc/irep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(id irep.Atom) *irep.Node { return irep.New(id) }

func TestNodeEqual(t *testing.T) {
	x, y := sym("x"), sym("y")
	base := irep.New("and", x, y).With("type", sym("bool"))

	for _, test := range []struct {
		name  string
		other *irep.Node
		equal bool
	}{
		{"same pointer", base, true},
		{"rebuilt", irep.New("and", sym("x"), sym("y")).With("type", sym("bool")), true},
		{"different id", irep.New("or", x, y).With("type", sym("bool")), false},
		{"swapped children", irep.New("and", y, x).With("type", sym("bool")), false},
		{"missing child", irep.New("and", x).With("type", sym("bool")), false},
		{"different key", irep.New("and", x, y).With("width", sym("bool")), false},
		{"different value", irep.New("and", x, y).With("type", sym("int")), false},
		{"duplicate key", irep.New("and", x, y).With("type", sym("bool")).With("type", sym("bool")), false},
		{"nil", nil, false},
	} {
		assert.Equal(t, test.equal, base.Equal(test.other), test.name)
		assert.Equal(t, test.equal, test.other.Equal(base), test.name)
	}
}

func TestNamedOrder(t *testing.T) {
	a := irep.New("struct").With("a", sym("1")).With("b", sym("2"))
	b := irep.New("struct").With("b", sym("2")).With("a", sym("1"))
	assert.False(t, a.Equal(b))
}

func TestNil(t *testing.T) {
	var none *irep.Node
	assert.True(t, none.IsNil())
	assert.True(t, irep.Nil().IsNil())
	assert.True(t, none.Equal(irep.Nil()))
	assert.True(t, irep.Nil().Equal(none))
	assert.False(t, irep.New("nil", sym("x")).IsNil())
	assert.Equal(t, "nil", none.String())
}

func TestLookup(t *testing.T) {
	n := irep.New("signedbv").With("width", sym("32")).With("width", sym("64"))
	v, ok := n.Lookup("width")
	require.True(t, ok)
	assert.Equal(t, irep.Atom("32"), v.ID)
	_, ok = n.Lookup("sign")
	assert.False(t, ok)
}

func TestWalkAndSize(t *testing.T) {
	shared := sym("x")
	n := irep.New("plus", shared, shared).With("type", sym("int"))
	var ids []irep.Atom
	n.Walk(func(n *irep.Node) { ids = append(ids, n.ID) })
	assert.Equal(t, []irep.Atom{"plus", "x", "x", "int"}, ids)
	assert.Equal(t, 4, n.Size())
}

func TestString(t *testing.T) {
	n := irep.New("plus", sym("x"), sym("")).With("type", irep.New("signedbv").With("width", sym("32")))
	assert.Equal(t, `(plus x "" :type (signedbv :width 32))`, n.String())
	assert.Equal(t, `"a b"`, sym("a b").String())
	assert.Equal(t, `"\x00"`, sym("\x00").String())
}

func TestSymbolFlags(t *testing.T) {
	var f irep.SymbolFlags
	f = f.Set(irep.IsType | irep.IsWeak)
	assert.True(t, f.Has(irep.IsType))
	assert.True(t, f.Has(irep.IsWeak))
	assert.False(t, f.Has(irep.IsExtern))
	assert.Equal(t, []string{"is_type", "is_weak"}, f.Names())
	assert.Equal(t, "is_type|is_weak", f.String())
	f = f.Clear(irep.IsWeak)
	assert.Equal(t, irep.SymbolFlags(1<<15), f)

	assert.Equal(t, irep.SymbolFlags(1), irep.IsVolatile)
	assert.Equal(t, irep.SymbolFlags(1<<7), irep.IsAuxiliary)
	assert.Equal(t, irep.SymbolFlags(1<<16), irep.IsWeak)
	assert.Equal(t, irep.SymbolFlags(0x1ffbf), irep.ValidFlags)
	assert.Equal(t, "none", irep.SymbolFlags(0).String())
	assert.Equal(t, "is_volatile|0x40", irep.SymbolFlags(0x41).String())

	for _, name := range irep.ValidFlags.Names() {
		flag, err := irep.ParseSymbolFlag(name)
		require.NoError(t, err)
		assert.Equal(t, []string{name}, flag.Names())
	}
	_, err := irep.ParseSymbolFlag("is_binding")
	assert.Error(t, err)
}

func TestSymbolTable(t *testing.T) {
	b := irep.NewSymbol("b")
	a := irep.NewSymbol("a")
	a.Flags = irep.IsLvalue
	table := irep.NewSymbolTable(b, a)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []irep.Atom{"a", "b"}, table.Names())
	assert.Equal(t, []*irep.Symbol{a, b}, table.Symbols())

	got, ok := table.Lookup("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	other := irep.NewSymbolTable(irep.NewSymbol("a"), irep.NewSymbol("b"))
	assert.False(t, table.Equal(other))
	s, _ := other.Lookup("a")
	s.Flags = irep.IsLvalue
	assert.True(t, table.Equal(other))

	replaced := irep.NewSymbol("a")
	table.Add(replaced)
	assert.Equal(t, 2, table.Len())
	got, _ = table.Lookup("a")
	assert.Same(t, replaced, got)

	var empty irep.SymbolTable
	empty.Add(a)
	assert.Equal(t, 1, empty.Len())
}
