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

package irep

import (
	"strconv"
	"strings"
)

// Atom is an immutable text value. Atoms compare by content.
type Atom string

func (a Atom) String() string { return string(a) }

// NilID is the id of the empty tree.
const NilID = Atom("nil")

// Node is a labeled, ordered tree element.
type Node struct {
	ID    Atom
	Sub   []*Node
	Named []Named
}

// Named is a keyed child of a Node.
type Named struct {
	Key   Atom
	Value *Node
}

// New returns a new node with the given id and positional children.
func New(id Atom, sub ...*Node) *Node {
	return &Node{ID: id, Sub: sub}
}

// Nil returns a new empty tree.
func Nil() *Node { return &Node{ID: NilID} }

// OrNil returns n, or a new empty tree if n is nil.
func OrNil(n *Node) *Node {
	if n == nil {
		return Nil()
	}
	return n
}

// With appends a named child to n and returns n.
func (n *Node) With(key Atom, value *Node) *Node {
	n.Named = append(n.Named, Named{Key: key, Value: value})
	return n
}

// Lookup returns the value of the first named child with the given key.
func (n *Node) Lookup(key Atom) (*Node, bool) {
	for _, c := range n.Named {
		if c.Key == key {
			return c.Value, true
		}
	}
	return nil, false
}

// IsNil returns true if n is nil or the empty tree.
func (n *Node) IsNil() bool {
	return n == nil || (n.ID == NilID && len(n.Sub) == 0 && len(n.Named) == 0)
}

// Equal returns true if n and o have the same content: equal ids, equal
// positional children and equal named children, in order. A nil node is
// equal to the empty tree.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return n.IsNil() && o.IsNil()
	}
	if n.ID != o.ID || len(n.Sub) != len(o.Sub) || len(n.Named) != len(o.Named) {
		return false
	}
	for i, s := range n.Sub {
		if !s.Equal(o.Sub[i]) {
			return false
		}
	}
	for i, c := range n.Named {
		if c.Key != o.Named[i].Key || !c.Value.Equal(o.Named[i].Value) {
			return false
		}
	}
	return true
}

// Walk calls cb for n and every node below it, parents before children,
// positional children before named children. A node reachable along several
// paths is visited once per path.
func (n *Node) Walk(cb func(*Node)) {
	stack := []*Node{OrNil(n)}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cb(top)
		for i := len(top.Named) - 1; i >= 0; i-- {
			stack = append(stack, OrNil(top.Named[i].Value))
		}
		for i := len(top.Sub) - 1; i >= 0; i-- {
			stack = append(stack, OrNil(top.Sub[i]))
		}
	}
}

// Size returns the number of nodes in the tree rooted at n, counting shared
// subtrees once per occurrence.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// String returns the node as an s-expression: (id sub... :key value...).
func (n *Node) String() string {
	sb := &strings.Builder{}
	n.format(sb)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder) {
	n = OrNil(n)
	if len(n.Sub) == 0 && len(n.Named) == 0 {
		sb.WriteString(quote(n.ID))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(quote(n.ID))
	for _, s := range n.Sub {
		sb.WriteByte(' ')
		s.format(sb)
	}
	for _, c := range n.Named {
		sb.WriteString(" :")
		sb.WriteString(quote(c.Key))
		sb.WriteByte(' ')
		c.Value.format(sb)
	}
	sb.WriteByte(')')
}

func quote(a Atom) string {
	s := string(a)
	if s == "" || strings.ContainsAny(s, " ():\"\\") || strconv.Quote(s) != `"`+s+`"` {
		return strconv.Quote(s)
	}
	return s
}
