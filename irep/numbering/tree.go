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
	"github.com/model-checking/rmc/core/fault"
	"github.com/model-checking/rmc/irep"
)

// ErrCycle is the panic cause when a node is reachable from itself.
const ErrCycle = fault.Const("Node is its own descendant")

type taskKind uint8

const (
	// visitNode numbers the id of node and schedules its children.
	visitNode taskKind = iota
	// numberKey numbers the key atom of a named child.
	numberKey
	// finishNode builds the key of node from the numbered children.
	finishNode
)

type task struct {
	kind taskKind
	node *irep.Node
	key  irep.Atom
	id   uint64
}

// Node returns the numbered form of node, numbering it and every node below
// it that has not been seen. A nil node is numbered as irep.Nil().
//
// The id atom is numbered first, then the positional children left to right,
// then each named child's key atom followed by its value. The walk uses an
// explicit stack, so tree depth is bounded by memory rather than by the
// goroutine stack. Node panics with ErrCycle if node is its own descendant.
func (n *Numbering) Node(node *irep.Node) NumberedNode {
	clear(n.memo)
	n.work = append(n.work[:0], task{kind: visitNode, node: irep.OrNil(node)})
	n.results = n.results[:0]
	for len(n.work) > 0 {
		t := n.work[len(n.work)-1]
		n.work = n.work[:len(n.work)-1]
		switch t.kind {
		case visitNode:
			if number, ok := n.memo[t.node]; ok {
				if number == none {
					panic(ErrCycle)
				}
				n.results = append(n.results, number)
				continue
			}
			n.memo[t.node] = none
			id := n.Atom(t.node.ID).Number
			n.work = append(n.work, task{kind: finishNode, node: t.node, id: id})
			for i := len(t.node.Named) - 1; i >= 0; i-- {
				c := t.node.Named[i]
				n.work = append(n.work,
					task{kind: visitNode, node: irep.OrNil(c.Value)},
					task{kind: numberKey, key: c.Key})
			}
			for i := len(t.node.Sub) - 1; i >= 0; i-- {
				n.work = append(n.work, task{kind: visitNode, node: irep.OrNil(t.node.Sub[i])})
			}
		case numberKey:
			n.results = append(n.results, n.Atom(t.key).Number)
		case finishNode:
			subs, named := len(t.node.Sub), len(t.node.Named)
			parts := n.results[len(n.results)-subs-2*named:]
			key := append(n.scratch[:0], t.id, uint64(subs))
			key = append(key, parts[:subs]...)
			key = append(key, uint64(named))
			key = append(key, parts[subs:]...)
			n.scratch = key
			n.results = n.results[:len(n.results)-len(parts)]
			nn := n.insert(key)
			n.memo[t.node] = nn.Number
			n.results = append(n.results, nn.Number)
		}
	}
	return n.nodeIndex[n.results[0]]
}

// Materialize returns the tree for nn. Trees built by the same Numbering
// share one *irep.Node per number, so repeated subtrees are shared rather
// than copied. The returned trees must not be modified.
func (n *Numbering) Materialize(nn NumberedNode) *irep.Node {
	// Children always have smaller numbers than their parents, so building
	// in number order finds every child already built.
	for number := len(n.trees); uint64(number) <= nn.Number; number++ {
		at := n.nodeIndex[number]
		node := &irep.Node{ID: n.ID(at).Atom}
		if c := n.SubCount(at); c > 0 {
			node.Sub = make([]*irep.Node, c)
			for i := range node.Sub {
				node.Sub[i] = n.trees[n.Sub(at, i).Number]
			}
		}
		if c := n.NamedCount(at); c > 0 {
			node.Named = make([]irep.Named, c)
			for i := range node.Named {
				k, v := n.Named(at, i)
				node.Named[i] = irep.Named{Key: k.Atom, Value: n.trees[v.Number]}
			}
		}
		n.trees = append(n.trees, node)
	}
	return n.trees[nn.Number]
}
