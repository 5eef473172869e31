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
	"sort"

	"golang.org/x/exp/maps"
)

// SymbolTable is a set of symbols keyed by name.
type SymbolTable struct {
	symbols map[Atom]*Symbol
}

// NewSymbolTable returns a new table holding the given symbols.
func NewSymbolTable(symbols ...*Symbol) *SymbolTable {
	t := &SymbolTable{symbols: map[Atom]*Symbol{}}
	for _, s := range symbols {
		t.Add(s)
	}
	return t
}

// Add inserts s, replacing any symbol with the same name.
func (t *SymbolTable) Add(s *Symbol) {
	if t.symbols == nil {
		t.symbols = map[Atom]*Symbol{}
	}
	t.symbols[s.Name] = s
}

// Lookup returns the symbol with the given name.
func (t *SymbolTable) Lookup(name Atom) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int { return len(t.symbols) }

// Names returns the symbol names in ascending order.
func (t *SymbolTable) Names() []Atom {
	names := maps.Keys(t.symbols)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Symbols returns the symbols ordered by name.
func (t *SymbolTable) Symbols() []*Symbol {
	names := t.Names()
	out := make([]*Symbol, len(names))
	for i, n := range names {
		out[i] = t.symbols[n]
	}
	return out
}

// Equal returns true if t and o hold equal symbols under the same names.
func (t *SymbolTable) Equal(o *SymbolTable) bool {
	if t.Len() != o.Len() {
		return false
	}
	for name, s := range t.symbols {
		if !s.Equal(o.symbols[name]) {
			return false
		}
	}
	return true
}
