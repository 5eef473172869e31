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
	"fmt"
	"strings"
)

// SymbolFlags is a set of symbol properties. Bit positions match the flag
// word of a goto binary symbol record.
type SymbolFlags uint32

const (
	IsVolatile SymbolFlags = 1 << iota
	IsExtern
	IsFileLocal
	IsThreadLocal
	IsStaticLifetime
	IsLvalue
	reservedBinding
	IsAuxiliary
	IsParameter
	IsStateVar
	IsOutput
	IsInput
	IsExported
	IsMacro
	IsProperty
	IsType
	IsWeak
)

// ValidFlags holds every defined flag bit.
const ValidFlags = (IsWeak<<1 - 1) &^ reservedBinding

var flagNames = []struct {
	flag SymbolFlags
	name string
}{
	{IsVolatile, "is_volatile"},
	{IsExtern, "is_extern"},
	{IsFileLocal, "is_file_local"},
	{IsThreadLocal, "is_thread_local"},
	{IsStaticLifetime, "is_static_lifetime"},
	{IsLvalue, "is_lvalue"},
	{IsAuxiliary, "is_auxiliary"},
	{IsParameter, "is_parameter"},
	{IsStateVar, "is_state_var"},
	{IsOutput, "is_output"},
	{IsInput, "is_input"},
	{IsExported, "is_exported"},
	{IsMacro, "is_macro"},
	{IsProperty, "is_property"},
	{IsType, "is_type"},
	{IsWeak, "is_weak"},
}

// Has returns true if every flag in f is set.
func (s SymbolFlags) Has(f SymbolFlags) bool { return s&f == f }

// Set returns s with the flags in f set.
func (s SymbolFlags) Set(f SymbolFlags) SymbolFlags { return s | f }

// Clear returns s with the flags in f cleared.
func (s SymbolFlags) Clear(f SymbolFlags) SymbolFlags { return s &^ f }

// Names returns the names of the set flags in bit order.
func (s SymbolFlags) Names() []string {
	var out []string
	for _, f := range flagNames {
		if s.Has(f.flag) {
			out = append(out, f.name)
		}
	}
	return out
}

func (s SymbolFlags) String() string {
	if s == 0 {
		return "none"
	}
	names := s.Names()
	if extra := s &^ ValidFlags; extra != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(extra)))
	}
	return strings.Join(names, "|")
}

// ParseSymbolFlag returns the flag with the given name.
func ParseSymbolFlag(name string) (SymbolFlags, error) {
	for _, f := range flagNames {
		if f.name == name {
			return f.flag, nil
		}
	}
	return 0, fmt.Errorf("Unknown symbol flag %q", name)
}

// Symbol is a named entry of a SymbolTable.
type Symbol struct {
	Type     *Node
	Value    *Node
	Location *Node

	Name       Atom
	Module     Atom
	BaseName   Atom
	Mode       Atom
	PrettyName Atom

	Flags SymbolFlags
}

// NewSymbol returns a symbol with the given name and empty trees.
func NewSymbol(name Atom) *Symbol {
	return &Symbol{
		Type:     Nil(),
		Value:    Nil(),
		Location: Nil(),
		Name:     name,
	}
}

// Equal returns true if s and o have equal trees, atoms and flags.
func (s *Symbol) Equal(o *Symbol) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Name == o.Name &&
		s.Module == o.Module &&
		s.BaseName == o.BaseName &&
		s.Mode == o.Mode &&
		s.PrettyName == o.PrettyName &&
		s.Flags == o.Flags &&
		s.Type.Equal(o.Type) &&
		s.Value.Equal(o.Value) &&
		s.Location.Equal(o.Location)
}
