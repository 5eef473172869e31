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

package irtext

import (
	"encoding/base64"
	"io"
	"unicode/utf8"

	"github.com/model-checking/rmc/irep"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	strTag    = "!!str"
	binaryTag = "!!binary"
)

type document struct {
	Symbols []symbol `yaml:"symbols"`
}

type symbol struct {
	Name       atom     `yaml:"name"`
	Module     atom     `yaml:"module,omitempty"`
	BaseName   atom     `yaml:"base_name,omitempty"`
	Mode       atom     `yaml:"mode,omitempty"`
	PrettyName atom     `yaml:"pretty_name,omitempty"`
	Flags      []string `yaml:"flags,omitempty,flow"`
	Type       *node    `yaml:"type,omitempty"`
	Value      *node    `yaml:"value,omitempty"`
	Location   *node    `yaml:"location,omitempty"`
}

// Decode reads a symbol table from r.
func Decode(r io.Reader) (*irep.SymbolTable, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	var doc document
	if err := d.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Decoding symbol table")
	}
	t := irep.NewSymbolTable()
	for _, s := range doc.Symbols {
		if _, dup := t.Lookup(irep.Atom(s.Name)); dup {
			return nil, errors.Errorf("Duplicate symbol %q", s.Name)
		}
		out := &irep.Symbol{
			Name:       irep.Atom(s.Name),
			Module:     irep.Atom(s.Module),
			BaseName:   irep.Atom(s.BaseName),
			Mode:       irep.Atom(s.Mode),
			PrettyName: irep.Atom(s.PrettyName),
			Type:       s.Type.tree(),
			Value:      s.Value.tree(),
			Location:   s.Location.tree(),
		}
		for _, name := range s.Flags {
			f, err := irep.ParseSymbolFlag(name)
			if err != nil {
				return nil, errors.Wrapf(err, "Symbol %q", s.Name)
			}
			out.Flags = out.Flags.Set(f)
		}
		t.Add(out)
	}
	return t, nil
}

// Encode writes t to w, symbols in name order.
func Encode(w io.Writer, t *irep.SymbolTable) error {
	doc := document{Symbols: []symbol{}}
	for _, s := range t.Symbols() {
		doc.Symbols = append(doc.Symbols, symbol{
			Name:       atom(s.Name),
			Module:     atom(s.Module),
			BaseName:   atom(s.BaseName),
			Mode:       atom(s.Mode),
			PrettyName: atom(s.PrettyName),
			Flags:      s.Flags.Names(),
			Type:       newNode(s.Type),
			Value:      newNode(s.Value),
			Location:   newNode(s.Location),
		})
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(doc); err != nil {
		return errors.Wrap(err, "Encoding symbol table")
	}
	return errors.Wrap(e.Close(), "Encoding symbol table")
}

// atom is text that round trips through YAML even when it is not UTF-8.
type atom irep.Atom

func (a atom) MarshalYAML() (interface{}, error) {
	return scalar(irep.Atom(a)), nil
}

func (a *atom) UnmarshalYAML(v *yaml.Node) error {
	s, err := text(v)
	*a = atom(s)
	return err
}

func scalar(a irep.Atom) *yaml.Node {
	if !utf8.ValidString(string(a)) {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   binaryTag,
			Value: base64.StdEncoding.EncodeToString([]byte(a)),
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: string(a)}
}

// text returns the text of a scalar. Scalars of any tag are taken verbatim
// except !!binary, which is base64 decoded.
func text(v *yaml.Node) (irep.Atom, error) {
	if v.Kind != yaml.ScalarNode {
		return "", errors.Errorf("line %d: expected text", v.Line)
	}
	if v.Tag != binaryTag {
		return irep.Atom(v.Value), nil
	}
	data, err := base64.StdEncoding.DecodeString(v.Value)
	if err != nil {
		return "", errors.Wrapf(err, "line %d", v.Line)
	}
	return irep.Atom(data), nil
}
