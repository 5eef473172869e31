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
	"github.com/model-checking/rmc/irep"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// node is the YAML form of a tree.
type node struct {
	*irep.Node
}

// newNode returns the YAML form of n, or nil if n is the empty tree.
func newNode(n *irep.Node) *node {
	if n.IsNil() {
		return nil
	}
	return &node{n}
}

func (n *node) tree() *irep.Node {
	if n == nil || n.Node == nil {
		return irep.Nil()
	}
	return n.Node
}

func (n node) MarshalYAML() (interface{}, error) {
	return encodeNode(n.Node), nil
}

func encodeNode(n *irep.Node) *yaml.Node {
	n = irep.OrNil(n)
	if len(n.Sub) == 0 && len(n.Named) == 0 {
		return scalar(n.ID)
	}
	out := &yaml.Node{Kind: yaml.MappingNode}
	out.Content = append(out.Content, scalar("id"), scalar(n.ID))
	if len(n.Sub) > 0 {
		sub := &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range n.Sub {
			sub.Content = append(sub.Content, encodeNode(s))
		}
		out.Content = append(out.Content, scalar("sub"), sub)
	}
	if len(n.Named) > 0 {
		named := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range n.Named {
			named.Content = append(named.Content, &yaml.Node{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{scalar(c.Key), encodeNode(c.Value)},
			})
		}
		out.Content = append(out.Content, scalar("named"), named)
	}
	return out
}

func (n *node) UnmarshalYAML(v *yaml.Node) error {
	tree, err := decodeNode(v)
	n.Node = tree
	return err
}

func decodeNode(v *yaml.Node) (*irep.Node, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		id, err := text(v)
		if err != nil {
			return nil, err
		}
		return irep.New(id), nil
	case yaml.MappingNode:
	default:
		return nil, errors.Errorf("line %d: expected a tree", v.Line)
	}

	out, hasID := &irep.Node{}, false
	for i := 0; i+1 < len(v.Content); i += 2 {
		key, value := v.Content[i], v.Content[i+1]
		var err error
		switch key.Value {
		case "id":
			out.ID, err = text(value)
			hasID = true
		case "sub":
			out.Sub, err = decodeSub(value)
		case "named":
			out.Named, err = decodeNamed(value)
		default:
			err = errors.Errorf("line %d: unknown tree field %q", key.Line, key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if !hasID {
		return nil, errors.Errorf("line %d: tree has no id", v.Line)
	}
	return out, nil
}

func decodeSub(v *yaml.Node) ([]*irep.Node, error) {
	if v.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("line %d: sub must be a list", v.Line)
	}
	out := make([]*irep.Node, len(v.Content))
	for i, c := range v.Content {
		s, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeNamed(v *yaml.Node) ([]irep.Named, error) {
	if v.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("line %d: named must be a list", v.Line)
	}
	out := make([]irep.Named, len(v.Content))
	for i, c := range v.Content {
		if c.Kind != yaml.MappingNode || len(c.Content) != 2 {
			return nil, errors.Errorf("line %d: named child must be a single key mapping", c.Line)
		}
		key, err := text(c.Content[0])
		if err != nil {
			return nil, err
		}
		value, err := decodeNode(c.Content[1])
		if err != nil {
			return nil, err
		}
		out[i] = irep.Named{Key: key, Value: value}
	}
	return out, nil
}
