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

// Package numbering assigns content addressed numbers to atoms and trees.
//
// A Numbering gives two values the same number if and only if they have the
// same content. Atoms are numbered by their text. A node is numbered by its
// key, the flat list of numbers
//
//   id, len(sub), sub[0], ..., sub[n-1], len(named), key[0], value[0], ..., key[m-1], value[m-1]
//
// where id and the named keys are atom numbers and the children are node
// numbers. Children are always numbered before their parent, so a node's
// number is greater than the number of any node in its key.
//
// The keys of all numbered nodes are concatenated in a single append-only
// slice. A NumberedNode is the pair of its number and the offset of its key
// in that slice, so reading the structure of a numbered node never decodes
// anything.
//
// Numbers are dense and start at zero, separately for atoms and nodes. They
// are only meaningful for the Numbering that assigned them.
package numbering
