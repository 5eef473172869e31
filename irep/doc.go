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

// Package irep holds the labeled tree model persisted by goto binaries.
//
// A Node has an identifying Atom, an ordered list of positional children and
// an ordered list of named children. Named children are not a map: their
// order is significant and the same key may appear more than once.
//
// Symbols attach three trees (type, value and source location) and a handful
// of atoms and flags to a name. A SymbolTable is the unit that is serialized.
package irep
