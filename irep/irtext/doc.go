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

// Package irtext reads and writes symbol tables as YAML.
//
// A document holds a list of symbols:
//
//	symbols:
//	  - name: main::x
//	    module: main
//	    base_name: x
//	    flags: [is_static_lifetime, is_lvalue]
//	    type:
//	      id: signedbv
//	      named:
//	        - width: "32"
//	    location: {id: "", named: [{file: main.c}, {line: "3"}]}
//
// A tree with no children is written as its id alone. Otherwise it is a
// mapping with an id, an optional list of positional children under sub and
// an optional list of single entry mappings under named, which keeps the
// order of named children and allows repeated keys. Omitted trees are
// irep.Nil(). Text that is not valid UTF-8 is written as !!binary.
package irtext
