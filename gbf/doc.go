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

// Package gbf reads and writes the goto binary format, version 5.
//
// A stream holds a header, a table of symbols and an empty function map.
// Every atom and node reference is written as a number. The first time a
// number appears in a stream its contents follow; later occurrences are the
// number alone, so the size of a stream grows with the number of distinct
// nodes rather than with the number of references to them.
//
// Writer and Reader each own a numbering.Numbering. The numbers in a stream
// are the writer's; the reader maps them onto its own numbering, so the two
// sides only need to agree on content.
package gbf
