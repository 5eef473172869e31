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

package gbf

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Sharing summarizes how often the numbers of one kind were referenced in a
// stream. Numbers that were never referenced are not counted.
type Sharing struct {
	// Distinct is the number of distinct numbers referenced.
	Distinct uint64
	// References is the total number of references.
	References uint64
	// Min and Max are the smallest and largest reference counts, and
	// MinNumber and MaxNumber the lowest numbers that reached them.
	Min, MinNumber uint64
	Max, MaxNumber uint64
}

// Average returns the mean number of references per distinct number.
func (s Sharing) Average() float64 {
	if s.Distinct == 0 {
		return 0
	}
	return float64(s.References) / float64(s.Distinct)
}

func (s *Sharing) add(number, count uint64) {
	if count == 0 {
		return
	}
	if s.Distinct == 0 || count < s.Min || (count == s.Min && number < s.MinNumber) {
		s.Min, s.MinNumber = count, number
	}
	if s.Distinct == 0 || count > s.Max || (count == s.Max && number < s.MaxNumber) {
		s.Max, s.MaxNumber = count, number
	}
	s.Distinct++
	s.References += count
}

func (s Sharing) fields() map[string]interface{} {
	return map[string]interface{}{
		"distinct":   s.Distinct,
		"references": s.References,
		"min":        s.Min,
		"min_number": s.MinNumber,
		"max":        s.Max,
		"max_number": s.MaxNumber,
		"average":    s.Average(),
	}
}

// Stats describes one read or write session.
type Stats struct {
	// Symbols is the number of symbol records processed.
	Symbols int
	// Atoms and Nodes summarize the references in the stream.
	Atoms Sharing
	Nodes Sharing
	// EngineAtoms, EngineNodes and KeyWords are the sizes of the numbering
	// used by the session.
	EngineAtoms int
	EngineNodes int
	KeyWords    int
	// Bytes is the number of bytes written or read.
	Bytes int64
}

// Proto returns the stats as a protobuf Struct, ready for JSON export.
func (s Stats) Proto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"symbols": s.Symbols,
		"atoms":   s.Atoms.fields(),
		"nodes":   s.Nodes.fields(),
		"numbering": map[string]interface{}{
			"atoms":     s.EngineAtoms,
			"nodes":     s.EngineNodes,
			"key_words": s.KeyWords,
		},
		"bytes": s.Bytes,
	})
}
