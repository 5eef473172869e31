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

// Package fault holds the error primitives shared by the goto binary
// packages: constant sentinel errors and a simple error collector.
//
// Format violations in gbf, cycles and unknown numbers in the numbering
// engine are all Const values. They are wrapped with github.com/pkg/errors
// as they travel up. Callers compare errors.Cause(err) against the constant.
package fault

// Const is the type for constant error values.
type Const string

// Error returns the message of the constant.
func (e Const) Error() string { return string(e) }
