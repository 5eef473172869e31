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

// Package varint implements the variable length unsigned integer encoding
// used by goto binary streams.
//
// An unsigned integer is written least significant group first, seven bits
// per byte. The most significant bit of every byte is a continuation flag: it
// is set when more bytes follow and clear on the final byte.
//
// For example, the number 300 (binary 1 0010 1100) is encoded as:
//
//   0xAC 0x02
//   │    └─ 0000010: bits 7..13, no continuation
//   └────── 1 0101100: bits 0..6, continuation
//
// Values up to 64 bits wide are supported. Decoding fails with ErrOverflow if
// an encoding carries more significant bits than fit in a uint64, and with
// io.ErrUnexpectedEOF if the input ends before the final byte.
//
// Reader and Writer follow a sticky error model: once an operation fails,
// every following operation is a no-op returning zero values, and Error
// returns the first failure.
package varint
