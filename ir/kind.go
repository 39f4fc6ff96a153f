// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ir defines the Halide-style intermediate representation the
// simplifier rewrites: a tagged-variant tree of immutable, shared
// expression and statement nodes (spec.md §3).
//
// This is a fresh package rather than an adaptation of the teacher's
// build/ir: that package is ~2,700 lines of GX-specific type checking,
// generics instantiation and struct-field tracking with no sensible
// target domain here (an arithmetic-IR simplifier has no structs,
// generics, or named types to check). What transfers is the *shape* of
// the package: a closed Kind enum (build/ir/kind.go), a Node marker
// interface preventing external implementations (build/ir/ir.go), one
// factory per node kind performing minimal structural validation
// (build/ir/ir.go's Make* functions), and per-variant String() methods
// (build/ir/string.go). See DESIGN.md for the per-dep disposition.
package ir

// Kind is the scalar data-kind of a Type (spec.md §3.1).
type Kind int

// The four kinds an expression's Type can carry.
const (
	Int Kind = iota
	UInt
	Float
	Handle
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Float:
		return "float"
	case Handle:
		return "handle"
	default:
		return "invalid"
	}
}

// IsInt reports whether the kind is a signed or unsigned integer kind.
func (k Kind) IsInt() bool {
	return k == Int || k == UInt
}
