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

package ir

// ForKind is the execution kind of a For loop. spec.md §3.3 names only
// an opaque "kind"; original_source/src/AllocationBoundsInference.cpp
// and the wider Halide IR distinguish Serial/Parallel/Vectorized/
// Unrolled loops (SPEC_FULL.md "Supplemented features" #1). The
// simplifier's own rules (spec.md §4.6 For) do not vary by kind; it is
// carried through unchanged so that later lowering passes (out of
// scope here) can tell them apart.
type ForKind int

// The four loop execution kinds a For node can carry.
const (
	Serial ForKind = iota
	Parallel
	Vectorized
	Unrolled
)

func (k ForKind) String() string {
	switch k {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	case Vectorized:
		return "vectorized"
	case Unrolled:
		return "unrolled"
	default:
		return "invalid"
	}
}

// Interval is a per-dimension bound used by Realize (spec.md §3.3) and
// by the boundsanalysis oracle (spec.md §4.5). Either endpoint may be
// nil, meaning "unknown" (spec.md §4.5).
type Interval struct {
	Min, Max Expr
}

type (
	// LetStmt is a statement-level binding: "let Name = Value; Body".
	LetStmt struct {
		Name  string
		Value Expr
		Body  Stmt
	}

	// AssertStmt fails compilation if Cond is statically false
	// (spec.md §4.7).
	AssertStmt struct {
		Cond    Expr
		Message string
	}

	// Pipeline sequences the stages of a multi-stage compute.
	Pipeline struct {
		Stages []Stmt
	}

	// For loops Body over [Min, Min+Extent) under the given ForKind.
	For struct {
		Name        string
		Min, Extent Expr
		Kind        ForKind
		Body        Stmt
	}

	// Store writes Value to Name at Index.
	Store struct {
		Name  string
		Index Expr
		Value Expr
	}

	// Provide writes Values to the Halide function Name at Args.
	Provide struct {
		Name   string
		Args   []Expr
		Values []Expr
	}

	// Allocate reserves storage for Name of the given Type and Extents.
	Allocate struct {
		Name    string
		Typ     Type
		Extents []Expr
		Body    Stmt
	}

	// Realize computes Name's Bounds and runs Body inside them.
	Realize struct {
		Name   string
		Types  []Type
		Bounds []Interval
		Body   Stmt
	}

	// Block sequences First then, optionally, Rest.
	Block struct {
		First Stmt
		Rest  Stmt // nil if this is the last statement (spec.md §3.3 "rest?")
	}
)

func (*LetStmt) node()    {}
func (*AssertStmt) node() {}
func (*Pipeline) node()   {}
func (*For) node()        {}
func (*Store) node()      {}
func (*Provide) node()    {}
func (*Allocate) node()   {}
func (*Realize) node()    {}
func (*Block) node()      {}

func (*LetStmt) stmt()    {}
func (*AssertStmt) stmt() {}
func (*Pipeline) stmt()   {}
func (*For) stmt()        {}
func (*Store) stmt()      {}
func (*Provide) stmt()    {}
func (*Allocate) stmt()   {}
func (*Realize) stmt()    {}
func (*Block) stmt()      {}

// MakeLetStmt builds a statement-level Let.
func MakeLetStmt(name string, value Expr, body Stmt) *LetStmt {
	return &LetStmt{Name: name, Value: value, Body: body}
}

// MakeAssertStmt builds an AssertStmt.
func MakeAssertStmt(cond Expr, message string) *AssertStmt {
	return &AssertStmt{Cond: cond, Message: message}
}

// MakePipeline builds a Pipeline of stages.
func MakePipeline(stages []Stmt) *Pipeline {
	return &Pipeline{Stages: stages}
}

// MakeFor builds a For loop.
func MakeFor(name string, min, extent Expr, kind ForKind, body Stmt) *For {
	return &For{Name: name, Min: min, Extent: extent, Kind: kind, Body: body}
}

// MakeStore builds a Store.
func MakeStore(name string, index, value Expr) *Store {
	return &Store{Name: name, Index: index, Value: value}
}

// MakeProvide builds a Provide.
func MakeProvide(name string, args, values []Expr) *Provide {
	return &Provide{Name: name, Args: args, Values: values}
}

// MakeAllocate builds an Allocate.
func MakeAllocate(name string, t Type, extents []Expr, body Stmt) *Allocate {
	return &Allocate{Name: name, Typ: t, Extents: extents, Body: body}
}

// MakeRealize builds a Realize.
func MakeRealize(name string, types []Type, bounds []Interval, body Stmt) *Realize {
	return &Realize{Name: name, Types: types, Bounds: bounds, Body: body}
}

// MakeBlock builds a Block. rest may be nil.
func MakeBlock(first, rest Stmt) *Block {
	return &Block{First: first, Rest: rest}
}
