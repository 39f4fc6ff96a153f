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

// Package allocbounds implements the allocation-bounds inference pass
// (spec.md §4.8): for every Realize node, it asks a touched-box oracle
// how much of the buffer the realized stage actually reads or writes,
// widens that against any box an extern stage requires, and wraps the
// (recursively processed) body in per-dimension LetStmt bindings that
// later lowering can consume.
//
// Grounded on original_source/src/AllocationBoundsInference.cpp: this
// is a straight IRMutator subclass there, walking the whole statement
// tree and rewriting only the Realize nodes it finds. This package
// follows the same shape, adapted to the tree-rewriter style the rest
// of this module uses (an explicit recursive visit function returning
// a new Stmt, rather than a mutator object with a mutable `stmt`
// field).
package allocbounds

import (
	"github.com/gx-org/halide-simplify/diag"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/simplify"
)

// Box is a touched region: one Interval per dimension of a buffer, in
// the same order as the buffer's Realize.Bounds and the owning
// function's argument list.
type Box []ir.Interval

// FuncInfo describes the pieces of a Halide-level function definition
// this pass needs. Args names the function's dimensions in bounds
// order; a Realize's i'th LetStmt trio is named "<name>.<Args[i]>.*".
// ExternDefinition and ExternInputs supplement spec.md §4.8 step 2,
// which needs to know which buffers are touched by an extern stage
// either as the stage's own output (ExternDefinition) or as one of its
// inputs (an entry in some other function's ExternInputs).
type FuncInfo struct {
	Args             []string
	ExternDefinition bool
	ExternInputs     []string
}

// TouchedBoxOracle computes the region of buffer name actually
// touched (read or written) by body. Sound but not necessarily tight:
// spec.md §4.8 step 1 only requires that the returned Box contain
// every access the pass needs to account for. ndims is the number of
// dimensions the caller expects back (op.Bounds' length), so the
// oracle can still return a well-formed, fully-undefined Box for a
// buffer body never actually touches.
type TouchedBoxOracle interface {
	BoxTouched(body ir.Stmt, name string, ndims int) Box
}

// Infer runs the allocation-bounds inference pass over s. funcs maps
// every Halide-level function name appearing in the tree to its
// FuncInfo; touched supplies the per-Realize touched-box analysis;
// cfg controls the simplify calls used to fold each emitted bound
// expression (spec.md §4.8 step 3 "simplify(...)").
func Infer(s ir.Stmt, funcs map[string]FuncInfo, touched TouchedBoxOracle, cfg simplify.Config) (ir.Stmt, error) {
	if touched == nil {
		return nil, diag.Errorf("allocbounds.Infer: touched-box oracle is nil")
	}
	externTouched := externallyTouchedNames(funcs)
	w := &walker{funcs: funcs, touched: touched, externTouched: externTouched, cfg: cfg}
	return w.stmt(s)
}

// externallyTouchedNames collects every buffer name that an extern
// stage either defines or reads, mirroring the constructor loop in
// original_source/src/AllocationBoundsInference.cpp that populates
// touched_by_extern before the mutator runs.
func externallyTouchedNames(funcs map[string]FuncInfo) map[string]bool {
	out := map[string]bool{}
	for name, info := range funcs {
		if !info.ExternDefinition {
			continue
		}
		out[name] = true
		for _, input := range info.ExternInputs {
			out[input] = true
		}
	}
	return out
}

type walker struct {
	funcs         map[string]FuncInfo
	touched       TouchedBoxOracle
	externTouched map[string]bool
	cfg           simplify.Config
}

func (w *walker) stmt(s ir.Stmt) (ir.Stmt, error) {
	if s == nil {
		return nil, nil
	}
	switch n := s.(type) {
	case *ir.LetStmt:
		body, err := w.stmt(n.Body)
		if err != nil {
			return nil, err
		}
		return ir.MakeLetStmt(n.Name, n.Value, body), nil
	case *ir.AssertStmt:
		return n, nil
	case *ir.Pipeline:
		stages := make([]ir.Stmt, len(n.Stages))
		for i, stage := range n.Stages {
			mutated, err := w.stmt(stage)
			if err != nil {
				return nil, err
			}
			stages[i] = mutated
		}
		return ir.MakePipeline(stages), nil
	case *ir.For:
		body, err := w.stmt(n.Body)
		if err != nil {
			return nil, err
		}
		return ir.MakeFor(n.Name, n.Min, n.Extent, n.Kind, body), nil
	case *ir.Store:
		return n, nil
	case *ir.Provide:
		return n, nil
	case *ir.Allocate:
		body, err := w.stmt(n.Body)
		if err != nil {
			return nil, err
		}
		return ir.MakeAllocate(n.Name, n.Typ, n.Extents, body), nil
	case *ir.Realize:
		return w.realize(n)
	case *ir.Block:
		first, err := w.stmt(n.First)
		if err != nil {
			return nil, err
		}
		rest, err := w.stmt(n.Rest)
		if err != nil {
			return nil, err
		}
		return ir.MakeBlock(first, rest), nil
	default:
		return nil, diag.Internal(diag.Errorf("allocbounds: unhandled statement type %T", s))
	}
}

// realize implements spec.md §4.8's three steps for a single Realize
// node.
func (w *walker) realize(op *ir.Realize) (ir.Stmt, error) {
	info, ok := w.funcs[op.Name]
	if !ok {
		return nil, diag.Errorf("allocbounds: no FuncInfo for realized buffer %q", op.Name)
	}
	if len(info.Args) != len(op.Bounds) {
		return nil, diag.Internal(diag.Errorf(
			"allocbounds: %q has %d dimension names but %d realize bounds", op.Name, len(info.Args), len(op.Bounds)))
	}

	b := w.touched.BoxTouched(op.Body, op.Name, len(op.Bounds))
	if len(b) != len(op.Bounds) {
		return nil, diag.Internal(diag.Errorf(
			"allocbounds: touched-box oracle returned %d dimensions for %q, want %d", len(b), op.Name, len(op.Bounds)))
	}

	if w.externTouched[op.Name] {
		i32 := ir.Int32Type
		required := make(Box, len(op.Bounds))
		for i, arg := range info.Args {
			prefix := op.Name + ".s0." + arg
			required[i] = ir.Interval{
				Min: ir.MakeVariable(prefix+".min", i32),
				Max: ir.MakeVariable(prefix+".max", i32),
			}
		}
		b = mergeBoxes(b, required)
	}

	newBody, err := w.stmt(op.Body)
	if err != nil {
		return nil, err
	}
	stmt := ir.Stmt(ir.MakeRealize(op.Name, op.Types, op.Bounds, newBody))

	for i := len(b) - 1; i >= 0; i-- {
		prefix := op.Name + "." + info.Args[i]
		lo := simplify.Expr(b[i].Min, w.cfg)
		hi := simplify.Expr(b[i].Max, w.cfg)
		i32 := ir.Int32Type
		extent := simplify.Expr(ir.MakeAdd(ir.MakeSub(hi, lo), ir.MakeIntImm(i32, 1)), w.cfg)
		stmt = ir.MakeLetStmt(prefix+".extent_realized", extent, stmt)
		stmt = ir.MakeLetStmt(prefix+".min_realized", lo, stmt)
		stmt = ir.MakeLetStmt(prefix+".max_realized", hi, stmt)
	}
	return stmt, nil
}

// mergeBoxes widens each dimension of b to also cover required,
// taking the pointwise min of the lower bounds and the pointwise max
// of the upper bounds. This is the Go-native reading of
// original_source's merge_boxes, which mutates b's Interval in place;
// here it returns a new Box since IR nodes and Boxes are immutable.
// required's endpoints are always defined (they are fresh Variable
// references); b's may not be, when the touched-box oracle found no
// access at all on some dimension, so an undefined b endpoint simply
// falls back to the corresponding required endpoint rather than
// building a Min/Max node over a nil operand.
func mergeBoxes(b, required Box) Box {
	out := make(Box, len(b))
	for i := range b {
		lo := required[i].Min
		if b[i].Min != nil {
			lo = ir.MakeMin(b[i].Min, required[i].Min)
		}
		hi := required[i].Max
		if b[i].Max != nil {
			hi = ir.MakeMax(b[i].Max, required[i].Max)
		}
		out[i] = ir.Interval{Min: lo, Max: hi}
	}
	return out
}
