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

// Package simplify is the bottom-up rewrite engine (spec.md §4.1-4.7,
// component #6 in §2, ~55% of the system). It walks an expression or
// statement tree, simplifying children before attempting rewrites on
// the resulting node (spec.md §4.1: "first simplifies children, then
// tries rewrites"), and rebuilds a node only when a child actually
// changed so that `same_as` identity is preserved on fixed points
// (spec.md §3.5, §8 property 3).
//
// Grounded on internal/interp/canonical/canonical.go's Simplifier
// (sorted-operand canonical arithmetic over a small closed set of node
// kinds, one visit method per kind) and on
// original_source/src/Simplify.cpp's rule catalogue, restated as Go
// type-switch dispatch (spec.md §9 "Variant dispatch").
//
// spec.md §9 notes an explicit work-stack is *acceptable* in place of
// native recursion "on hostile inputs [where] native call stacks can
// blow up"; it does not mandate one, and Go's goroutine stacks grow
// on demand rather than being fixed-size, so a depth-1,000 adversarial
// input (spec.md §8 property 4) completes on ordinary recursion
// without a bespoke work-stack. This implementation therefore walks
// the tree with plain recursive descent, the same choice
// internal/interp/canonical/canonical.go makes for its own (much
// shallower) trees.
package simplify

import (
	"github.com/gx-org/halide-simplify/boundsanalysis"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/modrem"
	"github.com/gx-org/halide-simplify/scope"
)

// VarInfo is var_info's per-binder payload (spec.md §4.2): the
// expression to substitute for the variable, if let-peeling produced
// one, plus usage counters read back after the body is simplified
// (spec.md §4.4 step 5).
type VarInfo struct {
	Replacement ir.Expr
	OldUses     int
	NewUses     int
	// Shadow points at the peeled shadow binding's own VarInfo (spec.md
	// §4.4 step 2's "n.s"), when Replacement syntactically mentions it.
	// Substituting Replacement for a use of n is itself a use of n.s,
	// which visitVariable would otherwise never observe since
	// Replacement is spliced in directly rather than re-walked.
	Shadow *VarInfo
}

// simplifier owns the three scopes a traversal maintains (spec.md
// §4.2) plus the pass configuration. It is created fresh per call to
// Expr/Stmt so that no state or cache escapes a single traversal
// (spec.md §5, §9 "Simplifier as library").
type simplifier struct {
	cfg    Config
	vars   *scope.Stack[VarInfo]
	align  *scope.Stack[modrem.Info]
	bounds *scope.Stack[boundsanalysis.Interval]
}

func newSimplifier(cfg Config) *simplifier {
	return &simplifier{
		cfg:    cfg,
		vars:   scope.New[VarInfo](),
		align:  scope.New[modrem.Info](),
		bounds: scope.New[boundsanalysis.Interval](),
	}
}

// Expr simplifies e (spec.md §4.1 entry point `simplify(expr, bool)`).
func Expr(e ir.Expr, cfg Config) ir.Expr {
	return newSimplifier(cfg).expr(e)
}

// Stmt simplifies s (spec.md §4.1 entry point `simplify(stmt, bool)`).
func Stmt(s ir.Stmt, cfg Config) ir.Stmt {
	return newSimplifier(cfg).stmt(s)
}

// changed reports whether the simplified child differs by identity
// from the original, the test the "rebuild only if a child changed"
// branch (spec.md §4.3) is built on.
func changed(simplified, original ir.Expr) bool {
	return !ir.SameAs(simplified, original)
}

func stmtChanged(simplified, original ir.Stmt) bool {
	return !ir.SameAs(simplified, original)
}

// expr simplifies children first, then dispatches to the per-kind
// rule table (spec.md §4.1, §4.3).
func (s *simplifier) expr(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ir.IntImm:
		return n
	case *ir.FloatImm:
		return n
	case *ir.Variable:
		return s.visitVariable(n)
	case *ir.Cast:
		return s.visitCast(n)
	case *ir.Add:
		return s.visitAdd(n)
	case *ir.Sub:
		return s.visitSub(n)
	case *ir.Mul:
		return s.visitMul(n)
	case *ir.Div:
		return s.visitDiv(n)
	case *ir.Mod:
		return s.visitMod(n)
	case *ir.Min:
		return s.visitMin(n)
	case *ir.Max:
		return s.visitMax(n)
	case *ir.EQ:
		return s.visitEQ(n)
	case *ir.NE:
		return s.visitNE(n)
	case *ir.LT:
		return s.visitLT(n)
	case *ir.LE:
		return s.visitLE(n)
	case *ir.GT:
		return s.visitGT(n)
	case *ir.GE:
		return s.visitGE(n)
	case *ir.And:
		return s.visitAnd(n)
	case *ir.Or:
		return s.visitOr(n)
	case *ir.Not:
		return s.visitNot(n)
	case *ir.Select:
		return s.visitSelect(n)
	case *ir.Load:
		return s.visitLoad(n)
	case *ir.Ramp:
		return s.visitRamp(n)
	case *ir.Broadcast:
		return s.visitBroadcast(n)
	case *ir.Call:
		return s.visitCall(n)
	case *ir.Let:
		return s.visitLet(n)
	default:
		panic("simplify: unhandled expr variant, non-exhaustive dispatch")
	}
}

// stmt simplifies children first, then dispatches to the per-kind
// rule table (spec.md §4.6, §4.7).
func (s *simplifier) stmt(st ir.Stmt) ir.Stmt {
	if st == nil {
		return nil
	}
	switch n := st.(type) {
	case *ir.LetStmt:
		return s.visitLetStmt(n)
	case *ir.AssertStmt:
		return s.visitAssertStmt(n)
	case *ir.Pipeline:
		return s.visitPipeline(n)
	case *ir.For:
		return s.visitFor(n)
	case *ir.Store:
		return s.visitStore(n)
	case *ir.Provide:
		return s.visitProvide(n)
	case *ir.Allocate:
		return s.visitAllocate(n)
	case *ir.Realize:
		return s.visitRealize(n)
	case *ir.Block:
		return s.visitBlock(n)
	default:
		panic("simplify: unhandled stmt variant, non-exhaustive dispatch")
	}
}

func (s *simplifier) visitVariable(n *ir.Variable) ir.Expr {
	if ref, ok := s.vars.Ref(n.Name); ok {
		ref.OldUses++
		if ref.Replacement != nil {
			ref.NewUses++
			if ref.Shadow != nil {
				ref.Shadow.OldUses++
				ref.Shadow.NewUses++
			}
			return ref.Replacement
		}
	}
	return n
}
