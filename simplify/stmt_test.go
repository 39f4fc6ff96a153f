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

package simplify_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/simplify"
)

func TestAssertStmtAbortsOnStaticallyFalseCondition(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic for a statically-false assert")
		}
	}()
	simplify.Stmt(ir.MakeAssertStmt(ir.MakeIntImm(ir.BoolType, 0), "unreachable"), simplify.Config{})
}

func TestAssertStmtSurvivesUnknownCondition(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	in := ir.MakeAssertStmt(ir.MakeLT(x, ir.MakeIntImm(i32, 10)), "bound check")
	got := simplify.Stmt(in, simplify.Config{})
	if _, ok := got.(*ir.AssertStmt); !ok {
		t.Fatalf("expected the assert to survive, got %T", got)
	}
}

func TestForPushesLiteralBoundsForBody(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	// for x in [0, 8): assert(x < 8) is statically true inside the loop.
	body := ir.MakeAssertStmt(ir.MakeLT(x, ir.MakeIntImm(i32, 8)), "in range")
	loop := ir.MakeFor("x", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 8), ir.Serial, body)

	got := simplify.Stmt(loop, simplify.Config{})
	forStmt, ok := got.(*ir.For)
	if !ok {
		t.Fatalf("expected a For statement back, got %T", got)
	}
	inner, ok := forStmt.Body.(*ir.AssertStmt)
	if !ok {
		t.Fatalf("expected the assert to survive as the loop body, got %T", forStmt.Body)
	}
	if !ir.Equal(inner.Cond, ir.MakeIntImm(ir.BoolType, 1)) {
		t.Errorf("x<8 should fold to true under the loop's own [0,8) bound, got %s", inner.Cond)
	}
}

func TestBlockMergesIdenticalLetValues(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)

	a := ir.MakeVariable("a", i32)
	b := ir.MakeVariable("b", i32)
	// Both lets bind the same already-simplified value (x+1, shared
	// after peeling): the Block rule must collapse them into a single
	// outer binding instead of computing x+1 twice.
	first := ir.MakeLetStmt("a", ir.MakeAdd(x, ir.MakeIntImm(i32, 1)), ir.MakeStore("buf", a, a))
	second := ir.MakeLetStmt("b", ir.MakeAdd(x, ir.MakeIntImm(i32, 1)), ir.MakeStore("buf", b, b))
	block := ir.MakeBlock(first, second)

	got := simplify.Stmt(block, simplify.Config{RemoveDeadLets: true})
	outer, ok := got.(*ir.LetStmt)
	if !ok {
		t.Fatalf("expected the merged binding to surface as the outer LetStmt, got %T", got)
	}
	if !ir.Equal(outer.Value, x) {
		t.Errorf("expected the shared binding to carry the peeled value x, got %s", outer.Value)
	}
	if _, ok := outer.Body.(*ir.Block); !ok {
		t.Errorf("expected the two stores to survive under a Block, got %T", outer.Body)
	}
}

func TestPipelineSimplifiesEachStage(t *testing.T) {
	i32 := ir.Int32Type
	stageA := ir.MakeStore("a", ir.MakeIntImm(i32, 0), ir.MakeAdd(ir.MakeIntImm(i32, 1), ir.MakeIntImm(i32, 2)))
	stageB := ir.MakeStore("b", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 5))
	pipeline := ir.MakePipeline([]ir.Stmt{stageA, stageB})

	got := simplify.Stmt(pipeline, simplify.Config{})
	p, ok := got.(*ir.Pipeline)
	if !ok || len(p.Stages) != 2 {
		t.Fatalf("expected a two-stage Pipeline back, got %T", got)
	}
	first, ok := p.Stages[0].(*ir.Store)
	if !ok {
		t.Fatalf("stage 0: expected Store, got %T", p.Stages[0])
	}
	if !ir.Equal(first.Value, ir.MakeIntImm(i32, 3)) {
		t.Errorf("stage 0: 1+2 should fold to 3, got %s", first.Value)
	}
}

func TestProvideSimplifiesArgsAndValues(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	in := ir.MakeProvide("f",
		[]ir.Expr{ir.MakeAdd(x, ir.MakeIntImm(i32, 0))},
		[]ir.Expr{ir.MakeMul(x, ir.MakeIntImm(i32, 1))})

	got := simplify.Stmt(in, simplify.Config{})
	p, ok := got.(*ir.Provide)
	if !ok {
		t.Fatalf("expected a Provide back, got %T", got)
	}
	if !ir.Equal(p.Args[0], x) {
		t.Errorf("x+0 should fold to x, got %s", p.Args[0])
	}
	if !ir.Equal(p.Values[0], x) {
		t.Errorf("x*1 should fold to x, got %s", p.Values[0])
	}
}

func TestAllocateSimplifiesExtentsAndBody(t *testing.T) {
	i32 := ir.Int32Type
	extent := ir.MakeAdd(ir.MakeIntImm(i32, 3), ir.MakeIntImm(i32, 1))
	body := ir.MakeStore("buf", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 7))
	in := ir.MakeAllocate("buf", i32, []ir.Expr{extent}, body)

	got := simplify.Stmt(in, simplify.Config{})
	a, ok := got.(*ir.Allocate)
	if !ok {
		t.Fatalf("expected an Allocate back, got %T", got)
	}
	if !ir.Equal(a.Extents[0], ir.MakeIntImm(i32, 4)) {
		t.Errorf("3+1 extent should fold to 4, got %s", a.Extents[0])
	}
}

func TestRealizeSimplifiesBoundsAndBody(t *testing.T) {
	i32 := ir.Int32Type
	lo := ir.MakeSub(ir.MakeIntImm(i32, 5), ir.MakeIntImm(i32, 5))
	hi := ir.MakeAdd(ir.MakeIntImm(i32, 7), ir.MakeIntImm(i32, 0))
	body := ir.MakeStore("f", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 1))
	in := ir.MakeRealize("f", []ir.Type{i32}, []ir.Interval{{Min: lo, Max: hi}}, body)

	got := simplify.Stmt(in, simplify.Config{})
	r, ok := got.(*ir.Realize)
	if !ok {
		t.Fatalf("expected a Realize back, got %T", got)
	}
	if !ir.Equal(r.Bounds[0].Min, ir.MakeIntImm(i32, 0)) {
		t.Errorf("5-5 bound should fold to 0, got %s", r.Bounds[0].Min)
	}
	if !ir.Equal(r.Bounds[0].Max, ir.MakeIntImm(i32, 7)) {
		t.Errorf("7+0 bound should fold to 7, got %s", r.Bounds[0].Max)
	}
}

func TestLetStmtDeadElimination(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	in := ir.MakeLetStmt("n", ir.MakeAdd(x, ir.MakeIntImm(i32, 1)),
		ir.MakeStore("buf", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 1)))

	got := simplify.Stmt(in, simplify.Config{RemoveDeadLets: true})
	if _, ok := got.(*ir.Store); !ok {
		t.Fatalf("expected the dead let to be stripped down to the Store, got %T", got)
	}
}
