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

package allocbounds_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/allocbounds"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/simplify"
)

func TestInferWrapsRealizeWithBoundLetStmts(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	// f(x) = x*2, written for x in [0, 8): the touched box is [0,7].
	provide := ir.MakeProvide("f", []ir.Expr{x}, []ir.Expr{ir.MakeMul(x, ir.MakeIntImm(i32, 2))})
	loop := ir.MakeFor("x", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 8), ir.Serial, provide)
	realize := ir.MakeRealize("f", []ir.Type{i32}, []ir.Interval{{}}, loop)

	funcs := map[string]allocbounds.FuncInfo{
		"f": {Args: []string{"x"}},
	}
	oracle := &allocbounds.ProvideOracle{}

	got, err := allocbounds.Infer(realize, funcs, oracle, simplify.Config{RemoveDeadLets: true})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	maxLet, ok := got.(*ir.LetStmt)
	if !ok || maxLet.Name != "f.x.max_realized" {
		t.Fatalf("expected outermost binding f.x.max_realized, got %#v", got)
	}
	minLet, ok := maxLet.Body.(*ir.LetStmt)
	if !ok || minLet.Name != "f.x.min_realized" {
		t.Fatalf("expected f.x.min_realized nested inside, got %#v", maxLet.Body)
	}
	extentLet, ok := minLet.Body.(*ir.LetStmt)
	if !ok || extentLet.Name != "f.x.extent_realized" {
		t.Fatalf("expected f.x.extent_realized innermost, got %#v", minLet.Body)
	}
	if _, ok := extentLet.Body.(*ir.Realize); !ok {
		t.Fatalf("expected the Realize node innermost, got %T", extentLet.Body)
	}
}

func TestInferMergesExternRequiredBox(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	provide := ir.MakeProvide("f", []ir.Expr{x}, []ir.Expr{x})
	body := ir.MakeFor("x", ir.MakeIntImm(i32, 2), ir.MakeIntImm(i32, 3), ir.Serial, provide)
	realize := ir.MakeRealize("f", []ir.Type{i32}, []ir.Interval{{}}, body)

	funcs := map[string]allocbounds.FuncInfo{
		"f": {Args: []string{"x"}, ExternDefinition: true},
	}
	oracle := &allocbounds.ProvideOracle{}

	got, err := allocbounds.Infer(realize, funcs, oracle, simplify.Config{})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	maxLet, ok := got.(*ir.LetStmt)
	if !ok || maxLet.Name != "f.x.max_realized" {
		t.Fatalf("expected f.x.max_realized outermost, got %#v", got)
	}
	// The touched box [2,4] (from the loop's min 2 and extent 3) must be
	// widened against the extern-required box, not replaced by it: an
	// extern-touched buffer needs at least the region the first stage's
	// loop level requires, on top of whatever this stage itself writes.
	wantMax := ir.MakeMax(ir.MakeIntImm(i32, 4), ir.MakeVariable("f.s0.x.max", i32))
	if !ir.Equal(maxLet.Value, wantMax) {
		t.Errorf("f.x.max_realized: got %s, want %s", maxLet.Value, wantMax)
	}
	minLet, ok := maxLet.Body.(*ir.LetStmt)
	if !ok || minLet.Name != "f.x.min_realized" {
		t.Fatalf("expected f.x.min_realized nested inside, got %#v", maxLet.Body)
	}
	wantMin := ir.MakeMin(ir.MakeIntImm(i32, 2), ir.MakeVariable("f.s0.x.min", i32))
	if !ir.Equal(minLet.Value, wantMin) {
		t.Errorf("f.x.min_realized: got %s, want %s", minLet.Value, wantMin)
	}
}

func TestInferRejectsUnknownBuffer(t *testing.T) {
	i32 := ir.Int32Type
	realize := ir.MakeRealize("f", []ir.Type{i32}, []ir.Interval{{}}, ir.MakeStore("buf", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 1)))
	_, err := allocbounds.Infer(realize, map[string]allocbounds.FuncInfo{}, &allocbounds.ProvideOracle{}, simplify.Config{})
	if err == nil {
		t.Fatalf("expected an error for a realize with no FuncInfo")
	}
}
