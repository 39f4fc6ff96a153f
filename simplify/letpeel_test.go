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

func TestLetConstFolds(t *testing.T) {
	i32 := ir.Int32Type
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }
	in := ir.MakeLet("n", lit(3), ir.MakeAdd(ir.MakeVariable("n", i32), lit(4)))
	want := lit(7)
	got := simplify.Expr(in, simplify.Config{RemoveDeadLets: true})
	if !ir.Equal(got, want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestLetDeadElimination(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }
	// let n = x+1 in 5, with n unused in the body.
	in := ir.MakeLet("n", ir.MakeAdd(x, lit(1)), lit(5))

	got := simplify.Expr(in, simplify.Config{RemoveDeadLets: true})
	if !ir.Equal(got, lit(5)) {
		t.Errorf("RemoveDeadLets=true: got %s, want %s", got, lit(5))
	}

	gotKept := simplify.Expr(in, simplify.Config{RemoveDeadLets: false})
	if _, ok := gotKept.(*ir.Let); !ok {
		t.Errorf("RemoveDeadLets=false: expected the dead Let to be kept, got %s", gotKept)
	}
}

func TestLetPeelSingleUseInlinesFully(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	vecValue := ir.MakeRamp(ir.MakeAdd(ir.MakeMul(x, lit(2)), lit(7)), lit(3), 4)
	vecUse := ir.MakeAdd(ir.MakeVariable("vec", vecValue.Type()), ir.MakeBroadcast(lit(2), 4))
	in := ir.MakeLet("vec", vecValue, vecUse)

	want := ir.MakeRamp(ir.MakeAdd(ir.MakeMul(x, lit(2)), lit(9)), lit(3), 4)
	got := simplify.Expr(in, simplify.Config{RemoveDeadLets: true})
	if !ir.Equal(got, want) {
		t.Errorf("got %s, want %s", got, want)
	}
	if _, ok := got.(*ir.Let); ok {
		t.Errorf("single-use peeled let should be fully inlined, not re-wrapped: got %s", got)
	}
}

func TestLetPeelMultiUseKeepsSharedBinding(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	// let n = x+1 in n*2 + n*3: two uses, so the peeled shadow binding
	// n.s must survive as a Let rather than being inlined twice.
	value := ir.MakeAdd(x, lit(1))
	n := ir.MakeVariable("n", i32)
	body := ir.MakeAdd(ir.MakeMul(n, lit(2)), ir.MakeMul(n, lit(3)))
	in := ir.MakeLet("n", value, body)

	got := simplify.Expr(in, simplify.Config{RemoveDeadLets: true})
	let, ok := got.(*ir.Let)
	if !ok {
		t.Fatalf("expected a shared Let binding to survive two uses, got %s", got)
	}
	if !ir.Equal(let.Value, x) && !ir.Equal(let.Value, value) {
		t.Errorf("unexpected shadow value %s", let.Value)
	}
}
