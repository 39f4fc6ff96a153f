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

func TestMinMaxRules(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	y := ir.MakeVariable("y", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"min-idempotent", ir.MakeMin(x, x), x},
		{"max-idempotent", ir.MakeMax(x, x), x},
		{"min-nested-dedup", ir.MakeMin(ir.MakeMin(x, y), y), ir.MakeMin(x, y)},
		{"max-nested-dedup", ir.MakeMax(ir.MakeMax(x, y), y), ir.MakeMax(x, y)},
		{"min-absorbs-max", ir.MakeMin(x, ir.MakeMax(x, y)), x},
		{"min-absorbs-max-mirrored", ir.MakeMin(ir.MakeMax(x, y), x), x},
		{"max-absorbs-min", ir.MakeMax(x, ir.MakeMin(x, y)), x},
		{"max-absorbs-min-mirrored", ir.MakeMax(ir.MakeMin(x, y), x), x},
		{"min-const-add-merge", ir.MakeMin(ir.MakeAdd(x, lit(3)), ir.MakeAdd(x, lit(5))), ir.MakeAdd(x, lit(3))},
		{"max-const-add-merge", ir.MakeMax(ir.MakeAdd(x, lit(3)), ir.MakeAdd(x, lit(5))), ir.MakeAdd(x, lit(5))},
		{
			"roundup-pattern",
			ir.MakeMin(ir.MakeMul(ir.MakeDiv(ir.MakeAdd(x, lit(7)), lit(8)), lit(8)), x),
			x,
		},
		{
			"roundup-max-matching-factor",
			ir.MakeMin(ir.MakeMul(ir.MakeDiv(ir.MakeAdd(x, lit(7)), lit(8)), lit(8)), ir.MakeMax(x, lit(8))),
			ir.MakeMax(x, lit(8)),
		},
		{
			"roundup-max-matching-factor-mirrored",
			ir.MakeMin(ir.MakeMax(x, lit(8)), ir.MakeMul(ir.MakeDiv(ir.MakeAdd(x, lit(7)), lit(8)), lit(8))),
			ir.MakeMax(x, lit(8)),
		},
		{
			"clamp-pair-same-bounds",
			ir.MakeMin(
				ir.MakeMax(ir.MakeMin(x, lit(14)), lit(-10)),
				ir.MakeMax(ir.MakeMin(y, lit(14)), lit(-10)),
			),
			ir.MakeMax(ir.MakeMin(ir.MakeMin(x, y), lit(14)), lit(-10)),
		},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}

// TestMinMaxRoundUpRequiresMatchingFactor guards against folding
// min(((x+7)/8)*8, max(x,100)) to max(x,100): the round-up's factor (8)
// does not match the max's constant (100), so the rewrite is unsound
// (at x=50 the round-up is 56, not 100) and must not fire.
func TestMinMaxRoundUpRequiresMatchingFactor(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	in := ir.MakeMin(
		ir.MakeMul(ir.MakeDiv(ir.MakeAdd(x, ir.MakeIntImm(i32, 7)), ir.MakeIntImm(i32, 8)), ir.MakeIntImm(i32, 8)),
		ir.MakeMax(x, ir.MakeIntImm(i32, 100)),
	)
	got := simplify.Expr(in, simplify.Config{})
	bogus := ir.MakeMax(x, ir.MakeIntImm(i32, 100))
	if ir.Equal(got, bogus) {
		t.Fatalf("min(round_up(x,8), max(x,100)) folded to %s, which is unsound at x=50 (round_up=56, max=100)", got)
	}
}

func TestMinMaxAbsorptionRoundTrip(t *testing.T) {
	i32 := ir.Int32Type
	a := ir.MakeVariable("a", i32)
	b := ir.MakeVariable("b", i32)
	cfg := simplify.Config{}

	lhs := simplify.Expr(ir.MakeMin(a, ir.MakeMax(a, b)), cfg)
	rhs := simplify.Expr(a, cfg)
	if !ir.Equal(lhs, rhs) {
		t.Errorf("simplify(min(a, max(a, b))) = %s, want %s", lhs, rhs)
	}
}
