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

func TestAddRules(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	y := ir.MakeVariable("y", i32)
	z := ir.MakeVariable("z", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"const-moves-right", ir.MakeAdd(lit(3), x), ir.MakeAdd(x, lit(3))},
		{"reassociate", ir.MakeAdd(ir.MakeAdd(x, lit(3)), lit(4)), ir.MakeAdd(x, lit(7))},
		{"zero-right", ir.MakeAdd(x, lit(0)), x},
		{"zero-left", ir.MakeAdd(lit(0), x), x},
		{"sub-then-add-cancels", ir.MakeAdd(ir.MakeSub(x, y), y), x},
		{"add-sub-cancels-other-way", ir.MakeAdd(x, ir.MakeSub(y, x)), y},
		{"factor-mul", ir.MakeAdd(ir.MakeMul(x, lit(3)), ir.MakeMul(y, lit(3))), ir.MakeMul(ir.MakeAdd(x, y), lit(3))},
		// Non-constant shared factor, across all four commutative
		// operand pairings of the two Mul nodes.
		{"factor-mul-var-aa", ir.MakeAdd(ir.MakeMul(z, x), ir.MakeMul(z, y)), ir.MakeMul(z, ir.MakeAdd(x, y))},
		{"factor-mul-var-ba", ir.MakeAdd(ir.MakeMul(x, z), ir.MakeMul(z, y)), ir.MakeMul(z, ir.MakeAdd(x, y))},
		{"factor-mul-var-bb", ir.MakeAdd(ir.MakeMul(x, z), ir.MakeMul(y, z)), ir.MakeMul(z, ir.MakeAdd(x, y))},
		{"factor-mul-var-ab", ir.MakeAdd(ir.MakeMul(z, x), ir.MakeMul(y, z)), ir.MakeMul(z, ir.MakeAdd(x, y))},
		{
			"ramp-ramp", ir.MakeAdd(ir.MakeRamp(x, lit(2), 3), ir.MakeRamp(y, lit(4), 3)),
			ir.MakeRamp(ir.MakeAdd(x, y), lit(6), 3),
		},
		{"divmod-reconstruct", ir.MakeAdd(ir.MakeMul(ir.MakeDiv(x, lit(3)), lit(3)), ir.MakeMod(x, lit(3))), x},
		{"divmod-reconstruct-commuted", ir.MakeAdd(ir.MakeMod(x, lit(3)), ir.MakeMul(ir.MakeDiv(x, lit(3)), lit(3))), x},
		{"min-left-of-add", ir.MakeAdd(lit(3), ir.MakeMin(x, y)), ir.MakeAdd(ir.MakeMin(x, y), lit(3))},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}

func TestSubRules(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	y := ir.MakeVariable("y", i32)
	z := ir.MakeVariable("z", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"zero-right", ir.MakeSub(x, lit(0)), x},
		{"self-is-zero", ir.MakeSub(x, x), lit(0)},
		{"add-x-minus-x", ir.MakeSub(ir.MakeAdd(x, y), x), y},
		{"add-x-minus-y", ir.MakeSub(ir.MakeAdd(x, y), y), x},
		{"quaternary-cancel", ir.MakeSub(ir.MakeAdd(x, y), ir.MakeAdd(lit(3), y)), ir.MakeSub(x, lit(3))},
		{"factor-mul", ir.MakeSub(ir.MakeMul(x, lit(3)), ir.MakeMul(y, lit(3))), ir.MakeMul(ir.MakeSub(x, y), lit(3))},
		// Non-constant shared factor, mirrored operand position.
		{"factor-mul-var", ir.MakeSub(ir.MakeMul(z, x), ir.MakeMul(y, z)), ir.MakeMul(z, ir.MakeSub(x, y))},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}

func TestMulRules(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"const-moves-right", ir.MakeMul(lit(3), x), ir.MakeMul(x, lit(3))},
		{"zero", ir.MakeMul(x, lit(0)), lit(0)},
		{"one", ir.MakeMul(x, lit(1)), x},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}
