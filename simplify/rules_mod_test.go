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

func TestModRules(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	y := ir.MakeVariable("y", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"zero-numerator", ir.MakeMod(lit(0), x), lit(0)},
		{"mod-one", ir.MakeMod(x, lit(1)), lit(0)},
		{"mul-multiple-vanishes", ir.MakeMod(ir.MakeMul(x, lit(6)), lit(3)), lit(0)},
		{
			"add-mul-multiple-reduces",
			ir.MakeMod(ir.MakeAdd(ir.MakeMul(x, lit(6)), y), lit(3)),
			ir.MakeMod(y, lit(3)),
		},
		{
			"ramp-broadcast-divides-stride",
			ir.MakeMod(ir.MakeRamp(x, lit(6), 4), ir.MakeBroadcast(lit(3), 4)),
			ir.MakeBroadcast(ir.MakeMod(x, lit(3)), 4),
		},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}
