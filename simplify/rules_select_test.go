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

func TestSelectRules(t *testing.T) {
	i32 := ir.Int32Type
	a := ir.MakeVariable("a", i32)
	b := ir.MakeVariable("b", i32)
	c := ir.MakeVariable("c", i32)
	d := ir.MakeVariable("d", i32)
	boolImm := func(v bool) *ir.IntImm {
		n := int64(0)
		if v {
			n = 1
		}
		return ir.MakeIntImm(ir.BoolType, n)
	}

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"const-true-cond-picks-t", ir.MakeSelect(boolImm(true), c, d), c},
		{"const-false-cond-picks-f", ir.MakeSelect(boolImm(false), c, d), d},
		{"identical-branches-collapse", ir.MakeSelect(ir.MakeEQ(a, b), c, c), c},
		{"ne-condition-normalises", ir.MakeSelect(ir.MakeNE(a, b), c, d), ir.MakeSelect(ir.MakeEQ(a, b), d, c)},
		{"le-condition-normalises", ir.MakeSelect(ir.MakeLE(a, b), c, d), ir.MakeSelect(ir.MakeLT(b, a), d, c)},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}
