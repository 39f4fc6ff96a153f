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

func TestCastRules(t *testing.T) {
	i32 := ir.Int32Type
	i8 := ir.Scalar(ir.Int, 8)
	u8 := ir.UInt8Type
	u16 := ir.UInt16Type
	x := ir.MakeVariable("x", i32)

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{"same-type-is-passthrough", ir.MakeCast(i32, x), x},
		{"i8-wraps-with-sign", ir.MakeCast(i8, ir.MakeIntImm(i32, 1232)), ir.MakeIntImm(i8, -48)},
		{"u8-wraps-unsigned", ir.MakeCast(u8, ir.MakeIntImm(i32, 256)), ir.MakeIntImm(u8, 0)},
		{"int-to-float-folds", ir.MakeCast(ir.Float32Type, ir.MakeIntImm(i32, 3)), ir.MakeFloatImm(ir.Float32Type, 3)},
		{
			"unsigned-recast-equivalence",
			ir.MakeCast(u16, ir.MakeIntImm(i32, -1)),
			ir.MakeCast(u16, ir.MakeIntImm(i32, 65535)),
		},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		want := simplify.Expr(test.want, simplify.Config{})
		if !ir.Equal(got, want) {
			t.Errorf("%s: got %s, want %s", test.name, got, want)
		}
	}
}
