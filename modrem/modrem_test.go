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

package modrem_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/modrem"
	"github.com/gx-org/halide-simplify/scope"
)

func TestUnknownVariable(t *testing.T) {
	sc := scope.New[modrem.Info]()
	x := ir.MakeVariable("x", ir.Int32Type)
	got := modrem.Of(x, sc)
	if got != modrem.Unknown {
		t.Fatalf("Of(unbound var) = %+v, want Unknown", got)
	}
}

func TestVariableFromScope(t *testing.T) {
	sc := scope.New[modrem.Info]()
	sc.Push("x", modrem.Info{Modulus: 4, Remainder: 1})
	x := ir.MakeVariable("x", ir.Int32Type)
	got := modrem.Of(x, sc)
	if got.Modulus != 4 || got.Remainder != 1 {
		t.Fatalf("Of(x) = %+v, want {4 1}", got)
	}
}

func TestMulByConstantOfAlignedVar(t *testing.T) {
	// x aligned to (modulus=4, remainder=1); (x*8) % 4*8 should be 8.
	sc := scope.New[modrem.Info]()
	sc.Push("x", modrem.Info{Modulus: 4, Remainder: 1})
	x := ir.MakeVariable("x", ir.Int32Type)
	mul := ir.MakeMul(x, ir.MakeIntImm(ir.Int32Type, 8))
	got := modrem.Of(mul, sc)
	if got.Modulus != 32 || got.Remainder != 8 {
		t.Fatalf("Of(x*8) = %+v, want {32 8}", got)
	}
}

func TestAddConstants(t *testing.T) {
	sc := scope.New[modrem.Info]()
	a := ir.MakeIntImm(ir.Int32Type, 7)
	b := ir.MakeIntImm(ir.Int32Type, 5)
	got := modrem.Of(ir.MakeAdd(a, b), sc)
	gotV, ok := func() (int64, bool) {
		if got.Modulus < (1 << 20) {
			return 0, false
		}
		return int64(got.Remainder), true
	}()
	if !ok || gotV != 12 {
		t.Fatalf("Of(7+5) = %+v, want exact value 12", got)
	}
}
