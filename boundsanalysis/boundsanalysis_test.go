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

package boundsanalysis_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/boundsanalysis"
	"github.com/gx-org/halide-simplify/constfold"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/scope"
)

func intImm(v int64) ir.Expr { return ir.MakeIntImm(ir.Int32Type, v) }

func wantInterval(t *testing.T, got boundsanalysis.Interval, min, max int64) {
	t.Helper()
	gotMin, ok := constfold.AsIntImm(got.Min)
	if !ok || gotMin.Value != min {
		t.Fatalf("Min = %v, want %d", got.Min, min)
	}
	gotMax, ok := constfold.AsIntImm(got.Max)
	if !ok || gotMax.Value != max {
		t.Fatalf("Max = %v, want %d", got.Max, max)
	}
}

func TestOfIntImm(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	got := boundsanalysis.Of(intImm(5), sc)
	wantInterval(t, got, 5, 5)
}

func TestOfUnboundVariable(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	x := ir.MakeVariable("x", ir.Int32Type)
	got := boundsanalysis.Of(x, sc)
	if got.Min != nil || got.Max != nil {
		t.Fatalf("Of(unbound var) = %+v, want undefined", got)
	}
}

func TestOfVariableFromScope(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	sc.Push("x", boundsanalysis.Interval{Min: intImm(0), Max: intImm(9)})
	x := ir.MakeVariable("x", ir.Int32Type)
	got := boundsanalysis.Of(x, sc)
	wantInterval(t, got, 0, 9)
}

func TestOfAdd(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	sc.Push("x", boundsanalysis.Interval{Min: intImm(0), Max: intImm(9)})
	x := ir.MakeVariable("x", ir.Int32Type)
	add := ir.MakeAdd(x, intImm(3))
	got := boundsanalysis.Of(add, sc)
	wantInterval(t, got, 3, 12)
}

func TestOfSub(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	sc.Push("x", boundsanalysis.Interval{Min: intImm(0), Max: intImm(9)})
	x := ir.MakeVariable("x", ir.Int32Type)
	sub := ir.MakeSub(intImm(20), x)
	got := boundsanalysis.Of(sub, sc)
	wantInterval(t, got, 11, 20)
}

func TestOfMulNegativeRange(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	sc.Push("x", boundsanalysis.Interval{Min: intImm(-3), Max: intImm(2)})
	x := ir.MakeVariable("x", ir.Int32Type)
	mul := ir.MakeMul(x, intImm(-4))
	got := boundsanalysis.Of(mul, sc)
	// x in [-3,2], times -4: corners are 12, 12, -8, -8 -> [-8, 12].
	wantInterval(t, got, -8, 12)
}

func TestOfMinMax(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	sc.Push("x", boundsanalysis.Interval{Min: intImm(0), Max: intImm(9)})
	sc.Push("y", boundsanalysis.Interval{Min: intImm(5), Max: intImm(20)})
	x := ir.MakeVariable("x", ir.Int32Type)
	y := ir.MakeVariable("y", ir.Int32Type)
	gotMin := boundsanalysis.Of(ir.MakeMin(x, y), sc)
	wantInterval(t, gotMin, 0, 9)
	gotMax := boundsanalysis.Of(ir.MakeMax(x, y), sc)
	wantInterval(t, gotMax, 5, 20)
}

func TestOfUnhandledExprIsUndefined(t *testing.T) {
	sc := scope.New[boundsanalysis.Interval]()
	sel := ir.MakeSelect(intImm(1), intImm(2), intImm(3))
	got := boundsanalysis.Of(sel, sc)
	if got.Min != nil || got.Max != nil {
		t.Fatalf("Of(Select) = %+v, want undefined (not a handled case)", got)
	}
}
