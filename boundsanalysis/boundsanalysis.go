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

// Package boundsanalysis implements the bounds oracle the simplifier
// consults (spec.md §4.5, component #5 in §2): for an expression
// under a bounds scope, it returns an interval (min, max), either
// endpoint possibly undefined, that soundly (conservatively) bounds
// the expression's value.
//
// Like modrem, this is named as an external collaborator in spec.md
// §1 ("bounds_of_expr_in_scope... the simplifier consumes [it] as an
// oracle. [Its] contracts are stated... but [its] algorithms are
// not"); the implementation here satisfies that contract using the
// same oracle-function shape as build/ir/eval.go's Eval, folding
// interval arithmetic with constfold when both operand endpoints are
// literal integers, and returning undefined endpoints otherwise
// (spec.md: "the simplifier only uses the result when both endpoints
// are literal integers").
package boundsanalysis

import (
	"github.com/gx-org/halide-simplify/constfold"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/scope"
)

// Interval is a possibly-unbounded interval (spec.md §4.5); Min/Max
// are nil when that endpoint is unknown.
type Interval = ir.Interval

// Undefined is both endpoints unknown.
var Undefined = Interval{}

func literal(e ir.Expr) (*ir.IntImm, bool) {
	if e == nil {
		return nil, false
	}
	return constfold.AsIntImm(e)
}

// Of computes a sound interval for e under the given bounds scope
// (spec.md §4.5 bounds_of_expr_in_scope).
func Of(e ir.Expr, sc *scope.Stack[Interval]) Interval {
	switch e := e.(type) {
	case *ir.IntImm:
		return Interval{Min: e, Max: e}
	case *ir.Variable:
		if iv, ok := sc.Get(e.Name); ok {
			return iv
		}
		return Undefined
	case *ir.Add:
		return combine2(Of(e.X, sc), Of(e.Y, sc), e.Typ, func(a, b int64) int64 { return a + b }, monotoneIncreasing)
	case *ir.Sub:
		return combine2(Of(e.X, sc), Of(e.Y, sc), e.Typ, func(a, b int64) int64 { return a - b }, monotoneMixed)
	case *ir.Mul:
		return combineMul(Of(e.X, sc), Of(e.Y, sc), e.Typ)
	case *ir.Min:
		return combineMinMax(Of(e.X, sc), Of(e.Y, sc), e.Typ, true)
	case *ir.Max:
		return combineMinMax(Of(e.X, sc), Of(e.Y, sc), e.Typ, false)
	default:
		return Undefined
	}
}

type monotonicity int

const (
	monotoneIncreasing monotonicity = iota // f(min,min) is the overall min, f(max,max) is the overall max
	monotoneMixed                          // subtraction: min is x.min - y.max, max is x.max - y.min
)

func combine2(x, y Interval, t ir.Type, f func(a, b int64) int64, mono monotonicity) Interval {
	xMin, okXMin := literal(x.Min)
	xMax, okXMax := literal(x.Max)
	yMin, okYMin := literal(y.Min)
	yMax, okYMax := literal(y.Max)
	if !okXMin || !okXMax || !okYMin || !okYMax {
		return Undefined
	}
	var lo, hi int64
	switch mono {
	case monotoneMixed:
		lo = f(xMin.Value, yMax.Value)
		hi = f(xMax.Value, yMin.Value)
	default:
		lo = f(xMin.Value, yMin.Value)
		hi = f(xMax.Value, yMax.Value)
	}
	return Interval{Min: constfold.MakeConst(t, lo), Max: constfold.MakeConst(t, hi)}
}

func combineMul(x, y Interval, t ir.Type) Interval {
	xMin, okXMin := literal(x.Min)
	xMax, okXMax := literal(x.Max)
	yMin, okYMin := literal(y.Min)
	yMax, okYMax := literal(y.Max)
	if !okXMin || !okXMax || !okYMin || !okYMax {
		return Undefined
	}
	corners := [4]int64{
		xMin.Value * yMin.Value,
		xMin.Value * yMax.Value,
		xMax.Value * yMin.Value,
		xMax.Value * yMax.Value,
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return Interval{Min: constfold.MakeConst(t, lo), Max: constfold.MakeConst(t, hi)}
}

func combineMinMax(x, y Interval, t ir.Type, isMin bool) Interval {
	var lo, hi ir.Expr
	xMin, okXMin := literal(x.Min)
	yMin, okYMin := literal(y.Min)
	if okXMin && okYMin {
		v := xMin.Value
		if (v > yMin.Value) == isMin {
			v = yMin.Value
		}
		lo = constfold.MakeConst(t, v)
	}
	xMax, okXMax := literal(x.Max)
	yMax, okYMax := literal(y.Max)
	if okXMax && okYMax {
		v := xMax.Value
		if (v > yMax.Value) == isMin {
			v = yMax.Value
		}
		hi = constfold.MakeConst(t, v)
	}
	return Interval{Min: lo, Max: hi}
}
