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

package simplify

import (
	"github.com/gx-org/halide-simplify/boundsanalysis"
	"github.com/gx-org/halide-simplify/constfold"
	"github.com/gx-org/halide-simplify/ir"
)

func buildMinExpr(a, b ir.Expr) ir.Expr {
	n := ir.MakeMin(a, b)
	if f := foldMin(n); f != nil {
		return f
	}
	return n
}

func buildMaxExpr(a, b ir.Expr) ir.Expr {
	n := ir.MakeMax(a, b)
	if f := foldMax(n); f != nil {
		return f
	}
	return n
}

// asClamp recognises clamp(x, lo, hi) as Max(Min(x, hi), lo), the
// conventional lowering of a clamp expression (round-trip with
// makeClamp below).
func asClamp(e ir.Expr) (x, lo, hi ir.Expr, ok bool) {
	mx, ok1 := e.(*ir.Max)
	if !ok1 {
		return nil, nil, nil, false
	}
	mn, ok2 := mx.X.(*ir.Min)
	if !ok2 {
		return nil, nil, nil, false
	}
	if !constfold.IsSimpleConst(mx.Y) || !constfold.IsSimpleConst(mn.Y) {
		return nil, nil, nil, false
	}
	return mn.X, mx.Y, mn.Y, true
}

func makeClamp(x, lo, hi ir.Expr) ir.Expr {
	return ir.MakeMax(ir.MakeMin(x, hi), lo)
}

// asRoundUp recognises ((a+c-1)/c)*c, the GLOSSARY's "Round-up
// expression". factor is the round-up's c, returned as an Expr so
// callers can compare it (via ir.Equal) against another node's operand
// rather than just its folded value, matching
// original_source/src/Simplify.cpp's equal(a_round_up_factor, ...).
func asRoundUp(e ir.Expr) (a ir.Expr, factor ir.Expr, ok bool) {
	mul, ok1 := e.(*ir.Mul)
	if !ok1 {
		return nil, nil, false
	}
	div, ok2 := mul.X.(*ir.Div)
	if !ok2 {
		return nil, nil, false
	}
	cMul, okc := constfold.AsIntImm(mul.Y)
	cDiv, okd := constfold.AsIntImm(div.Y)
	if !okc || !okd || cDiv.Value != cMul.Value {
		return nil, nil, false
	}
	add, ok3 := div.X.(*ir.Add)
	if !ok3 {
		return nil, nil, false
	}
	cAdd, oka := constfold.AsIntImm(add.Y)
	if !oka || cAdd.Value != cMul.Value-1 {
		return nil, nil, false
	}
	return add.X, mul.Y, true
}

// distributeMinMaxOverAdd implements "min(a+b,c+b) -> min(a,c)+b" (and Max's
// symmetric rule) across all four operand pairings.
func distributeMinMaxOverAdd(x, y ir.Expr, isMin bool) ir.Expr {
	addX, okX := x.(*ir.Add)
	addY, okY := y.(*ir.Add)
	if !okX || !okY {
		return nil
	}
	combine := func(a, c ir.Expr) ir.Expr {
		if isMin {
			return buildMinExpr(a, c)
		}
		return buildMaxExpr(a, c)
	}
	switch {
	case ir.Equal(addX.Y, addY.Y):
		return buildAdd(combine(addX.X, addY.X), addX.Y)
	case ir.Equal(addX.Y, addY.X):
		return buildAdd(combine(addX.X, addY.Y), addX.Y)
	case ir.Equal(addX.X, addY.X):
		return buildAdd(addX.X, combine(addX.Y, addY.Y))
	case ir.Equal(addX.X, addY.Y):
		return buildAdd(addX.X, combine(addX.Y, addY.X))
	}
	return nil
}

// visitMin implements spec.md §4.3's Min/Max rules for Min.
func (s *simplifier) visitMin(n *ir.Min) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	min := n
	if changed(x, n.X) || changed(y, n.Y) {
		min = ir.MakeMin(x, y)
	}
	if f := foldMin(min); f != nil {
		return f
	}
	if r := s.ruleMinMax(min.X, min.Y, min.Typ, true); r != nil {
		return r
	}
	return min
}

// visitMax implements spec.md §4.3's Min/Max rules for Max.
func (s *simplifier) visitMax(n *ir.Max) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	max := n
	if changed(x, n.X) || changed(y, n.Y) {
		max = ir.MakeMax(x, y)
	}
	if f := foldMax(max); f != nil {
		return f
	}
	if r := s.ruleMinMax(max.X, max.Y, max.Typ, false); r != nil {
		return r
	}
	return max
}

// ruleMinMax is shared between visitMin and visitMax: the two rule
// families are dual (spec.md §4.3 states nearly every Min rule has a
// "symmetric for max" counterpart), so one parameterised function
// keeps the duality explicit instead of duplicating each branch.
func (s *simplifier) ruleMinMax(x, y ir.Expr, typ ir.Type, isMin bool) ir.Expr {
	build := buildMinExpr
	if !isMin {
		build = buildMaxExpr
	}

	// min(a,a) -> a; max(a,a) -> a.
	if ir.Equal(x, y) {
		return x
	}

	if constfold.IsSimpleConst(x) && !constfold.IsSimpleConst(y) {
		x, y = y, x
	}

	if c, ok := constfold.AsIntImm(y); ok {
		if typ.K == ir.UInt {
			switch {
			case isMin && uint64(c.Value) == typ.UMax():
				return x
			case isMin && c.Value == 0:
				return y
			case !isMin && uint64(c.Value) == typ.UMax():
				return y
			case !isMin && c.Value == 0:
				return x
			}
		} else if typ.K == ir.Int {
			switch {
			case isMin && c.Value == typ.IMax():
				return x
			case isMin && c.Value == typ.IMin():
				return y
			case !isMin && c.Value == typ.IMin():
				return x
			case !isMin && c.Value == typ.IMax():
				return y
			}
		}
	}

	// min(a+c1,a+c2) -> a+min(c1,c2); symmetric for max.
	if addX, ok1 := x.(*ir.Add); ok1 {
		if addY, ok2 := y.(*ir.Add); ok2 && ir.Equal(addX.X, addY.X) {
			if c1, ok3 := constfold.AsIntImm(addX.Y); ok3 {
				if c2, ok4 := constfold.AsIntImm(addY.Y); ok4 {
					v := constfold.MinInt(c1.Value, c2.Value)
					if !isMin {
						v = constfold.MaxInt(c1.Value, c2.Value)
					}
					return buildAdd(addX.X, ir.MakeIntImm(c1.Typ, v))
				}
			}
		}
	}

	// min(a+c,a) -> a if c>0 else a+c; symmetric for max and operand order.
	if add, ok := x.(*ir.Add); ok && ir.Equal(add.X, y) {
		if c, ok2 := constfold.AsIntImm(add.Y); ok2 {
			if (c.Value > 0) == isMin {
				return y
			}
			return x
		}
	}
	if add, ok := y.(*ir.Add); ok && ir.Equal(add.X, x) {
		if c, ok2 := constfold.AsIntImm(add.Y); ok2 {
			if (c.Value > 0) == isMin {
				return x
			}
			return y
		}
	}

	// Idempotent nesting: min(min(a,b),b) -> min(a,b), and the mirrored
	// operand positions (spec.md: "up to depth >= 4" collapses to this
	// same per-step dedup rule applied repeatedly by the bottom-up walk).
	if isMin {
		if mn, ok := x.(*ir.Min); ok && (ir.Equal(mn.X, y) || ir.Equal(mn.Y, y)) {
			return mn
		}
		if mn, ok := y.(*ir.Min); ok && (ir.Equal(mn.X, x) || ir.Equal(mn.Y, x)) {
			return mn
		}
	} else {
		if mx, ok := x.(*ir.Max); ok && (ir.Equal(mx.X, y) || ir.Equal(mx.Y, y)) {
			return mx
		}
		if mx, ok := y.(*ir.Max); ok && (ir.Equal(mx.X, x) || ir.Equal(mx.Y, x)) {
			return mx
		}
	}

	// Lattice absorption: min(a, max(a,b)) -> a, max(a, min(a,b)) -> a,
	// and the mirrored operand positions (spec.md §8 round-trip law
	// "simplify(min(a, max(a, b))) == simplify(a)").
	if isMin {
		if mx, ok := y.(*ir.Max); ok && (ir.Equal(mx.X, x) || ir.Equal(mx.Y, x)) {
			return x
		}
		if mx, ok := x.(*ir.Max); ok && (ir.Equal(mx.X, y) || ir.Equal(mx.Y, y)) {
			return y
		}
	} else {
		if mn, ok := y.(*ir.Min); ok && (ir.Equal(mn.X, x) || ir.Equal(mn.Y, x)) {
			return x
		}
		if mn, ok := x.(*ir.Min); ok && (ir.Equal(mn.X, y) || ir.Equal(mn.Y, y)) {
			return y
		}
	}

	// Distributive over Add.
	if r := distributeMinMaxOverAdd(x, y, isMin); r != nil {
		return r
	}

	// Distributive over Div by a constant.
	if divX, ok1 := x.(*ir.Div); ok1 {
		if divY, ok2 := y.(*ir.Div); ok2 {
			if kx, okx := constfold.AsIntImm(divX.Y); okx {
				if ky, oky := constfold.AsIntImm(divY.Y); oky && kx.Value == ky.Value && kx.Value != 0 {
					combineMin := isMin == (kx.Value > 0)
					if combineMin {
						return buildDiv(buildMinExpr(divX.X, divY.X), divX.Y)
					}
					return buildDiv(buildMaxExpr(divX.X, divY.X), divX.Y)
				}
			}
		}
	}

	if isMin {
		// Round-up recognition: min(((a+c-1)/c)*c, a) -> a, and its
		// mirrored operand order.
		ruX, ruFactorX, ruOkX := asRoundUp(x)
		ruY, ruFactorY, ruOkY := asRoundUp(y)
		if ruOkX && ir.Equal(ruX, y) {
			return y
		}
		if ruOkY && ir.Equal(ruY, x) {
			return x
		}
		// min(((a+c-1)/c)*c, max(a,c)) -> max(a,c): the round-up's own
		// factor must match the max's constant, not just its first
		// operand (original_source/src/Simplify.cpp's a_round_up_factor
		// check) — min(((x+7)/8)*8, max(x,100)) must NOT fold to
		// max(x,100) just because both reference x.
		if ruOkX {
			if mx, ok2 := y.(*ir.Max); ok2 && ir.Equal(mx.X, ruX) && ir.Equal(mx.Y, ruFactorX) {
				return y
			}
		}
		if ruOkY {
			if mx, ok2 := x.(*ir.Max); ok2 && ir.Equal(mx.X, ruY) && ir.Equal(mx.Y, ruFactorY) {
				return x
			}
		}
		// Clamp pair merge / same-bounds clamp distribution (spec.md §8
		// scenario 7).
		if xC, loX, hiX, okX := asClamp(x); okX {
			if yC, loY, hiY, okY := asClamp(y); okY {
				if ir.Equal(xC, yC) {
					return makeClamp(xC, build(loX, loY), build(hiX, hiY))
				}
				if ir.Equal(loX, loY) && ir.Equal(hiX, hiY) {
					return makeClamp(build(xC, yC), loX, hiX)
				}
			}
		}
	}

	// Context pruning: if y is a simple const and bounds say x's max
	// (min for Max) already satisfies the comparison, drop the Min/Max.
	if c, ok := constfold.AsIntImm(y); ok {
		iv := boundsanalysis.Of(x, s.bounds)
		if isMin {
			if maxI, ok2 := constfold.AsIntImm(iv.Max); ok2 && maxI.Value <= c.Value {
				return x
			}
		} else {
			if minI, ok2 := constfold.AsIntImm(iv.Min); ok2 && minI.Value >= c.Value {
				return x
			}
		}
	}

	return nil
}
