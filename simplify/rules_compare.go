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

// cancelCommonAddend implements "Subtract/add equal terms on both
// sides (all four pair combinations)": a+c ⋈ b+c -> a ⋈ b.
func cancelCommonAddend(x, y ir.Expr) (ir.Expr, ir.Expr, bool) {
	addX, okX := x.(*ir.Add)
	addY, okY := y.(*ir.Add)
	if !okX || !okY {
		return nil, nil, false
	}
	switch {
	case ir.Equal(addX.Y, addY.Y):
		return addX.X, addY.X, true
	case ir.Equal(addX.Y, addY.X):
		return addX.X, addY.Y, true
	case ir.Equal(addX.X, addY.X):
		return addX.Y, addY.Y, true
	case ir.Equal(addX.X, addY.Y):
		return addX.Y, addY.X, true
	}
	return nil, nil, false
}

// scaleBothSides implements "Scale-both-sides by a non-zero positive
// constant k: k·a ⋈ k·b -> a ⋈ b".
func scaleBothSides(x, y ir.Expr) (ir.Expr, ir.Expr, bool) {
	mx, okX := x.(*ir.Mul)
	my, okY := y.(*ir.Mul)
	if !okX || !okY {
		return nil, nil, false
	}
	kx, okx := constfold.AsIntImm(mx.Y)
	ky, oky := constfold.AsIntImm(my.Y)
	if !okx || !oky || kx.Value != ky.Value || kx.Value <= 0 {
		return nil, nil, false
	}
	return mx.X, my.X, true
}

func buildEQ(a, b ir.Expr) ir.Expr {
	n := ir.MakeEQ(a, b)
	if f := foldCompare(n.X, n.Y, n.Typ, func(a, b int64) bool { return a == b }, func(a, b uint64) bool { return a == b }, func(a, b float64) bool { return a == b }); f != nil {
		return f
	}
	return n
}

func buildLT(a, b ir.Expr) ir.Expr {
	n := ir.MakeLT(a, b)
	if f := foldCompare(n.X, n.Y, n.Typ, func(a, b int64) bool { return a < b }, func(a, b uint64) bool { return a < b }, func(a, b float64) bool { return a < b }); f != nil {
		return f
	}
	return n
}

// signBounds uses the bounds oracle on x-y to decide an integer
// comparison's truth value when it can (spec.md "Constant-only sign
// reasoning on delta = a-b").
func (s *simplifier) signBounds(x, y ir.Expr) (iv boundsanalysis.Interval, ok bool) {
	if !x.Type().K.IsInt() {
		return iv, false
	}
	return boundsanalysis.Of(buildSub(x, y), s.bounds), true
}

// visitEQ implements spec.md §4.3's Comparisons for EQ (primary,
// alongside LT).
func (s *simplifier) visitEQ(n *ir.EQ) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	eq := n
	if changed(x, n.X) || changed(y, n.Y) {
		eq = ir.MakeEQ(x, y)
	}
	if f := foldCompare(eq.X, eq.Y, eq.Typ, func(a, b int64) bool { return a == b }, func(a, b uint64) bool { return a == b }, func(a, b float64) bool { return a == b }); f != nil {
		return f
	}
	if r := s.ruleEQ(eq); r != nil {
		return r
	}
	return eq
}

func (s *simplifier) ruleEQ(n *ir.EQ) ir.Expr {
	x, y := n.X, n.Y
	if constfold.IsSimpleConst(x) && !constfold.IsSimpleConst(y) {
		x, y = y, x
	}
	if ir.Equal(x, y) {
		return constfold.MakeBool(true, n.Typ)
	}
	if a, b, ok := cancelCommonAddend(x, y); ok {
		return buildEQ(a, b)
	}
	if a, b, ok := scaleBothSides(x, y); ok {
		return buildEQ(a, b)
	}
	if iv, ok := s.signBounds(x, y); ok {
		if minI, ok1 := constfold.AsIntImm(iv.Min); ok1 {
			if maxI, ok2 := constfold.AsIntImm(iv.Max); ok2 {
				if minI.Value == 0 && maxI.Value == 0 {
					return constfold.MakeBool(true, n.Typ)
				}
				if minI.Value > 0 || maxI.Value < 0 {
					return constfold.MakeBool(false, n.Typ)
				}
			}
		}
	}
	if x != n.X || y != n.Y {
		return buildEQ(x, y)
	}
	return nil
}

// visitLT implements spec.md §4.3's Comparisons for LT.
func (s *simplifier) visitLT(n *ir.LT) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	lt := n
	if changed(x, n.X) || changed(y, n.Y) {
		lt = ir.MakeLT(x, y)
	}
	if f := foldCompare(lt.X, lt.Y, lt.Typ, func(a, b int64) bool { return a < b }, func(a, b uint64) bool { return a < b }, func(a, b float64) bool { return a < b }); f != nil {
		return f
	}
	if r := s.ruleLT(lt); r != nil {
		return r
	}
	return lt
}

func (s *simplifier) ruleLT(n *ir.LT) ir.Expr {
	x, y := n.X, n.Y
	if ir.Equal(x, y) {
		return constfold.MakeBool(false, n.Typ)
	}
	// Type-extreme pruning: x < T::imin -> false; T::imax < x -> false.
	if c, ok := constfold.AsIntImm(y); ok {
		if x.Type().K == ir.Int && c.Value == x.Type().IMin() {
			return constfold.MakeBool(false, n.Typ)
		}
		if x.Type().K == ir.UInt && c.Value == 0 {
			return constfold.MakeBool(false, n.Typ)
		}
	}
	if c, ok := constfold.AsIntImm(x); ok {
		if y.Type().K == ir.Int && c.Value == y.Type().IMax() {
			return constfold.MakeBool(false, n.Typ)
		}
		if y.Type().K == ir.UInt && uint64(c.Value) == y.Type().UMax() {
			return constfold.MakeBool(false, n.Typ)
		}
	}
	if a, b, ok := cancelCommonAddend(x, y); ok {
		return buildLT(a, b)
	}
	if a, b, ok := scaleBothSides(x, y); ok {
		return buildLT(a, b)
	}
	// Ramp-vs-ramp with equal stride reduces to a broadcast compare.
	if rx, ok := x.(*ir.Ramp); ok {
		if ry, ok2 := y.(*ir.Ramp); ok2 && rx.Lanes == ry.Lanes && ir.Equal(rx.Stride, ry.Stride) {
			return ir.MakeBroadcast(buildLT(rx.Base, ry.Base), rx.Lanes)
		}
	}
	if iv, ok := s.signBounds(x, y); ok {
		if maxI, ok1 := constfold.AsIntImm(iv.Max); ok1 && maxI.Value < 0 {
			return constfold.MakeBool(true, n.Typ)
		}
		if minI, ok1 := constfold.AsIntImm(iv.Min); ok1 && minI.Value >= 0 {
			return constfold.MakeBool(false, n.Typ)
		}
	}
	if x != n.X || y != n.Y {
		return buildLT(x, y)
	}
	return nil
}

// visitNE implements "NE -> !EQ" (spec.md "EQ/LT are primary... NE ->
// !EQ"): NE is not a retained canonical form, it is rewritten into its
// EQ/Not definition and re-simplified.
func (s *simplifier) visitNE(n *ir.NE) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	return s.expr(ir.MakeNot(ir.MakeEQ(x, y)))
}

// visitLE implements "LE(a,b) -> !LT(b,a)".
func (s *simplifier) visitLE(n *ir.LE) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	return s.expr(ir.MakeNot(ir.MakeLT(y, x)))
}

// visitGT implements "GT(a,b) -> LT(b,a)".
func (s *simplifier) visitGT(n *ir.GT) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	return s.expr(ir.MakeLT(y, x))
}

// visitGE implements "GE(a,b) -> !LT(a,b)".
func (s *simplifier) visitGE(n *ir.GE) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	return s.expr(ir.MakeNot(ir.MakeLT(x, y)))
}
