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
	"github.com/gx-org/halide-simplify/constfold"
	"github.com/gx-org/halide-simplify/ir"
)

func buildAdd(a, b ir.Expr) ir.Expr {
	n := ir.MakeAdd(a, b)
	if f := foldAdd(n); f != nil {
		return f
	}
	return n
}

func buildSub(a, b ir.Expr) ir.Expr {
	n := ir.MakeSub(a, b)
	if f := foldSub(n); f != nil {
		return f
	}
	return n
}

func buildMul(a, b ir.Expr) ir.Expr {
	n := ir.MakeMul(a, b)
	if f := foldMul(n); f != nil {
		return f
	}
	return n
}

func isMinOrMax(e ir.Expr) bool {
	switch e.(type) {
	case *ir.Min, *ir.Max:
		return true
	default:
		return false
	}
}

// visitAdd implements spec.md §4.3's Add canonicalisation.
func (s *simplifier) visitAdd(n *ir.Add) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	add := n
	if changed(x, n.X) || changed(y, n.Y) {
		add = ir.MakeAdd(x, y)
	}
	if f := foldAdd(add); f != nil {
		return f
	}
	if r := ruleAdd(add); r != nil {
		return r
	}
	return add
}

func ruleAdd(n *ir.Add) ir.Expr {
	x, y := n.X, n.Y
	// Move a simple constant to the right; move Min/Max to the left
	// (spec.md "Move 'simple constants' to the right operand...",
	// "Move Min/Max operands to the left of Add").
	if constfold.IsSimpleConst(x) && !constfold.IsSimpleConst(y) {
		x, y = y, x
	}
	if isMinOrMax(y) && !isMinOrMax(x) {
		x, y = y, x
	}
	if constfold.IsZero(y) {
		return x
	}
	if constfold.IsZero(x) {
		return y
	}
	if r := distributeAddRampBroadcast(x, y); r != nil {
		return r
	}
	// (a-b)+b -> a.
	if sub, ok := x.(*ir.Sub); ok && ir.Equal(sub.Y, y) {
		return sub.X
	}
	// a+(b-a) -> b.
	if sub, ok := y.(*ir.Sub); ok && ir.Equal(sub.Y, x) {
		return sub.X
	}
	// The quaternary (a+b)-(c+b) cancellation, in all four operand
	// pairings, is handled by ruleSub; Add-rooted shapes such as
	// (a+b)+(c-b) are not rewritten here.
	// Reassociation: (a+c1)+c2 -> a+(c1+c2).
	if add1, ok := x.(*ir.Add); ok && constfold.IsSimpleConst(add1.Y) && constfold.IsSimpleConst(y) {
		if sum := foldAdd(ir.MakeAdd(add1.Y, y)); sum != nil {
			return buildAdd(add1.X, sum)
		}
	}
	// (c1-a)+c2 -> (c1+c2)-a.
	if sub1, ok := x.(*ir.Sub); ok && constfold.IsSimpleConst(sub1.X) && constfold.IsSimpleConst(y) {
		if sum := foldAdd(ir.MakeAdd(sub1.X, y)); sum != nil {
			return buildSub(sum, sub1.Y)
		}
	}
	// Mod-mul reconstruction: (x/k)*k + x%k -> x, and commuted.
	if r := reconstructDivMod(x, y); r != nil {
		return r
	}
	if r := reconstructDivMod(y, x); r != nil {
		return r
	}
	// Factor extraction: a*k + b*k -> (a+b)*k.
	if r := factorAddMul(x, y); r != nil {
		return r
	}
	// Div-add merge: (a+c1)/c2 + c3 -> (a+(c1+c2*c3))/c2.
	if r := divAddMerge(x, y); r != nil {
		return r
	}
	// Min/max absorption: min(a,b-c)+c -> min(a+c,b); symmetric for max.
	if r := minMaxAbsorbAdd(x, y); r != nil {
		return r
	}
	if x != n.X || y != n.Y {
		return buildAdd(x, y)
	}
	return nil
}

// reconstructDivMod recognises (x/k)*k as divPart and x%k as modPart
// (spec.md "Mod-mul reconstruction").
func reconstructDivMod(divPart, modPart ir.Expr) ir.Expr {
	mul, ok := divPart.(*ir.Mul)
	if !ok {
		return nil
	}
	div, ok := mul.X.(*ir.Div)
	if !ok {
		return nil
	}
	k1, ok1 := constfold.AsIntImm(mul.Y)
	k2, ok2 := constfold.AsIntImm(div.Y)
	if !ok1 || !ok2 || k1.Value != k2.Value {
		return nil
	}
	mod, ok := modPart.(*ir.Mod)
	if !ok {
		return nil
	}
	k3, ok3 := constfold.AsIntImm(mod.Y)
	if !ok3 || k3.Value != k1.Value || !ir.Equal(div.X, mod.X) {
		return nil
	}
	return div.X
}

// factorAddMul implements "a*k + b*k -> (a+b)*k", matched across all
// four commutative pairings of the two Mul operands: the shared factor
// need not be a constant (original_source/src/Simplify.cpp's
// mul_a/mul_b block matches by structural equality, not by both sides
// folding to the same IntImm).
func factorAddMul(x, y ir.Expr) ir.Expr {
	return factorMulPair(x, y, buildAdd)
}

// factorSubMul implements "a*k - b*k -> (a-b)*k", the Sub-side
// counterpart of factorAddMul, used by ruleSub.
func factorSubMul(x, y ir.Expr) ir.Expr {
	return factorMulPair(x, y, buildSub)
}

// factorMulPair finds a Mul operand shared (via ir.Equal) between x
// and y and factors it out, combining the other two operands with
// combine (buildAdd for factorAddMul, buildSub for factorSubMul). A
// simple-constant shared factor goes on the right, a non-constant one
// on the left.
func factorMulPair(x, y ir.Expr, combine func(a, b ir.Expr) ir.Expr) ir.Expr {
	mx, ok1 := x.(*ir.Mul)
	my, ok2 := y.(*ir.Mul)
	if !ok1 || !ok2 {
		return nil
	}
	mul := func(shared, rest ir.Expr) ir.Expr {
		if constfold.IsSimpleConst(shared) {
			return buildMul(rest, shared)
		}
		return buildMul(shared, rest)
	}
	switch {
	case ir.Equal(mx.X, my.X):
		return mul(mx.X, combine(mx.Y, my.Y))
	case ir.Equal(mx.Y, my.X):
		return mul(mx.Y, combine(mx.X, my.Y))
	case ir.Equal(mx.Y, my.Y):
		return mul(mx.Y, combine(mx.X, my.X))
	case ir.Equal(mx.X, my.Y):
		return mul(mx.X, combine(mx.Y, my.X))
	}
	return nil
}

// divAddMerge implements "((a+c1)/c2 + c3) -> (a + (c1+c2*c3))/c2".
func divAddMerge(x, y ir.Expr) ir.Expr {
	div, ok := x.(*ir.Div)
	if !ok {
		return nil
	}
	c3, ok3 := constfold.AsIntImm(y)
	if !ok3 {
		return nil
	}
	add1, ok := div.X.(*ir.Add)
	if !ok {
		return nil
	}
	c1, ok1 := constfold.AsIntImm(add1.Y)
	c2, ok2 := constfold.AsIntImm(div.Y)
	if !ok1 || !ok2 {
		return nil
	}
	newConst := ir.MakeIntImm(c1.Typ, c1.Value+c2.Value*c3.Value)
	return ir.MakeDiv(buildAdd(add1.X, newConst), div.Y)
}

// minMaxAbsorbAdd implements "min(a, b-c)+c -> min(a+c, b)" (and the
// symmetric Max case, and the mirrored operand position).
func minMaxAbsorbAdd(x, y ir.Expr) ir.Expr {
	c, okc := constfold.AsIntImm(y)
	if !okc {
		return nil
	}
	switch mm := x.(type) {
	case *ir.Min:
		if sub, ok := mm.Y.(*ir.Sub); ok {
			if sc, ok := constfold.AsIntImm(sub.Y); ok && sc.Value == c.Value {
				return ir.MakeMin(buildAdd(mm.X, y), sub.X)
			}
		}
		if sub, ok := mm.X.(*ir.Sub); ok {
			if sc, ok := constfold.AsIntImm(sub.Y); ok && sc.Value == c.Value {
				return ir.MakeMin(sub.X, buildAdd(mm.Y, y))
			}
		}
	case *ir.Max:
		if sub, ok := mm.Y.(*ir.Sub); ok {
			if sc, ok := constfold.AsIntImm(sub.Y); ok && sc.Value == c.Value {
				return ir.MakeMax(buildAdd(mm.X, y), sub.X)
			}
		}
		if sub, ok := mm.X.(*ir.Sub); ok {
			if sc, ok := constfold.AsIntImm(sub.Y); ok && sc.Value == c.Value {
				return ir.MakeMax(sub.X, buildAdd(mm.Y, y))
			}
		}
	}
	return nil
}

// distributeAddRampBroadcast implements "Ramp ± Ramp, Ramp ±
// Broadcast, ... distribute into a single new Ramp/Broadcast"
// (spec.md §8 scenario 4).
func distributeAddRampBroadcast(x, y ir.Expr) ir.Expr {
	switch a := x.(type) {
	case *ir.Ramp:
		switch b := y.(type) {
		case *ir.Ramp:
			if a.Lanes == b.Lanes {
				return ir.MakeRamp(buildAdd(a.Base, b.Base), buildAdd(a.Stride, b.Stride), a.Lanes)
			}
		case *ir.Broadcast:
			if a.Lanes == b.Lanes {
				return ir.MakeRamp(buildAdd(a.Base, b.Value), a.Stride, a.Lanes)
			}
		}
	case *ir.Broadcast:
		switch b := y.(type) {
		case *ir.Ramp:
			if a.Lanes == b.Lanes {
				return ir.MakeRamp(buildAdd(a.Value, b.Base), b.Stride, a.Lanes)
			}
		case *ir.Broadcast:
			if a.Lanes == b.Lanes {
				return ir.MakeBroadcast(buildAdd(a.Value, b.Value), a.Lanes)
			}
		}
	}
	return nil
}

func distributeSubRampBroadcast(x, y ir.Expr) ir.Expr {
	switch a := x.(type) {
	case *ir.Ramp:
		switch b := y.(type) {
		case *ir.Ramp:
			if a.Lanes == b.Lanes {
				return ir.MakeRamp(buildSub(a.Base, b.Base), buildSub(a.Stride, b.Stride), a.Lanes)
			}
		case *ir.Broadcast:
			if a.Lanes == b.Lanes {
				return ir.MakeRamp(buildSub(a.Base, b.Value), a.Stride, a.Lanes)
			}
		}
	case *ir.Broadcast:
		switch b := y.(type) {
		case *ir.Broadcast:
			if a.Lanes == b.Lanes {
				return ir.MakeBroadcast(buildSub(a.Value, b.Value), a.Lanes)
			}
		}
	}
	return nil
}

// visitSub implements spec.md §4.3's Sub canonicalisation, including
// the Open Question (a) resolution (spec.md §9a, DESIGN.md).
func (s *simplifier) visitSub(n *ir.Sub) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	sub := n
	if changed(x, n.X) || changed(y, n.Y) {
		sub = ir.MakeSub(x, y)
	}
	if f := foldSub(sub); f != nil {
		return f
	}
	if r := ruleSub(sub); r != nil {
		return r
	}
	return sub
}

func ruleSub(n *ir.Sub) ir.Expr {
	x, y := n.X, n.Y
	if constfold.IsZero(y) {
		return x
	}
	if ir.Equal(x, y) {
		return constfold.MakeConst(n.Typ, 0)
	}
	if r := distributeSubRampBroadcast(x, y); r != nil {
		return r
	}
	// Open question (a): a - (sub_b.a - sub_b.b) -> (a - sub_b.a) + sub_b.b,
	// preferring (a + sub_b.b) - sub_b.a when a is itself a simple constant.
	if subB, ok := y.(*ir.Sub); ok {
		if constfold.IsSimpleConst(x) {
			return buildSub(buildAdd(x, subB.Y), subB.X)
		}
		return buildAdd(buildSub(x, subB.X), subB.Y)
	}
	// (a+b)-a -> b; (a+b)-b -> a.
	if add, ok := x.(*ir.Add); ok {
		if ir.Equal(add.X, y) {
			return add.Y
		}
		if ir.Equal(add.Y, y) {
			return add.X
		}
	}
	// a-(a+b) -> -b is not representable without a unary negate node in
	// this IR (spec.md §3.2 has no Neg variant); it is rewritten to 0-b
	// for any b.
	if add, ok := y.(*ir.Add); ok && ir.Equal(x, add.X) {
		return buildSub(constfold.MakeConst(n.Typ, 0), add.Y)
	}
	if add, ok := y.(*ir.Add); ok && ir.Equal(x, add.Y) {
		return buildSub(constfold.MakeConst(n.Typ, 0), add.X)
	}
	// Quaternary: (a+b)-(c+b) -> a-c (and the three other pairings).
	if addX, okX := x.(*ir.Add); okX {
		if addY, okY := y.(*ir.Add); okY {
			switch {
			case ir.Equal(addX.Y, addY.Y):
				return buildSub(addX.X, addY.X)
			case ir.Equal(addX.Y, addY.X):
				return buildSub(addX.X, addY.Y)
			case ir.Equal(addX.X, addY.X):
				return buildSub(addX.Y, addY.Y)
			case ir.Equal(addX.X, addY.Y):
				return buildSub(addX.Y, addY.X)
			}
		}
	}
	// Reassociation outward: (a-c1)-c2 -> a-(c1+c2); (a+c1)-c2 -> a+(c1-c2).
	if sub1, ok := x.(*ir.Sub); ok && constfold.IsSimpleConst(sub1.Y) && constfold.IsSimpleConst(y) {
		if sum := foldAdd(ir.MakeAdd(sub1.Y, y)); sum != nil {
			return buildSub(sub1.X, sum)
		}
	}
	if add1, ok := x.(*ir.Add); ok && constfold.IsSimpleConst(add1.Y) && constfold.IsSimpleConst(y) {
		if diff := foldSub(ir.MakeSub(add1.Y, y)); diff != nil {
			return buildAdd(add1.X, diff)
		}
	}
	// Factor extraction: a*k - b*k -> (a-b)*k (all four pairings).
	if r := factorSubMul(x, y); r != nil {
		return r
	}
	if x != n.X || y != n.Y {
		return buildSub(x, y)
	}
	return nil
}

// visitMul implements spec.md §4.3's Mul canonicalisation.
func (s *simplifier) visitMul(n *ir.Mul) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	mul := n
	if changed(x, n.X) || changed(y, n.Y) {
		mul = ir.MakeMul(x, y)
	}
	if f := foldMul(mul); f != nil {
		return f
	}
	if r := ruleMul(mul); r != nil {
		return r
	}
	return mul
}

func ruleMul(n *ir.Mul) ir.Expr {
	x, y := n.X, n.Y
	if constfold.IsSimpleConst(x) && !constfold.IsSimpleConst(y) {
		x, y = y, x
	}
	if constfold.IsZero(y) {
		return constfold.MakeConst(n.Typ, 0)
	}
	if constfold.IsOne(y) {
		return x
	}
	if x != n.X || y != n.Y {
		return buildMul(x, y)
	}
	return nil
}
