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

// asLE recognises the canonical form LE(a,b) is rewritten into at
// construction time, !LT(b,a), so that And can merge two such shapes
// sharing a side.
func asLE(e ir.Expr) (lhs, rhs ir.Expr, ok bool) {
	not, ok1 := e.(*ir.Not)
	if !ok1 {
		return nil, nil, false
	}
	lt, ok2 := not.X.(*ir.LT)
	if !ok2 {
		return nil, nil, false
	}
	return lt.Y, lt.X, true
}

func makeLE(lhs, rhs ir.Expr) ir.Expr {
	return ir.MakeNot(ir.MakeLT(rhs, lhs))
}

// visitAnd implements spec.md §4.3's Boolean rules for And.
func (s *simplifier) visitAnd(n *ir.And) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	and := n
	if changed(x, n.X) || changed(y, n.Y) {
		and = ir.MakeAnd(x, y)
	}
	if constfold.ConstFalse(and.X) || constfold.ConstFalse(and.Y) {
		return constfold.MakeBool(false, and.Typ)
	}
	if constfold.ConstTrue(and.X) {
		return and.Y
	}
	if constfold.ConstTrue(and.Y) {
		return and.X
	}
	// Merge comparisons sharing a side: x<=a && x<=b -> x<=min(a,b);
	// a<=x && b<=x -> max(a,b)<=x.
	if lx, rx, ok1 := asLE(and.X); ok1 {
		if ly, ry, ok2 := asLE(and.Y); ok2 {
			if ir.Equal(lx, ly) {
				return makeLE(lx, buildMinExpr(rx, ry))
			}
			if ir.Equal(rx, ry) {
				return makeLE(buildMaxExpr(lx, ly), rx)
			}
		}
	}
	return and
}

// visitOr implements spec.md §4.3's Boolean rules for Or.
func (s *simplifier) visitOr(n *ir.Or) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	or := n
	if changed(x, n.X) || changed(y, n.Y) {
		or = ir.MakeOr(x, y)
	}
	if constfold.ConstTrue(or.X) || constfold.ConstTrue(or.Y) {
		return constfold.MakeBool(true, or.Typ)
	}
	if constfold.ConstFalse(or.X) {
		return or.Y
	}
	if constfold.ConstFalse(or.Y) {
		return or.X
	}
	return or
}

// visitNot implements spec.md §4.3's Boolean rules for Not: constant
// folding, double-negation cancellation, and pushing through a
// Broadcast. Not over a primary comparison (EQ/LT) is already in
// canonical form by construction (see rules_compare.go) and needs no
// further rewrite here.
func (s *simplifier) visitNot(n *ir.Not) ir.Expr {
	x := s.expr(n.X)
	not := n
	if changed(x, n.X) {
		not = ir.MakeNot(x)
	}
	if constfold.ConstTrue(not.X) {
		return constfold.MakeBool(false, not.Typ)
	}
	if constfold.ConstFalse(not.X) {
		return constfold.MakeBool(true, not.Typ)
	}
	if inner, ok := not.X.(*ir.Not); ok {
		return inner.X
	}
	if bc, ok := not.X.(*ir.Broadcast); ok {
		return ir.MakeBroadcast(s.expr(ir.MakeNot(bc.Value)), bc.Lanes)
	}
	return not
}
