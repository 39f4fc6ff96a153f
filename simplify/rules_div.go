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

func buildDiv(a, b ir.Expr) ir.Expr {
	n := ir.MakeDiv(a, b)
	if f := foldDiv(n); f != nil {
		return f
	}
	return n
}

// visitDiv implements spec.md §4.3's Division rules.
func (s *simplifier) visitDiv(n *ir.Div) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	div := n
	if changed(x, n.X) || changed(y, n.Y) {
		div = ir.MakeDiv(x, y)
	}
	if f := foldDiv(div); f != nil {
		return f
	}
	if r := s.ruleDiv(div); r != nil {
		return r
	}
	return div
}

func (s *simplifier) ruleDiv(n *ir.Div) ir.Expr {
	x, y := n.X, n.Y
	if constfold.IsZero(x) {
		return constfold.MakeConst(n.Typ, 0)
	}
	if constfold.IsOne(y) {
		return x
	}
	if ir.Equal(x, y) {
		return constfold.MakeConst(n.Typ, 1)
	}
	if n.Typ.K == ir.Float {
		if c, ok := constfold.AsFloatImm(y); ok && c.Value != 0 {
			// Float division by a constant rewrites to multiplication by
			// the reciprocal (spec.md "Float division by constant...").
			return ir.MakeMul(x, ir.MakeFloatImm(n.Typ, 1/c.Value))
		}
		return nil
	}

	ic, okc := constfold.AsIntImm(y)
	if okc && ic.Value != 0 && !constfold.IsConst(x) {
		// Constant-denominator numerator bounds (spec.md "if ib =
		// const(b), a is not const, and bounds_of_expr_in_scope(a) is
		// [nmin,nmax] with div_imp(nmax,ib) == div_imp(nmin,ib)").
		iv := boundsanalysis.Of(x, s.bounds)
		if minI, ok1 := constfold.AsIntImm(iv.Min); ok1 {
			if maxI, ok2 := constfold.AsIntImm(iv.Max); ok2 {
				qmin := constfold.DivImp(minI.Value, ic.Value)
				qmax := constfold.DivImp(maxI.Value, ic.Value)
				if qmin == qmax {
					return ir.MakeIntImm(n.Typ, qmin)
				}
			}
		}
	}

	// Ramp(x,s,w)/Broadcast(d,w) -> Ramp(x/d, s/d, w) when d|s.
	if ramp, ok := x.(*ir.Ramp); ok {
		if bc, ok2 := y.(*ir.Broadcast); ok2 && ramp.Lanes == bc.Lanes {
			if dC, okd := constfold.AsIntImm(bc.Value); okd && dC.Value != 0 {
				if sC, oks := constfold.AsIntImm(ramp.Stride); oks && sC.Value%dC.Value == 0 {
					return ir.MakeRamp(
						buildDiv(ramp.Base, bc.Value),
						ir.MakeIntImm(sC.Typ, constfold.DivImp(sC.Value, dC.Value)),
						ramp.Lanes)
				}
			}
			// ramp(x*a, c, w)/broadcast(a, w) -> broadcast(x, w) when
			// c*(w-1) < a, and its a|d generalization
			// ramp(x*a, c, w)/broadcast(d, w) -> broadcast(x/(d/a), w)
			// when a|d and c*(w-1) < a.
			if mulBase, okm := ramp.Base.(*ir.Mul); okm {
				aC, oka := constfold.AsIntImm(mulBase.Y)
				bC, okb := constfold.AsIntImm(bc.Value)
				cC, okc2 := constfold.AsIntImm(ramp.Stride)
				if oka && okb && okc2 && aC.Value != 0 && cC.Value*int64(ramp.Lanes-1) < aC.Value {
					switch {
					case aC.Value == bC.Value:
						return ir.MakeBroadcast(mulBase.X, bc.Lanes)
					case bC.Value%aC.Value == 0:
						return ir.MakeBroadcast(
							buildDiv(mulBase.X, ir.MakeIntImm(aC.Typ, bC.Value/aC.Value)),
							bc.Lanes)
					}
				}
			}
		}
	}

	if okc && ic.Value != 0 {
		// (x/c1)/c2 -> x/(c1*c2).
		if div1, ok := x.(*ir.Div); ok {
			if c1, ok1 := constfold.AsIntImm(div1.Y); ok1 {
				return ir.MakeDiv(div1.X, ir.MakeIntImm(c1.Typ, c1.Value*ic.Value))
			}
		}
		// (x/c1+c2)/c3 -> (x+c1*c2)/(c1*c3).
		if add1, ok := x.(*ir.Add); ok {
			if div1, ok1 := add1.X.(*ir.Div); ok1 {
				if c1, ok2 := constfold.AsIntImm(div1.Y); ok2 {
					if c2, ok3 := constfold.AsIntImm(add1.Y); ok3 {
						newNum := buildAdd(div1.X, ir.MakeIntImm(c1.Typ, c1.Value*c2.Value))
						newDen := ir.MakeIntImm(c1.Typ, c1.Value*ic.Value)
						return ir.MakeDiv(newNum, newDen)
					}
				}
			}
		}
		// (x*c1)/c2 -> x*(c1/c2) if c2|c1, else x/(c2/c1) if c1|c2.
		if mul1, ok := x.(*ir.Mul); ok {
			if c1, ok1 := constfold.AsIntImm(mul1.Y); ok1 && c1.Value != 0 {
				if c1.Value%ic.Value == 0 {
					return buildMul(mul1.X, ir.MakeIntImm(c1.Typ, c1.Value/ic.Value))
				}
				if ic.Value%c1.Value == 0 {
					return ir.MakeDiv(mul1.X, ir.MakeIntImm(c1.Typ, ic.Value/c1.Value))
				}
			}
		}
		// Pull multiples of the divisor out of a sum/difference:
		// (x*c1 + y)/c2 -> x*(c1/c2) + y/c2 when c2|c1 (and symmetric
		// orderings / subtraction).
		if r := pullDivisorMultiple(x, y, ic); r != nil {
			return r
		}
	}
	return nil
}

func pullDivisorMultiple(x, y ir.Expr, c2 *ir.IntImm) ir.Expr {
	extract := func(mul *ir.Mul) (ir.Expr, bool) {
		c1, ok := constfold.AsIntImm(mul.Y)
		if !ok || c1.Value%c2.Value != 0 {
			return nil, false
		}
		return buildMul(mul.X, ir.MakeIntImm(c1.Typ, c1.Value/c2.Value)), true
	}
	switch n := x.(type) {
	case *ir.Add:
		if mul, ok := n.X.(*ir.Mul); ok {
			if q, ok := extract(mul); ok {
				return buildAdd(q, buildDiv(n.Y, y))
			}
		}
		if mul, ok := n.Y.(*ir.Mul); ok {
			if q, ok := extract(mul); ok {
				return buildAdd(buildDiv(n.X, y), q)
			}
		}
	case *ir.Sub:
		if mul, ok := n.X.(*ir.Mul); ok {
			if q, ok := extract(mul); ok {
				return buildSub(q, buildDiv(n.Y, y))
			}
		}
	}
	return nil
}
