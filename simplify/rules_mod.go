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
	"github.com/gx-org/halide-simplify/modrem"
)

func buildMod(a, b ir.Expr) ir.Expr {
	n := ir.MakeMod(a, b)
	if f := foldMod(n); f != nil {
		return f
	}
	return n
}

// visitMod implements spec.md §4.3's Modulo rules, consulting both
// oracles named in spec.md §4.5.
func (s *simplifier) visitMod(n *ir.Mod) ir.Expr {
	x, y := s.expr(n.X), s.expr(n.Y)
	mod := n
	if changed(x, n.X) || changed(y, n.Y) {
		mod = ir.MakeMod(x, y)
	}
	if f := foldMod(mod); f != nil {
		return f
	}
	if r := s.ruleMod(mod); r != nil {
		return r
	}
	return mod
}

func (s *simplifier) ruleMod(n *ir.Mod) ir.Expr {
	x, y := n.X, n.Y
	if constfold.IsZero(x) {
		return constfold.MakeConst(n.Typ, 0)
	}

	if bc, ok := y.(*ir.Broadcast); ok {
		if bC, okb := constfold.AsIntImm(bc.Value); okb && bC.Value != 0 {
			if ramp, ok2 := x.(*ir.Ramp); ok2 && ramp.Lanes == bc.Lanes {
				if sC, oks := constfold.AsIntImm(ramp.Stride); oks && sC.Value%bC.Value == 0 {
					return ir.MakeBroadcast(buildMod(ramp.Base, bc.Value), ramp.Lanes)
				}
			}
		}
		return nil
	}

	ic, okc := constfold.AsIntImm(y)
	if !okc || ic.Value == 0 {
		return nil
	}
	if ic.Value == 1 {
		return constfold.MakeConst(n.Typ, 0)
	}

	// If LHS bounds say 0 <= a < b, a % b -> a.
	iv := boundsanalysis.Of(x, s.bounds)
	if minI, ok1 := constfold.AsIntImm(iv.Min); ok1 {
		if maxI, ok2 := constfold.AsIntImm(iv.Max); ok2 {
			if minI.Value >= 0 && maxI.Value < ic.Value {
				return x
			}
		}
	}

	// Consult the alignment oracle: if mod_rem.modulus % b == 0, result
	// is mod_rem.remainder % b.
	info := modrem.Of(x, s.align)
	if ic.Value > 0 && uint64(info.Modulus)%uint64(ic.Value) == 0 {
		return ir.MakeIntImm(n.Typ, int64(info.Remainder)%ic.Value)
	}

	// (x*(b*k))%b -> 0; (x*(b*k)+y)%b -> y%b (and commuted).
	if mul, ok := x.(*ir.Mul); ok {
		if kb, okk := constfold.AsIntImm(mul.Y); okk && kb.Value%ic.Value == 0 {
			return constfold.MakeConst(n.Typ, 0)
		}
	}
	if add, ok := x.(*ir.Add); ok {
		if mul, ok1 := add.X.(*ir.Mul); ok1 {
			if kb, okk := constfold.AsIntImm(mul.Y); okk && kb.Value%ic.Value == 0 {
				return buildMod(add.Y, y)
			}
		}
		if mul, ok1 := add.Y.(*ir.Mul); ok1 {
			if kb, okk := constfold.AsIntImm(mul.Y); okk && kb.Value%ic.Value == 0 {
				return buildMod(add.X, y)
			}
		}
	}
	return nil
}
