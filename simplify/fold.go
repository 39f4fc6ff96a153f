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

// bothIntImm and bothFloatImm extract two literals of the same
// variant, the shape every constant-folding rule in spec.md §4.3
// starts from ("All arithmetic, min/max and comparisons between two
// such constants are folded").
func bothIntImm(x, y ir.Expr) (a, b *ir.IntImm, ok bool) {
	a, ok1 := x.(*ir.IntImm)
	b, ok2 := y.(*ir.IntImm)
	return a, b, ok1 && ok2
}

func bothFloatImm(x, y ir.Expr) (a, b *ir.FloatImm, ok bool) {
	a, ok1 := x.(*ir.FloatImm)
	b, ok2 := y.(*ir.FloatImm)
	return a, b, ok1 && ok2
}

func foldAdd(n *ir.Add) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.AddUint(n.Typ, uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.AddInt(n.Typ, xi.Value, yi.Value))
	}
	if xf, yf, ok := bothFloatImm(n.X, n.Y); ok {
		return ir.MakeFloatImm(n.Typ, xf.Value+yf.Value)
	}
	return nil
}

func foldSub(n *ir.Sub) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.SubUint(n.Typ, uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.SubInt(n.Typ, xi.Value, yi.Value))
	}
	if xf, yf, ok := bothFloatImm(n.X, n.Y); ok {
		return ir.MakeFloatImm(n.Typ, xf.Value-yf.Value)
	}
	return nil
}

func foldMul(n *ir.Mul) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.MulUint(n.Typ, uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.MulInt(n.Typ, xi.Value, yi.Value))
	}
	if xf, yf, ok := bothFloatImm(n.X, n.Y); ok {
		return ir.MakeFloatImm(n.Typ, xf.Value*yf.Value)
	}
	return nil
}

func foldDiv(n *ir.Div) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok && yi.Value != 0 {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.DivImpU(uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.DivImp(xi.Value, yi.Value))
	}
	if xf, yf, ok := bothFloatImm(n.X, n.Y); ok && yf.Value != 0 {
		return ir.MakeFloatImm(n.Typ, xf.Value/yf.Value)
	}
	return nil
}

func foldMod(n *ir.Mod) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok && yi.Value != 0 {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.ModImpU(uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.ModImp(xi.Value, yi.Value))
	}
	return nil
}

func foldMin(n *ir.Min) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.MinUint(uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.MinInt(xi.Value, yi.Value))
	}
	if xf, yf, ok := bothFloatImm(n.X, n.Y); ok {
		return ir.MakeFloatImm(n.Typ, constfold.MinFloat(xf.Value, yf.Value))
	}
	return nil
}

func foldMax(n *ir.Max) ir.Expr {
	if xi, yi, ok := bothIntImm(n.X, n.Y); ok {
		if n.Typ.K == ir.UInt {
			return ir.MakeIntImm(n.Typ, int64(constfold.MaxUint(uint64(xi.Value), uint64(yi.Value))))
		}
		return ir.MakeIntImm(n.Typ, constfold.MaxInt(xi.Value, yi.Value))
	}
	if xf, yf, ok := bothFloatImm(n.X, n.Y); ok {
		return ir.MakeFloatImm(n.Typ, constfold.MaxFloat(xf.Value, yf.Value))
	}
	return nil
}

// foldCompare folds a comparison between two literals of matching
// variant, dispatching to the signed, unsigned or float comparator as
// the operand type demands (spec.md §4.3's unsigned-semantics rule
// applied to comparisons, exercised by spec.md §8 scenario 8).
func foldCompare(x, y ir.Expr, resultLike ir.Type, icmp func(a, b int64) bool, ucmp func(a, b uint64) bool, fcmp func(a, b float64) bool) ir.Expr {
	if xi, yi, ok := bothIntImm(x, y); ok {
		var v bool
		if xi.Typ.K == ir.UInt {
			v = ucmp(uint64(xi.Value), uint64(yi.Value))
		} else {
			v = icmp(xi.Value, yi.Value)
		}
		return constfold.MakeBool(v, resultLike)
	}
	if xf, yf, ok := bothFloatImm(x, y); ok {
		return constfold.MakeBool(fcmp(xf.Value, yf.Value), resultLike)
	}
	return nil
}
