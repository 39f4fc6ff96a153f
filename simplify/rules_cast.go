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

// visitCast implements spec.md §4.3 "Cast rules". Exercised by
// spec.md §8 scenario 1 (i8 wraparound) and scenario 8 (unsigned
// recast equivalence, consumed downstream by visitLT's folding).
func (s *simplifier) visitCast(n *ir.Cast) ir.Expr {
	x := s.expr(n.X)
	cast := n
	if changed(x, n.X) {
		cast = ir.MakeCast(n.Typ, x)
	}

	// Cast(T, x) with x.type == T -> x.
	if cast.X.Type().Equal(cast.Typ) {
		return cast.X
	}

	switch inner := cast.X.(type) {
	case *ir.FloatImm:
		if cast.Typ.K == ir.Float {
			return ir.MakeFloatImm(cast.Typ, inner.Value)
		}
		// Cast(i32, FloatImm c) -> IntImm((i32)c): C-style truncation
		// toward zero, then wrapped into the target width.
		v := int64(inner.Value)
		if cast.Typ.K == ir.UInt {
			return ir.MakeIntImm(cast.Typ, int64(constfold.WrapUint(cast.Typ, uint64(v))))
		}
		return ir.MakeIntImm(cast.Typ, constfold.WrapInt(cast.Typ, v))
	case *ir.IntImm:
		if cast.Typ.K == ir.Float {
			if inner.Typ.K == ir.UInt {
				return ir.MakeFloatImm(cast.Typ, float64(uint64(inner.Value)))
			}
			return ir.MakeFloatImm(cast.Typ, float64(inner.Value))
		}
		// Narrow/widen integer cast of an immediate folds directly to
		// the normalised literal in the target width (spec.md "Cast(u8,
		// 256) -> Cast(u8, 0)"; here it folds all the way to IntImm
		// since the inner value is already a literal).
		if cast.Typ.K == ir.UInt {
			return ir.MakeIntImm(cast.Typ, int64(constfold.WrapUint(cast.Typ, uint64(inner.Value))))
		}
		return ir.MakeIntImm(cast.Typ, constfold.WrapInt(cast.Typ, inner.Value))
	case *ir.Cast:
		// Cast(i32, Cast(U, IntImm c)) -> re-cast via do_indirect_int_cast.
		if cast.Typ.K != ir.Float {
			if v, from, ok := constfold.ConstCastInt(inner); ok {
				folded := constfold.DoIndirectIntCast(from, v, cast.Typ)
				return ir.MakeIntImm(cast.Typ, folded)
			}
		}
	}
	return cast
}
