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

package constfold

import "github.com/gx-org/halide-simplify/ir"

// AsIntImm reports whether e is an integer literal.
func AsIntImm(e ir.Expr) (*ir.IntImm, bool) {
	v, ok := e.(*ir.IntImm)
	return v, ok
}

// AsFloatImm reports whether e is a float literal.
func AsFloatImm(e ir.Expr) (*ir.FloatImm, bool) {
	v, ok := e.(*ir.FloatImm)
	return v, ok
}

// IsConst reports whether e is a literal (spec.md §6 is_const): an
// IntImm or FloatImm, or a Broadcast of one (the GLOSSARY's "Simple
// constant" definition, supplemented from
// original_source/src/Simplify.cpp's own is_const, which recognises a
// Broadcast of a literal as constant too — see SPEC_FULL.md
// "Supplemented features" #2).
func IsConst(e ir.Expr) bool {
	switch v := e.(type) {
	case *ir.IntImm, *ir.FloatImm:
		return true
	case *ir.Broadcast:
		return IsConst(v.Value)
	default:
		return false
	}
}

// IsSimpleConst reports whether e is a "simple constant" per the
// GLOSSARY: an immediate integer or float (or broadcast thereof), but
// NOT a Cast of one (spec.md "Arithmetic canonicalisation": "a Cast of
// a constant" is explicitly excluded from this set).
func IsSimpleConst(e ir.Expr) bool {
	return IsConst(e)
}

// IsZero reports whether e is the literal 0.
func IsZero(e ir.Expr) bool {
	switch v := e.(type) {
	case *ir.IntImm:
		return v.Value == 0
	case *ir.FloatImm:
		return v.Value == 0
	default:
		return false
	}
}

// IsOne reports whether e is the literal 1.
func IsOne(e ir.Expr) bool {
	switch v := e.(type) {
	case *ir.IntImm:
		return v.Value == 1
	case *ir.FloatImm:
		return v.Value == 1
	default:
		return false
	}
}

// IsPositiveConst reports whether e is a literal integer or float
// strictly greater than zero.
func IsPositiveConst(e ir.Expr) bool {
	switch v := e.(type) {
	case *ir.IntImm:
		if v.Typ.K == ir.UInt {
			return uint64(v.Value) > 0
		}
		return v.Value > 0
	case *ir.FloatImm:
		return v.Value > 0
	default:
		return false
	}
}

// IsNegativeConst reports whether e is a literal signed integer or
// float strictly less than zero. Unsigned literals are never negative.
func IsNegativeConst(e ir.Expr) bool {
	switch v := e.(type) {
	case *ir.IntImm:
		return v.Typ.K == ir.Int && v.Value < 0
	case *ir.FloatImm:
		return v.Value < 0
	default:
		return false
	}
}

// MakeConst builds the canonical-width literal for t holding value v.
func MakeConst(t ir.Type, v int64) ir.Expr {
	if t.K == ir.Float {
		return ir.MakeFloatImm(t, float64(v))
	}
	if t.K == ir.UInt {
		return ir.MakeIntImm(t, int64(WrapUint(t, uint64(v))))
	}
	return ir.MakeIntImm(t, WrapInt(t, v))
}

// MakeBool builds a boolean literal, matching the lane count of like.
func MakeBool(v bool, like ir.Type) ir.Expr {
	val := int64(0)
	if v {
		val = 1
	}
	return ir.MakeIntImm(ir.BoolType.WithLanes(like.Lanes), val)
}

// ConstTrue reports whether e is the boolean literal true.
func ConstTrue(e ir.Expr) bool {
	v, ok := e.(*ir.IntImm)
	return ok && v.Typ.IsBool() && v.Value != 0
}

// ConstFalse reports whether e is the boolean literal false.
func ConstFalse(e ir.Expr) bool {
	v, ok := e.(*ir.IntImm)
	return ok && v.Typ.IsBool() && v.Value == 0
}

// ConstCastInt recognises Cast(T, IntImm) where T's width is at most
// 32 bits (spec.md "Constant folding": "const_castint recognises
// Cast(T, IntImm) when T's width ≤ 32 bits"), and yields the value
// truncated into T's canonical range. It also accepts a bare IntImm
// (already in its own canonical range).
func ConstCastInt(e ir.Expr) (value int64, typ ir.Type, ok bool) {
	switch v := e.(type) {
	case *ir.IntImm:
		return v.Value, v.Typ, true
	case *ir.Cast:
		if v.Typ.K == ir.Float || v.Typ.Bits > 32 {
			return 0, ir.Type{}, false
		}
		inner, ok := v.X.(*ir.IntImm)
		if !ok {
			return 0, ir.Type{}, false
		}
		if v.Typ.K == ir.UInt {
			return int64(WrapUint(v.Typ, uint64(inner.Value))), v.Typ, true
		}
		return WrapInt(v.Typ, inner.Value), v.Typ, true
	default:
		return 0, ir.Type{}, false
	}
}

// DoIndirectIntCast computes the value of Cast(to, Cast(from, v))
// folded directly: cast v (already canonicalised to "from") onward
// into "to"'s range (spec.md "Cast rules": do_indirect_int_cast).
func DoIndirectIntCast(from ir.Type, v int64, to ir.Type) int64 {
	if to.K == ir.UInt {
		return int64(WrapUint(to, uint64(v)))
	}
	return WrapInt(to, v)
}
