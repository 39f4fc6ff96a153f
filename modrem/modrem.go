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

// Package modrem implements the modulus/remainder analysis the
// simplifier consults as an oracle (spec.md §4.5, component #4 in
// §2): for an integer expression under an alignment scope, it returns
// a pair (modulus, remainder) such that expr ≡ remainder (mod
// modulus).
//
// Grounded on the oracle-function shape of build/ir/eval.go's Eval
// (a pure function of an expression plus a caller-supplied context,
// no package-level state) and on
// original_source/src/Simplify.cpp's use of ModulusRemainder results
// in its Mod-rule family; the algorithm itself (spec.md §1 explicitly
// scopes `modulus_remainder` as an oracle whose "contracts are stated
// ... but algorithms are not") is this package's own, built to satisfy
// that contract.
package modrem

import (
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/scope"
)

// Info is the oracle's result: e ≡ Remainder (mod Modulus), with
// Modulus >= 1 and 0 <= Remainder < Modulus (spec.md §4.5).
type Info struct {
	Modulus   uint32
	Remainder int32
}

// Unknown is returned when nothing is known about an expression
// (spec.md §4.5: "Must return (1,0) when nothing is known").
var Unknown = Info{Modulus: 1, Remainder: 0}

// exactModulus is the sentinel modulus used to represent an exactly
// known value: an exact constant is "aligned to exactModulus with that
// remainder". Every power-of-two divisor b up to 2^30 divides it
// evenly, so the divisibility check in the Mod rules (spec.md "If the
// RHS is constant integer b... if mod_rem.modulus % b == 0") passes
// for those; any other divisor fails the check and the rule does not
// fire.
const exactModulus = uint32(1) << 30

func exact(v int64) Info {
	m := int64(exactModulus)
	r := v % m
	if r < 0 {
		r += m
	}
	return Info{Modulus: exactModulus, Remainder: int32(r)}
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func floorModI32(v int64, m uint32) int32 {
	mm := int64(m)
	r := v % mm
	if r < 0 {
		r += mm
	}
	return int32(r)
}

// Of computes the modulus/remainder of e under the given alignment
// scope (spec.md §4.5 modulus_remainder).
func Of(e ir.Expr, sc *scope.Stack[Info]) Info {
	switch e := e.(type) {
	case *ir.IntImm:
		return exact(e.Value)
	case *ir.Variable:
		if info, ok := sc.Get(e.Name); ok {
			return info
		}
		return Unknown
	case *ir.Broadcast:
		return Of(e.Value, sc)
	case *ir.Ramp:
		return Of(e.Base, sc)
	case *ir.Cast:
		if !e.Typ.K.IsInt() {
			return Unknown
		}
		return Of(e.X, sc)
	case *ir.Add:
		x, y := Of(e.X, sc), Of(e.Y, sc)
		m := gcd(x.Modulus, y.Modulus)
		if m == 0 {
			return Unknown
		}
		return Info{Modulus: m, Remainder: floorModI32(int64(x.Remainder)+int64(y.Remainder), m)}
	case *ir.Sub:
		x, y := Of(e.X, sc), Of(e.Y, sc)
		m := gcd(x.Modulus, y.Modulus)
		if m == 0 {
			return Unknown
		}
		return Info{Modulus: m, Remainder: floorModI32(int64(x.Remainder)-int64(y.Remainder), m)}
	case *ir.Mul:
		x, y := Of(e.X, sc), Of(e.Y, sc)
		if k, ok := exactValue(y); ok {
			return scaleByConst(x, k)
		}
		if k, ok := exactValue(x); ok {
			return scaleByConst(y, k)
		}
		return Unknown
	default:
		return Unknown
	}
}

// exactValue extracts the exact value an Info pins down, if any.
func exactValue(i Info) (int64, bool) {
	if i.Modulus != exactModulus {
		return 0, false
	}
	return int64(i.Remainder), true
}

// scaleByConst derives the alignment of k*x from x's alignment: if
// x ≡ r (mod m), then k*x ≡ k*r (mod k*m) (the defining property used
// by the Mod-rule family's mod-mul reconstruction, spec.md "Mod-mul
// reconstruction").
func scaleByConst(x Info, k int64) Info {
	if x.Modulus == exactModulus {
		return exact(k * int64(x.Remainder))
	}
	if k == 0 {
		return exact(0)
	}
	absK := k
	if absK < 0 {
		absK = -absK
	}
	newM := uint64(x.Modulus) * uint64(absK)
	if newM == 0 || newM > uint64(^uint32(0)) {
		return Unknown
	}
	m := uint32(newM)
	return Info{Modulus: m, Remainder: floorModI32(k*int64(x.Remainder), m)}
}
