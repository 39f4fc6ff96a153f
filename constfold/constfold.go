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

// Package constfold implements the constant-folding primitives the
// simplifier consults (spec.md §4.3, component #3 in §2): fixed-width
// wrapping integer arithmetic and Euclidean division/modulo, plus the
// small constant-recognising predicates spec.md §6 lists as consumed
// oracles (is_zero/one/const, is_positive_const/is_negative_const,
// const_true/const_false, make_const, make_bool).
//
// Grounded on interp/numbers/int.go's per-operator dispatch pattern
// (binaryInt's switch over a token), adapted from arbitrary-precision
// big.Int arithmetic to the fixed-width wrapping arithmetic spec.md
// §4.3 and §7 require, and on
// original_source/src/Simplify.cpp's div_imp/mod_imp semantics.
package constfold

import (
	"golang.org/x/exp/constraints"

	"github.com/gx-org/halide-simplify/ir"
)

// WrapInt truncates v to t's bit width and sign-extends the result,
// matching target-width two's complement wraparound (spec.md §7:
// "Integer overflow during folding... Defined to wrap in the target
// type's width using make_const").
func WrapInt(t ir.Type, v int64) int64 {
	if t.Bits >= 64 {
		return v
	}
	mask := int64(1)<<uint(t.Bits) - 1
	v &= mask
	signBit := int64(1) << uint(t.Bits-1)
	if v&signBit != 0 {
		v -= mask + 1
	}
	return v
}

// WrapUint truncates v to t's bit width.
func WrapUint(t ir.Type, v uint64) uint64 {
	if t.Bits >= 64 {
		return v
	}
	return v & (uint64(1)<<uint(t.Bits) - 1)
}

// DivImp is Euclidean integer division: the quotient paired with
// ModImp's non-negative remainder, so DivImp(a,b)*b + ModImp(a,b) == a.
// For b>0 this rounds toward negative infinity (spec.md §4.1
// guarantee 1). b must be non-zero.
func DivImp(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		if b > 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

// ModImp is the Euclidean remainder: it is always in [0, |b|)
// (spec.md §4.1 guarantee 1, §8 property 5). b must be non-zero.
func ModImp(a, b int64) int64 {
	r := a % b
	if r < 0 {
		if b > 0 {
			r += b
		} else {
			r -= b
		}
	}
	return r
}

// AddInt, SubInt and MulInt fold signed integer arithmetic with
// target-width wraparound.
func AddInt(t ir.Type, a, b int64) int64 { return WrapInt(t, a+b) }
func SubInt(t ir.Type, a, b int64) int64 { return WrapInt(t, a-b) }
func MulInt(t ir.Type, a, b int64) int64 { return WrapInt(t, a*b) }

// AddUint, SubUint and MulUint fold unsigned integer arithmetic with
// target-width wraparound (spec.md §4.3 "Integer ops use (unsigned)
// arithmetic when the result type is unsigned").
func AddUint(t ir.Type, a, b uint64) uint64 { return WrapUint(t, a+b) }
func SubUint(t ir.Type, a, b uint64) uint64 { return WrapUint(t, a-b) }
func MulUint(t ir.Type, a, b uint64) uint64 { return WrapUint(t, a*b) }

// DivImpU and ModImpU are unsigned division/modulo: truncation and the
// Euclidean definition coincide once both operands are non-negative.
func DivImpU(a, b uint64) uint64 { return a / b }
func ModImpU(a, b uint64) uint64 { return a % b }

// ordMin and ordMax fold min/max over any ordered numeric kind; spec.md
// §4.3's Min/Max folding needs this for int64, uint64 and float64
// alike, so it is written once against constraints.Ordered rather than
// copy-pasted per width/signedness the way an older revision of this
// file did.
func ordMin[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func ordMax[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// MinInt, MaxInt and the unsigned/float counterparts fold min/max.
func MinInt(a, b int64) int64       { return ordMin(a, b) }
func MaxInt(a, b int64) int64       { return ordMax(a, b) }
func MinUint(a, b uint64) uint64    { return ordMin(a, b) }
func MaxUint(a, b uint64) uint64    { return ordMax(a, b) }
func MinFloat(a, b float64) float64 { return ordMin(a, b) }
func MaxFloat(a, b float64) float64 { return ordMax(a, b) }
