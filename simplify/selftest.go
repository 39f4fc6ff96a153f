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
	"go.uber.org/multierr"

	"github.com/gx-org/halide-simplify/diag"
	"github.com/gx-org/halide-simplify/ir"
)

// SelfTest runs the concrete end-to-end scenarios and round-trip laws
// the rule catalogue is expected to satisfy, as a release-gate battery
// rather than a substitute for package tests. Every failure is
// collected and returned together (following
// golang/encoding/loader.go's multierr.Append pattern) instead of
// bailing at the first mismatch, so a regression run reports its full
// blast radius in one pass.
func SelfTest() error {
	var err error

	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	y := ir.MakeVariable("y", i32)
	a := ir.MakeVariable("a", i32)
	b := ir.MakeVariable("b", i32)
	c := ir.MakeVariable("c", i32)
	d := ir.MakeVariable("d", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }
	cfg := Config{RemoveDeadLets: true}
	check := func(name string, got, want ir.Expr) {
		if !ir.Equal(got, want) {
			err = multierr.Append(err, diag.Errorf("self-test %s: got %s, want %s", name, got, want))
		}
	}

	// 1. Cast(i8, IntImm(1232)) -> IntImm(-48).
	i8 := ir.Scalar(ir.Int, 8)
	check("cast-i8-wrap",
		Expr(ir.MakeCast(i8, lit(1232)), cfg),
		ir.MakeIntImm(i8, -48))

	// 2. 3 + x -> x + 3.
	check("add-const-right",
		Expr(ir.MakeAdd(lit(3), x), cfg),
		ir.MakeAdd(x, lit(3)))

	// 3. (x + 3) + 4 -> x + 7.
	check("add-reassociate",
		Expr(ir.MakeAdd(ir.MakeAdd(x, lit(3)), lit(4)), cfg),
		ir.MakeAdd(x, lit(7)))

	// 4. Ramp(x,2,3) + Ramp(y,4,3) -> Ramp(x+y, 6, 3).
	check("add-ramp-ramp",
		Expr(ir.MakeAdd(ir.MakeRamp(x, lit(2), 3), ir.MakeRamp(y, lit(4), 3)), cfg),
		ir.MakeRamp(ir.MakeAdd(x, y), lit(6), 3))

	// 5. (x/3)*3 + x%3 -> x.
	check("divmod-reconstruct",
		Expr(ir.MakeAdd(ir.MakeMul(ir.MakeDiv(x, lit(3)), lit(3)), ir.MakeMod(x, lit(3))), cfg),
		x)

	// 6. min((x+7)/8*8, x) -> x.
	roundUp8 := ir.MakeMul(ir.MakeDiv(ir.MakeAdd(x, lit(7)), lit(8)), lit(8))
	check("min-roundup",
		Expr(ir.MakeMin(roundUp8, x), cfg),
		x)

	// 7. min(clamp(x,-10,14), clamp(y,-10,14)) -> clamp(min(x,y),-10,14).
	clampX := ir.MakeMax(ir.MakeMin(x, lit(14)), lit(-10))
	clampY := ir.MakeMax(ir.MakeMin(y, lit(14)), lit(-10))
	check("min-clamp-merge",
		Expr(ir.MakeMin(clampX, clampY), cfg),
		ir.MakeMax(ir.MakeMin(ir.MakeMin(x, y), lit(14)), lit(-10)))

	// 8. cast(u16,-1) < cast(u16,65535) -> false.
	u16 := ir.UInt16Type
	check("cast-unsigned-compare",
		Expr(ir.MakeLT(ir.MakeCast(u16, lit(-1)), ir.MakeCast(u16, lit(65535))), cfg),
		ir.MakeIntImm(ir.BoolType, 0))

	// 9. let x = 3 in x + 4 -> IntImm(7) (expr Let).
	check("let-const-fold",
		Expr(ir.MakeLet("x", lit(3), ir.MakeAdd(ir.MakeVariable("x", i32), lit(4))), cfg),
		lit(7))

	// 10. let vec = Ramp(x*2+7,3,4) in vec + Broadcast(2,4) ->
	// Ramp(x*2+9, 3, 4), fully flattened (single use inlines the peeled
	// shadow rather than re-wrapping a Let, spec.md §4.4).
	vecValue := ir.MakeRamp(ir.MakeAdd(ir.MakeMul(x, lit(2)), lit(7)), lit(3), 4)
	vecUse := ir.MakeAdd(ir.MakeVariable("vec", vecValue.Type()), ir.MakeBroadcast(lit(2), 4))
	check("let-peel-single-use-inline",
		Expr(ir.MakeLet("vec", vecValue, vecUse), cfg),
		ir.MakeRamp(ir.MakeAdd(ir.MakeMul(x, lit(2)), lit(9)), lit(3), 4))

	// 11. select(a != b, c, d) -> select(a == b, d, c).
	check("select-ne-normalise",
		Expr(ir.MakeSelect(ir.MakeNE(a, b), c, d), cfg),
		ir.MakeSelect(ir.MakeEQ(a, b), d, c))

	// 12. !(x < y) -> y <= x, represented canonically as the
	// already-normal-form Not(LT(x,y)): LE is never retained as a first
	// class node (spec.md "EQ/LT are primary"), so the input is already
	// at its fixed point and must come back identity-equal.
	notLT := ir.MakeNot(ir.MakeLT(x, y))
	if got := Expr(notLT, cfg); !ir.SameAs(got, notLT) {
		err = multierr.Append(err, diag.Errorf("self-test not-lt-fixed-point: expected same_as identity, got a rebuilt node"))
	}

	// 13. AssertStmt(false, "msg") aborts compile.
	func() {
		defer func() {
			if r := recover(); r == nil {
				err = multierr.Append(err, diag.Errorf("self-test assert-false-aborts: expected a panic, got none"))
			}
		}()
		Stmt(ir.MakeAssertStmt(ir.MakeIntImm(ir.BoolType, 0), "msg"), cfg)
	}()

	err = multierr.Append(err, roundTripLaws(cfg, x, y, a))
	return err
}

// roundTripLaws checks spec.md §8's four round-trip laws on a handful
// of concrete instantiations.
func roundTripLaws(cfg Config, x, y, p ir.Expr) error {
	var err error

	// simplify(a+b) == simplify(b+a). Instantiated with a literal and a
	// variable so both orderings resolve to the same canonical form
	// (two bare variables would stay positionally distinct, since
	// nothing in the operand set triggers a reordering rule).
	three := ir.MakeIntImm(x.Type(), 3)
	lhs := Expr(ir.MakeAdd(three, x), cfg)
	rhs := Expr(ir.MakeAdd(x, three), cfg)
	if !ir.Equal(lhs, rhs) {
		err = multierr.Append(err, diag.Errorf("round-trip add-commute: simplify(a+b)=%s, simplify(b+a)=%s", lhs, rhs))
	}

	// simplify(min(a, max(a, b))) == simplify(a).
	minMax := Expr(ir.MakeMin(x, ir.MakeMax(x, y)), cfg)
	justA := Expr(x, cfg)
	if !ir.Equal(minMax, justA) {
		err = multierr.Append(err, diag.Errorf("round-trip min-max-absorb: simplify(min(a,max(a,b)))=%s, simplify(a)=%s", minMax, justA))
	}

	// simplify(!!p) == simplify(p), for boolean p.
	boolP, ok := p.(*ir.Variable)
	if !ok {
		boolP = ir.MakeVariable("p", ir.BoolType)
	} else {
		boolP = ir.MakeVariable(boolP.Name, ir.BoolType)
	}
	doubleNot := Expr(ir.MakeNot(ir.MakeNot(boolP)), cfg)
	justP := Expr(boolP, cfg)
	if !ir.Equal(doubleNot, justP) {
		err = multierr.Append(err, diag.Errorf("round-trip double-not: simplify(!!p)=%s, simplify(p)=%s", doubleNot, justP))
	}

	// simplify(let n = v in body) == simplify(body[n := v]), for
	// side-effect-free v: instantiated with v = x+1 and body = n*2.
	v := ir.MakeAdd(x, ir.MakeIntImm(ir.Int32Type, 1))
	letForm := Expr(ir.MakeLet("n", v, ir.MakeMul(ir.MakeVariable("n", v.Type()), ir.MakeIntImm(ir.Int32Type, 2))), cfg)
	substituted := Expr(ir.MakeMul(v, ir.MakeIntImm(ir.Int32Type, 2)), cfg)
	if !ir.Equal(letForm, substituted) {
		err = multierr.Append(err, diag.Errorf("round-trip let-substitute: simplify(let)=%s, simplify(substituted)=%s", letForm, substituted))
	}

	return err
}
