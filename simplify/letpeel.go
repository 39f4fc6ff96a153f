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

// letPlan is the result of peeling a Let/LetStmt's already-simplified
// value (spec.md §4.4 step 2).
type letPlan struct {
	// peeled is false when the value's outer structure did not match
	// any recognised shape ("otherwise stop").
	peeled bool
	// replacement substitutes for every use of the bound name. When
	// shadowName is empty this is the whole value (const or plain
	// variable case, direct substitution); otherwise it references
	// shadowName.
	replacement ir.Expr
	shadowName  string
	shadowValue ir.Expr
}

// planLet peels the outer structure of an already-simplified let value
// v bound to name (spec.md §4.4 step 2).
func planLet(name string, v ir.Expr) letPlan {
	if constfold.IsConst(v) {
		return letPlan{peeled: true, replacement: v}
	}
	if _, ok := v.(*ir.Variable); ok {
		return letPlan{peeled: true, replacement: v}
	}

	shadow := name + ".s"
	shadowVar := func(t ir.Type) ir.Expr { return ir.MakeVariable(shadow, t) }

	switch n := v.(type) {
	case *ir.Add:
		if c, ok := constfold.AsIntImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildAdd(shadowVar(n.X.Type()), c)}
		}
		if fc, ok := constfold.AsFloatImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildAdd(shadowVar(n.X.Type()), fc)}
		}
		if w, ok := n.Y.(*ir.Variable); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildAdd(shadowVar(n.X.Type()), w)}
		}
	case *ir.Sub:
		if c, ok := constfold.AsIntImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildSub(shadowVar(n.X.Type()), c)}
		}
		if fc, ok := constfold.AsFloatImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildSub(shadowVar(n.X.Type()), fc)}
		}
		if w, ok := n.Y.(*ir.Variable); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildSub(shadowVar(n.X.Type()), w)}
		}
	case *ir.Mul:
		if c, ok := constfold.AsIntImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildMul(shadowVar(n.X.Type()), c)}
		}
	case *ir.Div:
		if c, ok := constfold.AsIntImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildDiv(shadowVar(n.X.Type()), c)}
		}
	case *ir.Mod:
		if c, ok := constfold.AsIntImm(n.Y); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.X, replacement: buildMod(shadowVar(n.X.Type()), c)}
		}
	case *ir.Ramp:
		if _, ok := constfold.AsIntImm(n.Stride); ok {
			return letPlan{peeled: true, shadowName: shadow, shadowValue: n.Base, replacement: ir.MakeRamp(shadowVar(n.Base.Type()), n.Stride, n.Lanes)}
		}
	case *ir.Broadcast:
		return letPlan{peeled: true, shadowName: shadow, shadowValue: n.Value, replacement: ir.MakeBroadcast(shadowVar(n.Value.Type()), n.Lanes)}
	}
	return letPlan{}
}

// visitLet implements spec.md §4.4's let-peeling and dead-let
// elimination algorithm for the expression-level Let.
func (s *simplifier) visitLet(n *ir.Let) ir.Expr {
	v := s.expr(n.Value)
	plan := planLet(n.Name, v)

	if !plan.peeled {
		s.vars.Push(n.Name, VarInfo{})
		body := s.expr(n.Body)
		ref, _ := s.vars.Ref(n.Name)
		old := ref.OldUses
		s.vars.Pop(n.Name)
		if old == 0 && s.cfg.RemoveDeadLets {
			return body
		}
		if !changed(v, n.Value) && !changed(body, n.Body) {
			return n
		}
		return ir.MakeLet(n.Name, v, body)
	}

	if plan.shadowName == "" {
		s.vars.Push(n.Name, VarInfo{Replacement: plan.replacement})
		body := s.expr(n.Body)
		s.vars.Pop(n.Name)
		return body
	}

	s.vars.Push(plan.shadowName, VarInfo{})
	shadowRef, _ := s.vars.Ref(plan.shadowName)
	nRef := VarInfo{Replacement: plan.replacement, Shadow: shadowRef}
	s.vars.Push(n.Name, nRef)
	body := s.expr(n.Body)
	pushedN, _ := s.vars.Ref(n.Name)
	nOld := pushedN.OldUses
	s.vars.Pop(n.Name)
	s.vars.Pop(plan.shadowName)

	switch {
	case nOld == 0:
		if s.cfg.RemoveDeadLets {
			return body
		}
		return ir.MakeLet(plan.shadowName, plan.shadowValue, body)
	case nOld == 1:
		// Single use: peeling bought nothing, so inline the shadow's
		// actual value back in and re-simplify instead of wrapping a
		// Let that binds a name used exactly once (spec.md §4.4).
		return s.expr(substExpr(body, plan.shadowName, plan.shadowValue))
	default:
		return ir.MakeLet(plan.shadowName, plan.shadowValue, body)
	}
}
