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
	"strconv"

	"github.com/gx-org/halide-simplify/constfold"
	"github.com/gx-org/halide-simplify/diag"
	"github.com/gx-org/halide-simplify/ir"
)

// visitLetStmt implements spec.md §4.4's let-peeling algorithm for the
// statement-level LetStmt, mirroring visitLet.
func (s *simplifier) visitLetStmt(n *ir.LetStmt) ir.Stmt {
	v := s.expr(n.Value)
	plan := planLet(n.Name, v)

	if !plan.peeled {
		s.vars.Push(n.Name, VarInfo{})
		body := s.stmt(n.Body)
		ref, _ := s.vars.Ref(n.Name)
		old := ref.OldUses
		s.vars.Pop(n.Name)
		if old == 0 && s.cfg.RemoveDeadLets {
			return body
		}
		if !changed(v, n.Value) && !stmtChanged(body, n.Body) {
			return n
		}
		return ir.MakeLetStmt(n.Name, v, body)
	}

	if plan.shadowName == "" {
		s.vars.Push(n.Name, VarInfo{Replacement: plan.replacement})
		body := s.stmt(n.Body)
		s.vars.Pop(n.Name)
		return body
	}

	s.vars.Push(plan.shadowName, VarInfo{})
	shadowRef, _ := s.vars.Ref(plan.shadowName)
	nRef := VarInfo{Replacement: plan.replacement, Shadow: shadowRef}
	s.vars.Push(n.Name, nRef)
	body := s.stmt(n.Body)
	pushedN, _ := s.vars.Ref(n.Name)
	nOld := pushedN.OldUses
	s.vars.Pop(n.Name)
	s.vars.Pop(plan.shadowName)

	switch {
	case nOld == 0:
		if s.cfg.RemoveDeadLets {
			return body
		}
		return ir.MakeLetStmt(plan.shadowName, plan.shadowValue, body)
	case nOld == 1:
		// Single use: peeling bought nothing, so inline the shadow's
		// actual value back in and re-simplify instead of wrapping a
		// Let that binds a name used exactly once (spec.md §4.4).
		return s.stmt(substStmt(body, plan.shadowName, plan.shadowValue))
	default:
		return ir.MakeLetStmt(plan.shadowName, plan.shadowValue, body)
	}
}

// visitAssertStmt implements spec.md §4.7: a statically-false condition
// aborts compilation with a diagnostic; otherwise the assert survives.
func (s *simplifier) visitAssertStmt(n *ir.AssertStmt) ir.Stmt {
	cond := s.expr(n.Cond)
	if constfold.ConstFalse(cond) {
		panic(diag.AssertionFailure(cond, n.Message))
	}
	if !changed(cond, n.Cond) {
		return n
	}
	return ir.MakeAssertStmt(cond, n.Message)
}

// visitPipeline simplifies every stage.
func (s *simplifier) visitPipeline(n *ir.Pipeline) ir.Stmt {
	stages := make([]ir.Stmt, len(n.Stages))
	anyChanged := false
	for i, st := range n.Stages {
		stages[i] = s.stmt(st)
		if stmtChanged(stages[i], st) {
			anyChanged = true
		}
	}
	if !anyChanged {
		return n
	}
	return ir.MakePipeline(stages)
}

// visitFor implements spec.md §4.6's For rule: simplify Min and
// Extent, and when both are literal, push [min, min+extent-1] onto
// bounds_info around Body.
func (s *simplifier) visitFor(n *ir.For) ir.Stmt {
	min, extent := s.expr(n.Min), s.expr(n.Extent)

	minC, okMin := constfold.AsIntImm(min)
	extC, okExt := constfold.AsIntImm(extent)
	var body ir.Stmt
	if okMin && okExt {
		lo := ir.MakeIntImm(minC.Typ, minC.Value)
		hi := ir.MakeIntImm(minC.Typ, minC.Value+extC.Value-1)
		s.bounds.Push(n.Name, ir.Interval{Min: lo, Max: hi})
		body = s.stmt(n.Body)
		s.bounds.Pop(n.Name)
	} else {
		body = s.stmt(n.Body)
	}

	if !changed(min, n.Min) && !changed(extent, n.Extent) && !stmtChanged(body, n.Body) {
		return n
	}
	return ir.MakeFor(n.Name, min, extent, n.Kind, body)
}

func (s *simplifier) visitStore(n *ir.Store) ir.Stmt {
	idx := s.expr(n.Index)
	val := s.expr(n.Value)
	if !changed(idx, n.Index) && !changed(val, n.Value) {
		return n
	}
	return ir.MakeStore(n.Name, idx, val)
}

// visitProvide implements spec.md §4.3's "Same policy for Provide": a
// use of the synthetic "<name>.stride.<i>"/"<name>.min.<i>" variables
// is recorded for each argument position whose name is bound in scope.
func (s *simplifier) visitProvide(n *ir.Provide) ir.Stmt {
	args := make([]ir.Expr, len(n.Args))
	values := make([]ir.Expr, len(n.Values))
	anyChanged := false
	for i, a := range n.Args {
		args[i] = s.expr(a)
		if changed(args[i], a) {
			anyChanged = true
		}
	}
	for i, v := range n.Values {
		values[i] = s.expr(v)
		if changed(values[i], v) {
			anyChanged = true
		}
	}
	for i := range n.Args {
		for _, suffix := range [...]string{"stride", "min"} {
			name := n.Name + "." + suffix + "." + strconv.Itoa(i)
			if ref, ok := s.vars.Ref(name); ok {
				ref.OldUses++
			}
		}
	}
	if !anyChanged {
		return n
	}
	return ir.MakeProvide(n.Name, args, values)
}

func (s *simplifier) visitAllocate(n *ir.Allocate) ir.Stmt {
	extents := make([]ir.Expr, len(n.Extents))
	anyChanged := false
	for i, e := range n.Extents {
		extents[i] = s.expr(e)
		if changed(extents[i], e) {
			anyChanged = true
		}
	}
	body := s.stmt(n.Body)
	if !anyChanged && !stmtChanged(body, n.Body) {
		return n
	}
	return ir.MakeAllocate(n.Name, n.Typ, extents, body)
}

func (s *simplifier) visitRealize(n *ir.Realize) ir.Stmt {
	bounds := make([]ir.Interval, len(n.Bounds))
	anyChanged := false
	for i, b := range n.Bounds {
		lo, hi := s.expr(b.Min), s.expr(b.Max)
		if changed(lo, b.Min) || changed(hi, b.Max) {
			anyChanged = true
		}
		bounds[i] = ir.Interval{Min: lo, Max: hi}
	}
	body := s.stmt(n.Body)
	if !anyChanged && !stmtChanged(body, n.Body) {
		return n
	}
	return ir.MakeRealize(n.Name, n.Types, bounds, body)
}

// visitBlock implements spec.md §4.6's two Block rules.
func (s *simplifier) visitBlock(n *ir.Block) ir.Stmt {
	first := s.stmt(n.First)
	var rest ir.Stmt
	if n.Rest != nil {
		rest = s.stmt(n.Rest)
	}

	if a, ok := first.(*ir.AssertStmt); ok && constfold.ConstTrue(a.Cond) && rest != nil {
		return rest
	}

	if l1, ok1 := first.(*ir.LetStmt); ok1 {
		if l2, ok2 := rest.(*ir.LetStmt); ok2 && ir.Equal(l1.Value, l2.Value) {
			renamed := substStmt(l2.Body, l2.Name, ir.MakeVariable(l1.Name, l1.Value.Type()))
			return ir.MakeLetStmt(l1.Name, l1.Value, ir.MakeBlock(l1.Body, renamed))
		}
	}

	if !stmtChanged(first, n.First) && !stmtChanged(rest, n.Rest) {
		return n
	}
	return ir.MakeBlock(first, rest)
}

// substExpr replaces every free occurrence of the variable named old
// with replacement. Used by visitBlock's common-subexpression merge
// (renaming, where replacement is a bare Variable) and by let-peeling's
// single-use inlining (substituting the full peeled value back in,
// spec.md §4.4), on subtrees that do not re-bind old.
func substExpr(e ir.Expr, old string, replacement ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ir.IntImm, *ir.FloatImm:
		return e
	case *ir.Variable:
		if n.Name == old {
			return replacement
		}
		return n
	case *ir.Cast:
		x := substExpr(n.X, old, replacement)
		if x == n.X {
			return n
		}
		return ir.MakeCast(n.Typ, x)
	case *ir.Add:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeAdd(x, y) })
	case *ir.Sub:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeSub(x, y) })
	case *ir.Mul:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeMul(x, y) })
	case *ir.Div:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeDiv(x, y) })
	case *ir.Mod:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeMod(x, y) })
	case *ir.Min:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeMin(x, y) })
	case *ir.Max:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeMax(x, y) })
	case *ir.EQ:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeEQ(x, y) })
	case *ir.NE:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeNE(x, y) })
	case *ir.LT:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeLT(x, y) })
	case *ir.LE:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeLE(x, y) })
	case *ir.GT:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeGT(x, y) })
	case *ir.GE:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeGE(x, y) })
	case *ir.And:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeAnd(x, y) })
	case *ir.Or:
		return substBin(n, n.X, n.Y, old, replacement, func(x, y ir.Expr) ir.Expr { return ir.MakeOr(x, y) })
	case *ir.Not:
		x := substExpr(n.X, old, replacement)
		if x == n.X {
			return n
		}
		return ir.MakeNot(x)
	case *ir.Select:
		cond := substExpr(n.Cond, old, replacement)
		t := substExpr(n.T, old, replacement)
		f := substExpr(n.F, old, replacement)
		if cond == n.Cond && t == n.T && f == n.F {
			return n
		}
		return ir.MakeSelect(cond, t, f)
	case *ir.Load:
		idx := substExpr(n.Index, old, replacement)
		if idx == n.Index {
			return n
		}
		return ir.MakeLoad(n.Typ, n.Name, idx, n.Image)
	case *ir.Ramp:
		base := substExpr(n.Base, old, replacement)
		stride := substExpr(n.Stride, old, replacement)
		if base == n.Base && stride == n.Stride {
			return n
		}
		return ir.MakeRamp(base, stride, n.Lanes)
	case *ir.Broadcast:
		v := substExpr(n.Value, old, replacement)
		if v == n.Value {
			return n
		}
		return ir.MakeBroadcast(v, n.Lanes)
	case *ir.Call:
		args := make([]ir.Expr, len(n.Args))
		anyChanged := false
		for i, a := range n.Args {
			args[i] = substExpr(a, old, replacement)
			if args[i] != a {
				anyChanged = true
			}
		}
		if !anyChanged {
			return n
		}
		return ir.MakeCall(n.Typ, n.Name, args, n.Kind)
	case *ir.Let:
		value := substExpr(n.Value, old, replacement)
		if n.Name == old {
			// old is re-bound here: it no longer refers to the outer
			// binding inside Body, so Body is left untouched.
			if value == n.Value {
				return n
			}
			return ir.MakeLet(n.Name, value, n.Body)
		}
		body := substExpr(n.Body, old, replacement)
		if value == n.Value && body == n.Body {
			return n
		}
		return ir.MakeLet(n.Name, value, body)
	default:
		panic("simplify: substExpr: unhandled expr variant")
	}
}

func substBin(orig ir.Expr, x, y ir.Expr, old string, replacement ir.Expr, mk func(x, y ir.Expr) ir.Expr) ir.Expr {
	nx := substExpr(x, old, replacement)
	ny := substExpr(y, old, replacement)
	if nx == x && ny == y {
		return orig
	}
	return mk(nx, ny)
}

// substStmt substitutes replacement for every free occurrence of the
// variable named old within st (see substExpr).
func substStmt(st ir.Stmt, old string, replacement ir.Expr) ir.Stmt {
	if st == nil {
		return nil
	}
	switch n := st.(type) {
	case *ir.LetStmt:
		value := substExpr(n.Value, old, replacement)
		if n.Name == old {
			if value == n.Value {
				return n
			}
			return ir.MakeLetStmt(n.Name, value, n.Body)
		}
		body := substStmt(n.Body, old, replacement)
		if value == n.Value && body == n.Body {
			return n
		}
		return ir.MakeLetStmt(n.Name, value, body)
	case *ir.AssertStmt:
		cond := substExpr(n.Cond, old, replacement)
		if cond == n.Cond {
			return n
		}
		return ir.MakeAssertStmt(cond, n.Message)
	case *ir.Pipeline:
		stages := make([]ir.Stmt, len(n.Stages))
		anyChanged := false
		for i, stg := range n.Stages {
			stages[i] = substStmt(stg, old, replacement)
			if stages[i] != stg {
				anyChanged = true
			}
		}
		if !anyChanged {
			return n
		}
		return ir.MakePipeline(stages)
	case *ir.For:
		min := substExpr(n.Min, old, replacement)
		extent := substExpr(n.Extent, old, replacement)
		if n.Name == old {
			if min == n.Min && extent == n.Extent {
				return n
			}
			return ir.MakeFor(n.Name, min, extent, n.Kind, n.Body)
		}
		body := substStmt(n.Body, old, replacement)
		if min == n.Min && extent == n.Extent && body == n.Body {
			return n
		}
		return ir.MakeFor(n.Name, min, extent, n.Kind, body)
	case *ir.Store:
		idx := substExpr(n.Index, old, replacement)
		val := substExpr(n.Value, old, replacement)
		if idx == n.Index && val == n.Value {
			return n
		}
		return ir.MakeStore(n.Name, idx, val)
	case *ir.Provide:
		args := make([]ir.Expr, len(n.Args))
		values := make([]ir.Expr, len(n.Values))
		anyChanged := false
		for i, a := range n.Args {
			args[i] = substExpr(a, old, replacement)
			if args[i] != a {
				anyChanged = true
			}
		}
		for i, v := range n.Values {
			values[i] = substExpr(v, old, replacement)
			if values[i] != v {
				anyChanged = true
			}
		}
		if !anyChanged {
			return n
		}
		return ir.MakeProvide(n.Name, args, values)
	case *ir.Allocate:
		extents := make([]ir.Expr, len(n.Extents))
		anyChanged := false
		for i, e := range n.Extents {
			extents[i] = substExpr(e, old, replacement)
			if extents[i] != e {
				anyChanged = true
			}
		}
		body := substStmt(n.Body, old, replacement)
		if !anyChanged && body == n.Body {
			return n
		}
		return ir.MakeAllocate(n.Name, n.Typ, extents, body)
	case *ir.Realize:
		bounds := make([]ir.Interval, len(n.Bounds))
		anyChanged := false
		for i, b := range n.Bounds {
			lo := substExpr(b.Min, old, replacement)
			hi := substExpr(b.Max, old, replacement)
			if lo != b.Min || hi != b.Max {
				anyChanged = true
			}
			bounds[i] = ir.Interval{Min: lo, Max: hi}
		}
		body := substStmt(n.Body, old, replacement)
		if !anyChanged && body == n.Body {
			return n
		}
		return ir.MakeRealize(n.Name, n.Types, bounds, body)
	case *ir.Block:
		first := substStmt(n.First, old, replacement)
		rest := substStmt(n.Rest, old, replacement)
		if first == n.First && rest == n.Rest {
			return n
		}
		return ir.MakeBlock(first, rest)
	default:
		panic("simplify: substStmt: unhandled stmt variant")
	}
}
