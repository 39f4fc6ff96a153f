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

// visitSelect implements spec.md §4.3's Select rules.
func (s *simplifier) visitSelect(n *ir.Select) ir.Expr {
	cond, t, f := s.expr(n.Cond), s.expr(n.T), s.expr(n.F)
	sel := n
	if changed(cond, n.Cond) || changed(t, n.T) || changed(f, n.F) {
		sel = ir.MakeSelect(cond, t, f)
	}
	if constfold.ConstTrue(sel.Cond) {
		return sel.T
	}
	if constfold.ConstFalse(sel.Cond) {
		return sel.F
	}
	if ir.Equal(sel.T, sel.F) {
		return sel.T
	}
	// Broadcast condition pushes into a scalar select under Broadcast
	// when both branches are themselves broadcasts of the same width.
	if bc, ok := sel.Cond.(*ir.Broadcast); ok {
		if tb, tok := sel.T.(*ir.Broadcast); tok && tb.Lanes == bc.Lanes {
			if fb, fok := sel.F.(*ir.Broadcast); fok && fb.Lanes == bc.Lanes {
				return ir.MakeBroadcast(s.expr(ir.MakeSelect(bc.Value, tb.Value, fb.Value)), bc.Lanes)
			}
		}
	}
	// select(!c,t,f) -> select(c,f,t); since NE/LE/GE conditions are
	// already rewritten into Not(EQ)/Not(LT) at construction time
	// (rules_compare.go), this both normalises select(a!=b,t,f) ->
	// select(a==b,f,t) and select(a<=b,t,f) -> select(b<a,f,t).
	if notNode, ok := sel.Cond.(*ir.Not); ok {
		return s.expr(ir.MakeSelect(notNode.X, sel.F, sel.T))
	}
	return sel
}
