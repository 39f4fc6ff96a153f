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
	"github.com/gx-org/halide-simplify/ir"
)

// visitLoad implements spec.md §4.3's Load rule: a Broadcast index
// reads the same scalar location Lanes times.
func (s *simplifier) visitLoad(n *ir.Load) ir.Expr {
	idx := s.expr(n.Index)
	if bc, ok := idx.(*ir.Broadcast); ok {
		scalar := ir.MakeLoad(n.Typ.WithLanes(1), n.Name, bc.Value, n.Image)
		return ir.MakeBroadcast(scalar, bc.Lanes)
	}
	if !changed(idx, n.Index) {
		return n
	}
	return ir.MakeLoad(n.Typ, n.Name, idx, n.Image)
}

// visitRamp simplifies Base and Stride, and degenerates a zero-stride
// ramp into a Broadcast.
func (s *simplifier) visitRamp(n *ir.Ramp) ir.Expr {
	base, stride := s.expr(n.Base), s.expr(n.Stride)
	ramp := n
	if changed(base, n.Base) || changed(stride, n.Stride) {
		ramp = ir.MakeRamp(base, stride, n.Lanes)
	}
	if constfold.IsZero(ramp.Stride) {
		return ir.MakeBroadcast(ramp.Base, ramp.Lanes)
	}
	return ramp
}

// visitBroadcast simplifies Value, and degenerates a single-lane
// broadcast back into its scalar value.
func (s *simplifier) visitBroadcast(n *ir.Broadcast) ir.Expr {
	value := s.expr(n.Value)
	if n.Lanes == 1 {
		return value
	}
	if !changed(value, n.Value) {
		return n
	}
	return ir.MakeBroadcast(value, n.Lanes)
}

// visitCall simplifies every argument and, for Image calls, records a
// use of the synthetic "<name>.stride.<i>"/"<name>.min.<i>" variables
// whenever such a name is bound in scope, so dead-let elimination never
// strips a binding a buffer access still depends on implicitly.
func (s *simplifier) visitCall(n *ir.Call) ir.Expr {
	args := make([]ir.Expr, len(n.Args))
	anyChanged := false
	for i, a := range n.Args {
		args[i] = s.expr(a)
		if changed(args[i], a) {
			anyChanged = true
		}
	}
	if n.Kind == ir.Image {
		for i := range n.Args {
			for _, suffix := range [...]string{"stride", "min"} {
				name := n.Name + "." + suffix + "." + strconv.Itoa(i)
				if ref, ok := s.vars.Ref(name); ok {
					ref.OldUses++
				}
			}
		}
	}
	if !anyChanged {
		return n
	}
	return ir.MakeCall(n.Typ, n.Name, args, n.Kind)
}
