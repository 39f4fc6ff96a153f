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

package allocbounds

import (
	"github.com/gx-org/halide-simplify/boundsanalysis"
	"github.com/gx-org/halide-simplify/constfold"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/scope"
)

// ProvideOracle is the default TouchedBoxOracle: it finds every
// Provide that writes to the named function inside body and, per
// dimension, unions the boundsanalysis interval of that dimension's
// index expression across all such writes. Grounded on
// original_source/src/AllocationBoundsInference.cpp's box_touched,
// whose real implementation (in Bounds.cpp, not included in this
// pack) walks Provide/Call nodes the same way; the union-of-accesses
// approach here is the natural Go-native reading of that contract
// using this module's own bounds oracle (spec.md §4.5) instead of
// reimplementing a second, parallel interval-arithmetic pass.
//
// Like spec.md §4.6's For rule, a loop with literal min/extent pushes
// its own iteration bound onto the scope while its body is walked, so
// an index expression referencing the loop variable resolves to a
// real interval instead of Undefined.
type ProvideOracle struct {
	// Scope seeds bounds for any free variable (outer lets, enclosing
	// loops not present in body itself) an index expression
	// references. May be nil.
	Scope *scope.Stack[boundsanalysis.Interval]
}

// BoxTouched implements TouchedBoxOracle.
func (o *ProvideOracle) BoxTouched(body ir.Stmt, name string, ndims int) Box {
	sc := o.Scope
	if sc == nil {
		sc = scope.New[boundsanalysis.Interval]()
	}
	w := &provideWalker{name: name, ndims: ndims, sc: sc, box: make(Box, ndims), found: make([]bool, ndims)}
	w.walk(body)
	return w.box
}

type provideWalker struct {
	name  string
	ndims int
	sc    *scope.Stack[boundsanalysis.Interval]
	box   Box
	found []bool
}

func (w *provideWalker) walk(s ir.Stmt) {
	switch n := s.(type) {
	case nil:
	case *ir.LetStmt:
		iv := boundsanalysis.Of(n.Value, w.sc)
		w.sc.Push(n.Name, iv)
		w.walk(n.Body)
		w.sc.Pop(n.Name)
	case *ir.AssertStmt:
	case *ir.Pipeline:
		for _, stage := range n.Stages {
			w.walk(stage)
		}
	case *ir.For:
		minImm, minOK := constfold.AsIntImm(n.Min)
		extentImm, extentOK := constfold.AsIntImm(n.Extent)
		if minOK && extentOK {
			hi := ir.MakeIntImm(n.Min.Type(), minImm.Value+extentImm.Value-1)
			w.sc.Push(n.Name, boundsanalysis.Interval{Min: n.Min, Max: hi})
		} else {
			w.sc.Push(n.Name, boundsanalysis.Undefined)
		}
		w.walk(n.Body)
		w.sc.Pop(n.Name)
	case *ir.Store:
	case *ir.Provide:
		if n.Name == w.name {
			w.record(n)
		}
	case *ir.Allocate:
		w.walk(n.Body)
	case *ir.Realize:
		w.walk(n.Body)
	case *ir.Block:
		w.walk(n.First)
		w.walk(n.Rest)
	}
}

func (w *provideWalker) record(p *ir.Provide) {
	for i := 0; i < w.ndims && i < len(p.Args); i++ {
		iv := boundsanalysis.Of(p.Args[i], w.sc)
		if !w.found[i] {
			w.box[i] = iv
			w.found[i] = true
			continue
		}
		w.box[i] = unionInterval(w.box[i], iv)
	}
}

// unionInterval widens a to also cover b. A nil endpoint on either
// side (spec.md §4.5 "undefined") makes the corresponding result
// endpoint nil too, since the width of an unknown-anchored region
// cannot be soundly bounded by taking a Min/Max against it.
func unionInterval(a, b ir.Interval) ir.Interval {
	out := ir.Interval{}
	if a.Min != nil && b.Min != nil {
		out.Min = ir.MakeMin(a.Min, b.Min)
	}
	if a.Max != nil && b.Max != nil {
		out.Max = ir.MakeMax(a.Max, b.Max)
	}
	return out
}
