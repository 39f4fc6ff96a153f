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

package ir

// Equal is deep structural equality over expression variants and their
// payloads (spec.md §3.4), fast-pathing on SameAs since immutable
// shared subterms are common after a bottom-up rewrite.
func Equal(a, b Node) bool {
	if SameAs(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch a := a.(type) {
	case Expr:
		b, ok := b.(Expr)
		return ok && equalExpr(a, b)
	case Stmt:
		b, ok := b.(Stmt)
		return ok && equalStmt(a, b)
	default:
		return false
	}
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalExpr(a, b Expr) bool {
	if SameAs(a, b) {
		return true
	}
	if !a.Type().Equal(b.Type()) {
		return false
	}
	switch a := a.(type) {
	case *IntImm:
		b, ok := b.(*IntImm)
		return ok && a.Value == b.Value
	case *FloatImm:
		b, ok := b.(*FloatImm)
		return ok && a.Value == b.Value
	case *Cast:
		b, ok := b.(*Cast)
		return ok && equalExpr(a.X, b.X)
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Name == b.Name
	case *Add:
		b, ok := b.(*Add)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Sub:
		b, ok := b.(*Sub)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Mul:
		b, ok := b.(*Mul)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Div:
		b, ok := b.(*Div)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Mod:
		b, ok := b.(*Mod)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Min:
		b, ok := b.(*Min)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Max:
		b, ok := b.(*Max)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *EQ:
		b, ok := b.(*EQ)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *NE:
		b, ok := b.(*NE)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *LT:
		b, ok := b.(*LT)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *LE:
		b, ok := b.(*LE)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *GT:
		b, ok := b.(*GT)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *GE:
		b, ok := b.(*GE)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *And:
		b, ok := b.(*And)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Or:
		b, ok := b.(*Or)
		return ok && equalExpr(a.X, b.X) && equalExpr(a.Y, b.Y)
	case *Not:
		b, ok := b.(*Not)
		return ok && equalExpr(a.X, b.X)
	case *Select:
		b, ok := b.(*Select)
		return ok && equalExpr(a.Cond, b.Cond) && equalExpr(a.T, b.T) && equalExpr(a.F, b.F)
	case *Load:
		b, ok := b.(*Load)
		return ok && a.Name == b.Name && a.Image == b.Image && equalExpr(a.Index, b.Index)
	case *Ramp:
		b, ok := b.(*Ramp)
		return ok && a.Lanes == b.Lanes && equalExpr(a.Base, b.Base) && equalExpr(a.Stride, b.Stride)
	case *Broadcast:
		b, ok := b.(*Broadcast)
		return ok && a.Lanes == b.Lanes && equalExpr(a.Value, b.Value)
	case *Call:
		b, ok := b.(*Call)
		return ok && a.Name == b.Name && a.Kind == b.Kind && equalExprs(a.Args, b.Args)
	case *Let:
		b, ok := b.(*Let)
		return ok && a.Name == b.Name && equalExpr(a.Value, b.Value) && equalExpr(a.Body, b.Body)
	default:
		return false
	}
}

func equalStmt(a, b Stmt) bool {
	if SameAs(a, b) {
		return true
	}
	switch a := a.(type) {
	case *LetStmt:
		b, ok := b.(*LetStmt)
		return ok && a.Name == b.Name && equalExpr(a.Value, b.Value) && equalStmt(a.Body, b.Body)
	case *AssertStmt:
		b, ok := b.(*AssertStmt)
		return ok && a.Message == b.Message && equalExpr(a.Cond, b.Cond)
	case *Pipeline:
		b, ok := b.(*Pipeline)
		if !ok || len(a.Stages) != len(b.Stages) {
			return false
		}
		for i := range a.Stages {
			if !equalStmt(a.Stages[i], b.Stages[i]) {
				return false
			}
		}
		return true
	case *For:
		b, ok := b.(*For)
		return ok && a.Name == b.Name && a.Kind == b.Kind &&
			equalExpr(a.Min, b.Min) && equalExpr(a.Extent, b.Extent) && equalStmt(a.Body, b.Body)
	case *Store:
		b, ok := b.(*Store)
		return ok && a.Name == b.Name && equalExpr(a.Index, b.Index) && equalExpr(a.Value, b.Value)
	case *Provide:
		b, ok := b.(*Provide)
		return ok && a.Name == b.Name && equalExprs(a.Args, b.Args) && equalExprs(a.Values, b.Values)
	case *Allocate:
		b, ok := b.(*Allocate)
		if !ok || a.Name != b.Name || !a.Typ.Equal(b.Typ) || !equalExprs(a.Extents, b.Extents) {
			return false
		}
		return equalStmt(a.Body, b.Body)
	case *Realize:
		b, ok := b.(*Realize)
		if !ok || a.Name != b.Name || len(a.Types) != len(b.Types) || len(a.Bounds) != len(b.Bounds) {
			return false
		}
		for i := range a.Types {
			if !a.Types[i].Equal(b.Types[i]) {
				return false
			}
		}
		for i := range a.Bounds {
			if !equalInterval(a.Bounds[i], b.Bounds[i]) {
				return false
			}
		}
		return equalStmt(a.Body, b.Body)
	case *Block:
		b, ok := b.(*Block)
		if !ok || !equalStmt(a.First, b.First) {
			return false
		}
		if a.Rest == nil || b.Rest == nil {
			return a.Rest == nil && b.Rest == nil
		}
		return equalStmt(a.Rest, b.Rest)
	default:
		return false
	}
}

func equalInterval(a, b Interval) bool {
	if (a.Min == nil) != (b.Min == nil) || (a.Max == nil) != (b.Max == nil) {
		return false
	}
	if a.Min != nil && !equalExpr(a.Min, b.Min) {
		return false
	}
	if a.Max != nil && !equalExpr(a.Max, b.Max) {
		return false
	}
	return true
}
