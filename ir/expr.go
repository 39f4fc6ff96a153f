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

import "github.com/gx-org/halide-simplify/diag"

// CallType distinguishes the four kinds of Call spec.md §3.2 names.
type CallType int

// The four call types a Call node can carry.
const (
	Image CallType = iota
	Halide
	Extern
	Intrinsic
)

func (c CallType) String() string {
	switch c {
	case Image:
		return "image"
	case Halide:
		return "halide"
	case Extern:
		return "extern"
	case Intrinsic:
		return "intrinsic"
	default:
		return "invalid"
	}
}

// One struct per expression variant (spec.md §3.2), following
// build/ir/ir.go's and internal/interp/canonical/canonical.go's shared
// convention of a distinct Go type per node kind so that a type switch
// over Expr is an exhaustive, tagged-variant dispatch (spec.md §9
// "Variant dispatch").
type (
	// IntImm is an integer literal.
	IntImm struct {
		Typ   Type
		Value int64
	}

	// FloatImm is a floating point literal.
	FloatImm struct {
		Typ   Type
		Value float64
	}

	// Cast converts X to type Typ.
	Cast struct {
		Typ Type
		X   Expr
	}

	// Variable references a named value bound by a Let, LetStmt or For.
	Variable struct {
		Name string
		Typ  Type
	}

	// Add is X + Y.
	Add struct {
		X, Y Expr
		Typ  Type
	}

	// Sub is X - Y.
	Sub struct {
		X, Y Expr
		Typ  Type
	}

	// Mul is X * Y.
	Mul struct {
		X, Y Expr
		Typ  Type
	}

	// Div is X / Y (Euclidean for integers; spec.md §4.1).
	Div struct {
		X, Y Expr
		Typ  Type
	}

	// Mod is X % Y (Euclidean for integers; spec.md §4.1).
	Mod struct {
		X, Y Expr
		Typ  Type
	}

	// Min is min(X, Y).
	Min struct {
		X, Y Expr
		Typ  Type
	}

	// Max is max(X, Y).
	Max struct {
		X, Y Expr
		Typ  Type
	}

	// EQ is X == Y.
	EQ struct {
		X, Y Expr
		Typ  Type
	}

	// NE is X != Y.
	NE struct {
		X, Y Expr
		Typ  Type
	}

	// LT is X < Y.
	LT struct {
		X, Y Expr
		Typ  Type
	}

	// LE is X <= Y.
	LE struct {
		X, Y Expr
		Typ  Type
	}

	// GT is X > Y.
	GT struct {
		X, Y Expr
		Typ  Type
	}

	// GE is X >= Y.
	GE struct {
		X, Y Expr
		Typ  Type
	}

	// And is X && Y.
	And struct {
		X, Y Expr
		Typ  Type
	}

	// Or is X || Y.
	Or struct {
		X, Y Expr
		Typ  Type
	}

	// Not is !X.
	Not struct {
		X   Expr
		Typ Type
	}

	// Select is cond ? T : F.
	Select struct {
		Cond, T, F Expr
		Typ        Type
	}

	// Load reads from a named buffer at Index.
	Load struct {
		Typ   Type
		Name  string
		Index Expr
		// Image is true when Name refers to an Image buffer, false
		// when it refers to a Param (spec.md §3.2 "image ref, param
		// ref"); the simplifier never reads through the buffer, only
		// through Name, so a bool tag carries exactly as much as it
		// needs.
		Image bool
	}

	// Ramp is the vector [Base, Base+Stride, ..., Base+(Lanes-1)*Stride].
	Ramp struct {
		Base, Stride Expr
		Lanes        int
		Typ          Type
	}

	// Broadcast is Value repeated Lanes times.
	Broadcast struct {
		Value Expr
		Lanes int
		Typ   Type
	}

	// Call invokes a named function of the given CallType.
	Call struct {
		Typ  Type
		Name string
		Args []Expr
		Kind CallType
	}

	// Let is an expression-level binding: "let Name = Value in Body".
	Let struct {
		Name  string
		Value Expr
		Body  Expr
	}
)

func (*IntImm) node()    {}
func (*FloatImm) node()  {}
func (*Cast) node()      {}
func (*Variable) node()  {}
func (*Add) node()       {}
func (*Sub) node()       {}
func (*Mul) node()       {}
func (*Div) node()       {}
func (*Mod) node()       {}
func (*Min) node()       {}
func (*Max) node()       {}
func (*EQ) node()        {}
func (*NE) node()        {}
func (*LT) node()        {}
func (*LE) node()        {}
func (*GT) node()        {}
func (*GE) node()        {}
func (*And) node()       {}
func (*Or) node()        {}
func (*Not) node()       {}
func (*Select) node()    {}
func (*Load) node()      {}
func (*Ramp) node()      {}
func (*Broadcast) node() {}
func (*Call) node()      {}
func (*Let) node()       {}

func (*IntImm) expr()    {}
func (*FloatImm) expr()  {}
func (*Cast) expr()      {}
func (*Variable) expr()  {}
func (*Add) expr()       {}
func (*Sub) expr()       {}
func (*Mul) expr()       {}
func (*Div) expr()       {}
func (*Mod) expr()       {}
func (*Min) expr()       {}
func (*Max) expr()       {}
func (*EQ) expr()        {}
func (*NE) expr()        {}
func (*LT) expr()        {}
func (*LE) expr()        {}
func (*GT) expr()        {}
func (*GE) expr()        {}
func (*And) expr()       {}
func (*Or) expr()        {}
func (*Not) expr()       {}
func (*Select) expr()    {}
func (*Load) expr()      {}
func (*Ramp) expr()      {}
func (*Broadcast) expr() {}
func (*Call) expr()      {}
func (*Let) expr()       {}

func (e *IntImm) Type() Type    { return e.Typ }
func (e *FloatImm) Type() Type  { return e.Typ }
func (e *Cast) Type() Type      { return e.Typ }
func (e *Variable) Type() Type  { return e.Typ }
func (e *Add) Type() Type       { return e.Typ }
func (e *Sub) Type() Type       { return e.Typ }
func (e *Mul) Type() Type       { return e.Typ }
func (e *Div) Type() Type       { return e.Typ }
func (e *Mod) Type() Type       { return e.Typ }
func (e *Min) Type() Type       { return e.Typ }
func (e *Max) Type() Type       { return e.Typ }
func (e *EQ) Type() Type        { return e.Typ }
func (e *NE) Type() Type        { return e.Typ }
func (e *LT) Type() Type        { return e.Typ }
func (e *LE) Type() Type        { return e.Typ }
func (e *GT) Type() Type        { return e.Typ }
func (e *GE) Type() Type        { return e.Typ }
func (e *And) Type() Type       { return e.Typ }
func (e *Or) Type() Type        { return e.Typ }
func (e *Not) Type() Type       { return e.Typ }
func (e *Select) Type() Type    { return e.Typ }
func (e *Load) Type() Type      { return e.Typ }
func (e *Ramp) Type() Type      { return e.Typ }
func (e *Broadcast) Type() Type { return e.Typ }
func (e *Call) Type() Type      { return e.Typ }
func (e *Let) Type() Type       { return e.Body.Type() }

// requireEqualTypes panics via diag.Internal when x and y's operand
// types disagree (spec.md §3.2 "Structural invariants": "For any
// binary arithmetic or comparison, both operands share the same
// Type"). Factories are total except on violated structural
// invariants (spec.md §6), so this is a panic, not an error return,
// matching build/ir/ir.go's own Make* functions.
func requireEqualTypes(op string, x, y Expr) {
	if !x.Type().Equal(y.Type()) {
		panic(diag.Internal(diag.Errorf("%s: operand types disagree: %s vs %s", op, x.Type(), y.Type())))
	}
}

func requireScalar(op string, e Expr) {
	if !e.Type().IsScalar() {
		panic(diag.Internal(diag.Errorf("%s: expected a scalar operand, got %s", op, e.Type())))
	}
}

// MakeIntImm builds an integer literal (spec.md §3.2 IntImm).
func MakeIntImm(t Type, v int64) *IntImm { return &IntImm{Typ: t, Value: v} }

// MakeFloatImm builds a float literal (spec.md §3.2 FloatImm).
func MakeFloatImm(t Type, v float64) *FloatImm { return &FloatImm{Typ: t, Value: v} }

// MakeCast builds a Cast node. Per spec.md §3.2, inner.type must
// differ from the outer type; the simplifier's own "cast to same
// type" rule is what removes the redundant cast, not the factory, so
// the factory does not enforce inequality (a rewrite producing a
// same-type cast is simplified away downstream, it does not violate a
// structural invariant).
func MakeCast(t Type, x Expr) *Cast { return &Cast{Typ: t, X: x} }

// MakeVariable builds a Variable reference.
func MakeVariable(name string, t Type) *Variable { return &Variable{Name: name, Typ: t} }

func makeArith(kind string, mk func(x, y Expr, t Type) Expr, x, y Expr) Expr {
	requireEqualTypes(kind, x, y)
	return mk(x, y, x.Type())
}

// MakeAdd builds Add, requiring x and y to share a type.
func MakeAdd(x, y Expr) *Add {
	requireEqualTypes("Add", x, y)
	return &Add{X: x, Y: y, Typ: x.Type()}
}

// MakeSub builds Sub, requiring x and y to share a type.
func MakeSub(x, y Expr) *Sub {
	requireEqualTypes("Sub", x, y)
	return &Sub{X: x, Y: y, Typ: x.Type()}
}

// MakeMul builds Mul, requiring x and y to share a type.
func MakeMul(x, y Expr) *Mul {
	requireEqualTypes("Mul", x, y)
	return &Mul{X: x, Y: y, Typ: x.Type()}
}

// MakeDiv builds Div, requiring x and y to share a type.
func MakeDiv(x, y Expr) *Div {
	requireEqualTypes("Div", x, y)
	return &Div{X: x, Y: y, Typ: x.Type()}
}

// MakeMod builds Mod, requiring x and y to share a type.
func MakeMod(x, y Expr) *Mod {
	requireEqualTypes("Mod", x, y)
	return &Mod{X: x, Y: y, Typ: x.Type()}
}

// MakeMin builds Min, requiring x and y to share a type.
func MakeMin(x, y Expr) *Min {
	requireEqualTypes("Min", x, y)
	return &Min{X: x, Y: y, Typ: x.Type()}
}

// MakeMax builds Max, requiring x and y to share a type.
func MakeMax(x, y Expr) *Max {
	requireEqualTypes("Max", x, y)
	return &Max{X: x, Y: y, Typ: x.Type()}
}

func compareType(x Expr) Type {
	return BoolType.WithLanes(x.Type().Lanes)
}

// MakeEQ builds EQ; result is bool with the operands' vector width.
func MakeEQ(x, y Expr) *EQ {
	requireEqualTypes("EQ", x, y)
	return &EQ{X: x, Y: y, Typ: compareType(x)}
}

// MakeNE builds NE; result is bool with the operands' vector width.
func MakeNE(x, y Expr) *NE {
	requireEqualTypes("NE", x, y)
	return &NE{X: x, Y: y, Typ: compareType(x)}
}

// MakeLT builds LT; result is bool with the operands' vector width.
func MakeLT(x, y Expr) *LT {
	requireEqualTypes("LT", x, y)
	return &LT{X: x, Y: y, Typ: compareType(x)}
}

// MakeLE builds LE; result is bool with the operands' vector width.
func MakeLE(x, y Expr) *LE {
	requireEqualTypes("LE", x, y)
	return &LE{X: x, Y: y, Typ: compareType(x)}
}

// MakeGT builds GT; result is bool with the operands' vector width.
func MakeGT(x, y Expr) *GT {
	requireEqualTypes("GT", x, y)
	return &GT{X: x, Y: y, Typ: compareType(x)}
}

// MakeGE builds GE; result is bool with the operands' vector width.
func MakeGE(x, y Expr) *GE {
	requireEqualTypes("GE", x, y)
	return &GE{X: x, Y: y, Typ: compareType(x)}
}

// MakeAnd builds a boolean And.
func MakeAnd(x, y Expr) *And {
	requireEqualTypes("And", x, y)
	return &And{X: x, Y: y, Typ: x.Type()}
}

// MakeOr builds a boolean Or.
func MakeOr(x, y Expr) *Or {
	requireEqualTypes("Or", x, y)
	return &Or{X: x, Y: y, Typ: x.Type()}
}

// MakeNot builds a boolean negation.
func MakeNot(x Expr) *Not {
	return &Not{X: x, Typ: x.Type()}
}

// MakeSelect builds Select; t and f must share a type, cond must be
// bool with the same vector width as t/f (spec.md §3.2).
func MakeSelect(cond, t, f Expr) *Select {
	requireEqualTypes("Select", t, f)
	if cond.Type().Lanes != t.Type().Lanes {
		panic(diag.Internal(diag.Errorf("Select: cond has %d lanes, branches have %d", cond.Type().Lanes, t.Type().Lanes)))
	}
	return &Select{Cond: cond, T: t, F: f, Typ: t.Type()}
}

// MakeLoad builds a Load from a named buffer at index.
func MakeLoad(t Type, name string, index Expr, image bool) *Load {
	return &Load{Typ: t, Name: name, Index: index, Image: image}
}

// MakeRamp builds a Ramp; base and stride must be scalar and share a
// type (spec.md §3.2 structural invariant).
func MakeRamp(base, stride Expr, lanes int) *Ramp {
	requireScalar("Ramp base", base)
	requireScalar("Ramp stride", stride)
	requireEqualTypes("Ramp", base, stride)
	return &Ramp{Base: base, Stride: stride, Lanes: lanes, Typ: base.Type().WithLanes(lanes)}
}

// MakeBroadcast builds a Broadcast; value must be scalar.
func MakeBroadcast(value Expr, lanes int) *Broadcast {
	requireScalar("Broadcast value", value)
	return &Broadcast{Value: value, Lanes: lanes, Typ: value.Type().WithLanes(lanes)}
}

// MakeCall builds a Call node.
func MakeCall(t Type, name string, args []Expr, kind CallType) *Call {
	return &Call{Typ: t, Name: name, Args: args, Kind: kind}
}

// MakeLet builds an expression-level Let.
func MakeLet(name string, value, body Expr) *Let {
	return &Let{Name: name, Value: value, Body: body}
}
