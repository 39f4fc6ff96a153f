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

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders e for diagnostics (spec.md §4.7's "print the
// offending IR"). It is not meant to be re-parsed.
func (e *IntImm) String() string   { return strconv.FormatInt(e.Value, 10) }
func (e *FloatImm) String() string { return strconv.FormatFloat(e.Value, 'g', -1, 64) }
func (e *Cast) String() string     { return fmt.Sprintf("cast(%s, %s)", e.Typ, e.X) }
func (e *Variable) String() string { return e.Name }
func (e *Add) String() string      { return fmt.Sprintf("(%s + %s)", e.X, e.Y) }
func (e *Sub) String() string      { return fmt.Sprintf("(%s - %s)", e.X, e.Y) }
func (e *Mul) String() string      { return fmt.Sprintf("(%s * %s)", e.X, e.Y) }
func (e *Div) String() string      { return fmt.Sprintf("(%s / %s)", e.X, e.Y) }
func (e *Mod) String() string      { return fmt.Sprintf("(%s %% %s)", e.X, e.Y) }
func (e *Min) String() string      { return fmt.Sprintf("min(%s, %s)", e.X, e.Y) }
func (e *Max) String() string      { return fmt.Sprintf("max(%s, %s)", e.X, e.Y) }
func (e *EQ) String() string       { return fmt.Sprintf("(%s == %s)", e.X, e.Y) }
func (e *NE) String() string       { return fmt.Sprintf("(%s != %s)", e.X, e.Y) }
func (e *LT) String() string       { return fmt.Sprintf("(%s < %s)", e.X, e.Y) }
func (e *LE) String() string       { return fmt.Sprintf("(%s <= %s)", e.X, e.Y) }
func (e *GT) String() string       { return fmt.Sprintf("(%s > %s)", e.X, e.Y) }
func (e *GE) String() string       { return fmt.Sprintf("(%s >= %s)", e.X, e.Y) }
func (e *And) String() string      { return fmt.Sprintf("(%s && %s)", e.X, e.Y) }
func (e *Or) String() string       { return fmt.Sprintf("(%s || %s)", e.X, e.Y) }
func (e *Not) String() string      { return fmt.Sprintf("!%s", e.X) }
func (e *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", e.Cond, e.T, e.F)
}
func (e *Load) String() string {
	return fmt.Sprintf("%s[%s]", e.Name, e.Index)
}
func (e *Ramp) String() string {
	return fmt.Sprintf("ramp(%s, %s, %d)", e.Base, e.Stride, e.Lanes)
}
func (e *Broadcast) String() string {
	return fmt.Sprintf("broadcast(%s, %d)", e.Value, e.Lanes)
}
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}
func (e *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", e.Name, e.Value, e.Body)
}

func (s *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s;\n%s", s.Name, s.Value, s.Body)
}
func (s *AssertStmt) String() string {
	return fmt.Sprintf("assert(%s, %q)", s.Cond, s.Message)
}
func (s *Pipeline) String() string {
	parts := make([]string, len(s.Stages))
	for i, st := range s.Stages {
		parts[i] = st.String()
	}
	return strings.Join(parts, "\n")
}
func (s *For) String() string {
	return fmt.Sprintf("for (%s, %s, %s, %s) {\n%s\n}", s.Name, s.Min, s.Extent, s.Kind, s.Body)
}
func (s *Store) String() string {
	return fmt.Sprintf("%s[%s] = %s", s.Name, s.Index, s.Value)
}
func (s *Provide) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = a.String()
	}
	vals := make([]string, len(s.Values))
	for i, v := range s.Values {
		vals[i] = v.String()
	}
	return fmt.Sprintf("provide %s(%s) = {%s}", s.Name, strings.Join(args, ", "), strings.Join(vals, ", "))
}
func (s *Allocate) String() string {
	extents := make([]string, len(s.Extents))
	for i, e := range s.Extents {
		extents[i] = e.String()
	}
	return fmt.Sprintf("allocate %s[%s](%s) {\n%s\n}", s.Name, s.Typ, strings.Join(extents, ", "), s.Body)
}
func (s *Realize) String() string {
	bounds := make([]string, len(s.Bounds))
	for i, b := range s.Bounds {
		bounds[i] = fmt.Sprintf("[%s, %s]", exprOrUnknown(b.Min), exprOrUnknown(b.Max))
	}
	return fmt.Sprintf("realize %s(%s) {\n%s\n}", s.Name, strings.Join(bounds, ", "), s.Body)
}
func (s *Block) String() string {
	if s.Rest == nil {
		return s.First.String()
	}
	return fmt.Sprintf("%s\n%s", s.First, s.Rest)
}

func exprOrUnknown(e Expr) string {
	if e == nil {
		return "?"
	}
	return e.String()
}
