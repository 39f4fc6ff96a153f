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

// Node is the root of the IR tree (spec.md §3.2, §3.3). node() is
// unexported so only types defined in this package satisfy Node,
// matching build/ir/ir.go's own marker-method pattern: it prevents an
// external package from fabricating nodes that skip the Make*
// factories' structural validation.
type Node interface {
	node()
}

// Expr is an immutable, typed, sharable expression node (spec.md
// §3.2).
type Expr interface {
	Node
	// Type returns the expression's static type.
	Type() Type
	// String renders the expression for diagnostics (spec.md §4.7).
	String() string
	expr()
}

// Stmt is an immutable statement node (spec.md §3.3).
type Stmt interface {
	Node
	// String renders the statement for diagnostics (spec.md §4.7).
	String() string
	stmt()
}

// SameAs reports whether a and b are the exact same node (spec.md
// §3.5): every node is produced once by a factory, so two Node values
// are SameAs iff they are the same pointer. Go's interface equality
// already compares dynamic pointer value when the dynamic types match,
// so this is just that comparison made explicit and documented.
func SameAs(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}
