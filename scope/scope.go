// Copyright 2025 Google LLC
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

// Package scope provides the stack-of-frames symbol table the
// simplifier maintains while walking the IR (spec.md §2 row 2, §4.2):
// a name can be pushed more than once (shadowing), and popping a name
// always restores whatever was pushed before it.
//
// This is a from-scratch rewrite of the teacher's
// internal/base/scope.Scope[V], which models scopes as an immutable
// chain of parent pointers best suited to a read-mostly name
// resolver. The simplifier instead needs in-place mutation of a live
// frame's payload while recursing into a binder's body (spec.md
// §4.2's old_uses/new_uses counters are incremented as the traversal
// finds uses), so frames here are addressable (Ref) and the stack is
// an explicit mutable push/pop structure, not a persistent chain.
package scope

import "github.com/gx-org/halide-simplify/base/ordered"

// Stack is a scoped symbol table mapping a name to a stack of values
// of type V, one push per nested binder of that name.
type Stack[V any] struct {
	frames *ordered.Map[string, []V]
}

// New returns an empty scope stack.
func New[V any]() *Stack[V] {
	return &Stack[V]{frames: ordered.NewMap[string, []V]()}
}

// Push introduces a new binding for name, shadowing any existing
// binding of the same name. Must be paired with a later Pop.
func (s *Stack[V]) Push(name string, v V) {
	vs, _ := s.frames.Load(name)
	s.frames.Store(name, append(vs, v))
}

// Pop removes the innermost binding for name, restoring whatever
// binding (if any) existed before it. It is a programming error to
// call Pop for a name with no active Push; Pop panics in that case
// since it signals a mismatched push/pop pair in the traversal.
func (s *Stack[V]) Pop(name string) {
	vs, ok := s.frames.Load(name)
	if !ok || len(vs) == 0 {
		panic("scope: Pop called for name with no active Push: " + name)
	}
	if len(vs) == 1 {
		s.frames.Delete(name)
		return
	}
	s.frames.Store(name, vs[:len(vs)-1])
}

// Contains reports whether name has an active binding.
func (s *Stack[V]) Contains(name string) bool {
	vs, ok := s.frames.Load(name)
	return ok && len(vs) > 0
}

// Get returns the innermost binding for name, if any.
func (s *Stack[V]) Get(name string) (V, bool) {
	vs, ok := s.frames.Load(name)
	if !ok || len(vs) == 0 {
		var zero V
		return zero, false
	}
	return vs[len(vs)-1], true
}

// Ref returns a mutable pointer to the innermost binding for name, so
// callers can update in-place fields (e.g. usage counters) without a
// separate Push/Pop round trip.
func (s *Stack[V]) Ref(name string) (*V, bool) {
	vs, ok := s.frames.Load(name)
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return &vs[len(vs)-1], true
}
