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

package scope_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/scope"
)

func TestPushGetPop(t *testing.T) {
	s := scope.New[int]()
	s.Push("x", 1)
	if v, ok := s.Get("x"); !ok || v != 1 {
		t.Fatalf("Get(x) = %v, %v, want 1, true", v, ok)
	}
	s.Pop("x")
	if _, ok := s.Get("x"); ok {
		t.Fatalf("Get(x) after Pop found a value, want none")
	}
}

func TestShadowing(t *testing.T) {
	s := scope.New[int]()
	s.Push("x", 1)
	s.Push("x", 2)
	if v, ok := s.Get("x"); !ok || v != 2 {
		t.Fatalf("Get(x) = %v, %v, want 2, true", v, ok)
	}
	s.Pop("x")
	if v, ok := s.Get("x"); !ok || v != 1 {
		t.Fatalf("Get(x) after inner Pop = %v, %v, want 1, true", v, ok)
	}
	s.Pop("x")
	if s.Contains("x") {
		t.Fatalf("Contains(x) after both pops, want false")
	}
}

func TestRefMutatesInPlace(t *testing.T) {
	type counted struct{ uses int }
	s := scope.New[counted]()
	s.Push("n", counted{})
	ref, ok := s.Ref("n")
	if !ok {
		t.Fatalf("Ref(n) not found")
	}
	ref.uses++
	ref.uses++
	got, ok := s.Get("n")
	if !ok || got.uses != 2 {
		t.Fatalf("Get(n) = %+v, %v, want uses=2", got, ok)
	}
}

func TestPopWithoutPushPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Pop without Push did not panic")
		}
	}()
	scope.New[int]().Pop("missing")
}
