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

package diag

import "fmt"

// Printable is anything that can render itself as IR text. ir.Node
// satisfies it; diag does not import ir to avoid a dependency cycle
// with the IR factories, which call diag.Internal.
type Printable interface {
	String() string
}

// AssertionFailure builds the diagnostic for a statically-false
// AssertStmt (spec.md §4.7, §6): the compiler is guaranteed to fail at
// runtime, so compilation aborts with the offending condition printed
// alongside the user's message, following
// original_source/src/Simplify.cpp's own two-part message (condition
// source plus user text) rather than the user message alone.
func AssertionFailure(cond Printable, message string) error {
	return fmt.Errorf("assertion is provably false at compile time: %s\ncondition: %s", message, cond.String())
}
