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

// Config controls the traversal (spec.md §4.1's `simplify(x,
// remove_dead_lets: bool)` signature, generalised into a struct since
// this package expects to grow further per-pass knobs the way the
// teacher's own pass configs do, e.g. internal/interp/canonical's
// Simplifier options).
type Config struct {
	// RemoveDeadLets enables the dead-let elimination path of §4.4 step
	// 5: a Let/LetStmt whose name is never referenced in its (already
	// simplified) body is stripped rather than re-wrapped.
	RemoveDeadLets bool
}
