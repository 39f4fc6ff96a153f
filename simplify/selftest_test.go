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

package simplify_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/simplify"
)

// TestSelfTestPasses runs the release-gate scenario battery as an
// ordinary test, so a regression trips `go test` directly rather than
// only a manually invoked release check.
func TestSelfTestPasses(t *testing.T) {
	if err := simplify.SelfTest(); err != nil {
		t.Fatalf("%v", err)
	}
}
