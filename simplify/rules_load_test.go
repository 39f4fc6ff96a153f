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

	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/simplify"
)

func TestLoadRamBroadcastRules(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	lit := func(v int64) *ir.IntImm { return ir.MakeIntImm(i32, v) }

	tests := []struct {
		name string
		in   ir.Expr
		want ir.Expr
	}{
		{
			"broadcast-index-reads-once",
			ir.MakeLoad(i32.WithLanes(4), "buf", ir.MakeBroadcast(x, 4), false),
			ir.MakeBroadcast(ir.MakeLoad(i32, "buf", x, false), 4),
		},
		{"zero-stride-ramp-is-broadcast", ir.MakeRamp(x, lit(0), 4), ir.MakeBroadcast(x, 4)},
		{"single-lane-broadcast-collapses", ir.MakeBroadcast(x, 1), x},
	}
	for _, test := range tests {
		got := simplify.Expr(test.in, simplify.Config{})
		if !ir.Equal(got, test.want) {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}

func TestCallRecordsImageStrideUse(t *testing.T) {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	call := ir.MakeCall(i32, "buf", []ir.Expr{x}, ir.Image)
	got := simplify.Expr(call, simplify.Config{})
	if !ir.SameAs(got, call) {
		t.Errorf("Call with no simplifiable args should come back same_as identity, got %s", got)
	}
}
