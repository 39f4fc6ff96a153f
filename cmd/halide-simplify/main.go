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

// Command halide-simplify is a small demo front-end for the
// simplifier and its allocation-bounds collaborator: it builds a
// synthetic realize node, runs allocbounds.Infer over it (which
// invokes simplify.Expr internally for every emitted bound), and
// prints the resulting tree. --selftest instead runs the release-gate
// scenario battery; --version reports the build version.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/mod/semver"

	"github.com/gx-org/halide-simplify/allocbounds"
	"github.com/gx-org/halide-simplify/ir"
	"github.com/gx-org/halide-simplify/simplify"
)

// version is stamped at release time; kept here rather than read from
// module build info since this binary is meant to run standalone from
// a plain `go build`, outside the module-aware toolchain paths that
// populate debug.BuildInfo.Main.Version.
var version = "v0.1.0"

var (
	showVersion = flag.Bool("version", false, "print the build version and exit")
	selfTest    = flag.Bool("selftest", false, "run the simplifier's self-test battery and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		if !semver.IsValid(version) {
			fmt.Fprintf(os.Stderr, "invalid build version %q\n", version)
			os.Exit(1)
		}
		fmt.Println(semver.Canonical(version))
		return
	}

	if *selfTest {
		if err := simplify.SelfTest(); err != nil {
			fmt.Fprintf(os.Stderr, "self-test failed: %+v\n", err)
			os.Exit(1)
		}
		fmt.Println("self-test passed")
		return
	}

	if err := runDemo(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

// runDemo realizes a tiny one-dimensional function, f(x) = x*2 for x
// in [0, 8), and prints the statement tree allocbounds.Infer produces
// around it: the simplified f.x.{min,max,extent}_realized bindings
// wrapping the Realize node.
func runDemo() error {
	i32 := ir.Int32Type
	x := ir.MakeVariable("x", i32)
	provide := ir.MakeProvide("f", []ir.Expr{x}, []ir.Expr{ir.MakeMul(x, ir.MakeIntImm(i32, 2))})
	loop := ir.MakeFor("x", ir.MakeIntImm(i32, 0), ir.MakeIntImm(i32, 8), ir.Serial, provide)
	realize := ir.MakeRealize("f", []ir.Type{i32}, []ir.Interval{{}}, loop)

	funcs := map[string]allocbounds.FuncInfo{"f": {Args: []string{"x"}}}
	out, err := allocbounds.Infer(realize, funcs, &allocbounds.ProvideOracle{}, simplify.Config{RemoveDeadLets: true})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
