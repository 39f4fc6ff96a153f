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

// Package diag accumulates and formats compiler diagnostics.
//
// The simplifier itself never returns an error (spec.md §7: it is a
// total function), but its collaborators (IR factories, the
// allocation-bounds inference pass, the self-test battery) need a
// consistent way to report invariant violations and user-facing
// compile errors. This package provides that, the way
// build/fmterr does in the teacher, trimmed to what this module
// actually needs: no source-position tracking, since this IR has none.
package diag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Internal marks an error as a compiler bug rather than a user error.
// Matches spec.md §7's "Structural invariant violation" row: a bug in
// an upstream pass, not something the user can fix.
func Internal(err error) error {
	return fmt.Errorf("internal error: this is a bug in the simplifier, not in the input program: %+v", err)
}

// Errorf builds a formatted error, with a stack trace attached via
// github.com/pkg/errors so `%+v` prints it.
func Errorf(format string, a ...any) error {
	return errors.Errorf(format, a...)
}

// Wrap attaches a message to an existing error, keeping its cause.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Errors accumulates zero or more errors encountered while walking a
// tree, so a caller can report every problem found instead of bailing
// at the first one.
type Errors struct {
	errs []error
}

// Append records an error. A nil error is ignored.
func (e *Errors) Append(err error) {
	if err == nil {
		return
	}
	e.errs = append(e.errs, err)
}

// Empty reports whether no error has been recorded.
func (e *Errors) Empty() bool {
	return e == nil || len(e.errs) == 0
}

// Errors returns the errors recorded so far, in order.
func (e *Errors) Errors() []error {
	if e == nil {
		return nil
	}
	return append([]error{}, e.errs...)
}

// ToError returns the accumulated errors as a single error, or nil if
// none were recorded.
func (e *Errors) ToError() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Error renders every accumulated error, one per line.
func (e *Errors) Error() string {
	ss := make([]string, len(e.errs))
	for i, err := range e.errs {
		ss[i] = err.Error()
	}
	return strings.Join(ss, "\n")
}
