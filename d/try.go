// Copyright 2026 Dolthub, Inc.
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

// Package d holds fatal-contract-violation helpers shared across the
// suffix table, indices and sampler. A contract violation here means a
// precondition the caller can never legally fail to meet (for example a
// sampled index outside the vocabulary) — panicking is preferable to
// threading an error value a caller could never meaningfully recover
// from.
package d

import "fmt"

type wrappedError struct {
	msg string
	err error
}

func (w wrappedError) Error() string {
	return w.msg
}

func (w wrappedError) Unwrap() error {
	return w.err
}

// Wrap annotates err with msg while preserving it for errors.Unwrap /
// errors.Is.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return wrappedError{msg, err}
}

// Unwrap returns the error wrapped by Wrap, or err itself if it wasn't
// wrapped.
func Unwrap(err error) error {
	if w, ok := err.(wrappedError); ok {
		return w.err
	}
	return err
}

// PanicIfError panics if err is non-nil.
func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIfTrue panics with msg if cond is true.
func PanicIfTrue(cond bool, msg string, args ...interface{}) {
	if cond {
		panic(fmt.Sprintf(msg, args...))
	}
}

// PanicIfFalse panics with msg if cond is false.
func PanicIfFalse(cond bool, msg string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}

// Chk panics if err is non-nil. It exists alongside PanicIfError to match
// the short spelling used at call sites that check errors inline.
func Chk(err error) {
	PanicIfError(err)
}
