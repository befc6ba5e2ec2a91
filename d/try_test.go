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

package d

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapUnwrap(t *testing.T) {
	assert := assert.New(t)

	err := errors.New("test")
	wrapped := Wrap(err, "test msg")
	assert.Equal(err, Unwrap(wrapped))
	assert.Equal(err, Unwrap(err))
	assert.Nil(Wrap(nil, "no error"))
}

func TestPanicIfError(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		PanicIfError(errors.New("boom"))
	})
	assert.NotPanics(func() {
		PanicIfError(nil)
	})
}

func TestPanicIfTrue(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		PanicIfTrue(true, "bad")
	})
	assert.NotPanics(func() {
		PanicIfTrue(false, "bad")
	})
}

func TestPanicIfFalse(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		PanicIfFalse(false, "bad")
	})
	assert.NotPanics(func() {
		PanicIfFalse(true, "bad")
	})
}
