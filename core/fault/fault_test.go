// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fault_test

import (
	"testing"

	"github.com/model-checking/rmc/core/fault"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const (
	errorMessage = "Some message"
	anError      = fault.Const(errorMessage)
	anotherError = fault.Const("another")
)

func TestConst(t *testing.T) {
	assert.Equal(t, errorMessage, anError.Error())
	wrapped := errors.Wrapf(anError, "record %d", 3)
	assert.EqualError(t, wrapped, "record 3: Some message")
	assert.True(t, errors.Cause(wrapped) == anError)
	assert.False(t, errors.Cause(wrapped) == anotherError)
}

func TestList(t *testing.T) {
	list := fault.List{}
	assert.Nil(t, list.First())
	assert.NoError(t, list.Err())

	list.Collect(nil)
	assert.Len(t, list, 0)

	list.Collect(anError)
	assert.Len(t, list, 1)
	assert.Equal(t, error(anError), list.First())
	assert.Equal(t, error(anError), list.Err())

	list.Collect(anotherError)
	assert.Len(t, list, 2)
	assert.Equal(t, error(anError), list.First())
	assert.EqualError(t, list.Err(), "Some message\nanother")
}
