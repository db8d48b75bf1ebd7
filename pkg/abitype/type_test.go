// Copyright © 2022 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package abitype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementarySingletons(t *testing.T) {
	assert.Equal(t, "address", Address.String())
	assert.Equal(t, "bool", Bool.String())
	assert.Equal(t, "bytes", Bytes.String())
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "uint256", Uint256.String())
	assert.Equal(t, "int256", Int256.String())
	assert.False(t, Address.IsDynamic())
	assert.True(t, Bytes.IsDynamic())
	assert.True(t, String.IsDynamic())
}

func TestNewUintBounds(t *testing.T) {
	_, err := NewUint(0)
	assert.Error(t, err)

	_, err = NewUint(264)
	assert.Error(t, err)

	_, err = NewUint(9)
	assert.Error(t, err)

	u, err := NewUint(8)
	assert.NoError(t, err)
	assert.Equal(t, "uint8", u.String())

	u, err = NewUint(256)
	assert.NoError(t, err)
	assert.Equal(t, "uint256", u.String())
}

func TestNewIntBounds(t *testing.T) {
	i, err := NewInt(128)
	assert.NoError(t, err)
	assert.Equal(t, "int128", i.String())
	assert.Equal(t, 128, i.Bits())

	_, err = NewInt(7)
	assert.Error(t, err)
}

func TestNewFixedBytesBounds(t *testing.T) {
	_, err := NewFixedBytes(0)
	assert.Error(t, err)

	_, err = NewFixedBytes(33)
	assert.Error(t, err)

	fb, err := NewFixedBytes(32)
	assert.NoError(t, err)
	assert.Equal(t, "bytes32", fb.String())
	assert.Equal(t, 32, fb.FixedByteLength())
}

func TestFixedArrayAndArray(t *testing.T) {
	arr, err := NewFixedArray(3, Address)
	assert.NoError(t, err)
	assert.Equal(t, "address[3]", arr.String())
	assert.False(t, arr.IsDynamic())

	dynArr, err := NewFixedArray(2, String)
	assert.NoError(t, err)
	assert.True(t, dynArr.IsDynamic())

	unbounded := NewArray(Uint256)
	assert.Equal(t, "uint256[]", unbounded.String())
	assert.True(t, unbounded.IsDynamic())

	_, err = NewFixedArray(-1, Address)
	assert.Error(t, err)
}

func TestTupleDynamicPropagation(t *testing.T) {
	allStatic := NewTuple(Address, Uint256, Bool)
	assert.False(t, allStatic.IsDynamic())
	assert.Equal(t, "(address,uint256,bool)", allStatic.String())

	withDynamic := NewTuple(Address, Bytes)
	assert.True(t, withDynamic.IsDynamic())

	nested := NewTuple(allStatic, withDynamic)
	assert.True(t, nested.IsDynamic())
}

func TestEqual(t *testing.T) {
	a1, _ := NewUint(256)
	a2, _ := NewUint(256)
	assert.True(t, a1.Equal(a2))
	assert.True(t, Uint256.Equal(a1))

	b1, _ := NewUint(128)
	assert.False(t, a1.Equal(b1))

	assert.False(t, Uint256.Equal(Int256))

	t1 := NewTuple(Address, Uint256)
	t2 := NewTuple(Address, Uint256)
	t3 := NewTuple(Uint256, Address)
	assert.True(t, t1.Equal(t2))
	assert.False(t, t1.Equal(t3))

	arr1, _ := NewFixedArray(3, Address)
	arr2, _ := NewFixedArray(3, Address)
	arr3, _ := NewFixedArray(4, Address)
	assert.True(t, arr1.Equal(arr2))
	assert.False(t, arr1.Equal(arr3))

	assert.False(t, a1.Equal(nil))
}
