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

package abicodec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kriptal/abicodec/pkg/abitype"
)

func TestDecodeBufferTooShort(t *testing.T) {
	_, err := Decode([]*abitype.Type{abitype.Uint256}, make([]byte, 16))
	assert.Error(t, err)
}

func TestDecodeNoTypesForData(t *testing.T) {
	_, err := Decode(nil, []byte{1})
	assert.Error(t, err)
}

func TestDecodeNoDataForTypes(t *testing.T) {
	_, err := Decode([]*abitype.Type{abitype.Uint256}, nil)
	assert.Error(t, err)
}

func TestDecodeEmptyTypesAndData(t *testing.T) {
	vals, err := Decode(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, vals)
}

func TestDecodeOffsetOutOfRange(t *testing.T) {
	// A String's offset word points far beyond the end of the buffer.
	data := make([]byte, 32)
	big.NewInt(1_000_000).FillBytes(data)
	_, err := DecodeValue(abitype.String, data)
	assert.Error(t, err)
}

func TestDecodeLengthTooLarge(t *testing.T) {
	data := make([]byte, 64)
	copy(data[0:32], encodeWord(32))
	big.NewInt(1 << 40).FillBytes(data[32:64])
	_, err := DecodeValue(abitype.String, data)
	assert.Error(t, err)
}

func TestDecodeFixedArrayOfStatics(t *testing.T) {
	arrType, err := abitype.NewFixedArray(3, abitype.Uint256)
	assert.NoError(t, err)
	values := []interface{}{big.NewInt(1), big.NewInt(2), big.NewInt(3)}

	data, err := EncodeValue(arrType, values)
	assert.NoError(t, err)
	assert.Len(t, data, 3*32)

	decoded, err := DecodeValue(arrType, data)
	assert.NoError(t, err)
	arr := decoded.([]interface{})
	assert.Equal(t, int64(1), arr[0].(*big.Int).Int64())
	assert.Equal(t, int64(2), arr[1].(*big.Int).Int64())
	assert.Equal(t, int64(3), arr[2].(*big.Int).Int64())
}

func TestDecodeFixedArrayOfDynamics(t *testing.T) {
	arrType, err := abitype.NewFixedArray(2, abitype.String)
	assert.NoError(t, err)
	values := []interface{}{"foo", "bar"}

	data, err := EncodeValue(arrType, values)
	assert.NoError(t, err)

	decoded, err := DecodeValue(arrType, data)
	assert.NoError(t, err)
	arr := decoded.([]interface{})
	assert.Equal(t, "foo", arr[0].(string))
	assert.Equal(t, "bar", arr[1].(string))
}
