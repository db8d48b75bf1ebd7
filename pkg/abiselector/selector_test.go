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

package abiselector

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kriptal/abicodec/pkg/abitype"
)

func TestFunctionSelectorKnownValue(t *testing.T) {
	// keccak256("transfer(address,uint256)")[0:4] == 0xa9059cbb, the
	// well-known ERC-20 transfer selector.
	args, err := abitype.ParseSignature("address,uint256")
	assert.NoError(t, err)

	selector := FunctionSelector("transfer", args)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(selector))
}

func TestEncodeDecodeCallDataRoundTrip(t *testing.T) {
	args, err := abitype.ParseSignature("address,uint256")
	assert.NoError(t, err)
	addr := make([]byte, 20)
	addr[19] = 0x01
	values := []interface{}{addr, big.NewInt(1000)}

	data, err := EncodeCallData("transfer", args, values)
	assert.NoError(t, err)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[0:4]))

	decoded, err := DecodeCallData("transfer", args, data)
	assert.NoError(t, err)
	assert.Equal(t, addr, decoded[0].([]byte))
	assert.Equal(t, int64(1000), decoded[1].(*big.Int).Int64())
}

func TestDecodeCallDataWrongSelector(t *testing.T) {
	args, err := abitype.ParseSignature("uint256")
	assert.NoError(t, err)

	_, err = DecodeCallData("approve", args, []byte{0x00, 0x00, 0x00, 0x00})
	assert.Error(t, err)
}

func TestDecodeCallDataTooShort(t *testing.T) {
	args, err := abitype.ParseSignature("uint256")
	assert.NoError(t, err)

	_, err = DecodeCallData("approve", args, []byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestFunctionSelectorFromText(t *testing.T) {
	assert.Equal(t, "a9059cbb", hex.EncodeToString(FunctionSelectorFromText("transfer(address,uint256)")))
	assert.Nil(t, FunctionSelectorFromText("not a signature"))
}
