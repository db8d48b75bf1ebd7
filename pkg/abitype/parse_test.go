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

func TestParseElementaryTypes(t *testing.T) {
	cases := map[string]string{
		"address":   "address",
		"bool":      "bool",
		"string":    "string",
		"bytes":     "bytes",
		"bytes32":   "bytes32",
		"uint":      "uint256",
		"int":       "int256",
		"uint8":     "uint8",
		"int128":    "int128",
		"uint256 x": "uint256",
	}
	for in, want := range cases {
		ty, err := ParseType(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, ty.String(), in)
	}
}

func TestParseArraysAndNesting(t *testing.T) {
	ty, err := ParseType("uint256[3][]")
	assert.NoError(t, err)
	assert.Equal(t, "uint256[3][]", ty.String())
	assert.Equal(t, KindArray, ty.Kind())
	assert.Equal(t, KindFixedArray, ty.Elem().Kind())
	assert.Equal(t, 3, ty.Elem().ArrayLength())

	ty, err = ParseType("(address,uint256)[3]")
	assert.NoError(t, err)
	assert.Equal(t, "(address,uint256)[3]", ty.String())

	ty, err = ParseType("(address,(bool,bytes)[])")
	assert.NoError(t, err)
	assert.Equal(t, "(address,(bool,bytes)[])", ty.String())
}

func TestParseTypeErrors(t *testing.T) {
	_, err := ParseType("")
	assert.Error(t, err)

	_, err = ParseType("uint9")
	assert.Error(t, err)

	_, err = ParseType("bytes33")
	assert.Error(t, err)

	_, err = ParseType("(address,uint256")
	assert.Error(t, err)

	_, err = ParseType("frobnicate")
	assert.Error(t, err)
}

func TestParseSignature(t *testing.T) {
	types, err := ParseSignature("uint256,(address,bytes)[3],string")
	assert.NoError(t, err)
	assert.Len(t, types, 3)
	assert.Equal(t, "uint256", types[0].String())
	assert.Equal(t, "(address,bytes)[3]", types[1].String())
	assert.Equal(t, "string", types[2].String())

	empty, err := ParseSignatureIfNotEmptyCtx(nil, "   ")
	assert.NoError(t, err)
	assert.Nil(t, empty)
}

func TestParseFunctionSignature(t *testing.T) {
	name, args, rets, err := ParseFunctionSignature("transfer(address,uint256)")
	assert.NoError(t, err)
	assert.Equal(t, "transfer", name)
	assert.Len(t, args, 2)
	assert.Nil(t, rets)

	name, args, rets, err = ParseFunctionSignature("swap(address,uint256)(uint256)")
	assert.NoError(t, err)
	assert.Equal(t, "swap", name)
	assert.Len(t, args, 2)
	assert.Len(t, rets, 1)
	assert.Equal(t, "uint256", rets[0].String())

	name, args, rets, err = ParseFunctionSignature("noop()")
	assert.NoError(t, err)
	assert.Equal(t, "noop", name)
	assert.Nil(t, args)
	assert.Nil(t, rets)

	_, _, _, err = ParseFunctionSignature("missingParens")
	assert.Error(t, err)
}

func TestCanonicalSignature(t *testing.T) {
	args, err := ParseSignature("address,uint256")
	assert.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", CanonicalSignature("transfer", args))
}
