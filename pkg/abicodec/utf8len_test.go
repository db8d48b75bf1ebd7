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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF8LenASCII(t *testing.T) {
	n, err := UTF8Len("hello")
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestUTF8LenMultibyte(t *testing.T) {
	n, err := UTF8Len("héllo")
	assert.NoError(t, err)
	assert.Equal(t, len("héllo"), n)

	n, err = UTF8Len("日本語")
	assert.NoError(t, err)
	assert.Equal(t, len("日本語"), n)
}

func TestUTF8LenUnpairedSurrogate(t *testing.T) {
	// 0xED 0xA0 0x80 is the 3-byte encoding of U+D800, an unpaired
	// high surrogate that is never valid as a standalone code point.
	s := string([]byte{0xED, 0xA0, 0x80})
	_, err := UTF8Len(s)
	assert.Error(t, err)
}

func TestUTF8LenEmpty(t *testing.T) {
	n, err := UTF8Len("")
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}
