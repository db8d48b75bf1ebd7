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

import "math/big"

var (
	singleBit             = big.NewInt(1)
	oneMoreThanMaxUint256 = new(big.Int).Lsh(singleBit, 256)             // 2^256
	fullBits256           = new(big.Int).Sub(oneMoreThanMaxUint256, big.NewInt(1))
	oneThen255Zeros       = new(big.Int).Lsh(singleBit, 255)
)

// serializeTwosComplement256 writes i (which may be negative) into a
// 32-byte big-endian two's-complement word. Go has no native signed
// FillBytes, so - as in signedi256.go - a bitwise AND against the full
// 256-bit mask gives the positive integer carrying the same bit
// pattern as the two's-complement representation.
func serializeTwosComplement256(i *big.Int) []byte {
	tcI := new(big.Int).And(i, fullBits256)
	b := make([]byte, 32)
	return tcI.FillBytes(b)
}

// parseTwosComplement256 is the inverse of serializeTwosComplement256.
func parseTwosComplement256(b []byte) *big.Int {
	i := new(big.Int).SetBytes(b)
	if i.Cmp(oneThen255Zeros) < 0 {
		return i
	}
	i.Sub(i, oneMoreThanMaxUint256)
	return i
}

// fitsSignedBits reports whether i lies within the representable range
// of an n-bit two's-complement signed integer: [-2^(n-1), 2^(n-1)-1]
// (spec.md §4.3.3: "Reject values whose minimum signed bit length
// exceeds n-1").
func fitsSignedBits(i *big.Int, bits int) bool {
	max := new(big.Int).Lsh(singleBit, uint(bits-1))     // 2^(n-1)
	min := new(big.Int).Neg(max)                         // -2^(n-1)
	maxInclusive := new(big.Int).Sub(max, big.NewInt(1)) // 2^(n-1) - 1
	return i.Cmp(min) >= 0 && i.Cmp(maxInclusive) <= 0
}

// fitsUnsignedBits reports whether i (which must be non-negative) fits
// within bits bits.
func fitsUnsignedBits(i *big.Int, bits int) bool {
	return i.BitLen() <= bits
}
