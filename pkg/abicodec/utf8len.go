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
	"context"
	"unicode/utf8"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
)

// UTF8Len computes the number of bytes s will occupy once UTF-8
// encoded, without allocating the encoded byte slice (spec.md §4.5).
// Both codecs call it on every String value to reject unpaired
// surrogates; the tail itself is sized from the converted []byte.
//
// Go strings are already a sequence of bytes that utf8.RuneCountInString
// et al. treat as UTF-8, so in practice len(s) already is the answer -
// but Go strings can carry arbitrary byte sequences (e.g. built from a
// []byte that was never validated), so this still has to walk the
// string and reject unpaired surrogates explicitly rather than trust
// len(s) blindly.
func UTF8Len(s string) (int, error) {
	return UTF8LenCtx(context.Background(), s)
}

func UTF8LenCtx(ctx context.Context, s string) (int, error) {
	// Fast path: every byte is plain ASCII, so the byte length already
	// is the UTF-8 length and there is nothing further to validate.
	i := 0
	for ; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			break
		}
	}
	if i == len(s) {
		return len(s), nil
	}

	n := i
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if isUnpairedSurrogateAt(s, i) {
				return 0, i18n.NewError(ctx, abimsgs.MsgUnpairedSurrogate, i)
			}
			// Any other invalid byte is copied through unchanged when
			// the string is converted to []byte, so it occupies one byte.
			n += size
			i += size
			continue
		}
		n += size
		i += size
	}
	return n, nil
}

// isUnpairedSurrogateAt reports whether the invalid rune at byte
// offset i of s looks like a UTF-16 surrogate half that was never
// paired - the one ill-formed case spec.md §4.5/§9 calls out by name,
// as distinct from any other malformed byte sequence.
func isUnpairedSurrogateAt(s string, i int) bool {
	if i+3 > len(s) {
		return false
	}
	// A 3-byte UTF-8 encoding whose decoded code point would fall in
	// the surrogate range D800-DFFF is exactly the byte pattern
	// 1110_1101 1010_xxxx 10xx_xxxx / 1110_1101 1011_xxxx 10xx_xxxx.
	b0, b1 := s[i], s[i+1]
	if b0 != 0xED {
		return false
	}
	return b1 >= 0xA0 && b1 <= 0xBF
}
