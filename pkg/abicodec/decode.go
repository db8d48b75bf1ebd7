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
	"math/big"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
	"github.com/kriptal/abicodec/pkg/abitype"
)

// maxDecodedLength bounds any single declared array/bytes/string
// length or offset read out of untrusted input: 2^32 is already an
// absurd allocation request for any buffer this codec will ever see
// in practice, and rejecting it up front keeps a maliciously crafted
// length word from turning into a multi-gigabyte allocation attempt
// before the out-of-range read actually fails (spec.md §4.3.5,
// "Decoding errors").
const maxDecodedLength = 1 << 32

// Decode is the top-level standard-codec decode operation, the
// inverse of Encode (spec.md §4.3, "decode(types, bytes) → values").
func Decode(types []*abitype.Type, data []byte) ([]interface{}, error) {
	return DecodeCtx(context.Background(), types, data)
}

func DecodeCtx(ctx context.Context, types []*abitype.Type, data []byte) ([]interface{}, error) {
	if len(types) == 0 {
		if len(data) != 0 {
			return nil, i18n.NewError(ctx, abimsgs.MsgNoTypesForData, len(data))
		}
		return nil, nil
	}
	if len(data) == 0 {
		return nil, i18n.NewError(ctx, abimsgs.MsgNoDataForTypes, len(types))
	}
	values, _, err := decodeSequence(ctx, data, 0, 0, types, "")
	return values, err
}

// DecodeValue decodes a single typed value (spec.md §4.3,
// "decode(type, bytes) → value" convenience wrapper).
func DecodeValue(t *abitype.Type, data []byte) (interface{}, error) {
	return DecodeValueCtx(context.Background(), t, data)
}

func DecodeValueCtx(ctx context.Context, t *abitype.Type, data []byte) (interface{}, error) {
	values, err := DecodeCtx(ctx, []*abitype.Type{t}, data)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// DecodeWithPrefix strips a fixed-length prefix (such as a 4 byte
// function selector) before decoding the remainder (spec.md §4.3,
// "decodeWithPrefix").
func DecodeWithPrefix(prefixLen int, types []*abitype.Type, data []byte) ([]interface{}, error) {
	return DecodeWithPrefixCtx(context.Background(), prefixLen, types, data)
}

func DecodeWithPrefixCtx(ctx context.Context, prefixLen int, types []*abitype.Type, data []byte) ([]interface{}, error) {
	if len(data) < prefixLen {
		return nil, i18n.NewError(ctx, abimsgs.MsgPrefixTooShort, len(data), prefixLen)
	}
	return DecodeCtx(ctx, types, data[prefixLen:])
}

// decodeSequence is the inverse of encodeSequence: it reads len(types)
// head slots starting at headPos, resolving dynamic slots' offsets
// relative to regionStart (the start of the enclosing tail region -
// or 0 for the top-level call), and returns how many head bytes this
// sequence itself occupied so a static tuple/fixed-array caller can
// advance its own head cursor correctly (spec.md §4.3.5).
func decodeSequence(ctx context.Context, data []byte, regionStart, headPos int, types []*abitype.Type, desc string) ([]interface{}, int, error) {
	values := make([]interface{}, len(types))
	pos := headPos
	for i, t := range types {
		read, v, err := decodeElement(ctx, data, regionStart, pos, t, childDesc(desc, i))
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
		pos += read
	}
	return values, pos - headPos, nil
}

// decodeElement reads a single type's head slot at headPos, following
// its offset into the tail region (relative to regionStart) when the
// type is dynamic, and returns how many bytes of the *head* it
// consumed (always 32 for a dynamic slot's offset word; the full
// static width, which may exceed 32 bytes, for a static composite).
func decodeElement(ctx context.Context, data []byte, regionStart, headPos int, t *abitype.Type, desc string) (headRead int, value interface{}, err error) {
	switch t.Kind() {
	case abitype.KindAddress:
		word, err := readWord(ctx, data, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		addr := make([]byte, 20)
		copy(addr, word[12:])
		return wordSize, addr, nil

	case abitype.KindBool:
		word, err := readWord(ctx, data, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		return wordSize, word[wordSize-1] != 0, nil

	case abitype.KindUint:
		word, err := readWord(ctx, data, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		return wordSize, new(big.Int).SetBytes(word), nil

	case abitype.KindInt:
		word, err := readWord(ctx, data, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		return wordSize, parseTwosComplement256(word), nil

	case abitype.KindFixedBytes:
		word, err := readWord(ctx, data, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		k := t.FixedByteLength()
		b := make([]byte, k)
		copy(b, word[:k])
		return wordSize, b, nil

	case abitype.KindBytes, abitype.KindString:
		dataOffset, err := readOffset(ctx, data, regionStart, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		payload, err := readLengthPrefixed(ctx, data, dataOffset, desc)
		if err != nil {
			return 0, nil, err
		}
		if t.Kind() == abitype.KindString {
			return wordSize, string(payload), nil
		}
		return wordSize, payload, nil

	case abitype.KindFixedArray:
		n := t.ArrayLength()
		if !t.IsDynamic() {
			vals, read, err := decodeSequence(ctx, data, regionStart, headPos, repeatType(t.Elem(), n), desc)
			if err != nil {
				return 0, nil, err
			}
			return read, vals, nil
		}
		dataOffset, err := readOffset(ctx, data, regionStart, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		vals, _, err := decodeSequence(ctx, data, dataOffset, dataOffset, repeatType(t.Elem(), n), desc)
		if err != nil {
			return 0, nil, err
		}
		return wordSize, vals, nil

	case abitype.KindArray:
		dataOffset, err := readOffset(ctx, data, regionStart, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		m, err := readLength(ctx, data, dataOffset, desc)
		if err != nil {
			return 0, nil, err
		}
		elemsStart := dataOffset + wordSize
		vals, _, err := decodeSequence(ctx, data, elemsStart, elemsStart, repeatType(t.Elem(), m), desc)
		if err != nil {
			return 0, nil, err
		}
		return wordSize, vals, nil

	case abitype.KindTuple:
		children := t.TupleElems()
		if !t.IsDynamic() {
			vals, read, err := decodeSequence(ctx, data, regionStart, headPos, children, desc)
			if err != nil {
				return 0, nil, err
			}
			return read, vals, nil
		}
		dataOffset, err := readOffset(ctx, data, regionStart, headPos, desc)
		if err != nil {
			return 0, nil, err
		}
		vals, _, err := decodeSequence(ctx, data, dataOffset, dataOffset, children, desc)
		if err != nil {
			return 0, nil, err
		}
		return wordSize, vals, nil

	default:
		return 0, nil, i18n.NewError(ctx, abimsgs.MsgUnknownTypeKind, t.Kind())
	}
}

// readWord reads one 32-byte word at pos, bounds-checked against data.
func readWord(ctx context.Context, data []byte, pos int, desc string) ([]byte, error) {
	if pos < 0 || pos+wordSize > len(data) {
		return nil, i18n.NewError(ctx, abimsgs.MsgBufferTooShort, len(data), desc, pos)
	}
	return data[pos : pos+wordSize], nil
}

// readOffset reads the head word at headPos as a relative offset and
// resolves it to an absolute position in data by adding regionStart,
// rejecting anything that doesn't fit a plain int (spec.md §9, Open
// Question 1: an offset whose declared magnitude cannot possibly
// address any real buffer is treated as malformed input, not silently
// masked down to its low bytes).
func readOffset(ctx context.Context, data []byte, regionStart, headPos int, desc string) (int, error) {
	rel, err := readLength(ctx, data, headPos, desc)
	if err != nil {
		return 0, err
	}
	abs := regionStart + rel
	if abs < 0 || abs > len(data) {
		return 0, i18n.NewError(ctx, abimsgs.MsgOffsetOutOfRange, abs, len(data), desc)
	}
	return abs, nil
}

// readLength reads the word at pos as a non-negative length/count,
// rejecting anything that would not fit a 32-bit count - a generous
// ceiling no legitimate array length, byte length, or offset will
// ever approach, but one that keeps a hostile length word from being
// accepted as a huge number and only failing later, confusingly, as
// an out-of-range read.
func readLength(ctx context.Context, data []byte, pos int, desc string) (int, error) {
	word, err := readWord(ctx, data, pos, desc)
	if err != nil {
		return 0, err
	}
	n := new(big.Int).SetBytes(word)
	if !n.IsUint64() || n.Uint64() >= maxDecodedLength {
		return 0, i18n.NewError(ctx, abimsgs.MsgLengthTooLarge, n.String(), desc)
	}
	return int(n.Uint64()), nil
}

// readLengthPrefixed reads a Bytes/String tail region at offset: a
// length word followed by that many raw bytes (spec.md §4.3.4).
func readLengthPrefixed(ctx context.Context, data []byte, offset int, desc string) ([]byte, error) {
	length, err := readLength(ctx, data, offset, desc)
	if err != nil {
		return nil, err
	}
	start := offset + wordSize
	end := start + length
	if end > len(data) {
		return nil, i18n.NewError(ctx, abimsgs.MsgBufferTooShort, len(data), desc, start)
	}
	out := make([]byte, length)
	copy(out, data[start:end])
	return out, nil
}
