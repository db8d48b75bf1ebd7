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

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
	"github.com/kriptal/abicodec/pkg/abitype"
)

// EncodePacked implements Solidity's non-standard abi.encodePacked
// (spec.md §4.4): every value is concatenated with no head/tail
// layout and no offsets, using each type's "minimal" byte width rather
// than a full 32-byte word - except that an element nested directly
// inside an array is still padded to a full word (with sign extension
// for Int), because the array's elements must all be the same stride
// for a reader to walk it.
//
// Tuples, and arrays whose element type is itself dynamic or another
// array, have no defined packed encoding and are rejected - and that
// rejection happens in a validation pass over the whole type list
// before a single byte is written, so a caller never receives a
// partially-built buffer for an input it should have rejected outright
// (spec.md §7, "Packed-encoding validation must reject ... before any
// bytes are written").
func EncodePacked(types []*abitype.Type, values []interface{}) ([]byte, error) {
	return EncodePackedCtx(context.Background(), types, values)
}

func EncodePackedCtx(ctx context.Context, types []*abitype.Type, values []interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, i18n.NewError(ctx, abimsgs.MsgArityMismatch, len(types), len(values))
	}
	for i, t := range types {
		if err := checkPackable(ctx, t, childDesc("", i)); err != nil {
			return nil, err
		}
	}

	var buf []byte
	for i, t := range types {
		b, err := packElement(ctx, t, values[i], false, childDesc("", i))
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return buf, nil
}

// checkPackable walks a type tree rejecting anything packed encoding
// cannot express: a Tuple anywhere, or an array (fixed or dynamic)
// whose element is dynamic or is itself an array.
func checkPackable(ctx context.Context, t *abitype.Type, desc string) error {
	switch t.Kind() {
	case abitype.KindTuple:
		return i18n.NewError(ctx, abimsgs.MsgPackedTupleRejected, desc)
	case abitype.KindArray, abitype.KindFixedArray:
		elem := t.Elem()
		if elem.IsDynamic() || elem.Kind() == abitype.KindArray || elem.Kind() == abitype.KindFixedArray {
			return i18n.NewError(ctx, abimsgs.MsgPackedNestedDynamic, desc)
		}
		return checkPackable(ctx, elem, desc)
	default:
		return nil
	}
}

// packElement packs a single non-tuple, non-nested-array value.
// insideArray is true when this call is packing one element of an
// array, in which case static scalar types must still be padded to a
// full word rather than using their minimal width (spec.md §4.4).
func packElement(ctx context.Context, t *abitype.Type, value interface{}, insideArray bool, desc string) ([]byte, error) {
	switch t.Kind() {
	case abitype.KindAddress:
		b, err := toBytes(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		if len(b) != 20 {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongFixedLength, 20, desc, len(b))
		}
		if !insideArray {
			return append([]byte{}, b...), nil
		}
		word := make([]byte, wordSize)
		copy(word[12:], b)
		return word, nil

	case abitype.KindBool:
		b, err := toBool(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		v := byte(0)
		if b {
			v = 1
		}
		if !insideArray {
			return []byte{v}, nil
		}
		word := make([]byte, wordSize)
		word[wordSize-1] = v
		return word, nil

	case abitype.KindUint:
		i, err := toBigInt(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		if i.Sign() < 0 {
			return nil, i18n.NewError(ctx, abimsgs.MsgNegativeUnsigned, desc)
		}
		if !fitsUnsignedBits(i, t.Bits()) {
			return nil, i18n.NewError(ctx, abimsgs.MsgIntegerTooWide, t.Bits(), desc)
		}
		if !insideArray {
			b := make([]byte, t.Bits()/8)
			i.FillBytes(b)
			return b, nil
		}
		word := make([]byte, wordSize)
		i.FillBytes(word)
		return word, nil

	case abitype.KindInt:
		i, err := toBigInt(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		if !fitsSignedBits(i, t.Bits()) {
			return nil, i18n.NewError(ctx, abimsgs.MsgIntegerTooWide, t.Bits(), desc)
		}
		full := serializeTwosComplement256(i)
		if !insideArray {
			return full[wordSize-t.Bits()/8:], nil
		}
		return full, nil

	case abitype.KindFixedBytes:
		b, err := toBytes(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		k := t.FixedByteLength()
		if len(b) != k {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongFixedLength, k, desc, len(b))
		}
		if !insideArray {
			return append([]byte{}, b...), nil
		}
		word := make([]byte, wordSize)
		copy(word, b)
		return word, nil

	case abitype.KindBytes:
		b, err := toBytes(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		return append([]byte{}, b...), nil

	case abitype.KindString:
		s, err := toString(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		if _, err := UTF8LenCtx(ctx, s); err != nil {
			return nil, err
		}
		return []byte(s), nil

	case abitype.KindFixedArray, abitype.KindArray:
		elems, err := toInterfaceSlice(ctx, value, desc)
		if err != nil {
			return nil, err
		}
		if t.Kind() == abitype.KindFixedArray && len(elems) != t.ArrayLength() {
			return nil, i18n.NewError(ctx, abimsgs.MsgWrongFixedLength, t.ArrayLength(), desc, len(elems))
		}
		var buf []byte
		for i, v := range elems {
			b, err := packElement(ctx, t.Elem(), v, true, childDesc(desc, i))
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		return buf, nil

	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownTypeKind, t.Kind())
	}
}
