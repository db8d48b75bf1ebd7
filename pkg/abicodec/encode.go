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

/*
Package abicodec implements the standard Solidity "head/tail" ABI
codec (spec.md §4.3) and the non-standard packed codec (spec.md §4.4)
over the *abitype.Type tree, plus the UTF-8 length helper (spec.md
§4.5) both codecs use to validate String values.

The standard encoder/decoder pair is organised exactly the way
abiencode.go/abidecode.go organise the teacher's walk: one recursive
function handles a single typed value (encodeElement/decodeElement),
and one recursive function handles an ordered sequence of them,
assembling the head region (fixed-size slots, or 32-byte offsets for
dynamic slots) followed by the tail region each offset points into
(encodeSequence/decodeSequence). Tuples and fixed/dynamic arrays are
just other callers of that same sequence machinery, which is what lets
arbitrarily nested types fall out of two functions instead of one case
per type shape.
*/
package abicodec

import (
	"context"
	"math/big"
	"strconv"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
	"github.com/kriptal/abicodec/pkg/abitype"
)

const wordSize = 32

// Encode is the top-level standard-codec encode operation: it ABI
// encodes values against types exactly as if they were the fields of
// an unnamed top-level tuple (spec.md §4.3, "encode(types, values) →
// bytes").
func Encode(types []*abitype.Type, values []interface{}) ([]byte, error) {
	return EncodeCtx(context.Background(), types, values)
}

func EncodeCtx(ctx context.Context, types []*abitype.Type, values []interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, i18n.NewError(ctx, abimsgs.MsgArityMismatch, len(types), len(values))
	}
	return encodeSequence(ctx, types, values, "")
}

// EncodeValue encodes a single typed value (spec.md §4.3,
// "encode(type, value) → bytes" convenience wrapper).
func EncodeValue(t *abitype.Type, value interface{}) ([]byte, error) {
	return EncodeValueCtx(context.Background(), t, value)
}

func EncodeValueCtx(ctx context.Context, t *abitype.Type, value interface{}) ([]byte, error) {
	return EncodeCtx(ctx, []*abitype.Type{t}, []interface{}{value})
}

// EncodeWithPrefix prepends an already-computed byte prefix (such as a
// 4 byte function selector) to a standard encoding (spec.md §4.3,
// "encodeWithPrefix").
func EncodeWithPrefix(prefix []byte, types []*abitype.Type, values []interface{}) ([]byte, error) {
	return EncodeWithPrefixCtx(context.Background(), prefix, types, values)
}

func EncodeWithPrefixCtx(ctx context.Context, prefix []byte, types []*abitype.Type, values []interface{}) ([]byte, error) {
	body, err := EncodeCtx(ctx, types, values)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(prefix)+len(body))
	out = append(out, prefix...)
	out = append(out, body...)
	return out, nil
}

// encodeSequence lays out an ordered list of (type, value) pairs as a
// head region followed by a tail region, exactly as spec.md §4.3.1
// describes for a tuple's fields, a function's arguments, or an
// array's elements: static slots are encoded in place in the head;
// dynamic slots reserve one 32-byte offset word in the head and their
// real bytes are appended, in order, to the tail.
func encodeSequence(ctx context.Context, types []*abitype.Type, values []interface{}, desc string) ([]byte, error) {
	n := len(types)
	heads := make([][]byte, n)
	tails := make([][]byte, n)
	headLen := 0
	for i, t := range types {
		head, tail, err := encodeElement(ctx, t, values[i], childDesc(desc, i))
		if err != nil {
			return nil, err
		}
		if t.IsDynamic() {
			headLen += wordSize
		} else {
			heads[i] = head
			headLen += len(head)
		}
		tails[i] = tail
	}

	buf := make([]byte, 0, headLen+totalLen(tails))
	tailCursor := headLen
	for i, t := range types {
		if t.IsDynamic() {
			buf = append(buf, encodeWord(int64(tailCursor))...)
			tailCursor += len(tails[i])
		} else {
			buf = append(buf, heads[i]...)
		}
	}
	for _, tail := range tails {
		buf = append(buf, tail...)
	}
	return buf, nil
}

// encodeElement encodes a single (type, value) pair, returning either
// head bytes (for a statically-sized type, inlined directly into the
// enclosing sequence's head) or tail bytes (for a dynamic type, placed
// in the enclosing sequence's tail and pointed to by an offset word)
// - never both (spec.md §4.3.2-§4.3.4).
func encodeElement(ctx context.Context, t *abitype.Type, value interface{}, desc string) (head []byte, tail []byte, err error) {
	switch t.Kind() {
	case abitype.KindAddress:
		b, err := toBytes(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		if len(b) != 20 {
			return nil, nil, i18n.NewError(ctx, abimsgs.MsgWrongFixedLength, 20, desc, len(b))
		}
		head = make([]byte, wordSize)
		copy(head[12:], b)
		return head, nil, nil

	case abitype.KindBool:
		b, err := toBool(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		head = make([]byte, wordSize)
		if b {
			head[wordSize-1] = 1
		}
		return head, nil, nil

	case abitype.KindUint:
		i, err := toBigInt(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		if i.Sign() < 0 {
			return nil, nil, i18n.NewError(ctx, abimsgs.MsgNegativeUnsigned, desc)
		}
		if !fitsUnsignedBits(i, t.Bits()) {
			return nil, nil, i18n.NewError(ctx, abimsgs.MsgIntegerTooWide, t.Bits(), desc)
		}
		head = make([]byte, wordSize)
		i.FillBytes(head)
		return head, nil, nil

	case abitype.KindInt:
		i, err := toBigInt(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		if !fitsSignedBits(i, t.Bits()) {
			return nil, nil, i18n.NewError(ctx, abimsgs.MsgIntegerTooWide, t.Bits(), desc)
		}
		return serializeTwosComplement256(i), nil, nil

	case abitype.KindFixedBytes:
		b, err := toBytes(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		k := t.FixedByteLength()
		if len(b) != k {
			return nil, nil, i18n.NewError(ctx, abimsgs.MsgWrongFixedLength, k, desc, len(b))
		}
		head = make([]byte, wordSize)
		copy(head, b)
		return head, nil, nil

	case abitype.KindBytes:
		b, err := toBytes(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		return nil, encodeDynamicBytes(b), nil

	case abitype.KindString:
		s, err := toString(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		if _, err := UTF8LenCtx(ctx, s); err != nil {
			return nil, nil, err
		}
		return nil, encodeDynamicBytes([]byte(s)), nil

	case abitype.KindFixedArray:
		elems, err := toInterfaceSlice(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		n := t.ArrayLength()
		if len(elems) != n {
			return nil, nil, i18n.NewError(ctx, abimsgs.MsgWrongFixedLength, n, desc, len(elems))
		}
		body, err := encodeSequence(ctx, repeatType(t.Elem(), n), elems, desc)
		if err != nil {
			return nil, nil, err
		}
		if t.IsDynamic() {
			return nil, body, nil
		}
		return body, nil, nil

	case abitype.KindArray:
		elems, err := toInterfaceSlice(ctx, value, desc)
		if err != nil {
			return nil, nil, err
		}
		m := len(elems)
		body, err := encodeSequence(ctx, repeatType(t.Elem(), m), elems, desc)
		if err != nil {
			return nil, nil, err
		}
		tail = make([]byte, 0, wordSize+len(body))
		tail = append(tail, encodeWord(int64(m))...)
		tail = append(tail, body...)
		return nil, tail, nil

	case abitype.KindTuple:
		children := t.TupleElems()
		fields, err := resolveTupleFields(ctx, value, len(children), desc)
		if err != nil {
			return nil, nil, err
		}
		body, err := encodeSequence(ctx, children, fields, desc)
		if err != nil {
			return nil, nil, err
		}
		if t.IsDynamic() {
			return nil, body, nil
		}
		return body, nil, nil

	default:
		return nil, nil, i18n.NewError(ctx, abimsgs.MsgUnknownTypeKind, t.Kind())
	}
}

// encodeDynamicBytes builds the tail region for a Bytes or String
// value: a length word followed by the raw bytes, right-padded with
// zeros up to the next whole word (spec.md §4.3.4).
func encodeDynamicBytes(b []byte) []byte {
	padded := ((len(b) + wordSize - 1) / wordSize) * wordSize
	out := make([]byte, wordSize+padded)
	copy(out[0:wordSize], encodeWord(int64(len(b))))
	copy(out[wordSize:], b)
	return out
}

func encodeWord(n int64) []byte {
	b := make([]byte, wordSize)
	big.NewInt(n).FillBytes(b)
	return b
}

func repeatType(t *abitype.Type, n int) []*abitype.Type {
	out := make([]*abitype.Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func totalLen(chunks [][]byte) int {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	return n
}

func childDesc(parent string, i int) string {
	if parent == "" {
		return indexDesc(i)
	}
	return parent + "." + indexDesc(i)
}

func indexDesc(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
