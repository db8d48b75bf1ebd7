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
Package abitype models the Ethereum contract ABI type algebra as a
small tagged union: every variant in the Solidity ABI spec (address,
bool, sized/unsized integers, fixed/dynamic byte strings, strings,
fixed/dynamic arrays and tuples) is a single immutable *Type value.

Types are built either by the package-level constructors (NewUint,
NewFixedArray, ...) or by parsing a compact textual signature with
ParseType/ParseSignature. Either way the resulting tree is immutable,
structurally comparable, and safe to share across goroutines - there
is no mutable state anywhere in this package beyond the read-only
table of elementary-type singletons built once at init.
*/
package abitype

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
)

// Kind is the variant tag of a Type.
type Kind int

const (
	KindAddress Kind = iota
	KindBool
	KindUint
	KindInt
	KindFixedBytes
	KindBytes
	KindString
	KindFixedArray
	KindArray
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFixedBytes:
		return "fixedBytes"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedArray:
		return "fixedArray"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Type is an immutable, value-comparable node in the ABI type tree.
// Construct via the package constructors, never by struct literal -
// that is what keeps the eager-validation guarantee of spec.md §4.1.
type Type struct {
	kind     Kind
	bits     uint16 // KindUint / KindInt: bit width, 8..256, multiple of 8
	byteLen  uint8  // KindFixedBytes: k, 1..32
	arrayLen uint32 // KindFixedArray: declared length
	elem     *Type  // KindFixedArray / KindArray: element type
	tuple    []*Type
}

// Elementary-type singletons, mirroring the teacher's module-level
// elementaryTypes table (design note 9: "the one concession to global
// state"). These are read-only after init.
var (
	Address      = &Type{kind: KindAddress}
	Bool         = &Type{kind: KindBool}
	Bytes        = &Type{kind: KindBytes}
	String       = &Type{kind: KindString}
	Uint256      = mustUint(256)
	Int256       = mustUint256Signed()
	FixedBytes32 = mustFixedBytes(32)
)

func mustUint(bits int) *Type {
	t, err := NewUint(bits)
	if err != nil {
		panic(err)
	}
	return t
}

func mustUint256Signed() *Type {
	t, err := NewInt(256)
	if err != nil {
		panic(err)
	}
	return t
}

func mustFixedBytes(k int) *Type {
	t, err := NewFixedBytes(k)
	if err != nil {
		panic(err)
	}
	return t
}

// NewUint constructs a UInt(n) type, validating n ∈ {8,16,...,256}.
func NewUint(bits int) (*Type, error) {
	return NewUintCtx(context.Background(), bits)
}

func NewUintCtx(ctx context.Context, bits int) (*Type, error) {
	if err := checkIntBits(ctx, bits, "uint"); err != nil {
		return nil, err
	}
	return &Type{kind: KindUint, bits: uint16(bits)}, nil
}

// NewInt constructs an Int(n) type, validating n ∈ {8,16,...,256}.
func NewInt(bits int) (*Type, error) {
	return NewIntCtx(context.Background(), bits)
}

func NewIntCtx(ctx context.Context, bits int) (*Type, error) {
	if err := checkIntBits(ctx, bits, "int"); err != nil {
		return nil, err
	}
	return &Type{kind: KindInt, bits: uint16(bits)}, nil
}

func checkIntBits(ctx context.Context, bits int, name string) error {
	if bits < 8 || bits > 256 || bits%8 != 0 {
		return i18n.NewError(ctx, abimsgs.MsgInvalidIntBits, bits, name)
	}
	return nil
}

// NewFixedBytes constructs a FixedBytes(k) type, validating k ∈ {1,...,32}.
func NewFixedBytes(k int) (*Type, error) {
	return NewFixedBytesCtx(context.Background(), k)
}

func NewFixedBytesCtx(ctx context.Context, k int) (*Type, error) {
	if k < 1 || k > 32 {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidFixedBytesSize, k)
	}
	return &Type{kind: KindFixedBytes, byteLen: uint8(k)}, nil
}

// NewFixedArray constructs a FixedArray(len, inner) type.
func NewFixedArray(length int, elem *Type) (*Type, error) {
	return NewFixedArrayCtx(context.Background(), length, elem)
}

func NewFixedArrayCtx(ctx context.Context, length int, elem *Type) (*Type, error) {
	if length < 0 {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidArrayLength, length, elem)
	}
	return &Type{kind: KindFixedArray, arrayLen: uint32(length), elem: elem}, nil
}

// NewArray constructs a variable-length Array(inner) type.
func NewArray(elem *Type) *Type {
	return &Type{kind: KindArray, elem: elem}
}

// NewTuple constructs a Tuple(inners...) type.
func NewTuple(elems ...*Type) *Type {
	children := make([]*Type, len(elems))
	copy(children, elems)
	return &Type{kind: KindTuple, tuple: children}
}

// Kind returns the variant tag.
func (t *Type) Kind() Kind { return t.kind }

// Bits returns the bit width for KindUint/KindInt.
func (t *Type) Bits() int { return int(t.bits) }

// FixedByteLength returns k for KindFixedBytes.
func (t *Type) FixedByteLength() int { return int(t.byteLen) }

// ArrayLength returns the declared length for KindFixedArray.
func (t *Type) ArrayLength() int { return int(t.arrayLen) }

// Elem returns the element type for KindFixedArray/KindArray.
func (t *Type) Elem() *Type { return t.elem }

// TupleElems returns the ordered child types for KindTuple.
func (t *Type) TupleElems() []*Type {
	children := make([]*Type, len(t.tuple))
	copy(children, t.tuple)
	return children
}

// IsDynamic reports whether the encoded size of this type depends on
// the value (spec.md §3).
func (t *Type) IsDynamic() bool {
	switch t.kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindFixedArray:
		return t.elem.IsDynamic()
	case KindTuple:
		for _, c := range t.tuple {
			if c.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String returns the canonical "abiType" textual form (spec.md §3's
// invariant): address, bool, uint<n>, int<n>, bytes<k>, bytes, string,
// <inner>[<len>], <inner>[], or (<inner1>,<inner2>,...).
func (t *Type) String() string {
	switch t.kind {
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindUint:
		return fmt.Sprintf("uint%d", t.bits)
	case KindInt:
		return fmt.Sprintf("int%d", t.bits)
	case KindFixedBytes:
		return fmt.Sprintf("bytes%d", t.byteLen)
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", t.elem.String(), t.arrayLen)
	case KindArray:
		return fmt.Sprintf("%s[]", t.elem.String())
	case KindTuple:
		buff := new(strings.Builder)
		buff.WriteByte('(')
		for i, c := range t.tuple {
			if i > 0 {
				buff.WriteByte(',')
			}
			buff.WriteString(c.String())
		}
		buff.WriteByte(')')
		return buff.String()
	default:
		return ""
	}
}

// Equal reports structural equality: same variant tag and same
// parameters, recursively for array/tuple children (spec.md §3).
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindUint, KindInt:
		return t.bits == o.bits
	case KindFixedBytes:
		return t.byteLen == o.byteLen
	case KindFixedArray:
		return t.arrayLen == o.arrayLen && t.elem.Equal(o.elem)
	case KindArray:
		return t.elem.Equal(o.elem)
	case KindTuple:
		if len(t.tuple) != len(o.tuple) {
			return false
		}
		for i := range t.tuple {
			if !t.tuple[i].Equal(o.tuple[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
