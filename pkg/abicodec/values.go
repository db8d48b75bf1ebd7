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
	"reflect"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
)

// ABIFields is the "named-composite" half of the tuple/struct duality
// described by spec.md §3: a value that is not itself an ordered
// sequence, but knows how to produce one. A generated-binding struct
// would implement this to be passed directly to EncodeValue/Encode for
// a Tuple-typed argument.
type ABIFields interface {
	ABIFields() []interface{}
}

// resolveTupleFields returns the ordered sequence of values for a
// Tuple argument: if value implements ABIFields, that callback wins;
// otherwise value is treated directly as an ordered sequence (spec.md
// §3, "Tuple / struct duality").
func resolveTupleFields(ctx context.Context, value interface{}, want int, desc string) ([]interface{}, error) {
	if af, ok := value.(ABIFields); ok {
		fields := af.ABIFields()
		if len(fields) != want {
			return nil, i18n.NewError(ctx, abimsgs.MsgArityMismatch, want, len(fields))
		}
		return fields, nil
	}
	fields, err := toInterfaceSlice(ctx, value, desc)
	if err != nil {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidTupleFieldsFn, value, desc)
	}
	if len(fields) != want {
		return nil, i18n.NewError(ctx, abimsgs.MsgArityMismatch, want, len(fields))
	}
	return fields, nil
}

// toInterfaceSlice normalizes any slice/array-kinded value (including
// a concretely typed one, such as []*big.Int) into a []interface{},
// mirroring the teacher's getInterfaceArray in inputparsing.go.
func toInterfaceSlice(ctx context.Context, value interface{}, desc string) ([]interface{}, error) {
	if arr, ok := value.([]interface{}); ok {
		return arr, nil
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, i18n.NewError(ctx, abimsgs.MsgWrongGoType, "a slice", desc, value)
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// toBigInt coerces the handful of Go numeric shapes a caller might
// reasonably pass for a UInt/Int argument into a *big.Int. Unlike the
// teacher's getIntegerFromInterface (inputparsing.go), this does not
// attempt to coerce strings or JSON-derived float64s - that flexible
// external-data coercion belongs to the JSON ABI descriptor parser
// spec.md places outside the core (see SPEC_FULL.md §9).
func toBigInt(ctx context.Context, value interface{}, desc string) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgWrongGoType, "*big.Int (or a native Go integer)", desc, value)
	}
}

func toBytes(ctx context.Context, value interface{}, desc string) ([]byte, error) {
	b, ok := value.([]byte)
	if !ok {
		return nil, i18n.NewError(ctx, abimsgs.MsgWrongGoType, "[]byte", desc, value)
	}
	return b, nil
}

func toBool(ctx context.Context, value interface{}, desc string) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, i18n.NewError(ctx, abimsgs.MsgWrongGoType, "bool", desc, value)
	}
	return b, nil
}

func toString(ctx context.Context, value interface{}, desc string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", i18n.NewError(ctx, abimsgs.MsgWrongGoType, "string", desc, value)
	}
	return s, nil
}
