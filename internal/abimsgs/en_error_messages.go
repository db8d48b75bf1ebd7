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

// Package abimsgs is the message catalog for every error the codec can
// raise, keyed the same way firefly-signer keys internal/signermsgs.
package abimsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffe = i18n.FFE

//revive:disable
var (
	// Schema errors - type construction / signature parsing (spec.md §7.1)
	MsgInvalidIntBits        = ffe("FF30001", "Invalid bit width %d for %s: must be a multiple of 8 between 8 and 256")
	MsgInvalidFixedBytesSize = ffe("FF30002", "Invalid fixed bytes size %d: must be between 1 and 32")
	MsgUnbalancedParens      = ffe("FF30003", "Unbalanced parentheses in type signature: %s")
	MsgUnknownType           = ffe("FF30004", "Unknown elementary type %v in %q")
	MsgInvalidArrayLength    = ffe("FF30005", "Invalid array length %v for element type %v")
	MsgEmptyTypeToken        = ffe("FF30006", "Empty type token in signature %q")
	MsgMissingFunctionParens = ffe("FF30007", "Function signature %q is missing its argument list")

	// Argument errors - value does not satisfy its type (spec.md §7.2)
	MsgWrongGoType          = ffe("FF30010", "Expected %s for %s but got %T")
	MsgIntegerTooWide       = ffe("FF30011", "Value does not fit in %d bits for %s")
	MsgNegativeUnsigned     = ffe("FF30012", "Negative value not allowed for unsigned type %s")
	MsgWrongFixedLength     = ffe("FF30013", "Expected exactly %d bytes or elements for %s but got %d")
	MsgArityMismatch        = ffe("FF30014", "Expected %d values but got %d")
	MsgPackedTupleRejected  = ffe("FF30015", "Packed encoding does not support tuples: %s")
	MsgPackedNestedDynamic  = ffe("FF30016", "Packed encoding does not support arrays of dynamic or array element types: %s")
	MsgUnpairedSurrogate    = ffe("FF30017", "Unpaired surrogate in string at byte offset %d")
	MsgInvalidTupleFieldsFn = ffe("FF30018", "Tuple value %T has no usable field ordering for %s")

	// Decoding errors - structural problems with the byte buffer (spec.md §7.3)
	MsgBufferTooShort      = ffe("FF30020", "Buffer of %d bytes is too short to decode %s at offset %d")
	MsgOffsetOutOfRange    = ffe("FF30021", "Offset %d is out of range of a %d byte buffer for %s")
	MsgLengthTooLarge      = ffe("FF30022", "Declared length %s is too large to be a valid array/bytes/string count for %s")
	MsgPrefixTooShort      = ffe("FF30023", "Buffer of %d bytes is shorter than the required prefix of %d bytes")
	MsgNoTypesForData      = ffe("FF30024", "No types supplied but %d bytes of data were given")
	MsgNoDataForTypes      = ffe("FF30025", "%d types supplied but no data was given")
	MsgUnknownTypeKind     = ffe("FF30026", "Unsupported type kind %v encountered during codec walk")
	MsgBadSelector         = ffe("FF30027", "Call data selector %s does not match expected selector %s for %s")
	MsgSelectorTooShort    = ffe("FF30028", "Call data of %d bytes is shorter than the 4 byte function selector")
)
