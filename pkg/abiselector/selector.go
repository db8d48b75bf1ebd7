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
Package abiselector is a thin consumer of pkg/abitype and pkg/abicodec
demonstrating the one piece of "function/event wrapper" behaviour
spec.md §6 calls out as worth keeping even though full ABI-descriptor
(JSON) function/event bindings are explicitly out of scope: computing
a function selector or event topic from a human-readable signature,
and using it as the encode/decode call-data prefix.

It is deliberately small - a generated-binding layer (the kind
abigen/Entry.EncodeCallDataCtx exist to support in the teacher) is
exactly the layer spec.md places outside the core; this package only
shows that the core's pieces compose into that layer without needing
anything else.
*/
package abiselector

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"golang.org/x/crypto/sha3"

	"github.com/kriptal/abicodec/internal/abimsgs"
	"github.com/kriptal/abicodec/pkg/abicodec"
	"github.com/kriptal/abicodec/pkg/abitype"
)

// Signature builds the canonical "name(type1,type2,...)" text a
// selector or topic is hashed from (spec.md §6, mirroring
// abi.go's Entry.SignatureCtx).
func Signature(name string, args []*abitype.Type) string {
	return abitype.CanonicalSignature(name, args)
}

// ID returns the 32-byte keccak-256 hash of a signature, the shared
// first step behind both a 4-byte function selector and a 32-byte
// event topic (abi.go's Entry.GenerateIDCtx).
func ID(name string, args []*abitype.Type) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(Signature(name, args)))
	return hash.Sum(nil)
}

// FunctionSelector returns the 4-byte function selector for a
// function signature (abi.go's GenerateIDCtx, truncated to 4 bytes as
// a function ID rather than kept as a 32-byte event topic).
func FunctionSelector(name string, args []*abitype.Type) []byte {
	return ID(name, args)[0:4]
}

// EventTopic returns the full 32-byte keccak-256 hash used as an
// event's topic0.
func EventTopic(name string, args []*abitype.Type) []byte {
	return ID(name, args)
}

// EncodeCallData ABI-encodes args/values and prepends the function
// selector, mirroring Entry.EncodeCallDataCtx.
func EncodeCallData(name string, args []*abitype.Type, values []interface{}) ([]byte, error) {
	return EncodeCallDataCtx(context.Background(), name, args, values)
}

func EncodeCallDataCtx(ctx context.Context, name string, args []*abitype.Type, values []interface{}) ([]byte, error) {
	selector := FunctionSelector(name, args)
	return abicodec.EncodeWithPrefixCtx(ctx, selector, args, values)
}

// DecodeCallData verifies the leading 4-byte selector of data matches
// the one derived from name/args, then ABI-decodes the remainder,
// mirroring Entry.DecodeABIInputsCtx.
func DecodeCallData(name string, args []*abitype.Type, data []byte) ([]interface{}, error) {
	return DecodeCallDataCtx(context.Background(), name, args, data)
}

func DecodeCallDataCtx(ctx context.Context, name string, args []*abitype.Type, data []byte) ([]interface{}, error) {
	if len(data) < 4 {
		return nil, i18n.NewError(ctx, abimsgs.MsgSelectorTooShort, len(data))
	}
	expected := FunctionSelector(name, args)
	got := data[0:4]
	if !bytes.Equal(expected, got) {
		return nil, i18n.NewError(ctx, abimsgs.MsgBadSelector, hex.EncodeToString(got), hex.EncodeToString(expected), Signature(name, args))
	}
	return abicodec.DecodeWithPrefixCtx(ctx, 4, args, data)
}

// FunctionSelectorFromText parses a full function signature such as
// "transfer(address,uint256)" and returns its 4-byte selector. Parse
// failures are logged and swallowed rather than returned, mirroring
// abi.go's Entry.String() - this is meant for call sites (logging,
// debug output) that want a best-effort selector rather than a hard
// failure.
func FunctionSelectorFromText(text string) []byte {
	return FunctionSelectorFromTextCtx(context.Background(), text)
}

func FunctionSelectorFromTextCtx(ctx context.Context, text string) []byte {
	name, args, _, err := abitype.ParseFunctionSignatureCtx(ctx, text)
	if err != nil {
		log.L(ctx).Warnf("function selector parsing failed: %s", err)
		return nil
	}
	return FunctionSelector(name, args)
}
