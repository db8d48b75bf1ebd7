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

package abitype

import (
	"context"
	"strconv"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/kriptal/abicodec/internal/abimsgs"
)

// ParseType parses a single compact textual ABI type, such as
// "uint256" or "(address,bytes)[3]", tolerating (and discarding) a
// trailing argument-name token as found in a full function signature
// (spec.md §4.2).
func ParseType(text string) (*Type, error) {
	return ParseTypeCtx(context.Background(), text)
}

func ParseTypeCtx(ctx context.Context, text string) (*Type, error) {
	core := stripTrailingName(text)
	if core == "" {
		return nil, i18n.NewError(ctx, abimsgs.MsgEmptyTypeToken, text)
	}
	return parseTypeCore(ctx, core)
}

// ParseSignature parses a comma-separated, optionally parenthesized-tuple
// list of types, e.g. "uint256,(address,bytes)[3],string" (spec.md §4.2).
func ParseSignature(text string) ([]*Type, error) {
	return ParseSignatureCtx(context.Background(), text)
}

func ParseSignatureCtx(ctx context.Context, text string) ([]*Type, error) {
	tokens, err := splitTopLevel(ctx, text)
	if err != nil {
		return nil, err
	}
	types := make([]*Type, len(tokens))
	for i, tok := range tokens {
		t, err := ParseTypeCtx(ctx, tok)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// ParseFunctionSignature splits a full function signature such as
// "transfer(address,uint256)" or "swap(address,uint256)(uint256)" into
// its name and its argument / return type lists, using the same
// depth-tracking scan as ParseSignature to find the parenthesized
// lists correctly even when the argument types are themselves nested
// tuples (spec.md §4.2, "Function-signature parsing").
func ParseFunctionSignature(text string) (name string, args []*Type, rets []*Type, err error) {
	return ParseFunctionSignatureCtx(context.Background(), text)
}

func ParseFunctionSignatureCtx(ctx context.Context, text string) (name string, args []*Type, rets []*Type, err error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return "", nil, nil, i18n.NewError(ctx, abimsgs.MsgMissingFunctionParens, text)
	}
	name = text[:open]
	argsEnd, err := matchParen(ctx, text, open)
	if err != nil {
		return "", nil, nil, err
	}
	argsInner := text[open+1 : argsEnd]
	if args, err = ParseSignatureIfNotEmptyCtx(ctx, argsInner); err != nil {
		return "", nil, nil, err
	}
	rest := strings.TrimSpace(text[argsEnd+1:])
	if rest == "" {
		return name, args, nil, nil
	}
	if rest[0] != '(' {
		return "", nil, nil, i18n.NewError(ctx, abimsgs.MsgMissingFunctionParens, text)
	}
	retsEnd, err := matchParen(ctx, rest, 0)
	if err != nil {
		return "", nil, nil, err
	}
	if rets, err = ParseSignatureIfNotEmptyCtx(ctx, rest[1:retsEnd]); err != nil {
		return "", nil, nil, err
	}
	return name, args, rets, nil
}

// ParseSignatureIfNotEmptyCtx parses a signature body that may be the
// empty string (a no-argument function), in which case it returns nil.
func ParseSignatureIfNotEmptyCtx(ctx context.Context, text string) ([]*Type, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return ParseSignatureCtx(ctx, text)
}

// CanonicalSignature builds name(type1,type2,...) from a name and a
// resolved type list (spec.md §3).
func CanonicalSignature(name string, types []*Type) string {
	buff := new(strings.Builder)
	buff.WriteString(name)
	buff.WriteByte('(')
	for i, t := range types {
		if i > 0 {
			buff.WriteByte(',')
		}
		buff.WriteString(t.String())
	}
	buff.WriteByte(')')
	return buff.String()
}

// matchParen finds the index of the ')' matching the '(' at openIdx,
// tracking nesting depth so nested tuples are handled correctly.
func matchParen(ctx context.Context, text string, openIdx int) (int, error) {
	depth := 0
	for i := openIdx; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, i18n.NewError(ctx, abimsgs.MsgUnbalancedParens, text)
}

// splitTopLevel splits a comma-separated type list on commas that are
// not nested inside a tuple's parentheses, mirroring the depth-tracking
// linear scan design note 9 calls for (as opposed to a regex).
func splitTopLevel(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var tokens []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, i18n.NewError(ctx, abimsgs.MsgUnbalancedParens, text)
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, text[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnbalancedParens, text)
	}
	tokens = append(tokens, text[start:])
	return tokens, nil
}

// stripTrailingName drops a trailing "argumentName" token that follows
// a type at top-level whitespace, as found in a full function
// signature's argument list ("uint256 amount" -> "uint256").
func stripTrailingName(text string) string {
	text = strings.TrimSpace(text)
	depth := 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ' ', '\t':
			if depth == 0 {
				return strings.TrimSpace(text[:i])
			}
		}
	}
	return text
}

func parseTypeCore(ctx context.Context, core string) (*Type, error) {
	if core[0] == '(' {
		closeIdx, err := matchParen(ctx, core, 0)
		if err != nil {
			return nil, err
		}
		childTokens, err := splitTopLevel(ctx, core[1:closeIdx])
		if err != nil {
			return nil, err
		}
		children := make([]*Type, len(childTokens))
		for i, tok := range childTokens {
			if children[i], err = ParseTypeCtx(ctx, tok); err != nil {
				return nil, err
			}
		}
		base := NewTuple(children...)
		return wrapArrays(ctx, core, base, core[closeIdx+1:])
	}

	// Scan the alphabetic elementary-type name, then whatever numeric
	// suffix follows it, then whatever array dimensions follow that -
	// mirrors typecomponents.go's splitElementaryTypeSuffix.
	pos := 0
	for pos < len(core) && core[pos] >= 'a' && core[pos] <= 'z' {
		pos++
	}
	name := core[:pos]
	suffix, arrays := splitSuffixAndArrays(core, pos)

	base, err := buildElementary(ctx, core, name, suffix)
	if err != nil {
		return nil, err
	}
	return wrapArrays(ctx, core, base, arrays)
}

// splitSuffixAndArrays splits what follows the elementary type name
// (starting at pos) into the numeric suffix and the array dimensions.
func splitSuffixAndArrays(core string, pos int) (suffix string, arrays string) {
	start := pos
	for pos < len(core) && core[pos] != '[' {
		pos++
	}
	return core[start:pos], core[pos:]
}

func buildElementary(ctx context.Context, abiTypeString, name, suffix string) (*Type, error) {
	switch name {
	case "address":
		if suffix != "" {
			return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, abiTypeString, abiTypeString)
		}
		return Address, nil
	case "bool":
		if suffix != "" {
			return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, abiTypeString, abiTypeString)
		}
		return Bool, nil
	case "string":
		if suffix != "" {
			return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, abiTypeString, abiTypeString)
		}
		return String, nil
	case "bytes":
		if suffix == "" {
			return Bytes, nil
		}
		k, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, suffix, abiTypeString)
		}
		return NewFixedBytesCtx(ctx, k)
	case "uint":
		if suffix == "" {
			return Uint256, nil
		}
		bits, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, suffix, abiTypeString)
		}
		return NewUintCtx(ctx, bits)
	case "int":
		if suffix == "" {
			return Int256, nil
		}
		bits, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, suffix, abiTypeString)
		}
		return NewIntCtx(ctx, bits)
	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, name, abiTypeString)
	}
}

// wrapArrays recursively wraps child in the array dimensions described
// by suffix (e.g. "[3][]"), innermost bracket first, mirroring
// typecomponents.go's parseArrays.
func wrapArrays(ctx context.Context, abiTypeString string, child *Type, suffix string) (*Type, error) {
	if suffix == "" {
		return child, nil
	}
	if suffix[0] != '[' {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidArrayLength, suffix, abiTypeString)
	}
	closeIdx := strings.IndexByte(suffix, ']')
	if closeIdx < 0 {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidArrayLength, suffix, abiTypeString)
	}
	lenStr := suffix[1:closeIdx]
	var wrapped *Type
	if lenStr == "" {
		wrapped = NewArray(child)
	} else {
		n, err := strconv.Atoi(lenStr)
		if err != nil {
			return nil, i18n.NewError(ctx, abimsgs.MsgInvalidArrayLength, lenStr, abiTypeString)
		}
		if wrapped, err = NewFixedArrayCtx(ctx, n, child); err != nil {
			return nil, err
		}
	}
	return wrapArrays(ctx, abiTypeString, wrapped, suffix[closeIdx+1:])
}
