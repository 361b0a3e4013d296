// Copyright © 2024 Kaleido, Inc.
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

package calldata

import (
	"context"
	"errors"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

const SelectorLength = 4

type DecodedArg struct {
	Name  string            `json:"name"`
	Type  string            `json:"type"`
	Value sendtypes.RawJSON `json:"value"`
}

// DecodedCall is the result of matching call data against an ABI.
// An empty FunctionName means the selector matched nothing, in which case Args is nil.
type DecodedCall struct {
	FunctionName string             `json:"functionName,omitempty"`
	Signature    string             `json:"signature,omitempty"`
	Selector     sendtypes.HexBytes `json:"selector"`
	Args         []*DecodedArg      `json:"args"`
}

func (dc *DecodedCall) Matched() bool {
	return dc.FunctionName != ""
}

// Arg returns nil when the call has fewer than i+1 arguments
func (dc *DecodedCall) Arg(i int) *DecodedArg {
	if i < 0 || i >= len(dc.Args) {
		return nil
	}
	return dc.Args[i]
}

type function struct {
	entry     *abi.Entry
	signature string
	inputs    abi.TypeComponent
}

// Decoder matches call data against a fixed ABI. It holds no mutable state after
// construction, so a single instance can be shared by any number of goroutines.
type Decoder struct {
	bySelector map[[SelectorLength]byte][]*function
}

func NewDecoder(ctx context.Context, a abi.ABI) (*Decoder, error) {
	d := &Decoder{
		bySelector: make(map[[SelectorLength]byte][]*function),
	}
	for _, e := range a {
		if e.Type != abi.Function {
			continue
		}
		selector, err := e.GenerateFunctionSelectorCtx(ctx)
		var signature string
		var inputs abi.TypeComponent
		if err == nil {
			signature, err = e.SignatureCtx(ctx)
		}
		if err == nil {
			inputs, err = e.Inputs.TypeComponentTreeCtx(ctx)
		}
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgABIInvalidFunction, e.Name)
		}
		var key [SelectorLength]byte
		copy(key[:], selector)
		// 4 byte selectors can clash, so every candidate is kept in ABI order
		d.bySelector[key] = append(d.bySelector[key], &function{entry: e, signature: signature, inputs: inputs})
	}
	if len(d.bySelector) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgCallDataNoFunctionsInABI)
	}
	return d, nil
}

func MustNewDecoder(a abi.ABI) *Decoder {
	d, err := NewDecoder(context.Background(), a)
	if err != nil {
		panic(err)
	}
	return d
}

// DecodeFunctionData builds a one-off decoder, use NewDecoder when decoding repeatedly against the same ABI
func DecodeFunctionData(ctx context.Context, a abi.ABI, data []byte) (*DecodedCall, error) {
	d, err := NewDecoder(ctx, a)
	if err != nil {
		return nil, err
	}
	return d.Decode(ctx, data)
}

func (d *Decoder) Decode(ctx context.Context, data []byte) (*DecodedCall, error) {
	if len(data) < SelectorLength {
		return nil, i18n.NewError(ctx, msgs.MsgCallDataTooShort, len(data))
	}
	var key [SelectorLength]byte
	copy(key[:], data)
	dc := &DecodedCall{
		Selector: sendtypes.HexBytes(key[:]),
	}

	candidates := d.bySelector[key]
	if len(candidates) == 0 {
		log.L(ctx).Debugf("Selector %s did not match any function", dc.Selector)
		return dc, nil
	}

	var fn *function
	var cv *abi.ComponentValue
	var err error
	for _, candidate := range candidates {
		fn = candidate
		if err = checkBounds(ctx, fn.inputs, data, SelectorLength); err == nil {
			cv, err = fn.entry.DecodeCallDataCtx(ctx, data)
		}
		if err == nil {
			break
		}
		log.L(ctx).Debugf("Call data did not decode as %s: %s", fn.signature, err)
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgCallDataDecodeFailed, fn.entry.Name)
	}

	dc.FunctionName = fn.entry.Name
	dc.Signature = fn.signature
	if dc.Args, err = serializeArgs(ctx, fn.entry, cv); err != nil {
		return nil, err
	}
	if log.IsTraceEnabled() {
		log.L(ctx).Tracef("Decoded %s with %d args", dc.Signature, len(dc.Args))
	}
	return dc, nil
}

func serializeArgs(ctx context.Context, e *abi.Entry, cv *abi.ComponentValue) ([]*DecodedArg, error) {
	if len(cv.Children) == 0 {
		return nil, nil
	}
	serializer := sendtypes.StandardABISerializer()
	args := make([]*DecodedArg, len(cv.Children))
	for i, child := range cv.Children {
		value, err := serializer.SerializeJSONCtx(ctx, child)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgCallDataSerializeFailed, i, e.Name)
		}
		arg := &DecodedArg{
			Type:  child.Component.String(),
			Value: value,
		}
		if i < len(e.Inputs) {
			arg.Name = e.Inputs[i].Name
		}
		args[i] = arg
	}
	return args, nil
}

var decodeErrorKeys = map[i18n.ErrorMessageKey]bool{
	msgs.MsgCallDataTooShort:         true,
	msgs.MsgCallDataDecodeFailed:     true,
	msgs.MsgCallDataSerializeFailed:  true,
	msgs.MsgCallDataWordOutOfRange:   true,
	msgs.MsgCallDataWordTooLarge:     true,
	msgs.MsgCallDataLengthOutOfRange: true,
	msgs.MsgCallDataValueOutOfRange:  true,
	msgs.MsgCallDataTooManyValues:    true,
}

var invalidFunctionErrorKeys = map[i18n.ErrorMessageKey]bool{
	msgs.MsgCallDataUnknownSelector:  true,
	msgs.MsgIntentUnexpectedFunction: true,
	msgs.MsgIntentEmptyBatch:         true,
	msgs.MsgIntentNotATransfer:       true,
}

func messageKey(err error) i18n.ErrorMessageKey {
	var ffe i18n.FFError
	if errors.As(err, &ffe) {
		return ffe.MessageKey()
	}
	return ""
}

// IsDecodeError is true when the call data itself could not be decoded
func IsDecodeError(err error) bool {
	return decodeErrorKeys[messageKey(err)]
}

// IsInvalidFunctionError is true when the call data decoded, but not to the function the caller required
func IsInvalidFunctionError(err error) bool {
	return invalidFunctionErrorKeys[messageKey(err)]
}

// RequireFunction rejects a decoded call that is not the expected function, including one that matched nothing
func RequireFunction(ctx context.Context, dc *DecodedCall, expected string) error {
	if !dc.Matched() {
		return i18n.NewError(ctx, msgs.MsgCallDataUnknownSelector, dc.Selector)
	}
	if dc.FunctionName != expected {
		return i18n.NewError(ctx, msgs.MsgIntentUnexpectedFunction, expected, dc.FunctionName)
	}
	return nil
}
