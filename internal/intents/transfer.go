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

package intents

import (
	"context"

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

const TransferFunction = "transfer"

// TransferIntent describes the first call of a batch as a transfer. Token is nil for native ETH.
type TransferIntent struct {
	Token  *sendtypes.EthAddress `json:"token"`
	To     *sendtypes.EthAddress `json:"to"`
	Amount *sendtypes.BigInt     `json:"amount"`
}

func (ti *TransferIntent) IsNative() bool {
	return ti.Token == nil
}

func DecodeTransferUserOp(ctx context.Context, accountABI, tokenABI abi.ABI, callData []byte) (*TransferIntent, error) {
	calls, err := DecodeExecuteBatchCalls(ctx, accountABI, callData)
	if err != nil {
		return nil, err
	}
	tokenDecoder, err := calldata.NewDecoder(ctx, tokenABI)
	if err != nil {
		return nil, err
	}
	return TransferFromBatch(ctx, tokenDecoder, calls)
}

// TransferFromBatch interprets the first call of the batch. Empty call data is a native
// transfer of the call value, anything else must be a token transfer(address,uint256).
func TransferFromBatch(ctx context.Context, tokenDecoder *calldata.Decoder, calls []*SendAccountCall) (*TransferIntent, error) {
	if len(calls) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgIntentEmptyBatch)
	}
	first := calls[0]
	if len(first.Data) == 0 {
		log.L(ctx).Debugf("Native transfer of %s to %s", first.Value, first.Dest)
		return &TransferIntent{
			To:     first.Dest,
			Amount: first.Value,
		}, nil
	}

	dc, err := tokenDecoder.Decode(ctx, first.Data)
	if err != nil {
		return nil, err
	}
	if err := calldata.RequireFunction(ctx, dc, TransferFunction); err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgIntentNotATransfer, 0, err.Error())
	}

	to := dc.Arg(0)
	amount := dc.Arg(1)
	if to == nil || amount == nil || to.Type != "address" || !integerTypeRegexp.MatchString(amount.Type) {
		return nil, i18n.NewError(ctx, msgs.MsgIntentInvalidTransfer, 0)
	}
	toAddr, err := sendtypes.ParseEthAddress(ctx, to.Value.StringValue())
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgIntentInvalidTransfer, 0)
	}
	amountInt, err := sendtypes.ParseBigInt(ctx, amount.Value.StringValue())
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgIntentInvalidTransfer, 0)
	}
	log.L(ctx).Debugf("Token %s transfer of %s to %s", first.Dest, amountInt, toAddr)
	return &TransferIntent{
		Token:  first.Dest,
		To:     toAddr,
		Amount: amountInt,
	}, nil
}
