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
	"math/big"
	"regexp"

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

const PurchaseTicketsFunction = "purchaseTickets"

const (
	purchaseTicketsReferrerArg  = 0
	purchaseTicketsValueArg     = 1
	purchaseTicketsRecipientArg = 2
	// the buyer is read from the recipient position, see DESIGN.md
	purchaseTicketsBuyerArg = 2
)

var integerTypeRegexp = regexp.MustCompile(`^u?int[0-9]*$`)

// PurchaseTicketsIntent is only partially trusted. A nil field failed validation
// and must be treated as unknown, not as absent.
type PurchaseTicketsIntent struct {
	FunctionName  string                `json:"functionName"`
	Referrer      *sendtypes.EthAddress `json:"referrer"`
	PurchaseValue *sendtypes.BigInt     `json:"purchaseValue"`
	Recipient     *sendtypes.EthAddress `json:"recipient"`
	Buyer         *sendtypes.EthAddress `json:"buyer"`
}

// Tickets is nil when the purchase value could not be validated
func (pti *PurchaseTicketsIntent) Tickets(bpsPerTicket *big.Int) *big.Int {
	if pti.PurchaseValue == nil {
		return nil
	}
	return CalculateActualTickets(pti.PurchaseValue.Int(), bpsPerTicket)
}

func DecodePurchaseTicketsCallData(ctx context.Context, a abi.ABI, data []byte) (*PurchaseTicketsIntent, error) {
	dc, err := calldata.DecodeFunctionData(ctx, a, data)
	if err != nil {
		return nil, err
	}
	return PurchaseTickets(ctx, dc)
}

// PurchaseTickets rejects a call to any other function, but never fails on the shape of an
// individual argument. Those fields are set to nil with a warning.
func PurchaseTickets(ctx context.Context, dc *calldata.DecodedCall) (*PurchaseTicketsIntent, error) {
	if err := calldata.RequireFunction(ctx, dc, PurchaseTicketsFunction); err != nil {
		return nil, err
	}
	return &PurchaseTicketsIntent{
		FunctionName:  dc.FunctionName,
		Referrer:      addressArg(ctx, dc, purchaseTicketsReferrerArg, "referrer"),
		PurchaseValue: integerArg(ctx, dc, purchaseTicketsValueArg, "value"),
		Recipient:     addressArg(ctx, dc, purchaseTicketsRecipientArg, "recipient"),
		Buyer:         addressArg(ctx, dc, purchaseTicketsBuyerArg, "buyer"),
	}, nil
}

func addressArg(ctx context.Context, dc *calldata.DecodedCall, i int, field string) *sendtypes.EthAddress {
	arg := dc.Arg(i)
	if arg == nil {
		log.L(ctx).Warnf("%s: argument %d for %s is missing", dc.FunctionName, i, field)
		return nil
	}
	s := arg.Value.StringValue()
	if !sendtypes.IsAddress(s) {
		log.L(ctx).Warnf("%s: argument %d for %s is not a valid address: %s", dc.FunctionName, i, field, arg.Value)
		return nil
	}
	addr, err := sendtypes.ParseEthAddress(ctx, s)
	if err != nil {
		log.L(ctx).Warnf("%s: argument %d for %s: %s", dc.FunctionName, i, field, err)
		return nil
	}
	return addr
}

func integerArg(ctx context.Context, dc *calldata.DecodedCall, i int, field string) *sendtypes.BigInt {
	arg := dc.Arg(i)
	if arg == nil {
		log.L(ctx).Warnf("%s: argument %d for %s is missing", dc.FunctionName, i, field)
		return nil
	}
	if !integerTypeRegexp.MatchString(arg.Type) {
		log.L(ctx).Warnf("%s: argument %d for %s has non-integer type %s", dc.FunctionName, i, field, arg.Type)
		return nil
	}
	v, err := sendtypes.ParseBigInt(ctx, arg.Value.StringValue())
	if err != nil {
		log.L(ctx).Warnf("%s: argument %d for %s: %s", dc.FunctionName, i, field, err)
		return nil
	}
	return v
}
