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

package intentclient

import (
	"context"

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/internal/intents"
	"github.com/0xsend/sendintents/internal/intentsvc"
	"github.com/0xsend/sendintents/pkg/rpcclient"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

// Client calls the intent_ JSON/RPC methods of a running sendintents server
type Client interface {
	DecodeCall(ctx context.Context, abiName string, data sendtypes.HexBytes) (*calldata.DecodedCall, error)
	DecodeCallWithABI(ctx context.Context, a abi.ABI, data sendtypes.HexBytes) (*calldata.DecodedCall, error)
	DecodeCallForTarget(ctx context.Context, chainID int64, to *sendtypes.EthAddress, data sendtypes.HexBytes) (*intentsvc.TargetedCall, error)
	DecodeExecuteBatch(ctx context.Context, data sendtypes.HexBytes) ([]*intents.SendAccountCall, error)
	DecodePurchaseTickets(ctx context.Context, data sendtypes.HexBytes) (*intentsvc.PurchaseTicketsResult, error)
	DecodeTransferUserOp(ctx context.Context, data sendtypes.HexBytes) (*intents.TransferIntent, error)
	CalculateTickets(ctx context.Context, bps *sendtypes.BigInt) (*sendtypes.BigInt, error)
}

type client struct {
	rpc rpcclient.Client
}

func New(ctx context.Context, conf *sendconf.HTTPClientConfig) (Client, error) {
	rpc, err := rpcclient.NewHTTPClient(ctx, conf)
	if err != nil {
		return nil, err
	}
	return Wrap(rpc), nil
}

func Wrap(rpc rpcclient.Client) Client {
	return &client{rpc: rpc}
}

func call[R any](ctx context.Context, c *client, method string, params ...any) (res R, err error) {
	if rpcErr := c.rpc.CallRPC(ctx, &res, method, params...); rpcErr != nil {
		return res, rpcErr
	}
	return res, nil
}

func (c *client) DecodeCall(ctx context.Context, abiName string, data sendtypes.HexBytes) (*calldata.DecodedCall, error) {
	return call[*calldata.DecodedCall](ctx, c, "intent_decodeCall", abiName, data)
}

func (c *client) DecodeCallWithABI(ctx context.Context, a abi.ABI, data sendtypes.HexBytes) (*calldata.DecodedCall, error) {
	return call[*calldata.DecodedCall](ctx, c, "intent_decodeCallWithABI", a, data)
}

func (c *client) DecodeCallForTarget(ctx context.Context, chainID int64, to *sendtypes.EthAddress, data sendtypes.HexBytes) (*intentsvc.TargetedCall, error) {
	return call[*intentsvc.TargetedCall](ctx, c, "intent_decodeCallForTarget", chainID, to, data)
}

func (c *client) DecodeExecuteBatch(ctx context.Context, data sendtypes.HexBytes) ([]*intents.SendAccountCall, error) {
	return call[[]*intents.SendAccountCall](ctx, c, "intent_decodeExecuteBatch", data)
}

func (c *client) DecodePurchaseTickets(ctx context.Context, data sendtypes.HexBytes) (*intentsvc.PurchaseTicketsResult, error) {
	return call[*intentsvc.PurchaseTicketsResult](ctx, c, "intent_decodePurchaseTickets", data)
}

func (c *client) DecodeTransferUserOp(ctx context.Context, data sendtypes.HexBytes) (*intents.TransferIntent, error) {
	return call[*intents.TransferIntent](ctx, c, "intent_decodeTransferUserOp", data)
}

func (c *client) CalculateTickets(ctx context.Context, bps *sendtypes.BigInt) (*sendtypes.BigInt, error) {
	return call[*sendtypes.BigInt](ctx, c, "intent_calculateTickets", bps)
}
