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

package intentsvc

import (
	"context"

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/internal/intents"
	"github.com/0xsend/sendintents/pkg/rpcserver"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

func (m *Manager) buildRPCModule() {
	m.rpcModule = rpcserver.NewRPCModule("intent").
		Add("intent_decodeCall", m.rpcDecodeCall()).
		Add("intent_decodeCallWithABI", m.rpcDecodeCallWithABI()).
		Add("intent_decodeCallForTarget", m.rpcDecodeCallForTarget()).
		Add("intent_decodeExecuteBatch", m.rpcDecodeExecuteBatch()).
		Add("intent_decodePurchaseTickets", m.rpcDecodePurchaseTickets()).
		Add("intent_decodeTransferUserOp", m.rpcDecodeTransferUserOp()).
		Add("intent_calculateTickets", m.rpcCalculateTickets())
}

func (m *Manager) rpcDecodeCall() rpcserver.RPCHandler {
	return rpcserver.RPCMethod2(func(ctx context.Context,
		abiName string,
		data sendtypes.HexBytes,
	) (*calldata.DecodedCall, error) {
		return observe(m, "intent_decodeCall", func() (*calldata.DecodedCall, error) {
			return m.DecodeCall(ctx, abiName, data)
		})
	})
}

func (m *Manager) rpcDecodeCallWithABI() rpcserver.RPCHandler {
	return rpcserver.RPCMethod2(func(ctx context.Context,
		a abi.ABI,
		data sendtypes.HexBytes,
	) (*calldata.DecodedCall, error) {
		return observe(m, "intent_decodeCallWithABI", func() (*calldata.DecodedCall, error) {
			return m.DecodeCallWithABI(ctx, a, data)
		})
	})
}

func (m *Manager) rpcDecodeCallForTarget() rpcserver.RPCHandler {
	return rpcserver.RPCMethod3(func(ctx context.Context,
		chainID int64,
		to *sendtypes.EthAddress,
		data sendtypes.HexBytes,
	) (*TargetedCall, error) {
		return observe(m, "intent_decodeCallForTarget", func() (*TargetedCall, error) {
			return m.DecodeCallForTarget(ctx, chainID, to, data)
		})
	})
}

func (m *Manager) rpcDecodeExecuteBatch() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		data sendtypes.HexBytes,
	) ([]*intents.SendAccountCall, error) {
		return observe(m, "intent_decodeExecuteBatch", func() ([]*intents.SendAccountCall, error) {
			return m.DecodeExecuteBatch(ctx, data)
		})
	})
}

func (m *Manager) rpcDecodePurchaseTickets() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		data sendtypes.HexBytes,
	) (*PurchaseTicketsResult, error) {
		return observe(m, "intent_decodePurchaseTickets", func() (*PurchaseTicketsResult, error) {
			return m.DecodePurchaseTickets(ctx, data)
		})
	})
}

func (m *Manager) rpcDecodeTransferUserOp() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		data sendtypes.HexBytes,
	) (*intents.TransferIntent, error) {
		return observe(m, "intent_decodeTransferUserOp", func() (*intents.TransferIntent, error) {
			return m.DecodeTransferUserOp(ctx, data)
		})
	})
}

func (m *Manager) rpcCalculateTickets() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		bps sendtypes.BigInt,
	) (*sendtypes.BigInt, error) {
		return (*sendtypes.BigInt)(m.CalculateTickets(bps.Int())), nil
	})
}
