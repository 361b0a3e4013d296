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
	"math/big"
	"time"

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/internal/contracts"
	"github.com/0xsend/sendintents/internal/intents"
	"github.com/0xsend/sendintents/internal/metrics"
	"github.com/0xsend/sendintents/internal/registry"
	"github.com/0xsend/sendintents/pkg/cache"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/rpcserver"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/prometheus/client_golang/prometheus"
)

// PurchaseTicketsResult adds the derived ticket count to a validated purchase
type PurchaseTicketsResult struct {
	*intents.PurchaseTicketsIntent
	Tickets *sendtypes.BigInt `json:"tickets"`
}

// TargetedCall is a decoded call that was addressed to a registered contract
type TargetedCall struct {
	Contract *registry.Entry `json:"contract"`
	*calldata.DecodedCall
}

type Manager struct {
	registry     *registry.Registry
	tickets      *intents.TicketCalculator
	decoderCache cache.Cache[string, *calldata.Decoder]
	metrics      metrics.DecodeMetrics

	accountDecoder *calldata.Decoder
	sendpotDecoder *calldata.Decoder
	tokenDecoder   *calldata.Decoder

	rpcModule *rpcserver.RPCModule
}

func NewManager(ctx context.Context, conf *sendconf.SendIntentsConfig, metricsRegistry *prometheus.Registry) (m *Manager, err error) {
	m = &Manager{
		decoderCache: cache.NewCache[string, *calldata.Decoder](&conf.DecoderCache, sendconf.DecoderCacheDefaults),
		metrics:      metrics.InitMetrics(ctx, metricsRegistry),
	}
	if m.tickets, err = intents.NewTicketCalculator(ctx, &conf.Tickets); err != nil {
		return nil, err
	}
	if m.registry, err = registry.New(ctx, conf.Contracts); err != nil {
		return nil, err
	}
	if m.accountDecoder, err = m.registry.DecoderFor(ctx, contracts.SendAccountName); err != nil {
		return nil, err
	}
	if m.sendpotDecoder, err = m.registry.DecoderFor(ctx, contracts.SendpotName); err != nil {
		return nil, err
	}
	if m.tokenDecoder, err = m.registry.DecoderFor(ctx, contracts.ERC20Name); err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Intent service ready: contracts=%d bpsPerTicket=%s decoderCache=%d",
		len(m.registry.Entries()), m.tickets.BPSPerTicket(), m.decoderCache.Capacity())
	m.buildRPCModule()
	return m, nil
}

func (m *Manager) RPCModule() *rpcserver.RPCModule {
	return m.rpcModule
}

func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

func (m *Manager) DecodeCall(ctx context.Context, abiName string, data []byte) (*calldata.DecodedCall, error) {
	d, err := m.registry.DecoderFor(ctx, abiName)
	if err != nil {
		return nil, err
	}
	return d.Decode(ctx, data)
}

// DecodeCallWithABI caches a decoder per distinct ABI, so the function order in the supplied ABI does not matter
func (m *Manager) DecodeCallWithABI(ctx context.Context, a abi.ABI, data []byte) (*calldata.DecodedCall, error) {
	hash, err := sendtypes.ABIHash(ctx, a)
	if err != nil {
		return nil, err
	}
	d, err := m.decoderCache.GetOrLoad(hash.String(), func() (*calldata.Decoder, error) {
		log.L(ctx).Debugf("Building decoder for ABI %s", hash)
		return calldata.NewDecoder(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return d.Decode(ctx, data)
}

func (m *Manager) DecodeCallForTarget(ctx context.Context, chainID int64, to *sendtypes.EthAddress, data []byte) (*TargetedCall, error) {
	entry, dc, err := m.registry.DecodeForTarget(ctx, chainID, to, data)
	if err != nil {
		return nil, err
	}
	return &TargetedCall{Contract: entry, DecodedCall: dc}, nil
}

func (m *Manager) DecodeExecuteBatch(ctx context.Context, data []byte) ([]*intents.SendAccountCall, error) {
	dc, err := m.accountDecoder.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return intents.ExecuteBatchCalls(ctx, dc)
}

func (m *Manager) DecodePurchaseTickets(ctx context.Context, data []byte) (*PurchaseTicketsResult, error) {
	dc, err := m.sendpotDecoder.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	pti, err := intents.PurchaseTickets(ctx, dc)
	if err != nil {
		return nil, err
	}
	res := &PurchaseTicketsResult{PurchaseTicketsIntent: pti}
	if tickets := pti.Tickets(m.tickets.BPSPerTicket()); tickets != nil {
		res.Tickets = (*sendtypes.BigInt)(tickets)
	}
	return res, nil
}

func (m *Manager) DecodeTransferUserOp(ctx context.Context, data []byte) (*intents.TransferIntent, error) {
	calls, err := m.DecodeExecuteBatch(ctx, data)
	if err != nil {
		return nil, err
	}
	return intents.TransferFromBatch(ctx, m.tokenDecoder, calls)
}

func (m *Manager) CalculateTickets(bps *big.Int) *big.Int {
	return m.tickets.Tickets(bps)
}

func outcomeOf(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case calldata.IsDecodeError(err):
		return metrics.OutcomeDecodeError
	case calldata.IsInvalidFunctionError(err):
		return metrics.OutcomeInvalidFunction
	default:
		return metrics.OutcomeError
	}
}

func observe[R any](m *Manager, method string, fn func() (R, error)) (R, error) {
	start := time.Now()
	res, err := fn()
	m.metrics.ObserveDecode(method, outcomeOf(err), time.Since(start))
	return res, err
}
