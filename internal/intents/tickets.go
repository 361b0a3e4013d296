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

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// BPSPerTicket must match the value configured in the deployed lottery contract
const BPSPerTicket = 7000

// CalculateActualTickets is floor(bps / bpsPerTicket), or zero when either operand is not positive
func CalculateActualTickets(bps, bpsPerTicket *big.Int) *big.Int {
	if bps == nil || bpsPerTicket == nil || bps.Sign() <= 0 || bpsPerTicket.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Quo(bps, bpsPerTicket)
}

func CalculateTickets(bps *big.Int) *big.Int {
	return CalculateActualTickets(bps, big.NewInt(BPSPerTicket))
}

type TicketCalculator struct {
	bpsPerTicket *big.Int
}

func NewTicketCalculator(ctx context.Context, conf *sendconf.TicketsConfig) (*TicketCalculator, error) {
	bpsPerTicket, ok := confutil.BigInt(conf.BPSPerTicket, *sendconf.TicketsDefaults.BPSPerTicket)
	if !ok || bpsPerTicket.Sign() <= 0 {
		return nil, i18n.NewError(ctx, msgs.MsgConfigInvalidBPSPerTicket, confutil.StringNotEmpty(conf.BPSPerTicket, bpsPerTicket.String()))
	}
	return &TicketCalculator{bpsPerTicket: bpsPerTicket}, nil
}

func (tc *TicketCalculator) BPSPerTicket() *big.Int {
	return new(big.Int).Set(tc.bpsPerTicket)
}

func (tc *TicketCalculator) Tickets(bps *big.Int) *big.Int {
	return CalculateActualTickets(bps, tc.bpsPerTicket)
}
