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
	"fmt"
	"testing"

	"github.com/0xsend/sendintents/internal/contracts"
	"github.com/0xsend/sendintents/internal/intentsvc"
	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/rpcserver"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddrA       = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAddrB       = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	testSendpotAddr = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
)

func newTestClient(t *testing.T) (context.Context, Client, func()) {
	ctx := context.Background()
	m, err := intentsvc.NewManager(ctx, &sendconf.SendIntentsConfig{
		Contracts: []*sendconf.ContractConfig{
			{ChainID: 10, Name: "sendpot-op", Address: testSendpotAddr, ABI: contracts.SendpotName},
		},
	}, prometheus.NewRegistry())
	require.NoError(t, err)

	s, err := rpcserver.NewRPCServer(ctx, &sendconf.RPCServerConfig{
		HTTPServerConfig: sendconf.HTTPServerConfig{
			Address: confutil.P("127.0.0.1"),
			Port:    confutil.P(0),
		},
	})
	require.NoError(t, err)
	s.Register(m.RPCModule())
	require.NoError(t, s.Start())

	c, err := New(ctx, &sendconf.HTTPClientConfig{URL: fmt.Sprintf("http://%s", s.HTTPAddr())})
	require.NoError(t, err)
	return ctx, c, s.Stop
}

func encodeCall(t *testing.T, c *contracts.Contract, fn, jsonArgs string) sendtypes.HexBytes {
	data, err := c.Function(fn).EncodeCallDataJSONCtx(context.Background(), []byte(jsonArgs))
	require.NoError(t, err)
	return data
}

func TestClientDecodes(t *testing.T) {
	ctx, c, done := newTestClient(t)
	defer done()

	purchase := encodeCall(t, contracts.Sendpot, "purchaseTickets",
		`{"referrer":"`+testAddrA+`","value":"7000","recipient":"`+testAddrB+`"}`)

	dc, err := c.DecodeCall(ctx, contracts.SendpotName, purchase)
	require.NoError(t, err)
	assert.Equal(t, "purchaseTickets", dc.FunctionName)
	assert.Equal(t, "purchaseTickets(address,uint256,address)", dc.Signature)

	dc, err = c.DecodeCallWithABI(ctx, contracts.Sendpot.ABI, purchase)
	require.NoError(t, err)
	assert.Equal(t, "purchaseTickets", dc.FunctionName)

	tc, err := c.DecodeCallForTarget(ctx, 10, sendtypes.MustEthAddress(testSendpotAddr), purchase)
	require.NoError(t, err)
	assert.Equal(t, "sendpot-op", tc.Contract.Name)
	assert.Equal(t, testSendpotAddr, tc.Contract.Address.String())

	pt, err := c.DecodePurchaseTickets(ctx, purchase)
	require.NoError(t, err)
	assert.Equal(t, "1", pt.Tickets.String())
	assert.Equal(t, testAddrA, pt.Referrer.String())

	transfer := encodeCall(t, contracts.ERC20, "transfer", `{"to":"`+testAddrB+`","value":"99"}`)
	batch := encodeCall(t, contracts.SendAccount, "executeBatch",
		`{"calls":[{"dest":"`+testAddrA+`","value":"0","data":"`+transfer.String()+`"}]}`)

	calls, err := c.DecodeExecuteBatch(ctx, batch)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, transfer, calls[0].Data)

	ti, err := c.DecodeTransferUserOp(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, testAddrA, ti.Token.String())
	assert.Equal(t, "99", ti.Amount.String())

	tickets, err := c.CalculateTickets(ctx, sendtypes.NewBigInt(70000))
	require.NoError(t, err)
	assert.Equal(t, "10", tickets.String())
}

func TestClientErrors(t *testing.T) {
	ctx, c, done := newTestClient(t)
	defer done()

	_, err := c.DecodeExecuteBatch(ctx, sendtypes.HexBytes{0x01})
	assert.Regexp(t, "SD010200", err)

	_, err = c.DecodeCallForTarget(ctx, 1, sendtypes.MustEthAddress(testSendpotAddr), sendtypes.HexBytes{0x01, 0x02, 0x03, 0x04})
	assert.Regexp(t, "SD010401", err)

	_, err = New(ctx, &sendconf.HTTPClientConfig{URL: "not a url"})
	assert.Regexp(t, "SD010508", err)
}
