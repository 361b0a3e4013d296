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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/0xsend/sendintents/internal/intentclient"
	"github.com/0xsend/sendintents/internal/intentsvc"
	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/bootstrap"
	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/urfave/cli/v2"
)

const (
	decodeAsCall            = "call"
	decodeAsExecuteBatch    = "executeBatch"
	decodeAsPurchaseTickets = "purchaseTickets"
	decodeAsTransfer        = "transfer"
)

var decodeModes = []string{decodeAsCall, decodeAsExecuteBatch, decodeAsPurchaseTickets, decodeAsTransfer}

var commandRun = &cli.Command{
	Name:  "run",
	Usage: "run the JSON/RPC server until interrupted",
	Flags: []cli.Flag{configFlag},
	Action: func(c *cli.Context) error {
		if rc := bootstrap.Run(c.String(configFlag.Name)); rc != bootstrap.RC_OK {
			return i18n.NewError(c.Context, msgs.MsgEntrypointRunFailed, rc)
		}
		return nil
	},
}

var commandDecode = &cli.Command{
	Name:      "decode",
	Usage:     "decode hex call data and print the result as JSON",
	ArgsUsage: "<hex call data>",
	Description: `
Decodes the call data with one of the embedded contract ABIs.

With --as the decoded call is validated as a SendAccount executeBatch, a Sendpot
purchaseTickets or a transfer user operation, instead of printing the raw call.`,
	Flags: []cli.Flag{abiFlag, asFlag, urlFlag, bpsPerTicketFlag},
	Action: func(c *cli.Context) error {
		ctx := c.Context
		as, err := decodeMode(ctx, c.String(asFlag.Name))
		if err != nil {
			return err
		}
		data, err := hexArg(ctx, c)
		if err != nil {
			return err
		}
		var res any
		if url := c.String(urlFlag.Name); url != "" {
			res, err = decodeRemote(ctx, url, c.String(abiFlag.Name), as, data)
		} else {
			res, err = decodeLocal(ctx, c.String(abiFlag.Name), as, c.String(bpsPerTicketFlag.Name), data)
		}
		if err != nil {
			return err
		}
		return printJSON(c, res)
	},
}

var commandTickets = &cli.Command{
	Name:      "tickets",
	Usage:     "calculate the number of lottery tickets for an amount of basis points",
	ArgsUsage: "<bps>",
	Flags:     []cli.Flag{bpsPerTicketFlag},
	Action: func(c *cli.Context) error {
		ctx := c.Context
		if c.Args().Len() != 1 {
			return i18n.NewError(ctx, msgs.MsgEntrypointMissingArg, "bps")
		}
		bps, err := sendtypes.ParseBigInt(ctx, c.Args().First())
		if err != nil {
			return err
		}
		m, err := newLocalManager(ctx, c.String(bpsPerTicketFlag.Name))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, m.CalculateTickets(bps.Int()))
		return err
	},
}

func hexArg(ctx context.Context, c *cli.Context) (sendtypes.HexBytes, error) {
	if c.Args().Len() != 1 {
		return nil, i18n.NewError(ctx, msgs.MsgEntrypointMissingArg, "hex call data")
	}
	return sendtypes.ParseHexBytes(ctx, c.Args().First())
}

// decodeMode only accepts the listed modes, it never falls back to a plain call
func decodeMode(ctx context.Context, as string) (string, error) {
	if !slices.Contains(decodeModes, as) {
		return "", i18n.NewError(ctx, msgs.MsgEntrypointDecodeMode, as, strings.Join(decodeModes, ", "))
	}
	return as, nil
}

func newLocalManager(ctx context.Context, bpsPerTicket string) (*intentsvc.Manager, error) {
	return intentsvc.NewManager(ctx, &sendconf.SendIntentsConfig{
		Tickets: sendconf.TicketsConfig{BPSPerTicket: confutil.P(bpsPerTicket)},
	}, nil)
}

func decodeLocal(ctx context.Context, abiName, as, bpsPerTicket string, data []byte) (any, error) {
	m, err := newLocalManager(ctx, bpsPerTicket)
	if err != nil {
		return nil, err
	}
	switch as {
	case decodeAsExecuteBatch:
		return m.DecodeExecuteBatch(ctx, data)
	case decodeAsTransfer:
		return m.DecodeTransferUserOp(ctx, data)
	case decodeAsPurchaseTickets:
		return m.DecodePurchaseTickets(ctx, data)
	default:
		return m.DecodeCall(ctx, abiName, data)
	}
}

func decodeRemote(ctx context.Context, url, abiName, as string, data sendtypes.HexBytes) (any, error) {
	client, err := intentclient.New(ctx, &sendconf.HTTPClientConfig{URL: url})
	if err != nil {
		return nil, err
	}
	switch as {
	case decodeAsExecuteBatch:
		return client.DecodeExecuteBatch(ctx, data)
	case decodeAsTransfer:
		return client.DecodeTransferUserOp(ctx, data)
	case decodeAsPurchaseTickets:
		return client.DecodePurchaseTickets(ctx, data)
	default:
		return client.DecodeCall(ctx, abiName, data)
	}
}

func printJSON(c *cli.Context, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(b))
	return err
}
