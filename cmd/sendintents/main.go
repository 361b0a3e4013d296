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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "path to the YAML configuration file",
		Required: true,
	}
	abiFlag = &cli.StringFlag{
		Name:  "abi",
		Usage: "embedded contract ABI to decode with (sendAccount, sendpot, erc20)",
		Value: "sendAccount",
	}
	asFlag = &cli.StringFlag{
		Name:  "as",
		Usage: "validate the call as one of: call, executeBatch, purchaseTickets, transfer",
		Value: decodeAsCall,
	}
	urlFlag = &cli.StringFlag{
		Name:  "url",
		Usage: "decode using a running sendintents JSON/RPC server instead of locally",
	}
	bpsPerTicketFlag = &cli.StringFlag{
		Name:  "bps-per-ticket",
		Usage: "basis points per ticket, which must match the deployed lottery",
		Value: "7000",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "sendintents",
		Usage: "decode and validate Send wallet call data",
		Commands: []*cli.Command{
			commandRun,
			commandDecode,
			commandTickets,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
