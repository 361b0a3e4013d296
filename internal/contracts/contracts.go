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

package contracts

import (
	"context"
	_ "embed"
	"encoding/json"
	"sort"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

const (
	SendAccountName = "sendAccount"
	SendpotName     = "sendpot"
	ERC20Name       = "erc20"
)

//go:embed abis/SendAccount.json
var sendAccountBuildJSON []byte

//go:embed abis/Sendpot.json
var sendpotBuildJSON []byte

//go:embed abis/ERC20.json
var erc20BuildJSON []byte

// Contract is a named ABI, loaded once and never modified afterwards
type Contract struct {
	Name string             `json:"name"`
	ABI  abi.ABI            `json:"abi"`
	Hash sendtypes.HexBytes `json:"hash"`
}

type solidityBuild struct {
	ContractName string  `json:"contractName"`
	ABI          abi.ABI `json:"abi"`
}

var (
	SendAccount = MustLoadBuild(SendAccountName, sendAccountBuildJSON)
	Sendpot     = MustLoadBuild(SendpotName, sendpotBuildJSON)
	ERC20       = MustLoadBuild(ERC20Name, erc20BuildJSON)
)

func LoadBuild(ctx context.Context, name string, buildOutput []byte) (*Contract, error) {
	var build solidityBuild
	if err := json.Unmarshal(buildOutput, &build); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgRegistryLoadABIFailed, name)
	}
	if len(build.ABI.Functions()) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgCallDataNoFunctionsInABI)
	}
	hash, err := sendtypes.ABIHash(ctx, build.ABI)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgRegistryLoadABIFailed, name)
	}
	return &Contract{
		Name: name,
		ABI:  build.ABI,
		Hash: hash,
	}, nil
}

func MustLoadBuild(name string, buildOutput []byte) *Contract {
	c, err := LoadBuild(context.Background(), name, buildOutput)
	if err != nil {
		panic(err)
	}
	return c
}

// Function returns nil if the contract has no function of that name
func (c *Contract) Function(name string) *abi.Entry {
	return c.ABI.Functions()[name]
}

func Get(ctx context.Context, name string) (*Contract, error) {
	switch name {
	case SendAccountName:
		return SendAccount, nil
	case SendpotName:
		return Sendpot, nil
	case ERC20Name:
		return ERC20, nil
	default:
		return nil, i18n.NewError(ctx, msgs.MsgRegistryUnknownABI, name)
	}
}

func Names() []string {
	names := []string{SendAccountName, SendpotName, ERC20Name}
	sort.Strings(names)
	return names
}
