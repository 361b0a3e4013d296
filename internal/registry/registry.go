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

package registry

import (
	"context"
	"sort"

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/internal/contracts"
	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type contractKey struct {
	chainID int64
	address sendtypes.EthAddress
}

// Entry is a deployed contract we are prepared to decode calls for
type Entry struct {
	Name     string                `json:"name"`
	ChainID  int64                 `json:"chainId"`
	Address  *sendtypes.EthAddress `json:"address"`
	Contract *contracts.Contract   `json:"-"`
	ABIName  string                `json:"abi"`
	decoder  *calldata.Decoder
}

func (e *Entry) Decoder() *calldata.Decoder {
	return e.decoder
}

// Registry is built once from config and is read-only afterwards
type Registry struct {
	entries  map[contractKey]*Entry
	decoders map[string]*calldata.Decoder
}

func New(ctx context.Context, conf []*sendconf.ContractConfig) (*Registry, error) {
	r := &Registry{
		entries:  make(map[contractKey]*Entry),
		decoders: make(map[string]*calldata.Decoder),
	}
	for _, cc := range conf {
		contract, err := contracts.Get(ctx, cc.ABI)
		if err != nil {
			return nil, err
		}
		if !sendtypes.IsAddress(cc.Address) {
			return nil, i18n.NewError(ctx, msgs.MsgRegistryInvalidAddress, cc.Address, cc.Name)
		}
		addr, err := sendtypes.ParseEthAddress(ctx, cc.Address)
		if err != nil {
			return nil, err
		}
		key := contractKey{chainID: cc.ChainID, address: *addr}
		if _, exists := r.entries[key]; exists {
			return nil, i18n.NewError(ctx, msgs.MsgRegistryDuplicateContract, addr, cc.ChainID)
		}
		decoder := r.decoders[contract.Name]
		if decoder == nil {
			if decoder, err = calldata.NewDecoder(ctx, contract.ABI); err != nil {
				return nil, err
			}
			r.decoders[contract.Name] = decoder
		}
		name := cc.Name
		if name == "" {
			name = contract.Name
		}
		r.entries[key] = &Entry{
			Name:     name,
			ChainID:  cc.ChainID,
			Address:  addr,
			Contract: contract,
			ABIName:  contract.Name,
			decoder:  decoder,
		}
		log.L(ctx).Infof("Registered contract %s (%s) at %s on chain %d", name, contract.Name, addr, cc.ChainID)
	}
	return r, nil
}

// Lookup returns nil if nothing is registered at the address
func (r *Registry) Lookup(chainID int64, address *sendtypes.EthAddress) *Entry {
	if address == nil {
		return nil
	}
	return r.entries[contractKey{chainID: chainID, address: *address}]
}

// DecodeForTarget refuses to decode call data that is not addressed to a registered contract
func (r *Registry) DecodeForTarget(ctx context.Context, chainID int64, to *sendtypes.EthAddress, data []byte) (*Entry, *calldata.DecodedCall, error) {
	entry := r.Lookup(chainID, to)
	if entry == nil {
		return nil, nil, i18n.NewError(ctx, msgs.MsgRegistryUnknownContract, to, chainID)
	}
	dc, err := entry.decoder.Decode(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	return entry, dc, nil
}

// Entries are ordered by chain then address
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ChainID != entries[j].ChainID {
			return entries[i].ChainID < entries[j].ChainID
		}
		return entries[i].Address.String() < entries[j].Address.String()
	})
	return entries
}

// DecoderFor returns the shared decoder of an embedded ABI
func (r *Registry) DecoderFor(ctx context.Context, abiName string) (*calldata.Decoder, error) {
	if d := r.decoders[abiName]; d != nil {
		return d, nil
	}
	contract, err := contracts.Get(ctx, abiName)
	if err != nil {
		return nil, err
	}
	return calldata.NewDecoder(ctx, contract.ABI)
}
