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

package sendconf

import "github.com/0xsend/sendintents/pkg/confutil"

type TicketsConfig struct {
	// basis points of purchase value per ticket, must match the deployed lottery contract
	BPSPerTicket *string `json:"bpsPerTicket"`
}

var TicketsDefaults = &TicketsConfig{
	BPSPerTicket: confutil.P("7000"),
}

// ContractConfig binds a deployed address on a chain to one of the embedded ABIs
type ContractConfig struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
	Address string `json:"address"`
	ABI     string `json:"abi"`
}

type CacheConfig struct {
	Capacity *int `json:"capacity"`
}

var DecoderCacheDefaults = &CacheConfig{
	Capacity: confutil.P(64),
}
