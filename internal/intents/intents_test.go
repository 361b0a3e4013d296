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
	"encoding/json"
	"testing"

	"github.com/0xsend/sendintents/internal/contracts"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/stretchr/testify/require"
)

const (
	testAddrA = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAddrB = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	testAddrC = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
)

func encodeCall(t *testing.T, c *contracts.Contract, fn, jsonArgs string) []byte {
	return encodeEntry(t, c.Function(fn), jsonArgs)
}

func encodeEntry(t *testing.T, e *abi.Entry, jsonArgs string) []byte {
	data, err := e.EncodeCallDataJSONCtx(context.Background(), []byte(jsonArgs))
	require.NoError(t, err)
	return data
}

func mustParseEntry(t *testing.T, def string) *abi.Entry {
	var e abi.Entry
	require.NoError(t, json.Unmarshal([]byte(def), &e))
	return &e
}
