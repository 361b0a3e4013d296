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

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAndParseYAMLFileMissing(t *testing.T) {
	var conf SendIntentsConfig
	err := ReadAndParseYAMLFile(context.Background(), path.Join(t.TempDir(), "missing.yaml"), &conf)
	assert.Regexp(t, "SD010100", err)
}

func TestReadAndParseYAMLFileBadYAML(t *testing.T) {
	f := path.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(f, []byte("{ not: [yaml"), 0644))
	var conf SendIntentsConfig
	err := ReadAndParseYAMLFile(context.Background(), f, &conf)
	assert.Regexp(t, "SD010102", err)
}

func TestReadAndParseYAMLFileDirectory(t *testing.T) {
	var conf SendIntentsConfig
	err := ReadAndParseYAMLFile(context.Background(), t.TempDir(), &conf)
	assert.Regexp(t, "SD010101", err)
}

func TestReadAndParseYAMLFileOK(t *testing.T) {
	f := path.Join(t.TempDir(), "good.yaml")
	require.NoError(t, os.WriteFile(f, []byte(`
log:
  level: debug
rpcServer:
  port: 0
  maxBatchSize: 5
tickets:
  bpsPerTicket: "3500"
contracts:
- chainId: 8453
  name: sendpot
  address: "0x1111111111111111111111111111111111111111"
  abi: sendpot
`), 0644))
	var conf SendIntentsConfig
	err := ReadAndParseYAMLFile(context.Background(), f, &conf)
	require.NoError(t, err)
	assert.Equal(t, "debug", *conf.Log.Level)
	assert.Equal(t, 0, *conf.RPCServer.Port)
	assert.Equal(t, 5, confutil.IntMin(conf.RPCServer.MaxBatchSize, 1, *RPCServerDefaults.MaxBatchSize))
	bpsPerTicket, ok := confutil.BigInt(conf.Tickets.BPSPerTicket, *TicketsDefaults.BPSPerTicket)
	assert.True(t, ok)
	assert.Equal(t, int64(3500), bpsPerTicket.Int64())
	require.Len(t, conf.Contracts, 1)
	assert.Equal(t, int64(8453), conf.Contracts[0].ChainID)
	assert.Equal(t, "sendpot", conf.Contracts[0].ABI)
}
