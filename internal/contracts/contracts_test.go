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
	"testing"

	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSignatures(t *testing.T) {
	ctx := context.Background()

	sig, err := SendAccount.Function("executeBatch").SignatureCtx(ctx)
	require.NoError(t, err)
	assert.Equal(t, "executeBatch((address,uint256,bytes)[])", sig)

	sig, err = Sendpot.Function("purchaseTickets").SignatureCtx(ctx)
	require.NoError(t, err)
	assert.Equal(t, "purchaseTickets(address,uint256,address)", sig)

	assert.Equal(t, "0xa9059cbb", ERC20.Function("transfer").FunctionSelectorBytes().String())
	assert.Equal(t, "0x095ea7b3", ERC20.Function("approve").FunctionSelectorBytes().String())
	assert.Nil(t, ERC20.Function("mint"))
}

func TestEmbeddedHashesDiffer(t *testing.T) {
	assert.Len(t, SendAccount.Hash, 32)
	assert.NotEqual(t, SendAccount.Hash, Sendpot.Hash)
	assert.NotEqual(t, Sendpot.Hash, ERC20.Hash)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	for _, name := range Names() {
		c, err := Get(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name)
	}
	_, err := Get(ctx, "unknown")
	assert.Regexp(t, "SD010400", err)
}

func TestLoadBuildErrors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadBuild(ctx, "bad", []byte(`{!`))
	assert.Regexp(t, "SD010404", err)

	_, err = LoadBuild(ctx, "events", []byte(`{"abi":[{"type":"event","name":"E","inputs":[]}]}`))
	assert.Regexp(t, "SD010206", err)

	_, err = LoadBuild(ctx, "badtype", []byte(`{"abi":[{"type":"function","name":"f","inputs":[{"name":"a","type":"wrong"}]}]}`))
	assert.Regexp(t, "SD010404", err)

	assert.Panics(t, func() { MustLoadBuild("bad", []byte(`{!`)) })
}

func TestLoadBuildCustom(t *testing.T) {
	c, err := LoadBuild(context.Background(), "custom", []byte(`{"abi":[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint8"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, abi.Function, c.ABI[0].Type)
	assert.NotNil(t, c.Function("f"))
}
