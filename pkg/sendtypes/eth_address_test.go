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

package sendtypes

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.True(t, IsAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"))
	assert.True(t, IsAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.True(t, IsAddress("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.True(t, IsAddress("0x0000000000000000000000000000000000000000"))

	// bad checksum
	assert.False(t, IsAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD"))
	// missing prefix
	assert.False(t, IsAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	// wrong length
	assert.False(t, IsAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea"))
	assert.False(t, IsAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00"))
	// not hex
	assert.False(t, IsAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beazz"))
	assert.False(t, IsAddress(""))
	assert.False(t, IsAddress("alice"))
}

func TestEthAddressChecksumJSON(t *testing.T) {
	a := MustEthAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", a.String())

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"`, string(b))

	var a2 EthAddress
	require.NoError(t, json.Unmarshal(b, &a2))
	assert.True(t, a.Equals(&a2))
	assert.False(t, a.Equals(nil))
	assert.True(t, (*EthAddress)(nil).Equals(nil))
	assert.False(t, a.IsZero())
	assert.True(t, EthAddressBytes(nil).IsZero())
	assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", a.Address0xHex().String())
}

func TestEthAddressParseErrors(t *testing.T) {
	_, err := ParseEthAddress(context.Background(), "0xnothex")
	assert.Regexp(t, "SD010004", err)

	var a EthAddress
	assert.Error(t, json.Unmarshal([]byte(`{}`), &a))
	assert.Regexp(t, "SD010004", json.Unmarshal([]byte(`"0x1234"`), &a))

	assert.Panics(t, func() { MustEthAddress("wrong") })
}
