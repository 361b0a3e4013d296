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

package calldata

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"

	"github.com/0xsend/sendintents/internal/contracts"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddrA = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAddrB = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func encodeCall(t *testing.T, c *contracts.Contract, fn, jsonArgs string) []byte {
	data, err := c.Function(fn).EncodeCallDataJSONCtx(context.Background(), []byte(jsonArgs))
	require.NoError(t, err)
	return data
}

func abiWord(v uint64) []byte {
	w := make([]byte, 32)
	binary.BigEndian.PutUint64(w[24:], v)
	return w
}

func callData(selector []byte, words ...[]byte) []byte {
	data := append([]byte{}, selector...)
	for _, w := range words {
		data = append(data, w...)
	}
	return data
}

func TestDecodeERC20Transfer(t *testing.T) {
	ctx := context.Background()
	data := encodeCall(t, contracts.ERC20, "transfer", `{"to":"`+testAddrA+`","value":"1000"}`)

	dc, err := DecodeFunctionData(ctx, contracts.ERC20.ABI, data)
	require.NoError(t, err)
	assert.True(t, dc.Matched())
	assert.Equal(t, "transfer", dc.FunctionName)
	assert.Equal(t, "transfer(address,uint256)", dc.Signature)
	assert.Equal(t, "0xa9059cbb", dc.Selector.String())
	require.Len(t, dc.Args, 2)

	assert.Equal(t, "to", dc.Args[0].Name)
	assert.Equal(t, "address", dc.Args[0].Type)
	assert.JSONEq(t, `"`+testAddrA+`"`, dc.Args[0].Value.String())

	assert.Equal(t, "value", dc.Args[1].Name)
	assert.Equal(t, "uint256", dc.Args[1].Type)
	assert.JSONEq(t, `"1000"`, dc.Args[1].Value.String())

	assert.Nil(t, dc.Arg(2))
	assert.Nil(t, dc.Arg(-1))
}

func TestDecodeExecuteBatchTuples(t *testing.T) {
	ctx := context.Background()
	data := encodeCall(t, contracts.SendAccount, "executeBatch", `{"calls":[
		{"dest":"`+testAddrA+`","value":"1","data":"0x"},
		{"dest":"`+testAddrB+`","value":"0","data":"0xa9059cbb"}
	]}`)

	d := MustNewDecoder(contracts.SendAccount.ABI)
	dc, err := d.Decode(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, "executeBatch", dc.FunctionName)
	require.Len(t, dc.Args, 1)
	assert.Equal(t, "calls", dc.Args[0].Name)
	assert.Equal(t, "(address,uint256,bytes)[]", dc.Args[0].Type)
	assert.JSONEq(t, `[
		{"dest":"`+testAddrA+`","value":"1","data":"0x"},
		{"dest":"`+testAddrB+`","value":"0","data":"0xa9059cbb"}
	]`, dc.Args[0].Value.String())

	// decoding is a pure function of the inputs
	dc2, err := d.Decode(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, dc, dc2)
}

func TestDecodeNoArgs(t *testing.T) {
	data := contracts.SendAccount.Function("getNonce").FunctionSelectorBytes()
	dc, err := MustNewDecoder(contracts.SendAccount.ABI).Decode(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "getNonce", dc.FunctionName)
	assert.Nil(t, dc.Args)
}

func TestDecodeTooShort(t *testing.T) {
	d := MustNewDecoder(contracts.ERC20.ABI)
	for _, data := range [][]byte{nil, {}, {0xa9, 0x05, 0x9c}} {
		dc, err := d.Decode(context.Background(), data)
		assert.Regexp(t, "SD010200", err)
		assert.True(t, IsDecodeError(err))
		assert.False(t, IsInvalidFunctionError(err))
		assert.Nil(t, dc)
	}
}

func TestDecodeUnknownSelector(t *testing.T) {
	ctx := context.Background()
	dc, err := MustNewDecoder(contracts.ERC20.ABI).Decode(ctx, sendtypes.MustParseHexBytes("0xdeadbeef0000"))
	require.NoError(t, err)
	assert.False(t, dc.Matched())
	assert.Equal(t, "0xdeadbeef", dc.Selector.String())
	assert.Nil(t, dc.Args)

	b, err := json.Marshal(dc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"selector":"0xdeadbeef","args":null}`, string(b))

	err = RequireFunction(ctx, dc, "transfer")
	assert.Regexp(t, "SD010201.*0xdeadbeef", err)
	assert.True(t, IsInvalidFunctionError(err))
	assert.False(t, IsDecodeError(err))
}

func TestDecodeTruncatedArgs(t *testing.T) {
	data := encodeCall(t, contracts.ERC20, "transfer", `{"to":"`+testAddrA+`","value":"1000"}`)
	dc, err := MustNewDecoder(contracts.ERC20.ABI).Decode(context.Background(), data[0:40])
	assert.Regexp(t, "SD010202.*transfer", err)
	assert.True(t, IsDecodeError(err))
	assert.Nil(t, dc)
}

func TestDecodeGarbageDynamicOffset(t *testing.T) {
	// executeBatch selector followed by an offset pointing well past the end of the data
	data := []byte{}
	data = append(data, contracts.SendAccount.Function("executeBatch").FunctionSelectorBytes()...)
	data = append(data, sendtypes.MustParseHexBytes("00000000000000000000000000000000000000000000000000000000000fffff")...)
	_, err := MustNewDecoder(contracts.SendAccount.ABI).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202", err)
}

func TestRequireFunction(t *testing.T) {
	ctx := context.Background()
	dc := &DecodedCall{FunctionName: "transfer"}
	assert.NoError(t, RequireFunction(ctx, dc, "transfer"))

	err := RequireFunction(ctx, dc, "executeBatch")
	assert.Regexp(t, "SD010300.*executeBatch.*transfer", err)
	assert.True(t, IsInvalidFunctionError(err))
}

func TestNewDecoderErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewDecoder(ctx, abi.ABI{
		{Type: abi.Function, Name: "broken", Inputs: abi.ParameterArray{{Name: "a", Type: "wrong"}}},
	})
	assert.Regexp(t, "SD010204.*broken", err)

	_, err = NewDecoder(ctx, abi.ABI{
		{Type: abi.Event, Name: "E"},
	})
	assert.Regexp(t, "SD010206", err)

	_, err = DecodeFunctionData(ctx, abi.ABI{}, []byte{0x01, 0x02, 0x03, 0x04})
	assert.Regexp(t, "SD010206", err)

	assert.Panics(t, func() { MustNewDecoder(abi.ABI{}) })
}

func TestErrorClassificationForeignErrors(t *testing.T) {
	assert.False(t, IsDecodeError(nil))
	assert.False(t, IsInvalidFunctionError(nil))
	assert.False(t, IsDecodeError(errors.New("pop")))
	assert.False(t, IsInvalidFunctionError(errors.New("pop")))
}

func TestDecodeArrayLengthBeyondData(t *testing.T) {
	// 68 bytes declaring a batch of 2^32-1 calls
	data := callData(contracts.SendAccount.Function("executeBatch").FunctionSelectorBytes(),
		abiWord(0x20), abiWord(0xffffffff))
	require.Len(t, data, 68)

	dc, err := MustNewDecoder(contracts.SendAccount.ABI).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202.*executeBatch.*SD010210.*4294967295", err)
	assert.True(t, IsDecodeError(err))
	assert.Nil(t, dc)
}

func TestDecodeArrayLengthWiderThan32Bits(t *testing.T) {
	length := abiWord(1)
	length[0] = 0x01
	data := callData(contracts.SendAccount.Function("executeBatch").FunctionSelectorBytes(),
		abiWord(0x20), length)

	_, err := MustNewDecoder(contracts.SendAccount.ABI).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202.*SD010209", err)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeBytesLengthBeyondData(t *testing.T) {
	data := callData(contracts.SendAccount.Function("execute").FunctionSelectorBytes(),
		sendtypes.MustParseHexBytes("0x0000000000000000000000005aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"),
		abiWord(1), abiWord(0x60), abiWord(0xffffffff))

	_, err := MustNewDecoder(contracts.SendAccount.ABI).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202.*SD010210", err)
}

func TestDecodeNestedArrays(t *testing.T) {
	ctx := context.Background()
	nested := abi.ABI{
		{Type: abi.Function, Name: "nested", Inputs: abi.ParameterArray{{Name: "values", Type: "uint256[][]"}}},
	}
	data, err := nested[0].EncodeCallDataJSONCtx(ctx, []byte(`{"values":[["1","2"],[],["3"]]}`))
	require.NoError(t, err)

	dc, err := MustNewDecoder(nested).Decode(ctx, data)
	require.NoError(t, err)
	assert.JSONEq(t, `[["1","2"],[],["3"]]`, dc.Args[0].Value.String())
}

func TestDecodeAliasedOffsetsLimited(t *testing.T) {
	nested := abi.ABI{
		{Type: abi.Function, Name: "nested", Inputs: abi.ParameterArray{{Name: "values", Type: "uint256[][]"}}},
	}

	// every outer element points at the same inner array, so the values
	// to build grow with the square of the data size
	const n = 256
	words := [][]byte{abiWord(0x20), abiWord(n)}
	for i := 0; i < n; i++ {
		words = append(words, abiWord(n*32))
	}
	words = append(words, abiWord(n))
	for i := 0; i < n; i++ {
		words = append(words, abiWord(uint64(i)))
	}
	data := callData(nested[0].FunctionSelectorBytes(), words...)

	_, err := MustNewDecoder(nested).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202.*SD010212", err)
	assert.True(t, IsDecodeError(err))
}

func TestDecodeHugeStaticArray(t *testing.T) {
	huge := abi.ABI{
		{Type: abi.Function, Name: "huge", Inputs: abi.ParameterArray{{Name: "values", Type: "uint256[4294967295]"}}},
	}
	data := callData(huge[0].FunctionSelectorBytes(), abiWord(1))

	_, err := MustNewDecoder(huge).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202.*SD010211", err)
}

func TestDecodeOffsetOutsideData(t *testing.T) {
	data := callData(contracts.SendAccount.Function("executeBatch").FunctionSelectorBytes(),
		abiWord(0x40))

	_, err := MustNewDecoder(contracts.SendAccount.ABI).Decode(context.Background(), data)
	assert.Regexp(t, "SD010202.*SD010208", err)
}
