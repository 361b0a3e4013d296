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
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/hyperledger/firefly-signer/pkg/abi"
)

// StandardABISerializer is used everywhere decoded ABI data is handed back to a caller as JSON.
// Integers are base 10 strings, bytes are 0x hex and addresses carry the EIP-55 checksum.
func StandardABISerializer() *abi.Serializer {
	return abi.NewSerializer().
		SetFormattingMode(abi.FormatAsObjects).
		SetIntSerializer(abi.Base10StringIntSerializer).
		SetFloatSerializer(abi.Base10StringFloatSerializer).
		SetByteSerializer(abi.HexByteSerializer0xPrefix).
		SetAddressSerializer(abi.ChecksumAddrSerializer)
}

func ABIBySolDefinition(ctx context.Context, a abi.ABI) (map[string]*abi.Entry, error) {
	byDefs := make(map[string]*abi.Entry)
	for _, e := range a {
		solString, err := e.SolidityStringCtx(ctx)
		if err != nil {
			return nil, err
		}
		byDefs[solString] = e
	}
	return byDefs, nil
}

// ABIHash is a hash over the solidity definitions of every entry, independent of entry order.
// Entry names in a caller supplied ABI can contain any text, so each definition is
// length prefixed to keep the boundaries between them unambiguous.
func ABIHash(ctx context.Context, a abi.ABI) (HexBytes, error) {
	bySolDef, err := ABIBySolDefinition(ctx, a)
	if err != nil {
		return nil, err
	}
	solDefs := make([]string, 0, len(bySolDef))
	for solDef := range bySolDef {
		solDefs = append(solDefs, solDef)
	}
	sort.Strings(solDefs)
	hash := sha256.New()
	for _, solDef := range solDefs {
		hash.Write(binary.BigEndian.AppendUint64(nil, uint64(len(solDef))))
		hash.Write([]byte(solDef))
	}
	return hash.Sum(nil), nil
}
