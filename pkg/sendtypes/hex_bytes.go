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
	"bytes"
	"context"
	"encoding/hex"
	"strings"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// HexBytes is a byte slice that is formatted in JSON with an 0x prefix
type HexBytes []byte

// ParseHexBytes accepts hex with or without 0x in any case
func ParseHexBytes(ctx context.Context, s string) (HexBytes, error) {
	h, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTypesInvalidHex, s)
	}
	return h, nil
}

func MustParseHexBytes(s string) HexBytes {
	h, err := ParseHexBytes(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return h
}

func (id HexBytes) String() string {
	if id == nil {
		return ""
	}
	return id.HexString0xPrefix()
}

func (id HexBytes) Equals(id2 HexBytes) bool {
	return bytes.Equal(id, id2)
}

func (id HexBytes) MarshalText() ([]byte, error) {
	return ([]byte)(id.HexString0xPrefix()), nil
}

func (id *HexBytes) UnmarshalText(text []byte) error {
	pID, err := ParseHexBytes(context.Background(), string(text))
	if err != nil {
		return err
	}
	*id = pID
	return nil
}

// HexString0xPrefix renders nil as "0x"
func (id HexBytes) HexString0xPrefix() string {
	return "0x" + hex.EncodeToString(id)
}

func (id HexBytes) HexString() string {
	return hex.EncodeToString(id)
}
