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
	"regexp"
	"strings"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// EthAddress is a 20 byte address that always renders with an EIP-55 checksum
type EthAddress [20]byte

var zeroAddress = EthAddress{}

var strictAddressRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress applies the strict rules used before trusting a decoded value as an address:
// 0x prefix, exactly 40 hex characters, and if the hex mixes upper and lower case
// it must be a valid EIP-55 checksum.
func IsAddress(s string) bool {
	if !strictAddressRegexp.MatchString(s) {
		return false
	}
	hexPart := s[2:]
	if strings.ToLower(hexPart) == hexPart || strings.ToUpper(hexPart) == hexPart {
		return true
	}
	a, err := ethtypes.NewAddress(s)
	if err != nil {
		return false
	}
	return (*ethtypes.AddressWithChecksum)(a).String() == s
}

// ParseEthAddress is lenient about case and prefix, use IsAddress first where checksums matter
func ParseEthAddress(ctx context.Context, s string) (*EthAddress, error) {
	a, err := ethtypes.NewAddress(s)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTypesInvalidAddress, s)
	}
	return (*EthAddress)(a), nil
}

func MustEthAddress(s string) *EthAddress {
	a, err := ParseEthAddress(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return a
}

func EthAddressBytes(b []byte) *EthAddress {
	var a EthAddress
	copy(a[:], b)
	return &a
}

func (a *EthAddress) Address0xHex() *ethtypes.Address0xHex {
	return (*ethtypes.Address0xHex)(a)
}

func (a *EthAddress) Checksummed() string {
	return (*ethtypes.AddressWithChecksum)(a).String()
}

func (a *EthAddress) Equals(b *EthAddress) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func (a *EthAddress) IsZero() bool {
	return a == nil || *a == zeroAddress
}

func (a EthAddress) String() string {
	return a.Checksummed()
}

func (a *EthAddress) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseEthAddress(context.Background(), s)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

func (a EthAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Checksummed())
}
