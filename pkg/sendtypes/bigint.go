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
	"math/big"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// BigInt is a big.Int that marshals as a base 10 JSON string, so 256 bit token amounts
// survive JSON parsers that use float64. Unmarshal also accepts JSON numbers and 0x hex.
type BigInt big.Int

func NewBigInt(x int64) *BigInt {
	return (*BigInt)(big.NewInt(x))
}

func ParseBigInt(ctx context.Context, s string) (*BigInt, error) {
	bi, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgTypesInvalidHexInteger, s)
	}
	return (*BigInt)(bi), nil
}

func MustParseBigInt(s string) *BigInt {
	bi, err := ParseBigInt(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return bi
}

func (i BigInt) MarshalText() ([]byte, error) {
	return []byte((*big.Int)(&i).Text(10)), nil
}

func (i *BigInt) UnmarshalJSON(b []byte) error {
	var val interface{}
	if err := json.Unmarshal(b, &val); err != nil {
		return i18n.WrapError(context.Background(), err, msgs.MsgTypesInvalidHexInteger, b)
	}
	var s string
	switch val := val.(type) {
	case string:
		s = val
	case float64:
		// only integers that survive float64 parsing are accepted
		s = string(b)
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesInvalidHexInteger, b)
	}
	if _, ok := i.Int().SetString(s, 0); !ok {
		return i18n.NewError(context.Background(), msgs.MsgTypesInvalidHexInteger, b)
	}
	return nil
}

func (i *BigInt) Int() *big.Int {
	return (*big.Int)(i)
}

func (i *BigInt) Int64() int64 {
	if i == nil {
		return 0
	}
	return (*big.Int)(i).Int64()
}

func (i *BigInt) Equals(i2 *BigInt) bool {
	switch {
	case i == nil && i2 == nil:
		return true
	case i == nil || i2 == nil:
		return false
	default:
		return (*big.Int)(i).Cmp((*big.Int)(i2)) == 0
	}
}

func (i *BigInt) String() string {
	if i == nil {
		return ""
	}
	return (*big.Int)(i).String()
}
