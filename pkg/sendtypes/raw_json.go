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
	"encoding/json"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// RawJSON is pre-serialized JSON that is passed through untouched, with "null" standing in for nil
type RawJSON []byte

func JSONString(v interface{}) RawJSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func (m RawJSON) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m, nil
}

func (m *RawJSON) UnmarshalJSON(data []byte) error {
	if m == nil {
		return i18n.NewError(context.Background(), msgs.MsgTypesUnmarshalNil)
	}
	*m = append((*m)[0:0], data...)
	return nil
}

func (m RawJSON) IsNil() bool {
	return len(m) == 0 || string(m) == "null"
}

// Unmarshal is a convenience for decoding into a typed value
func (m RawJSON) Unmarshal(v interface{}) error {
	if m.IsNil() {
		return json.Unmarshal([]byte("null"), v)
	}
	return json.Unmarshal(m, v)
}

// StringValue returns the content of a JSON string, or the raw text for any other JSON type
func (m RawJSON) StringValue() string {
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	return string(m)
}

func (m RawJSON) Bytes() []byte {
	if m == nil {
		return []byte("null")
	}
	return m
}

func (m RawJSON) String() string {
	return string(m)
}

func (m RawJSON) Pretty() string {
	buf := new(bytes.Buffer)
	if err := json.Indent(buf, m, "", "  "); err != nil {
		return string(m)
	}
	return buf.String()
}
