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

	"github.com/0xsend/sendintents/internal/calldata"
	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

const ExecuteBatchFunction = "executeBatch"

// SendAccountCall is one call of a SendAccount batch, exactly as encoded.
// Nothing about the destination is trusted at this layer.
type SendAccountCall struct {
	Dest  *sendtypes.EthAddress `json:"dest"`
	Value *sendtypes.BigInt     `json:"value"`
	Data  sendtypes.HexBytes    `json:"data"`
}

func DecodeExecuteBatchCalls(ctx context.Context, a abi.ABI, data []byte) ([]*SendAccountCall, error) {
	dc, err := calldata.DecodeFunctionData(ctx, a, data)
	if err != nil {
		return nil, err
	}
	return ExecuteBatchCalls(ctx, dc)
}

// ExecuteBatchCalls returns the calls of the batch in encoded order. An empty batch is valid.
func ExecuteBatchCalls(ctx context.Context, dc *calldata.DecodedCall) ([]*SendAccountCall, error) {
	if err := calldata.RequireFunction(ctx, dc, ExecuteBatchFunction); err != nil {
		return nil, err
	}
	arg := dc.Arg(0)
	if arg == nil {
		return nil, i18n.NewError(ctx, msgs.MsgIntentMissingArgument, ExecuteBatchFunction, 0)
	}
	calls := []*SendAccountCall{}
	if err := json.Unmarshal(arg.Value, &calls); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgIntentInvalidBatch)
	}
	for _, c := range calls {
		// every field is a non-optional ABI word, so a null can only come from a mismatched tuple shape
		if c == nil || c.Dest == nil || c.Value == nil {
			return nil, i18n.NewError(ctx, msgs.MsgIntentInvalidBatch)
		}
	}
	log.L(ctx).Debugf("executeBatch contains %d calls", len(calls))
	return calls, nil
}
