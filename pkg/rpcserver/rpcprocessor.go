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

package rpcserver

import (
	"context"
	"strings"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/rpcclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

func (s *rpcServer) processRPC(ctx context.Context, rpcReq *rpcclient.RPCRequest) (*rpcclient.RPCResponse, bool) {
	if rpcReq.ID.IsNil() {
		// IDs can be any JSON type, but not null
		err := i18n.NewError(ctx, msgs.MsgJSONRPCMissingRequestID)
		return rpcclient.NewRPCErrorResponse(err, rpcReq.ID, rpcclient.RPCCodeInvalidRequest), false
	}

	var handler RPCHandler
	group := strings.SplitN(rpcReq.Method, "_", 2)[0]
	if module := s.rpcModules[group]; module != nil {
		handler = module.methods[rpcReq.Method]
	}
	if handler == nil {
		err := i18n.NewError(ctx, msgs.MsgJSONRPCUnsupportedMethod, rpcReq.Method)
		return rpcclient.NewRPCErrorResponse(err, rpcReq.ID, rpcclient.RPCCodeInvalidRequest), false
	}

	rpcRes := handler.Handle(ctx, rpcReq)
	isOK := true
	if rpcRes != nil {
		isOK = rpcRes.Error == nil
	}
	return rpcRes, isOK
}
