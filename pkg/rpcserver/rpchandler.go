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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/rpcclient"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type handlerResult struct {
	isOK bool
	res  any
}

func (s *rpcServer) rpcHandler(ctx context.Context, r io.Reader) handlerResult {

	b, err := io.ReadAll(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return s.replyRPCError(ctx, i18n.NewError(ctx, msgs.MsgJSONRPCRequestTooLarge, maxBytesErr.Limit))
		}
		return s.replyRPCParseError(ctx, b, err)
	}

	if log.IsTraceEnabled() {
		log.L(ctx).Tracef("RPC[Server] --> %s", b)
	}

	if s.sniffFirstByte(b) == '[' {
		var rpcArray []*rpcclient.RPCRequest
		err := json.Unmarshal(b, &rpcArray)
		if err != nil || len(rpcArray) == 0 {
			log.L(ctx).Errorf("Bad RPC array received %s", b)
			return s.replyRPCParseError(ctx, b, err)
		}
		if len(rpcArray) > s.maxBatchSize {
			return s.replyRPCError(ctx, i18n.NewError(ctx, msgs.MsgJSONRPCBatchTooLarge, len(rpcArray), s.maxBatchSize))
		}
		batchRes, isOK := s.handleRPCBatch(ctx, rpcArray)
		return handlerResult{isOK: isOK, res: batchRes}
	}

	var rpcRequest rpcclient.RPCRequest
	err = json.Unmarshal(b, &rpcRequest)
	if err != nil {
		return s.replyRPCParseError(ctx, b, err)
	}
	res, isOK := s.processRPCTimed(ctx, &rpcRequest, -1)
	return handlerResult{isOK: isOK, res: res}
}

func (s *rpcServer) replyRPCParseError(ctx context.Context, b []byte, err error) handlerResult {
	log.L(ctx).Errorf("Request could not be parsed (err=%v): %s", err, b)
	return s.replyRPCError(ctx, i18n.NewError(ctx, msgs.MsgJSONRPCInvalidRequest))
}

func (s *rpcServer) replyRPCError(ctx context.Context, err error) handlerResult {
	log.L(ctx).Errorf("Request rejected: %s", err)
	return handlerResult{
		isOK: false,
		res: rpcclient.NewRPCErrorResponse(
			err,
			sendtypes.RawJSON(`"1"`),
			rpcclient.RPCCodeInvalidRequest,
		),
	}
}

func (s *rpcServer) sniffFirstByte(data []byte) byte {
	sniffLen := len(data)
	if sniffLen > 100 {
		sniffLen = 100
	}
	for _, b := range data[0:sniffLen] {
		if !unicode.IsSpace(rune(b)) {
			return b
		}
	}
	return 0x00
}

// processRPCTimed logs the outcome of a single request, with batchIdx < 0 for non-batch requests
func (s *rpcServer) processRPCTimed(ctx context.Context, rpcRequest *rpcclient.RPCRequest, batchIdx int) (*rpcclient.RPCResponse, bool) {
	reqID := rpcRequest.ID.StringValue()
	if batchIdx >= 0 {
		ctx = log.WithLogField(ctx, "batchIdx", strconv.Itoa(batchIdx))
	}
	startTime := time.Now()
	log.L(ctx).Debugf("RPC-server[%s] --> %s", reqID, rpcRequest.Method)
	res, isOK := s.processRPC(ctx, rpcRequest)
	durationMS := float64(time.Since(startTime)) / float64(time.Millisecond)
	if res != nil && res.Error != nil {
		log.L(ctx).Errorf("RPC-server[%s] <-- %s [%.2fms]: %s", reqID, rpcRequest.Method, durationMS, res.Error.Message)
	} else {
		log.L(ctx).Debugf("RPC-server[%s] <-- %s [%.2fms]", reqID, rpcRequest.Method, durationMS)
	}
	if log.IsTraceEnabled() {
		log.L(ctx).Tracef("RPC-server[%s] <-- %s", reqID, sendtypes.JSONString(res))
	}
	return res, isOK
}

func (s *rpcServer) handleRPCBatch(ctx context.Context, rpcArray []*rpcclient.RPCRequest) ([]*rpcclient.RPCResponse, bool) {

	rpcResponses := make([]*rpcclient.RPCResponse, len(rpcArray))
	results := make(chan bool)
	for i, r := range rpcArray {
		if r == nil {
			r = &rpcclient.RPCRequest{}
		}
		go func(i int, rpcRequest *rpcclient.RPCRequest) {
			res, ok := s.processRPCTimed(ctx, rpcRequest, i)
			rpcResponses[i] = res
			results <- ok
		}(i, r)
	}
	failCount := 0
	for range rpcResponses {
		if ok := <-results; !ok {
			failCount++
		}
	}
	// a batch only fails as a whole if every request in it failed
	return rpcResponses, failCount != len(rpcArray)
}
