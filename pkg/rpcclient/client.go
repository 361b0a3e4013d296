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

package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/0xsend/sendintents/pkg/sendtypes"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type RPCCode int64

const (
	RPCCodeParseError     RPCCode = -32700
	RPCCodeInvalidRequest RPCCode = -32600
	RPCCodeInvalidParams  RPCCode = -32602
	RPCCodeInternalError  RPCCode = -32603
)

type RPCRequest struct {
	JSONRpc string              `json:"jsonrpc"`
	ID      sendtypes.RawJSON   `json:"id"`
	Method  string              `json:"method"`
	Params  []sendtypes.RawJSON `json:"params,omitempty"`
}

type RPCError struct {
	Code    int64             `json:"code"`
	Message string            `json:"message"`
	Data    sendtypes.RawJSON `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

func (e *RPCError) RPCError() *RPCError {
	return e
}

type RPCResponse struct {
	JSONRpc string            `json:"jsonrpc"`
	ID      sendtypes.RawJSON `json:"id"`
	Result  sendtypes.RawJSON `json:"result,omitempty"`
	Error   *RPCError         `json:"error,omitempty"`
}

func (r *RPCResponse) Message() string {
	if r.Error != nil {
		return r.Error.Error()
	}
	return ""
}

type Byteable interface {
	Bytes() []byte
}

func NewRPCErrorResponse(err error, id Byteable, code RPCCode) *RPCResponse {
	var byteID []byte
	if id != nil {
		byteID = id.Bytes()
	}
	return &RPCResponse{
		JSONRpc: "2.0",
		ID:      sendtypes.RawJSON(byteID),
		Error: &RPCError{
			Code:    int64(code),
			Message: err.Error(),
		},
	}
}

type ErrorRPC interface {
	error
	RPCError() *RPCError
}

type Client interface {
	CallRPC(ctx context.Context, result interface{}, method string, params ...interface{}) ErrorRPC
}

type rpcClient struct {
	client         *resty.Client
	requestCounter int64
}

func NewHTTPClient(ctx context.Context, conf *sendconf.HTTPClientConfig) (Client, error) {
	u, err := url.Parse(conf.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, i18n.NewError(ctx, msgs.MsgRPCClientInvalidHTTPURL, conf.URL)
	}
	rc := resty.New().
		SetBaseURL(conf.URL).
		SetTimeout(confutil.DurationMin(conf.RequestTimeout, 0, *sendconf.HTTPClientDefaults.RequestTimeout)).
		SetHeader("Content-Type", "application/json").
		SetHeaders(conf.Headers)
	return WrapRestyClient(rc), nil
}

func WrapRestyClient(rc *resty.Client) Client {
	return &rpcClient{client: rc}
}

func (rc *rpcClient) allocateRequestID(req *RPCRequest) string {
	reqID := fmt.Sprintf(`%.9d`, atomic.AddInt64(&rc.requestCounter, 1))
	req.ID = sendtypes.RawJSON(`"` + reqID + `"`)
	return reqID
}

func (rc *rpcClient) CallRPC(ctx context.Context, result interface{}, method string, params ...interface{}) ErrorRPC {
	rpcReq, rpcErr := buildRequest(ctx, method, params)
	if rpcErr != nil {
		return rpcErr
	}
	res, err := rc.SyncRequest(ctx, rpcReq)
	if err != nil {
		if res != nil && res.Error != nil && res.Error.RPCError().Code != 0 {
			return res.Error
		}
		return &RPCError{Code: int64(RPCCodeInternalError), Message: err.Error()}
	}
	if err = json.Unmarshal(res.Result.Bytes(), &result); err != nil {
		err = i18n.NewError(ctx, msgs.MsgRPCClientResultParseFailed, result, err)
		return &RPCError{Code: int64(RPCCodeParseError), Message: err.Error()}
	}
	return nil
}

// SyncRequest always returns a populated response, even on error paths
func (rc *rpcClient) SyncRequest(ctx context.Context, rpcReq *RPCRequest) (rpcRes *RPCResponse, err error) {
	// requests get our own ID, so concurrent callers with clashing IDs do not confuse the backend
	beReq := *rpcReq
	beReq.JSONRpc = "2.0"
	rpcTraceID := rc.allocateRequestID(&beReq)
	if rpcReq.ID != nil {
		rpcTraceID = fmt.Sprintf("%s->%s", rpcReq.ID, rpcTraceID)
	}

	rpcRes = new(RPCResponse)

	log.L(ctx).Debugf("RPC[%s] --> %s", rpcTraceID, rpcReq.Method)
	if log.IsTraceEnabled() {
		log.L(ctx).Tracef("RPC[%s] INPUT: %s", rpcTraceID, sendtypes.JSONString(rpcReq))
	}
	rpcStartTime := time.Now()
	res, err := rc.client.R().
		SetContext(ctx).
		SetBody(beReq).
		SetResult(&rpcRes).
		SetError(rpcRes).
		Post("")

	rpcRes.ID = rpcReq.ID
	if err != nil {
		err := i18n.NewError(ctx, msgs.MsgRPCClientRequestFailed, err)
		log.L(ctx).Errorf("RPC[%s] <-- ERROR: %s", rpcTraceID, err)
		return NewRPCErrorResponse(err, rpcReq.ID, RPCCodeInternalError), err
	}
	if log.IsTraceEnabled() {
		log.L(ctx).Tracef("RPC[%s] OUTPUT: %s", rpcTraceID, sendtypes.JSONString(rpcRes))
	}
	// JSON/RPC errors can arrive with a 200 status code as well as an error status
	if res.IsError() || rpcRes.Error != nil && rpcRes.Error.Code != 0 {
		rpcMsg := rpcRes.Message()
		errLog := rpcMsg
		if rpcMsg == "" {
			errLog = string(res.Body())
			rpcMsg = i18n.NewError(ctx, msgs.MsgRPCClientRequestFailed, res.Status()).Error()
		}
		log.L(ctx).Errorf("RPC[%s] <-- [%d]: %s", rpcTraceID, res.StatusCode(), errLog)
		return rpcRes, errors.New(rpcMsg)
	}
	log.L(ctx).Debugf("RPC[%s] <-- %s [%d] OK (%.2fms)", rpcTraceID, rpcReq.Method, res.StatusCode(), float64(time.Since(rpcStartTime))/float64(time.Millisecond))
	return rpcRes, nil
}

func buildRequest(ctx context.Context, method string, params []interface{}) (*RPCRequest, ErrorRPC) {
	req := &RPCRequest{
		JSONRpc: "2.0",
		Method:  method,
		Params:  make([]sendtypes.RawJSON, len(params)),
	}
	for i, param := range params {
		b, err := json.Marshal(param)
		if err != nil {
			return nil, NewRPCError(ctx, RPCCodeInvalidRequest, msgs.MsgJSONRPCInvalidParam, method, i, err)
		}
		req.Params[i] = sendtypes.RawJSON(b)
	}
	return req, nil
}

func NewRPCError(ctx context.Context, code RPCCode, msg i18n.ErrorMessageKey, inserts ...interface{}) *RPCError {
	return &RPCError{Code: int64(code), Message: i18n.NewError(ctx, msg, inserts...).Error()}
}

func WrapRPCError(code RPCCode, err error) *RPCError {
	return &RPCError{Code: int64(code), Message: err.Error()}
}
