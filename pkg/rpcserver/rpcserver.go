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
	"net"
	"net/http"
	"sync"

	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/router"
	"github.com/0xsend/sendintents/pkg/sendconf"
)

type RPCServer interface {
	Start() error
	Stop()
	HTTPAddr() net.Addr

	Register(module *RPCModule)

	HTTPHandler(w http.ResponseWriter, r *http.Request) // allows the handler to be installed into another server
}

func NewRPCServer(ctx context.Context, conf *sendconf.RPCServerConfig) (_ *rpcServer, err error) {
	s := &rpcServer{
		bgCtx:          ctx,
		rpcModules:     make(map[string]*RPCModule),
		maxRequestSize: confutil.ByteSize(conf.MaxRequestSize, 1024, *sendconf.RPCServerDefaults.MaxRequestSize),
		maxBatchSize:   confutil.IntMin(conf.MaxBatchSize, 1, *sendconf.RPCServerDefaults.MaxBatchSize),
	}
	log.L(ctx).Infof("JSON/RPC server maxRequestSize=%d maxBatchSize=%d", s.maxRequestSize, s.maxBatchSize)

	httpConf := conf.HTTPServerConfig
	if httpConf.Port == nil {
		httpConf.Port = confutil.P(sendconf.DefaultHTTPPort)
	}
	r, err := router.NewRouter(s.bgCtx, "JSON/RPC (HTTP)", &httpConf)
	if err != nil {
		return s, err
	}
	r.HandleFunc("/healthz", s.healthHandler, http.MethodGet)
	r.HandleFunc("/", s.httpHandler, http.MethodPost)
	s.httpServer = r

	return s, err
}

var _ RPCServer = &rpcServer{}

type rpcServer struct {
	bgCtx          context.Context
	httpServer     router.Router
	rpcModules     map[string]*RPCModule
	maxRequestSize int64
	maxBatchSize   int
}

func (s *rpcServer) Register(module *RPCModule) {
	log.L(s.bgCtx).Debugf("RPC module %s registered: %v", module.group, module.MethodNames())
	s.rpcModules[module.group] = module
}

func (s *rpcServer) HTTPAddr() (a net.Addr) {
	if s.httpServer != nil {
		a = s.httpServer.Addr()
	}
	return a
}

func (s *rpcServer) HTTPHandler(w http.ResponseWriter, r *http.Request) {
	s.httpHandler(w, r)
}

func (s *rpcServer) healthHandler(res http.ResponseWriter, _ *http.Request) {
	res.Header().Set("Content-Type", "application/json; charset=utf-8")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write([]byte(`{"status":"ok"}`))
}

func (s *rpcServer) httpHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		res.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r := s.rpcHandler(req.Context(), http.MaxBytesReader(res, req.Body, s.maxRequestSize))

	res.Header().Set("Content-Type", "application/json; charset=utf-8")
	status := http.StatusOK
	if !r.isOK {
		status = http.StatusInternalServerError
	}
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(r.res)
}

func (s *rpcServer) Start() (err error) {
	if s.httpServer != nil {
		err = s.httpServer.Start()
	}
	return err
}

func (s *rpcServer) Stop() {
	wg := new(sync.WaitGroup)
	if s.httpServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.httpServer.Stop()
		}()
	}
	wg.Wait()
}
