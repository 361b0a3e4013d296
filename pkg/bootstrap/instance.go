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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/0xsend/sendintents/internal/intentsvc"
	"github.com/0xsend/sendintents/pkg/log"
	"github.com/0xsend/sendintents/pkg/metricsserver"
	"github.com/0xsend/sendintents/pkg/rpcserver"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/prometheus/client_golang/prometheus"
)

var running atomic.Pointer[instance]

type instance struct {
	configFile string

	ctx       context.Context
	cancelCtx context.CancelFunc
	signals   chan os.Signal
	stopped   atomic.Bool
	done      chan struct{}
	started   chan struct{}
}

type RC int

const (
	RC_OK   RC = 0
	RC_FAIL RC = 1
)

// Run loads the config, starts the JSON/RPC and metrics servers, and blocks until
// a signal arrives or Stop is called
func Run(configFile string) RC {
	i := newInstance(configFile)
	running.Store(i)
	return i.run()
}

// Stop is a no-op if nothing is running
func Stop() {
	if i := running.Load(); i != nil {
		i.stop()
	}
}

func newInstance(configFile string) *instance {
	i := &instance{
		configFile: configFile,
		signals:    make(chan os.Signal),
		done:       make(chan struct{}),
		started:    make(chan struct{}),
	}
	i.ctx, i.cancelCtx = context.WithCancel(log.WithLogField(context.Background(), "pid", strconv.Itoa(os.Getpid())))
	return i
}

func (i *instance) signalHandler() {
	sig := <-i.signals
	if sig != nil {
		log.L(i.ctx).Infof("Stopping due to signal %s", sig)
		i.stop()
	}
}

func (i *instance) run() RC {
	signal.Notify(i.signals, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer func() {
		// releases the signal handler when we exit without being stopped
		i.release()
		close(i.done)
		running.CompareAndSwap(i, nil)
	}()
	go i.signalHandler()

	var conf sendconf.SendIntentsConfig
	if err := sendconf.ReadAndParseYAMLFile(i.ctx, i.configFile, &conf); err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}
	log.InitConfig(&conf.Log)

	registry := prometheus.NewRegistry()
	mgr, err := intentsvc.NewManager(i.ctx, &conf, registry)
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}

	rpcServer, err := rpcserver.NewRPCServer(i.ctx, &conf.RPCServer)
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}
	defer rpcServer.Stop()
	rpcServer.Register(mgr.RPCModule())

	metricsServer, err := metricsserver.NewMetricsServer(i.ctx, registry, &conf.MetricsServer)
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}
	defer metricsServer.Stop()

	if err = metricsServer.Start(); err == nil {
		err = rpcServer.Start()
	}
	if err != nil {
		log.L(i.ctx).Error(err.Error())
		return RC_FAIL
	}
	log.L(i.ctx).Infof("sendintents started: rpc=%s metrics=%v", rpcServer.HTTPAddr(), metricsServer.Addr())
	close(i.started)

	<-i.ctx.Done()
	return RC_OK
}

func (i *instance) release() {
	if i.stopped.CompareAndSwap(false, true) {
		signal.Stop(i.signals)
		i.cancelCtx()
		close(i.signals)
	}
}

func (i *instance) stop() {
	i.release()
	<-i.done
}
