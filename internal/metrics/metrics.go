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

package metrics

import (
	"context"
	"time"

	"github.com/0xsend/sendintents/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sendintents"

type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeDecodeError     Outcome = "decode_error"
	OutcomeInvalidFunction Outcome = "invalid_function"
	OutcomeError           Outcome = "error"
)

type DecodeMetrics interface {
	Registry() *prometheus.Registry
	ObserveDecode(method string, outcome Outcome, duration time.Duration)
}

type decodeMetrics struct {
	registry *prometheus.Registry
	decodes  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// InitMetrics registers the decode collectors into the supplied registry, or a new one when nil
func InitMetrics(ctx context.Context, registry *prometheus.Registry) *decodeMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &decodeMetrics{registry: registry}

	m.decodes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "decode_total",
		Help:      "Call data decode requests by method and outcome",
	}, []string{"method", "outcome"})

	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "decode_duration_seconds",
		Help:      "Time taken to decode and validate call data",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"method"})

	registry.MustRegister(m.decodes, m.duration)
	log.L(ctx).Debugf("Registered %s metrics", metricsNamespace)
	return m
}

func (m *decodeMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *decodeMetrics) ObserveDecode(method string, outcome Outcome, duration time.Duration) {
	m.decodes.With(prometheus.Labels{"method": method, "outcome": string(outcome)}).Inc()
	m.duration.With(prometheus.Labels{"method": method}).Observe(duration.Seconds())
}
