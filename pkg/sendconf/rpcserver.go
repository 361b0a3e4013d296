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

package sendconf

import "github.com/0xsend/sendintents/pkg/confutil"

const DefaultHTTPPort = 8745

type RPCServerConfig struct {
	HTTPServerConfig `json:",inline"`
	// upper bound on the request body
	MaxRequestSize *string `json:"maxRequestSize"`
	// maximum number of requests in a single JSON/RPC batch
	MaxBatchSize *int `json:"maxBatchSize"`
}

var RPCServerDefaults = &RPCServerConfig{
	MaxRequestSize: confutil.P("1Mb"),
	MaxBatchSize:   confutil.P(100),
}
