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

package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calledServer() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("CalledServer", "true")
	})
}

func TestCorsWrapperDisabled(t *testing.T) {
	s := httptest.NewServer(WrapCorsIfEnabled(context.Background(), calledServer(), &sendconf.CORSConfig{}))
	defer s.Close()

	req, err := http.NewRequest(http.MethodOptions, s.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://send.app")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "true", res.Header.Get("CalledServer"))
}

func TestCorsWrapperEnabledHostOk(t *testing.T) {
	s := httptest.NewServer(WrapCorsIfEnabled(context.Background(), calledServer(), &sendconf.CORSConfig{
		Enabled:        true,
		Debug:          true,
		AllowedOrigins: []string{"https://send.app"},
	}))
	defer s.Close()

	req, err := http.NewRequest(http.MethodGet, s.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://send.app")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "true", res.Header.Get("CalledServer"))
	assert.Equal(t, "https://send.app", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestCorsWrapperEnabledHostFail(t *testing.T) {
	s := httptest.NewServer(WrapCorsIfEnabled(context.Background(), calledServer(), &sendconf.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://send.app"},
	}))
	defer s.Close()

	req, err := http.NewRequest(http.MethodGet, s.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://phishing.example")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	// the handler still runs, but the browser is not told to trust the response
	assert.Equal(t, "true", res.Header.Get("CalledServer"))
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}
