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

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogging() {
	InitConfig(&sendconf.LogConfig{})
}

func TestLogContext(t *testing.T) {
	ctx := WithLogField(context.Background(), "method", "intent_decodeCall")
	assert.Equal(t, "intent_decodeCall", L(ctx).Data["method"])
}

func TestLogContextTruncated(t *testing.T) {
	long := "0x3474b07c000000000000000000000000000000000000000000000000000000000000002000"
	ctx := WithLogField(context.Background(), "data", long)
	assert.Equal(t, long[0:61]+"...", L(ctx).Data["data"])
}

func TestLogNoContextLogger(t *testing.T) {
	assert.Equal(t, rootLogger, L(context.Background()))
}

func TestSetLevels(t *testing.T) {
	defer resetLogging()

	SetLevel("eRrOr")
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
	assert.Equal(t, "error", GetLevel())

	SetLevel("WARNING")
	assert.Equal(t, "warn", GetLevel())

	SetLevel("DEBUG")
	assert.True(t, IsDebugEnabled())
	assert.Equal(t, "debug", GetLevel())

	SetLevel("trace")
	assert.True(t, IsTraceEnabled())
	assert.Equal(t, "trace", GetLevel())

	SetLevel("something else")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.Equal(t, "info", GetLevel())
}

func TestFormattingUTC(t *testing.T) {
	defer resetLogging()
	InitConfig(&sendconf.LogConfig{
		DisableColor: confutil.P(true),
		UTC:          confutil.P(true),
	})
	_, isUTC := logrus.StandardLogger().Formatter.(*utcFormat)
	assert.True(t, isUTC)
	L(context.Background()).Infof("time in UTC")
}

func TestFormattingDetailed(t *testing.T) {
	defer resetLogging()
	InitConfig(&sendconf.LogConfig{
		Format: confutil.P("detailed"),
		Output: confutil.P("stdout"),
	})
	assert.True(t, logrus.StandardLogger().ReportCaller)
	L(context.Background()).Infof("code info included")
}

func TestFormattingJSON(t *testing.T) {
	defer resetLogging()
	InitConfig(&sendconf.LogConfig{
		Format: confutil.P("json"),
		JSON: sendconf.LogJSONConfig{
			MessageField: confutil.P("msg"),
		},
	})
	buf := new(bytes.Buffer)
	logrus.SetOutput(buf)
	L(context.Background()).Infof("JSON logs")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "JSON logs", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["@timestamp"])
}

func TestOutputFile(t *testing.T) {
	defer resetLogging()
	logFile := path.Join(t.TempDir(), "sendintents.log")
	InitConfig(&sendconf.LogConfig{
		Output: confutil.P("file"),
		File: sendconf.LogFileConfig{
			Filename: confutil.P(logFile),
		},
	})
	L(context.Background()).Infof("File logs")

	fileInfo, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.False(t, fileInfo.IsDir())
}
