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

package msgs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const sendIntentsPrefix = "SD01"

var registered sync.Once
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	registered.Do(func() {
		i18n.RegisterPrefix(sendIntentsPrefix, "Send Intents")
	})
	if !strings.HasPrefix(key, sendIntentsPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", sendIntentsPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Types SD0100XX
	MsgTypesUnmarshalNil      = ffe("SD010000", "UnmarshalJSON on nil pointer")
	MsgTypesScanFail          = ffe("SD010001", "Unable to scan type %T into type %T")
	MsgTypesInvalidHex        = ffe("SD010002", "Invalid hex: %s")
	MsgTypesInvalidHexInteger = ffe("SD010003", "Invalid integer: %s")
	MsgTypesInvalidAddress    = ffe("SD010004", "Invalid address: %q")
	MsgTypesNegativeUint256   = ffe("SD010005", "Integer must not be negative: %s")
	MsgTypesRestoreFailed     = ffe("SD010006", "Failed to restore type '%T' into '%T'")

	// Config SD0101XX
	MsgConfigFileMissing         = ffe("SD010100", "Config file not found at path: %s")
	MsgConfigFileReadError       = ffe("SD010101", "Failed to read config file %s with error: %s")
	MsgConfigFileParseError      = ffe("SD010102", "Failed to parse config file: %s")
	MsgConfigInvalidBPSPerTicket = ffe("SD010103", "Invalid bpsPerTicket '%s': must be a positive integer")

	// Call data decoding SD0102XX
	MsgCallDataTooShort          = ffe("SD010200", "Call data is %d bytes, which is shorter than a 4 byte function selector", 400)
	MsgCallDataUnknownSelector   = ffe("SD010201", "Function selector %s does not match any function in the ABI", 400)
	MsgCallDataDecodeFailed      = ffe("SD010202", "Failed to decode call data for function '%s'", 400)
	MsgCallDataSerializeFailed   = ffe("SD010203", "Failed to serialize argument %d of function '%s'")
	MsgABIInvalidFunction        = ffe("SD010204", "Invalid ABI function definition '%s'")
	MsgCallDataNoFunctionsInABI  = ffe("SD010206", "ABI does not contain any functions")
	MsgCallDataArgumentNotString = ffe("SD010207", "Argument %d is not a JSON string: %s")
	MsgCallDataWordOutOfRange    = ffe("SD010208", "Call data has no 32 byte word at position %d", 400)
	MsgCallDataWordTooLarge      = ffe("SD010209", "Offset or length at position %d does not fit in 32 bits", 400)
	MsgCallDataLengthOutOfRange  = ffe("SD010210", "Length %d of '%s' at position %d needs more than the %d bytes that follow it", 400)
	MsgCallDataValueOutOfRange   = ffe("SD010211", "Value of type '%s' at position %d runs past the end of the call data", 400)
	MsgCallDataTooManyValues     = ffe("SD010212", "Call data of %d bytes declares more values than it can encode", 400)

	// Intents SD0103XX
	MsgIntentUnexpectedFunction = ffe("SD010300", "Expected a call to '%s' but call data invokes '%s'", 400)
	MsgIntentMissingArgument    = ffe("SD010301", "Call to '%s' is missing argument %d", 400)
	MsgIntentInvalidBatch       = ffe("SD010302", "Invalid executeBatch calls argument", 400)
	MsgIntentEmptyBatch         = ffe("SD010303", "executeBatch call contains no calls", 400)
	MsgIntentNotATransfer       = ffe("SD010304", "Call %d of the batch is not a token transfer: %s", 400)
	MsgIntentInvalidTransfer    = ffe("SD010305", "Invalid token transfer in call %d of the batch", 400)

	// Contract registry SD0104XX
	MsgRegistryUnknownABI        = ffe("SD010400", "Unknown contract ABI '%s'", 404)
	MsgRegistryUnknownContract   = ffe("SD010401", "No contract registered at address %s on chain %d", 404)
	MsgRegistryInvalidAddress    = ffe("SD010402", "Invalid address '%s' for contract '%s'")
	MsgRegistryDuplicateContract = ffe("SD010403", "Contract address %s registered more than once on chain %d")
	MsgRegistryLoadABIFailed     = ffe("SD010404", "Failed to load embedded ABI '%s'")

	// JSON/RPC SD0105XX
	MsgJSONRPCInvalidRequest      = ffe("SD010500", "Invalid JSON/RPC request data")
	MsgJSONRPCMissingRequestID    = ffe("SD010501", "Invalid JSON/RPC request. Must set request ID")
	MsgJSONRPCUnsupportedMethod   = ffe("SD010502", "method not supported %s")
	MsgJSONRPCIncorrectParamCount = ffe("SD010503", "method %s requires %d params (supplied=%d)")
	MsgJSONRPCInvalidParam        = ffe("SD010504", "method %s parameter %d invalid: %s")
	MsgJSONRPCResultSerialization = ffe("SD010505", "method %s result serialization failed: %s")
	MsgRPCClientRequestFailed     = ffe("SD010506", "Backend RPC request failed: %s")
	MsgRPCClientResultParseFailed = ffe("SD010507", "Failed to parse result (expected=%T): %s")
	MsgRPCClientInvalidHTTPURL    = ffe("SD010508", "Invalid HTTP URL: %s")
	MsgJSONRPCBatchTooLarge       = ffe("SD010509", "Batch contains %d requests, which exceeds the maximum of %d")
	MsgJSONRPCRequestTooLarge     = ffe("SD010510", "Request body exceeds the maximum size of %d bytes")

	// HTTP server SD0106XX
	MsgHTTPServerStartFailed = ffe("SD010600", "Failed to start server on '%s'")
	MsgHTTPServerMissingPort = ffe("SD010601", "HTTP server port must be specified for '%s'")

	// Entrypoint SD0107XX
	MsgEntrypointMissingArg = ffe("SD010700", "Missing required argument: %s")
	MsgEntrypointRunFailed  = ffe("SD010701", "Server exited with return code %d")
	MsgEntrypointDecodeMode = ffe("SD010702", "Invalid decode mode '%s': must be one of %s")
)
