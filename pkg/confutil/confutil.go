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

package confutil

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

// Config structs hold pointers, so that an unset field can be told apart from a zero value
// and take its default. The log package depends on this package, so nothing here can log.

func P[T any](v T) *T {
	return &v
}

func Bool(bVal *bool, def bool) bool {
	if bVal == nil {
		return def
	}
	return *bVal
}

// IntMin raises a configured value to min, but leaves the default alone
func IntMin(iVal *int, min int, def int) int {
	if iVal == nil {
		return def
	}
	return max(*iVal, min)
}

func StringNotEmpty(sVal *string, def string) string {
	if sVal == nil || *sVal == "" {
		return def
	}
	return *sVal
}

func StringSlice(sVal []string, def []string) []string {
	if sVal == nil {
		return def
	}
	return sVal
}

// parseOr parses the configured string, or def if it is unset or does not parse.
// configured is only true when the configured string was used.
func parseOr[T any](sVal *string, parse func(string) (T, error), def string) (v T, configured bool) {
	if sVal != nil {
		if v, err := parse(*sVal); err == nil {
			return v, true
		}
	}
	v, _ = parse(def)
	return v, false
}

func DurationMin(sVal *string, min time.Duration, def string) time.Duration {
	d, configured := parseOr(sVal, time.ParseDuration, def)
	if configured && d < min {
		return min
	}
	return d
}

func DurationSeconds(sVal *string, min time.Duration, def string) int64 {
	return int64(math.Ceil(DurationMin(sVal, min, def).Seconds()))
}

// ByteSize accepts sizes such as "64KB" or "1Mb"
func ByteSize(sVal *string, min int64, def string) int64 {
	b, configured := parseOr(sVal, units.RAMInBytes, def)
	if configured && b < min {
		return min
	}
	return b
}

func parseBigInt(s string) (*big.Int, error) {
	if i, ok := new(big.Int).SetString(s, 0); ok {
		return i, nil
	}
	return nil, strconv.ErrSyntax
}

// BigInt accepts decimal or 0x prefixed hex. An empty string counts as unset. When a value
// is set but is not an integer the default is returned with ok=false, so the caller can
// choose between rejecting the config and carrying on with the default.
func BigInt(sVal *string, def string) (i *big.Int, ok bool) {
	i, configured := parseOr(sVal, parseBigInt, def)
	return i, configured || sVal == nil || *sVal == ""
}
