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

package cache

import (
	"errors"
	"testing"

	"github.com/0xsend/sendintents/pkg/confutil"
	"github.com/0xsend/sendintents/pkg/sendconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLRU(t *testing.T) {
	c := NewCache[string, string](&sendconf.CacheConfig{}, &sendconf.CacheConfig{Capacity: confutil.P(1)})

	c.Set("key1", "val1")
	v, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "val1", v)

	c.Set("key2", "val2")
	v, ok = c.Get("key2")
	assert.True(t, ok)
	assert.Equal(t, "val2", v)

	_, ok = c.Get("key1")
	assert.False(t, ok)
	assert.Equal(t, []string{"key2"}, c.Keys())

	c.Delete("key2")
	_, ok = c.Get("key2")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Capacity())
}

func TestCacheMinimumCapacity(t *testing.T) {
	c := NewCache[string, int](&sendconf.CacheConfig{Capacity: confutil.P(0)}, sendconf.DecoderCacheDefaults)
	assert.Equal(t, 1, c.Capacity())
}

func TestCacheGetOrLoad(t *testing.T) {
	c := NewCache[string, int](&sendconf.CacheConfig{}, sendconf.DecoderCacheDefaults)
	loads := 0
	load := func() (int, error) {
		loads++
		return 42, nil
	}

	v, err := c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	v, err = c.GetOrLoad("k", load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad("fail", func() (int, error) { return 0, errors.New("pop") })
	assert.Regexp(t, "pop", err)
	_, ok := c.Get("fail")
	assert.False(t, ok)

	c.Clear()
	assert.Empty(t, c.Keys())
}
