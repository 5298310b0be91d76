// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestNewOptions keeps URL settings and applies the limiter's timeouts.
*/
func TestNewOptions(t *testing.T) {
	options, err := newOptions("redis://:s3cret@cache.internal:6380/2")
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", options.Addr)
	assert.Equal(t, "s3cret", options.Password)
	assert.Equal(t, 2, options.DB)
	assert.Nil(t, options.TLSConfig)
	assert.Equal(t, poolSize, options.PoolSize)
	assert.Equal(t, ioTimeout, options.ReadTimeout)
	assert.Equal(t, ioTimeout, options.WriteTimeout)

	secure, err := newOptions("rediss://cache.internal:6380")
	require.NoError(t, err)
	assert.NotNil(t, secure.TLSConfig)
}

func TestNewOptions_InvalidURL(t *testing.T) {
	_, err := newOptions("http://cache.internal")
	assert.Error(t, err)
}
