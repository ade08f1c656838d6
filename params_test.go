package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	var p commandParams
	require.True(t, p.Read([]string{"harness", "-port", "0", "-run", "^stream", "-debug"}))
	assert.Equal(t, 0, p.port)
	assert.Equal(t, "127.0.0.1", p.host)
	assert.True(t, p.debug)
	assert.True(t, p.filters.MustMatch.IsDefined())
	assert.False(t, p.filters.MustNotMatch.IsDefined())
}

func TestReadParamsDefaults(t *testing.T) {
	var p commandParams
	require.True(t, p.Read([]string{"harness"}))
	assert.Equal(t, defaultPort, p.port)
	assert.Empty(t, p.verifyURL)
}

func TestReadParamsRejectsBadPort(t *testing.T) {
	var p commandParams
	assert.False(t, p.Read([]string{"harness", "-port", "70000"}))
}

func TestCurlCommand(t *testing.T) {
	assert.Equal(t, "curl -N http://127.0.0.1:18767/fragmented",
		curlCommand("http://127.0.0.1:18767/fragmented", true))
	assert.Equal(t, "curl 'http://host/expected?a=1&b=2'",
		curlCommand("http://host/expected?a=1&b=2", false))
}
