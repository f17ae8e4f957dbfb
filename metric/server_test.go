package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuhanLiin/heapless/errors"
)

func TestNewServerDefaults(t *testing.T) {
	server := NewServer(0, "", NewMetricsRegistry())

	assert.Equal(t, "http://localhost:9090/metrics", server.Address())
}

func TestServerStartWithoutRegistry(t *testing.T) {
	server := NewServer(9090, "/metrics", nil)

	err := server.Start()
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestServerStopWithoutStart(t *testing.T) {
	server := NewServer(9090, "/metrics", NewMetricsRegistry())

	assert.NoError(t, server.Stop())
}
