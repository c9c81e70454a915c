package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	once = sync.Once{}
	logger = nil

	Init(DefaultConfig())
	first := GetLogger()
	require.NotNil(t, first)

	Init(DefaultConfig())
	assert.Same(t, first, GetLogger())
}

func TestWithFieldReturnsIndependentLogger(t *testing.T) {
	once = sync.Once{}
	logger = nil
	Init(DefaultConfig())

	child := GetLogger().WithField("worker", "w1")
	assert.NotNil(t, child)
	assert.False(t, child.IsTraceEnabled())
}
