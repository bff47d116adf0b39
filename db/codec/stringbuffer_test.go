package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringBufferReserve(t *testing.T) {
	sb := NewStringBuffer(64)
	assert.True(t, sb.Capacity() >= 64)

	sb.AppendString("hello ")
	sb.AppendBytes([]byte("world"))
	assert.Equal(t, "hello world", sb.String())

	sb.Reserve(4096)
	assert.True(t, sb.Capacity() >= 4096)
	assert.Equal(t, "hello world", sb.String())

	// Reserving less than the current capacity is a no-op.
	c := sb.Capacity()
	sb.Reserve(16)
	assert.Equal(t, c, sb.Capacity())
}

func TestStringBufferResetKeepsCapacity(t *testing.T) {
	sb := NewStringBuffer(16)
	sb.Reserve(1024)
	sb.AppendString("data")

	sb.Reset()
	assert.Equal(t, 0, sb.Len())
	assert.True(t, sb.Capacity() >= 1024)
}
