package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeTokenSmallestAbsentValue(t *testing.T) {
	token, ok := freeToken([]byte("abababab"))
	require.True(t, ok)
	assert.Equal(t, byte(0x00), token)

	token, ok = freeToken([]byte{0x00, 0x01, 0x03})
	require.True(t, ok)
	assert.Equal(t, byte(0x02), token)
}

func TestFreeTokenEmptyBuffer(t *testing.T) {
	token, ok := freeToken(nil)
	require.True(t, ok)
	assert.Equal(t, byte(0x00), token)
}

func TestFreeTokenExhausted(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	_, ok := freeToken(buf)
	assert.False(t, ok)

	// One value missing is enough again.
	_, ok = freeToken(buf[1:])
	assert.True(t, ok)
}
