package eth

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress(ZeroAddress))
	assert.True(t, IsAddress("0x00000000000000000000000000000000000000AA"))
	assert.False(t, IsAddress("0x123"))
	assert.False(t, IsAddress(""))
	assert.False(t, IsAddress("0xzz000000000000000000000000000000000000aa"))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(ZeroAddress))
	assert.True(t, IsZero("0000000000000000000000000000000000000000"))
	assert.False(t, IsZero("0x0000000000000000000000000000000000000001"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", Normalize("0x00000000000000000000000000000000000000AA"))
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", Normalize("00000000000000000000000000000000000000AA"))
}
