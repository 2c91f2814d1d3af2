package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRejectsWrongSize(t *testing.T) {
	_, err := Load(make([]byte, 100))
	assert.Error(t, err)
}

func TestLoadAndRead(t *testing.T) {
	raw := make([]byte, Size)
	raw[0] = 0x31
	raw[0xFF] = 0x77
	r, err := Load(raw)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x31), r.Read(0))
	assert.Equal(t, uint8(0x77), r.Read(0xFF))
	assert.NotEmpty(t, r.Checksum())
}
