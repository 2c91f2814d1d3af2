package serial

import (
	"testing"

	"github.com/pixelforge/dmgboy/pkg/log"
	"github.com/stretchr/testify/assert"
)

func TestSBRoundTrip(t *testing.T) {
	c := New(log.NewNullLogger())
	c.WriteSB(0x42)
	assert.Equal(t, uint8(0x42), c.ReadSB())
}

func TestSCForcesUnusedBits(t *testing.T) {
	c := New(log.NewNullLogger())
	assert.Equal(t, uint8(0x7E), c.ReadSC())

	c.WriteSC(0x81)
	assert.Equal(t, uint8(0xFF), c.ReadSC())
}
