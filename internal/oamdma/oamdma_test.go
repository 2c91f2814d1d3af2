package oamdma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMem struct {
	data [0x10000]uint8
}

func (f *fakeMem) ReadByte(addr uint16) uint8 {
	return f.data[addr]
}

type fakeOAM struct {
	data [160]uint8
}

func (f *fakeOAM) WriteOAM(idx uint8, v uint8) {
	f.data[idx] = v
}

func TestTransferCopies160BytesIn161Cycles(t *testing.T) {
	mem := &fakeMem{}
	for i := 0; i < 160; i++ {
		mem.data[0xC000+i] = uint8(i + 1)
	}
	oam := &fakeOAM{}
	e := New(mem, oam)

	e.WriteDMA(0xC0)
	assert.True(t, e.IsActive())

	for i := 0; i < 161; i++ {
		e.Advance()
	}
	assert.False(t, e.IsActive())

	for i := 0; i < 160; i++ {
		assert.Equal(t, uint8(i+1), oam.data[i])
	}
}

func TestInactiveEngineDoesNothing(t *testing.T) {
	mem := &fakeMem{}
	oam := &fakeOAM{}
	e := New(mem, oam)
	e.Advance()
	assert.False(t, e.IsActive())
}

func TestReadDMAReturnsLastWrite(t *testing.T) {
	e := New(&fakeMem{}, &fakeOAM{})
	e.WriteDMA(0x42)
	assert.Equal(t, uint8(0x42), e.ReadDMA())
}
