package timer

import (
	"testing"

	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func newTimer() (*Controller, *interrupts.Controller) {
	irq := interrupts.New()
	return New(irq), irq
}

func TestDIVIncrementsByFourEveryAdvance(t *testing.T) {
	c, _ := newTimer()
	before := c.div
	for i := 0; i < 100; i++ {
		c.Advance()
	}
	assert.Equal(t, before+400, c.div)
}

func TestTimerOverflowSequence(t *testing.T) {
	c, irq := newTimer()
	c.WriteTAC(0x05) // enable, freq select 01 -> DIV bit 3
	c.WriteTIMA(0xFF)
	c.WriteTMA(0x42)

	// Construct a DIV value whose bit 3 is set, one cycle before a
	// natural falling edge (bit3 goes 1 -> 0 when +4 is added).
	c.div = 0xFFFC // bit3 set; +4 wraps to 0 and clears bit 3

	c.Advance() // cycle 0: falling edge -> TIMA overflows to 0, reload armed
	assert.Equal(t, uint8(0x00), c.ReadTIMA())
	assert.False(t, irq.Pending())

	c.Advance() // cycle 1: reload fires
	assert.Equal(t, uint8(0x42), c.ReadTIMA())
	irq.WriteIE(0xFF)
	k, ok := irq.Query()
	assert.True(t, ok)
	assert.Equal(t, interrupts.Timer, k)

	// right after the reload cycle: further TIMA writes are ignored.
	c.WriteTIMA(0x99)
	assert.Equal(t, uint8(0x42), c.ReadTIMA())
}

func TestWriteTMADuringRightAfterReloadOverwritesTIMA(t *testing.T) {
	c, _ := newTimer()
	c.WriteTAC(0x05)
	c.WriteTIMA(0xFF)
	c.WriteTMA(0x10)
	c.div = 0xFFFC

	c.Advance()
	c.Advance() // now in rightAfterReload, TIMA == 0x10
	assert.Equal(t, uint8(0x10), c.ReadTIMA())

	c.WriteTMA(0x55)
	assert.Equal(t, uint8(0x55), c.ReadTIMA())
}

func TestTACReadbackForcesUnusedBits(t *testing.T) {
	c, _ := newTimer()
	c.WriteTAC(0x01)
	assert.Equal(t, uint8(0xF9), c.ReadTAC())
}

func TestWriteDIVWithEdgeConditionIncrementsTIMA(t *testing.T) {
	c, _ := newTimer()
	c.WriteTAC(0x05) // enable, DIV bit 3
	c.div = 0x0008   // selected bit set: zeroing DIV is itself a falling edge
	c.WriteDIV(0x00)
	assert.Equal(t, uint8(0), c.ReadDIV())
	assert.Equal(t, uint8(1), c.ReadTIMA())
}

func TestWriteTACSpuriousFallingEdgeFiresImmediately(t *testing.T) {
	c, irq := newTimer()
	c.WriteTAC(0x05)
	c.WriteTIMA(0xFF)
	c.WriteTMA(0x42)
	c.div = 0x0008 // bit 3 set, bit 5 clear
	irq.WriteIE(0xFF)

	c.WriteTAC(0x06) // switch to DIV bit 5: the mux output falls
	assert.Equal(t, uint8(0x42), c.ReadTIMA())
	k, ok := irq.Query()
	assert.True(t, ok)
	assert.Equal(t, interrupts.Timer, k)
}

func TestWriteTIMADuringReloadCycleOverridesTMA(t *testing.T) {
	c, _ := newTimer()
	c.WriteTAC(0x05)
	c.WriteTIMA(0xFF)
	c.WriteTMA(0x42)
	c.div = 0xFFFC

	c.Advance() // overflow: TIMA reads 0, reload armed
	c.WriteTIMA(0x77)
	c.Advance() // reload cycle honors the deferred write, not TMA
	assert.Equal(t, uint8(0x77), c.ReadTIMA())
}
