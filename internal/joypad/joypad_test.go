package joypad

import (
	"testing"

	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func newController() (*Controller, *interrupts.Controller) {
	irq := interrupts.New()
	irq.WriteIE(0xFF)
	return New(irq), irq
}

func TestReadP1NoGroupSelected(t *testing.T) {
	c, _ := newController()
	c.WriteP1(0x30)
	c.NotifyPressed(uint8(A) | uint8(Down))
	assert.Equal(t, uint8(0xFF), c.ReadP1())
}

func TestReadP1DirectionalGroup(t *testing.T) {
	c, _ := newController()
	c.WriteP1(0x20) // bit 4 clear selects the directional nibble
	c.NotifyPressed(uint8(Down) | uint8(A))
	// Down is pressed (bit 3 low), A is in the other nibble and has no
	// effect on the selected directional bits.
	assert.Equal(t, uint8(0xE7), c.ReadP1())
}

func TestNotifyPressedSchedulesOnEdgeOnly(t *testing.T) {
	c, irq := newController()
	c.NotifyPressed(uint8(Start))
	k, ok := irq.Query()
	assert.True(t, ok)
	assert.Equal(t, interrupts.Joypad, k)

	irq.Clear(interrupts.Joypad)
	c.NotifyPressed(uint8(Start)) // already pressed, no new edge
	_, ok = irq.Query()
	assert.False(t, ok)
}

func TestNotifyReleasedNeverSchedules(t *testing.T) {
	c, irq := newController()
	c.NotifyPressed(uint8(B))
	irq.Clear(interrupts.Joypad)
	c.NotifyReleased(uint8(B))
	_, ok := irq.Query()
	assert.False(t, ok)
}

func TestNotifyStateSchedulesOnNewBits(t *testing.T) {
	c, irq := newController()
	c.NotifyState(uint8(Up))
	k, ok := irq.Query()
	assert.True(t, ok)
	assert.Equal(t, interrupts.Joypad, k)

	irq.Clear(interrupts.Joypad)
	c.NotifyState(uint8(Up)) // same set, no edge
	_, ok = irq.Query()
	assert.False(t, ok)

	c.NotifyState(uint8(Up) | uint8(Down)) // new bit added
	_, ok = irq.Query()
	assert.True(t, ok)
}
