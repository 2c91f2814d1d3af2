package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/dmgboy/internal/cartridge"
	"github.com/pixelforge/dmgboy/pkg/log"
)

func buildROMOnlyCart(t *testing.T) cartridge.Cartridge {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00

	var sum uint8
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum

	// an infinite JR -2 loop (a jump back onto itself) at the reset vector, so StepInstruction is
	// always safe to call without running off the cartridge's zeroed ROM.
	rom[0x100] = 0x18
	rom[0x101] = 0xFE

	cart, err := cartridge.Load(rom)
	require.NoError(t, err)
	return cart
}

func TestNewSkipsBootROMByDefault(t *testing.T) {
	emu, err := New(buildROMOnlyCart(t), WithLogger(log.NewNullLogger()))
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0100), emu.cpu.Reg.PC)
	assert.Equal(t, uint16(0xFFFE), emu.cpu.Reg.SP)
}

func TestStepInstructionEventuallyProducesAFrame(t *testing.T) {
	emu, err := New(buildROMOnlyCart(t), WithLogger(log.NewNullLogger()))
	require.NoError(t, err)

	sawFrame := false
	for i := 0; i < 200000 && !sawFrame; i++ {
		emu.StepInstruction()
		if emu.QueryFrameStatus() == FrameVideo {
			sawFrame = true
		}
	}
	assert.True(t, sawFrame)
}

func TestFrameHashDeterministic(t *testing.T) {
	emu, err := New(buildROMOnlyCart(t), WithLogger(log.NewNullLogger()))
	require.NoError(t, err)

	h1 := emu.FrameHash()
	h2 := emu.FrameHash()
	assert.Equal(t, h1, h2)
}

func TestNotifyButtonsRoundTrip(t *testing.T) {
	emu, err := New(buildROMOnlyCart(t), WithLogger(log.NewNullLogger()))
	require.NoError(t, err)

	pad := emu.board.Joypad()
	pad.WriteP1(0x20) // select the directional nibble

	emu.NotifyButtonsPressed(0x01)
	assert.Equal(t, uint8(0xEE), pad.ReadP1())
	emu.NotifyButtonsReleased(0x01)
	assert.Equal(t, uint8(0xEF), pad.ReadP1())

	emu.NotifyButtonsState(0x80)
	pad.WriteP1(0x10) // select the action-button nibble
	assert.Equal(t, uint8(0xD7), pad.ReadP1())
}
