package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM assembles a header-valid ROM image of the given bank count.
func buildROM(t *testing.T, banks int, typ Type, romSize, ramSize uint8) []byte {
	t.Helper()
	rom := make([]byte, banks*0x4000)
	copy(rom[0x134:], "LOADTEST")
	rom[0x147] = uint8(typ)
	rom[0x148] = romSize
	rom[0x149] = ramSize

	var sum uint8
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestLoadRejectsBadSize(t *testing.T) {
	_, err := Load(make([]byte, 0x4000))
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrBadSize, le.Cause)

	_, err = Load(make([]byte, 0x8001))
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrBadSize, le.Cause)
}

func TestLoadRejectsBadChecksum(t *testing.T) {
	rom := buildROM(t, 2, TypeROMOnly, 0x00, 0x00)
	rom[0x14D] ^= 0xFF
	_, err := Load(rom)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrBadChecksum, le.Cause)
}

func TestLoadRejectsUnknownType(t *testing.T) {
	rom := buildROM(t, 2, Type(0x42), 0x00, 0x00)
	_, err := Load(rom)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrUnknownType, le.Cause)
}

func TestLoadRejectsUnknownSizeBytes(t *testing.T) {
	rom := buildROM(t, 2, TypeROMOnly, 0x7F, 0x00)
	_, err := Load(rom)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrUnknownType, le.Cause)

	rom = buildROM(t, 2, TypeROMOnly, 0x00, 0x3F)
	_, err = Load(rom)
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrUnknownType, le.Cause)
}

func TestLoadRejects32KiBCartridgeRAM(t *testing.T) {
	rom := buildROM(t, 2, TypeMBC1RAM, 0x00, uint8(RAM32KiB))
	_, err := Load(rom)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrUnsupportedCombination, le.Cause)
}

func TestLoadDispatchesPerTypeByte(t *testing.T) {
	for _, tc := range []struct {
		typ     Type
		ramSize uint8
	}{
		{TypeROMOnly, 0x00},
		{TypeMBC1, 0x00},
		{TypeMBC1RAMBattery, uint8(RAM8KiB)},
		{TypeMBC2, 0x00},
		{TypeMBC3RAMBattery, uint8(RAM8KiB)},
		{TypeMBC3TimerBatt, 0x00},
	} {
		cart, err := Load(buildROM(t, 2, tc.typ, 0x00, tc.ramSize))
		require.NoError(t, err, "type %s", tc.typ)
		assert.Equal(t, "LOADTEST", cart.Title())
		assert.NotEmpty(t, cart.Filename())
	}
}

// RAM bytes written in one cartridge instance, persisted and restored
// into a second one, read back identically.
func TestSavegameRoundTrip(t *testing.T) {
	rom := buildROM(t, 2, TypeMBC1RAMBattery, 0x00, uint8(RAM8KiB))

	a, err := Load(rom)
	require.NoError(t, err)
	a.WriteROM(0x0000, 0x0A) // enable RAM
	a.WriteRAM(0x0000, 0x11)
	a.WriteRAM(0x1FFF, 0x22)

	saved := a.Savegame()
	require.NotNil(t, saved)

	b, err := Load(rom)
	require.NoError(t, err)
	b.LoadSavegame(saved)
	b.WriteROM(0x0000, 0x0A)
	assert.Equal(t, uint8(0x11), b.ReadRAM(0x0000))
	assert.Equal(t, uint8(0x22), b.ReadRAM(0x1FFF))
}

func TestSavegameNilWithoutBattery(t *testing.T) {
	cart, err := Load(buildROM(t, 2, TypeMBC1RAM, 0x00, uint8(RAM8KiB)))
	require.NoError(t, err)
	assert.Nil(t, cart.Savegame())
}

func TestMetadataOnlyOnRTCCartridges(t *testing.T) {
	plain, err := Load(buildROM(t, 2, TypeMBC3RAMBattery, 0x00, uint8(RAM8KiB)))
	require.NoError(t, err)
	assert.False(t, plain.HasMetadata())
	_, err = plain.SerializeMetadata()
	assert.Error(t, err)

	timered, err := Load(buildROM(t, 2, TypeMBC3TimerBatt, 0x00, 0x00))
	require.NoError(t, err)
	assert.True(t, timered.HasMetadata())

	data, err := timered.SerializeMetadata()
	require.NoError(t, err)
	assert.Len(t, data, metadataSize)
	assert.NoError(t, timered.DeserializeMetadata(data))
}

// TestMBC3RTCRegisterMapping drives the RTC through the cartridge's
// write interface: select the seconds register via 0x4000-0x5FFF, write
// and read it through 0xA000, then switch back to RAM bank 0.
func TestMBC3RTCRegisterMapping(t *testing.T) {
	cart, err := Load(buildROM(t, 2, TypeMBC3TimerBatt, 0x00, 0x00))
	require.NoError(t, err)

	cart.WriteROM(0x0000, 0x0A) // enable RAM/RTC
	cart.WriteROM(0x4000, 0x08) // map RTC seconds
	cart.WriteRAM(0x0000, 30)   // write seconds
	assert.Equal(t, uint8(30), cart.ReadRAM(0x0000))

	cart.WriteROM(0x4000, 0x00) // back to RAM bank 0 (none present)
	assert.Equal(t, uint8(0xFF), cart.ReadRAM(0x0000))
}
