// Package emulator is the emulator core's public surface: a single
// Emulator type wrapping the CPU/board pair, advanced one instruction at
// a time by the host application.
package emulator

import (
	"github.com/cespare/xxhash"

	"github.com/pixelforge/dmgboy/internal/board"
	"github.com/pixelforge/dmgboy/internal/boot"
	"github.com/pixelforge/dmgboy/internal/cartridge"
	"github.com/pixelforge/dmgboy/internal/cpu"
	"github.com/pixelforge/dmgboy/internal/ppu"
	"github.com/pixelforge/dmgboy/pkg/log"
)

// FrameStatus mirrors ppu.FrameStatus at the package boundary, so
// callers never need to import internal/ppu themselves.
type FrameStatus = ppu.FrameStatus

const (
	FrameNotReady = ppu.FrameNotReady
	FrameVideo    = ppu.FrameVideo
	FrameLCDOff   = ppu.FrameLCDOff
)

// Buttons is the 8-bit Right/Left/Up/Down/A/B/Select/Start mask used by
// every NotifyButtons* call, matching the joypad package's Button bits.
type Buttons = uint8

// Option configures an Emulator at construction time.
type Option func(*config)

type config struct {
	bootROM []byte
	logger  log.Logger
}

// WithBootROM supplies the 256-byte DMG boot ROM image. Without it, the
// emulator starts directly at the post-boot CPU/PPU state (PC=0x0100,
// LCD already on), skipping the boot sequence entirely.
func WithBootROM(b []byte) Option {
	return func(c *config) { c.bootROM = b }
}

// WithLogger overrides the default stdout logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Emulator is the top-level handle a frontend drives: one cartridge, one
// CPU, one board, advanced strictly one instruction at a time.
type Emulator struct {
	board *board.Board
	cpu   *cpu.CPU
}

// New returns an Emulator for the given cartridge. If no boot ROM
// option is given, the machine starts in the documented post-boot-ROM
// state rather than running the boot sequence.
func New(cart cartridge.Cartridge, opts ...Option) (*Emulator, error) {
	cfg := config{logger: log.New()}
	for _, o := range opts {
		o(&cfg)
	}

	var bootROM *boot.ROM
	if cfg.bootROM != nil {
		r, err := boot.Load(cfg.bootROM)
		if err != nil {
			return nil, err
		}
		bootROM = r
	}

	b := board.New(cart, bootROM, cfg.logger)
	c := cpu.New(b, b.Interrupts())

	e := &Emulator{board: b, cpu: c}
	if bootROM == nil {
		e.skipBootROM()
	}
	return e, nil
}

// skipBootROM sets the CPU and PPU to the documented state immediately
// after the real boot ROM hands off control, for callers that don't
// supply a boot ROM image.
func (e *Emulator) skipBootROM() {
	e.cpu.Reg.PC = 0x0100
	e.cpu.Reg.SP = 0xFFFE
	e.cpu.Reg.SetAF(0x01B0)
	e.cpu.Reg.SetBC(0x0013)
	e.cpu.Reg.SetDE(0x00D8)
	e.cpu.Reg.SetHL(0x014D)
	e.board.WriteByte(0xFF50, 0x01)
	e.board.WriteByte(0xFF40, 0x91)
	e.board.WriteByte(0xFF47, 0xFC)
}

// StepInstruction advances the machine by exactly one CPU instruction,
// including any interrupt service performed first.
func (e *Emulator) StepInstruction() {
	e.cpu.StepInstruction()
}

// QueryFrameStatus returns and clears the pending frame-ready flag.
func (e *Emulator) QueryFrameStatus() FrameStatus {
	return e.board.PPU().QueryFrameStatus()
}

// Frame returns the current 160x144 RGBA frame buffer. Only meaningful
// immediately after QueryFrameStatus reports FrameVideo; turning the LCD
// off (FrameLCDOff) leaves the buffer as it was, without clearing it.
func (e *Emulator) Frame() []ppu.Pixel {
	return e.board.PPU().Frame()
}

// FrameHash hashes the current frame buffer with xxhash, letting a
// headless driver detect an unchanged frame far more cheaply than
// diffing 92160 bytes itself.
func (e *Emulator) FrameHash() uint64 {
	frame := e.board.PPU().Frame()
	buf := make([]byte, len(frame)*4)
	for i, px := range frame {
		buf[i*4] = px.R
		buf[i*4+1] = px.G
		buf[i*4+2] = px.B
		buf[i*4+3] = px.A
	}
	return xxhash.Sum64(buf)
}

// NotifyButtonsPressed marks the given buttons as newly pressed.
func (e *Emulator) NotifyButtonsPressed(set Buttons) {
	e.board.Joypad().NotifyPressed(set)
}

// NotifyButtonsReleased marks the given buttons as released.
func (e *Emulator) NotifyButtonsReleased(set Buttons) {
	e.board.Joypad().NotifyReleased(set)
}

// NotifyButtonsState replaces the entire pressed-button set at once.
func (e *Emulator) NotifyButtonsState(set Buttons) {
	e.board.Joypad().NotifyState(set)
}

// Cartridge returns the loaded cartridge, for savegame/RTC persistence.
func (e *Emulator) Cartridge() cartridge.Cartridge {
	return e.board.Cartridge()
}
