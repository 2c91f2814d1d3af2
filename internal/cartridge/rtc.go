package cartridge

import (
	"encoding/binary"
	"time"
)

// rtc register select addresses, as mapped by MBC3 writes to
// 0x4000-0x5FFF when the value is 0x08-0x0C.
const (
	rtcSeconds   = 0x08
	rtcMinutes   = 0x09
	rtcHours     = 0x0A
	rtcDaysLower = 0x0B
	rtcFlags     = 0x0C
)

const (
	flagDayMSB   = 0x01
	flagHalted   = 0x40
	flagDayCarry = 0x80
)

// rtcRegs is the base register snapshot the RTC's elapsed-time formula
// is computed against.
type rtcRegs struct {
	seconds, minutes, hours, daysLower, flags uint8
}

// rtc implements the MBC3 real-time clock. It stores a base
// wall-clock timestamp and a base-register snapshot; reads compute
// `now - base` plus the base value. The Halted flag freezes the
// effective clock: elapsed time is pinned to zero relative to whatever
// was baked into the base registers at the moment Halted was set.
type rtc struct {
	base     time.Time
	baseReg  rtcRegs
	latched  *time.Time
	selected uint8
}

func newRTC(now time.Time) *rtc {
	return &rtc{base: now, selected: rtcSeconds}
}

func (r *rtc) halted() bool {
	return r.baseReg.flags&flagHalted != 0
}

// elapsed returns the duration to apply on top of baseReg: zero while
// halted, the latch snapshot while latched, otherwise real time since
// base.
func (r *rtc) elapsed(now time.Time) time.Duration {
	if r.halted() {
		return 0
	}
	if r.latched != nil {
		return r.latched.Sub(r.base)
	}
	return now.Sub(r.base)
}

func (r *rtc) calcReg(reg uint8, elapsed time.Duration) uint8 {
	secs := int64(elapsed / time.Second)
	switch reg {
	case rtcSeconds:
		return uint8((secs + int64(r.baseReg.seconds)) % 60)
	case rtcMinutes:
		return uint8((secs/60 + int64(r.baseReg.minutes)) % 60)
	case rtcHours:
		return uint8((secs/3600 + int64(r.baseReg.hours)) % 24)
	case rtcDaysLower:
		return uint8(secs/86400 + int64(r.baseReg.daysLower))
	case rtcFlags:
		days := secs/86400 + int64(r.baseReg.daysLower) +
			int64(r.baseReg.flags&flagDayMSB)<<8
		// Halted and a previously-latched day carry stick until software
		// clears them by writing the flags register.
		flags := r.baseReg.flags & (flagHalted | flagDayCarry)
		if days&0x100 != 0 {
			flags |= flagDayMSB
		}
		if days > 0x1FF {
			flags |= flagDayCarry
		}
		return flags
	default:
		return 0xFF
	}
}

// selectReg maps a written MBC3 0x4000-0x5FFF value of 0x08-0x0C to the
// RTC register it addresses. ok is false for any other value.
func (r *rtc) selectReg(v uint8) bool {
	switch v {
	case rtcSeconds, rtcMinutes, rtcHours, rtcDaysLower, rtcFlags:
		r.selected = v
		return true
	default:
		return false
	}
}

// toggleLatch flips the latch: unlatching resumes live reads, latching
// freezes reads to the current instant.
func (r *rtc) toggleLatch(now time.Time) {
	if r.latched != nil {
		r.latched = nil
	} else {
		t := now
		r.latched = &t
	}
}

func (r *rtc) readReg(now time.Time) uint8 {
	return r.calcReg(r.selected, r.elapsed(now))
}

// writeReg writes the currently selected register. Writing the flags
// register recalculates and bakes in all registers (the day-carry and
// day-MSB bits can't be set by simple arithmetic trickery); writing
// any other register adjusts baseReg by the delta between the written
// value and what would currently be read.
func (r *rtc) writeReg(v uint8, now time.Time) {
	if r.selected == rtcFlags {
		elapsed := now.Sub(r.base)
		if r.halted() {
			elapsed = 0
		}
		r.baseReg.seconds = r.calcReg(rtcSeconds, elapsed)
		r.baseReg.minutes = r.calcReg(rtcMinutes, elapsed)
		r.baseReg.hours = r.calcReg(rtcHours, elapsed)
		r.baseReg.daysLower = r.calcReg(rtcDaysLower, elapsed)
		r.baseReg.flags = v & (flagDayMSB | flagHalted | flagDayCarry)
		r.base = now
		return
	}

	diff := v - r.calcReg(r.selected, r.elapsed(now))
	switch r.selected {
	case rtcSeconds:
		r.baseReg.seconds += diff
	case rtcMinutes:
		r.baseReg.minutes += diff
	case rtcHours:
		r.baseReg.hours += diff
	case rtcDaysLower:
		r.baseReg.daysLower += diff
	}
}

// metadataSize is the fixed size of the serialized RTC snapshot: an
// 8-byte LE millisecond epoch plus 5 register bytes.
const metadataSize = 13

func (r *rtc) exportMetadata() []byte {
	out := make([]byte, metadataSize)
	binary.LittleEndian.PutUint64(out[:8], uint64(r.base.UnixMilli()))
	out[8] = r.baseReg.seconds
	out[9] = r.baseReg.minutes
	out[10] = r.baseReg.hours
	out[11] = r.baseReg.daysLower
	out[12] = r.baseReg.flags
	return out
}

func (r *rtc) importMetadata(data []byte) error {
	if len(data) != metadataSize {
		return newLoadError(ErrInvalidMetadata, "wrong length")
	}
	if data[12]&^(flagDayMSB|flagHalted|flagDayCarry) != 0 {
		return newLoadError(ErrInvalidMetadata, "malformed flags byte")
	}
	ms := binary.LittleEndian.Uint64(data[:8])
	r.base = time.UnixMilli(int64(ms))
	r.baseReg = rtcRegs{
		seconds:   data[8],
		minutes:   data[9],
		hours:     data[10],
		daysLower: data[11],
		flags:     data[12],
	}
	r.latched = nil
	return nil
}
