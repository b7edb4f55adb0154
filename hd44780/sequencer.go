// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"io"
)

// Port is the byte stream the backpack expander exposes. Each byte written
// sets all 8 expander lines at once; bytes must reach the pins in order.
//
// *i2c.Dev and *pcf857x.Dev both implement it.
type Port interface {
	io.Writer
}

// Polarity is the level that turns the backlight on.
type Polarity byte

const (
	// Positive backpacks light the backlight when the line is high.
	Positive Polarity = iota
	// Negative backpacks light the backlight when the line is low.
	Negative
)

func (p Polarity) String() string {
	if p == Negative {
		return "Negative"
	}
	return "Positive"
}

// PinMap is the bit position within the expander byte of each control line.
// The data lines D4..D7 are always on bits 4..7, so control lines must use
// distinct bits among 0..3.
type PinMap struct {
	RS uint8 // register select
	RW uint8 // read/write
	E  uint8 // enable
	BL uint8 // backlight
}

// DefaultPinMap is the wiring of the common PCF8574 LCD1602/LCD2004
// backpacks.
var DefaultPinMap = PinMap{RS: 0, RW: 1, E: 2, BL: 3}

func (m PinMap) validate() error {
	lines := [...]uint8{m.RS, m.RW, m.E, m.BL}
	var seen uint16
	for _, bit := range lines {
		if bit > 3 {
			return fmt.Errorf("%w: bit %d is a data line", ErrPinMap, bit)
		}
		if seen&(1<<bit) != 0 {
			return fmt.Errorf("%w: bit %d assigned twice", ErrPinMap, bit)
		}
		seen |= 1 << bit
	}
	return nil
}

func (m PinMap) String() string {
	return fmt.Sprintf("RS:%d RW:%d E:%d BL:%d", m.RS, m.RW, m.E, m.BL)
}

// rwWrite is the level of the read/write line. The driver never reads.
const rwWrite byte = 0

// sequencer expands controller transfers into the expander byte stream.
type sequencer struct {
	port      Port
	pins      PinMap
	polarity  Polarity
	backlight bool
}

// nibbles splits b into two frames, high nibble first, each carrying its 4
// bits on D4..D7.
func nibbles(b byte) [2]byte {
	return [2]byte{b & 0xf0, (b & 0x0f) << 4}
}

func (s *sequencer) backlightBit() byte {
	on := s.backlight
	if s.polarity == Negative {
		on = !on
	}
	if on {
		return 1
	}
	return 0
}

// control composes the expander byte for one frame.
func (s *sequencer) control(frame byte, kind commandType, enable bool) byte {
	b := frame&0xf0 |
		byte(kind)<<s.pins.RS |
		rwWrite<<s.pins.RW |
		s.backlightBit()<<s.pins.BL
	if enable {
		b |= 1 << s.pins.E
	}
	return b
}

// pulse appends frame as an enable high, enable low pair. The controller
// latches D4..D7 on the falling edge.
func (s *sequencer) pulse(dst []byte, frame byte, kind commandType) []byte {
	return append(dst, s.control(frame, kind, true), s.control(frame, kind, false))
}

// frames returns the complete byte stream for c.
func (s *sequencer) frames(c command) []byte {
	out := make([]byte, 0, 4*len(c.payload))
	for _, b := range c.payload {
		n := nibbles(b)
		out = s.pulse(out, n[0], c.kind)
		out = s.pulse(out, n[1], c.kind)
	}
	return out
}

// send writes c in a single transport write.
func (s *sequencer) send(c command) error {
	_, err := s.port.Write(s.frames(c))
	return err
}

// sendFrame latches a single frame as an instruction. It is only used while
// the controller may still be in 8-bit mode.
func (s *sequencer) sendFrame(frame byte) error {
	_, err := s.port.Write(s.pulse(nil, frame, instruction))
	return err
}

// sendIdle writes one byte with enable low so only the backlight line
// changes.
func (s *sequencer) sendIdle() error {
	_, err := s.port.Write([]byte{s.control(0, instruction, false)})
	return err
}
