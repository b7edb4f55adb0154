// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates an HD44780 character LCD wired to a PCF8574 I²C
// backpack.
//
// Sim implements i2c.Bus. Every byte written to the backpack address is
// applied to the expander lines; when E falls the controller latches D4..D7
// and RS, exactly as the hardware does, so the emulated DDRAM, CGRAM and
// address counter reflect what a real display would show.
//
// Useful for testing display code without hardware, and to preview a layout
// in a terminal with NewTerminal.
package lcdsim

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the wiring and size of the emulated module.
type Opts struct {
	// Addr is the I²C address the backpack answers on.
	Addr uint16
	// Width and Height are the visible size in characters.
	Width  int
	Height int
	// RS, RW, E and BL are the expander bits of the control lines. D4..D7
	// are bits 4..7.
	RS, RW, E, BL uint8
	// NegativeBacklight is set when a low BL line lights the backlight.
	NegativeBacklight bool
	// RowOffsets is the DDRAM address of each visible row. Nil means 0x40*y.
	RowOffsets []byte
	// Palette used by Render. Nil uses ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

// DefaultOpts is a 16x2 module on a PCF8574 backpack at 0x27.
var DefaultOpts = Opts{
	Addr:   0x27,
	Width:  16,
	Height: 2,
	RS:     0,
	RW:     1,
	E:      2,
	BL:     3,
}

// Op is one transfer latched by the controller.
type Op struct {
	Data  bool // RS high
	Value byte
}

func (o Op) String() string {
	if o.Data {
		return fmt.Sprintf("data(%#02x)", o.Value)
	}
	return fmt.Sprintf("instruction(%#02x)", o.Value)
}

// State is a snapshot of the controller registers.
type State struct {
	AC        byte
	CGRAM     bool
	FourBit   bool
	TwoLine   bool
	BigFont   bool
	Increment bool
	Shift     bool
	Display   bool
	Cursor    bool
	Blink     bool
	Backlight bool
	// Offset is the display shift, positive when the content moved left.
	Offset int
}

// Sim is an emulated backpack and display.
type Sim struct {
	mu      sync.Mutex
	opts    Opts
	palette ansi256.Palette
	out     io.Writer
	drawn   bool
	buf     bytes.Buffer

	lines   byte // expander output
	pending bool
	high    byte
	fail    error
	ops     []Op

	ddram [0x80]byte
	cgram [0x40]byte
	st    State
}

// New returns a powered-on module. Like the real controller it starts in
// 8-bit mode with a blank DDRAM.
func New(opts *Opts) *Sim {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	s := &Sim{opts: *opts, palette: *p}
	s.st.Increment = true
	for ix := range s.ddram {
		s.ddram[ix] = ' '
	}
	return s
}

func (s *Sim) String() string {
	return fmt.Sprintf("lcdsim(%#02x %dx%d)", s.opts.Addr, s.opts.Width, s.opts.Height)
}

// Close implements i2c.BusCloser.
func (s *Sim) Close() error {
	return nil
}

// SetSpeed implements i2c.Bus.
func (s *Sim) SetSpeed(f physic.Frequency) error {
	return nil
}

// Fail makes the next Tx return err without touching the display.
func (s *Sim) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Tx implements i2c.Bus. Reads return the expander lines.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if addr != s.opts.Addr {
		return fmt.Errorf("lcdsim: no device at address %#02x", addr)
	}
	if err := s.fail; err != nil {
		s.fail = nil
		return err
	}
	for _, b := range w {
		s.apply(b)
	}
	for ix := range r {
		r[ix] = s.lines
	}
	if s.out != nil && len(w) != 0 {
		return s.render(s.out)
	}
	return nil
}

// Ops returns the transfers latched since the last ResetOps.
func (s *Sim) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Op(nil), s.ops...)
}

// ResetOps forgets the latched transfers.
func (s *Sim) ResetOps() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
}

// State returns the controller registers.
func (s *Sim) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	st.Backlight = s.backlight()
	return st
}

func (s *Sim) backlight() bool {
	on := s.lines&(1<<s.opts.BL) != 0
	return on != s.opts.NegativeBacklight
}

// CGRAM returns the 8 pattern rows of a custom glyph slot.
func (s *Sim) CGRAM(slot int) [8]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var g [8]byte
	copy(g[:], s.cgram[(slot&7)<<3:])
	return g
}

// DDRAM returns the character code at address.
func (s *Sim) DDRAM(address byte) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ddram[address&0x7f]
}

// Lines returns the character codes visible on each row, display shift
// applied.
func (s *Sim) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible()
}

func (s *Sim) visible() []string {
	rows := make([]string, s.opts.Height)
	for y := range rows {
		row := make([]byte, s.opts.Width)
		for x := range row {
			row[x] = s.ddram[s.cell(x, y)]
		}
		rows[y] = string(row)
	}
	return rows
}

// cell returns the DDRAM address shown at x, y.
func (s *Sim) cell(x, y int) byte {
	base := byte(0x40 * y)
	if s.opts.RowOffsets != nil {
		base = s.opts.RowOffsets[y]
	}
	addr := int(base) + x
	if !s.st.TwoLine {
		return byte(mod(addr+s.st.Offset, 0x50))
	}
	line := addr & 0x40
	return byte(line + mod(addr&0x3f+s.st.Offset, 0x28))
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// apply sets the expander lines to b.
func (s *Sim) apply(b byte) {
	e := byte(1) << s.opts.E
	falling := s.lines&e != 0 && b&e == 0
	s.lines = b
	if falling {
		s.latch(b)
	}
}

// latch reads D4..D7 and RS. In 8-bit mode the low data lines are not
// wired and read as 0.
func (s *Sim) latch(b byte) {
	nibble := b & 0xf0
	rs := b&(1<<s.opts.RS) != 0
	if !s.st.FourBit {
		s.execute(rs, nibble)
		return
	}
	if !s.pending {
		s.high = nibble
		s.pending = true
		return
	}
	s.pending = false
	s.execute(rs, s.high|nibble>>4)
}

func (s *Sim) execute(rs bool, v byte) {
	s.ops = append(s.ops, Op{Data: rs, Value: v})
	if rs {
		s.writeData(v)
		return
	}
	switch {
	case v&0x80 != 0:
		s.st.CGRAM = false
		s.st.AC = v & 0x7f
	case v&0x40 != 0:
		s.st.CGRAM = true
		s.st.AC = v & 0x3f
	case v&0x20 != 0:
		four := v&0x10 == 0
		if four != s.st.FourBit {
			s.pending = false
		}
		s.st.FourBit = four
		s.st.TwoLine = v&0x08 != 0
		s.st.BigFont = v&0x04 != 0
	case v&0x10 != 0:
		right := v&0x04 != 0
		if v&0x08 != 0 {
			if right {
				s.st.Offset--
			} else {
				s.st.Offset++
			}
		} else {
			s.step(right)
		}
	case v&0x08 != 0:
		s.st.Display = v&0x04 != 0
		s.st.Cursor = v&0x02 != 0
		s.st.Blink = v&0x01 != 0
	case v&0x04 != 0:
		s.st.Increment = v&0x02 != 0
		s.st.Shift = v&0x01 != 0
	case v&0x02 != 0:
		s.st.AC = 0
		s.st.CGRAM = false
		s.st.Offset = 0
	case v&0x01 != 0:
		for ix := range s.ddram {
			s.ddram[ix] = ' '
		}
		s.st.AC = 0
		s.st.CGRAM = false
		s.st.Offset = 0
		s.st.Increment = true
	}
}

func (s *Sim) writeData(v byte) {
	if s.st.CGRAM {
		s.cgram[s.st.AC&0x3f] = v
		s.step(s.st.Increment)
		return
	}
	s.ddram[s.st.AC&0x7f] = v
	s.step(s.st.Increment)
	if s.st.Shift {
		if s.st.Increment {
			s.st.Offset++
		} else {
			s.st.Offset--
		}
	}
}

// step moves the address counter one position.
func (s *Sim) step(forward bool) {
	delta := -1
	if forward {
		delta = 1
	}
	ac := int(s.st.AC)
	switch {
	case s.st.CGRAM:
		s.st.AC = byte(mod(ac+delta, 0x40))
	case !s.st.TwoLine:
		s.st.AC = byte(mod(ac+delta, 0x50))
	default:
		// Lines are 0x00..0x27 and 0x40..0x67, the end of one wrapping to
		// the start of the other.
		pos := mod((ac&0x3f)+(ac>>6)*0x28+delta, 0x50)
		s.st.AC = byte(pos/0x28*0x40 + pos%0x28)
	}
}

var _ i2c.BusCloser = &Sim{}
