// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls Hitachi HD44780 character LCDs wired through an
// 8-bit I²C port expander, the "backpack" found on LCD1602 and LCD2004
// modules.
//
// The backpack connects the expander's 8 lines to the display's D4..D7, RS,
// RW, E and backlight inputs, so the controller runs in 4-bit mode: each
// instruction or character is sent as two nibble frames, high nibble first,
// and each frame is written twice, with E high then low, because the
// controller latches on the falling edge of E.
//
// The backpack cannot read the busy flag, so the driver waits a fixed time
// after each instruction, and keeps a shadow of the address counter so that
// defining a custom glyph does not move the cursor.
//
// Display operations (ClearScreen, Print, Draw, ...) do not return errors:
// invalid arguments make them a no-op and transport failures are logged and
// retained for Err(). Dev also implements display.TextDisplay, whose methods
// return errors.
//
// A Dev must not be used concurrently.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const packageName = "hd44780"

var (
	// ErrInvalidSlot is returned for a glyph slot outside 0..7.
	ErrInvalidSlot = errors.New("hd44780: glyph slot out of range")
	// ErrPatternLength is returned for a glyph pattern that is not 8 bytes.
	ErrPatternLength = errors.New("hd44780: glyph pattern must be 8 bytes")
	// ErrOutOfBounds is returned for a position outside the display.
	ErrOutOfBounds = errors.New("hd44780: position out of range")
	// ErrPinMap is returned when control lines share a bit or overlap the
	// data lines.
	ErrPinMap = errors.New("hd44780: invalid pin map")
)

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// IsRejected reports whether err is an invalid argument, as opposed to a
// failed transfer.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidSlot) || errors.Is(err, ErrPatternLength) || errors.Is(err, ErrOutOfBounds)
}

// State is the driver's copy of controller registers that cannot be read
// back.
type State struct {
	// Address is the address counter.
	Address byte
	// RAM is the memory the address counter points into.
	RAM       RAMType
	Backlight bool

	Increment bool
	Shift     bool

	Display bool
	Cursor  bool
	Blink   bool

	EightBit   bool
	SingleLine bool
	BigChars   bool
}

// Dev is a character LCD behind a port expander.
type Dev struct {
	opts   Opts
	seq    sequencer
	state  State
	log    logrus.FieldLogger
	sleep  func(time.Duration)
	err    error
	closer io.Closer
}

// New initializes the display connected to port and returns it ready for
// use. Nil opts uses DefaultOpts; a zero Pins uses DefaultPinMap.
//
// New runs the power-on initialization sequence, which takes about 210ms.
func New(port Port, opts *Opts) (*Dev, error) {
	return newDev(port, opts, time.Sleep)
}

func newDev(port Port, opts *Opts, sleep func(time.Duration)) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Pins == (PinMap{}) {
		o.Pins = DefaultPinMap
	}
	if err := o.validate(); err != nil {
		return nil, wrap(err)
	}
	dev := &Dev{
		opts:  o,
		seq:   sequencer{port: port, pins: o.Pins, polarity: o.Polarity, backlight: true},
		state: State{Increment: true},
		sleep: sleep,
	}
	dev.log = o.logger().WithFields(logrus.Fields{"dev": packageName, "addr": fmt.Sprintf("%#02x", o.Addr)})
	dev.log.WithFields(logrus.Fields{"pins": o.Pins.String(), "polarity": o.Polarity.String()}).Debug("initializing display")
	if err := dev.init(); err != nil {
		return nil, wrap(err)
	}
	return dev, nil
}

// init is the "initializing by instruction" sequence of the datasheet
// (figure 24). Until the fourth frame the controller may be in 8-bit mode
// and reads a whole instruction from D4..D7 on each latch.
func (d *Dev) init() error {
	d.sleep(delayPowerOn)
	for _, step := range []struct {
		frame byte
		wait  time.Duration
	}{
		{cmdFunction | function8Bit, delayInit1},
		{cmdFunction | function8Bit, delayInit2},
		{cmdFunction | function8Bit, delayInit3},
		{cmdFunction, delayInstruction},
	} {
		if err := d.seq.sendFrame(step.frame); err != nil {
			return err
		}
		d.sleep(step.wait)
	}
	if err := d.setFunction(false, d.opts.Height == 1, false); err != nil {
		return err
	}
	if err := d.configDisplay(true, false, false); err != nil {
		return err
	}
	if err := d.clear(); err != nil {
		return err
	}
	return d.home()
}

// exec sends c and waits for the controller to execute it.
func (d *Dev) exec(c command) error {
	if err := d.seq.send(c); err != nil {
		return err
	}
	d.sleep(c.delay)
	return nil
}

// swallow records the outcome of a display operation.
func (d *Dev) swallow(op string, err error) {
	switch {
	case err == nil:
	case IsRejected(err):
		d.log.WithField("op", op).Debug(err)
	default:
		d.err = wrap(err)
		d.log.WithField("op", op).Warn(d.err)
	}
}

// Err returns the last transport failure of a display operation, or nil.
func (d *Dev) Err() error {
	return d.err
}

// ClearErr forgets the last transport failure.
func (d *Dev) ClearErr() {
	d.err = nil
}

// State returns a copy of the shadow registers.
func (d *Dev) State() State {
	s := d.state
	s.Backlight = d.seq.backlight
	return s
}

// ClearScreen blanks the display and moves the cursor home.
func (d *Dev) ClearScreen() {
	d.swallow("clear", d.clear())
}

// ResetScreen moves the cursor home and undoes any display shift.
func (d *Dev) ResetScreen() {
	d.swallow("home", d.home())
}

// SetEntryMode sets whether the address counter increments or decrements
// after each character, and whether the display shifts with it.
func (d *Dev) SetEntryMode(increment, shift bool) {
	d.swallow("entry mode", d.setEntryMode(increment, shift))
}

// ConfigDisplay turns the display, the underline cursor and the blinking
// block cursor on or off.
func (d *Dev) ConfigDisplay(show, cursor, blink bool) {
	d.swallow("display", d.configDisplay(show, cursor, blink))
}

// SetShift moves the cursor, or the whole display when screen is true, one
// position right or left.
func (d *Dev) SetShift(screen, right bool) {
	d.swallow("shift", d.setShift(screen, right))
}

// SetFunction sends a function set instruction: 8-bit bus when longData, one
// display line when singleLine, 5x10 font when bigChars.
//
// The backpack only carries D4..D7; selecting an 8-bit bus desynchronizes
// the controller until it is initialized again.
func (d *Dev) SetFunction(longData, singleLine, bigChars bool) {
	d.swallow("function", d.setFunction(longData, singleLine, bigChars))
}

// SetAddress points the address counter into CGRAM or DDRAM. The address is
// truncated to 6 bits for CGRAM and 7 bits for DDRAM.
func (d *Dev) SetAddress(t RAMType, address byte) {
	d.swallow("address", d.setAddress(t, address))
}

// SetCursor moves the cursor to column x of row y, counted from 0. Positions
// outside the display are ignored.
func (d *Dev) SetCursor(x, y int) {
	d.swallow("cursor", d.cursor(x, y))
}

// Print writes s at the cursor. Characters outside 7-bit ASCII are dropped.
// Text is not wrapped.
func (d *Dev) Print(s string) {
	d.swallow("print", d.print(s))
}

// PrintAt writes s starting at column x of row y. Nothing is written if the
// position is outside the display.
func (d *Dev) PrintAt(s string, x, y int) {
	d.swallow("print", d.printAt(s, x, y))
}

// PrintCustomAt shows the custom glyph in slot at column x of row y.
func (d *Dev) PrintCustomAt(slot, x, y int) {
	d.swallow("print custom", d.printCustomAt(slot, x, y))
}

// Draw defines the custom glyph in slot (0..7) from 8 row patterns, top row
// first, the low 5 bits of each byte being the dots. The cursor position is
// preserved. Invalid slots or patterns are ignored.
func (d *Dev) Draw(pattern []byte, slot int) {
	d.swallow("draw", d.draw(pattern, slot))
}

// DrawGlyph is Draw for a Glyph.
func (d *Dev) DrawGlyph(g Glyph, slot int) {
	d.swallow("draw", d.draw(g[:], slot))
}

// Close releases the bus opened by Open. It is a no-op for displays created
// with New or NewI2C.
func (d *Dev) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return wrap(err)
}

func (d *Dev) clear() error {
	if err := d.exec(clearCommand()); err != nil {
		return err
	}
	d.state.Address = 0
	d.state.RAM = DDRAM
	d.state.Increment = true
	return nil
}

func (d *Dev) home() error {
	if err := d.exec(homeCommand()); err != nil {
		return err
	}
	d.state.Address = 0
	d.state.RAM = DDRAM
	return nil
}

func (d *Dev) setEntryMode(increment, shift bool) error {
	if err := d.exec(entryModeCommand(increment, shift)); err != nil {
		return err
	}
	d.state.Increment = increment
	d.state.Shift = shift
	return nil
}

func (d *Dev) configDisplay(show, cursor, blink bool) error {
	if err := d.exec(displayCommand(show, cursor, blink)); err != nil {
		return err
	}
	d.state.Display = show
	d.state.Cursor = cursor
	d.state.Blink = blink
	return nil
}

func (d *Dev) setShift(screen, right bool) error {
	if err := d.exec(shiftCommand(screen, right)); err != nil {
		return err
	}
	if !screen {
		d.advance(right)
	}
	return nil
}

func (d *Dev) setFunction(longData, singleLine, bigChars bool) error {
	if err := d.exec(functionCommand(longData, singleLine, bigChars)); err != nil {
		return err
	}
	d.state.EightBit = longData
	d.state.SingleLine = singleLine
	d.state.BigChars = bigChars
	return nil
}

func (d *Dev) setAddress(t RAMType, address byte) error {
	if err := d.exec(addressCommand(t, address)); err != nil {
		return err
	}
	d.state.RAM = t
	if t == CGRAM {
		d.state.Address = address & maskCGRAM
	} else {
		d.state.Address = address & maskDDRAM
	}
	return nil
}

func (d *Dev) rowBase(y int) byte {
	if d.opts.RowOffsets != nil {
		return d.opts.RowOffsets[y]
	}
	return byte(0x40 * y)
}

func (d *Dev) cursor(x, y int) error {
	if x < 0 || y < 0 || x >= d.opts.Width || y >= d.opts.Height {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, d.opts.Width, d.opts.Height)
	}
	return d.setAddress(DDRAM, d.rowBase(y)+byte(x))
}

// write sends p as data at the address counter.
func (d *Dev) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := d.exec(dataCommand(p)); err != nil {
		return err
	}
	for range p {
		d.advance(d.state.Increment)
	}
	return nil
}

func (d *Dev) print(s string) error {
	return d.write(asciiOnly(s))
}

func (d *Dev) printAt(s string, x, y int) error {
	if err := d.cursor(x, y); err != nil {
		return err
	}
	return d.print(s)
}

func (d *Dev) printCustomAt(slot, x, y int) error {
	if slot < 0 || slot >= GlyphSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if err := d.cursor(x, y); err != nil {
		return err
	}
	return d.write([]byte{byte(slot)})
}

// draw loads a glyph into CGRAM. CGRAM and DDRAM share the address counter,
// so the DDRAM address is restored afterwards.
func (d *Dev) draw(pattern []byte, slot int) error {
	if len(pattern) != GlyphRows {
		return fmt.Errorf("%w: got %d", ErrPatternLength, len(pattern))
	}
	if slot < 0 || slot >= GlyphSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	saved := d.state.Address
	err := d.setAddress(CGRAM, byte(slot)<<3)
	if err == nil {
		err = d.write(pattern)
	}
	if rerr := d.setAddress(DDRAM, saved); err == nil {
		err = rerr
	}
	return err
}

// advance moves the shadow address counter the way the controller does
// after a data write or cursor shift. In 2-line mode DDRAM lines are
// 0x00..0x27 and 0x40..0x67; in 1-line mode DDRAM is 0x00..0x4f.
func (d *Dev) advance(increment bool) {
	a := d.state.Address
	switch {
	case d.state.RAM == CGRAM:
		if increment {
			a++
		} else {
			a--
		}
		a &= maskCGRAM
	case d.state.SingleLine:
		if increment {
			a = (a + 1) % 0x50
		} else if a == 0 {
			a = 0x4f
		} else {
			a--
		}
	case increment:
		switch a {
		case 0x27:
			a = 0x40
		case 0x67:
			a = 0x00
		default:
			a++
		}
	default:
		switch a {
		case 0x00:
			a = 0x67
		case 0x40:
			a = 0x27
		default:
			a--
		}
	}
	d.state.Address = a & maskDDRAM
}
