// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// AutoScroll makes the display shift with each character written.
func (d *Dev) AutoScroll(enabled bool) error {
	return wrap(d.setEntryMode(d.state.Increment, enabled))
}

// Clear clears the screen and moves the cursor to the first position.
func (d *Dev) Clear() error {
	return wrap(d.clear())
}

// Return the number of columns the display supports
func (d *Dev) Cols() int {
	return d.opts.Width
}

// Return the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.opts.Height
}

// Return the min column position.
func (d *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (d *Dev) MinRow() int {
	return 1
}

// Cursor sets the cursor mode. You can pass multiple arguments, the last
// one wins.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	cursor, blink := d.state.Cursor, d.state.Blink
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			cursor, blink = false, false
		case display.CursorUnderline:
			cursor, blink = true, false
		case display.CursorBlock:
			cursor, blink = false, true
		case display.CursorBlink:
			cursor, blink = true, true
		default:
			return fmt.Errorf("%s: unexpected cursor mode %d: %w", packageName, mode, display.ErrInvalidCommand)
		}
	}
	return wrap(d.configDisplay(d.state.Display, cursor, blink))
}

// Home moves the cursor to (MinRow(),MinCol()).
func (d *Dev) Home() error {
	return wrap(d.home())
}

// Move moves the cursor one position forward or backward.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Forward:
		return wrap(d.setShift(false, true))
	case display.Backward:
		return wrap(d.setShift(false, false))
	default:
		return fmt.Errorf("%s: cursor direction %d: %w", packageName, dir, display.ErrNotImplemented)
	}
}

// MoveTo moves the cursor to row, col, counted from 1.
func (d *Dev) MoveTo(row, col int) error {
	return wrap(d.cursor(col-d.MinCol(), row-d.MinRow()))
}

// Display turns the display on or off. The cursor mode is kept.
func (d *Dev) Display(on bool) error {
	return wrap(d.configDisplay(on, d.state.Cursor, d.state.Blink))
}

// Write sends p as character codes at the cursor. Unlike Print, codes above
// 0x7f are sent as is, to reach the upper half of the character ROM.
func (d *Dev) Write(p []byte) (int, error) {
	if err := d.write(p); err != nil {
		return 0, wrap(err)
	}
	return len(p), nil
}

// WriteString writes text as character codes.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Halt clears the display, turns it off, and turns the backlight off.
func (d *Dev) Halt() error {
	err := d.clear()
	if e := d.configDisplay(false, false, false); err == nil {
		err = e
	}
	if e := d.setBacklight(false); err == nil {
		err = e
	}
	return wrap(err)
}

func (d *Dev) String() string {
	port := "port"
	if s, ok := d.seq.port.(fmt.Stringer); ok {
		port = s.String()
	}
	return fmt.Sprintf("%s{%s %dx%d}", packageName, port, d.opts.Width, d.opts.Height)
}

var _ display.TextDisplay = &Dev{}
var _ conn.Resource = &Dev{}
