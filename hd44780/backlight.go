// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/display"
)

// SetBacklight turns the backlight on or off. The backlight line is part of
// every byte sent to the expander, so the setting sticks for all later
// transfers.
func (d *Dev) SetBacklight(on bool) {
	d.swallow("backlight", d.setBacklight(on))
}

// Backlight implements display.DisplayBacklight. The backpack can only
// switch the backlight, so any non-zero intensity turns it on.
func (d *Dev) Backlight(intensity display.Intensity) error {
	return wrap(d.setBacklight(intensity > 0))
}

// setBacklight writes a single byte with E low so the controller sees no
// edge and only the backlight line changes.
func (d *Dev) setBacklight(on bool) error {
	prev := d.seq.backlight
	d.seq.backlight = on
	if err := d.seq.sendIdle(); err != nil {
		d.seq.backlight = prev
		return err
	}
	return nil
}

var _ display.DisplayBacklight = &Dev{}
