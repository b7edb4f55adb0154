// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Opts is the display configuration. It is copied at construction.
type Opts struct {
	// Addr is the I²C address of the backpack expander. It is only used by
	// NewI2C and Open.
	Addr uint16
	// Width and Height are the visible size in characters.
	Width  int
	Height int
	// Pins is the position of the control lines in the expander byte.
	Pins PinMap
	// Polarity of the backlight line.
	Polarity Polarity
	// RowOffsets is the DDRAM address of the first cell of each row. When
	// nil, row y starts at 0x40*y.
	RowOffsets []byte
	// Logger receives transport failures that the display operations do not
	// return. Nil uses the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultOpts is a 16x2 display on a PCF8574 backpack at 0x27.
var DefaultOpts = Opts{
	Addr:     0x27,
	Width:    16,
	Height:   2,
	Pins:     DefaultPinMap,
	Polarity: Positive,
}

// Rows2004 are the row offsets of 20x4 modules, whose rows 2 and 3 continue
// rows 0 and 1 in DDRAM.
var Rows2004 = []byte{0x00, 0x40, 0x14, 0x54}

func (o *Opts) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrOutOfBounds, o.Width, o.Height)
	}
	if o.RowOffsets != nil && len(o.RowOffsets) < o.Height {
		return fmt.Errorf("%w: %d row offsets for %d rows", ErrOutOfBounds, len(o.RowOffsets), o.Height)
	}
	return o.Pins.validate()
}

func (o *Opts) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}
