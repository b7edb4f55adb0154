// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x drives the TI/NXP PCF8574 and PCF8575 I²C port expanders.
//
// These chips have no registers. Every byte written to the device is copied
// to the 8 (PCF8574) or 16 (PCF8575) quasi-bidirectional output pins, and a
// read returns the level of the pins. A single I²C write transaction may
// carry any number of bytes and the pins change after each acknowledged
// byte, which is what makes the chip usable as a cheap parallel port for
// character LCD backpacks (LCD1602/LCD2004).
//
// Dev implements io.Writer over that raw stream, and also exposes the pins
// individually and as gpio.Group values.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// # Notes
//
// Reading a pin requires it to be written High first. Setting a pin Low
// turns on an open drain to ground.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	// DefaultAddress is the address of a PCF8574 with A0..A2 pulled high,
	// the factory setting of most LCD backpacks.
	DefaultAddress uint16 = 0x27

	packageName = "pcf857x"
)

var (
	ErrNotImplemented = errors.New("pcf857x: not implemented")
	// ErrOddWrite is returned when a PCF8575 stream is not made of whole
	// 16 bit words.
	ErrOddWrite = errors.New("pcf857x: write length must be a multiple of 2 on PCF8575")
)

// Dev is a PCF857x port expander.
type Dev struct {
	// Pins exposed by the device, 8 for PCF8574 and 16 for PCF8575.
	Pins []gpio.PinIO

	variant Variant
	width   int

	mu    sync.Mutex
	d     *i2c.Dev
	value gpio.GPIOValue
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// New returns a port expander on bus at address. No I/O is performed.
func New(bus i2c.Bus, address uint16, variant Variant) (*Dev, error) {
	width := 8
	switch variant {
	case PCF8574:
	case PCF8575:
		width = 16
	default:
		return nil, fmt.Errorf("%s: unknown variant %q", packageName, variant)
	}
	dev := &Dev{
		d:       &i2c.Dev{Bus: bus, Addr: address},
		variant: variant,
		width:   width,
	}
	dev.Pins = make([]gpio.PinIO, width)
	for ix := range width {
		dev.Pins[ix] = &pcfPin{dev: dev, number: ix, name: fmt.Sprintf("%s_GPIO%d", dev, ix)}
	}
	return dev, nil
}

// Write sends p to the device in one I²C transaction. On a PCF8574 each byte
// is one pin state; on a PCF8575 each pair of bytes is one state, low port
// first. The last state written becomes the cached pin value.
func (dev *Dev) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	step := dev.width / 8
	if len(p)%step != 0 {
		return 0, ErrOddWrite
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.d.Tx(p, nil); err != nil {
		return 0, wrap(err)
	}
	last := gpio.GPIOValue(p[len(p)-step])
	if step == 2 {
		last |= gpio.GPIOValue(p[len(p)-1]) << 8
	}
	dev.value = last
	return len(p), nil
}

// Value returns the last pin state written to the device.
func (dev *Dev) Value() gpio.GPIOValue {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// Width returns the number of pins of the device.
func (dev *Dev) Width() int {
	return dev.width
}

// Halt implements conn.Resource. The pins keep their last state.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.variant, dev.d.Addr)
}

// out updates the pins selected by mask and writes the result if it differs
// from the cached state.
func (dev *Dev) out(value, mask gpio.GPIOValue) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	next := (dev.value &^ mask) | (value & mask)
	if next == dev.value {
		return nil
	}
	if err := dev.d.Tx(dev.encode(next), nil); err != nil {
		return wrap(err)
	}
	dev.value = next
	return nil
}

// in drives the pins in mask high, then reads the port back.
func (dev *Dev) in(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if err := dev.out(mask, mask); err != nil {
		return 0, err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := make([]byte, dev.width/8)
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, wrap(err)
	}
	v := gpio.GPIOValue(r[0])
	if len(r) > 1 {
		v |= gpio.GPIOValue(r[1]) << 8
	}
	return v & mask, nil
}

func (dev *Dev) encode(v gpio.GPIOValue) []byte {
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(v >> (8 * ix))
	}
	return w
}

var _ conn.Resource = &Dev{}
