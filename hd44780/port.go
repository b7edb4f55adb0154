// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// NewI2C returns a display on a PCF8574 backpack at opts.Addr on bus.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
func NewI2C(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	pcf, err := pcf857x.New(bus, opts.Addr, pcf857x.PCF8574)
	if err != nil {
		return nil, wrap(err)
	}
	return New(pcf, opts)
}

// Open opens the I²C bus busName from the i2creg registry and returns the
// display on it. An empty name selects the first bus. Close releases the
// bus.
//
// host.Init() must have been called.
func Open(busName string, opts *Opts) (*Dev, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, wrap(err)
	}
	dev, err := NewI2C(bus, opts)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	dev.closer = bus
	return dev, nil
}

// GroupPort writes the byte stream through a gpio.Group, for expanders that
// are not driven by raw I²C bytes. Bit i of each byte is written to the
// i-th pin of the group, so the group must list the expander pins wired to
// the lines of DefaultPinMap order and D4..D7, or match the Opts.Pins used.
type GroupPort struct {
	gr gpio.Group
}

// NewGroupPort returns a Port over the first 8 pins of gr.
func NewGroupPort(gr gpio.Group) (*GroupPort, error) {
	if n := len(gr.Pins()); n < 8 {
		return nil, fmt.Errorf("%s: group has %d pins, need 8", packageName, n)
	}
	return &GroupPort{gr: gr}, nil
}

// Write sets the group pins once per byte of p.
func (p *GroupPort) Write(b []byte) (int, error) {
	for ix, v := range b {
		if err := p.gr.Out(gpio.GPIOValue(v), 0xff); err != nil {
			return ix, wrap(err)
		}
	}
	return len(b), nil
}

func (p *GroupPort) String() string {
	return p.gr.String()
}
