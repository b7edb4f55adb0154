// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

type pcfPin struct {
	dev    *Dev
	number int
	name   string
}

func (p *pcfPin) DefaultPull() gpio.Pull { return gpio.Float }

func (p *pcfPin) Function() string { return "Out" }

func (p *pcfPin) Halt() error { return nil }

// In releases the pin high so it can be pulled down externally. The chip has
// no pull or edge configuration.
func (p *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	bit := gpio.GPIOValue(1) << p.number
	return p.dev.out(bit, bit)
}

func (p *pcfPin) Name() string { return p.name }

func (p *pcfPin) Number() int { return p.number }

func (p *pcfPin) Out(l gpio.Level) error {
	bit := gpio.GPIOValue(1) << p.number
	var v gpio.GPIOValue
	if l {
		v = bit
	}
	return p.dev.out(v, bit)
}

func (p *pcfPin) Pull() gpio.Pull { return gpio.Float }

// Read returns Low on bus errors.
func (p *pcfPin) Read() gpio.Level {
	bit := gpio.GPIOValue(1) << p.number
	v, err := p.dev.in(bit)
	return err == nil && v&bit != 0
}

func (p *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *pcfPin) String() string { return p.name }

// The INT line reports a change on any pin, not a specific one.
func (p *pcfPin) WaitForEdge(timeout time.Duration) bool { return false }

// Group is an ordered set of pins of one device. Bit i of the values passed
// to Out and returned by Read maps to the i-th pin of the group.
type Group struct {
	dev  *Dev
	pins []*pcfPin
}

// Group returns a gpio.Group made of the given pin numbers, in that order.
func (dev *Dev) Group(numbers ...int) (*Group, error) {
	gr := &Group{dev: dev, pins: make([]*pcfPin, len(numbers))}
	for ix, n := range numbers {
		if n < 0 || n >= dev.width {
			return nil, fmt.Errorf("%s: pin %d out of range", packageName, n)
		}
		gr.pins[ix] = dev.Pins[n].(*pcfPin)
	}
	return gr, nil
}

// devMask converts a group bit set into a device bit set.
func (gr *Group) devMask(v gpio.GPIOValue) gpio.GPIOValue {
	var m gpio.GPIOValue
	for ix, p := range gr.pins {
		if v&(1<<ix) != 0 {
			m |= 1 << p.number
		}
	}
	return m
}

func (gr *Group) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(gr.pins))
	for ix, p := range gr.pins {
		pins[ix] = p
	}
	return pins
}

func (gr *Group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(gr.pins) {
		return nil
	}
	return gr.pins[offset]
}

func (gr *Group) ByName(name string) pin.Pin {
	for _, p := range gr.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (gr *Group) ByNumber(number int) pin.Pin {
	for _, p := range gr.pins {
		if p.number == number {
			return p
		}
	}
	return nil
}

// Out sets the group pins selected by mask. A zero mask selects every pin.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = (1 << len(gr.pins)) - 1
	}
	return gr.dev.out(gr.devMask(value), gr.devMask(mask))
}

// Read returns the levels of the group pins selected by mask. A zero mask
// selects every pin.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = (1 << len(gr.pins)) - 1
	}
	v, err := gr.dev.in(gr.devMask(mask))
	if err != nil {
		return 0, err
	}
	var result gpio.GPIOValue
	for ix, p := range gr.pins {
		if v&(1<<p.number) != 0 {
			result |= 1 << ix
		}
	}
	return result, nil
}

func (gr *Group) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, ErrNotImplemented
}

func (gr *Group) Halt() error { return nil }

func (gr *Group) String() string {
	s := gr.dev.String() + "["
	for ix, p := range gr.pins {
		if ix > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d", p.number)
	}
	return s + "]"
}

var _ gpio.PinIO = &pcfPin{}
var _ gpio.Group = &Group{}
