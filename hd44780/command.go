// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "time"

// RAMType selects which controller memory SetAddress points the address
// counter at.
type RAMType byte

const (
	// DDRAM holds the character codes shown on screen.
	DDRAM RAMType = iota
	// CGRAM holds the 8 user defined glyphs.
	CGRAM
)

func (t RAMType) String() string {
	if t == CGRAM {
		return "CGRAM"
	}
	return "DDRAM"
}

// Instruction opcodes. The highest set bit identifies the instruction.
const (
	cmdClear    byte = 0b0000_0001
	cmdHome     byte = 0b0000_0010
	cmdEntry    byte = 0b0000_0100
	cmdDisplay  byte = 0b0000_1000
	cmdShift    byte = 0b0001_0000
	cmdFunction byte = 0b0010_0000
	cmdCGRAM    byte = 0b0100_0000
	cmdDDRAM    byte = 0b1000_0000

	// cmdEntry flags
	entryIncrement byte = 0b0000_0010
	entryShift     byte = 0b0000_0001

	// cmdDisplay flags
	displayOn     byte = 0b0000_0100
	displayCursor byte = 0b0000_0010
	displayBlink  byte = 0b0000_0001

	// cmdShift flags
	shiftScreen byte = 0b0000_1000
	shiftRight  byte = 0b0000_0100

	// cmdFunction flags
	function8Bit      byte = 0b0001_0000
	functionMultiLine byte = 0b0000_1000
	function5x10      byte = 0b0000_0100

	maskCGRAM byte = 0x3f
	maskDDRAM byte = 0x7f
)

// commandType is the level of the register select line.
type commandType byte

const (
	instruction commandType = 0
	data        commandType = 1
)

func (c commandType) String() string {
	if c == data {
		return "data"
	}
	return "instruction"
}

// command is one transfer to the controller: a single instruction byte, or a
// run of data bytes written at the address counter. delay is the time the
// controller needs before it accepts the next transfer.
type command struct {
	kind    commandType
	payload []byte
	delay   time.Duration
}

func flag(set bool, bit byte) byte {
	if set {
		return bit
	}
	return 0
}

func newInstruction(b byte) command {
	return command{kind: instruction, payload: []byte{b}, delay: delayInstruction}
}

func clearCommand() command {
	c := newInstruction(cmdClear)
	c.delay = delayClear
	return c
}

func homeCommand() command {
	c := newInstruction(cmdHome)
	c.delay = delayHome
	return c
}

func entryModeCommand(increment, shift bool) command {
	return newInstruction(cmdEntry | flag(increment, entryIncrement) | flag(shift, entryShift))
}

func displayCommand(show, cursor, blink bool) command {
	return newInstruction(cmdDisplay | flag(show, displayOn) | flag(cursor, displayCursor) | flag(blink, displayBlink))
}

func shiftCommand(screen, right bool) command {
	return newInstruction(cmdShift | flag(screen, shiftScreen) | flag(right, shiftRight))
}

func functionCommand(longData, singleLine, bigChars bool) command {
	return newInstruction(cmdFunction | flag(longData, function8Bit) | flag(!singleLine, functionMultiLine) | flag(bigChars, function5x10))
}

// addressCommand truncates address to the width of the selected RAM.
func addressCommand(t RAMType, address byte) command {
	if t == CGRAM {
		return newInstruction(cmdCGRAM | address&maskCGRAM)
	}
	return newInstruction(cmdDDRAM | address&maskDDRAM)
}

func dataCommand(p []byte) command {
	return command{kind: data, payload: p, delay: delayInstruction}
}

// asciiOnly drops every rune that is not 7-bit clean.
func asciiOnly(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			b = append(b, byte(r))
		}
	}
	return b
}
