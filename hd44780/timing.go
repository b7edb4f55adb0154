// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "time"

// The busy flag cannot be read through a write-only backpack, so every
// transfer is followed by a fixed wait covering the controller's execution
// time.
const (
	// Vcc rising to 4.5V needs 40ms before the first instruction.
	delayPowerOn = 50 * time.Millisecond
	// Waits after each of the three forced 8-bit function sets.
	delayInit1 = 4500 * time.Microsecond
	delayInit2 = 150 * time.Microsecond
	delayInit3 = 50 * time.Microsecond

	// Most instructions and data writes execute in 37µs (43µs for data).
	delayInstruction = 50 * time.Microsecond
	// Clear display executes in 1.52ms.
	delayClear = 2 * time.Millisecond
	// Return home is slow to settle on common LCD1602/LCD2004 clones.
	delayHome = 152 * time.Millisecond
)
