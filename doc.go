// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd is a container for character LCD drivers.
//
// The hd44780 package drives HD44780 displays behind an I²C port expander
// backpack. The expander itself is in pcf857x; lcdsim emulates both for tests
// and terminal previews.
package charlcd
