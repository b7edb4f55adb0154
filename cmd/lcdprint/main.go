// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcdprint writes text to a character LCD on an I²C backpack.
//
// Each argument is printed on its own row, starting at -x, -y:
//
//	lcdprint -addr 0x3f -width 20 -height 4 "Hello" "world"
//
// With -sim the display is emulated in the terminal instead.
package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/lcdsim"
	"github.com/sirupsen/logrus"
	"periph.io/x/host/v3"
)

var glyphs = map[string]hd44780.Glyph{
	"arrow": hd44780.GlyphArrow,
	"bell":  hd44780.GlyphBell,
	"block": hd44780.GlyphBlock,
	"check": hd44780.GlyphCheck,
	"heart": hd44780.GlyphHeart,
}

func glyphNames() string {
	var names []string
	for name := range glyphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func mainImpl() error {
	bus := flag.String("bus", "", "I²C bus to use (empty for default)")
	addr := flag.Uint("addr", uint(hd44780.DefaultOpts.Addr), "I²C address of the backpack")
	width := flag.Int("width", hd44780.DefaultOpts.Width, "display width in characters")
	height := flag.Int("height", hd44780.DefaultOpts.Height, "display height in characters")
	rs := flag.Uint("rs", uint(hd44780.DefaultPinMap.RS), "expander bit of RS")
	rw := flag.Uint("rw", uint(hd44780.DefaultPinMap.RW), "expander bit of RW")
	e := flag.Uint("e", uint(hd44780.DefaultPinMap.E), "expander bit of E")
	bl := flag.Uint("bl", uint(hd44780.DefaultPinMap.BL), "expander bit of the backlight")
	negative := flag.Bool("negative", false, "backlight is on when its line is low")
	x := flag.Int("x", 0, "column of the first character")
	y := flag.Int("y", 0, "row of the first line")
	backlight := flag.Bool("backlight", true, "turn the backlight on")
	glyph := flag.String("glyph", "", "custom glyph to append to the first line: "+glyphNames())
	sim := flag.Bool("sim", false, "emulate the display in the terminal")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	opts := hd44780.DefaultOpts
	opts.Addr = uint16(*addr)
	opts.Width = *width
	opts.Height = *height
	opts.Pins = hd44780.PinMap{RS: uint8(*rs), RW: uint8(*rw), E: uint8(*e), BL: uint8(*bl)}
	if *negative {
		opts.Polarity = hd44780.Negative
	}
	if opts.Height == 4 && opts.Width == 20 {
		opts.RowOffsets = hd44780.Rows2004
	}

	var g hd44780.Glyph
	if *glyph != "" {
		var ok bool
		if g, ok = glyphs[*glyph]; !ok {
			return fmt.Errorf("unknown glyph %q, want one of %s", *glyph, glyphNames())
		}
	}

	var dev *hd44780.Dev
	var err error
	if *sim {
		s := lcdsim.NewTerminal(&lcdsim.Opts{
			Addr:              opts.Addr,
			Width:             opts.Width,
			Height:            opts.Height,
			RS:                opts.Pins.RS,
			RW:                opts.Pins.RW,
			E:                 opts.Pins.E,
			BL:                opts.Pins.BL,
			NegativeBacklight: *negative,
			RowOffsets:        opts.RowOffsets,
		})
		dev, err = hd44780.NewI2C(s, &opts)
	} else {
		if _, err = host.Init(); err != nil {
			return err
		}
		dev, err = hd44780.Open(*bus, &opts)
	}
	if err != nil {
		return err
	}
	defer dev.Close()
	logrus.WithField("dev", dev.String()).Debug("display ready")

	dev.SetBacklight(*backlight)
	for ix, line := range flag.Args() {
		dev.PrintAt(line, *x, *y+ix)
	}
	if *glyph != "" {
		dev.DrawGlyph(g, 0)
		col := *x
		if flag.NArg() > 0 {
			col += len(flag.Arg(0))
		}
		dev.PrintCustomAt(0, col, *y)
	}
	return dev.Err()
}

func main() {
	if err := mainImpl(); err != nil {
		logrus.Fatalln("lcdprint:", err)
	}
}
