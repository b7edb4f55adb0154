// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/mattn/go-colorable"
)

var (
	backlightOn  = color.NRGBA{0x30, 0x90, 0xff, 0xff}
	backlightOff = color.NRGBA{0x10, 0x10, 0x10, 0xff}
)

// NewTerminal returns a Sim that redraws itself on stdout after each write,
// using ANSI color codes.
//
// Permits previewing a layout while the module is in the mail.
func NewTerminal(opts *Opts) *Sim {
	s := New(opts)
	s.out = colorable.NewColorableStdout()
	return s
}

// Render writes a framed view of the display to w. Custom glyphs show as ▒
// and codes without an ASCII equivalent as ·. The frame color follows the
// backlight.
func (s *Sim) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawn = false
	return s.render(w)
}

func (s *Sim) render(w io.Writer) error {
	s.buf.Reset()
	if s.drawn {
		// Go back to the top of the previous frame.
		fmt.Fprintf(&s.buf, "\033[%dA", s.opts.Height+2)
	}
	c := backlightOff
	if s.backlight() {
		c = backlightOn
	}
	edge := s.palette.Block(c)
	border := "\r" + strings.Repeat(edge, (s.opts.Width+1)/2+2) + "\033[0m\n"
	_, _ = s.buf.WriteString(border)
	for _, line := range s.visible() {
		_, _ = s.buf.WriteString("\r" + edge + "\033[0m")
		if !s.st.Display {
			line = strings.Repeat(" ", len(line))
		}
		for _, b := range []byte(line) {
			_, _ = s.buf.WriteRune(glyphRune(b))
		}
		if s.opts.Width%2 != 0 {
			_ = s.buf.WriteByte(' ')
		}
		_, _ = s.buf.WriteString(edge + "\033[0m\n")
	}
	_, _ = s.buf.WriteString(border)
	s.drawn = true
	_, err := s.buf.WriteTo(w)
	return err
}

func glyphRune(b byte) rune {
	switch {
	case b < 0x10:
		return '▒'
	case b >= 0x20 && b < 0x7e:
		return rune(b)
	default:
		return '·'
	}
}
