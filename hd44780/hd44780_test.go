// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/charlcd/lcdsim"
	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/display/displaytest"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

// event is either a write to the port or a wait.
type event struct {
	W     []byte
	Sleep time.Duration
}

// recorder is a Port that logs writes and sleeps in order.
type recorder struct {
	events []event
	err    error
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.events = append(r.events, event{W: append([]byte(nil), p...)})
	return len(p), nil
}

func (r *recorder) sleep(d time.Duration) {
	r.events = append(r.events, event{Sleep: d})
}

func noSleep(time.Duration) {}

// initEvents is the power-on sequence with DefaultOpts.
var initEvents = []event{
	{Sleep: delayPowerOn},
	{W: []byte{0x3c, 0x38}},
	{Sleep: delayInit1},
	{W: []byte{0x3c, 0x38}},
	{Sleep: delayInit2},
	{W: []byte{0x3c, 0x38}},
	{Sleep: delayInit3},
	{W: []byte{0x2c, 0x28}},
	{Sleep: delayInstruction},
	{W: []byte{0x2c, 0x28, 0x8c, 0x88}},
	{Sleep: delayInstruction},
	{W: []byte{0x0c, 0x08, 0xcc, 0xc8}},
	{Sleep: delayInstruction},
	{W: []byte{0x0c, 0x08, 0x1c, 0x18}},
	{Sleep: delayClear},
	{W: []byte{0x0c, 0x08, 0x2c, 0x28}},
	{Sleep: delayHome},
}

func newTestDev(t *testing.T, opts *Opts) (*Dev, *recorder) {
	r := &recorder{}
	d, err := newDev(r, opts, r.sleep)
	if err != nil {
		t.Fatal(err)
	}
	r.events = nil
	return d, r
}

func newSimDev(t *testing.T, opts *Opts, simOpts *lcdsim.Opts) (*Dev, *lcdsim.Sim) {
	sim := lcdsim.New(simOpts)
	pcf, err := pcf857x.New(sim, 0x27, pcf857x.PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	d, err := newDev(pcf, opts, noSleep)
	if err != nil {
		t.Fatal(err)
	}
	sim.ResetOps()
	return d, sim
}

func TestNibbles(t *testing.T) {
	for b := range 256 {
		n := nibbles(byte(b))
		if n[0]&0x0f != 0 || n[1]&0x0f != 0 {
			t.Fatalf("nibbles(%#x) = %#v uses the control bits", b, n)
		}
		if got := n[0] | n[1]>>4; got != byte(b) {
			t.Fatalf("nibbles(%#x) recombines to %#x", b, got)
		}
	}
}

func TestFrames(t *testing.T) {
	s := sequencer{pins: DefaultPinMap, backlight: true}
	data := []struct {
		name string
		c    command
		want []byte
	}{
		{"clear", clearCommand(), []byte{0x0c, 0x08, 0x1c, 0x18}},
		{"character", dataCommand([]byte("A")), []byte{0x4d, 0x49, 0x1d, 0x19}},
		{"two characters", dataCommand([]byte("Hi")), []byte{0x4d, 0x49, 0x8d, 0x89, 0x6d, 0x69, 0x9d, 0x99}},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			got := s.frames(line.c)
			if diff := cmp.Diff(line.want, got); diff != "" {
				t.Fatalf("frames (-want +got):\n%s", diff)
			}
			for ix := 0; ix < len(got); ix += 2 {
				if got[ix]&0x04 == 0 || got[ix+1]&0x04 != 0 {
					t.Fatalf("frame %d is not an enable high, low pair: %#x %#x", ix/2, got[ix], got[ix+1])
				}
				if got[ix]&^0x04 != got[ix+1] {
					t.Fatalf("frame %d changes lines other than E", ix/2)
				}
			}
		})
	}
}

func TestBacklightBit(t *testing.T) {
	data := []struct {
		polarity  Polarity
		backlight bool
		want      byte
	}{
		{Positive, true, 0x08},
		{Positive, false, 0x00},
		{Negative, true, 0x00},
		{Negative, false, 0x08},
	}
	for _, line := range data {
		s := sequencer{pins: DefaultPinMap, polarity: line.polarity, backlight: line.backlight}
		if got := s.control(0, instruction, false); got != line.want {
			t.Errorf("%s backlight=%t: got %#x, want %#x", line.polarity, line.backlight, got, line.want)
		}
	}
}

func TestCommands(t *testing.T) {
	instr := func(b byte, d time.Duration) command {
		return command{kind: instruction, payload: []byte{b}, delay: d}
	}
	data := []struct {
		name string
		got  command
		want command
	}{
		{"clear", clearCommand(), instr(0x01, delayClear)},
		{"home", homeCommand(), instr(0x02, delayHome)},
		{"entry increment", entryModeCommand(true, false), instr(0x06, delayInstruction)},
		{"entry decrement shift", entryModeCommand(false, true), instr(0x05, delayInstruction)},
		{"display on", displayCommand(true, false, false), instr(0x0c, delayInstruction)},
		{"display all", displayCommand(true, true, true), instr(0x0f, delayInstruction)},
		{"display off", displayCommand(false, false, false), instr(0x08, delayInstruction)},
		{"cursor right", shiftCommand(false, true), instr(0x14, delayInstruction)},
		{"screen left", shiftCommand(true, false), instr(0x18, delayInstruction)},
		{"screen right", shiftCommand(true, true), instr(0x1c, delayInstruction)},
		{"function 2 lines", functionCommand(false, false, false), instr(0x28, delayInstruction)},
		{"function 1 line", functionCommand(false, true, false), instr(0x20, delayInstruction)},
		{"function 8 bit 5x10", functionCommand(true, false, true), instr(0x3c, delayInstruction)},
		{"cgram", addressCommand(CGRAM, 0x08), instr(0x48, delayInstruction)},
		{"cgram truncated", addressCommand(CGRAM, 0xff), instr(0x7f, delayInstruction)},
		{"ddram", addressCommand(DDRAM, 0x43), instr(0xc3, delayInstruction)},
		{"ddram truncated", addressCommand(DDRAM, 0xff), instr(0xff, delayInstruction)},
		{"data", dataCommand([]byte("Hi")), command{kind: data, payload: []byte("Hi"), delay: delayInstruction}},
	}
	for _, line := range data {
		if diff := cmp.Diff(line.want, line.got, cmp.AllowUnexported(command{})); diff != "" {
			t.Errorf("%s (-want +got):\n%s", line.name, diff)
		}
	}
}

func TestInit(t *testing.T) {
	r := &recorder{}
	d, err := newDev(r, nil, r.sleep)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(initEvents, r.events); diff != "" {
		t.Fatalf("init (-want +got):\n%s", diff)
	}
	want := State{RAM: DDRAM, Backlight: true, Increment: true, Display: true}
	if diff := cmp.Diff(want, d.State()); diff != "" {
		t.Fatalf("state (-want +got):\n%s", diff)
	}
}

func TestInitSingleLine(t *testing.T) {
	opts := DefaultOpts
	opts.Width, opts.Height = 8, 1
	r := &recorder{}
	if _, err := newDev(r, &opts, r.sleep); err != nil {
		t.Fatal(err)
	}
	// Function set without the line bit.
	if diff := cmp.Diff([]byte{0x2c, 0x28, 0x0c, 0x08}, r.events[9].W); diff != "" {
		t.Fatalf("function set (-want +got):\n%s", diff)
	}
}

func TestInitNegative(t *testing.T) {
	opts := DefaultOpts
	opts.Polarity = Negative
	r := &recorder{}
	d, err := newDev(r, &opts, r.sleep)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x34, 0x30}, r.events[1].W); diff != "" {
		t.Fatalf("first frame (-want +got):\n%s", diff)
	}
	r.events = nil
	d.SetBacklight(false)
	if diff := cmp.Diff([]event{{W: []byte{0x08}}}, r.events); diff != "" {
		t.Fatalf("backlight off (-want +got):\n%s", diff)
	}
}

func TestInitError(t *testing.T) {
	boom := errors.New("bus error")
	r := &recorder{err: boom}
	if _, err := newDev(r, nil, r.sleep); !errors.Is(err, boom) {
		t.Fatalf("newDev() = %v, want %v", err, boom)
	}
}

func TestOptsValidation(t *testing.T) {
	data := []struct {
		name string
		edit func(o *Opts)
		want error
	}{
		{"shared bit", func(o *Opts) { o.Pins = PinMap{RS: 0, RW: 0, E: 2, BL: 3} }, ErrPinMap},
		{"data line", func(o *Opts) { o.Pins = PinMap{RS: 4, RW: 1, E: 2, BL: 3} }, ErrPinMap},
		{"no columns", func(o *Opts) { o.Width = 0 }, ErrOutOfBounds},
		{"short row offsets", func(o *Opts) { o.Height = 4; o.RowOffsets = []byte{0x00, 0x40} }, ErrOutOfBounds},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			opts := DefaultOpts
			line.edit(&opts)
			r := &recorder{}
			if _, err := newDev(r, &opts, r.sleep); !errors.Is(err, line.want) {
				t.Fatalf("newDev() = %v, want %v", err, line.want)
			}
			if len(r.events) != 0 {
				t.Fatalf("invalid options reached the port: %v", r.events)
			}
		})
	}
}

func TestSetCursor(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.SetCursor(3, 1)
	want := []event{{W: []byte{0xcc, 0xc8, 0x3c, 0x38}}, {Sleep: delayInstruction}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("SetCursor (-want +got):\n%s", diff)
	}
	for _, p := range [][2]int{{16, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		r.events = nil
		d.SetCursor(p[0], p[1])
		if len(r.events) != 0 {
			t.Errorf("SetCursor(%d, %d) wrote %v", p[0], p[1], r.events)
		}
	}
	if a := d.State().Address; a != 0x43 {
		t.Fatalf("address = %#x, want 0x43", a)
	}
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestRowOffsets(t *testing.T) {
	opts := DefaultOpts
	opts.Width, opts.Height, opts.RowOffsets = 20, 4, Rows2004
	d, _ := newTestDev(t, &opts)
	d.SetCursor(2, 3)
	if a := d.State().Address; a != 0x56 {
		t.Fatalf("address = %#x, want 0x56", a)
	}
}

func TestPrint(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.Print("A")
	want := []event{{W: []byte{0x4d, 0x49, 0x1d, 0x19}}, {Sleep: delayInstruction}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("Print (-want +got):\n%s", diff)
	}
	r.events = nil
	d.Print("é")
	d.Print("")
	if len(r.events) != 0 {
		t.Fatalf("non-ASCII text wrote %v", r.events)
	}
	d.Print("héllo")
	if n := len(r.events[0].W); n != 16 {
		t.Fatalf("wrote %d bytes, want 4 characters", n)
	}
	if a := d.State().Address; a != 5 {
		t.Fatalf("address = %#x, want 0x05", a)
	}
}

func TestPrintAt(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.PrintAt("ok", 16, 0)
	if len(r.events) != 0 {
		t.Fatalf("out of range PrintAt wrote %v", r.events)
	}
	d.PrintAt("ok", 14, 1)
	if len(r.events) != 4 {
		t.Fatalf("got %d events, want address and data", len(r.events))
	}
	if a := d.State().Address; a != 0x50 {
		t.Fatalf("address = %#x, want 0x50", a)
	}
}

func TestAddressCounter(t *testing.T) {
	single := DefaultOpts
	single.Height = 1
	data := []struct {
		name      string
		opts      *Opts
		ram       RAMType
		start     byte
		decrement bool
		want      byte
	}{
		{"end of first line", nil, DDRAM, 0x27, false, 0x40},
		{"end of second line", nil, DDRAM, 0x67, false, 0x00},
		{"back to first line", nil, DDRAM, 0x40, true, 0x27},
		{"back to second line", nil, DDRAM, 0x00, true, 0x67},
		{"single line", &single, DDRAM, 0x4f, false, 0x00},
		{"single line back", &single, DDRAM, 0x00, true, 0x4f},
		{"cgram", nil, CGRAM, 0x3f, false, 0x00},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			d, _ := newTestDev(t, line.opts)
			if line.decrement {
				d.SetEntryMode(false, false)
			}
			d.SetAddress(line.ram, line.start)
			d.Print("x")
			s := d.State()
			if s.Address != line.want || s.RAM != line.ram {
				t.Fatalf("got %s %#x, want %s %#x", s.RAM, s.Address, line.ram, line.want)
			}
		})
	}
}

func TestClearScreen(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.SetCursor(3, 1)
	d.SetEntryMode(false, false)
	r.events = nil
	d.ClearScreen()
	want := []event{{W: []byte{0x0c, 0x08, 0x1c, 0x18}}, {Sleep: delayClear}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("ClearScreen (-want +got):\n%s", diff)
	}
	if s := d.State(); s.Address != 0 || !s.Increment {
		t.Fatalf("state = %+v", s)
	}
}

func TestResetScreen(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.SetCursor(3, 1)
	r.events = nil
	d.ResetScreen()
	want := []event{{W: []byte{0x0c, 0x08, 0x2c, 0x28}}, {Sleep: delayHome}}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("ResetScreen (-want +got):\n%s", diff)
	}
	if a := d.State().Address; a != 0 {
		t.Fatalf("address = %#x", a)
	}
}

func TestDisplayModes(t *testing.T) {
	d, _ := newTestDev(t, nil)
	d.ConfigDisplay(true, true, false)
	d.SetShift(false, true)
	s := d.State()
	if !s.Display || !s.Cursor || s.Blink {
		t.Fatalf("state = %+v", s)
	}
	if s.Address != 1 {
		t.Fatalf("cursor shift left the address at %#x", s.Address)
	}
	d.SetShift(true, true)
	if a := d.State().Address; a != 1 {
		t.Fatalf("display shift moved the address to %#x", a)
	}
	d.SetFunction(false, false, true)
	if !d.State().BigChars {
		t.Fatal("function set not recorded")
	}
}

func TestBacklight(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.SetBacklight(false)
	d.Print("A")
	want := []event{
		{W: []byte{0x00}},
		{W: []byte{0x45, 0x41, 0x15, 0x11}},
		{Sleep: delayInstruction},
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("backlight off (-want +got):\n%s", diff)
	}
	if d.State().Backlight {
		t.Fatal("backlight still on")
	}
	if err := d.Backlight(0xff); err != nil {
		t.Fatal(err)
	}
	if !d.State().Backlight {
		t.Fatal("backlight still off")
	}
}

func TestCustomPins(t *testing.T) {
	opts := DefaultOpts
	opts.Pins = PinMap{RS: 1, RW: 0, E: 3, BL: 2}
	d, r := newTestDev(t, &opts)
	d.Print("A")
	if diff := cmp.Diff([]byte{0x4e, 0x46, 0x1e, 0x16}, r.events[0].W); diff != "" {
		t.Fatalf("Print (-want +got):\n%s", diff)
	}

	simOpts := lcdsim.DefaultOpts
	simOpts.RS, simOpts.RW, simOpts.E, simOpts.BL = 1, 0, 3, 2
	d, sim := newSimDev(t, &opts, &simOpts)
	d.Print("Hi")
	if got := sim.Lines()[0][:2]; got != "Hi" {
		t.Fatalf("display shows %q", got)
	}
}

func TestDraw(t *testing.T) {
	d, sim := newSimDev(t, nil, nil)
	d.SetCursor(5, 0)
	sim.ResetOps()
	d.Draw(GlyphHeart[:], 2)

	want := []lcdsim.Op{{Value: 0x50}}
	for _, row := range GlyphHeart {
		want = append(want, lcdsim.Op{Data: true, Value: row})
	}
	want = append(want, lcdsim.Op{Value: 0x85})
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Fatalf("Draw (-want +got):\n%s", diff)
	}
	if got := Glyph(sim.CGRAM(2)); got != GlyphHeart {
		t.Fatalf("cgram = %#v", got)
	}
	if s := d.State(); s.Address != 5 || s.RAM != DDRAM {
		t.Fatalf("cursor moved to %s %#x", s.RAM, s.Address)
	}
	d.Print("X")
	if got := sim.Lines()[0][5]; got != 'X' {
		t.Fatalf("cell 5 = %q", got)
	}
	if got, want := sim.State().AC, d.State().Address; got != want {
		t.Fatalf("controller AC %#x, shadow %#x", got, want)
	}
}

func TestDrawRejected(t *testing.T) {
	d, r := newTestDev(t, nil)
	d.Draw(make([]byte, 7), 0)
	d.Draw(GlyphBell[:], 8)
	d.Draw(GlyphBell[:], -1)
	d.DrawGlyph(GlyphBell, GlyphSlots)
	d.PrintCustomAt(8, 0, 0)
	d.PrintCustomAt(0, 0, 5)
	if len(r.events) != 0 {
		t.Fatalf("rejected operations wrote %v", r.events)
	}
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestPrintCustomAt(t *testing.T) {
	d, sim := newSimDev(t, nil, nil)
	d.DrawGlyph(GlyphCheck, 1)
	d.PrintCustomAt(1, 0, 1)
	if got := sim.DDRAM(0x40); got != 1 {
		t.Fatalf("DDRAM[0x40] = %#x, want slot 1", got)
	}
	if got := Glyph(sim.CGRAM(1)); got != GlyphCheck {
		t.Fatalf("cgram = %#v", got)
	}
}

func TestTransportError(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	opts := DefaultOpts
	opts.Logger = log
	d, r := newTestDev(t, &opts)

	d.SetCursor(99, 0)
	if e := hook.LastEntry(); e == nil || e.Level != logrus.DebugLevel {
		t.Fatalf("rejection logged as %v", e)
	}
	if err := d.Err(); err != nil {
		t.Fatalf("rejection stored as %v", err)
	}

	boom := errors.New("bus error")
	r.err = boom
	before := d.State()
	d.SetCursor(1, 1)
	d.Draw(GlyphBlock[:], 3)
	d.SetBacklight(false)
	if err := d.Err(); !errors.Is(err, boom) {
		t.Fatalf("Err() = %v, want %v", err, boom)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Fatalf("failure logged as %v", e)
	}
	if diff := cmp.Diff(before, d.State()); diff != "" {
		t.Fatalf("failed transfers changed the state (-want +got):\n%s", diff)
	}
	d.ClearErr()
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestNewI2C(t *testing.T) {
	rec := &i2ctest.Record{}
	d, err := NewI2C(rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	var want []i2ctest.IO
	for _, e := range initEvents {
		if e.W != nil {
			want = append(want, i2ctest.IO{Addr: 0x27, W: e.W})
		}
	}
	if diff := cmp.Diff(want, rec.Ops, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("init (-want +got):\n%s", diff)
	}
	if got := d.String(); got != "hd44780{PCF8574_27 16x2}" {
		t.Fatal(got)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewI2CPlayback(t *testing.T) {
	opts := DefaultOpts
	opts.Addr = 0x3f
	bus := &i2ctest.Playback{DontPanic: true}
	for _, e := range initEvents {
		if e.W != nil {
			bus.Ops = append(bus.Ops, i2ctest.IO{Addr: 0x3f, W: e.W})
		}
	}
	bus.Ops = append(bus.Ops, i2ctest.IO{Addr: 0x3f, W: []byte{0x4d, 0x49, 0x1d, 0x19}})
	d, err := NewI2C(bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	d.Print("A")
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	// Nothing left to play back.
	d.Print("B")
	if d.Err() == nil {
		t.Fatal("expected a transport error")
	}
}

func TestNewI2CError(t *testing.T) {
	if _, err := NewI2C(&i2ctest.Playback{DontPanic: true}, nil); err == nil {
		t.Fatal("expected an error from an empty bus")
	}
}

func TestGroupPort(t *testing.T) {
	sim := lcdsim.New(nil)
	pcf, err := pcf857x.New(sim, 0x27, pcf857x.PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	short, err := pcf.Group(0, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewGroupPort(short); err == nil {
		t.Fatal("expected an error for a 4 pin group")
	}
	gr, err := pcf.Group(0, 1, 2, 3, 4, 5, 6, 7)
	if err != nil {
		t.Fatal(err)
	}
	port, err := NewGroupPort(gr)
	if err != nil {
		t.Fatal(err)
	}
	d, err := newDev(port, nil, noSleep)
	if err != nil {
		t.Fatal(err)
	}
	d.PrintAt("Hi", 1, 1)
	if got := sim.Lines()[1][:3]; got != " Hi" {
		t.Fatalf("display shows %q", got)
	}
	if got := port.String(); got != "PCF8574_27[0 1 2 3 4 5 6 7]" {
		t.Fatal(got)
	}
}

func TestTextDisplay(t *testing.T) {
	d, sim := newSimDev(t, nil, nil)
	for _, err := range displaytest.TestTextDisplay(d, false) {
		t.Error(err)
	}
	if got := sim.Lines()[0][:10]; got != "Set dev on" {
		t.Errorf("display shows %q", got)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if s := sim.State(); s.Display || s.Backlight {
		t.Fatalf("halted display state %+v", s)
	}
}

func TestCursorModes(t *testing.T) {
	d, sim := newSimDev(t, nil, nil)
	data := []struct {
		mode          display.CursorMode
		cursor, blink bool
	}{
		{display.CursorUnderline, true, false},
		{display.CursorBlock, false, true},
		{display.CursorBlink, true, true},
		{display.CursorOff, false, false},
	}
	for _, line := range data {
		if err := d.Cursor(line.mode); err != nil {
			t.Fatal(err)
		}
		if s := sim.State(); s.Cursor != line.cursor || s.Blink != line.blink {
			t.Errorf("mode %d: cursor=%t blink=%t", line.mode, s.Cursor, s.Blink)
		}
	}
	if err := d.Cursor(display.CursorBlink + 1); !errors.Is(err, display.ErrInvalidCommand) {
		t.Fatalf("Cursor() = %v", err)
	}
}

func TestMove(t *testing.T) {
	d, sim := newSimDev(t, nil, nil)
	if err := d.MoveTo(2, 3); err != nil {
		t.Fatal(err)
	}
	if err := d.Move(display.Forward); err != nil {
		t.Fatal(err)
	}
	if got, want := sim.State().AC, byte(0x43); got != want || d.State().Address != want {
		t.Fatalf("controller AC %#x, shadow %#x, want %#x", got, d.State().Address, want)
	}
	if err := d.Move(display.Up); !errors.Is(err, display.ErrNotImplemented) {
		t.Fatalf("Move(Up) = %v", err)
	}
	if err := d.MoveTo(3, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("MoveTo(3, 1) = %v", err)
	}
}

func TestGlyphMask(t *testing.T) {
	if g := FillGlyph(0xff).Mask(false); g != GlyphBlock {
		t.Fatalf("Mask(false) = %#v", g)
	}
	if g := FillGlyph(0xff).Mask(true); g != FillGlyph(0x3f) {
		t.Fatalf("Mask(true) = %#v", g)
	}
}
