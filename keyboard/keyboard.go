// Package keyboard implements the RK-86 keyboard matrix as a
// memory-mapped device: a 4-register window the CPU reads and writes
// through the bus, fed by whatever key events the front-end's input
// library delivers.
package keyboard

import (
	"sync"
	"time"
)

// matrixKey is one entry of the RK-86's 8x8 key matrix plus its 4-bit
// shift-state nibble (the third byte, "c" in the original). a is the
// active-low row mask that the selection written to port 0 must equal,
// and b the active-low column mask port 1 then returns; a modifier-only
// key has both a and b zero.
type matrixKey struct {
	a, b, c byte
}

// staleAfter is how long a pressed key stays visible to the matrix scan
// before Device reports "nothing held" again, matching the original's
// one-second key debounce.
const staleAfter = time.Second

// keyTable maps a host key identifier (matching bubbletea's
// tea.KeyMsg.String(), e.g. "a", "8", "enter", "up", "f1", "ctrl+a") to
// its RK-86 matrix position. Ported from the key matrix used by the
// original implementation's terminal front-end.
//
// The original distinguishes '\r' (ПС) and '\n' (ВК) as two separate
// matrix positions on the same row; a terminal's Enter key collapses
// both to one event, so only ВК ('\n') is kept here.
var keyTable = map[string]matrixKey{
	"x":    {0b_0111_1111, 0b_1111_1110, 0},
	"p":    {0b_1011_1111, 0b_1111_1110, 0},
	"h":    {0b_1101_1111, 0b_1111_1110, 0},
	"@":    {0b_1110_1111, 0b_1111_1110, 0},
	"8":    {0b_1111_0111, 0b_1111_1110, 0},
	"0":    {0b_1111_1011, 0b_1111_1110, 0},
	"tab":  {0b_1111_1101, 0b_1111_1110, 0},
	"home": {0b_1111_1110, 0b_1111_1110, 0},

	"y": {0b_0111_1111, 0b_1111_1101, 0},
	"q": {0b_1011_1111, 0b_1111_1101, 0},
	"i": {0b_1101_1111, 0b_1111_1101, 0},
	"a": {0b_1110_1111, 0b_1111_1101, 0},
	"9": {0b_1111_0111, 0b_1111_1101, 0},
	"1": {0b_1111_1011, 0b_1111_1101, 0},

	"z": {0b_0111_1111, 0b_1111_1011, 0},
	"r": {0b_1011_1111, 0b_1111_1011, 0},
	"j": {0b_1101_1111, 0b_1111_1011, 0},
	"b": {0b_1110_1111, 0b_1111_1011, 0},
	":": {0b_1111_0111, 0b_1111_1011, 0},
	"2": {0b_1111_1011, 0b_1111_1011, 0},
	// Enter maps to ВК, matching Key::Char('\n') in the original.
	"enter": {0b_1111_1101, 0b_1111_1011, 0},

	"[":         {0b_0111_1111, 0b_1111_0111, 0},
	"s":         {0b_1011_1111, 0b_1111_0111, 0},
	"k":         {0b_1101_1111, 0b_1111_0111, 0},
	"c":         {0b_1110_1111, 0b_1111_0111, 0},
	";":         {0b_1111_0111, 0b_1111_0111, 0},
	"3":         {0b_1111_1011, 0b_1111_0111, 0},
	"backspace": {0b_1111_1101, 0b_1111_0111, 0},
	"f1":        {0b_1111_1110, 0b_1111_0111, 0},

	"\\": {0b_0111_1111, 0b_1110_1111, 0},
	"t":  {0b_1011_1111, 0b_1110_1111, 0},
	"l":  {0b_1101_1111, 0b_1110_1111, 0},
	"d":  {0b_1110_1111, 0b_1110_1111, 0},
	"<":  {0b_1111_0111, 0b_1110_1111, 0},
	"4":  {0b_1111_1011, 0b_1110_1111, 0},
	"left": {0b_1111_1101, 0b_1110_1111, 0},
	"f2":  {0b_1111_1110, 0b_1110_1111, 0},

	"]":  {0b_0111_1111, 0b_1101_1111, 0},
	"u":  {0b_1011_1111, 0b_1101_1111, 0},
	"m":  {0b_1101_1111, 0b_1101_1111, 0},
	"e":  {0b_1110_1111, 0b_1101_1111, 0},
	"-":  {0b_1111_0111, 0b_1101_1111, 0},
	"5":  {0b_1111_1011, 0b_1101_1111, 0},
	"up": {0b_1111_1101, 0b_1101_1111, 0},
	"f3": {0b_1111_1110, 0b_1101_1111, 0},

	"^":     {0b_0111_1111, 0b_1011_1111, 0},
	"v":     {0b_1011_1111, 0b_1011_1111, 0},
	"n":     {0b_1101_1111, 0b_1011_1111, 0},
	"f":     {0b_1110_1111, 0b_1011_1111, 0},
	">":     {0b_1111_0111, 0b_1011_1111, 0},
	"6":     {0b_1111_1011, 0b_1011_1111, 0},
	"right": {0b_1111_1101, 0b_1011_1111, 0},
	"f4":    {0b_1111_1110, 0b_1011_1111, 0},

	" ":    {0b_0111_1111, 0b_0111_1111, 0},
	"w":    {0b_1011_1111, 0b_0111_1111, 0},
	"o":    {0b_1101_1111, 0b_0111_1111, 0},
	"g":    {0b_1110_1111, 0b_0111_1111, 0},
	"/":    {0b_1111_0111, 0b_0111_1111, 0},
	"7":    {0b_1111_1011, 0b_0111_1111, 0},
	"down": {0b_1111_1101, 0b_0111_1111, 0},

	"ctrl+a": {0, 0, 0b_0110_0000}, // РУС/ЛАТ
	"ctrl+u": {0, 0, 0b_1100_0000}, // УС
	"ctrl+s": {0, 0, 0b_1100_0000}, // СС
}

// Device is the RK-86 keyboard, addressed as a 4-byte I/O window:
//
//	0: write selects the currently scanned row (column group)
//	1: read returns the row's column bitmask for the held key
//	2: read/write the shift-state nibble and the 4-bit indicator state
//	3: write sets or clears one indicator bit
type Device struct {
	mu sync.Mutex

	current    matrixKey
	currentSet time.Time

	currentLine byte
	state       byte
}

// New returns a Device with nothing held and all indicators off.
func New() *Device {
	return &Device{currentSet: time.Now().Add(-2 * staleAfter)}
}

// Press records s (a key identifier, e.g. from tea.KeyMsg.String()) as
// currently held. Unrecognized identifiers are ignored, matching the
// original's silent drop of unmapped keys.
func (d *Device) Press(s string) {
	key, ok := keyTable[s]
	if !ok {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = key
	d.currentSet = time.Now()
}

func (d *Device) heldKey() (matrixKey, bool) {
	if time.Since(d.currentSet) > staleAfter {
		return matrixKey{}, false
	}
	return d.current, true
}

// Indicators returns the 4-bit indicator state for a display to render.
func (d *Device) Indicators() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state & 0x0F
}

// ReadByte implements mem.Memory.
func (d *Device) ReadByte(addr uint16) byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch addr {
	case 1:
		key, held := d.heldKey()
		if d.currentLine == 0 {
			if held {
				return 0
			}
			return 0xFF
		}
		if held && d.currentLine == key.a {
			return key.b
		}
		return 0xFF

	case 2:
		if key, held := d.heldKey(); held && key.a == 0 && key.b == 0 {
			return key.c&0xF0 | d.state&0x0F
		}
	}
	return 0xFF
}

// WriteByte implements mem.Memory.
func (d *Device) WriteByte(addr uint16, value byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch addr {
	case 0:
		d.currentLine = value
	case 2:
		d.state = value & 0x0F
	case 3:
		if value&0x80 != 0 {
			return
		}
		bit := (value >> 1) & 7
		m := byte(1) << bit
		if value&1 == 1 {
			d.state |= m
		} else {
			d.state &^= m
		}
	}
}
