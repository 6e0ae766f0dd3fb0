// Package display turns the RK-86 video-RAM window into renderable
// text. It is pure: it only reads a mem.Memory, it owns no terminal or
// I/O of its own, leaving that to a front-end (see cmd/rs580).
package display

import (
	"strings"

	"github.com/andy128k/rs580/mem"
)

const (
	// Cols and Rows are the RK-86's character-cell video resolution.
	Cols = 78
	Rows = 30

	videoRAMStart = 0x36D0
	videoRAMEnd   = videoRAMStart + Cols*Rows // exclusive
	cursorXAddr   = 0x3602
	cursorYAddr   = 0x3603
)

// Frame is a snapshot of one screen's worth of state, decoupled from
// the machine so a front-end can diff successive frames and only
// repaint when something changed.
type Frame struct {
	Cells    [Rows * Cols]byte
	CursorX  byte
	CursorY  byte
	Indicators byte
}

// Capture reads the current frame out of m. indicators is supplied by
// the caller (the keyboard device owns that state, not video memory).
func Capture(m mem.Memory, indicators byte) Frame {
	var f Frame
	copy(f.Cells[:], mem.ReadRange(m, videoRAMStart, videoRAMEnd))
	f.CursorX = m.ReadByte(cursorXAddr)
	f.CursorY = m.ReadByte(cursorYAddr)
	f.Indicators = indicators
	return f
}

// Cell maps one video-RAM byte to its displayed rune: 0 is blank,
// printable ASCII (32-127) is literal, anything else renders as '?'.
func Cell(b byte) rune {
	switch {
	case b == 0:
		return ' '
	case b >= 32 && b < 128:
		return rune(b)
	default:
		return '?'
	}
}

// Row returns the y-th row (0-indexed) as a string of displayed runes.
func (f Frame) Row(y int) string {
	var sb strings.Builder
	sb.Grow(Cols)
	for x := 0; x < Cols; x++ {
		sb.WriteRune(Cell(f.Cells[y*Cols+x]))
	}
	return sb.String()
}

// CursorScreenPos returns the cursor's 1-indexed terminal column/row,
// offset by the frame's two-cell border on each axis.
func (f Frame) CursorScreenPos() (col, row int) {
	return int(f.CursorX) + 2, int(f.CursorY) + 2
}

// IndicatorBits renders the 4-bit indicator state as the original's
// "%04b" diagnostic row.
func (f Frame) IndicatorBits() string {
	var sb strings.Builder
	for bit := 3; bit >= 0; bit-- {
		if f.Indicators&(1<<bit) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
