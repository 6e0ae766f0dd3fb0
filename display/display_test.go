package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andy128k/rs580/mem"
)

func TestCellMapping(t *testing.T) {
	assert.Equal(t, ' ', Cell(0))
	assert.Equal(t, 'A', Cell('A'))
	assert.Equal(t, '?', Cell(1))
	assert.Equal(t, '?', Cell(200))
}

func TestCaptureReadsVideoRAMAndCursor(t *testing.T) {
	ram := mem.NewDefaultRAM()
	ram.WriteByte(videoRAMStart, 'H')
	ram.WriteByte(videoRAMStart+1, 'i')
	ram.WriteByte(cursorXAddr, 5)
	ram.WriteByte(cursorYAddr, 10)

	f := Capture(ram, 0b1010)
	row0 := f.Row(0)
	assert.True(t, strings.HasPrefix(row0, "Hi"))
	assert.Equal(t, Cols, len([]rune(row0)))
	assert.Equal(t, strings.Repeat(" ", Cols-2), row0[2:])
	assert.Equal(t, byte(5), f.CursorX)
	assert.Equal(t, byte(10), f.CursorY)
	assert.Equal(t, byte(0b1010), f.Indicators)

	col, row := f.CursorScreenPos()
	assert.Equal(t, 7, col)
	assert.Equal(t, 12, row)
	assert.Equal(t, "1010", f.IndicatorBits())
}
