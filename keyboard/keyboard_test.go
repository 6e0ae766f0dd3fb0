package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoKeyHeldReadsOpenBus(t *testing.T) {
	d := New()
	d.WriteByte(0, 1)
	assert.Equal(t, byte(0xFF), d.ReadByte(1))
}

func TestUnmappedKeyIsIgnored(t *testing.T) {
	d := New()
	d.Press("unknown-key-name")
	d.WriteByte(0, 0)
	assert.Equal(t, byte(0xFF), d.ReadByte(1))
}

func TestLineZeroReportsAnyKeyHeld(t *testing.T) {
	d := New()
	d.Press("a")
	d.WriteByte(0, 0)
	assert.Equal(t, byte(0), d.ReadByte(1))
}

func TestMatchingLineReturnsColumnMask(t *testing.T) {
	d := New()
	d.Press("a") // a: 0b_1110_1111, b: 0b_1111_1101
	d.WriteByte(0, 0b_1110_1111)
	assert.Equal(t, byte(0b_1111_1101), d.ReadByte(1))
}

func TestNonMatchingLineReadsOpenBus(t *testing.T) {
	d := New()
	d.Press("a")
	d.WriteByte(0, 0b_0000_0001)
	assert.Equal(t, byte(0xFF), d.ReadByte(1))
}

func TestIndicatorBitSetAndClear(t *testing.T) {
	d := New()
	d.WriteByte(3, 0b_0000_0001) // bit index 0, set
	assert.Equal(t, byte(0x01), d.Indicators())

	d.WriteByte(3, 0b_0000_0111) // bit index 3, set
	assert.Equal(t, byte(0x09), d.Indicators())

	d.WriteByte(3, 0b_0000_0000) // bit index 0, clear
	assert.Equal(t, byte(0x08), d.Indicators())
}

func TestHighBitWriteToIndicatorPortIsIgnored(t *testing.T) {
	d := New()
	d.WriteByte(3, 0b_1000_0001)
	assert.Equal(t, byte(0), d.Indicators())
}

func TestShiftNibbleOnlyWhenNoColumnKeyHeld(t *testing.T) {
	d := New()
	d.Press("ctrl+a")
	assert.Equal(t, byte(0b_0110_0000), d.ReadByte(2))

	d.Press("a") // has a, b set, so the c-nibble branch does not apply
	assert.Equal(t, byte(0xFF), d.ReadByte(2))
}
