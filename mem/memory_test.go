package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMReadWriteRoundTrip(t *testing.T) {
	r := NewDefaultRAM()
	for _, v := range []uint16{0, 1, 0x1234, 0xFFFE, 0xFFFF} {
		WriteWord(r, v, v)
		assert.Equal(t, v, ReadWord(r, v))
	}
}

func TestROMIsReadOnly(t *testing.T) {
	r := NewROM([]byte{0xAA, 0xBB})
	assert.Equal(t, byte(0xAA), r.ReadByte(0))
	assert.Equal(t, byte(0xBB), r.ReadByte(1))

	r.WriteByte(0, 0x00)
	assert.Equal(t, byte(0xAA), r.ReadByte(0), "write to ROM must be a silent no-op")
}

func TestROMOwnsACopy(t *testing.T) {
	src := []byte{1, 2, 3}
	r := NewROM(src)
	src[0] = 0xFF
	assert.Equal(t, byte(1), r.ReadByte(0), "ROM must not alias the caller's slice")
}

func TestBusSegmentedRouting(t *testing.T) {
	b := NewBus().
		Add(0, 0x4000, NewDefaultRAM()).
		Add(0x8000, 0x8002, NewROM([]byte{0xAA, 0xBB}))

	assert.Equal(t, byte(0xAA), b.ReadByte(0x8000))
	assert.Equal(t, byte(0xFF), b.ReadByte(0x4000), "unmapped reads return 0xFF")

	b.WriteByte(0x8000, 0)
	assert.Equal(t, byte(0xAA), b.ReadByte(0x8000), "writes to ROM through the bus are dropped")

	WriteWord(b, 0x100, 0xBEEF)
	assert.Equal(t, uint16(0xBEEF), ReadWord(b, 0x100))
}

func TestBusPanicsOnInvertedRange(t *testing.T) {
	assert.Panics(t, func() {
		NewBus().Add(10, 5, NewDefaultRAM())
	})
}

func TestReadRangeWraps(t *testing.T) {
	r := NewDefaultRAM()
	r.WriteByte(0xFFFF, 1)
	r.WriteByte(0x0000, 2)
	got := ReadRange(r, 0xFFFF, 0x0001)
	assert.Equal(t, []byte{1, 2}, got)
}

func TestSwap(t *testing.T) {
	r := NewDefaultRAM()
	r.WriteByte(0, 0x42)
	held := byte(0x99)
	Swap(r, 0, &held)
	assert.Equal(t, byte(0x42), held)
	assert.Equal(t, byte(0x99), r.ReadByte(0))
}
