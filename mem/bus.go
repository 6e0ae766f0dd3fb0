package mem

// segment is one (base, limit, device) entry in a Bus. base and limit
// are plain ints rather than uint16, so that a segment can describe the
// half-open window [base, limit) up to and including 0x10000 without
// wrapping.
type segment struct {
	base, limit int
	device      Memory
}

// Bus routes each address to the first device in its ordered segment
// list whose [base, limit) window contains it, translating the address
// to the device's own local offset before dispatch. A read of an
// address claimed by no device returns 0xFF (open bus); a write to one
// is dropped. Unlike reads, writes are dispatched to every matching
// segment — a deliberate write-mirroring allowance — which in practice
// is equivalent to "first match" since installed ranges are expected
// to be disjoint.
type Bus struct {
	segments []segment
}

// NewBus returns an empty bus. Use Add in builder style to register
// devices; insertion order is significant when ranges overlap.
func NewBus() *Bus {
	return &Bus{}
}

// Add registers a device over the half-open range [base, limit) and
// returns the bus, so calls can be chained. It panics if base > limit:
// no device may be instantiated with its range inverted.
func (b *Bus) Add(base, limit int, device Memory) *Bus {
	if base > limit {
		panic("mem: bus segment base must not exceed limit")
	}
	b.segments = append(b.segments, segment{base: base, limit: limit, device: device})
	return b
}

func (b *Bus) ReadByte(addr uint16) byte {
	a := int(addr)
	for _, s := range b.segments {
		if a >= s.base && a < s.limit {
			return s.device.ReadByte(uint16(a - s.base))
		}
	}
	return 0xFF
}

func (b *Bus) WriteByte(addr uint16, value byte) {
	a := int(addr)
	for _, s := range b.segments {
		if a >= s.base && a < s.limit {
			s.device.WriteByte(uint16(a-s.base), value)
		}
	}
}
