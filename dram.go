// dram.go - flat physical memory backing the guest's RAM region

package main

// DRAMBase is the fixed physical base address of guest RAM, per the memory map.
const DRAMBase = 0x8000_0000

// DefaultDRAMSize is used when the embedder does not request a specific size.
const DefaultDRAMSize = 128 * 1024 * 1024 // 128 MiB

// DRAM is a contiguous byte-addressable block of guest memory starting at
// DRAMBase. Any access fully contained in [DRAMBase, DRAMBase+len(bytes))
// succeeds; everything else is the Bus's job to reject before it gets here.
type DRAM struct {
	bytes []byte
}

// NewDRAM allocates a DRAM region of the given size.
func NewDRAM(size uint64) *DRAM {
	return &DRAM{bytes: make([]byte, size)}
}

// Size returns the number of bytes backing this DRAM instance.
func (d *DRAM) Size() uint64 {
	return uint64(len(d.bytes))
}

// contains reports whether [addr, addr+width) lies fully within this DRAM,
// where addr is already relative to DRAMBase.
func (d *DRAM) contains(offset uint64, width int) bool {
	end := offset + uint64(width)
	return end >= offset && end <= uint64(len(d.bytes))
}

// Read implements the Device interface. offset is relative to DRAMBase.
func (d *DRAM) Read(offset uint64, width int) (uint64, bool) {
	if !d.contains(offset, width) {
		return 0, false
	}
	return readLE(d.bytes[offset:offset+uint64(width)]), true
}

// Write implements the Device interface. offset is relative to DRAMBase.
func (d *DRAM) Write(offset uint64, width int, value uint64) bool {
	if !d.contains(offset, width) {
		return false
	}
	writeLE(d.bytes[offset:offset+uint64(width)], width, value)
	return true
}

// LoadAt copies data into DRAM starting at the given offset, zero-extending
// nothing — callers that need zero-fill (e.g. ELF .bss) must size the
// destination themselves. Returns false if the write would run off the end
// of the region.
func (d *DRAM) LoadAt(offset uint64, data []byte) bool {
	if offset+uint64(len(data)) > uint64(len(d.bytes)) {
		return false
	}
	copy(d.bytes[offset:], data)
	return true
}

// readLE decodes a little-endian unsigned integer of the given byte width.
func readLE(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// writeLE encodes value into b (which must have len(b) == width) as little-endian.
func writeLE(b []byte, width int, value uint64) {
	for i := 0; i < width; i++ {
		b[i] = byte(value >> (8 * uint(i)))
	}
}
