package fatnav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// imageBuilder assembles a minimal FAT32 volume in memory for tests.
// The boot sector sits at address 0, the root directory in cluster 2.
type imageBuilder struct {
	spc      uint8
	reserved uint16
	numFATs  uint8
	fatSize  uint32
	sectors  map[uint32][]byte
}

func newImageBuilder() *imageBuilder {
	b := &imageBuilder{
		spc:      1,
		reserved: 2,
		numFATs:  2,
		fatSize:  2,
		sectors:  make(map[uint32][]byte),
	}
	return b
}

func (b *imageBuilder) withSectorsPerCluster(spc uint8) *imageBuilder {
	b.spc = spc
	return b
}

// sector returns the backing slice for one sector, creating it zeroed.
func (b *imageBuilder) sector(address uint32) []byte {
	s, ok := b.sectors[address]
	if !ok {
		s = make([]byte, SectorSize)
		b.sectors[address] = s
	}
	return s
}

func (b *imageBuilder) writeBootSector() {
	s := b.sector(0)
	s[0] = 0xEB
	s[1] = 0x3C
	s[2] = 0x90
	copy(s[3:11], "MSDOS5.0")
	binary.LittleEndian.PutUint16(s[11:13], SectorSize)
	s[13] = b.spc
	binary.LittleEndian.PutUint16(s[14:16], b.reserved)
	s[16] = b.numFATs
	s[21] = 0xF8
	binary.LittleEndian.PutUint32(s[36:40], b.fatSize)
	binary.LittleEndian.PutUint32(s[44:48], 2)
	copy(s[71:82], "TESTVOL    ")
	s[510] = 0x55
	s[511] = 0xAA
}

func (b *imageBuilder) firstDataSector() uint32 {
	return uint32(b.reserved) + uint32(b.numFATs)*b.fatSize
}

func (b *imageBuilder) clusterSector(cluster uint32, index uint32) uint32 {
	return b.firstDataSector() + (cluster-2)*uint32(b.spc) + index
}

// setFAT writes one entry of the first FAT copy.
func (b *imageBuilder) setFAT(cluster uint32, value uint32) {
	address := uint32(b.reserved) + cluster/fatEntriesPerSector
	s := b.sector(address)
	offset := fatEntrySize * (cluster % fatEntriesPerSector)
	binary.LittleEndian.PutUint32(s[offset:offset+4], value)
}

// chain links the given clusters in order and terminates with the end of
// chain sentinel.
func (b *imageBuilder) chain(clusters ...uint32) {
	for i := 0; i < len(clusters)-1; i++ {
		b.setFAT(clusters[i], clusters[i+1])
	}
	b.setFAT(clusters[len(clusters)-1], 0x0FFFFFFF)
}

// fillCluster copies data into the data sectors of cluster.
func (b *imageBuilder) fillCluster(cluster uint32, data []byte) {
	for i := uint32(0); i*SectorSize < uint32(len(data)); i++ {
		s := b.sector(b.clusterSector(cluster, i))
		copy(s, data[i*SectorSize:])
	}
}

// bytes assembles the image, padded with a few zero sectors at the end.
func (b *imageBuilder) bytes() []byte {
	b.writeBootSector()

	max := uint32(0)
	for address := range b.sectors {
		if address > max {
			max = address
		}
	}

	image := make([]byte, (max+8)*SectorSize)
	for address, s := range b.sectors {
		copy(image[address*SectorSize:], s)
	}
	return image
}

func (b *imageBuilder) source() *SeekerSource {
	return NewSeekerSource(bytes.NewReader(b.bytes()))
}

func (b *imageBuilder) volume(t *testing.T) *Volume {
	t.Helper()
	v, err := Mount(b.source())
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return v
}

// dirBuilder assembles raw directory cluster content.
type dirBuilder struct {
	buf bytes.Buffer
}

// shortRaw converts a name like "FOO.TXT" into the fixed 11 byte 8.3 field.
func shortRaw(name string) [11]byte {
	var raw [11]byte
	for i := range raw {
		raw[i] = ' '
	}

	if name == "." || name == ".." {
		copy(raw[:], name)
		return raw
	}

	dot := bytes.IndexByte([]byte(name), '.')
	if dot < 0 {
		copy(raw[:8], name)
	} else {
		copy(raw[:8], name[:dot])
		copy(raw[8:], name[dot+1:])
	}
	return raw
}

func shortSlot(name string, attr byte, cluster uint32, size uint32) [32]byte {
	var slot [32]byte
	raw := shortRaw(name)
	copy(slot[:11], raw[:])
	slot[11] = attr
	binary.LittleEndian.PutUint16(slot[20:22], uint16(cluster>>16))
	binary.LittleEndian.PutUint16(slot[26:28], uint16(cluster&0xFFFF))
	binary.LittleEndian.PutUint32(slot[28:32], size)
	return slot
}

// longSlots encodes name as long name fragments, highest ordinal first,
// ready to be laid down right before their short name entry.
func longSlots(name string) [][32]byte {
	count := (len(name) + longCharsPerEntry - 1) / longCharsPerEntry

	chars := make([]uint16, count*longCharsPerEntry)
	for i := range chars {
		chars[i] = 0xFFFF
	}
	for i := 0; i < len(name); i++ {
		chars[i] = uint16(name[i])
	}
	if len(name) < len(chars) {
		chars[len(name)] = 0
	}

	slots := make([][32]byte, count)
	for ordinal := count; ordinal >= 1; ordinal-- {
		var slot [32]byte
		slot[0] = byte(ordinal)
		if ordinal == count {
			slot[0] |= lastLongEntryFlag
		}
		slot[11] = longNameAttr

		frag := chars[(ordinal-1)*longCharsPerEntry : ordinal*longCharsPerEntry]
		for i := 0; i < 5; i++ {
			binary.LittleEndian.PutUint16(slot[1+2*i:], frag[i])
		}
		for i := 0; i < 6; i++ {
			binary.LittleEndian.PutUint16(slot[14+2*i:], frag[5+i])
		}
		for i := 0; i < 2; i++ {
			binary.LittleEndian.PutUint16(slot[28+2*i:], frag[11+i])
		}

		slots[count-ordinal] = slot
	}
	return slots
}

func (d *dirBuilder) short(name string, attr byte, cluster uint32, size uint32) {
	slot := shortSlot(name, attr, cluster, size)
	d.buf.Write(slot[:])
}

// long writes the long name fragments for longName followed by the short
// name entry.
func (d *dirBuilder) long(longName, shortName string, attr byte, cluster uint32, size uint32) {
	for _, slot := range longSlots(longName) {
		d.buf.Write(slot[:])
	}
	d.short(shortName, attr, cluster, size)
}

// rawSlot writes one hand-crafted slot.
func (d *dirBuilder) rawSlot(slot [32]byte) {
	d.buf.Write(slot[:])
}

// deleted writes one slot carrying the delete marker.
func (d *dirBuilder) deleted() {
	var slot [32]byte
	slot[0] = entryDeleted
	slot[11] = attrArchive
	d.buf.Write(slot[:])
}

// dotEntries writes the "." and ".." pair every subdirectory starts with.
func (d *dirBuilder) dotEntries(self, parent uint32) {
	d.short(".", attrDirectory, self, 0)
	d.short("..", attrDirectory, parent, 0)
}

// slotCount returns how many 32 byte slots have been written so far.
func (d *dirBuilder) slotCount() int {
	return d.buf.Len() / entrySize
}

func (d *dirBuilder) bytes() []byte {
	return d.buf.Bytes()
}
