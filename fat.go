package fatnav

import (
	"encoding/binary"

	"github.com/quater/fatnav/checkpoint"
)

// fatEntry is one 32 bit entry of the File Allocation Table.
// Only the low 28 bits are significant on FAT32, the top nibble is reserved
// and has to be masked off before any comparison.
type fatEntry uint32

const (
	fatEntrySize        = 4
	fatEntryMask        = 0x0FFFFFFF
	fatEntriesPerSector = SectorSize / fatEntrySize
)

// Value returns the masked 28 bit cluster value.
func (e fatEntry) Value() uint32 {
	return uint32(e) & fatEntryMask
}

// IsFree reports whether the cluster is unallocated.
func (e fatEntry) IsFree() bool {
	return e.Value() == 0
}

// IsBad reports whether the cluster is marked defective.
func (e fatEntry) IsBad() bool {
	return e.Value() == 0x0FFFFFF7
}

// IsEOC reports whether the entry is an end of chain sentinel.
func (e fatEntry) IsEOC() bool {
	return e.Value() >= 0x0FFFFFF8
}

// IsNextCluster reports whether the entry points at a valid successor cluster.
func (e fatEntry) IsNextCluster() bool {
	v := e.Value()
	return v >= 2 && v <= 0x0FFFFFEF
}

// nextCluster resolves the successor of cluster through the first FAT copy.
// The sector holding the entry stays cached, chain walks are monotonic and
// tend to stay within one FAT sector for many steps.
func (v *Volume) nextCluster(cluster uint32) (fatEntry, error) {
	sector := v.geo.BootSectorAddress +
		uint32(v.geo.ReservedSectorCount) +
		cluster/fatEntriesPerSector
	offset := fatEntrySize * (cluster % fatEntriesPerSector)

	if !v.fatValid || v.fatSector != sector {
		if err := v.readSector(sector, v.fatBuf[:]); err != nil {
			return 0, checkpoint.From(err)
		}
		v.fatSector = sector
		v.fatValid = true
	}

	return fatEntry(binary.LittleEndian.Uint32(v.fatBuf[offset : offset+4])), nil
}
