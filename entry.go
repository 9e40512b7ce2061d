package fatnav

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/quater/fatnav/checkpoint"
)

const (
	entrySize        = 32
	entriesPerSector = SectorSize / entrySize

	entryFree    = 0x00
	entryDeleted = 0xE5

	attrReadOnly  = 0x01
	attrHidden    = 0x02
	attrSystem    = 0x04
	attrVolumeID  = 0x08
	attrDirectory = 0x10
	attrArchive   = 0x20

	longNameAttr     = attrReadOnly | attrHidden | attrSystem | attrVolumeID
	longNameAttrMask = longNameAttr | attrDirectory | attrArchive

	lastLongEntryFlag = 0x40
	longOrdinalMask   = 0x3F

	longCharsPerEntry = 13
)

// These errors may occur while enumerating a directory.
var (
	// ErrEndOfDirectory terminates a scan. It is a normal terminal state,
	// not a failure: a search that sees it simply found no match.
	ErrEndOfDirectory = errors.New("end of directory")

	// ErrCorruptEntry reports a violated long name invariant. The scan is
	// aborted immediately, continuing past broken ordinals would walk into
	// wrong byte offsets and return garbage for every following entry.
	ErrCorruptEntry = errors.New("corrupt directory entry")
)

// EntryCursor is a resumable continuation over the entries of one directory.
// Each successful Advance leaves the reconstructed names and the raw short
// name entry in the exported fields and the resume position on the slot
// following the returned entry. After ErrEndOfDirectory the cursor must not
// be advanced further.
//
// Cursors are plain values without locking. Any number of them may coexist
// over the same volume, but a single cursor must not be shared between
// concurrent callers.
type EntryCursor struct {
	vol *Volume

	// LongName is the reconstructed long name, empty if the entry has none.
	LongName string
	// ShortName is the 8.3 name in display form.
	ShortName string
	// Header is the decoded short name entry, authoritative for attributes,
	// size, dates and the first cluster.
	Header EntryHeader

	cluster uint32
	sector  uint32
	offset  uint32
	done    bool
}

// Entries binds a fresh cursor to the first cluster of dir.
func (v *Volume) Entries(dir *DirectoryCursor) *EntryCursor {
	return &EntryCursor{vol: v, cluster: dir.Cluster}
}

// Name returns the long name, falling back to the short name if no long
// name entries precede the entry on disk.
func (c *EntryCursor) Name() string {
	if c.LongName != "" {
		return c.LongName
	}
	return c.ShortName
}

// Advance scans forward from the resume position and loads the next live
// entry into the cursor. It returns nil on success, ErrEndOfDirectory once
// the directory is exhausted, ErrCorruptEntry on a violated long name
// invariant and any read failure of the block source verbatim.
func (c *EntryCursor) Advance() error {
	if c.done {
		return checkpoint.From(ErrEndOfDirectory)
	}

	var buf [SectorSize]byte
	loaded := false

	for {
		if !loaded {
			address := c.vol.clusterFirstSector(c.cluster) + c.sector
			if err := c.vol.readSector(address, buf[:]); err != nil {
				return checkpoint.From(err)
			}
			loaded = true
		}

		switch buf[c.offset] {
		case entryFree:
			// A free slot ends the directory, no later cluster can
			// hold further entries.
			c.done = true
			return checkpoint.From(ErrEndOfDirectory)
		case entryDeleted:
			sectorChanged, err := c.stepSlot()
			if err != nil {
				return checkpoint.From(err)
			}
			if c.done {
				return checkpoint.From(ErrEndOfDirectory)
			}
			if sectorChanged {
				loaded = false
			}
			continue
		}

		if buf[c.offset+11]&longNameAttrMask == longNameAttr {
			return c.loadLongEntry(&buf)
		}

		return c.loadShortEntry(buf[c.offset : c.offset+entrySize])
	}
}

// stepSlot moves the resume position to the following 32 byte slot, wrapping
// over sector and cluster boundaries. Reaching the end of chain sentinel
// marks the cursor done. It reports whether the position left the current
// sector.
func (c *EntryCursor) stepSlot() (bool, error) {
	c.offset += entrySize
	if c.offset < SectorSize {
		return false, nil
	}

	c.offset = 0
	c.sector++
	if c.sector < uint32(c.vol.geo.SectorsPerCluster) {
		return true, nil
	}

	c.sector = 0
	next, err := c.vol.nextCluster(c.cluster)
	if err != nil {
		return true, checkpoint.From(err)
	}

	if !next.IsNextCluster() {
		c.done = true
		return true, nil
	}

	c.cluster = next.Value()
	return true, nil
}

// loadShortEntry loads an entry which carries no long name and advances the
// resume position past it.
func (c *EntryCursor) loadShortEntry(slot []byte) error {
	header, err := decodeEntryHeader(slot)
	if err != nil {
		return checkpoint.From(err)
	}

	c.Header = header
	c.ShortName = shortNameString(slot)
	c.LongName = ""

	_, err = c.stepSlot()
	return checkpoint.From(err)
}

// loadLongEntry reconstructs a long name starting at the fragment under the
// resume position. Long names are stored highest ordinal first, so the
// fragment encountered first in scan order must be the terminal one and the
// short name entry follows ordinal many slots later, possibly in the next
// physical sector.
func (c *EntryCursor) loadLongEntry(buf *[SectorSize]byte) error {
	first := buf[c.offset]
	if first&lastLongEntryFlag == 0 {
		return checkpoint.From(ErrCorruptEntry)
	}

	count := uint32(first & longOrdinalMask)
	if count == 0 {
		return checkpoint.From(ErrCorruptEntry)
	}

	shortOffset := c.offset + entrySize*count

	if shortOffset < SectorSize {
		return c.loadLongEntryWithin(buf, count, shortOffset)
	}
	return c.loadLongEntryAcross(buf, count, shortOffset)
}

// loadLongEntryWithin handles the case of the whole long name and its short
// name entry living in the current sector.
func (c *EntryCursor) loadLongEntryWithin(buf *[SectorSize]byte, count, shortOffset uint32) error {
	// The fragment right before the short name entry has to be ordinal 1.
	if buf[shortOffset-entrySize]&longOrdinalMask != 1 {
		return checkpoint.From(ErrCorruptEntry)
	}

	name := make([]byte, 0, count*longCharsPerEntry)
	for ordinal := uint32(1); ordinal <= count; ordinal++ {
		slot := buf[shortOffset-ordinal*entrySize:]
		name = appendLongNameChars(name, slot[:entrySize])
	}

	header, err := decodeEntryHeader(buf[shortOffset : shortOffset+entrySize])
	if err != nil {
		return checkpoint.From(err)
	}

	c.Header = header
	c.ShortName = shortNameString(buf[shortOffset : shortOffset+entrySize])
	c.LongName = string(name)

	c.offset = shortOffset
	_, err = c.stepSlot()
	return checkpoint.From(err)
}

// loadLongEntryAcross handles a long name whose short name entry, and
// possibly some of its fragments, straddle into the next physical sector.
func (c *EntryCursor) loadLongEntryAcross(buf *[SectorSize]byte, count, shortOffset uint32) error {
	relocated := shortOffset - SectorSize
	if relocated >= SectorSize {
		// The name would span more than two sectors, which no valid
		// ordinal count of this layout can produce.
		return checkpoint.From(ErrCorruptEntry)
	}

	nextCluster := c.cluster
	nextSector := c.sector + 1
	if nextSector >= uint32(c.vol.geo.SectorsPerCluster) {
		entry, err := c.vol.nextCluster(c.cluster)
		if err != nil {
			return checkpoint.From(err)
		}
		if !entry.IsNextCluster() {
			// The fragments promise a short name entry beyond the
			// end of the cluster chain.
			return checkpoint.From(ErrCorruptEntry)
		}
		nextCluster = entry.Value()
		nextSector = 0
	}

	var next [SectorSize]byte
	address := c.vol.clusterFirstSector(nextCluster) + nextSector
	if err := c.vol.readSector(address, next[:]); err != nil {
		return checkpoint.From(err)
	}

	if next[relocated+11]&longNameAttrMask == longNameAttr {
		return checkpoint.From(ErrCorruptEntry)
	}

	name := make([]byte, 0, count*longCharsPerEntry)
	for ordinal := uint32(1); ordinal <= count; ordinal++ {
		slotOffset := shortOffset - ordinal*entrySize

		var slot []byte
		if slotOffset >= SectorSize {
			slot = next[slotOffset-SectorSize:]
		} else {
			slot = buf[slotOffset:]
		}

		name = appendLongNameChars(name, slot[:entrySize])
	}

	header, err := decodeEntryHeader(next[relocated : relocated+entrySize])
	if err != nil {
		return checkpoint.From(err)
	}

	c.Header = header
	c.ShortName = shortNameString(next[relocated : relocated+entrySize])
	c.LongName = string(name)

	c.cluster = nextCluster
	c.sector = nextSector
	c.offset = relocated
	_, err = c.stepSlot()
	return checkpoint.From(err)
}

// decodeEntryHeader parses one raw 32 byte short name slot.
func decodeEntryHeader(slot []byte) (EntryHeader, error) {
	var header EntryHeader
	err := binary.Read(bytes.NewReader(slot), binary.LittleEndian, &header)
	return header, err
}

// appendLongNameChars collects the name characters of one long name fragment
// in on-disk order. The characters live in three disjoint UCS-2 ranges of
// the slot; null and out-of-ASCII values are skipped.
func appendLongNameChars(name []byte, slot []byte) []byte {
	var long LongNameEntry
	if err := binary.Read(bytes.NewReader(slot), binary.LittleEndian, &long); err != nil {
		return name
	}

	groups := [][]uint16{long.First[:], long.Second[:], long.Third[:]}
	for _, group := range groups {
		for _, ch := range group {
			if ch == 0 || ch > 0x7F {
				continue
			}
			name = append(name, byte(ch))
		}
	}

	return name
}
