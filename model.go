// Model contains the structs which match the on-disk structures of a FAT32 volume.

package fatnav

// BPB is the common BIOS Parameter Block at the start of the boot sector.
// The FAT32 specific tail is kept as raw bytes and decoded separately.
type BPB struct {
	BSJumpBoot          [3]byte
	BSOEMName           [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   byte
	ReservedSectorCount uint16
	NumberOfFATs        byte
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               byte
	FATSize16           uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectors       uint32
	TotalSectors32      uint32
	FAT32SpecificData   [54]byte
}

// FAT32SpecificData holds the FAT32 part of the boot sector which follows
// the common BPB fields at offset 36.
type FAT32SpecificData struct {
	FATSize          uint32
	ExtFlags         uint16
	FSVersion        uint16
	RootCluster      uint32
	FSInfo           uint16
	BkBootSector     uint16
	Reserved         [12]byte
	BSDriveNumber    byte
	BSReserved1      byte
	BSBootSignature  byte
	BSVolumeID       uint32
	BSVolumeLabel    [11]byte
	BSFileSystemType [8]byte
}

// EntryHeader is a 32 byte short name directory entry.
// It is authoritative for attributes, size, dates and the first cluster,
// no matter if long name entries precede it.
type EntryHeader struct {
	Name            [11]byte
	Attribute       byte
	NTReserved      byte
	CreateTimeTenth byte
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	FirstClusterHI  uint16
	WriteTime       uint16
	WriteDate       uint16
	FirstClusterLO  uint16
	FileSize        uint32
}

// FirstCluster assembles the entry's first cluster index from the two
// non-adjacent 16 bit halves (high half at offset 20, low half at offset 26).
func (h *EntryHeader) FirstCluster() uint32 {
	return uint32(h.FirstClusterHI)<<16 | uint32(h.FirstClusterLO)
}

// IsDirectory reports whether the directory attribute bit is set.
func (h *EntryHeader) IsDirectory() bool {
	return h.Attribute&attrDirectory != 0
}

// IsHidden reports whether the hidden attribute bit is set.
func (h *EntryHeader) IsHidden() bool {
	return h.Attribute&attrHidden != 0
}

// IsVolumeLabel reports whether the entry is the volume label pseudo entry.
func (h *EntryHeader) IsVolumeLabel() bool {
	return h.Attribute&attrVolumeID != 0 && h.Attribute&longNameAttrMask != longNameAttr
}

// LongNameEntry is a 32 byte long name fragment preceding its short name
// entry. The name characters are UCS-2 spread over three disjoint ranges.
type LongNameEntry struct {
	Sequence  byte
	First     [5]uint16
	Attribute byte
	EntryType byte
	Checksum  byte
	Second    [6]uint16
	Zero      [2]byte
	Third     [2]uint16
}
