package fatnav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"

	"github.com/quater/fatnav/checkpoint"
)

// SectorSize is the only sector size this navigator supports.
// Almost all FAT32 media use 512 and small drivers rarely handle anything else.
const SectorSize = 512

// These errors may occur while mounting a volume.
var (
	ErrNotBootSector            = errors.New("sector carries no boot signature")
	ErrInvalidBytesPerSector    = errors.New("invalid bytes per sector")
	ErrInvalidSectorsPerCluster = errors.New("invalid sectors per cluster")
)

// Geometry describes the layout of a mounted volume.
// It is filled once during Mount and never written again, so it may be
// shared by any number of cursors without synchronization.
type Geometry struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumberOfFATs        uint8
	FATSize             uint32
	RootCluster         uint32
	BootSectorAddress   uint32
	FirstDataSector     uint32
}

// Volume is a mounted, read only FAT32 filesystem on top of a BlockSource.
type Volume struct {
	dev   BlockSource
	geo   Geometry
	label string

	// Single sector cache for FAT lookups. Chain walks hit the same FAT
	// sector many times in a row, so one buffer is enough.
	fatSector uint32
	fatValid  bool
	fatBuf    [SectorSize]byte
}

// Mount locates and validates the boot sector of the device and returns a
// Volume ready for navigation.
func Mount(dev BlockSource) (*Volume, error) {
	address, err := dev.FindBootSector()
	if err != nil {
		return nil, checkpoint.From(err)
	}

	var buf [SectorSize]byte
	if err := dev.ReadSector(address, buf[:]); err != nil {
		return nil, checkpoint.From(err)
	}

	if buf[510] != 0x55 || buf[511] != 0xAA {
		return nil, checkpoint.From(ErrNotBootSector)
	}

	var bpb BPB
	if err := binary.Read(bytes.NewReader(buf[:]), binary.LittleEndian, &bpb); err != nil {
		return nil, checkpoint.From(err)
	}

	var fat32 FAT32SpecificData
	if err := binary.Read(bytes.NewReader(bpb.FAT32SpecificData[:]), binary.LittleEndian, &fat32); err != nil {
		return nil, checkpoint.From(err)
	}

	if bpb.BytesPerSector != SectorSize {
		return nil, checkpoint.From(ErrInvalidBytesPerSector)
	}

	// Sectors per cluster has to be a power of two between 1 and 128.
	spc := bpb.SectorsPerCluster
	if spc == 0 || spc&(spc-1) != 0 {
		return nil, checkpoint.From(ErrInvalidSectorsPerCluster)
	}

	geo := Geometry{
		BytesPerSector:      bpb.BytesPerSector,
		SectorsPerCluster:   spc,
		ReservedSectorCount: bpb.ReservedSectorCount,
		NumberOfFATs:        bpb.NumberOfFATs,
		FATSize:             fat32.FATSize,
		RootCluster:         fat32.RootCluster,
		BootSectorAddress:   address,
	}
	geo.FirstDataSector = address +
		uint32(geo.ReservedSectorCount) +
		uint32(geo.NumberOfFATs)*geo.FATSize

	return &Volume{
		dev:   dev,
		geo:   geo,
		label: strings.TrimRight(string(fat32.BSVolumeLabel[:]), " "),
	}, nil
}

// Geometry returns the immutable layout of the volume.
func (v *Volume) Geometry() Geometry {
	return v.geo
}

// Label returns the volume label from the boot sector, trailing spaces removed.
func (v *Volume) Label() string {
	return v.label
}

// clusterFirstSector translates a cluster index into the physical address of
// its first sector. Cluster indices start at 2 by convention.
func (v *Volume) clusterFirstSector(cluster uint32) uint32 {
	return v.geo.FirstDataSector + (cluster-2)*uint32(v.geo.SectorsPerCluster)
}

func (v *Volume) readSector(address uint32, buf []byte) error {
	return checkpoint.From(v.dev.ReadSector(address, buf))
}
