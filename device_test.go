package fatnav

import (
	"bytes"
	"errors"
	"testing"
)

func TestSeekerSource_FindBootSector(t *testing.T) {
	b := newImageBuilder()
	b.chain(2)
	boot := b.bytes()[:SectorSize]

	// A partition table carries the same 0x55 0xAA signature but no jump
	// prologue; the scan must step over it.
	mbr := make([]byte, SectorSize)
	mbr[0] = 0x33
	mbr[510] = 0x55
	mbr[511] = 0xAA

	image := make([]byte, 6*SectorSize)
	copy(image, mbr)
	copy(image[3*SectorSize:], boot)

	source := NewSeekerSource(bytes.NewReader(image))
	address, err := source.FindBootSector()
	if err != nil {
		t.Fatalf("FindBootSector() error = %v", err)
	}
	if address != 3 {
		t.Errorf("FindBootSector() = %v, want 3", address)
	}
}

func TestSeekerSource_FindBootSectorNotFound(t *testing.T) {
	image := make([]byte, 16*SectorSize)

	source := NewSeekerSource(bytes.NewReader(image))
	if _, err := source.FindBootSector(); !errors.Is(err, ErrBootSectorNotFound) {
		t.Errorf("FindBootSector() error = %v, want %v", err, ErrBootSectorNotFound)
	}
}

func TestSeekerSource_ReadSector(t *testing.T) {
	image := make([]byte, 4*SectorSize)
	for i := range image {
		image[i] = byte(i / SectorSize)
	}

	source := NewSeekerSource(bytes.NewReader(image))

	var buf [SectorSize]byte
	if err := source.ReadSector(2, buf[:]); err != nil {
		t.Fatalf("ReadSector() error = %v", err)
	}
	for i, b := range buf {
		if b != 2 {
			t.Fatalf("buf[%d] = %v, want 2", i, b)
		}
	}
}

func TestSeekerSource_ReadSectorBadBuffer(t *testing.T) {
	source := NewSeekerSource(bytes.NewReader(make([]byte, SectorSize)))

	err := source.ReadSector(0, make([]byte, 100))
	if !errors.Is(err, ErrShortSectorBuffer) {
		t.Errorf("ReadSector() error = %v, want %v", err, ErrShortSectorBuffer)
	}
}
