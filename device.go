package fatnav

import (
	"errors"
	"io"

	"github.com/quater/fatnav/checkpoint"
)

// These errors may occur while accessing the underlying block device.
var (
	ErrBootSectorNotFound = errors.New("no boot sector found on the device")
	ErrShortSectorBuffer  = errors.New("sector buffer must hold exactly one sector")
)

// BlockSource is the contract the navigator needs from a block device.
// Implementations exist for io.ReadSeeker backed images (SeekerSource) and,
// on real hardware, for raw drivers like an SD card over SPI.
// Generated mock using mockgen:
//  mockgen -source=device.go -destination=device_mock.go -package fatnav
type BlockSource interface {
	// FindBootSector locates the sector holding the FAT32 boot signature
	// within an implementation defined search window and returns its address.
	// It returns ErrBootSectorNotFound if no such sector exists.
	FindBootSector() (uint32, error)

	// ReadSector loads the sector at the given address into buf.
	// buf must be exactly SectorSize bytes long.
	ReadSector(address uint32, buf []byte) error
}

// bootSearchWindow is the number of sectors FindBootSector inspects before
// giving up. Partitions conventionally begin at sector 2048, so the window
// has to reach well beyond that.
const bootSearchWindow = 8192

// SeekerSource adapts any io.ReadSeeker (an os.File, an afero.File, a
// bytes.Reader) to the BlockSource contract.
type SeekerSource struct {
	reader io.ReadSeeker
}

// NewSeekerSource wraps reader as a block source with 512 byte sectors.
func NewSeekerSource(reader io.ReadSeeker) *SeekerSource {
	return &SeekerSource{reader: reader}
}

// FindBootSector scans forward from sector 0 looking for the 0x55 0xAA
// signature combined with a valid x86 jump prologue. The jump check filters
// out partition tables, which carry the same signature but start with
// boot loader code instead of a jump over the BPB.
func (s *SeekerSource) FindBootSector() (uint32, error) {
	var buf [SectorSize]byte

	for sector := uint32(0); sector < bootSearchWindow; sector++ {
		if err := s.ReadSector(sector, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, checkpoint.From(err)
		}

		if buf[510] != 0x55 || buf[511] != 0xAA {
			continue
		}

		if (buf[0] == 0xEB && buf[2] == 0x90) || buf[0] == 0xE9 {
			return sector, nil
		}
	}

	return 0, checkpoint.From(ErrBootSectorNotFound)
}

// ReadSector loads one sector into buf.
func (s *SeekerSource) ReadSector(address uint32, buf []byte) error {
	if len(buf) != SectorSize {
		return checkpoint.From(ErrShortSectorBuffer)
	}

	if _, err := s.reader.Seek(int64(address)*SectorSize, io.SeekStart); err != nil {
		return checkpoint.From(err)
	}

	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return checkpoint.From(err)
	}

	return nil
}
