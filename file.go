package fatnav

import (
	"errors"
	"io"

	"github.com/quater/fatnav/checkpoint"
)

// ErrFileNotFound wraps ErrEndOfDirectory when StreamFile exhausts the
// directory without finding the file.
var ErrFileNotFound = errors.New("file not found")

// lineEnd is what a '\n' in file content is expanded to. The consuming
// terminal wants a carriage return before every line feed.
var lineEnd = []byte{'\r', '\n'}

// StreamFile locates the file called name in dir and streams its content to
// w. Newlines are expanded to "\r\n", every other non zero byte passes
// through verbatim.
//
// End of file detection: a zero byte is treated as the end of the file if
// the remainder of its sector is zero as well, otherwise it is literal data.
// This mirrors how text files short of their last sector are laid out, but
// it will cut off binary files with a zero filled tail inside a sector even
// though the entry's FileSize would allow streaming the exact length.
func (v *Volume) StreamFile(dir *DirectoryCursor, name string, w io.Writer) error {
	if err := validateName(name); err != nil {
		return checkpoint.From(err)
	}

	cursor := v.Entries(dir)
	for {
		if err := cursor.Advance(); err != nil {
			if errors.Is(err, ErrEndOfDirectory) {
				return checkpoint.Wrap(err, ErrFileNotFound)
			}
			return checkpoint.From(err)
		}

		if cursor.Header.IsDirectory() {
			continue
		}

		if cursor.Name() == name {
			return v.streamClusters(cursor.Header.FirstCluster(), w)
		}
	}
}

// streamClusters walks the cluster chain starting at first and emits the
// content sector by sector until the end of chain sentinel or the end of
// file heuristic fires.
func (v *Volume) streamClusters(first uint32, w io.Writer) error {
	cluster := fatEntry(first)
	if !cluster.IsNextCluster() {
		// An empty file carries no cluster chain at all.
		return nil
	}

	var buf [SectorSize]byte
	for {
		base := v.clusterFirstSector(cluster.Value())

		for sector := uint32(0); sector < uint32(v.geo.SectorsPerCluster); sector++ {
			if err := v.readSector(base+sector, buf[:]); err != nil {
				return checkpoint.From(err)
			}

			done, err := emitSector(buf[:], w)
			if err != nil {
				return checkpoint.From(err)
			}
			if done {
				return nil
			}
		}

		next, err := v.nextCluster(cluster.Value())
		if err != nil {
			return checkpoint.From(err)
		}
		if !next.IsNextCluster() {
			return nil
		}
		cluster = next
	}
}

// emitSector writes one sector of file content, translating newlines and
// applying the zero tail end of file heuristic. It reports whether the end
// of the file was reached within this sector.
func emitSector(buf []byte, w io.Writer) (bool, error) {
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case 0:
			if zeroTail(buf[i:]) {
				return true, nil
			}
			// A later byte is non zero, so this zero is literal data.
			if _, err := w.Write(buf[i : i+1]); err != nil {
				return false, err
			}
		case '\n':
			if _, err := w.Write(lineEnd); err != nil {
				return false, err
			}
		default:
			if _, err := w.Write(buf[i : i+1]); err != nil {
				return false, err
			}
		}
	}

	return false, nil
}

// zeroTail reports whether every byte of buf is zero.
func zeroTail(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
