package fatnav

import (
	"errors"

	"github.com/quater/fatnav/checkpoint"
)

// ListFlags select which entries and columns a directory listing carries.
// Apart from ListHidden the flags only steer presentation; the enumeration
// itself does not change.
type ListFlags uint16

const (
	// ListLongNames shows the reconstructed long names.
	ListLongNames ListFlags = 1 << iota
	// ListShortNames shows the 8.3 names.
	ListShortNames
	// ListHidden includes entries with the hidden attribute.
	ListHidden
	// ListCreation shows the creation stamp.
	ListCreation
	// ListLastAccess shows the last access date.
	ListLastAccess
	// ListModified shows the last write stamp.
	ListModified
	// ListType shows whether the entry is a file or a directory.
	ListType
	// ListSize shows the file size.
	ListSize

	// ListAll turns on every flag.
	ListAll ListFlags = 0xFFFF
)

// ListEntry is one row of a directory listing.
type ListEntry struct {
	LongName  string
	ShortName string
	Header    EntryHeader
}

// Name returns the long name, falling back to the short name.
func (e ListEntry) Name() string {
	if e.LongName != "" {
		return e.LongName
	}
	return e.ShortName
}

// List collects all live entries of dir in on-disk order. The volume label
// pseudo entry is always skipped, hidden entries only without ListHidden.
// An empty directory yields an empty slice, not an error.
func (v *Volume) List(dir *DirectoryCursor, flags ListFlags) ([]ListEntry, error) {
	var entries []ListEntry

	cursor := v.Entries(dir)
	for {
		err := cursor.Advance()
		if errors.Is(err, ErrEndOfDirectory) {
			return entries, nil
		}
		if err != nil {
			return nil, checkpoint.From(err)
		}

		if cursor.Header.IsVolumeLabel() {
			continue
		}
		if cursor.Header.IsHidden() && flags&ListHidden == 0 {
			continue
		}

		entries = append(entries, ListEntry{
			LongName:  cursor.LongName,
			ShortName: cursor.ShortName,
			Header:    cursor.Header,
		})
	}
}
