package fatnav

import (
	"os"
	"time"
)

// FileInfo adapts the entry to os.FileInfo for uniform presentation.
func (e ListEntry) FileInfo() os.FileInfo {
	return listEntryFileInfo{e}
}

type listEntryFileInfo struct {
	entry ListEntry
}

func (i listEntryFileInfo) Name() string {
	return i.entry.Name()
}

func (i listEntryFileInfo) Size() int64 {
	return int64(i.entry.Header.FileSize)
}

func (i listEntryFileInfo) Mode() os.FileMode {
	if i.IsDir() {
		return os.ModeDir
	}
	return 0
}

func (i listEntryFileInfo) ModTime() time.Time {
	return i.entry.Header.Modified()
}

func (i listEntryFileInfo) IsDir() bool {
	return i.entry.Header.IsDirectory()
}

func (i listEntryFileInfo) Sys() interface{} {
	return i.entry.Header
}
