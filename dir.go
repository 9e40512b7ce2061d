package fatnav

import (
	"encoding/binary"
	"errors"
	"strings"

	"github.com/quater/fatnav/checkpoint"
)

// RootName marks the root directory in a DirectoryCursor and, passed to
// Descend, resets the cursor back to root.
const RootName = "~"

// ErrDirectoryNotFound wraps ErrEndOfDirectory when Descend exhausts the
// directory without a match.
var ErrDirectoryNotFound = errors.New("directory not found")

// DirectoryCursor is the "current directory" of a navigation session.
// All five fields always describe the same directory, Descend and Ascend
// update them as a group. The path fields hold the location of the parent,
// the name fields the directory itself.
type DirectoryCursor struct {
	LongName  string
	LongPath  string
	ShortName string
	ShortPath string
	Cluster   uint32
}

// Root returns a cursor positioned at the root directory.
func (v *Volume) Root() DirectoryCursor {
	var dir DirectoryCursor
	v.ResetToRoot(&dir)
	return dir
}

// ResetToRoot points dir back at the root directory.
func (v *Volume) ResetToRoot(dir *DirectoryCursor) {
	dir.LongName = RootName
	dir.LongPath = ""
	dir.ShortName = RootName
	dir.ShortPath = ""
	dir.Cluster = v.geo.RootCluster
}

// isRoot reports whether dir currently sits at the root directory.
func (v *Volume) isRoot(dir *DirectoryCursor) bool {
	return dir.Cluster == v.geo.RootCluster
}

// Descend moves dir one hop down into the child directory called name.
// The match is exact and case sensitive against the reconstructed name.
// "." is a no-op, ".." delegates to Ascend and RootName resets to root.
// If the directory holds no child of that name, the returned error matches
// both ErrDirectoryNotFound and ErrEndOfDirectory.
func (v *Volume) Descend(dir *DirectoryCursor, name string) error {
	if err := validateName(name); err != nil {
		return checkpoint.From(err)
	}

	switch name {
	case ".":
		return nil
	case "..":
		return v.Ascend(dir)
	case RootName:
		v.ResetToRoot(dir)
		return nil
	}

	cursor := v.Entries(dir)
	for {
		if err := cursor.Advance(); err != nil {
			if errors.Is(err, ErrEndOfDirectory) {
				return checkpoint.Wrap(err, ErrDirectoryNotFound)
			}
			return checkpoint.From(err)
		}

		if !cursor.Header.IsDirectory() {
			continue
		}

		if cursor.Name() != name {
			continue
		}

		pushSegment(dir, cursor.Name(), cursor.ShortName)
		dir.Cluster = cursor.Header.FirstCluster()
		return nil
	}
}

// Ascend moves dir one hop up to its parent directory. At root it is a
// no-op. The parent cluster comes from the directory's own ".." entry,
// which is the second slot of its first sector; a zero cluster there is
// the conventional marker for "parent is root".
func (v *Volume) Ascend(dir *DirectoryCursor) error {
	if v.isRoot(dir) {
		return nil
	}

	var buf [SectorSize]byte
	if err := v.readSector(v.clusterFirstSector(dir.Cluster), buf[:]); err != nil {
		return checkpoint.From(err)
	}

	dotDot := buf[entrySize : 2*entrySize]
	parent := uint32(binary.LittleEndian.Uint16(dotDot[20:22]))<<16 |
		uint32(binary.LittleEndian.Uint16(dotDot[26:28]))

	if parent == 0 {
		v.ResetToRoot(dir)
		return nil
	}

	dir.LongName, dir.LongPath = popSegment(dir.LongPath)
	dir.ShortName, dir.ShortPath = popSegment(dir.ShortPath)
	dir.Cluster = parent
	return nil
}

// pushSegment appends the cursor's current names onto both path strings and
// installs the entered directory's names. The root marker joins without a
// separator so paths read "~/FOO/BAR".
func pushSegment(dir *DirectoryCursor, longName, shortName string) {
	if dir.LongName == RootName {
		dir.LongPath += dir.LongName
	} else {
		dir.LongPath += "/" + dir.LongName
	}

	if dir.ShortName == RootName {
		dir.ShortPath += dir.ShortName
	} else {
		dir.ShortPath += "/" + dir.ShortName
	}

	dir.LongName = longName
	dir.ShortName = shortName
}

// popSegment splits the last segment off a path, returning the segment and
// the shortened path. It is the exact inverse of pushSegment.
func popSegment(path string) (segment, rest string) {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:], path[:i]
	}
	return path, ""
}
