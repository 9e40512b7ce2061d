package fatnav

import (
	"errors"
	"strings"

	"github.com/quater/fatnav/checkpoint"
)

// ErrInvalidName rejects a name argument before any sector is touched.
var ErrInvalidName = errors.New("invalid file or directory name")

// maxNameLength is the longest name Descend and StreamFile accept.
// FAT long names are capped at 255 characters by the specification.
const maxNameLength = 255

// illegalNameCharacters are forbidden in FAT long and short names.
const illegalNameCharacters = `\/:*?"<>|`

// validateName checks a caller supplied name against the FAT naming rules.
// Validation happens before any disk access, so a bad argument never costs
// a sector read.
func validateName(name string) error {
	if name == "" {
		return checkpoint.From(ErrInvalidName)
	}

	if len(name) > maxNameLength {
		return checkpoint.From(ErrInvalidName)
	}

	if name[0] == ' ' {
		return checkpoint.From(ErrInvalidName)
	}

	if strings.TrimRight(name, " ") == "" {
		return checkpoint.From(ErrInvalidName)
	}

	if strings.ContainsAny(name, illegalNameCharacters) {
		return checkpoint.From(ErrInvalidName)
	}

	return nil
}

// shortNameString turns the fixed 11 byte 8.3 name field into its display
// form: the 8 character base right-trimmed, followed by a dot and the
// trimmed extension if the extension is not blank.
func shortNameString(raw []byte) string {
	base := strings.TrimRight(string(raw[:8]), " ")
	ext := strings.TrimRight(string(raw[8:11]), " ")

	if ext == "" {
		return base
	}

	return base + "." + ext
}
