// Package checkpoint decorates errors with the file and line of the call site,
// building up something similar to a stack trace while the error travels up.
// Every error attached to a checkpoint stays visible to errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From wraps err in a new checkpoint carrying the caller's position.
// A nil err results in nil.
func From(err error) error {
	// io.EOF and io.ErrUnexpectedEOF have to survive untouched,
	// https://github.com/golang/go/issues/39155
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return err
	}

	if err == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)

	return &checkpoint{
		err:      err,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

// Wrap adds a checkpoint on top of prev and attaches err as an additional
// description of this checkpoint. It returns nil if prev is nil, so call
// sites can wrap unconditionally:
//  func mount() error {
//  	err := readBootSector()
//  	return checkpoint.Wrap(err, ErrNotBootSector)
//  }
// Afterwards both the original error and ErrNotBootSector match via errors.Is.
func Wrap(prev, err error) error {
	if prev == io.EOF {
		return io.EOF
	}

	if prev == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)

	return &checkpoint{
		err:      err,
		prev:     prev,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func (c *checkpoint) Error() string {
	position := "unknown"
	if c.callerOk {
		position = fmt.Sprintf("%s:%d", c.file, c.line)
	}

	if c.prev == nil {
		return fmt.Sprintf("%s: %v", position, c.err)
	}

	prev := c.prev.Error()
	if _, ok := c.prev.(*checkpoint); !ok {
		prev = strings.ReplaceAll(prev, "\n", "\n\t")
	}

	if c.err == nil {
		return fmt.Sprintf("%s\n%v", position, prev)
	}

	return fmt.Sprintf("%s: %v\n%v", position, c.err, prev)
}

func (c *checkpoint) Unwrap() error {
	return c.prev
}

func (c *checkpoint) Is(target error) bool {
	return errors.Is(c.err, target)
}

func (c *checkpoint) As(target interface{}) bool {
	return errors.As(c.err, target)
}
