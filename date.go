package fatnav

import (
	"time"
)

// ParseDate decodes a packed FAT date stamp, a 16 bit field relative to the
// MS-DOS epoch of 01/01/1980:
//  Bits 0-4:  day of month, valid range 1-31.
//  Bits 5-8:  month of year, 1 = January, valid range 1-12.
//  Bits 9-15: years since 1980, valid range 0-127 (1980-2107).
// The returned time always has a clock of 00:00:00 UTC.
//
// Day or month of 0 is invalid per the FAT specification, in that case the
// zero time.Time is returned so time.Time.IsZero() can be used by callers.
func ParseDate(input uint16) time.Time {
	day := input & 0x1F
	month := input & 0x1E0 >> 5
	years := input & 0xFE00 >> 9

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(1980+int(years), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a packed FAT time stamp, a 16 bit field with a
// granularity of two seconds:
//  Bits 0-4:   2 second count, valid range 0-29 (0-58 seconds).
//  Bits 5-10:  minutes, valid range 0-59.
//  Bits 11-15: hours, valid range 0-23.
// The returned time always has a date of January 1, year 1, so midnight
// satisfies time.Time.IsZero().
//
// Out of range fields would overflow into the next day; those are clamped
// to 23:59:59 instead.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := input & 0x7E0 >> 5
	hours := input & 0xF800 >> 11

	result := time.Date(1, 1, 1, int(hours), int(minutes), seconds, 0, time.UTC)

	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}

	return result
}

// combineDateTime merges a decoded date and time stamp into one time.Time.
// An invalid date makes the whole stamp invalid.
func combineDateTime(date, clock time.Time) time.Time {
	if date.IsZero() {
		return time.Time{}
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

// Created returns the entry's creation stamp, or the zero time if the
// on-disk date is invalid.
func (h *EntryHeader) Created() time.Time {
	return combineDateTime(ParseDate(h.CreateDate), ParseTime(h.CreateTime))
}

// Modified returns the entry's last write stamp, or the zero time if the
// on-disk date is invalid.
func (h *EntryHeader) Modified() time.Time {
	return combineDateTime(ParseDate(h.WriteDate), ParseTime(h.WriteTime))
}

// LastAccess returns the entry's last access date. FAT stores no time of
// day for accesses.
func (h *EntryHeader) LastAccess() time.Time {
	return ParseDate(h.LastAccessDate)
}
