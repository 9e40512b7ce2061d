package fatnav

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "epoch",
			input: 1<<5 | 1, // 01/01/1980
			want:  time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "typical",
			input: 44<<9 | 8<<5 | 23, // 23/08/2024
			want:  time.Date(2024, 8, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day zero is invalid",
			input: 44<<9 | 8<<5 | 0,
			want:  time.Time{},
		},
		{
			name:  "month zero is invalid",
			input: 44<<9 | 0<<5 | 23,
			want:  time.Time{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseDate(%#x) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "midnight",
			input: 0,
			want:  time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "typical",
			input: 13<<11 | 37<<5 | 21, // 13:37:42
			want:  time.Date(1, 1, 1, 13, 37, 42, 0, time.UTC),
		},
		{
			name:  "latest valid",
			input: 23<<11 | 59<<5 | 29, // 23:59:58
			want:  time.Date(1, 1, 1, 23, 59, 58, 0, time.UTC),
		},
		{
			name:  "overflow clamps",
			input: 23<<11 | 63<<5 | 31, // invalid minutes and seconds
			want:  time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTime(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseTime(%#x) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEntryHeader_Modified(t *testing.T) {
	header := EntryHeader{
		WriteDate: 44<<9 | 8<<5 | 23,
		WriteTime: 13<<11 | 37<<5 | 21,
	}

	want := time.Date(2024, 8, 23, 13, 37, 42, 0, time.UTC)
	if got := header.Modified(); !got.Equal(want) {
		t.Errorf("Modified() = %v, want %v", got, want)
	}

	invalid := EntryHeader{WriteDate: 0, WriteTime: 13 << 11}
	if got := invalid.Modified(); !got.IsZero() {
		t.Errorf("Modified() with invalid date = %v, want zero time", got)
	}
}
