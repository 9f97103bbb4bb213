package dates_test

import (
	"testing"
	"time"

	"healthease/internal/dates"
)

func TestParseDMY(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"25/12/2099", time.Date(2099, time.December, 25, 0, 0, 0, 0, time.Local)},
		{"01/12/2025", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.Local)},
		{"09/06/2025", time.Date(2025, time.June, 9, 0, 0, 0, 0, time.Local)},
		// out-of-range day/month normalize forward, same as the dates
		// were always reconstructed
		{"31/04/2025", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := dates.ParseDMY(tt.in)
		if err != nil {
			t.Fatalf("ParseDMY(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDMY(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDMYRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"1/2/2025",
		"25-12-2099",
		"25/12/99",
		"aa/bb/cccc",
		"25/12/2099/1",
	} {
		if _, err := dates.ParseDMY(in); err == nil {
			t.Fatalf("ParseDMY(%q) succeeded, want error", in)
		}
	}
}

func TestFormatDMY(t *testing.T) {
	got := dates.FormatDMY(time.Date(2025, time.December, 1, 15, 4, 5, 0, time.Local))
	if got != "01/12/2025" {
		t.Fatalf("got %q, want 01/12/2025", got)
	}
}

func TestDayOf(t *testing.T) {
	in := time.Date(2025, time.June, 10, 23, 59, 59, 123, time.Local)
	got := dates.DayOf(in)
	want := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
