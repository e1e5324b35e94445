package options

import (
	"testing"
	"time"
)

func TestParseDue(t *testing.T) {
	now := time.Date(2024, time.December, 5, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"2024-2-28", "2024-02-28"},
		{"2025-03-01", "2025-03-01"},
		{"12/25", "2024-12-25"},
		{"12/5", "2024-12-05"},
		{"1/3", "2025-01-03"},
	}
	for _, tc := range cases {
		got, err := ParseDue(tc.in, now)
		if err != nil {
			t.Errorf("ParseDue(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := ParseDue("tomorrow", now); err == nil {
		t.Error("expected error for tomorrow")
	}
}

func TestFormPassesUnparsedDueThrough(t *testing.T) {
	o := TaskFormOptions{Due: "soon", Tags: "a, b"}
	f := o.Form("Title", time.Now())
	if f.DueDate != "soon" || f.Tags != "a, b" || f.Title != "Title" {
		t.Fatalf("unexpected form %+v", f)
	}
}

func TestGetMonth(t *testing.T) {
	o := MonthOptions{Month: "2024-5"}
	got, err := o.GetMonth()
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2024 || got.Month() != time.May || got.Day() != 1 {
		t.Fatalf("unexpected month %v", got)
	}
	if got, _ := (&MonthOptions{}).GetMonth(); !got.IsZero() {
		t.Fatalf("expected zero time, got %v", got)
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap("one two three", 8); got != "one two\nthree" {
		t.Fatalf("Wrap = %q", got)
	}
}
