package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 7 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	if _, _, err := ParseWindow("noop"); err == nil {
		t.Fatalf("expected error for invalid window")
	}
}

func TestParseMinutes(t *testing.T) {
	tests := map[string]int{
		"":      30,
		"45":    45,
		"90m":   90,
		"2h":    120,
		"1d":    1440,
		"1h30m": 90,
		"120s":  2,
	}
	for in, want := range tests {
		got, err := ParseMinutes(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: got %d, want %d", in, got, want)
		}
	}
}

func TestParseMinutesRejects(t *testing.T) {
	if _, err := ParseMinutes("90s"); !errors.Is(err, ErrPartialMinute) {
		t.Fatalf("expected partial minute error, got %v", err)
	}
	for _, in := range []string{"0", "-5", "soon", "0m"} {
		if _, err := ParseMinutes(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2024, time.March, 8, 12, 0, 0, 0, time.UTC)
	got, err := Since(now, "1w")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
