package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBack(t *testing.T) {
	if IsValid("") || IsValid("Not/AZone") {
		t.Fatalf("expected invalid zones to be rejected")
	}
	loc := Location("Not/AZone")
	if loc == nil {
		t.Fatalf("expected fallback location")
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("UTC", "2026-10-20", "18:45")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 10, 20, 18, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}

	if _, err := ParseDateTime("UTC", "2026-10-20", "25:00"); err == nil {
		t.Fatalf("expected invalid clock to fail")
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 4, 17, 30, 12, 5, time.UTC)
	got := StartOfDay(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Day() != 4 {
		t.Fatalf("unexpected start of day %s", got)
	}
}
