package qa

import (
	"testing"
	"time"
)

func TestCreationDateRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	parsed, err := parseCreationDate(formatCreationDate(now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("round trip changed the instant: %v != %v", parsed, now)
	}
}

func TestParseCreationDateZonelessFallback(t *testing.T) {
	parsed, err := parseCreationDate("2025-03-14T09:26:53")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Second() != 53 {
		t.Errorf("fallback parse wrong: %v", parsed)
	}
}

func TestParseCreationDateGarbage(t *testing.T) {
	if _, err := parseCreationDate("yesterday"); err == nil {
		t.Error("expected error for unparseable input")
	}
}
