package helpers

import (
	"testing"
	"time"
)

func TestWindowStartDefaultMonths(t *testing.T) {
	start, err := WindowStart(12, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Now().AddDate(0, -12, 0)
	if start.Sub(expected) > time.Minute || expected.Sub(start) > time.Minute {
		t.Fatalf("expected roughly 12 months back, got %v", start)
	}
}

func TestWindowStartExplicitTimestamp(t *testing.T) {
	start, err := WindowStart(12, "2026-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.UTC().Format(time.RFC3339) != "2026-01-01T00:00:00Z" {
		t.Fatalf("unexpected start %v", start)
	}
}

func TestWindowStartRelativeExpression(t *testing.T) {
	start, err := WindowStart(12, "now-90d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Now().AddDate(0, 0, -90)
	if start.Sub(expected) > time.Hour || expected.Sub(start) > time.Hour {
		t.Fatalf("expected roughly 90 days back, got %v", start)
	}
}

func TestWindowStartRejectsFuture(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339)
	if _, err := WindowStart(12, future); err == nil {
		t.Fatal("expected a future since to be rejected")
	}
}

func TestWindowStartRejectsGarbage(t *testing.T) {
	if _, err := WindowStart(12, "not a time"); err == nil {
		t.Fatal("expected an unparseable since to be rejected")
	}
}
