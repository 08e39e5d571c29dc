package leave

import (
	"testing"
	"time"
)

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed.UTC()
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day", "2026-03-02", "2026-03-02", 1},
		{"three days", "2026-03-02", "2026-03-04", 3},
		{"across month boundary", "2026-02-27", "2026-03-02", 4},
		{"leap february", "2024-02-28", "2024-03-01", 3},
		{"inverted", "2026-03-04", "2026-03-02", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InclusiveDays(mustDay(t, tt.start), mustDay(t, tt.end))
			if got != tt.want {
				t.Errorf("InclusiveDays(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2026-03-01", "2026-03-03", "2026-03-05", "2026-03-07", false},
		{"disjoint after", "2026-03-05", "2026-03-07", "2026-03-01", "2026-03-03", false},
		{"shared boundary day", "2026-03-01", "2026-03-03", "2026-03-03", "2026-03-05", true},
		{"contained", "2026-03-01", "2026-03-10", "2026-03-04", "2026-03-05", true},
		{"identical", "2026-03-01", "2026-03-03", "2026-03-01", "2026-03-03", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(mustDay(t, tt.aStart), mustDay(t, tt.aEnd), mustDay(t, tt.bStart), mustDay(t, tt.bEnd))
			if got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntitlementKey(t *testing.T) {
	key, ok := EntitlementKey("Casual Leave")
	if !ok || key != "casualLeave" {
		t.Errorf("EntitlementKey(Casual Leave) = %q, %v", key, ok)
	}

	if _, ok := EntitlementKey("Sabbatical"); ok {
		t.Error("expected unknown leave type to miss")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Rejected"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "approved", "Cancelled"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}
