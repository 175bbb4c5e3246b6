package inference

import (
	"testing"
	"time"
)

func TestParsePostedDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	if got := ParsePostedDate("", now); !got.Equal(now) {
		t.Errorf("empty string = %v, want now", got)
	}

	if got := ParsePostedDate("3 days ago", now); !got.Equal(now.Add(-24*time.Hour)) {
		t.Errorf("relative date = %v, want now minus one day", got)
	}

	if got := ParsePostedDate("not a date at all", now); !got.Equal(now) {
		t.Errorf("malformed string = %v, want now", got)
	}

	got := ParsePostedDate("2025-06-10T08:30:00Z", now)
	want := time.Date(2025, time.June, 10, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("iso with Z = %v, want %v", got, want)
	}

	got = ParsePostedDate("2025-06-10", now)
	want = time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("iso date = %v, want %v", got, want)
	}
}
