package cache

import (
	"testing"
	"time"

	"github.com/thingsctl/thingsctl/thingsctl"
)

func TestTimestampToTime(t *testing.T) {
	// 0 in database time is the 2001-01-01 reference date.
	got := timestampToTime(0)
	if !got.Equal(referenceDate) {
		t.Errorf("expected reference date, got %v", got)
	}

	// One day of seconds past the reference.
	got = timestampToTime(86400)
	want := time.Date(2001, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestReferenceDateRoundTrip(t *testing.T) {
	for _, days := range []int64{0, 1, 365, 9000} {
		date := referenceDateToTime(days)
		if got := daysSinceReference(date); got != days {
			t.Errorf("days %d: round trip gave %d", days, got)
		}
	}
}

func TestReferenceDateKnownValue(t *testing.T) {
	// 2026-03-11 is 9200 days after 2001-01-01.
	date := time.Date(2026, time.March, 11, 15, 4, 5, 0, time.UTC)
	if got := daysSinceReference(date); got != 9200 {
		t.Errorf("expected 9200, got %d", got)
	}
}

func TestIntToStatus(t *testing.T) {
	cases := []struct {
		in   int
		want thingsctl.Status
	}{
		{0, thingsctl.StatusOpen},
		{2, thingsctl.StatusCanceled},
		{3, thingsctl.StatusCompleted},
	}
	for _, tc := range cases {
		if got := intToStatus(tc.in); got != tc.want {
			t.Errorf("status %d: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
