package daterange

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, checkIn, checkOut time.Time) DateRange {
	t.Helper()
	dr, err := New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", checkIn, checkOut, err)
	}
	return dr
}

func TestNewRejectsInvertedRange(t *testing.T) {
	if _, err := New(day(10), day(10)); err == nil {
		t.Error("zero-night range accepted")
	}
	if _, err := New(day(10), day(5)); err == nil {
		t.Error("inverted range accepted")
	}
	if _, err := New(time.Time{}, day(5)); err == nil {
		t.Error("zero check-in accepted")
	}
}

func TestNights(t *testing.T) {
	dr := mustRange(t, day(10), day(14))
	if got := dr.Nights(); got != 4 {
		t.Errorf("Nights() = %d, want 4", got)
	}
}

func TestNewTruncatesToWholeDays(t *testing.T) {
	dr := mustRange(t, day(10).Add(15*time.Hour), day(14).Add(11*time.Hour))
	if !dr.CheckIn.Equal(day(10)) || !dr.CheckOut.Equal(day(14)) {
		t.Errorf("range not truncated to midnight: %v", dr)
	}
	if got := dr.Nights(); got != 4 {
		t.Errorf("Nights() with clock times = %d, want 4", got)
	}

	// a stay entirely inside one day collapses to zero nights and is invalid
	if _, err := New(day(10).Add(10*time.Hour), day(10).Add(18*time.Hour)); err == nil {
		t.Error("same-day range accepted")
	}
}

func TestConflictsIgnoresClockTime(t *testing.T) {
	held := mustRange(t, day(10), day(14))
	lateArrival := mustRange(t, day(14).Add(10*time.Hour), day(16))
	if !held.Conflicts(lateArrival) {
		t.Error("10:00 check-in on the checkout day should still conflict")
	}
}

func TestConflictsBoundariesAreInclusive(t *testing.T) {
	held := mustRange(t, day(10), day(14))

	cases := []struct {
		name      string
		candidate DateRange
		want      bool
	}{
		{"identical", mustRange(t, day(10), day(14)), true},
		{"nested inside", mustRange(t, day(11), day(13)), true},
		{"spans entirely", mustRange(t, day(8), day(16)), true},
		{"overlaps start", mustRange(t, day(8), day(11)), true},
		{"overlaps end", mustRange(t, day(13), day(16)), true},
		{"check-in on checkout day", mustRange(t, day(14), day(16)), true},
		{"checkout on check-in day", mustRange(t, day(8), day(10)), true},
		{"gap after", mustRange(t, day(15), day(17)), false},
		{"gap before", mustRange(t, day(5), day(9)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := held.Conflicts(tc.candidate); got != tc.want {
				t.Errorf("Conflicts(%v) = %v, want %v", tc.candidate, got, tc.want)
			}
			if got := tc.candidate.Conflicts(held); got != tc.want {
				t.Errorf("Conflicts is not symmetric for %v", tc.candidate)
			}
		})
	}
}

func TestOverlapsAllowsSameDayTurnover(t *testing.T) {
	held := mustRange(t, day(10), day(14))
	touching := mustRange(t, day(14), day(16))
	if held.Overlaps(touching) {
		t.Error("half-open overlap should permit back-to-back stays")
	}
	if !held.Overlaps(mustRange(t, day(13), day(16))) {
		t.Error("real overlap missed")
	}
}

func TestContainsDate(t *testing.T) {
	dr := mustRange(t, day(10), day(14))
	if !dr.ContainsDate(day(10)) {
		t.Error("check-in day should be contained")
	}
	if dr.ContainsDate(day(14)) {
		t.Error("checkout day should not be contained")
	}
}

func TestDaysUntilArrival(t *testing.T) {
	dr := mustRange(t, day(10), day(14))

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"a week out", day(3), 7},
		{"same day, early morning", day(10).Add(2 * time.Hour), 0},
		{"day before, late evening", day(9).Add(23 * time.Hour), 1},
		{"after arrival", day(12), -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dr.DaysUntilArrival(tc.now); got != tc.want {
				t.Errorf("DaysUntilArrival(%v) = %d, want %d", tc.now, got, tc.want)
			}
		})
	}
}
