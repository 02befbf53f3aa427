package availability

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/daterange"
)

type stubReservations struct {
	reservation.Repository
	items []*reservation.Reservation
}

func (s stubReservations) ForRoom(ctx context.Context, number room.Number) ([]*reservation.Reservation, error) {
	return s.items, nil
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func held(t *testing.T, id string, status reservation.Status, from, to int) *reservation.Reservation {
	t.Helper()
	dr, err := daterange.New(day(from), day(to))
	if err != nil {
		t.Fatal(err)
	}
	return &reservation.Reservation{ID: reservation.ReservationID(id), Room: 101, Range: dr, Status: status}
}

func TestIsAvailable(t *testing.T) {
	repo := stubReservations{items: []*reservation.Reservation{
		held(t, "r-1", reservation.StatusConfirmed, 10, 14),
		held(t, "r-2", reservation.StatusCancelled, 16, 20),
		held(t, "r-3", reservation.StatusCheckedOut, 2, 6),
	}}
	checker := Checker{Reservations: repo}

	cases := []struct {
		name     string
		from, to int
		exclude  string
		want     bool
	}{
		{"clear gap", 21, 25, "", true},
		{"conflicts with confirmed stay", 12, 16, "", false},
		{"touching boundary conflicts", 14, 16, "", false},
		{"cancelled stay does not block", 16, 20, "", true},
		{"checked-out stay does not block", 2, 6, "", true},
		{"own reservation is excluded", 10, 14, "r-1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate, err := daterange.New(day(tc.from), day(tc.to))
			if err != nil {
				t.Fatal(err)
			}
			got, err := checker.IsAvailable(context.Background(), 101, candidate, reservation.ReservationID(tc.exclude))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("IsAvailable(%d-%d, exclude %q) = %v, want %v", tc.from, tc.to, tc.exclude, got, tc.want)
			}
		})
	}
}
