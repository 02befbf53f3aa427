package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainguest "hotelier/internal/domain/guest"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newReservation(t *testing.T, roomNumber int, from, to int) *domainreservation.Reservation {
	t.Helper()
	dr, err := daterange.New(day(from), day(to))
	if err != nil {
		t.Fatal(err)
	}
	res, err := domainreservation.New(domainreservation.CreateParams{
		Room:      domainroom.Number(roomNumber),
		GuestID:   "g-1",
		Range:     dr,
		CreatedAt: day(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestReservationSaveAssignsIdentity(t *testing.T) {
	repo := NewReservationRepository()
	res := newReservation(t, 101, 10, 14)
	if err := repo.Save(context.Background(), res); err != nil {
		t.Fatal(err)
	}
	if res.ID == "" {
		t.Error("Save left the id blank")
	}
	if res.Version != 1 {
		t.Errorf("version after save = %d, want 1", res.Version)
	}
}

func TestReservationUpdateRejectsStaleVersion(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()
	res := newReservation(t, 101, 10, 14)
	if err := repo.Save(ctx, res); err != nil {
		t.Fatal(err)
	}

	first, err := repo.ByID(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.ByID(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := first.ConfirmPayment(day(2)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Update(ctx, first); err != nil {
		t.Fatal(err)
	}

	if err := second.CheckIn(day(10)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Update(ctx, second); !errors.Is(err, fault.ErrConflict) {
		t.Errorf("stale update error = %v, want conflict", err)
	}
}

func TestReservationForRoomSortsByCheckIn(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()
	late := newReservation(t, 101, 20, 24)
	early := newReservation(t, 101, 5, 8)
	other := newReservation(t, 202, 10, 14)
	for _, res := range []*domainreservation.Reservation{late, early, other} {
		if err := repo.Save(ctx, res); err != nil {
			t.Fatal(err)
		}
	}

	held, err := repo.ForRoom(ctx, 101)
	if err != nil {
		t.Fatal(err)
	}
	if len(held) != 2 {
		t.Fatalf("reservations for room 101 = %d, want 2", len(held))
	}
	if !held[0].Range.CheckIn.Before(held[1].Range.CheckIn) {
		t.Error("reservations not ordered by check-in")
	}
}

func TestReservationReadsAreIsolated(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()
	res := newReservation(t, 101, 10, 14)
	if err := repo.Save(ctx, res); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.ByID(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	loaded.Status = domainreservation.StatusCancelled

	reloaded, err := repo.ByID(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Status != domainreservation.StatusNew {
		t.Error("mutating a loaded copy leaked into the store")
	}
}

func TestRoomRepository(t *testing.T) {
	repo := NewRoomRepository()
	ctx := context.Background()

	if _, err := repo.ByNumber(ctx, 101); !errors.Is(err, fault.ErrNotFound) {
		t.Errorf("missing room error = %v, want not-found", err)
	}

	rm, err := domainroom.New(101, "standard", money.Must(20000), day(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, rm); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetOccupancy(ctx, 101, domainroom.OccupancyOccupied); err != nil {
		t.Fatal(err)
	}
	loaded, err := repo.ByNumber(ctx, 101)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Occupancy != domainroom.OccupancyOccupied {
		t.Errorf("occupancy = %s", loaded.Occupancy)
	}

	if err := repo.SetOccupancy(ctx, 999, domainroom.OccupancyVacant); !errors.Is(err, fault.ErrNotFound) {
		t.Errorf("SetOccupancy on missing room = %v, want not-found", err)
	}
}

func TestGuestRepositoryEmailIndex(t *testing.T) {
	repo := NewGuestRepository()
	ctx := context.Background()

	g, err := domainguest.New("Anna", "Kowalska", "anna@example.com", day(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, g); err != nil {
		t.Fatal(err)
	}
	if g.ID == "" {
		t.Error("Save left guest id blank")
	}

	found, err := repo.ByEmail(ctx, "ANNA@example.COM")
	if err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if found.ID != g.ID {
		t.Errorf("lookup returned %s, want %s", found.ID, g.ID)
	}

	if err := found.ChangeEmail("anna.k@example.com", day(2)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, found); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ByEmail(ctx, "anna@example.com"); !errors.Is(err, fault.ErrNotFound) {
		t.Error("old email still resolves after change")
	}
	if _, err := repo.ByEmail(ctx, "anna.k@example.com"); err != nil {
		t.Errorf("new email lookup failed: %v", err)
	}
}
