package guests

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/infra/storage/memory"
)

func newFactory() memory.Factory {
	return memory.Factory{
		RoomRepo:        memory.NewRoomRepository(),
		GuestRepo:       memory.NewGuestRepository(),
		ReservationRepo: memory.NewReservationRepository(),
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
}

func TestRegisterGuest(t *testing.T) {
	handler := &RegisterGuestHandler{UoWFactory: newFactory(), Clock: fixedClock()}
	result, err := handler.Handle(context.Background(), RegisterGuestCommand{
		FirstName: "Anna", LastName: "Kowalska", Email: "anna@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.GuestID == "" {
		t.Error("guest id not assigned")
	}
	if result.Existing {
		t.Error("first registration flagged as existing")
	}
}

func TestRegisterGuestDedupesByEmail(t *testing.T) {
	handler := &RegisterGuestHandler{UoWFactory: newFactory(), Clock: fixedClock()}
	first, err := handler.Handle(context.Background(), RegisterGuestCommand{
		FirstName: "Anna", LastName: "Kowalska", Email: "anna@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Same address with different case and spacing maps to the same profile.
	second, err := handler.Handle(context.Background(), RegisterGuestCommand{
		FirstName: "Anna", LastName: "Kowalska", Email: "  Anna@Example.com ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Existing {
		t.Error("repeat registration should report the existing profile")
	}
	if second.GuestID != first.GuestID {
		t.Errorf("dedupe returned %s, want %s", second.GuestID, first.GuestID)
	}
}

func TestRegisterGuestValidation(t *testing.T) {
	handler := &RegisterGuestHandler{UoWFactory: newFactory(), Clock: fixedClock()}
	cases := []struct {
		name string
		cmd  RegisterGuestCommand
	}{
		{"missing name", RegisterGuestCommand{Email: "a@example.com"}},
		{"bad email", RegisterGuestCommand{FirstName: "Anna", LastName: "Kowalska", Email: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := handler.Handle(context.Background(), tc.cmd); !errors.Is(err, fault.ErrValidation) {
				t.Errorf("error = %v, want validation", err)
			}
		})
	}
}

func TestGetGuest(t *testing.T) {
	factory := newFactory()
	register := &RegisterGuestHandler{UoWFactory: factory, Clock: fixedClock()}
	created, err := register.Handle(context.Background(), RegisterGuestCommand{
		FirstName: "Jan", LastName: "Nowak", Email: "jan@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}

	get := &GetGuestHandler{UoWFactory: factory}
	view, err := get.Handle(context.Background(), GetGuestQuery{GuestID: created.GuestID})
	if err != nil {
		t.Fatal(err)
	}
	if view.FirstName != "Jan" || view.Email != "jan@example.com" {
		t.Errorf("view = %+v", view)
	}

	if _, err := get.Handle(context.Background(), GetGuestQuery{GuestID: "missing"}); !errors.Is(err, fault.ErrNotFound) {
		t.Errorf("missing guest error = %v, want not-found", err)
	}
}
