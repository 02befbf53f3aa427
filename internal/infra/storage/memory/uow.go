package memory

import (
	"context"
	"errors"

	"hotelier/internal/app/uow"
	domainguest "hotelier/internal/domain/guest"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	RoomRepo        domainroom.Repository
	GuestRepo       domainguest.Repository
	ReservationRepo domainreservation.Repository
}

// Begin starts a lightweight transaction boundary. No isolation is provided but
// the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.RoomRepo == nil || f.GuestRepo == nil || f.ReservationRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		rooms:        f.RoomRepo,
		guests:       f.GuestRepo,
		reservations: f.ReservationRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	rooms        domainroom.Repository
	guests       domainguest.Repository
	reservations domainreservation.Repository
}

func (u *Unit) Rooms() domainroom.Repository {
	return u.rooms
}

func (u *Unit) Guests() domainguest.Repository {
	return u.guests
}

func (u *Unit) Reservations() domainreservation.Repository {
	return u.reservations
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}

var _ uow.UoWFactory = Factory{}
