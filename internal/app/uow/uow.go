package uow

import (
	"context"

	domainguest "hotelier/internal/domain/guest"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
)

// UnitOfWork coordinates repositories inside a transaction boundary. Writes
// that must land together, such as a reservation transition paired with a
// room occupancy flip, go through one unit and commit as one.
type UnitOfWork interface {
	Rooms() domainroom.Repository
	Guests() domainguest.Repository
	Reservations() domainreservation.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
