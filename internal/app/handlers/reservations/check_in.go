package reservations

import (
	"context"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/outbox"
	"hotelier/internal/app/uow"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
)

const checkInKey = "reservation.check_in"

type CheckInCommand struct {
	ReservationID string
}

func (c CheckInCommand) Key() string { return checkInKey }

type CheckInResult struct {
	Status string `json:"status"`
}

// CheckInHandler moves the reservation to CHECKED_IN and marks the room
// occupied. Both writes happen inside one unit of work.
type CheckInHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *CheckInHandler) Handle(ctx context.Context, cmd CheckInCommand) (*CheckInResult, error) {
	now := clockFunc(h.Clock).now()
	var result *CheckInResult
	err := runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
		if err != nil {
			return err
		}
		if err := res.CheckIn(now); err != nil {
			return err
		}
		if err := unit.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := unit.Rooms().SetOccupancy(ctx, res.Room, domainroom.OccupancyOccupied); err != nil {
			return err
		}
		if err := drainEvents(ctx, h.Outbox, h.Encoder, res); err != nil {
			return err
		}
		result = &CheckInResult{Status: string(res.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[CheckInCommand, *CheckInResult] = (*CheckInHandler)(nil)
