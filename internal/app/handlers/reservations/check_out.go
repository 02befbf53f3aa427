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

const checkOutKey = "reservation.check_out"

type CheckOutCommand struct {
	ReservationID string
}

func (c CheckOutCommand) Key() string { return checkOutKey }

type CheckOutResult struct {
	Status string `json:"status"`
}

// CheckOutHandler ends the stay. The room goes to CLEANING rather than
// straight back to VACANT; housekeeping releases it later.
type CheckOutHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *CheckOutHandler) Handle(ctx context.Context, cmd CheckOutCommand) (*CheckOutResult, error) {
	now := clockFunc(h.Clock).now()
	var result *CheckOutResult
	err := runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
		if err != nil {
			return err
		}
		if err := res.CheckOut(now); err != nil {
			return err
		}
		if err := unit.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := unit.Rooms().SetOccupancy(ctx, res.Room, domainroom.OccupancyCleaning); err != nil {
			return err
		}
		if err := drainEvents(ctx, h.Outbox, h.Encoder, res); err != nil {
			return err
		}
		result = &CheckOutResult{Status: string(res.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[CheckOutCommand, *CheckOutResult] = (*CheckOutHandler)(nil)
