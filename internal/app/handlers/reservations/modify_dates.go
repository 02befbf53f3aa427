package reservations

import (
	"context"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/outbox"
	"hotelier/internal/app/support"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/availability"
	domainreservation "hotelier/internal/domain/reservation"
	domainrange "hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
)

const modifyDatesKey = "reservation.modify_dates"

type ModifyDatesCommand struct {
	ReservationID string
	CheckIn       time.Time
	CheckOut      time.Time
}

func (c ModifyDatesCommand) Key() string { return modifyDatesKey }

type ModifyDatesResult struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// ModifyDatesHandler replaces the stay interval after re-checking
// availability with the reservation itself excluded. On conflict the
// reservation is left exactly as it was.
type ModifyDatesHandler struct {
	UoWFactory uow.UoWFactory
	Locks      *support.RoomLocks
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *ModifyDatesHandler) Handle(ctx context.Context, cmd ModifyDatesCommand) (*ModifyDatesResult, error) {
	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, fault.Validationf("reservations: %v", err)
	}
	now := clockFunc(h.Clock).now()
	if err := domainreservation.ValidateArrival(dr, now); err != nil {
		return nil, err
	}

	var result *ModifyDatesResult
	err = runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
		if err != nil {
			return err
		}
		if h.Locks != nil {
			unlock := h.Locks.Lock(res.Room)
			if !support.HoldLock(ctx, unlock) {
				defer unlock()
			}
		}

		checker := availability.Checker{Reservations: unit.Reservations()}
		free, err := checker.IsAvailable(ctx, res.Room, dr, res.ID)
		if err != nil {
			return err
		}
		if !free {
			return fault.Conflictf("reservations: room %d unavailable for new range", res.Room)
		}

		if err := res.ChangeDates(dr, now); err != nil {
			return err
		}
		if err := unit.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := drainEvents(ctx, h.Outbox, h.Encoder, res); err != nil {
			return err
		}
		result = &ModifyDatesResult{CheckIn: res.Range.CheckIn, CheckOut: res.Range.CheckOut}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[ModifyDatesCommand, *ModifyDatesResult] = (*ModifyDatesHandler)(nil)
