package reservations

import (
	"context"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/middleware"
	"hotelier/internal/app/outbox"
	"hotelier/internal/app/support"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/availability"
	domainguest "hotelier/internal/domain/guest"
	"hotelier/internal/domain/pricing"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
	domainrange "hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
)

const bookReservationKey = "reservation.book"

type BookReservationCommand struct {
	RoomNumber      int
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	AddOns          []AddOnSpec
	IdempotencyKeyV string
}

func (c BookReservationCommand) Key() string { return bookReservationKey }

func (c BookReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c BookReservationCommand) ResultPrototype() any { return &BookReservationResult{} }

type BookReservationResult struct {
	ReservationID string `json:"reservation_id"`
	TotalCents    int64  `json:"total_cents"`
}

// BookReservationHandler creates a reservation after verifying that the
// guest and room exist and the room is free for the requested range. The
// availability check and the write happen under the room's lock so two
// concurrent requests cannot both observe a free range.
type BookReservationHandler struct {
	UoWFactory uow.UoWFactory
	Locks      *support.RoomLocks
	Pricing    pricing.Calculator
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *BookReservationHandler) Handle(ctx context.Context, cmd BookReservationCommand) (*BookReservationResult, error) {
	dr, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, fault.Validationf("reservations: %v", err)
	}
	now := clockFunc(h.Clock).now()
	if err := domainreservation.ValidateArrival(dr, now); err != nil {
		return nil, err
	}
	addOns, err := buildAddOns(cmd.AddOns)
	if err != nil {
		return nil, err
	}

	number := domainroom.Number(cmd.RoomNumber)
	if h.Locks != nil {
		unlock := h.Locks.Lock(number)
		if !support.HoldLock(ctx, unlock) {
			defer unlock()
		}
	}

	var result *BookReservationResult
	err = runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		rm, err := unit.Rooms().ByNumber(ctx, number)
		if err != nil {
			return err
		}
		if _, err := unit.Guests().ByID(ctx, domainguest.GuestID(cmd.GuestID)); err != nil {
			return err
		}

		checker := availability.Checker{Reservations: unit.Reservations()}
		free, err := checker.IsAvailable(ctx, rm.Number, dr, "")
		if err != nil {
			return err
		}
		if !free {
			return fault.Conflictf("reservations: room %d unavailable for requested range", rm.Number)
		}

		res, err := domainreservation.New(domainreservation.CreateParams{
			Room:      rm.Number,
			GuestID:   domainguest.GuestID(cmd.GuestID),
			Range:     dr,
			AddOns:    addOns,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		if err := unit.Reservations().Save(ctx, res); err != nil {
			return err
		}

		cost := h.Pricing.TotalCost(res, rm)
		res.Record(domainreservation.ReservationBooked{
			ReservationID: res.ID,
			Room:          res.Room,
			GuestID:       res.GuestID,
			Range:         res.Range,
			Total:         cost.Total,
			At:            now,
		})
		if err := drainEvents(ctx, h.Outbox, h.Encoder, res); err != nil {
			return err
		}

		result = &BookReservationResult{ReservationID: string(res.ID), TotalCents: cost.Total.Cents}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func drainEvents(ctx context.Context, box outbox.Outbox, encoder outbox.EventEncoder, res *domainreservation.Reservation) error {
	pending := res.PendingEvents()
	res.ClearEvents()
	return outbox.RecordDomainEvents(ctx, box, encoder, pending)
}

var _ commands.Handler[BookReservationCommand, *BookReservationResult] = (*BookReservationHandler)(nil)
var _ middleware.IdempotentCommand = (*BookReservationCommand)(nil)
