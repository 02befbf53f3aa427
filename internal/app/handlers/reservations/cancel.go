package reservations

import (
	"context"
	"strings"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/outbox"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/pricing"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/fault"
)

const cancelReservationKey = "reservation.cancel"

const (
	InitiatorGuest = "guest"
	InitiatorDesk  = "desk"
)

type CancelReservationCommand struct {
	ReservationID string
	Initiator     string
	Reason        string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

type CancelReservationResult struct {
	Status   string `json:"status"`
	FeeCents int64  `json:"fee_cents"`
}

// PolicySet holds the cancellation strategies the desk can apply. The
// initiator on the command picks which one governs the attempt.
type PolicySet struct {
	Guest domainreservation.CancellationPolicy
	Desk  domainreservation.CancellationPolicy
}

func (s PolicySet) ForInitiator(initiator string) (domainreservation.CancellationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(initiator)) {
	case InitiatorGuest:
		if s.Guest == nil {
			return nil, fault.Validationf("reservations: guest policy not configured")
		}
		return s.Guest, nil
	case InitiatorDesk:
		if s.Desk == nil {
			return nil, fault.Validationf("reservations: desk policy not configured")
		}
		return s.Desk, nil
	default:
		return nil, fault.Validationf("reservations: unknown cancellation initiator %q", initiator)
	}
}

type CancelReservationHandler struct {
	UoWFactory uow.UoWFactory
	Policies   PolicySet
	Pricing    pricing.Calculator
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (*CancelReservationResult, error) {
	policy, err := h.Policies.ForInitiator(cmd.Initiator)
	if err != nil {
		return nil, err
	}
	now := clockFunc(h.Clock).now()

	var result *CancelReservationResult
	err = runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
		if err != nil {
			return err
		}
		rm, err := unit.Rooms().ByNumber(ctx, res.Room)
		if err != nil {
			return err
		}

		wasCheckedIn := res.Status == domainreservation.StatusCheckedIn
		cost := h.Pricing.TotalCost(res, rm)
		fee, err := res.Cancel(policy, cost.Total, cmd.Reason, now)
		if err != nil {
			return err
		}
		if err := unit.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if wasCheckedIn {
			if err := unit.Rooms().SetOccupancy(ctx, res.Room, domainroom.OccupancyVacant); err != nil {
				return err
			}
		}
		if err := drainEvents(ctx, h.Outbox, h.Encoder, res); err != nil {
			return err
		}
		result = &CancelReservationResult{Status: string(res.Status), FeeCents: fee.Cents}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[CancelReservationCommand, *CancelReservationResult] = (*CancelReservationHandler)(nil)
