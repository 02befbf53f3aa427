package reservations

import (
	"context"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/outbox"
	"hotelier/internal/app/uow"
	domainreservation "hotelier/internal/domain/reservation"
)

const confirmPaymentKey = "reservation.confirm_payment"

type ConfirmPaymentCommand struct {
	ReservationID string
}

func (c ConfirmPaymentCommand) Key() string { return confirmPaymentKey }

type ConfirmPaymentResult struct {
	Status string `json:"status"`
}

type ConfirmPaymentHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      func() time.Time
}

func (h *ConfirmPaymentHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*ConfirmPaymentResult, error) {
	now := clockFunc(h.Clock).now()
	var result *ConfirmPaymentResult
	err := runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
		if err != nil {
			return err
		}
		if err := res.ConfirmPayment(now); err != nil {
			return err
		}
		if err := unit.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := drainEvents(ctx, h.Outbox, h.Encoder, res); err != nil {
			return err
		}
		result = &ConfirmPaymentResult{Status: string(res.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[ConfirmPaymentCommand, *ConfirmPaymentResult] = (*ConfirmPaymentHandler)(nil)
