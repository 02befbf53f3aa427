package reservations

import (
	"context"
	"time"

	"hotelier/internal/app/queries"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/pricing"
	domainreservation "hotelier/internal/domain/reservation"
)

const cancellationQuoteKey = "reservation.cancellation_quote"

type CancellationQuoteQuery struct {
	ReservationID string
	Initiator     string
}

func (q CancellationQuoteQuery) Key() string { return cancellationQuoteKey }

type CancellationQuoteResult struct {
	CanCancel bool   `json:"can_cancel"`
	FeeCents  int64  `json:"fee_cents"`
	Policy    string `json:"policy"`
}

// CancellationQuoteHandler previews the cancellation outcome without
// mutating anything. Lookup or pricing failures propagate to the caller;
// they are never silently turned into a free quote.
type CancellationQuoteHandler struct {
	UoWFactory uow.UoWFactory
	Policies   PolicySet
	Pricing    pricing.Calculator
	Clock      func() time.Time
}

func (h *CancellationQuoteHandler) Handle(ctx context.Context, q CancellationQuoteQuery) (*CancellationQuoteResult, error) {
	policy, err := h.Policies.ForInitiator(q.Initiator)
	if err != nil {
		return nil, err
	}
	now := clockFunc(h.Clock).now()

	var result *CancellationQuoteResult
	err = runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(q.ReservationID))
		if err != nil {
			return err
		}
		rm, err := unit.Rooms().ByNumber(ctx, res.Room)
		if err != nil {
			return err
		}
		quote := &CancellationQuoteResult{
			CanCancel: policy.CanCancel(res.Status),
			Policy:    policy.Describe(),
		}
		if quote.CanCancel {
			cost := h.Pricing.TotalCost(res, rm)
			quote.FeeCents = policy.Fee(cost.Total, res.Range.DaysUntilArrival(now)).Cents
		}
		result = quote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ queries.Handler[CancellationQuoteQuery, *CancellationQuoteResult] = (*CancellationQuoteHandler)(nil)
