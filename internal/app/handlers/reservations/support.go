package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelier/internal/app/uow"
	domainreservation "hotelier/internal/domain/reservation"
	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

var ErrUnitOfWorkRequired = errors.New("reservations: unit of work required")

// runInUnit executes fn inside the ambient unit of work when the transaction
// middleware provided one, or opens a short-lived unit otherwise.
func runInUnit(ctx context.Context, factory uow.UoWFactory, fn func(ctx context.Context, unit uow.UnitOfWork) error) error {
	if _, ok := uow.FromContext(ctx); !ok && factory == nil {
		return ErrUnitOfWorkRequired
	}
	return uow.Run(ctx, factory, fn)
}

// AddOnSpec is the transport shape for a requested add-on.
type AddOnSpec struct {
	Kind           string `json:"kind"`
	DailyRateCents int64  `json:"daily_rate_cents"`
	Days           int    `json:"days"`
}

const (
	addOnBreakfast = "breakfast"
	addOnParking   = "parking"
)

func buildAddOns(specs []AddOnSpec) ([]domainreservation.AddOn, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]domainreservation.AddOn, 0, len(specs))
	for _, spec := range specs {
		rate := money.Money{Cents: spec.DailyRateCents}
		switch strings.ToLower(strings.TrimSpace(spec.Kind)) {
		case addOnBreakfast:
			addOn, err := domainreservation.NewBreakfast(rate, spec.Days)
			if err != nil {
				return nil, err
			}
			out = append(out, addOn)
		case addOnParking:
			addOn, err := domainreservation.NewParking(rate, spec.Days)
			if err != nil {
				return nil, err
			}
			out = append(out, addOn)
		default:
			return nil, fault.Validationf("reservations: unknown add-on kind %q", spec.Kind)
		}
	}
	return out, nil
}

type clockFunc func() time.Time

func (f clockFunc) now() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f().UTC()
}
