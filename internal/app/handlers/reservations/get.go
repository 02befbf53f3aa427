package reservations

import (
	"context"
	"time"

	"hotelier/internal/app/queries"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/pricing"
	domainreservation "hotelier/internal/domain/reservation"
)

const getReservationKey = "reservation.get"

type GetReservationQuery struct {
	ReservationID string
}

func (q GetReservationQuery) Key() string { return getReservationKey }

type AddOnView struct {
	Description string `json:"description"`
	CostCents   int64  `json:"cost_cents"`
}

type CancellationView struct {
	Initiator string    `json:"initiator"`
	FeeCents  int64     `json:"fee_cents"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

type ReservationView struct {
	ID           string            `json:"id"`
	RoomNumber   int               `json:"room_number"`
	GuestID      string            `json:"guest_id"`
	CheckIn      time.Time         `json:"check_in"`
	CheckOut     time.Time         `json:"check_out"`
	Nights       int               `json:"nights"`
	Status       string            `json:"status"`
	AddOns       []AddOnView       `json:"add_ons,omitempty"`
	TotalCents   int64             `json:"total_cents"`
	Cancellation *CancellationView `json:"cancellation,omitempty"`
}

type GetReservationHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    pricing.Calculator
}

func (h *GetReservationHandler) Handle(ctx context.Context, q GetReservationQuery) (*ReservationView, error) {
	var view *ReservationView
	err := runInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(q.ReservationID))
		if err != nil {
			return err
		}
		rm, err := unit.Rooms().ByNumber(ctx, res.Room)
		if err != nil {
			return err
		}
		cost := h.Pricing.TotalCost(res, rm)
		view = &ReservationView{
			ID:         string(res.ID),
			RoomNumber: int(res.Room),
			GuestID:    string(res.GuestID),
			CheckIn:    res.Range.CheckIn,
			CheckOut:   res.Range.CheckOut,
			Nights:     res.Range.Nights(),
			Status:     string(res.Status),
			TotalCents: cost.Total.Cents,
		}
		for _, addOn := range res.AddOns {
			view.AddOns = append(view.AddOns, AddOnView{
				Description: addOn.Description(),
				CostCents:   addOn.Cost().Cents,
			})
		}
		if res.Cancellation != nil {
			view.Cancellation = &CancellationView{
				Initiator: res.Cancellation.Initiator,
				FeeCents:  res.Cancellation.Fee.Cents,
				Reason:    res.Cancellation.Reason,
				At:        res.Cancellation.At,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

var _ queries.Handler[GetReservationQuery, *ReservationView] = (*GetReservationHandler)(nil)
