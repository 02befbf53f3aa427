package rooms

import (
	"context"
	"time"

	"hotelier/internal/app/queries"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/availability"
	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
)

const searchAvailableRoomsKey = "room.search_available"

type SearchAvailableRoomsQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (q SearchAvailableRoomsQuery) Key() string { return searchAvailableRoomsKey }

type AvailableRoomView struct {
	Number           int    `json:"number"`
	Category         string `json:"category"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
}

type SearchAvailableRoomsResult struct {
	CheckIn  time.Time           `json:"check_in"`
	CheckOut time.Time           `json:"check_out"`
	Rooms    []AvailableRoomView `json:"rooms"`
}

// SearchAvailableRoomsHandler lists rooms with no blocking reservation
// over the requested range. Occupancy state is ignored on purpose: a room
// occupied today can still take a booking for next month.
type SearchAvailableRoomsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchAvailableRoomsHandler) Handle(ctx context.Context, q SearchAvailableRoomsQuery) (*SearchAvailableRoomsResult, error) {
	candidate, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return nil, fault.Validationf("rooms: %v", err)
	}
	result := &SearchAvailableRoomsResult{
		CheckIn:  candidate.CheckIn,
		CheckOut: candidate.CheckOut,
		Rooms:    []AvailableRoomView{},
	}
	err = uow.Run(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		all, err := unit.Rooms().All(ctx)
		if err != nil {
			return err
		}
		checker := availability.Checker{Reservations: unit.Reservations()}
		for _, rm := range all {
			free, err := checker.IsAvailable(ctx, rm.Number, candidate, "")
			if err != nil {
				return err
			}
			if !free {
				continue
			}
			result.Rooms = append(result.Rooms, AvailableRoomView{
				Number:           int(rm.Number),
				Category:         rm.Category,
				NightlyRateCents: rm.NightlyRate.Cents,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ queries.Handler[SearchAvailableRoomsQuery, *SearchAvailableRoomsResult] = (*SearchAvailableRoomsHandler)(nil)
