package availability

import (
	"context"

	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/daterange"
)

// Checker answers whether a room is free over a candidate range. It is a
// pure query; callers validate room existence before asking.
type Checker struct {
	Reservations reservation.Repository
}

// IsAvailable scans the room's reservations for a boundary-inclusive
// conflict, skipping cancelled and checked-out stays. excludeID ignores the
// reservation under modification.
func (c Checker) IsAvailable(ctx context.Context, number room.Number, candidate daterange.DateRange, excludeID reservation.ReservationID) (bool, error) {
	existing, err := c.Reservations.ForRoom(ctx, number)
	if err != nil {
		return false, err
	}
	for _, res := range existing {
		if excludeID != "" && res.ID == excludeID {
			continue
		}
		if !res.Status.Blocks() {
			continue
		}
		if res.Range.Conflicts(candidate) {
			return false, nil
		}
	}
	return true, nil
}
