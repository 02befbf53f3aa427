package pricing

import (
	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/money"
)

type StayCost struct {
	Nights      int
	Nightly     money.Money
	AddOns      money.Money
	Total       money.Money
	Descriptors []string
}

// Calculator prices a stay: nights × nightly rate, plus each add-on's flat
// cost. Add-on cost is never folded into the nightly rate.
type Calculator struct{}

// TotalCost computes the full price of a reservation on the given room. A
// reservation without a room or a valid range prices to zero; creation-time
// validation keeps that path out of normal flow.
func (Calculator) TotalCost(res *reservation.Reservation, rm *room.Room) StayCost {
	if res == nil || rm == nil {
		return StayCost{}
	}
	if err := res.Range.Validate(); err != nil {
		return StayCost{}
	}
	nights := res.Range.Nights()
	total := rm.NightlyRate.Multiply(int64(nights))
	cost := StayCost{
		Nights:  nights,
		Nightly: rm.NightlyRate,
	}
	for _, addOn := range res.AddOns {
		cost.AddOns = cost.AddOns.Add(addOn.Cost())
		cost.Descriptors = append(cost.Descriptors, addOn.Description())
	}
	cost.Total = total.Add(cost.AddOns)
	return cost
}
