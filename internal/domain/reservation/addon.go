package reservation

import (
	"fmt"

	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

var (
	ErrAddOnDays = fault.Validationf("reservation: add-on day count must be positive")
	ErrAddOnRate = fault.Validationf("reservation: add-on daily rate must be non-negative")
)

// AddOn is a paid extra owned by its reservation. The cost already accounts
// for the add-on's own day count; it is never multiplied by the night count.
type AddOn interface {
	Cost() money.Money
	Description() string
}

type Breakfast struct {
	DailyRate money.Money
	Days      int
}

func NewBreakfast(dailyRate money.Money, days int) (Breakfast, error) {
	if err := validateAddOn(dailyRate, days); err != nil {
		return Breakfast{}, err
	}
	return Breakfast{DailyRate: dailyRate, Days: days}, nil
}

func (b Breakfast) Cost() money.Money {
	return b.DailyRate.Multiply(int64(b.Days))
}

func (b Breakfast) Description() string {
	return fmt.Sprintf("breakfast, %d days at %d", b.Days, b.DailyRate.Cents)
}

type Parking struct {
	DailyRate money.Money
	Days      int
}

func NewParking(dailyRate money.Money, days int) (Parking, error) {
	if err := validateAddOn(dailyRate, days); err != nil {
		return Parking{}, err
	}
	return Parking{DailyRate: dailyRate, Days: days}, nil
}

func (p Parking) Cost() money.Money {
	return p.DailyRate.Multiply(int64(p.Days))
}

func (p Parking) Description() string {
	return fmt.Sprintf("parking, %d days at %d", p.Days, p.DailyRate.Cents)
}

func validateAddOn(dailyRate money.Money, days int) error {
	if days <= 0 {
		return ErrAddOnDays
	}
	if dailyRate.Cents < 0 {
		return ErrAddOnRate
	}
	return nil
}
