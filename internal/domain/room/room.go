package room

import (
	"context"
	"strings"
	"time"

	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

var (
	ErrInvalidNumber   = fault.Validationf("room: number must be positive")
	ErrNegativeRate    = fault.Validationf("room: nightly rate must be non-negative")
	ErrCategoryMissing = fault.Validationf("room: category is required")
	ErrRoomNotFound    = fault.NotFoundf("room")
)

// Number is the room identity, assigned once by the administrator.
type Number int

// Occupancy tracks the physical state of the room. A checked-out room goes
// through CLEANING before housekeeping marks it VACANT again.
type Occupancy string

const (
	OccupancyVacant   Occupancy = "VACANT"
	OccupancyOccupied Occupancy = "OCCUPIED"
	OccupancyCleaning Occupancy = "CLEANING"
)

type Room struct {
	Number      Number
	Category    string
	NightlyRate money.Money
	Occupancy   Occupancy
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
}

type Repository interface {
	ByNumber(ctx context.Context, number Number) (*Room, error)
	All(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
	SetOccupancy(ctx context.Context, number Number, state Occupancy) error
}

func New(number Number, category string, nightlyRate money.Money, now time.Time) (*Room, error) {
	if number <= 0 {
		return nil, ErrInvalidNumber
	}
	if strings.TrimSpace(category) == "" {
		return nil, ErrCategoryMissing
	}
	if nightlyRate.Cents < 0 {
		return nil, ErrNegativeRate
	}
	ts := now.UTC()
	return &Room{
		Number:      number,
		Category:    strings.TrimSpace(category),
		NightlyRate: nightlyRate,
		Occupancy:   OccupancyVacant,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// ChangeRate updates the nightly rate. Identity is immutable; the rate is the
// only attribute an administrator may change after creation.
func (r *Room) ChangeRate(rate money.Money, now time.Time) error {
	if rate.Cents < 0 {
		return ErrNegativeRate
	}
	r.NightlyRate = rate
	r.UpdatedAt = now.UTC()
	return nil
}
