package reservation

import (
	"time"

	"hotelier/internal/domain/guest"
	"hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/money"
)

type ReservationBooked struct {
	ReservationID ReservationID
	Room          room.Number
	GuestID       guest.GuestID
	Range         daterange.DateRange
	Total         money.Money
	At            time.Time
}

func (e ReservationBooked) EventName() string     { return "reservation.booked" }
func (e ReservationBooked) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationBooked) OccurredAt() time.Time { return e.At }

type PaymentConfirmed struct {
	ReservationID ReservationID
	At            time.Time
}

func (e PaymentConfirmed) EventName() string     { return "reservation.payment_confirmed" }
func (e PaymentConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e PaymentConfirmed) OccurredAt() time.Time { return e.At }

type GuestCheckedIn struct {
	ReservationID ReservationID
	Room          room.Number
	At            time.Time
}

func (e GuestCheckedIn) EventName() string     { return "reservation.checked_in" }
func (e GuestCheckedIn) AggregateID() string   { return string(e.ReservationID) }
func (e GuestCheckedIn) OccurredAt() time.Time { return e.At }

type GuestCheckedOut struct {
	ReservationID ReservationID
	Room          room.Number
	At            time.Time
}

func (e GuestCheckedOut) EventName() string     { return "reservation.checked_out" }
func (e GuestCheckedOut) AggregateID() string   { return string(e.ReservationID) }
func (e GuestCheckedOut) OccurredAt() time.Time { return e.At }

type DatesChanged struct {
	ReservationID ReservationID
	Room          room.Number
	Previous      daterange.DateRange
	Current       daterange.DateRange
	At            time.Time
}

func (e DatesChanged) EventName() string     { return "reservation.dates_changed" }
func (e DatesChanged) AggregateID() string   { return string(e.ReservationID) }
func (e DatesChanged) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID
	Room          room.Number
	Fee           money.Money
	Reason        string
	WasCheckedIn  bool
	At            time.Time
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }
