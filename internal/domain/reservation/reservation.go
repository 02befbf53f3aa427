package reservation

import (
	"context"
	"time"

	"hotelier/internal/domain/guest"
	"hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/events"
	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

type ReservationID string

type Status string

const (
	StatusNew        Status = "NEW"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
)

// Terminal reports whether no further transition is legal.
func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Blocks reports whether a reservation in this status still holds its room
// against other bookings.
func (s Status) Blocks() bool {
	return s != StatusCancelled && s != StatusCheckedOut
}

type Action string

const (
	ActionConfirmPayment Action = "confirm payment for"
	ActionCheckIn        Action = "check in"
	ActionCheckOut       Action = "check out"
	ActionModifyDates    Action = "modify dates of"
	ActionCancel         Action = "cancel"
)

// transitions is the single source of truth for the lifecycle: action ×
// current status → next status. Absent entries are illegal.
var transitions = map[Action]map[Status]Status{
	ActionConfirmPayment: {
		StatusNew: StatusConfirmed,
	},
	ActionCheckIn: {
		StatusNew:       StatusCheckedIn,
		StatusConfirmed: StatusCheckedIn,
	},
	ActionCheckOut: {
		StatusCheckedIn: StatusCheckedOut,
	},
	ActionModifyDates: {
		StatusNew:       StatusNew,
		StatusConfirmed: StatusConfirmed,
	},
	ActionCancel: {
		StatusNew:       StatusCancelled,
		StatusConfirmed: StatusCancelled,
		StatusCheckedIn: StatusCancelled,
	},
}

// CancellationRecord is written once, when the reservation is cancelled.
type CancellationRecord struct {
	Initiator string
	Fee       money.Money
	Reason    string
	At        time.Time
}

type Reservation struct {
	ID           ReservationID
	Room         room.Number
	GuestID      guest.GuestID
	Range        daterange.DateRange
	Status       Status
	AddOns       []AddOn
	Cancellation *CancellationRecord
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	// ForRoom returns the room's reservations ordered by check-in date.
	ForRoom(ctx context.Context, number room.Number) ([]*Reservation, error)
	// Save persists a new reservation, assigning identity when blank.
	Save(ctx context.Context, res *Reservation) error
	Update(ctx context.Context, res *Reservation) error
}

type CreateParams struct {
	Room      room.Number
	GuestID   guest.GuestID
	Range     daterange.DateRange
	AddOns    []AddOn
	CreatedAt time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if params.Room <= 0 {
		return nil, fault.Validationf("reservation: room number required")
	}
	if params.GuestID == "" {
		return nil, fault.Validationf("reservation: guest id required")
	}
	if err := params.Range.Validate(); err != nil {
		return nil, fault.Validationf("reservation: %v", err)
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		Room:      params.Room,
		GuestID:   params.GuestID,
		Range:     params.Range,
		Status:    StatusNew,
		AddOns:    append([]AddOn(nil), params.AddOns...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r, nil
}

// apply advances the status through the transition table. Illegal moves leave
// the reservation untouched and name the attempted action.
func (r *Reservation) apply(action Action, now time.Time) error {
	next, ok := transitions[action][r.Status]
	if !ok {
		return &fault.TransitionError{Action: string(action), Status: string(r.Status)}
	}
	r.Status = next
	r.UpdatedAt = now.UTC()
	return nil
}

func (r *Reservation) ConfirmPayment(now time.Time) error {
	if err := r.apply(ActionConfirmPayment, now); err != nil {
		return err
	}
	r.Record(PaymentConfirmed{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) CheckIn(now time.Time) error {
	if err := r.apply(ActionCheckIn, now); err != nil {
		return err
	}
	r.Record(GuestCheckedIn{ReservationID: r.ID, Room: r.Room, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) CheckOut(now time.Time) error {
	if err := r.apply(ActionCheckOut, now); err != nil {
		return err
	}
	r.Record(GuestCheckedOut{ReservationID: r.ID, Room: r.Room, At: r.UpdatedAt})
	return nil
}

// ChangeDates swaps the stay interval. Availability must have been verified
// by the caller before this is invoked.
func (r *Reservation) ChangeDates(dr daterange.DateRange, now time.Time) error {
	if err := dr.Validate(); err != nil {
		return fault.Validationf("reservation: %v", err)
	}
	previous := r.Range
	if err := r.apply(ActionModifyDates, now); err != nil {
		return err
	}
	r.Range = dr
	r.Record(DatesChanged{ReservationID: r.ID, Room: r.Room, Previous: previous, Current: dr, At: r.UpdatedAt})
	return nil
}

// Cancel applies the given policy: the policy gates legality and prices the
// penalty from the quoted total. The fee and reason are recorded once; a
// reservation already in a terminal state is rejected before anything is
// touched.
func (r *Reservation) Cancel(policy CancellationPolicy, total money.Money, reason string, now time.Time) (money.Money, error) {
	if !policy.CanCancel(r.Status) {
		return money.Money{}, &fault.TransitionError{Action: string(ActionCancel), Status: string(r.Status)}
	}
	wasCheckedIn := r.Status == StatusCheckedIn
	if err := r.apply(ActionCancel, now); err != nil {
		return money.Money{}, err
	}
	fee := policy.Fee(total, r.Range.DaysUntilArrival(now))
	r.Cancellation = &CancellationRecord{
		Initiator: policy.Name(),
		Fee:       fee,
		Reason:    reason,
		At:        r.UpdatedAt,
	}
	r.Record(ReservationCancelled{
		ReservationID: r.ID,
		Room:          r.Room,
		Fee:           fee,
		Reason:        reason,
		WasCheckedIn:  wasCheckedIn,
		At:            r.UpdatedAt,
	})
	return fee, nil
}

// AttachAddOn appends a paid extra. Legal while the stay can still change.
func (r *Reservation) AttachAddOn(addOn AddOn, now time.Time) error {
	if addOn == nil {
		return fault.Validationf("reservation: nil add-on")
	}
	if r.Status != StatusNew && r.Status != StatusConfirmed {
		return &fault.TransitionError{Action: "attach add-on to", Status: string(r.Status)}
	}
	r.AddOns = append(r.AddOns, addOn)
	r.UpdatedAt = now.UTC()
	return nil
}
