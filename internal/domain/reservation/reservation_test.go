package reservation

import (
	"errors"
	"testing"
	"time"

	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newTestReservation(t *testing.T) *Reservation {
	t.Helper()
	dr, err := daterange.New(day(10), day(14))
	if err != nil {
		t.Fatal(err)
	}
	res, err := New(CreateParams{
		Room:      101,
		GuestID:   "g-1",
		Range:     dr,
		CreatedAt: day(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	res.ID = "r-1"
	return res
}

func TestNewValidatesParams(t *testing.T) {
	dr, _ := daterange.New(day(10), day(14))
	cases := []struct {
		name   string
		params CreateParams
	}{
		{"missing room", CreateParams{GuestID: "g-1", Range: dr}},
		{"missing guest", CreateParams{Room: 101, Range: dr}},
		{"invalid range", CreateParams{Room: 101, GuestID: "g-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.params); !errors.Is(err, fault.ErrValidation) {
				t.Errorf("New() error = %v, want validation", err)
			}
		})
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	res := newTestReservation(t)
	if res.Status != StatusNew {
		t.Fatalf("initial status = %s", res.Status)
	}
	if err := res.ConfirmPayment(day(2)); err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusConfirmed {
		t.Fatalf("after confirm: %s", res.Status)
	}
	if err := res.CheckIn(day(10)); err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusCheckedIn {
		t.Fatalf("after check-in: %s", res.Status)
	}
	if err := res.CheckOut(day(14)); err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusCheckedOut {
		t.Fatalf("after checkout: %s", res.Status)
	}
	if !res.Status.Terminal() {
		t.Error("checked-out should be terminal")
	}

	names := make([]string, 0)
	for _, ev := range res.PendingEvents() {
		names = append(names, ev.EventName())
	}
	want := []string{"reservation.payment_confirmed", "reservation.checked_in", "reservation.checked_out"}
	if len(names) != len(want) {
		t.Fatalf("events = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestCheckInSkippingConfirmation(t *testing.T) {
	res := newTestReservation(t)
	if err := res.CheckIn(day(10)); err != nil {
		t.Fatalf("walk-in check-in from NEW: %v", err)
	}
}

func TestIllegalTransitions(t *testing.T) {
	cases := []struct {
		name string
		run  func(*Reservation) error
	}{
		{"checkout before check-in", func(r *Reservation) error {
			return r.CheckOut(day(14))
		}},
		{"confirm twice", func(r *Reservation) error {
			if err := r.ConfirmPayment(day(2)); err != nil {
				return err
			}
			return r.ConfirmPayment(day(3))
		}},
		{"check in twice", func(r *Reservation) error {
			if err := r.CheckIn(day(10)); err != nil {
				return err
			}
			return r.CheckIn(day(11))
		}},
		{"modify dates after check-in", func(r *Reservation) error {
			if err := r.CheckIn(day(10)); err != nil {
				return err
			}
			dr, _ := daterange.New(day(11), day(15))
			return r.ChangeDates(dr, day(10))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := newTestReservation(t)
			err := tc.run(res)
			if !errors.Is(err, fault.ErrState) {
				t.Errorf("error = %v, want state fault", err)
			}
			var te *fault.TransitionError
			if !errors.As(err, &te) {
				t.Errorf("error should carry the attempted action, got %v", err)
			}
		})
	}
}

func TestChangeDatesKeepsStatusAndRecordsEvent(t *testing.T) {
	res := newTestReservation(t)
	if err := res.ConfirmPayment(day(2)); err != nil {
		t.Fatal(err)
	}
	res.ClearEvents()

	next, _ := daterange.New(day(12), day(16))
	if err := res.ChangeDates(next, day(3)); err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusConfirmed {
		t.Errorf("status after date change = %s, want CONFIRMED", res.Status)
	}
	events := res.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("pending events = %d, want 1", len(events))
	}
	changed, ok := events[0].(DatesChanged)
	if !ok {
		t.Fatalf("event type = %T", events[0])
	}
	if !changed.Previous.CheckIn.Equal(day(10)) || !changed.Current.CheckIn.Equal(day(12)) {
		t.Errorf("event ranges wrong: %+v", changed)
	}
}

func TestCancelRecordsFeeOnce(t *testing.T) {
	res := newTestReservation(t)
	policy := NewGuestPolicy(DefaultGuestPolicyConfig())
	total := money.Must(80000)

	fee, err := res.Cancel(policy, total, "change of plans", day(5))
	if err != nil {
		t.Fatal(err)
	}
	if fee.Cents != 16000 {
		t.Errorf("fee = %d, want 16000 (20%% five days out)", fee.Cents)
	}
	if res.Status != StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", res.Status)
	}
	if res.Cancellation == nil {
		t.Fatal("cancellation record missing")
	}
	if res.Cancellation.Initiator != "guest" || res.Cancellation.Fee != fee {
		t.Errorf("record = %+v", res.Cancellation)
	}

	if _, err := res.Cancel(policy, total, "again", day(6)); !errors.Is(err, fault.ErrState) {
		t.Errorf("second cancel error = %v, want state fault", err)
	}
	if res.Cancellation.Reason != "change of plans" {
		t.Error("second attempt overwrote the record")
	}
}

func TestDeskCancelsInHouseStay(t *testing.T) {
	res := newTestReservation(t)
	if err := res.CheckIn(day(10)); err != nil {
		t.Fatal(err)
	}
	fee, err := res.Cancel(DeskPolicy{}, money.Must(80000), "plumbing failure", day(11))
	if err != nil {
		t.Fatal(err)
	}
	if !fee.IsZero() {
		t.Errorf("desk fee = %d, want 0", fee.Cents)
	}
	events := res.PendingEvents()
	last, ok := events[len(events)-1].(ReservationCancelled)
	if !ok {
		t.Fatalf("last event = %T", events[len(events)-1])
	}
	if !last.WasCheckedIn {
		t.Error("cancellation of in-house stay should flag WasCheckedIn")
	}
}

func TestCancelGuestPolicyRejectsAfterCheckIn(t *testing.T) {
	res := newTestReservation(t)
	if err := res.CheckIn(day(10)); err != nil {
		t.Fatal(err)
	}
	policy := NewGuestPolicy(DefaultGuestPolicyConfig())
	if _, err := res.Cancel(policy, money.Must(80000), "", day(11)); !errors.Is(err, fault.ErrState) {
		t.Errorf("guest cancel after check-in: %v, want state fault", err)
	}
	if res.Status != StatusCheckedIn {
		t.Error("failed cancel mutated status")
	}
}

func TestAttachAddOn(t *testing.T) {
	res := newTestReservation(t)
	breakfast, err := NewBreakfast(money.Must(2500), 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := res.AttachAddOn(breakfast, day(2)); err != nil {
		t.Fatal(err)
	}
	if len(res.AddOns) != 1 {
		t.Fatalf("add-ons = %d, want 1", len(res.AddOns))
	}
	if err := res.CheckIn(day(10)); err != nil {
		t.Fatal(err)
	}
	parking, _ := NewParking(money.Must(1500), 4)
	if err := res.AttachAddOn(parking, day(10)); !errors.Is(err, fault.ErrState) {
		t.Errorf("attach after check-in: %v, want state fault", err)
	}
}

func TestStatusBlocks(t *testing.T) {
	blocking := map[Status]bool{
		StatusNew:        true,
		StatusConfirmed:  true,
		StatusCheckedIn:  true,
		StatusCheckedOut: false,
		StatusCancelled:  false,
	}
	for status, want := range blocking {
		if got := status.Blocks(); got != want {
			t.Errorf("Blocks(%s) = %v, want %v", status, got, want)
		}
	}
}
