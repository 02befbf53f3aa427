package pricing

import (
	"testing"
	"time"

	"hotelier/internal/domain/reservation"
	"hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/money"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testRoom(t *testing.T, nightlyCents int64) *room.Room {
	t.Helper()
	rm, err := room.New(101, "standard", money.Must(nightlyCents), day(1))
	if err != nil {
		t.Fatal(err)
	}
	return rm
}

func testReservation(t *testing.T, nights int, addOns ...reservation.AddOn) *reservation.Reservation {
	t.Helper()
	dr, err := daterange.New(day(10), day(10+nights))
	if err != nil {
		t.Fatal(err)
	}
	res, err := reservation.New(reservation.CreateParams{
		Room:      101,
		GuestID:   "g-1",
		Range:     dr,
		AddOns:    addOns,
		CreatedAt: day(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestTotalCostBareStay(t *testing.T) {
	calc := Calculator{}
	cost := calc.TotalCost(testReservation(t, 4), testRoom(t, 20000))
	if cost.Nights != 4 {
		t.Errorf("nights = %d, want 4", cost.Nights)
	}
	if cost.Total.Cents != 80000 {
		t.Errorf("total = %d, want 80000", cost.Total.Cents)
	}
	if !cost.AddOns.IsZero() {
		t.Errorf("add-on total = %d, want 0", cost.AddOns.Cents)
	}
}

func TestTotalCostAddOnsAreFlat(t *testing.T) {
	breakfast, err := reservation.NewBreakfast(money.Must(2500), 4)
	if err != nil {
		t.Fatal(err)
	}
	parking, err := reservation.NewParking(money.Must(1500), 2)
	if err != nil {
		t.Fatal(err)
	}
	calc := Calculator{}
	cost := calc.TotalCost(testReservation(t, 4, breakfast, parking), testRoom(t, 20000))

	// 4 nights at 200.00, breakfast 4 days at 25.00, parking 2 days at 15.00.
	// Add-on cost depends only on its own day count, never on the nights.
	if cost.AddOns.Cents != 13000 {
		t.Errorf("add-on total = %d, want 13000", cost.AddOns.Cents)
	}
	if cost.Total.Cents != 93000 {
		t.Errorf("total = %d, want 93000", cost.Total.Cents)
	}
	if len(cost.Descriptors) != 2 {
		t.Errorf("descriptors = %v", cost.Descriptors)
	}
}

func TestTotalCostDegenerateInputs(t *testing.T) {
	calc := Calculator{}
	if cost := calc.TotalCost(nil, testRoom(t, 20000)); !cost.Total.IsZero() {
		t.Error("nil reservation should price to zero")
	}
	if cost := calc.TotalCost(testReservation(t, 4), nil); !cost.Total.IsZero() {
		t.Error("nil room should price to zero")
	}
	broken := testReservation(t, 4)
	broken.Range = daterange.DateRange{}
	if cost := calc.TotalCost(broken, testRoom(t, 20000)); !cost.Total.IsZero() {
		t.Error("invalid range should price to zero")
	}
}

func TestAddOnValidation(t *testing.T) {
	if _, err := reservation.NewBreakfast(money.Must(2500), 0); err == nil {
		t.Error("zero-day breakfast accepted")
	}
	if _, err := reservation.NewParking(money.Money{Cents: -1}, 2); err == nil {
		t.Error("negative parking rate accepted")
	}
}
