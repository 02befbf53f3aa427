package reservation

import (
	"time"

	"hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
)

var (
	ErrReservationNotFound = fault.NotFoundf("reservation")
	ErrCheckInInPast       = fault.Validationf("reservation: check-in date is in the past")
)

// ValidateArrival rejects ranges whose check-in day already passed.
func ValidateArrival(dr daterange.DateRange, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	checkInDate := time.Date(dr.CheckIn.Year(), dr.CheckIn.Month(), dr.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	if checkInDate.Before(today) {
		return ErrCheckInInPast
	}
	return nil
}
