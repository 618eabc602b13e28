package utils

import (
	"math"
	"time"
)

// RentalHours returns the billable hours between start and end. Fractional
// hours round up to the next whole hour and the minimum charge is one hour,
// so a one-minute rental bills as one hour. Callers must reject end <= start
// before computing a price; for such inputs this still returns 1.
func RentalHours(start, end time.Time) int32 {
	secs := end.Sub(start).Seconds()
	hours := int32(math.Ceil(secs / 3600.0))
	if hours < 1 {
		return 1
	}
	return hours
}

// RentalCost returns hourlyRateCents times the billable hours. Deterministic,
// no side effects; the result is snapshotted onto the rental at booking time.
func RentalCost(hourlyRateCents, hours int32) int32 {
	return hourlyRateCents * hours
}

// Cost is the composed form: billable hours derived from the interval, then
// priced at the hourly rate.
func Cost(hourlyRateCents int32, start, end time.Time) int32 {
	return RentalCost(hourlyRateCents, RentalHours(start, end))
}
