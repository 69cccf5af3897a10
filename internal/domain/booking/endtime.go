package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const clockLayout = "15:04"

// EndTime adds durationMin minutes to an HH:MM start time. Results past
// midnight wrap onto the next day's clock.
func EndTime(start string, durationMin int) (string, error) {
	if durationMin < 0 {
		return "", httperr.ErrBusiness("invalid_duration")
	}

	t, err := time.Parse(clockLayout, start)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_time")
	}

	return t.Add(time.Duration(durationMin) * time.Minute).Format(clockLayout), nil
}

// ClockOn places an HH:MM clock on the calendar day of day.
func ClockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
