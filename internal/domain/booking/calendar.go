package booking

import "time"

const calendarCells = 42

type CalendarDay struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	IsCurrentMonth bool   `json:"is_current_month"`
	IsPast         bool   `json:"is_past"`
	IsToday        bool   `json:"is_today"`
	IsAvailable    bool   `json:"is_available"`
}

// CalendarDays lays out a six-week grid for the month containing month,
// starting on the Sunday on or before the 1st. today decides IsPast.
func CalendarDays(month time.Time, today time.Time) []CalendarDay {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	today = today.In(loc)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	days := make([]CalendarDay, 0, calendarCells)
	for i := 0; i < calendarCells; i++ {
		d := start.AddDate(0, 0, i)
		current := d.Month() == first.Month()
		past := d.Before(todayStart)

		days = append(days, CalendarDay{
			Date:           d.Format("2006-01-02"),
			Day:            d.Day(),
			IsCurrentMonth: current,
			IsPast:         past,
			IsToday:        d.Equal(todayStart),
			IsAvailable:    current && !past,
		})
	}
	return days
}
