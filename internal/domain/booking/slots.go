package booking

import "time"

// Interval is a half-open [Start, End) booked range.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

type TimeSlot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// SlotWindow is the part of a day slots are offered in. Close is exclusive
// for slot starts; a service may run past it.
type SlotWindow struct {
	Open  time.Time
	Close time.Time
}

func DefaultWindow(day time.Time, openingHour, closingHour int) SlotWindow {
	loc := day.Location()
	return SlotWindow{
		Open:  time.Date(day.Year(), day.Month(), day.Day(), openingHour, 0, 0, 0, loc),
		Close: time.Date(day.Year(), day.Month(), day.Day(), closingHour, 0, 0, 0, loc),
	}
}

type SlotRequest struct {
	Window   SlotWindow
	Interval time.Duration
	Duration time.Duration
	Busy     []Interval
	// how many overlapping bookings a slot tolerates; 1 for a named stylist
	Capacity int
	Now      time.Time
}

// GenerateTimeSlots walks the window in Interval steps. A slot is available
// when it has not started yet and fewer than Capacity busy intervals overlap
// the service duration starting there.
func GenerateTimeSlots(req SlotRequest) []TimeSlot {
	if req.Interval <= 0 {
		return []TimeSlot{}
	}
	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	slots := []TimeSlot{}
	for cur := req.Window.Open; cur.Before(req.Window.Close); cur = cur.Add(req.Interval) {
		end := cur.Add(req.Duration)

		available := !cur.Before(req.Now)
		if available {
			overlapping := 0
			for _, b := range req.Busy {
				if b.Overlaps(cur, end) {
					overlapping++
				}
			}
			available = overlapping < capacity
		}

		slots = append(slots, TimeSlot{
			Time:        cur.Format(clockLayout),
			IsAvailable: available,
		})
	}
	return slots
}
