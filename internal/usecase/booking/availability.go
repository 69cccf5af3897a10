package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

type Hours struct {
	Opening         int
	Closing         int
	IntervalMinutes int
}

type GetAvailability struct {
	store   domain.SessionStore
	planner *SlotPlanner
	tz      string
	now     func() time.Time
}

func NewGetAvailability(
	store domain.SessionStore,
	planner *SlotPlanner,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		store:   store,
		planner: planner,
		tz:      tz,
		now:     time.Now,
	}
}

// Calendar returns the month grid for "2006-01"; an empty month means the
// current one.
func (uc *GetAvailability) Calendar(
	ctx context.Context,
	sessionID string,
	month string,
) ([]domain.CalendarDay, error) {

	if _, err := uc.store.Load(ctx, sessionID); err != nil {
		return nil, err
	}

	loc := timezone.Location(uc.tz)
	today := uc.now().In(loc)

	first := today
	if month != "" {
		m, err := time.ParseInLocation("2006-01", month, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_month")
		}
		first = m
	}

	return domain.CalendarDays(first, today), nil
}

// Slots lists start times for the session's service and stylist on date.
func (uc *GetAvailability) Slots(
	ctx context.Context,
	sessionID string,
	date string,
) ([]domain.TimeSlot, error) {

	w, err := uc.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if w.Data.Service == nil {
		return nil, httperr.ErrBusiness("service_required")
	}
	if w.Data.Staff == nil {
		return nil, httperr.ErrBusiness("staff_required")
	}

	day, err := timezone.ParseDate(uc.tz, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.planner.Slots(ctx, w.Data, day)
}

// ====================================================
// SLOT PLANNER
// ====================================================

// SlotPlanner builds the start times offered for a service and stylist on
// a day. The availability listing and the confirmation check share it.
type SlotPlanner struct {
	catalog  domain.CatalogRepository
	schedule domain.ScheduleRepository
	hours    Hours
	tz       string
	now      func() time.Time
}

func NewSlotPlanner(
	catalog domain.CatalogRepository,
	schedule domain.ScheduleRepository,
	hours Hours,
	tz string,
) *SlotPlanner {
	return &SlotPlanner{
		catalog:  catalog,
		schedule: schedule,
		hours:    hours,
		tz:       tz,
		now:      time.Now,
	}
}

// Slots expects agg to carry a service and a stylist.
func (p *SlotPlanner) Slots(
	ctx context.Context,
	agg domain.Aggregate,
	day time.Time,
) ([]domain.TimeSlot, error) {

	window := domain.DefaultWindow(day, p.hours.Opening, p.hours.Closing)

	var (
		staffID  *uint
		capacity int
	)

	if staff := agg.Staff; staff.Any {
		all, err := p.catalog.ListStaff(ctx)
		if err != nil {
			return nil, err
		}
		capacity = len(domain.ActiveStaff(all))
		if capacity == 0 {
			return []domain.TimeSlot{}, nil
		}
	} else {
		id := staff.ID
		staffID = &id
		capacity = 1

		av, err := p.schedule.GetStaffAvailability(ctx, id, int(day.Weekday()))
		if err != nil {
			return nil, err
		}
		if av != nil {
			if !av.Available {
				return []domain.TimeSlot{}, nil
			}
			if window, err = staffWindow(day, av.StartTime, av.EndTime); err != nil {
				return nil, err
			}
		}
	}

	busy, err := p.schedule.ListBusyIntervals(ctx, staffID, day)
	if err != nil {
		return nil, err
	}

	return domain.GenerateTimeSlots(domain.SlotRequest{
		Window:   window,
		Interval: time.Duration(p.hours.IntervalMinutes) * time.Minute,
		Duration: time.Duration(agg.Service.DurationMin) * time.Minute,
		Busy:     busy,
		Capacity: capacity,
		Now:      p.now(),
	}), nil
}

// Check fails with invalid_datetime when the chosen time is not one of the
// day's slots and with time_conflict when that slot is taken or over.
func (p *SlotPlanner) Check(ctx context.Context, agg domain.Aggregate) error {
	if agg.Service == nil || agg.Staff == nil || agg.DateTime == nil {
		return httperr.ErrBusiness("incomplete_booking")
	}

	day, err := timezone.ParseDate(p.tz, agg.DateTime.Date)
	if err != nil {
		return httperr.ErrBusiness("invalid_datetime")
	}

	slots, err := p.Slots(ctx, agg, day)
	if err != nil {
		return err
	}

	for _, slot := range slots {
		if slot.Time != agg.DateTime.Time {
			continue
		}
		if !slot.IsAvailable {
			return httperr.ErrBusiness("time_conflict")
		}
		return nil
	}
	return httperr.ErrBusiness("invalid_datetime")
}

func staffWindow(day time.Time, start, end string) (domain.SlotWindow, error) {
	open, err := domain.ClockOn(day, start)
	if err != nil {
		return domain.SlotWindow{}, err
	}
	closing, err := domain.ClockOn(day, end)
	if err != nil {
		return domain.SlotWindow{}, err
	}
	return domain.SlotWindow{Open: open, Close: closing}, nil
}
