package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ScheduleGormRepository reads what is already booked. Both the appointment
// table and the document bookings table count, since either backend may
// have written a given day.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// GetStaffAvailability returns nil without error when the stylist has no
// row for the weekday.
func (r *ScheduleGormRepository) GetStaffAvailability(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.StaffAvailability, error) {

	var av models.StaffAvailability
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&av).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *ScheduleGormRepository) ListBusyIntervals(
	ctx context.Context,
	staffID *uint,
	day time.Time,
) ([]domain.Interval, error) {
	return busyIntervals(ctx, r.db, staffID, day)
}

// busyIntervals reads the confirmed ranges of a day from both the
// appointments and bookings tables. A range whose end is not after its
// start runs past midnight. A nil staffID means every stylist.
func busyIntervals(
	ctx context.Context,
	db *gorm.DB,
	staffID *uint,
	day time.Time,
) ([]domain.Interval, error) {

	date := day.Format(dateLayout)
	status := string(domain.StatusConfirmed)

	q := db.WithContext(ctx).
		Select("start_time", "end_time").
		Where("appointment_date = ? AND status = ?", date, status)
	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	bq := db.WithContext(ctx).
		Select("appointment_time", "service_duration").
		Where("appointment_date = ? AND status = ?", date, status)
	if staffID != nil {
		bq = bq.Where("staff_id = ?", *staffID)
	}

	var docs []models.Booking
	if err := bq.Find(&docs).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Interval, 0, len(apps)+len(docs))
	for _, ap := range apps {
		start, err := domain.ClockOn(day, ap.StartTime)
		if err != nil {
			continue
		}
		end, err := domain.ClockOn(day, ap.EndTime)
		if err != nil {
			continue
		}
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		out = append(out, domain.Interval{Start: start, End: end})
	}
	for _, b := range docs {
		start, err := domain.ClockOn(day, b.AppointmentTime)
		if err != nil {
			continue
		}
		out = append(out, domain.Interval{
			Start: start,
			End:   start.Add(time.Duration(b.ServiceDuration) * time.Minute),
		})
	}

	return out, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *ScheduleGormRepository) ListRemindersForDay(
	ctx context.Context,
	day time.Time,
) ([]dto.Reminder, error) {

	date := day.Format(dateLayout)
	status := string(domain.StatusConfirmed)

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("appointment_date = ? AND status = ?", date, status).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	var docs []models.Booking
	if err := r.db.WithContext(ctx).
		Where("appointment_date = ? AND status = ?", date, status).
		Order("appointment_time ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	out := make([]dto.Reminder, 0, len(apps)+len(docs))
	for _, ap := range apps {
		out = append(out, dto.Reminder{
			Reference:   ap.Reference,
			ClientName:  ap.Client.FirstName,
			ClientPhone: ap.Client.Phone,
			ServiceName: serviceName(ap.Service),
			StaffName:   staffName(ap.Staff),
			Date:        date,
			Time:        ap.StartTime,
		})
	}
	for _, b := range docs {
		out = append(out, dto.Reminder{
			Reference:   b.ID,
			ClientName:  b.ClientFirstName,
			ClientPhone: b.ClientPhone,
			ServiceName: b.ServiceName,
			StaffName:   b.StaffName,
			Date:        date,
			Time:        b.AppointmentTime,
		})
	}
	return out, nil
}

func serviceName(s *models.Service) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func staffName(s *models.Staff) string {
	if s == nil {
		return domain.AnyStylistName
	}
	return s.Name
}

var (
	_ domain.ScheduleRepository = (*ScheduleGormRepository)(nil)
	_ domain.ReminderRepository = (*ScheduleGormRepository)(nil)
)
