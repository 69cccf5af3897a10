package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// PortalGormRepository gathers a signed-in client's bookings from both
// backends. loc is the salon timezone the stored clock times are in.
type PortalGormRepository struct {
	db  *gorm.DB
	loc *time.Location
}

func NewPortalGormRepository(db *gorm.DB, loc *time.Location) *PortalGormRepository {
	return &PortalGormRepository{db: db, loc: loc}
}

func (r *PortalGormRepository) ListForClient(
	ctx context.Context,
	who domain.PortalIdentity,
) ([]dto.PortalAppointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff").
		Where(
			"client_id IN (SELECT id FROM clients WHERE user_id = ? OR email = ?)",
			who.UserID,
			who.Email,
		).
		Order("appointment_date DESC, start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	var docs []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR client_email = ?", who.UserID, who.Email).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	out := make([]dto.PortalAppointment, 0, len(apps)+len(docs))
	for _, ap := range apps {
		out = append(out, dto.PortalAppointment{
			ID:          ap.Reference,
			StartsAt:    r.startsAt(ap.AppointmentDate, ap.StartTime),
			Date:        ap.AppointmentDate.Format(dateLayout),
			Time:        ap.StartTime,
			ServiceName: serviceName(ap.Service),
			StaffName:   staffName(ap.Staff),
			Status:      ap.Status,
			Price:       ap.TotalPrice,
		})
	}
	for _, b := range docs {
		out = append(out, dto.PortalAppointment{
			ID:          b.ID,
			StartsAt:    r.startsAt(b.AppointmentDate, b.AppointmentTime),
			Date:        b.AppointmentDate.Format(dateLayout),
			Time:        b.AppointmentTime,
			ServiceName: b.ServiceName,
			StaffName:   b.StaffName,
			Status:      b.Status,
			Price:       b.ServicePrice,
		})
	}
	return out, nil
}

// startsAt reads the stored calendar date as a salon-local day.
func (r *PortalGormRepository) startsAt(date time.Time, clock string) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.loc)
	t, err := domain.ClockOn(day, clock)
	if err != nil {
		return day
	}
	return t
}

var _ domain.PortalRepository = (*PortalGormRepository)(nil)
