package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type AdminGormRepository struct {
	db *gorm.DB
}

func NewAdminGormRepository(db *gorm.DB) *AdminGormRepository {
	return &AdminGormRepository{db: db}
}

func (r *AdminGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AdminGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Select("status", "cancelled_at", "completed_at", "updated_at").
		Updates(ap).Error
}

// ListAppointmentsForPeriod covers [start, end) by calendar date. A nil
// staffID lists every stylist.
func (r *AdminGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	staffID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where(
			"appointment_date >= ? AND appointment_date < ?",
			start.Format(dateLayout),
			end.Format(dateLayout),
		)
	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

var _ domain.AdminRepository = (*AdminGormRepository)(nil)
