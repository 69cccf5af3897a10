package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const dateLayout = "2006-01-02"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// EnsureClient finds the client by login when there is one and by email
// otherwise, refreshing contact details, or creates it.
func (r *BookingGormRepository) EnsureClient(
	ctx context.Context,
	userID *uint,
	info domain.ClientInfo,
) (*models.Client, error) {

	q := r.db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	} else {
		q = q.Where("email = ? AND user_id IS NULL", info.Email)
	}

	var client models.Client
	err := q.First(&client).Error

	switch {
	case err == nil:
		client.FirstName = info.FirstName
		client.LastName = info.LastName
		client.Email = info.Email
		client.Phone = info.Phone
		if info.EmergencyContact != "" {
			client.EmergencyContact = info.EmergencyContact
		}
		if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
			return nil, err
		}
		return &client, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		client = models.Client{
			UserID:           userID,
			FirstName:        info.FirstName,
			LastName:         info.LastName,
			Email:            info.Email,
			Phone:            info.Phone,
			EmergencyContact: info.EmergencyContact,
		}
		if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
			return nil, err
		}
		return &client, nil

	default:
		return nil, err
	}
}

func (r *BookingGormRepository) UpsertIntake(
	ctx context.Context,
	intake *models.ClientIntake,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hair_type", "hair_texture", "hair_condition", "scalp_sensitivity",
				"previous_services", "allergies", "styling_preferences",
				"hair_notes", "special_requests", "consent", "completed_at", "updated_at",
			}),
		}).
		Create(intake).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// AssertNoTimeConflict checks start-end on date against every confirmed
// range of the stylist, whichever backend wrote it. An end at or before
// start is on the next day.
func (r *BookingGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	staffID uint,
	date time.Time,
	start string,
	end string,
) error {

	from, err := domain.ClockOn(date, start)
	if err != nil {
		return err
	}
	to, err := domain.ClockOn(date, end)
	if err != nil {
		return err
	}
	if !to.After(from) {
		to = to.AddDate(0, 0, 1)
	}

	busy, err := busyIntervals(ctx, r.db, &staffID, date)
	if err != nil {
		return err
	}

	for _, iv := range busy {
		if iv.Overlaps(from, to) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) CreateAppointmentService(
	ctx context.Context,
	link *models.AppointmentService,
) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// --------------------------------------------------
// Document
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Compile-time check
var (
	_ domain.RelationalRepository = (*BookingGormRepository)(nil)
	_ domain.DocumentRepository   = (*BookingGormRepository)(nil)
)
