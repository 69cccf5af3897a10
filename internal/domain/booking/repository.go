package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type CatalogRepository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	GetStaff(ctx context.Context, id uint) (*models.Staff, error)
}

type SessionStore interface {
	Save(ctx context.Context, w *Wizard) error
	Load(ctx context.Context, id string) (*Wizard, error)

	// MarkConfirmed sets the permanent confirmed marker; false means it was
	// already set. Load reports a marked session as confirmed and Save
	// refuses to overwrite it with an unconfirmed copy.
	MarkConfirmed(ctx context.Context, id string, reference string) (bool, error)

	// AcquireConfirm returns false when another confirmation holds the lock.
	AcquireConfirm(ctx context.Context, id string) (bool, error)
	ReleaseConfirm(ctx context.Context, id string) error
}

// RelationalRepository is the normalised write path: client, intake,
// appointment and join record are separate rows.
type RelationalRepository interface {
	EnsureClient(ctx context.Context, userID *uint, info ClientInfo) (*models.Client, error)
	UpsertIntake(ctx context.Context, intake *models.ClientIntake) error
	AssertNoTimeConflict(ctx context.Context, staffID uint, date time.Time, start, end string) error
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	CreateAppointmentService(ctx context.Context, link *models.AppointmentService) error
}

// DocumentRepository is the single denormalised write path.
type DocumentRepository interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
}

type ScheduleRepository interface {
	GetStaffAvailability(ctx context.Context, staffID uint, weekday int) (*models.StaffAvailability, error)
	// nil staffID means every stylist
	ListBusyIntervals(ctx context.Context, staffID *uint, day time.Time) ([]Interval, error)
}

type PortalIdentity struct {
	UserID uint
	Email  string
}

type PortalRepository interface {
	ListForClient(ctx context.Context, who PortalIdentity) ([]dto.PortalAppointment, error)
}

type ReminderRepository interface {
	ListRemindersForDay(ctx context.Context, day time.Time) ([]dto.Reminder, error)
}

// AdminRepository backs the salon-side schedule.
type AdminRepository interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	ListAppointmentsForPeriod(ctx context.Context, staffID *uint, start, end time.Time) ([]models.Appointment, error)
}

// CatalogWriter is the admin side of the catalogue.
type CatalogWriter interface {
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	UpdateStaffImage(ctx context.Context, staffID uint, url string) error
}
