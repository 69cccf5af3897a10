package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// Submitted is what a backend wrote.
type Submitted struct {
	Reference string
	EndTime   string
}

// Submitter persists a complete aggregate. An error means the booking was
// not written.
type Submitter interface {
	Submit(ctx context.Context, userID *uint, agg domain.Aggregate) (*Submitted, error)
}

// ======================================================
// Relational
// ======================================================

// RelationalSubmitter writes client, intake, appointment and join record one
// after another with no transaction. Only the client and appointment writes
// can fail the booking.
type RelationalSubmitter struct {
	repo    domain.RelationalRepository
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	tz      string
	now     func() time.Time
}

func NewRelationalSubmitter(
	repo domain.RelationalRepository,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
	tz string,
) *RelationalSubmitter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RelationalSubmitter{repo: repo, logger: logger, metrics: m, tz: tz, now: time.Now}
}

func (s *RelationalSubmitter) Submit(
	ctx context.Context,
	userID *uint,
	agg domain.Aggregate,
) (*Submitted, error) {

	day, end, err := schedule(s.tz, agg)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.EnsureClient(ctx, userID, *agg.ClientInfo)
	if err != nil {
		return nil, fmt.Errorf("ensure client: %w", err)
	}

	intake := intakeRecord(client.ID, *agg.IntakeForm, s.now())
	if err := s.repo.UpsertIntake(ctx, intake); err != nil {
		s.logger.Warn("intake not saved", "client_id", client.ID, "error", err)
		s.metrics.ObserveSwallowed("intake")
	}

	var staffID *uint
	if !agg.Staff.Any {
		id := agg.Staff.ID
		staffID = &id
		if err := s.repo.AssertNoTimeConflict(ctx, id, day, agg.DateTime.Time, end); err != nil {
			return nil, err
		}
	}

	serviceID := agg.Service.ID
	ap := &models.Appointment{
		Reference:       uuid.NewString(),
		ClientID:        client.ID,
		StaffID:         staffID,
		ServiceID:       &serviceID,
		AppointmentDate: day,
		StartTime:       agg.DateTime.Time,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		TotalPrice:      agg.Service.Price,
		Notes:           agg.IntakeForm.SpecialRequests,
	}
	if err := s.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) || httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	link := &models.AppointmentService{
		AppointmentID: ap.ID,
		ServiceID:     serviceID,
		Price:         agg.Service.Price,
		DurationMin:   agg.Service.DurationMin,
	}
	if err := s.repo.CreateAppointmentService(ctx, link); err != nil {
		s.logger.Warn("appointment service link not saved", "appointment_id", ap.ID, "error", err)
		s.metrics.ObserveSwallowed("appointment_service")
	}

	return &Submitted{Reference: ap.Reference, EndTime: end}, nil
}

func intakeRecord(clientID uint, f domain.IntakeForm, now time.Time) *models.ClientIntake {
	return &models.ClientIntake{
		ClientID:           clientID,
		HairType:           f.HairType,
		HairTexture:        f.HairTexture,
		HairCondition:      f.HairCondition,
		ScalpSensitivity:   f.ScalpSensitivity,
		PreviousServices:   f.PreviousServices,
		Allergies:          f.Allergies,
		StylingPreferences: f.StylingPreferences,
		HairNotes:          f.HairNotes,
		SpecialRequests:    f.SpecialRequests,
		Consent:            f.Consent,
		CompletedAt:        now,
	}
}

// ======================================================
// Document
// ======================================================

// DocumentSubmitter writes the whole aggregate as one Booking row.
type DocumentSubmitter struct {
	repo domain.DocumentRepository
	tz   string
}

func NewDocumentSubmitter(repo domain.DocumentRepository, tz string) *DocumentSubmitter {
	return &DocumentSubmitter{repo: repo, tz: tz}
}

func (s *DocumentSubmitter) Submit(
	ctx context.Context,
	userID *uint,
	agg domain.Aggregate,
) (*Submitted, error) {

	day, end, err := schedule(s.tz, agg)
	if err != nil {
		return nil, err
	}

	history, err := json.Marshal(agg.IntakeForm)
	if err != nil {
		return nil, err
	}

	var staffID *uint
	if !agg.Staff.Any {
		id := agg.Staff.ID
		staffID = &id
	}

	b := &models.Booking{
		ID:               uuid.NewString(),
		UserID:           userID,
		ServiceID:        agg.Service.ID,
		ServiceName:      agg.Service.Name,
		ServicePrice:     agg.Service.Price,
		ServiceDuration:  agg.Service.DurationMin,
		StaffID:          staffID,
		StaffName:        agg.Staff.Name,
		AppointmentDate:  day,
		AppointmentTime:  agg.DateTime.Time,
		ClientFirstName:  agg.ClientInfo.FirstName,
		ClientLastName:   agg.ClientInfo.LastName,
		ClientEmail:      agg.ClientInfo.Email,
		ClientPhone:      agg.ClientInfo.Phone,
		EmergencyContact: agg.ClientInfo.EmergencyContact,
		HairHistory:      string(history),
		Status:           string(domain.InitialStatus()),
	}
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return &Submitted{Reference: b.ID, EndTime: end}, nil
}

// schedule parses the chosen day and computes the end clock.
func schedule(tz string, agg domain.Aggregate) (time.Time, string, error) {
	day, err := timezone.ParseDate(tz, agg.DateTime.Date)
	if err != nil {
		return time.Time{}, "", httperr.ErrBusiness("invalid_date")
	}
	end, err := domain.EndTime(agg.DateTime.Time, agg.Service.DurationMin)
	if err != nil {
		return time.Time{}, "", err
	}
	return day, end, nil
}
