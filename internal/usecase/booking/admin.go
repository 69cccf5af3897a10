package booking

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/media"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// ======================================================
// Cancel / Complete
// ======================================================

type ChangeStatus struct {
	repo  domain.AdminRepository
	audit *audit.Dispatcher
	tz    string
}

func NewChangeStatus(repo domain.AdminRepository, dispatcher *audit.Dispatcher, tz string) *ChangeStatus {
	return &ChangeStatus{repo: repo, audit: dispatcher, tz: tz}
}

func (uc *ChangeStatus) Cancel(ctx context.Context, adminID uint, appointmentID uint) (*models.Appointment, error) {
	return uc.apply(ctx, adminID, appointmentID, "appointment_cancelled", domain.Cancel)
}

func (uc *ChangeStatus) Complete(ctx context.Context, adminID uint, appointmentID uint) (*models.Appointment, error) {
	return uc.apply(ctx, adminID, appointmentID, "appointment_completed", domain.Complete)
}

func (uc *ChangeStatus) apply(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	action string,
	transition func(*models.Appointment, time.Time) error,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := transition(ap, timezone.NowIn(uc.tz)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   action,
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(ap.ID), 10),
	})

	return ap, nil
}

// ======================================================
// Schedule
// ======================================================

type ListSchedule struct {
	repo domain.AdminRepository
	tz   string
}

func NewListSchedule(repo domain.AdminRepository, tz string) *ListSchedule {
	return &ListSchedule{repo: repo, tz: tz}
}

func (uc *ListSchedule) ByDate(
	ctx context.Context,
	staffID *uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	start, err := timezone.ParseDate(uc.tz, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return uc.list(ctx, staffID, start, start.AddDate(0, 0, 1))
}

func (uc *ListSchedule) ByMonth(
	ctx context.Context,
	staffID *uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.Location(uc.tz))
	return uc.list(ctx, staffID, start, start.AddDate(0, 1, 0))
}

func (uc *ListSchedule) list(
	ctx context.Context,
	staffID *uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		row := dto.AppointmentListDTO{
			ID:          ap.ID,
			Reference:   ap.Reference,
			Date:        ap.AppointmentDate.Format("2006-01-02"),
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  domain.ClientInfo{FirstName: ap.Client.FirstName, LastName: ap.Client.LastName}.FullName(),
			ClientPhone: ap.Client.Phone,
			StaffName:   domain.AnyStylistName,
			TotalPrice:  ap.TotalPrice,
		}
		if ap.Service != nil {
			row.ServiceName = ap.Service.Name
		}
		if ap.Staff != nil {
			row.StaffName = ap.Staff.Name
		}
		out = append(out, row)
	}
	return out, nil
}

// ======================================================
// Catalogue
// ======================================================

type ServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Active      *bool   `json:"active"`
	Position    int     `json:"position"`
}

type ManageCatalog struct {
	catalog domain.CatalogRepository
	writer  domain.CatalogWriter
	photos  media.PhotoStore
	audit   *audit.Dispatcher
	now     func() time.Time
}

// NewManageCatalog accepts a nil photo store; uploads then fail with
// photo_storage_disabled.
func NewManageCatalog(
	catalog domain.CatalogRepository,
	writer domain.CatalogWriter,
	photos media.PhotoStore,
	dispatcher *audit.Dispatcher,
) *ManageCatalog {
	return &ManageCatalog{
		catalog: catalog,
		writer:  writer,
		photos:  photos,
		audit:   dispatcher,
		now:     time.Now,
	}
}

func (uc *ManageCatalog) CreateService(ctx context.Context, adminID uint, in ServiceInput) (*models.Service, error) {
	if in.Category == domain.CategoryAll {
		return nil, httperr.ErrBusiness("invalid_category")
	}

	s := &models.Service{Active: true}
	applyService(s, in)
	if err := uc.writer.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: strconv.FormatUint(uint64(s.ID), 10),
		Metadata: in,
	})
	return s, nil
}

func (uc *ManageCatalog) UpdateService(ctx context.Context, adminID uint, id uint, in ServiceInput) (*models.Service, error) {
	if in.Category == domain.CategoryAll {
		return nil, httperr.ErrBusiness("invalid_category")
	}

	s, err := uc.catalog.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	applyService(s, in)
	if err := uc.writer.UpdateService(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: strconv.FormatUint(uint64(s.ID), 10),
		Metadata: in,
	})
	return s, nil
}

func applyService(s *models.Service, in ServiceInput) {
	s.Name = in.Name
	s.Description = in.Description
	s.Category = in.Category
	s.DurationMin = in.DurationMin
	s.Price = in.Price
	s.Position = in.Position
	if in.Active != nil {
		s.Active = *in.Active
	}
}

// UploadStaffPhoto stores a resized webp copy of the upload and points the
// stylist's profile at it.
func (uc *ManageCatalog) UploadStaffPhoto(
	ctx context.Context,
	adminID uint,
	staffID uint,
	upload io.Reader,
) (string, error) {

	if uc.photos == nil {
		return "", httperr.ErrBusiness("photo_storage_disabled")
	}

	if _, err := uc.catalog.GetStaff(ctx, staffID); err != nil {
		return "", err
	}

	data, err := media.ProcessPhoto(upload, media.MaxPhotoSide)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	key := media.StaffPhotoKey(staffID, fmt.Sprintf("%d", uc.now().Unix()))
	url, err := uc.photos.Put(ctx, key, data, "image/webp")
	if err != nil {
		return "", err
	}

	if err := uc.writer.UpdateStaffImage(ctx, staffID, url); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "staff_photo_updated",
		Entity:   "staff",
		EntityID: strconv.FormatUint(uint64(staffID), 10),
		Metadata: map[string]any{"bytes": len(data)},
	})
	return url, nil
}
