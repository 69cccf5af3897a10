package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

const maxPhotoUpload = 5 << 20

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	catalog  *usecase.ManageCatalog
	schedule *usecase.ListSchedule
	status   *usecase.ChangeStatus
}

func NewAdminHandler(
	catalog *usecase.ManageCatalog,
	schedule *usecase.ListSchedule,
	status *usecase.ChangeStatus,
) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		schedule: schedule,
		status:   status,
	}
}

// ======================================================
// SERVICES
// ======================================================

// POST /api/admin/services
func (h *AdminHandler) CreateService(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	var in usecase.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service, err := h.catalog.CreateService(c.Request.Context(), adminID, in)
	if err != nil {
		writeError(c, err, "failed_to_create_service")
		return
	}
	httpresp.Created(c, service)
}

// PUT /api/admin/services/:id
func (h *AdminHandler) UpdateService(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var in usecase.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service, err := h.catalog.UpdateService(c.Request.Context(), adminID, id, in)
	if err != nil {
		writeError(c, err, "failed_to_update_service")
		return
	}
	httpresp.OK(c, service)
}

// ======================================================
// STAFF PHOTO
// ======================================================

// POST /api/admin/staff/:id/photo (multipart field "photo")
func (h *AdminHandler) UploadStaffPhoto(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	staffID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoUpload)

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, httperr.ErrBusiness("image_too_large"), "image_too_large")
			return
		}
		httperr.BadRequest(c, "missing_photo", "Attach an image in the photo field.")
		return
	}
	defer file.Close()

	url, err := h.catalog.UploadStaffPhoto(c.Request.Context(), adminID, staffID, file)
	if err != nil {
		writeError(c, err, "failed_to_upload_photo")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}

// ======================================================
// SCHEDULE
// ======================================================

// GET /api/admin/appointments?date=YYYY-MM-DD&staff_id=
func (h *AdminHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	staffID, ok := optionalStaff(c)
	if !ok {
		return
	}

	list, err := h.schedule.ByDate(c.Request.Context(), staffID, date)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, list)
}

// GET /api/admin/appointments/month?year=2026&month=3&staff_id=
func (h *AdminHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	staffID, ok := optionalStaff(c)
	if !ok {
		return
	}

	list, err := h.schedule.ByMonth(c.Request.Context(), staffID, year, month)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

// PATCH /api/admin/appointments/:id/cancel
func (h *AdminHandler) Cancel(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.status.Cancel(c.Request.Context(), adminID, id)
	if err != nil {
		writeError(c, err, "failed_to_cancel")
		return
	}
	httpresp.OK(c, ap)
}

// PATCH /api/admin/appointments/:id/complete
func (h *AdminHandler) Complete(c *gin.Context) {
	adminID, _ := middleware.UserID(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.status.Complete(c.Request.Context(), adminID, id)
	if err != nil {
		writeError(c, err, "failed_to_complete")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// HELPERS
// ======================================================

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(v), true
}

func optionalStaff(c *gin.Context) (*uint, bool) {
	raw := c.Query("staff_id")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff id.")
		return nil, false
	}
	id := uint(v)
	return &id, true
}
