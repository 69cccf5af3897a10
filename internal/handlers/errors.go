package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type errorInfo struct {
	status  int
	message string
}

var businessErrors = map[string]errorInfo{
	"session_not_found":     {http.StatusNotFound, "Booking session not found or expired."},
	"service_not_found":     {http.StatusNotFound, "Service not found."},
	"staff_not_found":       {http.StatusNotFound, "Stylist not found."},
	"appointment_not_found": {http.StatusNotFound, "Appointment not found."},

	"already_confirmed":        {http.StatusConflict, "This appointment is already confirmed."},
	"confirmation_in_progress": {http.StatusConflict, "This appointment is being confirmed."},
	"time_conflict":            {http.StatusConflict, "That time is no longer available. Please choose another slot."},
	"invalid_state":            {http.StatusConflict, "The appointment can no longer be changed."},

	"not_on_confirmation_step": {http.StatusUnprocessableEntity, "Review your booking before confirming."},
	"incomplete_booking":       {http.StatusUnprocessableEntity, "Some booking details are missing."},
	"service_required":         {http.StatusUnprocessableEntity, "Choose a service first."},
	"staff_required":           {http.StatusUnprocessableEntity, "Choose a stylist first."},

	"invalid_date":     {http.StatusBadRequest, "Invalid date."},
	"invalid_month":    {http.StatusBadRequest, "Invalid month."},
	"invalid_datetime": {http.StatusBadRequest, "Invalid date or time."},
	"invalid_time":     {http.StatusBadRequest, "Invalid time."},
	"invalid_duration": {http.StatusBadRequest, "Invalid duration."},
	"invalid_category": {http.StatusBadRequest, "Invalid category."},
	"invalid_image":    {http.StatusBadRequest, "The file is not a supported image."},
	"image_too_large":  {http.StatusRequestEntityTooLarge, "The image is too large."},

	"photo_storage_disabled": {http.StatusServiceUnavailable, "Photo uploads are not configured."},
}

// writeError maps business codes to their status; anything else is a 500
// with the given fallback code.
func writeError(c *gin.Context, err error, fallbackCode string) {
	code := httperr.BusinessCode(err)
	if info, ok := businessErrors[code]; ok {
		httperr.Write(c, info.status, code, info.message)
		return
	}
	if code != "" {
		httperr.BadRequest(c, code, "Invalid request.")
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, fallbackCode, "Something went wrong. Please try again.")
}
