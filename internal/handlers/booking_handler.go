package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	sessions     *usecase.WizardSessions
	availability *usecase.GetAvailability
	confirm      *usecase.ConfirmBooking
}

func NewBookingHandler(
	sessions *usecase.WizardSessions,
	availability *usecase.GetAvailability,
	confirm *usecase.ConfirmBooking,
) *BookingHandler {
	return &BookingHandler{
		sessions:     sessions,
		availability: availability,
		confirm:      confirm,
	}
}

// ======================================================
// SESSION
// ======================================================

// POST /api/book/sessions
func (h *BookingHandler) Start(c *gin.Context) {
	w, err := h.sessions.Start(c.Request.Context(), middleware.UserIDPtr(c))
	if err != nil {
		writeError(c, err, "failed_to_start_session")
		return
	}
	httpresp.Created(c, usecase.NewSessionView(w))
}

// GET /api/book/sessions/:id
func (h *BookingHandler) Get(c *gin.Context) {
	w, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed_to_load_session")
		return
	}
	httpresp.OK(c, usecase.NewSessionView(w))
}

// PATCH /api/book/sessions/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var in usecase.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	w, err := h.sessions.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err, "failed_to_update_session")
		return
	}
	httpresp.OK(c, usecase.NewSessionView(w))
}

// POST /api/book/sessions/:id/next
func (h *BookingHandler) Next(c *gin.Context) {
	w, moved, err := h.sessions.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed_to_move_step")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"moved":   moved,
		"session": usecase.NewSessionView(w),
	})
}

// POST /api/book/sessions/:id/prev
func (h *BookingHandler) Prev(c *gin.Context) {
	w, moved, err := h.sessions.Prev(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed_to_move_step")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"moved":   moved,
		"session": usecase.NewSessionView(w),
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /api/book/sessions/:id/calendar?month=YYYY-MM
func (h *BookingHandler) Calendar(c *gin.Context) {
	days, err := h.availability.Calendar(c.Request.Context(), c.Param("id"), c.Query("month"))
	if err != nil {
		writeError(c, err, "failed_to_build_calendar")
		return
	}
	httpresp.List(c, days)
}

// GET /api/book/sessions/:id/slots?date=YYYY-MM-DD
func (h *BookingHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	slots, err := h.availability.Slots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		writeError(c, err, "failed_to_list_slots")
		return
	}
	httpresp.List(c, slots)
}

// ======================================================
// CONFIRM
// ======================================================

// POST /api/book/sessions/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	res, err := h.confirm.Execute(c.Request.Context(), c.Param("id"), middleware.UserIDPtr(c))
	if err == nil {
		c.JSON(http.StatusCreated, gin.H{
			"session":      usecase.NewSessionView(res.Session),
			"notification": res.Notification,
		})
		return
	}

	code := httperr.BusinessCode(err)
	switch code {
	case "time_conflict":
		c.JSON(http.StatusConflict, gin.H{
			"error_code":   code,
			"message":      usecase.ConflictMessage,
			"notification": usecase.Notification{Level: "error", Message: usecase.ConflictMessage},
		})
	case "":
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error_code":   "booking_failed",
			"message":      usecase.FailureMessage,
			"notification": usecase.Notification{Level: "error", Message: usecase.FailureMessage},
		})
	default:
		writeError(c, err, "booking_failed")
	}
}
