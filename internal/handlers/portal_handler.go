package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

type PortalHandler struct {
	list *usecase.ListPortal
}

func NewPortalHandler(list *usecase.ListPortal) *PortalHandler {
	return &PortalHandler{list: list}
}

// GET /api/portal/appointments
func (h *PortalHandler) Appointments(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Sign in to see your appointments.")
		return
	}

	overview, err := h.list.Execute(c.Request.Context(), domain.PortalIdentity{
		UserID: userID,
		Email:  c.GetString(middleware.ContextUserEmail),
	})
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.OK(c, overview)
}
