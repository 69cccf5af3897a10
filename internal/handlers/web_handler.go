package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/logging"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-booking/internal/web"
)

type WebHandler struct {
	catalog   *usecase.Catalog
	salonName string
	logger    *logging.Logger
}

func NewWebHandler(catalog *usecase.Catalog, salonName string, logger *logging.Logger) *WebHandler {
	return &WebHandler{catalog: catalog, salonName: salonName, logger: logger}
}

func (h *WebHandler) page(title string) gin.H {
	return gin.H{
		"Title":     title,
		"SalonName": h.salonName,
		"Year":      time.Now().Year(),
	}
}

// GET /
func (h *WebHandler) Home(c *gin.Context) {
	data := h.page("Home")
	data["Highlights"] = web.SignatureServices
	data["Testimonials"] = web.Testimonials
	c.HTML(http.StatusOK, "home.html", data)
}

// GET /book?category=
func (h *WebHandler) Book(c *gin.Context) {
	ctx := c.Request.Context()

	services, err := h.catalog.Services(ctx, c.Query("category"))
	if err != nil {
		h.logger.Error("book page: services", "error", err)
		c.String(http.StatusInternalServerError, "Could not load services.")
		return
	}
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Error("book page: categories", "error", err)
		c.String(http.StatusInternalServerError, "Could not load services.")
		return
	}
	staff, err := h.catalog.Staff(ctx)
	if err != nil {
		h.logger.Error("book page: staff", "error", err)
		c.String(http.StatusInternalServerError, "Could not load stylists.")
		return
	}

	data := h.page("Book Appointment")
	data["Services"] = services
	data["Categories"] = categories
	data["Staff"] = staff
	c.HTML(http.StatusOK, "book.html", data)
}

// GET /portal
func (h *WebHandler) Portal(c *gin.Context) {
	c.HTML(http.StatusOK, "portal.html", h.page("My Appointments"))
}

// GET /auth
func (h *WebHandler) Auth(c *gin.Context) {
	c.HTML(http.StatusOK, "auth.html", h.page("Sign In"))
}
