package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	usecase "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

type CatalogHandler struct {
	catalog *usecase.Catalog
}

func NewCatalogHandler(catalog *usecase.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/services?category=
func (h *CatalogHandler) Services(c *gin.Context) {
	services, err := h.catalog.Services(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err, "failed_to_list_services")
		return
	}
	httpresp.List(c, services)
}

// GET /api/services/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_list_categories")
		return
	}
	httpresp.List(c, categories)
}

// GET /api/staff
func (h *CatalogHandler) Staff(c *gin.Context) {
	staff, err := h.catalog.Staff(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_list_staff")
		return
	}
	httpresp.List(c, staff)
}
