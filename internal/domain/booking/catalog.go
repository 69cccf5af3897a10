package booking

import "github.com/BruksfildServices01/salon-booking/internal/models"

const (
	CategoryAll      = "All"
	AnyStylistName   = "Any Available Stylist"
	anyStylistDetail = "Let us assign the best available stylist for your service"
)

// FilterByCategory returns every service for "All" (or an empty filter) and
// the services whose category equals the filter otherwise.
func FilterByCategory(services []models.Service, category string) []models.Service {
	if category == "" || category == CategoryAll {
		return services
	}

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Categories lists "All" followed by each distinct category in first-seen order.
func Categories(services []models.Service) []string {
	seen := map[string]bool{}
	out := []string{CategoryAll}
	for _, s := range services {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}

func ActiveStaff(staff []models.Staff) []models.Staff {
	out := make([]models.Staff, 0, len(staff))
	for _, s := range staff {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

func SelectService(s models.Service) ServiceSelection {
	return ServiceSelection{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		DurationMin: s.DurationMin,
		Price:       s.Price,
	}
}

func SelectStaff(s models.Staff) StaffSelection {
	return StaffSelection{ID: s.ID, Name: s.Name, Title: s.Title}
}

func AnyStylist() StaffSelection {
	return StaffSelection{Name: AnyStylistName, Title: anyStylistDetail, Any: true}
}
