package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type StaffOption struct {
	domain.StaffSelection
	Bio         string   `json:"bio,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

type Catalog struct {
	repo domain.CatalogRepository
}

func NewCatalog(repo domain.CatalogRepository) *Catalog {
	return &Catalog{repo: repo}
}

func (uc *Catalog) Services(ctx context.Context, category string) ([]models.Service, error) {
	services, err := uc.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterByCategory(services, category), nil
}

func (uc *Catalog) Categories(ctx context.Context) ([]string, error) {
	services, err := uc.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(services), nil
}

// Staff lists active stylists followed by the "any stylist" option.
func (uc *Catalog) Staff(ctx context.Context) ([]StaffOption, error) {
	all, err := uc.repo.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	active := domain.ActiveStaff(all)
	out := make([]StaffOption, 0, len(active)+1)
	for _, s := range active {
		out = append(out, StaffOption{
			StaffSelection: domain.SelectStaff(s),
			Bio:            s.Bio,
			Specialties:    s.Specialties,
			Experience:     s.Experience,
			Rating:         s.Rating,
			ImageURL:       s.ImageURL,
		})
	}
	out = append(out, StaffOption{StaffSelection: domain.AnyStylist()})
	return out, nil
}
