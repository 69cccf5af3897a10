package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC, id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

// ListStaff returns every stylist, active or not, in id order.
func (r *CatalogGormRepository) ListStaff(
	ctx context.Context,
) ([]models.Staff, error) {

	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *CatalogGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var s models.Staff
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) UpdateStaffImage(
	ctx context.Context,
	staffID uint,
	url string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("id = ?", staffID).
		Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("staff_not_found")
	}
	return nil
}

// Compile-time check
var (
	_ domain.CatalogRepository = (*CatalogGormRepository)(nil)
	_ domain.CatalogWriter     = (*CatalogGormRepository)(nil)
)
