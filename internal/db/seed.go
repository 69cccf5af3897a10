package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func DefaultServices() []models.Service {
	return []models.Service{
		{Name: "Women's Haircut", Description: "Precision cut with wash, style, and consultation", Category: "Cut", DurationMin: 60, Price: 85, Position: 1},
		{Name: "Men's Haircut", Description: "Classic or modern cut with wash and style", Category: "Cut", DurationMin: 45, Price: 65, Position: 2},
		{Name: "Full Color", Description: "Complete color transformation with toner and style", Category: "Color", DurationMin: 180, Price: 150, Position: 3},
		{Name: "Highlights", Description: "Partial or full highlights with toner and style", Category: "Color", DurationMin: 150, Price: 120, Position: 4},
		{Name: "Color Touch-Up", Description: "Root touch-up and refresh existing color", Category: "Color", DurationMin: 90, Price: 95, Position: 5},
		{Name: "Blowout & Style", Description: "Professional wash, blow dry, and styling", Category: "Style", DurationMin: 45, Price: 45, Position: 6},
		{Name: "Deep Conditioning Treatment", Description: "Intensive hair treatment for damaged or dry hair", Category: "Treatment", DurationMin: 60, Price: 65, Position: 7},
		{Name: "Keratin Treatment", Description: "Smoothing treatment to reduce frizz and add shine", Category: "Treatment", DurationMin: 240, Price: 300, Position: 8},
	}
}

func DefaultStaff() []models.Staff {
	return []models.Staff{
		{
			Name:        "Julio Casillas",
			Title:       "Master Stylist & Owner",
			Bio:         "With over 15 years of experience, Julio specializes in precision cuts and advanced color techniques. He has trained with top stylists in New York and Paris.",
			Specialties: []string{"Precision Cuts", "Color Correction", "Balayage", "Keratin Treatments"},
			Experience:  "15+ years",
			Rating:      5.0,
			Active:      true,
		},
		{
			Name:        "Maria Santos",
			Title:       "Senior Colorist",
			Bio:         "Maria is our color specialist with a passion for creating stunning transformations. She excels in highlights, balayage, and creative color work.",
			Specialties: []string{"Highlights", "Balayage", "Creative Color", "Color Correction"},
			Experience:  "8+ years",
			Rating:      4.9,
			Active:      true,
		},
		{
			Name:        "David Kim",
			Title:       "Style Director",
			Bio:         "David brings modern techniques and classic styling expertise. He specializes in men's cuts and contemporary women's styles.",
			Specialties: []string{"Men's Cuts", "Modern Styling", "Beard Trimming", "Wedding Styles"},
			Experience:  "10+ years",
			Rating:      4.8,
			Active:      true,
		},
		{
			Name:        "Sofia Rodriguez",
			Title:       "Treatment Specialist",
			Bio:         "Sofia focuses on hair health and restoration. She is certified in various treatment techniques and specializes in damaged hair recovery.",
			Specialties: []string{"Deep Treatments", "Keratin", "Hair Restoration", "Scalp Care"},
			Experience:  "6+ years",
			Rating:      4.9,
			Active:      false,
		},
	}
}

// Seed fills an empty catalogue. Existing rows are never touched.
func Seed(db *gorm.DB, logger *logging.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Service{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			services := DefaultServices()
			if err := tx.Create(&services).Error; err != nil {
				return err
			}
			logger.Info("seeded services", "count", len(services))
		}

		if err := tx.Model(&models.Staff{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		staff := DefaultStaff()
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}
		// active has a column default, so false is skipped on insert
		for _, s := range staff {
			if s.Active {
				continue
			}
			if err := tx.Model(&models.Staff{}).
				Where("id = ?", s.ID).
				Update("active", false).Error; err != nil {
				return err
			}
		}
		logger.Info("seeded staff", "count", len(staff))
		return nil
	})
}

// EnsureAdmin creates or promotes the configured admin account. Empty
// credentials skip it.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role == models.RoleAdmin {
			return nil
		}
		return db.Model(&user).Update("role", models.RoleAdmin).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:         "Salon Admin",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}).Error
}
