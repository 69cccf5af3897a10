package models

import "time"

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Title       string   `gorm:"size:100" json:"title"`
	Email       string   `gorm:"size:100" json:"email"`
	Phone       string   `gorm:"size:20" json:"phone"`
	Bio         string   `gorm:"type:text" json:"bio"`
	Specialties []string `gorm:"serializer:json" json:"specialties"`
	Experience  string   `gorm:"size:50" json:"experience"`
	Rating      float64  `json:"rating"`
	ImageURL    string   `gorm:"size:255" json:"image_url"`
	Active      bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffAvailability is the weekly window a stylist takes bookings in.
type StaffAvailability struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_staff_weekday,unique" json:"staff_id"`

	Weekday   int    `gorm:"index:idx_staff_weekday,unique" json:"weekday"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Available bool   `json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
