package models

import "time"

// Booking is the single denormalised record written by the document backend.
type Booking struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID *uint  `gorm:"index" json:"user_id"`

	ServiceID       uint    `json:"service_id"`
	ServiceName     string  `gorm:"size:100" json:"service_name"`
	ServicePrice    float64 `json:"service_price"`
	ServiceDuration int     `json:"service_duration"`

	StaffID   *uint  `json:"staff_id"`
	StaffName string `gorm:"size:100" json:"staff_name"`

	AppointmentDate time.Time `gorm:"type:date;index" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5" json:"appointment_time"`

	ClientFirstName  string `gorm:"size:100" json:"client_first_name"`
	ClientLastName   string `gorm:"size:100" json:"client_last_name"`
	ClientEmail      string `gorm:"size:100;index" json:"client_email"`
	ClientPhone      string `gorm:"size:20" json:"client_phone"`
	EmergencyContact string `gorm:"size:255" json:"emergency_contact"`

	// intake form as submitted, JSON encoded
	HairHistory string `gorm:"type:text" json:"hair_history"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
