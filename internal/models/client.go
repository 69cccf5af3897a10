package models

import "time"

// Client is the person an appointment is booked for. UserID links it to a
// login when the booking was made while signed in.
type Client struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`

	FirstName        string     `gorm:"size:100" json:"first_name"`
	LastName         string     `gorm:"size:100" json:"last_name"`
	Email            string     `gorm:"size:100;index" json:"email"`
	Phone            string     `gorm:"size:20" json:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	EmergencyContact string     `gorm:"size:255" json:"emergency_contact"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientIntake struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"uniqueIndex;not null" json:"client_id"`

	HairType           string   `gorm:"size:50" json:"hair_type"`
	HairTexture        string   `gorm:"size:50" json:"hair_texture"`
	HairCondition      string   `gorm:"size:50" json:"hair_condition"`
	ScalpSensitivity   string   `gorm:"size:50" json:"scalp_sensitivity"`
	PreviousServices   []string `gorm:"serializer:json" json:"previous_services"`
	Allergies          []string `gorm:"serializer:json" json:"allergies"`
	StylingPreferences []string `gorm:"serializer:json" json:"styling_preferences"`
	HairNotes          string   `gorm:"type:text" json:"hair_notes"`
	SpecialRequests    string   `gorm:"type:text" json:"special_requests"`
	Consent            bool     `json:"consent"`

	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
