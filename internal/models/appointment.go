package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// nil when the client asked for any available stylist
	StaffID *uint  `json:"staff_id"`
	Staff   *Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	AppointmentDate time.Time `gorm:"type:date;index" json:"appointment_date"`
	StartTime       string    `gorm:"size:5" json:"start_time"`
	EndTime         string    `gorm:"size:5" json:"end_time"`

	Status     string  `gorm:"size:20;default:'confirmed'" json:"status"`
	TotalPrice float64 `json:"total_price"`
	Notes      string  `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService links an appointment to the service it was booked for.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `gorm:"index" json:"service_id"`

	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
}
