package dto

import "time"

// PortalAppointment is one row of the client's history, whichever backend
// wrote it.
type PortalAppointment struct {
	ID          string    `json:"id"`
	StartsAt    time.Time `json:"starts_at"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ServiceName string    `json:"service_name"`
	StaffName   string    `json:"staff_name"`
	Status      string    `json:"status"`
	Price       float64   `json:"price"`
}

type PortalStats struct {
	Upcoming   int     `json:"upcoming"`
	Visits     int     `json:"visits"`
	TotalSpent float64 `json:"total_spent"`
}

type PortalOverview struct {
	Upcoming []PortalAppointment `json:"upcoming"`
	Past     []PortalAppointment `json:"past"`
	Stats    PortalStats         `json:"stats"`
}
