package dto

type AppointmentListDTO struct {
	ID          uint    `json:"id"`
	Reference   string  `json:"reference"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Status      string  `json:"status"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	ServiceName string  `json:"service_name"`
	StaffName   string  `json:"staff_name"`
	TotalPrice  float64 `json:"total_price"`
}
