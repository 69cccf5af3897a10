package dto

// Reminder is what the reminder job needs to text a client about tomorrow.
type Reminder struct {
	Reference   string
	ClientName  string
	ClientPhone string
	ServiceName string
	StaffName   string
	Date        string
	Time        string
}
