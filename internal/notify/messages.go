package notify

import (
	"fmt"
	"strings"
)

// Confirmation is what the client is told after booking.
type Confirmation struct {
	SalonName   string
	ClientName  string
	ClientEmail string
	Reference   string
	ServiceName string
	StaffName   string
	Date        string
	Time        string
	EndTime     string
	Price       float64
	CheckoutURL string
}

func ConfirmationEmail(c Confirmation) EmailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", c.ClientName)
	fmt.Fprintf(&b, "Your appointment at %s is confirmed.\n\n", c.SalonName)
	fmt.Fprintf(&b, "Service: %s\n", c.ServiceName)
	fmt.Fprintf(&b, "Stylist: %s\n", c.StaffName)
	fmt.Fprintf(&b, "When: %s, %s - %s\n", c.Date, c.Time, c.EndTime)
	fmt.Fprintf(&b, "Price: $%.2f\n", c.Price)
	fmt.Fprintf(&b, "Reference: %s\n", c.Reference)
	if c.CheckoutURL != "" {
		fmt.Fprintf(&b, "\nPay ahead: %s\n", c.CheckoutURL)
	}
	b.WriteString("\nPlease arrive 10 minutes early. Need to reschedule? Reply to this email.\n")

	return EmailMessage{
		To:      c.ClientEmail,
		ToName:  c.ClientName,
		Subject: fmt.Sprintf("Appointment confirmed: %s on %s", c.ServiceName, c.Date),
		Body:    b.String(),
	}
}

func ReminderText(salon, client, service, staff, clock string) string {
	return fmt.Sprintf(
		"Hi %s, a reminder from %s: your %s with %s is tomorrow at %s. Reply to reschedule.",
		client, salon, service, staff, clock,
	)
}
