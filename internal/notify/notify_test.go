package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
)

type fakeReminders struct {
	day  time.Time
	rows []dto.Reminder
	err  error
}

func (f *fakeReminders) ListRemindersForDay(_ context.Context, day time.Time) ([]dto.Reminder, error) {
	f.day = day
	return f.rows, f.err
}

type recordingSMS struct {
	to   []string
	body []string
	fail map[string]bool
}

func (r *recordingSMS) SendSMS(_ context.Context, to, body string) error {
	if r.fail[to] {
		return errors.New("undeliverable")
	}
	r.to = append(r.to, to)
	r.body = append(r.body, body)
	return nil
}

func TestReminderJobTextsTomorrow(t *testing.T) {
	repo := &fakeReminders{rows: []dto.Reminder{
		{Reference: "a", ClientName: "Ana", ClientPhone: "+15550001", ServiceName: "Highlights", StaffName: "Maria Santos", Time: "10:00"},
		{Reference: "b", ClientName: "Ben", ClientPhone: ""},
		{Reference: "c", ClientName: "Cy", ClientPhone: "+15550003"},
	}}
	sms := &recordingSMS{fail: map[string]bool{"+15550003": true}}

	job := NewReminderJob(repo, sms, nil, nil, "Julio Casillas Hair Salon", time.UTC)
	job.now = func() time.Time { return time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC) }

	sent := job.Run(context.Background())

	assert.Equal(t, 1, sent)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), repo.day)
	require.Len(t, sms.body, 1)
	assert.Contains(t, sms.body[0], "Highlights with Maria Santos is tomorrow at 10:00")
}

func TestReminderJobLookupFailure(t *testing.T) {
	job := NewReminderJob(&fakeReminders{err: errors.New("db down")}, &recordingSMS{}, nil, nil, "Salon", time.UTC)
	assert.Zero(t, job.Run(context.Background()))
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	job := NewReminderJob(&fakeReminders{}, &recordingSMS{}, nil, nil, "Salon", time.UTC)
	_, err := job.StartScheduler("not a cron")
	assert.Error(t, err)

	c, err := job.StartScheduler("0 9 * * *")
	require.NoError(t, err)
	c.Stop()
}

func TestConfirmationEmail(t *testing.T) {
	msg := ConfirmationEmail(Confirmation{
		SalonName:   "Julio Casillas Hair Salon",
		ClientName:  "Ana Lopez",
		ClientEmail: "ana@example.com",
		Reference:   "ref-123",
		ServiceName: "Women's Haircut",
		StaffName:   "Julio Casillas",
		Date:        "2026-03-14",
		Time:        "18:45",
		EndTime:     "19:45",
		Price:       85,
		CheckoutURL: "https://pay.example.com/x",
	})

	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Appointment confirmed: Women's Haircut on 2026-03-14", msg.Subject)
	assert.Contains(t, msg.Body, "18:45 - 19:45")
	assert.Contains(t, msg.Body, "$85.00")
	assert.Contains(t, msg.Body, "https://pay.example.com/x")
}
