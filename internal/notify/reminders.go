package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
)

// ReminderJob texts every client booked for tomorrow. It never changes a
// booking; each sent reminder is audited.
type ReminderJob struct {
	repo      domain.ReminderRepository
	sms       SMSSender
	audit     *audit.Dispatcher
	logger    *logging.Logger
	salonName string
	loc       *time.Location
	now       func() time.Time
}

func NewReminderJob(
	repo domain.ReminderRepository,
	sms SMSSender,
	dispatcher *audit.Dispatcher,
	logger *logging.Logger,
	salonName string,
	loc *time.Location,
) *ReminderJob {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReminderJob{
		repo:      repo,
		sms:       sms,
		audit:     dispatcher,
		logger:    logger,
		salonName: salonName,
		loc:       loc,
		now:       time.Now,
	}
}

// Run sends the reminders and returns how many went out.
func (j *ReminderJob) Run(ctx context.Context) int {
	today := j.now().In(j.loc)
	tomorrow := time.Date(today.Year(), today.Month(), today.Day()+1, 0, 0, 0, 0, j.loc)

	reminders, err := j.repo.ListRemindersForDay(ctx, tomorrow)
	if err != nil {
		j.logger.Error("reminder lookup failed", "error", err)
		return 0
	}

	sent := 0
	for _, r := range reminders {
		if r.ClientPhone == "" {
			continue
		}

		body := ReminderText(j.salonName, r.ClientName, r.ServiceName, r.StaffName, r.Time)
		if err := j.sms.SendSMS(ctx, r.ClientPhone, body); err != nil {
			j.logger.Warn("reminder not sent", "reference", r.Reference, "error", err)
			continue
		}
		sent++

		j.audit.Dispatch(audit.Event{
			Action:   "reminder_sent",
			Entity:   "appointment",
			EntityID: r.Reference,
		})
	}

	j.logger.Info("reminders processed", "day", tomorrow.Format("2006-01-02"), "total", len(reminders), "sent", sent)
	return sent
}

// StartScheduler registers Run on spec (standard 5-field cron) in the salon
// timezone. Stop the returned cron on shutdown.
func (j *ReminderJob) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(j.loc))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		j.Run(ctx)
	}); err != nil {
		return nil, err
	}

	c.Start()
	j.logger.Info("reminder scheduler started", "cron", spec)
	return c, nil
}
