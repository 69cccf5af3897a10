package booking

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/events"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/logging"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/payments"
)

const (
	SuccessMessage  = "Appointment booked successfully!"
	FailureMessage  = "Failed to book appointment. Please try again."
	ConflictMessage = "That time is no longer available. Please choose another slot."

	followUpTimeout = 15 * time.Second
)

// Notification is the transient message shown after a confirmation attempt.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type ConfirmResult struct {
	Session      *domain.Wizard `json:"session"`
	Notification Notification   `json:"notification"`
}

type ConfirmDeps struct {
	Store     domain.SessionStore
	Slots     *SlotPlanner
	Submitter Submitter
	Backend   string
	Audit     *audit.Dispatcher
	Events    events.Publisher
	Email     notify.EmailSender
	Checkout  payments.CheckoutLinker
	Metrics   *metrics.BookingMetrics
	Logger    *logging.Logger
	SalonName string
}

type ConfirmBooking struct {
	ConfirmDeps
	now func() time.Time

	// follow-ups still sending
	inflight sync.WaitGroup
}

func NewConfirmBooking(deps ConfirmDeps) *ConfirmBooking {
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if deps.Events == nil {
		deps.Events = events.NewNoopPublisher(deps.Logger)
	}
	if deps.Email == nil {
		deps.Email = notify.NewStubEmailSender(deps.Logger)
	}
	if deps.Checkout == nil {
		deps.Checkout = payments.NoCheckout{}
	}
	return &ConfirmBooking{ConfirmDeps: deps, now: time.Now}
}

// Execute writes the booking for a session on its last step. The chosen
// time must still be an open slot. On a primary write failure the session
// is left unconfirmed and the caller may simply retry. Once the write
// succeeds the session is marked confirmed before anything else, so a
// later failure can not lead to a second booking.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	sessionID string,
	userID *uint,
) (*ConfirmResult, error) {

	w, err := uc.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ready(w); err != nil {
		return nil, err
	}

	ok, err := uc.Store.AcquireConfirm(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("confirmation_in_progress")
	}
	defer func() {
		if err := uc.Store.ReleaseConfirm(context.WithoutCancel(ctx), sessionID); err != nil {
			uc.Logger.Warn("confirm lock not released", "session_id", sessionID, "error", err)
		}
	}()

	// another request may have finished between the first load and the lock
	w, err = uc.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ready(w); err != nil {
		return nil, err
	}

	if err := uc.Slots.Check(ctx, w.Data); err != nil {
		return nil, err
	}

	owner := w.UserID
	if owner == nil {
		owner = userID
	}

	res, err := uc.Submitter.Submit(ctx, owner, w.Data)
	if err != nil {
		uc.Metrics.ObserveSubmission(uc.Backend, false)
		uc.Logger.Error("booking not written", "session_id", sessionID, "backend", uc.Backend, "error", err)
		return nil, err
	}
	uc.Metrics.ObserveSubmission(uc.Backend, true)

	marked, err := uc.Store.MarkConfirmed(ctx, sessionID, res.Reference)
	switch {
	case err != nil:
		uc.Logger.Error("confirmed marker not set", "session_id", sessionID, "reference", res.Reference, "error", err)
	case !marked:
		uc.Logger.Warn("session was already marked confirmed", "session_id", sessionID, "reference", res.Reference)
	}

	checkoutURL, err := uc.Checkout.CreateCheckout(ctx, payments.Checkout{
		Reference:   res.Reference,
		ServiceName: w.Data.Service.Name,
		Price:       w.Data.Service.Price,
	})
	uc.Metrics.ObserveFollowUp("checkout", err)
	if err != nil {
		uc.Logger.Warn("checkout link not created", "reference", res.Reference, "error", err)
	}

	w.Confirmed = true
	w.Reference = res.Reference
	w.CheckoutURL = checkoutURL
	w.UpdatedAt = uc.now()
	if w.UserID == nil {
		w.UserID = owner
	}
	if err := uc.Store.Save(ctx, w); err != nil {
		uc.Logger.Error("confirmed session not saved", "session_id", sessionID, "reference", res.Reference, "error", err)
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   owner,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: res.Reference,
		Metadata: map[string]any{
			"backend": uc.Backend,
			"service": w.Data.Service.Name,
			"date":    w.Data.DateTime.Date,
			"time":    w.Data.DateTime.Time,
		},
	})

	uc.followUp(ctx, w, res)

	return &ConfirmResult{
		Session:      w,
		Notification: Notification{Level: "success", Message: SuccessMessage},
	}, nil
}

// Wait blocks until every background follow-up has finished.
func (uc *ConfirmBooking) Wait() {
	uc.inflight.Wait()
}

func (uc *ConfirmBooking) followUp(ctx context.Context, w *domain.Wizard, res *Submitted) {
	agg := w.Data
	ev := events.BookingConfirmed{
		Reference:   res.Reference,
		Backend:     uc.Backend,
		ServiceName: agg.Service.Name,
		StaffName:   agg.Staff.Name,
		Date:        agg.DateTime.Date,
		Time:        agg.DateTime.Time,
		ClientEmail: agg.ClientInfo.Email,
		Price:       agg.Service.Price,
		ConfirmedAt: uc.now().UTC(),
	}
	msg := notify.ConfirmationEmail(notify.Confirmation{
		SalonName:   uc.SalonName,
		ClientName:  agg.ClientInfo.FullName(),
		ClientEmail: agg.ClientInfo.Email,
		Reference:   res.Reference,
		ServiceName: agg.Service.Name,
		StaffName:   agg.Staff.Name,
		Date:        agg.DateTime.Date,
		Time:        agg.DateTime.Time,
		EndTime:     res.EndTime,
		Price:       agg.Service.Price,
		CheckoutURL: w.CheckoutURL,
	})

	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()

		bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
		defer cancel()

		err := uc.Events.PublishBookingConfirmed(bg, ev)
		uc.Metrics.ObserveFollowUp("event", err)
		if err != nil {
			uc.Logger.Warn("booking event not published", "reference", res.Reference, "error", err)
		}

		err = uc.Email.Send(bg, msg)
		uc.Metrics.ObserveFollowUp("email", err)
		if err != nil {
			uc.Logger.Warn("confirmation email not sent", "reference", res.Reference, "error", err)
		}
	}()
}

func ready(w *domain.Wizard) error {
	if w.Confirmed {
		return httperr.ErrBusiness("already_confirmed")
	}
	if w.Step != domain.StepConfirmation {
		return httperr.ErrBusiness("not_on_confirmation_step")
	}
	if !w.Data.Complete() {
		return httperr.ErrBusiness("incomplete_booking")
	}
	return nil
}
