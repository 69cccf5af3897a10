package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// UpdateInput is a partial wizard answer. Only the groups that are set are
// applied; everything else already chosen is kept.
type UpdateInput struct {
	ServiceID  *uint              `json:"service_id"`
	StaffID    *uint              `json:"staff_id"`
	AnyStaff   bool               `json:"any_staff"`
	Date       string             `json:"date"`
	Time       string             `json:"time"`
	ClientInfo *domain.ClientInfo `json:"client_info"`
	IntakeForm *domain.IntakeForm `json:"intake_form"`
}

// SessionView is what the wizard endpoints return.
type SessionView struct {
	*domain.Wizard
	StepInfo   domain.StepInfo `json:"step_info"`
	Progress   int             `json:"progress"`
	CanProceed bool            `json:"can_proceed"`
	Summary    domain.Summary  `json:"summary"`
	EndTime    string          `json:"end_time,omitempty"`
}

func NewSessionView(w *domain.Wizard) SessionView {
	v := SessionView{
		Wizard:     w,
		StepInfo:   w.StepInfo(),
		Progress:   w.Progress(),
		CanProceed: w.CanProceed(),
		Summary:    w.Data.Summary(),
	}
	if w.Data.Service != nil && w.Data.DateTime != nil {
		if end, err := domain.EndTime(w.Data.DateTime.Time, w.Data.Service.DurationMin); err == nil {
			v.EndTime = end
		}
	}
	return v
}

type WizardSessions struct {
	store   domain.SessionStore
	catalog domain.CatalogRepository
	metrics *metrics.BookingMetrics
	tz      string
	now     func() time.Time
}

func NewWizardSessions(
	store domain.SessionStore,
	catalog domain.CatalogRepository,
	m *metrics.BookingMetrics,
	tz string,
) *WizardSessions {
	return &WizardSessions{
		store:   store,
		catalog: catalog,
		metrics: m,
		tz:      tz,
		now:     time.Now,
	}
}

func (uc *WizardSessions) Start(ctx context.Context, userID *uint) (*domain.Wizard, error) {
	w := domain.NewWizard(uuid.NewString(), userID, uc.now())
	if err := uc.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *WizardSessions) Get(ctx context.Context, id string) (*domain.Wizard, error) {
	return uc.store.Load(ctx, id)
}

func (uc *WizardSessions) Update(
	ctx context.Context,
	id string,
	in UpdateInput,
) (*domain.Wizard, error) {

	w, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Confirmed {
		return nil, httperr.ErrBusiness("already_confirmed")
	}

	update, err := uc.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	w.Update(update, uc.now())
	if err := uc.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *WizardSessions) Next(ctx context.Context, id string) (*domain.Wizard, bool, error) {
	return uc.move(ctx, id, "next")
}

func (uc *WizardSessions) Prev(ctx context.Context, id string) (*domain.Wizard, bool, error) {
	return uc.move(ctx, id, "prev")
}

func (uc *WizardSessions) move(
	ctx context.Context,
	id string,
	direction string,
) (*domain.Wizard, bool, error) {

	w, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if w.Confirmed {
		return w, false, nil
	}

	var moved bool
	if direction == "next" {
		moved = w.Next(uc.now())
	} else {
		moved = w.Prev(uc.now())
	}
	uc.metrics.ObserveStep(direction, moved)

	if moved {
		if err := uc.store.Save(ctx, w); err != nil {
			return nil, false, err
		}
	}
	return w, moved, nil
}

// resolve turns ids into catalogue snapshots and checks that date and time
// parse in the salon timezone.
func (uc *WizardSessions) resolve(ctx context.Context, in UpdateInput) (domain.Aggregate, error) {
	var update domain.Aggregate

	if in.ServiceID != nil {
		s, err := uc.catalog.GetService(ctx, *in.ServiceID)
		if err != nil {
			return update, err
		}
		if !s.Active {
			return update, httperr.ErrBusiness("service_not_found")
		}
		sel := domain.SelectService(*s)
		update.Service = &sel
	}

	switch {
	case in.AnyStaff:
		sel := domain.AnyStylist()
		update.Staff = &sel
	case in.StaffID != nil:
		st, err := uc.catalog.GetStaff(ctx, *in.StaffID)
		if err != nil {
			return update, err
		}
		if !st.Active {
			return update, httperr.ErrBusiness("staff_not_found")
		}
		sel := domain.SelectStaff(*st)
		update.Staff = &sel
	}

	if in.Date != "" || in.Time != "" {
		if in.Date == "" || in.Time == "" {
			return update, httperr.ErrBusiness("invalid_datetime")
		}
		at, err := timezone.ParseDateTime(uc.tz, in.Date, in.Time)
		if err != nil {
			return update, httperr.ErrBusiness("invalid_datetime")
		}
		update.DateTime = &domain.DateTimeSelection{
			Date:      in.Date,
			Time:      in.Time,
			Formatted: fmt.Sprintf("%s at %s", at.Format("Monday, January 2, 2006"), at.Format("3:04 PM")),
		}
	}

	update.ClientInfo = in.ClientInfo
	update.IntakeForm = in.IntakeForm
	return update, nil
}
