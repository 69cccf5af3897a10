package booking

import "time"

type Step int

const (
	StepService Step = iota + 1
	StepStaff
	StepDateTime
	StepDetails
	StepConfirmation
)

const TotalSteps = 5

type StepInfo struct {
	ID          Step   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Steps = []StepInfo{
	{StepService, "Service", "Choose your service"},
	{StepStaff, "Stylist", "Select your stylist"},
	{StepDateTime, "Date & Time", "Pick your appointment"},
	{StepDetails, "Details", "Your information"},
	{StepConfirmation, "Confirmation", "Review & confirm"},
}

// CanProceed reports whether the slices the step collects are present.
func CanProceed(step Step, agg Aggregate) bool {
	switch step {
	case StepService:
		return agg.Service != nil
	case StepStaff:
		return agg.Staff != nil
	case StepDateTime:
		return agg.DateTime != nil
	case StepDetails:
		return agg.ClientInfo != nil && agg.IntakeForm != nil
	default:
		return true
	}
}

// Wizard is one booking in progress.
type Wizard struct {
	ID        string    `json:"id"`
	UserID    *uint     `json:"user_id,omitempty"`
	Step      Step      `json:"step"`
	Data      Aggregate `json:"data"`
	Confirmed bool      `json:"is_confirmed"`

	// set once the booking is written
	Reference   string `json:"reference,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewWizard(id string, userID *uint, now time.Time) *Wizard {
	return &Wizard{
		ID:        id,
		UserID:    userID,
		Step:      StepService,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (w *Wizard) Update(update Aggregate, now time.Time) {
	w.Data = w.Data.Merge(update)
	w.UpdatedAt = now
}

func (w *Wizard) CanProceed() bool {
	return CanProceed(w.Step, w.Data)
}

// Next moves forward one step. It is a no-op on the last step.
func (w *Wizard) Next(now time.Time) bool {
	if w.Step >= TotalSteps {
		return false
	}
	if !w.CanProceed() {
		return false
	}
	w.Step++
	w.UpdatedAt = now
	return true
}

// Prev moves back one step, never below the first.
func (w *Wizard) Prev(now time.Time) bool {
	if w.Step <= StepService {
		return false
	}
	w.Step--
	w.UpdatedAt = now
	return true
}

func (w *Wizard) Progress() int {
	return int(w.Step) * 100 / TotalSteps
}

func (w *Wizard) StepInfo() StepInfo {
	if w.Step < StepService || w.Step > StepConfirmation {
		return StepInfo{}
	}
	return Steps[w.Step-1]
}
