package booking

// ServiceSelection is the catalogue entry picked in step 1, copied so the
// aggregate stays stable if the catalogue changes mid-booking.
type ServiceSelection struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type StaffSelection struct {
	// zero together with Any for "Any Available Stylist"
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Any   bool   `json:"any"`
}

type DateTimeSelection struct {
	Date      string `json:"date"` // 2006-01-02
	Time      string `json:"time"` // 15:04
	Formatted string `json:"formatted"`
}

type ClientInfo struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

type IntakeForm struct {
	PreviousServices   []string `json:"previous_services,omitempty"`
	HairCondition      string   `json:"hair_condition,omitempty"`
	HairType           string   `json:"hair_type,omitempty"`
	HairTexture        string   `json:"hair_texture,omitempty"`
	HairNotes          string   `json:"hair_notes,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	ScalpSensitivity   string   `json:"scalp_sensitivity,omitempty"`
	StylingPreferences []string `json:"styling_preferences,omitempty"`
	SpecialRequests    string   `json:"special_requests,omitempty"`
	Consent            bool     `json:"consent"`
}

// Aggregate accumulates the wizard selections. A nil slice means the step
// has not been answered yet.
type Aggregate struct {
	Service    *ServiceSelection  `json:"service"`
	Staff      *StaffSelection    `json:"staff"`
	DateTime   *DateTimeSelection `json:"date_time"`
	ClientInfo *ClientInfo        `json:"client_info"`
	IntakeForm *IntakeForm        `json:"intake_form"`
}

// Merge returns a copy of a where every non-nil slice of update replaces the
// corresponding slice. Slices absent from update are kept as they were.
func (a Aggregate) Merge(update Aggregate) Aggregate {
	out := a
	if update.Service != nil {
		out.Service = update.Service
	}
	if update.Staff != nil {
		out.Staff = update.Staff
	}
	if update.DateTime != nil {
		out.DateTime = update.DateTime
	}
	if update.ClientInfo != nil {
		out.ClientInfo = update.ClientInfo
	}
	if update.IntakeForm != nil {
		out.IntakeForm = update.IntakeForm
	}
	return out
}

func (a Aggregate) Complete() bool {
	return a.Service != nil &&
		a.Staff != nil &&
		a.DateTime != nil &&
		a.ClientInfo != nil &&
		a.IntakeForm != nil
}

// Summary mirrors the review panel of the details step. It is informational
// and never blocks advancing.
type Summary struct {
	PersonalInfoComplete bool `json:"personal_info_complete"`
	HairProfileComplete  bool `json:"hair_profile_complete"`
	ConsentGiven         bool `json:"consent_given"`
}

func (a Aggregate) Summary() Summary {
	var s Summary
	if c := a.ClientInfo; c != nil {
		s.PersonalInfoComplete = c.FirstName != "" && c.LastName != "" && c.Email != "" && c.Phone != ""
	}
	if f := a.IntakeForm; f != nil {
		s.HairProfileComplete = f.HairCondition != "" && f.HairType != ""
		s.ConsentGiven = f.Consent
	}
	return s
}

func (c ClientInfo) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
