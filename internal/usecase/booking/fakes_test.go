package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/events"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
)

const testTZ = "UTC"

var errBackend = errors.New("backend unavailable")

// --------------------------------------------------
// Sessions
// --------------------------------------------------

type memoryStore struct {
	mu        sync.Mutex
	sessions  map[string]domain.Wizard
	locks     map[string]bool
	confirmed map[string]string
	saveErr   error

	// runs once, before the next save is applied
	beforeSave func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions:  map[string]domain.Wizard{},
		locks:     map[string]bool{},
		confirmed: map[string]string{},
	}
}

func (m *memoryStore) Save(_ context.Context, w *domain.Wizard) error {
	if hook := m.takeBeforeSave(); hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.confirmed[w.ID]; ok && !w.Confirmed {
		return httperr.ErrBusiness("already_confirmed")
	}
	m.sessions[w.ID] = *w
	return nil
}

func (m *memoryStore) takeBeforeSave() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	hook := m.beforeSave
	m.beforeSave = nil
	return hook
}

func (m *memoryStore) Load(_ context.Context, id string) (*domain.Wizard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.sessions[id]
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if ref, ok := m.confirmed[id]; ok {
		w.Confirmed = true
		if w.Reference == "" {
			w.Reference = ref
		}
	}
	return &w, nil
}

func (m *memoryStore) MarkConfirmed(_ context.Context, id string, reference string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.confirmed[id]; ok {
		return false, nil
	}
	m.confirmed[id] = reference
	return true, nil
}

func (m *memoryStore) AcquireConfirm(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[id] {
		return false, nil
	}
	m.locks[id] = true
	return true, nil
}

func (m *memoryStore) ReleaseConfirm(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
	return nil
}

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

type fakeCatalog struct {
	services []models.Service
	staff    []models.Staff
}

func seedCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: []models.Service{
			{ID: 1, Name: "Women's Haircut", Category: "Cut", DurationMin: 60, Price: 85, Active: true},
			{ID: 2, Name: "Full Color", Category: "Color", DurationMin: 180, Price: 150, Active: true},
			{ID: 3, Name: "Retired Perm", Category: "Style", DurationMin: 90, Price: 70, Active: false},
		},
		staff: []models.Staff{
			{ID: 1, Name: "Julio Casillas", Title: "Master Stylist & Owner", Active: true},
			{ID: 2, Name: "Maria Santos", Title: "Senior Colorist", Active: true},
			{ID: 4, Name: "Sofia Rodriguez", Title: "Treatment Specialist", Active: false},
		},
	}
}

func (f *fakeCatalog) ListServices(context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (f *fakeCatalog) ListStaff(context.Context) ([]models.Staff, error) {
	return f.staff, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, id uint) (*models.Staff, error) {
	for _, s := range f.staff {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, httperr.ErrBusiness("staff_not_found")
}

func (f *fakeCatalog) CreateService(_ context.Context, s *models.Service) error {
	s.ID = uint(len(f.services) + 1)
	f.services = append(f.services, *s)
	return nil
}

func (f *fakeCatalog) UpdateService(_ context.Context, s *models.Service) error {
	for i := range f.services {
		if f.services[i].ID == s.ID {
			f.services[i] = *s
		}
	}
	return nil
}

func (f *fakeCatalog) UpdateStaffImage(_ context.Context, id uint, url string) error {
	for i := range f.staff {
		if f.staff[i].ID == id {
			f.staff[i].ImageURL = url
		}
	}
	return nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

type fakeRelational struct {
	calls        []string
	clients      []models.Client
	appointments []models.Appointment
	links        []models.AppointmentService

	clientErr      error
	intakeErr      error
	conflictErr    error
	appointmentErr error
	linkErr        error
}

func (f *fakeRelational) EnsureClient(_ context.Context, userID *uint, info domain.ClientInfo) (*models.Client, error) {
	f.calls = append(f.calls, "client")
	if f.clientErr != nil {
		return nil, f.clientErr
	}
	c := models.Client{ID: 10, UserID: userID, FirstName: info.FirstName, Email: info.Email}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeRelational) UpsertIntake(context.Context, *models.ClientIntake) error {
	f.calls = append(f.calls, "intake")
	return f.intakeErr
}

func (f *fakeRelational) AssertNoTimeConflict(context.Context, uint, time.Time, string, string) error {
	f.calls = append(f.calls, "conflict")
	return f.conflictErr
}

func (f *fakeRelational) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.calls = append(f.calls, "appointment")
	if f.appointmentErr != nil {
		return f.appointmentErr
	}
	ap.ID = uint(len(f.appointments) + 1)
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRelational) CreateAppointmentService(_ context.Context, link *models.AppointmentService) error {
	f.calls = append(f.calls, "link")
	if f.linkErr != nil {
		return f.linkErr
	}
	f.links = append(f.links, *link)
	return nil
}

type fakeDocument struct {
	bookings []models.Booking
	err      error
}

func (f *fakeDocument) CreateBooking(_ context.Context, b *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

// --------------------------------------------------
// Schedule / portal / admin
// --------------------------------------------------

type fakeSchedule struct {
	availability map[uint]*models.StaffAvailability
	busy         []domain.Interval
	busyFor      *uint
}

func (f *fakeSchedule) GetStaffAvailability(_ context.Context, staffID uint, _ int) (*models.StaffAvailability, error) {
	return f.availability[staffID], nil
}

func (f *fakeSchedule) ListBusyIntervals(_ context.Context, staffID *uint, _ time.Time) ([]domain.Interval, error) {
	f.busyFor = staffID
	return f.busy, nil
}

type fakePortal struct {
	rows []dto.PortalAppointment
	who  domain.PortalIdentity
}

func (f *fakePortal) ListForClient(_ context.Context, who domain.PortalIdentity) ([]dto.PortalAppointment, error) {
	f.who = who
	return f.rows, nil
}

type fakeAdmin struct {
	appointments map[uint]*models.Appointment
	updated      []models.Appointment
	periodStart  time.Time
	periodEnd    time.Time
}

func (f *fakeAdmin) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (f *fakeAdmin) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.updated = append(f.updated, *ap)
	return nil
}

func (f *fakeAdmin) ListAppointmentsForPeriod(_ context.Context, _ *uint, start, end time.Time) ([]models.Appointment, error) {
	f.periodStart, f.periodEnd = start, end
	out := make([]models.Appointment, 0, len(f.appointments))
	for _, ap := range f.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

// --------------------------------------------------
// Follow-ups
// --------------------------------------------------

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingConfirmed
	err    error
}

func (r *recordingPublisher) PublishBookingConfirmed(_ context.Context, ev events.BookingConfirmed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

type recordingEmail struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
}

func (r *recordingEmail) Send(_ context.Context, msg notify.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func completeAggregate() domain.Aggregate {
	return domain.Aggregate{
		Service:    &domain.ServiceSelection{ID: 1, Name: "Women's Haircut", Category: "Cut", DurationMin: 90, Price: 85},
		Staff:      &domain.StaffSelection{ID: 2, Name: "Maria Santos"},
		DateTime:   &domain.DateTimeSelection{Date: "2030-03-14", Time: "17:30"},
		ClientInfo: &domain.ClientInfo{FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", Phone: "555-0100"},
		IntakeForm: &domain.IntakeForm{HairType: "Curly", HairCondition: "Healthy", Allergies: []string{"PPD"}, Consent: true},
	}
}

func readySession(store *memoryStore, id string) {
	w := domain.NewWizard(id, nil, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	w.Data = completeAggregate()
	w.Step = domain.StepConfirmation
	_ = store.Save(context.Background(), w)
}
