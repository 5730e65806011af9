package handler

import (
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
	"clinic-booking-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore backs the handler tests with in-memory state. It implements every
// store interface the services consume.
type fakeStore struct {
	mu           sync.Mutex
	doctors      map[string]*models.Doctor
	patients     map[string]*models.Patient
	slots        map[string]*models.TimeSlot
	appointments map[string]*models.Appointment
	bookCalls    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		doctors:      make(map[string]*models.Doctor),
		patients:     make(map[string]*models.Patient),
		slots:        make(map[string]*models.TimeSlot),
		appointments: make(map[string]*models.Appointment),
	}
}

func (f *fakeStore) addDoctor(firstName, lastName, specialization string) *models.Doctor {
	d := &models.Doctor{
		ID:             uuid.NewString(),
		UserID:         uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Specialization: specialization,
	}
	f.doctors[d.ID] = d
	return d
}

func (f *fakeStore) addPatient(firstName, lastName, email, phone string) *models.Patient {
	p := &models.Patient{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}
	f.patients[p.ID] = p
	return p
}

func (f *fakeStore) addSlot(doctorID string, start time.Time, status string) *models.TimeSlot {
	s := &models.TimeSlot{
		ID:        uuid.NewString(),
		DoctorID:  doctorID,
		StartTime: start,
		EndTime:   start.Add(models.SlotDuration),
		Status:    status,
	}
	f.slots[s.ID] = s
	return s
}

func (f *fakeStore) GetDoctorByID(id string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperrors.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeStore) GetPatientByID(id string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetSlotByID(id string) (*models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, apperrors.ErrTimeSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) slotsWhere(keep func(*models.TimeSlot) bool) []models.TimeSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TimeSlot
	for _, s := range f.slots {
		if keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (f *fakeStore) GetSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	return f.slotsWhere(func(s *models.TimeSlot) bool {
		return s.DoctorID == doctorID && sameDay(s.StartTime, date)
	}), nil
}

func (f *fakeStore) GetAvailableSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	return f.slotsWhere(func(s *models.TimeSlot) bool {
		return s.DoctorID == doctorID && sameDay(s.StartTime, date) && s.Status == models.SlotAvailable
	}), nil
}

func (f *fakeStore) GetUpcomingSlotsByDoctor(doctorID string) ([]models.TimeSlot, error) {
	now := time.Now()
	return f.slotsWhere(func(s *models.TimeSlot) bool {
		return s.DoctorID == doctorID && !s.StartTime.Before(now)
	}), nil
}

func (f *fakeStore) CreateSlots(slots []models.TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		cp := slots[i]
		f.slots[cp.ID] = &cp
	}
	return nil
}

func (f *fakeStore) UpdateSlotStatus(id, status string) (*models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, apperrors.ErrTimeSlotNotFound
	}
	s.Status = status
	cp := *s
	return &cp, nil
}

func (f *fakeStore) MarkSlotsUnavailable(ids []string) ([]models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	updated := []models.TimeSlot{}
	for _, id := range ids {
		s, ok := f.slots[id]
		if !ok || s.Status != models.SlotAvailable {
			continue
		}
		s.Status = models.SlotUnavailable
		updated = append(updated, *s)
	}
	return updated, nil
}

func (f *fakeStore) BookAppointment(appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookCalls++
	s, ok := f.slots[appt.TimeSlotID]
	if !ok {
		return apperrors.ErrTimeSlotNotFound
	}
	if s.Status != models.SlotAvailable {
		return apperrors.ErrSlotNotAvailable
	}
	for _, existing := range f.appointments {
		if existing.TimeSlotID == appt.TimeSlotID && existing.Status != models.ApptCancelled {
			return apperrors.ErrSlotNotAvailable
		}
	}
	s.Status = models.SlotBooked
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	cp := *appt
	f.appointments[cp.ID] = &cp
	return nil
}

func (f *fakeStore) GetAppointmentByID(id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	cp := *a
	f.attachRelations(&cp)
	return &cp, nil
}

func (f *fakeStore) attachRelations(a *models.Appointment) {
	if p, ok := f.patients[a.PatientID]; ok {
		a.Patient = *p
	}
	if d, ok := f.doctors[a.DoctorID]; ok {
		a.Doctor = *d
	}
	if s, ok := f.slots[a.TimeSlotID]; ok {
		a.TimeSlot = *s
	}
}

func (f *fakeStore) ListAppointments(filter repository.AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.appointments {
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && a.AppointmentDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && a.AppointmentDate.After(*filter.EndDate) {
			continue
		}
		if filter.Search != "" && !f.matchesSearch(a, filter.Search) {
			continue
		}
		cp := *a
		f.attachRelations(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentDate.Before(out[j].AppointmentDate) })
	return out, nil
}

func (f *fakeStore) matchesSearch(a *models.Appointment, search string) bool {
	needle := strings.ToLower(search)
	var names []string
	if p, ok := f.patients[a.PatientID]; ok {
		names = append(names, p.FirstName, p.LastName)
	}
	if d, ok := f.doctors[a.DoctorID]; ok {
		names = append(names, d.FirstName, d.LastName)
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

func (f *fakeStore) UpdateAppointmentStatus(id, status string, notes *string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	a.Status = status
	if notes != nil {
		a.Notes = *notes
	}
	if status == models.ApptCancelled {
		if s, ok := f.slots[a.TimeSlotID]; ok {
			s.Status = models.SlotAvailable
		}
	}
	cp := *a
	f.attachRelations(&cp)
	return &cp, nil
}

func (f *fakeStore) DeleteAppointment(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return apperrors.ErrAppointmentNotFound
	}
	if s, ok := f.slots[a.TimeSlotID]; ok {
		s.Status = models.SlotAvailable
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeStore) CreateAuditLog(userID *string, action string, details string) error {
	return nil
}

// asPrincipal injects the auth context the middleware would normally set
func asPrincipal(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newBookingService(store *fakeStore) *service.BookingService {
	return service.NewBookingService(store, store, store, store, store, zap.NewNop())
}

func newTimeSlotService(store *fakeStore) *service.TimeSlotService {
	return service.NewTimeSlotService(store, store, store, zap.NewNop())
}
