package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory implementation of the store interfaces. A single
// mutex guards everything so BookAppointment gets the same all-or-nothing
// claim semantics the database transaction provides.
type memStore struct {
	mu           sync.Mutex
	doctors      map[string]*models.Doctor
	patients     map[string]*models.Patient
	slots        map[string]*models.TimeSlot
	appointments map[string]*models.Appointment
	audits       []string
}

func newMemStore() *memStore {
	return &memStore{
		doctors:      make(map[string]*models.Doctor),
		patients:     make(map[string]*models.Patient),
		slots:        make(map[string]*models.TimeSlot),
		appointments: make(map[string]*models.Appointment),
	}
}

func (m *memStore) addDoctor(firstName, lastName, specialization string) *models.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &models.Doctor{
		ID:             uuid.NewString(),
		UserID:         uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Specialization: specialization,
	}
	m.doctors[d.ID] = d
	return d
}

func (m *memStore) addPatient(firstName, lastName string) *models.Patient {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &models.Patient{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
	}
	m.patients[p.ID] = p
	return p
}

func (m *memStore) addSlot(doctorID string, start time.Time, status string) *models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.TimeSlot{
		ID:        uuid.NewString(),
		DoctorID:  doctorID,
		StartTime: start,
		EndTime:   start.Add(models.SlotDuration),
		Status:    status,
	}
	m.slots[s.ID] = s
	return s
}

func (m *memStore) slotStatus(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[id].Status
}

// DoctorStore

func (m *memStore) GetDoctorByID(id string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, apperrors.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

// PatientStore

func (m *memStore) GetPatientByID(id string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, apperrors.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

// SlotStore

func (m *memStore) GetSlotByID(id string) (*models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, apperrors.ErrTimeSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) slotsWhere(keep func(*models.TimeSlot) bool) []models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TimeSlot
	for _, s := range m.slots {
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

func (m *memStore) GetSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	return m.slotsWhere(func(s *models.TimeSlot) bool {
		return s.DoctorID == doctorID && sameDay(s.StartTime, date)
	}), nil
}

func (m *memStore) GetAvailableSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	return m.slotsWhere(func(s *models.TimeSlot) bool {
		return s.DoctorID == doctorID && sameDay(s.StartTime, date) && s.Status == models.SlotAvailable
	}), nil
}

func (m *memStore) GetUpcomingSlotsByDoctor(doctorID string) ([]models.TimeSlot, error) {
	now := time.Now()
	return m.slotsWhere(func(s *models.TimeSlot) bool {
		return s.DoctorID == doctorID && !s.StartTime.Before(now)
	}), nil
}

func (m *memStore) CreateSlots(slots []models.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		cp := slots[i]
		m.slots[cp.ID] = &cp
	}
	return nil
}

func (m *memStore) UpdateSlotStatus(id, status string) (*models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, apperrors.ErrTimeSlotNotFound
	}
	s.Status = status
	cp := *s
	return &cp, nil
}

func (m *memStore) MarkSlotsUnavailable(ids []string) ([]models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := []models.TimeSlot{}
	for _, id := range ids {
		s, ok := m.slots[id]
		if !ok || s.Status != models.SlotAvailable {
			continue
		}
		s.Status = models.SlotUnavailable
		updated = append(updated, *s)
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i].StartTime.Before(updated[j].StartTime) })
	return updated, nil
}

// AppointmentStore

func (m *memStore) BookAppointment(appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[appt.TimeSlotID]
	if !ok {
		return apperrors.ErrTimeSlotNotFound
	}
	if s.Status != models.SlotAvailable {
		return apperrors.ErrSlotNotAvailable
	}
	// Cancelled rows stay behind as history; only a live appointment blocks
	// the slot, same as the conditional claim in the real store.
	for _, existing := range m.appointments {
		if existing.TimeSlotID == appt.TimeSlotID && existing.Status != models.ApptCancelled {
			return apperrors.ErrSlotNotAvailable
		}
	}
	s.Status = models.SlotBooked
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	cp := *appt
	m.appointments[cp.ID] = &cp
	return nil
}

func (m *memStore) GetAppointmentByID(id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) ListAppointments(filter repository.AppointmentFilter) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
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
		if filter.Search != "" && !m.matchesSearch(a, filter.Search) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentDate.Before(out[j].AppointmentDate) })
	return out, nil
}

// matchesSearch mirrors the repository's case-insensitive substring match
// against patient and doctor first/last names. Callers hold the mutex.
func (m *memStore) matchesSearch(a *models.Appointment, search string) bool {
	needle := strings.ToLower(search)
	var names []string
	if p, ok := m.patients[a.PatientID]; ok {
		names = append(names, p.FirstName, p.LastName)
	}
	if d, ok := m.doctors[a.DoctorID]; ok {
		names = append(names, d.FirstName, d.LastName)
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

func (m *memStore) UpdateAppointmentStatus(id, status string, notes *string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	a.Status = status
	if notes != nil {
		a.Notes = *notes
	}
	if status == models.ApptCancelled {
		if s, ok := m.slots[a.TimeSlotID]; ok {
			s.Status = models.SlotAvailable
		}
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) DeleteAppointment(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return apperrors.ErrAppointmentNotFound
	}
	if s, ok := m.slots[a.TimeSlotID]; ok {
		s.Status = models.SlotAvailable
	}
	delete(m.appointments, id)
	return nil
}

// AuditStore

func (m *memStore) CreateAuditLog(userID *string, action string, details string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits = append(m.audits, action)
	return nil
}

func (m *memStore) auditActions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.audits...)
}
