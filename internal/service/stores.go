package service

import (
	"time"

	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
)

// The booking core talks to storage through these interfaces so that the
// consistency rules (atomic claim, slot release) stay testable without a
// database. The GORM repositories are the production implementations.

type DoctorStore interface {
	GetDoctorByID(id string) (*models.Doctor, error)
}

type PatientStore interface {
	GetPatientByID(id string) (*models.Patient, error)
}

type SlotStore interface {
	GetSlotByID(id string) (*models.TimeSlot, error)
	GetSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error)
	GetAvailableSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error)
	GetUpcomingSlotsByDoctor(doctorID string) ([]models.TimeSlot, error)
	CreateSlots(slots []models.TimeSlot) error
	UpdateSlotStatus(id, status string) (*models.TimeSlot, error)
	MarkSlotsUnavailable(ids []string) ([]models.TimeSlot, error)
}

type AppointmentStore interface {
	// BookAppointment must claim the backing slot (AVAILABLE -> BOOKED) and
	// insert the appointment as one all-or-nothing unit, returning
	// apperrors.ErrSlotNotAvailable when the slot was not claimable.
	BookAppointment(appt *models.Appointment) error
	GetAppointmentByID(id string) (*models.Appointment, error)
	ListAppointments(filter repository.AppointmentFilter) ([]models.Appointment, error)
	UpdateAppointmentStatus(id, status string, notes *string) (*models.Appointment, error)
	DeleteAppointment(id string) error
}

type AuditStore interface {
	CreateAuditLog(userID *string, action string, details string) error
}
