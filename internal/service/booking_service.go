package service

import (
	"fmt"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"

	"go.uber.org/zap"
)

// ViewFilter carries the filters the per-doctor and per-patient appointment
// views accept. Identity filters are fixed by the view itself.
type ViewFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

type BookingService struct {
	appointments AppointmentStore
	slots        SlotStore
	doctors      DoctorStore
	patients     PatientStore
	audits       AuditStore
	logger       *zap.Logger
}

func NewBookingService(
	appointments AppointmentStore,
	slots SlotStore,
	doctors DoctorStore,
	patients PatientStore,
	audits AuditStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		appointments: appointments,
		slots:        slots,
		doctors:      doctors,
		patients:     patients,
		audits:       audits,
		logger:       logger,
	}
}

// Book converts an AVAILABLE slot plus a patient and doctor into a SCHEDULED
// appointment. Preconditions are checked in order (slot exists, slot
// available, doctor exists, patient exists), then the slot claim and the
// appointment insert happen atomically in the store. Under concurrent
// bookings of the same slot exactly one caller wins; the rest get
// apperrors.ErrSlotNotAvailable.
func (s *BookingService) Book(patientID, doctorID, timeSlotID, notes, actorUserID, actorRole string) (*models.Appointment, error) {
	slot, err := s.slots.GetSlotByID(timeSlotID)
	if err != nil {
		return nil, err
	}
	if slot.Status != models.SlotAvailable {
		return nil, apperrors.ErrSlotNotAvailable
	}

	doctor, err := s.doctors.GetDoctorByID(doctorID)
	if err != nil {
		return nil, err
	}

	patient, err := s.patients.GetPatientByID(patientID)
	if err != nil {
		return nil, err
	}

	// Patients may only book for themselves
	if actorRole == models.RolePatient && patient.UserID != actorUserID {
		return nil, apperrors.ErrForbidden
	}

	appt := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		TimeSlotID:      timeSlotID,
		AppointmentDate: slot.StartTime,
		Status:          models.ApptScheduled,
		Notes:           notes,
	}

	if err := s.appointments.BookAppointment(appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("patient_id", patientID),
		zap.String("doctor_id", doctorID),
		zap.Time("start", slot.StartTime))

	_ = s.audits.CreateAuditLog(&actorUserID, "appointment_book",
		fmt.Sprintf("Booked slot %s with doctor %s", timeSlotID, doctorID))

	// Attach relations for the response without another round trip
	appt.Patient = *patient
	appt.Doctor = *doctor
	booked := *slot
	booked.Status = models.SlotBooked
	appt.TimeSlot = booked

	return appt, nil
}

// GetAppointment returns one appointment with its relations loaded
func (s *BookingService) GetAppointment(id string) (*models.Appointment, error) {
	return s.appointments.GetAppointmentByID(id)
}

// ListAll returns appointments matching the filter, ordered by slot start
// time. This is the admin view; all filters are open.
func (s *BookingService) ListAll(filter repository.AppointmentFilter) ([]models.Appointment, error) {
	return s.appointments.ListAppointments(filter)
}

// ListForDoctor returns one doctor's appointments with optional status and
// date-range restriction
func (s *BookingService) ListForDoctor(doctorID string, filter ViewFilter) ([]models.Appointment, error) {
	return s.appointments.ListAppointments(repository.AppointmentFilter{
		DoctorID:  doctorID,
		Status:    filter.Status,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	})
}

// ListForPatient returns one patient's appointments with optional status and
// date-range restriction. A patient principal may only read their own.
func (s *BookingService) ListForPatient(patientID string, filter ViewFilter, actorUserID, actorRole string) ([]models.Appointment, error) {
	if actorRole == models.RolePatient {
		patient, err := s.patients.GetPatientByID(patientID)
		if err != nil {
			return nil, err
		}
		if patient.UserID != actorUserID {
			return nil, apperrors.ErrForbidden
		}
	}

	return s.appointments.ListAppointments(repository.AppointmentFilter{
		PatientID: patientID,
		Status:    filter.Status,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	})
}

// UpdateStatus transitions an appointment's status, overwriting notes when
// provided. CANCELLED releases the backing slot as part of the same store
// operation.
func (s *BookingService) UpdateStatus(appointmentID, status string, notes *string, actorUserID string) (*models.Appointment, error) {
	appt, err := s.appointments.UpdateAppointmentStatus(appointmentID, status, notes)
	if err != nil {
		return nil, err
	}

	_ = s.audits.CreateAuditLog(&actorUserID, "appointment_status",
		fmt.Sprintf("Appointment %s set to %s", appointmentID, status))

	return appt, nil
}

// Delete removes an appointment permanently, freeing its slot
func (s *BookingService) Delete(appointmentID, actorUserID string) error {
	if err := s.appointments.DeleteAppointment(appointmentID); err != nil {
		return err
	}

	_ = s.audits.CreateAuditLog(&actorUserID, "appointment_delete",
		fmt.Sprintf("Deleted appointment %s", appointmentID))

	return nil
}
