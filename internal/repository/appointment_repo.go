package repository

import (
	"errors"
	"strings"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppointmentFilter enumerates the optional, conjunctive filters accepted by
// the appointment list queries. Zero values impose no restriction; StartDate
// and EndDate bound the backing slot's start time (closed range) and only
// apply together.
type AppointmentFilter struct {
	DoctorID  string
	PatientID string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// BookAppointment claims the slot and inserts the appointment as one
// all-or-nothing unit. The claim is a conditional update: zero rows affected
// means the slot is gone or was taken by a concurrent booking, and nothing is
// written. This is what makes double-booking impossible.
func (r *AppointmentRepository) BookAppointment(appt *models.Appointment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TimeSlot{}).
			Where("id = ? AND status = ?", appt.TimeSlotID, models.SlotAvailable).
			Update("status", models.SlotBooked)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.TimeSlot{}).
				Where("id = ?", appt.TimeSlotID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrTimeSlotNotFound
			}
			return apperrors.ErrSlotNotAvailable
		}

		return tx.Create(appt).Error
	})
}

// GetAppointmentByID retrieves an appointment with its patient, doctor, and
// slot loaded
func (r *AppointmentRepository) GetAppointmentByID(id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Where("id = ?", id).
		Preload("Patient").
		Preload("Doctor").
		Preload("TimeSlot").
		First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// ListAppointments returns appointments matching every set filter, ordered by
// the backing slot's start time ascending
func (r *AppointmentRepository) ListAppointments(filter AppointmentFilter) ([]models.Appointment, error) {
	q := r.db.Model(&models.Appointment{}).
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
		Preload("Patient").
		Preload("Doctor").
		Preload("TimeSlot").
		Order("time_slots.start_time ASC")

	if filter.DoctorID != "" {
		q = q.Where("appointments.doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != "" {
		q = q.Where("appointments.patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		q = q.Where("appointments.status = ?", filter.Status)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("time_slots.start_time >= ? AND time_slots.start_time <= ?",
			*filter.StartDate, *filter.EndDate)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Joins("JOIN patients ON patients.id = appointments.patient_id").
			Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
			Where("LOWER(patients.first_name) LIKE ? OR LOWER(patients.last_name) LIKE ? OR LOWER(doctors.first_name) LIKE ? OR LOWER(doctors.last_name) LIKE ?",
				pattern, pattern, pattern, pattern)
	}

	var appointments []models.Appointment
	err := q.Find(&appointments).Error
	return appointments, err
}

// UpdateAppointmentStatus sets the status (and notes, when provided) of one
// appointment. Transitioning to CANCELLED releases the backing slot in the
// same transaction; no other transition touches the slot.
func (r *AppointmentRepository) UpdateAppointmentStatus(id, status string, notes *string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAppointmentNotFound
			}
			return err
		}

		appt.Status = status
		if notes != nil {
			appt.Notes = *notes
		}
		if err := tx.Save(&appt).Error; err != nil {
			return err
		}

		if status == models.ApptCancelled {
			if err := tx.Model(&models.TimeSlot{}).
				Where("id = ?", appt.TimeSlotID).
				Update("status", models.SlotAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetAppointmentByID(appt.ID)
}

// DeleteAppointment frees the backing slot and removes the appointment row
func (r *AppointmentRepository) DeleteAppointment(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAppointmentNotFound
			}
			return err
		}

		if err := tx.Model(&models.TimeSlot{}).
			Where("id = ?", appt.TimeSlotID).
			Update("status", models.SlotAvailable).Error; err != nil {
			return err
		}

		return tx.Delete(&appt).Error
	})
}
