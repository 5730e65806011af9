package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses as transmitted on the wire
const (
	ApptPending   = "PENDING"
	ApptScheduled = "SCHEDULED"
	ApptConfirmed = "CONFIRMED"
	ApptCancelled = "CANCELLED"
	ApptCompleted = "COMPLETED"
)

// Appointment represents the appointments table. Each appointment is backed
// by exactly one time slot; its date always equals the slot's start time.
// A slot may be referenced by several rows over time (cancelled bookings are
// retained as history), but at most one non-cancelled appointment at a time;
// that exclusivity comes from the conditional slot claim at booking, not from
// a unique constraint on time_slot_id.
type Appointment struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	PatientID       string    `gorm:"type:char(36);not null;index" json:"patient_id"`
	DoctorID        string    `gorm:"type:char(36);not null;index" json:"doctor_id"`
	TimeSlotID      string    `gorm:"type:char(36);not null;index" json:"time_slot_id"`
	AppointmentDate time.Time `gorm:"not null" json:"appointment_date"`
	Status          string    `gorm:"type:enum('PENDING','SCHEDULED','CONFIRMED','CANCELLED','COMPLETED');default:'PENDING'" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Patient  Patient  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor   Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	TimeSlot TimeSlot `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate assigns a UUID primary key
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsValidAppointmentStatus reports whether s is a recognized appointment status.
func IsValidAppointmentStatus(s string) bool {
	switch s {
	case ApptPending, ApptScheduled, ApptConfirmed, ApptCancelled, ApptCompleted:
		return true
	}
	return false
}
