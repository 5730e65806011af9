package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot statuses as transmitted on the wire
const (
	SlotAvailable   = "AVAILABLE"
	SlotBooked      = "BOOKED"
	SlotUnavailable = "UNAVAILABLE"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 30 * time.Minute

// TimeSlot represents the time_slots table. A slot belongs to exactly one
// doctor; end time is always start + 30 minutes. A slot is BOOKED exactly
// while one non-cancelled appointment references it.
type TimeSlot struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	DoctorID  string    `gorm:"type:char(36);not null;index:idx_slots_doctor_start" json:"doctor_id"`
	StartTime time.Time `gorm:"not null;index:idx_slots_doctor_start" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    string    `gorm:"type:enum('AVAILABLE','BOOKED','UNAVAILABLE');default:'AVAILABLE'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for TimeSlot model
func (TimeSlot) TableName() string {
	return "time_slots"
}

// BeforeCreate assigns a UUID primary key
func (t *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsValidSlotStatus reports whether s is a recognized slot status.
func IsValidSlotStatus(s string) bool {
	return s == SlotAvailable || s == SlotBooked || s == SlotUnavailable
}
