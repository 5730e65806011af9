package repository

import (
	"errors"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepo(db *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// GetSlotByID retrieves a time slot by ID
func (r *TimeSlotRepository) GetSlotByID(id string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := r.db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTimeSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// GetSlotsByDoctorAndDate retrieves all slots for a doctor on one calendar
// day, ordered by start time
func (r *TimeSlotRepository) GetSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	dayStart, dayEnd := dayBounds(date)

	var slots []models.TimeSlot
	err := r.db.Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, dayStart, dayEnd).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

// GetAvailableSlotsByDoctorAndDate retrieves the AVAILABLE slots for a doctor
// on one calendar day, ordered by start time
func (r *TimeSlotRepository) GetAvailableSlotsByDoctorAndDate(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	dayStart, dayEnd := dayBounds(date)

	var slots []models.TimeSlot
	err := r.db.Where("doctor_id = ? AND start_time >= ? AND start_time < ? AND status = ?",
		doctorID, dayStart, dayEnd, models.SlotAvailable).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

// GetUpcomingSlotsByDoctor retrieves all slots starting at or after now
func (r *TimeSlotRepository) GetUpcomingSlotsByDoctor(doctorID string) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	err := r.db.Where("doctor_id = ? AND start_time >= ?", doctorID, time.Now()).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

// CreateSlots persists a batch of newly generated slots
func (r *TimeSlotRepository) CreateSlots(slots []models.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.Create(&slots).Error
}

// UpdateSlotStatus sets one slot's status and returns the updated slot
func (r *TimeSlotRepository) UpdateSlotStatus(id, status string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTimeSlotNotFound
			}
			return err
		}
		slot.Status = status
		return tx.Save(&slot).Error
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// MarkSlotsUnavailable transitions the given slots to UNAVAILABLE, but only
// those currently AVAILABLE. BOOKED slots are never overwritten; ids that do
// not qualify are skipped without error. Returns the updated slots.
func (r *TimeSlotRepository) MarkSlotsUnavailable(ids []string) ([]models.TimeSlot, error) {
	if len(ids) == 0 {
		return []models.TimeSlot{}, nil
	}

	var updated []models.TimeSlot
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var eligible []models.TimeSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND status = ?", ids, models.SlotAvailable).
			Find(&eligible).Error; err != nil {
			return err
		}
		if len(eligible) == 0 {
			return nil
		}

		eligibleIDs := make([]string, 0, len(eligible))
		for _, s := range eligible {
			eligibleIDs = append(eligibleIDs, s.ID)
		}

		if err := tx.Model(&models.TimeSlot{}).
			Where("id IN ?", eligibleIDs).
			Update("status", models.SlotUnavailable).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", eligibleIDs).
			Order("start_time ASC").
			Find(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		updated = []models.TimeSlot{}
	}
	return updated, nil
}

// dayBounds returns the half-open [midnight, next midnight) window covering
// the calendar day of t in local time.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
