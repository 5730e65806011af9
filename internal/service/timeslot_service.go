package service

import (
	"fmt"
	"time"

	"clinic-booking-backend/internal/models"

	"go.uber.org/zap"
)

// Daily schedule: 08:00-12:00 and 14:00-18:00, 30-minute slots. These are
// fixed business rules, not configuration.
var scheduleWindows = [][2]int{
	{8, 12},
	{14, 18},
}

// SlotsPerDay is the number of slots one generated day holds.
const SlotsPerDay = 16

type TimeSlotService struct {
	slots   SlotStore
	doctors DoctorStore
	audits  AuditStore
	logger  *zap.Logger
}

func NewTimeSlotService(slots SlotStore, doctors DoctorStore, audits AuditStore, logger *zap.Logger) *TimeSlotService {
	return &TimeSlotService{
		slots:   slots,
		doctors: doctors,
		audits:  audits,
		logger:  logger,
	}
}

// GenerateSlots creates the fixed daily schedule for a doctor on one
// calendar date. Generation is idempotent: if any slots already exist for
// that doctor and date they are returned unchanged and nothing is written.
func (s *TimeSlotService) GenerateSlots(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	if _, err := s.doctors.GetDoctorByID(doctorID); err != nil {
		return nil, err
	}

	existing, err := s.slots.GetSlotsByDoctorAndDate(doctorID, date)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, date.Location())

	slots := make([]models.TimeSlot, 0, SlotsPerDay)
	for _, window := range scheduleWindows {
		for hour := window[0]; hour < window[1]; hour++ {
			for minute := 0; minute < 60; minute += 30 {
				start := midnight.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
				slots = append(slots, models.TimeSlot{
					DoctorID:  doctorID,
					StartTime: start,
					EndTime:   start.Add(models.SlotDuration),
					Status:    models.SlotAvailable,
				})
			}
		}
	}

	if err := s.slots.CreateSlots(slots); err != nil {
		return nil, err
	}

	s.logger.Info("generated time slots",
		zap.String("doctor_id", doctorID),
		zap.String("date", midnight.Format("2006-01-02")),
		zap.Int("count", len(slots)))

	return slots, nil
}

// GenerateSlotsForDays generates schedules for each of the next n calendar
// days starting today. Weekends are included; day-level generation stays
// idempotent.
func (s *TimeSlotService) GenerateSlotsForDays(doctorID string, days int, actorUserID string) ([]models.TimeSlot, error) {
	var all []models.TimeSlot
	today := time.Now()

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		slots, err := s.GenerateSlots(doctorID, date)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}

	_ = s.audits.CreateAuditLog(&actorUserID, "slots_generate",
		fmt.Sprintf("Generated slots for doctor %s for %d days", doctorID, days))

	return all, nil
}

// GetDoctorSlots returns a doctor's slots for one date, or all upcoming
// slots when date is nil
func (s *TimeSlotService) GetDoctorSlots(doctorID string, date *time.Time) ([]models.TimeSlot, error) {
	if date != nil {
		return s.slots.GetSlotsByDoctorAndDate(doctorID, *date)
	}
	return s.slots.GetUpcomingSlotsByDoctor(doctorID)
}

// GetAvailableSlots returns the AVAILABLE slots for a doctor on one date
func (s *TimeSlotService) GetAvailableSlots(doctorID string, date time.Time) ([]models.TimeSlot, error) {
	return s.slots.GetAvailableSlotsByDoctorAndDate(doctorID, date)
}

// UpdateSlotStatus sets one slot's status
func (s *TimeSlotService) UpdateSlotStatus(slotID, status, actorUserID string) (*models.TimeSlot, error) {
	slot, err := s.slots.UpdateSlotStatus(slotID, status)
	if err != nil {
		return nil, err
	}

	_ = s.audits.CreateAuditLog(&actorUserID, "slot_status_update",
		fmt.Sprintf("Slot %s set to %s", slotID, status))

	return slot, nil
}

// MarkSlotsUnavailable bulk-marks slots as UNAVAILABLE (doctor time off).
// Only AVAILABLE slots transition; the rest are skipped silently.
func (s *TimeSlotService) MarkSlotsUnavailable(slotIDs []string, actorUserID string) ([]models.TimeSlot, error) {
	updated, err := s.slots.MarkSlotsUnavailable(slotIDs)
	if err != nil {
		return nil, err
	}

	_ = s.audits.CreateAuditLog(&actorUserID, "slots_unavailable",
		fmt.Sprintf("Marked %d of %d slots unavailable", len(updated), len(slotIDs)))

	return updated, nil
}
