package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/service"
	"clinic-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TimeSlotHandler struct {
	timeSlotService *service.TimeSlotService
	logger          *zap.Logger
}

func NewTimeSlotHandler(timeSlotService *service.TimeSlotService, logger *zap.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{
		timeSlotService: timeSlotService,
		logger:          logger,
	}
}

// slotView is the wire form of a slot in schedule responses
type slotView struct {
	ID                 string    `json:"id"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Status             string    `json:"status"`
	FormattedStartTime string    `json:"formattedStartTime"`
	FormattedEndTime   string    `json:"formattedEndTime"`
	DoctorID           string    `json:"doctorId"`
}

func toSlotView(slot models.TimeSlot) slotView {
	return slotView{
		ID:                 slot.ID,
		StartTime:          slot.StartTime,
		EndTime:            slot.EndTime,
		Status:             slot.Status,
		FormattedStartTime: slot.StartTime.Format("15:04"),
		FormattedEndTime:   slot.EndTime.Format("15:04"),
		DoctorID:           slot.DoctorID,
	}
}

// GetDoctorSlots returns all slots for a doctor: one day's worth when the
// date query parameter is set, otherwise all upcoming slots
func (h *TimeSlotHandler) GetDoctorSlots(c *gin.Context) {
	doctorID := c.Param("doctorId")

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		date = &parsed
	}

	slots, err := h.timeSlotService.GetDoctorSlots(doctorID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, toSlotView(slot))
	}

	utils.SuccessResponse(c, views)
}

// GetAvailableSlots returns the AVAILABLE slots for one doctor and date,
// grouped by hour for display
func (h *TimeSlotHandler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Param("doctorId")

	raw := c.Query("date")
	if raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Date parameter is required")
		return
	}
	date, err := parseDate(raw)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	slots, err := h.timeSlotService.GetAvailableSlots(doctorID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]slotView, 0, len(slots))
	slotsByHour := make(map[string][]slotView)
	for _, slot := range slots {
		view := toSlotView(slot)
		views = append(views, view)

		hour := strconv.Itoa(slot.StartTime.Hour())
		slotsByHour[hour] = append(slotsByHour[hour], view)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"date":        date.Format("2006-01-02"),
		"slots":       views,
		"slotsByHour": slotsByHour,
		"total":       len(views),
	})
}

type GenerateSlotsRequest struct {
	Date string `json:"date" binding:"required"`
}

// GenerateSlots generates the fixed daily schedule for one doctor and date
func (h *TimeSlotHandler) GenerateSlots(c *gin.Context) {
	doctorID := c.Param("doctorId")

	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Date is required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	slots, err := h.timeSlotService.GenerateSlots(doctorID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   "Time slots generated successfully",
		"timeSlots": slots,
	})
}

type GenerateDaysRequest struct {
	Days int `json:"days" binding:"omitempty,min=1,max=60"`
}

// GenerateSlotsForDays generates schedules for the next n days (default 7)
func (h *TimeSlotHandler) GenerateSlotsForDays(c *gin.Context) {
	doctorID := c.Param("doctorId")

	var req GenerateDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Days == 0 {
		req.Days = 7
	}

	slots, err := h.timeSlotService.GenerateSlotsForDays(doctorID, req.Days, c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   "Time slots generated successfully",
		"count":     len(slots),
		"timeSlots": slots,
	})
}

type UpdateSlotStatusRequest struct {
	Status string `json:"status" binding:"required,slotstatus"`
}

// UpdateSlotStatus sets one slot's status
func (h *TimeSlotHandler) UpdateSlotStatus(c *gin.Context) {
	slotID := c.Param("id")

	var req UpdateSlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "A valid status is required")
		return
	}

	slot, err := h.timeSlotService.UpdateSlotStatus(slotID, req.Status, c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Time slot status updated successfully",
		"timeSlot": slot,
	})
}

type MarkUnavailableRequest struct {
	SlotIDs []string `json:"slotIds" binding:"required,min=1"`
}

// MarkSlotsUnavailable bulk-marks AVAILABLE slots as UNAVAILABLE
func (h *TimeSlotHandler) MarkSlotsUnavailable(c *gin.Context) {
	var req MarkUnavailableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Valid slot IDs array is required")
		return
	}

	updated, err := h.timeSlotService.MarkSlotsUnavailable(req.SlotIDs, c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   "Time slots marked as unavailable successfully",
		"timeSlots": updated,
	})
}
