package handler

import (
	"net/http"
	"time"

	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
	"clinic-booking-backend/internal/service"
	"clinic-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	bookingService *service.BookingService
	logger         *zap.Logger
}

func NewAppointmentHandler(bookingService *service.BookingService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

type BookAppointmentRequest struct {
	PatientID  string `json:"patientId"`
	DoctorID   string `json:"doctorId"`
	TimeSlotID string `json:"timeSlotId"`
	Notes      string `json:"notes"`
}

// Book creates an appointment from an available slot. Field validation runs
// before any store access.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.PatientID == "":
		utils.ErrorResponse(c, http.StatusBadRequest, "Patient ID is required")
		return
	case req.DoctorID == "":
		utils.ErrorResponse(c, http.StatusBadRequest, "Doctor ID is required")
		return
	case req.TimeSlotID == "":
		utils.ErrorResponse(c, http.StatusBadRequest, "Time slot ID is required")
		return
	}

	appt, err := h.bookingService.Book(
		req.PatientID,
		req.DoctorID,
		req.TimeSlotID,
		req.Notes,
		c.GetString("userID"),
		c.GetString("role"),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     "Appointment booked successfully",
		"appointment": toPatientApptView(*appt),
	})
}

// adminApptView flattens an appointment for the admin table
type adminApptView struct {
	ID                   string    `json:"id"`
	PatientName          string    `json:"patientName"`
	DoctorName           string    `json:"doctorName"`
	DoctorSpecialization string    `json:"doctorSpecialization"`
	DateTime             time.Time `json:"dateTime"`
	Status               string    `json:"status"`
	Notes                string    `json:"notes,omitempty"`
	PatientID            string    `json:"patientId"`
	DoctorID             string    `json:"doctorId"`
	PatientContact       string    `json:"patientContact,omitempty"`
	PatientEmail         string    `json:"patientEmail,omitempty"`
}

type doctorApptView struct {
	ID             string    `json:"id"`
	PatientName    string    `json:"patientName"`
	PatientContact string    `json:"patientContact,omitempty"`
	PatientEmail   string    `json:"patientEmail,omitempty"`
	DateTime       time.Time `json:"dateTime"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	PatientID      string    `json:"patientId"`
}

type patientApptView struct {
	ID                   string    `json:"id"`
	DoctorName           string    `json:"doctorName"`
	DoctorSpecialization string    `json:"doctorSpecialization"`
	DateTime             time.Time `json:"dateTime"`
	Status               string    `json:"status"`
	Notes                string    `json:"notes,omitempty"`
	DoctorID             string    `json:"doctorId"`
	TimeSlotID           string    `json:"timeSlotId"`
}

func toAdminApptView(a models.Appointment) adminApptView {
	return adminApptView{
		ID:                   a.ID,
		PatientName:          a.Patient.FirstName + " " + a.Patient.LastName,
		DoctorName:           a.Doctor.FirstName + " " + a.Doctor.LastName,
		DoctorSpecialization: a.Doctor.Specialization,
		DateTime:             a.AppointmentDate,
		Status:               a.Status,
		Notes:                a.Notes,
		PatientID:            a.PatientID,
		DoctorID:             a.DoctorID,
		PatientContact:       a.Patient.Phone,
		PatientEmail:         a.Patient.Email,
	}
}

func toDoctorApptView(a models.Appointment) doctorApptView {
	return doctorApptView{
		ID:             a.ID,
		PatientName:    a.Patient.FirstName + " " + a.Patient.LastName,
		PatientContact: a.Patient.Phone,
		PatientEmail:   a.Patient.Email,
		DateTime:       a.AppointmentDate,
		Status:         a.Status,
		Notes:          a.Notes,
		PatientID:      a.PatientID,
	}
}

func toPatientApptView(a models.Appointment) patientApptView {
	return patientApptView{
		ID:                   a.ID,
		DoctorName:           a.Doctor.FirstName + " " + a.Doctor.LastName,
		DoctorSpecialization: a.Doctor.Specialization,
		DateTime:             a.AppointmentDate,
		Status:               a.Status,
		Notes:                a.Notes,
		DoctorID:             a.DoctorID,
		TimeSlotID:           a.TimeSlotID,
	}
}

// parseViewFilter reads the shared status/startDate/endDate query filters
func parseViewFilter(c *gin.Context) (service.ViewFilter, bool) {
	var filter service.ViewFilter

	if status := c.Query("status"); status != "" {
		if !models.IsValidAppointmentStatus(status) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unknown appointment status")
			return filter, false
		}
		filter.Status = status
	}

	startRaw, endRaw := c.Query("startDate"), c.Query("endDate")
	if startRaw != "" && endRaw != "" {
		start, err := parseDate(startRaw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid startDate format")
			return filter, false
		}
		end, err := parseDate(endRaw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid endDate format")
			return filter, false
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter, true
}

// GetAll returns the filtered admin list, flattened with patient and doctor
// names
func (h *AppointmentHandler) GetAll(c *gin.Context) {
	base, ok := parseViewFilter(c)
	if !ok {
		return
	}

	filter := repository.AppointmentFilter{
		DoctorID:  c.Query("doctorId"),
		PatientID: c.Query("patientId"),
		Status:    base.Status,
		StartDate: base.StartDate,
		EndDate:   base.EndDate,
		Search:    c.Query("search"),
	}

	appointments, err := h.bookingService.ListAll(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]adminApptView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, toAdminApptView(a))
	}

	utils.SuccessResponse(c, views)
}

// GetDoctorAppointments returns one doctor's appointments
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	filter, ok := parseViewFilter(c)
	if !ok {
		return
	}

	appointments, err := h.bookingService.ListForDoctor(c.Param("doctorId"), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]doctorApptView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, toDoctorApptView(a))
	}

	utils.SuccessResponse(c, views)
}

// GetPatientAppointments returns one patient's appointments
func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	filter, ok := parseViewFilter(c)
	if !ok {
		return
	}

	appointments, err := h.bookingService.ListForPatient(
		c.Param("patientId"), filter, c.GetString("userID"), c.GetString("role"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]patientApptView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, toPatientApptView(a))
	}

	utils.SuccessResponse(c, views)
}

// GetByID returns one appointment in full
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appt, err := h.bookingService.GetAppointment(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, appt)
}

type UpdateApptStatusRequest struct {
	Status string  `json:"status" binding:"required,apptstatus"`
	Notes  *string `json:"notes"`
}

// UpdateStatus transitions an appointment's status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateApptStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "A valid status is required")
		return
	}

	appt, err := h.bookingService.UpdateStatus(c.Param("id"), req.Status, req.Notes, c.GetString("userID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment status updated successfully",
		"appointment": appt,
	})
}

// Delete removes an appointment, freeing its slot
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.bookingService.Delete(c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.MessageResponse(c, "Appointment deleted successfully")
}
