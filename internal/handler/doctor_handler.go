package handler

import (
	"net/http"

	"clinic-booking-backend/internal/service"
	"clinic-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
	logger        *zap.Logger
}

func NewDoctorHandler(doctorService *service.DoctorService, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
		logger:        logger,
	}
}

// GetAll returns the doctor catalogue
func (h *DoctorHandler) GetAll(c *gin.Context) {
	doctors, err := h.doctorService.GetAllDoctors()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, doctors)
}

// GetByID returns one doctor
func (h *DoctorHandler) GetByID(c *gin.Context) {
	doctor, err := h.doctorService.GetDoctorByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, doctor)
}

// GetBySpecialization returns doctors filtered by specialization
func (h *DoctorHandler) GetBySpecialization(c *gin.Context) {
	doctors, err := h.doctorService.GetDoctorsBySpecialization(c.Param("specialization"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessResponse(c, doctors)
}
