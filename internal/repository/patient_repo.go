package repository

import (
	"errors"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetPatientByID retrieves a patient by ID
func (r *PatientRepository) GetPatientByID(id string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// GetPatientByUserID retrieves the patient profile owned by a user account
func (r *PatientRepository) GetPatientByUserID(userID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}
