package repository

import (
	"errors"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// GetAllDoctors retrieves all doctors ordered by name
func (r *DoctorRepository) GetAllDoctors() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Order("last_name ASC, first_name ASC").Find(&doctors).Error
	return doctors, err
}

// GetDoctorByID retrieves a doctor by ID
func (r *DoctorRepository) GetDoctorByID(id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// GetDoctorByUserID retrieves the doctor profile owned by a user account
func (r *DoctorRepository) GetDoctorByUserID(userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// GetDoctorsBySpecialization retrieves all doctors with a given specialization
func (r *DoctorRepository) GetDoctorsBySpecialization(specialization string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Where("specialization = ?", specialization).
		Order("last_name ASC, first_name ASC").
		Find(&doctors).Error
	return doctors, err
}
