package service

import (
	"errors"

	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
)

type DoctorService struct {
	doctorRepo *repository.DoctorRepository
}

func NewDoctorService(doctorRepo *repository.DoctorRepository) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo}
}

// GetAllDoctors returns the full doctor catalogue
func (s *DoctorService) GetAllDoctors() ([]models.Doctor, error) {
	return s.doctorRepo.GetAllDoctors()
}

// GetDoctorByID returns one doctor
func (s *DoctorService) GetDoctorByID(id string) (*models.Doctor, error) {
	return s.doctorRepo.GetDoctorByID(id)
}

// GetDoctorsBySpecialization returns doctors with the given specialization
func (s *DoctorService) GetDoctorsBySpecialization(specialization string) ([]models.Doctor, error) {
	if !models.IsValidSpecialization(specialization) {
		return nil, errors.New("unknown specialization")
	}
	return s.doctorRepo.GetDoctorsBySpecialization(specialization)
}
