package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
	"clinic-booking-backend/pkg/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	doctorRepo  *repository.DoctorRepository
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	doctorRepo *repository.DoctorRepository,
	patientRepo *repository.PatientRepository,
	auditRepo *repository.AuditRepository,
) *AuthService {
	return &AuthService{
		db:          db,
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
	}
}

// RegisterInput carries everything registration needs. Doctor fields are
// required only when Role is doctor.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Password       string
	Role           string
	Address        string
	Specialization string
	Education      string
	Experience     string
	Description    string
}

// LoginResponse represents the response structure for login and register
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	// ProfileID is the doctor or patient profile row owned by this account,
	// empty for admins.
	ProfileID string `json:"profile_id,omitempty"`
}

// Register creates a user account and its role profile (doctor or patient)
// in a single transaction, so a failed profile insert never leaves an
// orphaned account.
func (s *AuthService) Register(input RegisterInput) (*LoginResponse, error) {
	existing, err := s.userRepo.FindUserByEmail(input.Email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	if input.Role == models.RoleDoctor && !models.IsValidSpecialization(input.Specialization) {
		return nil, errors.New("a valid specialization is required for doctor registration")
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		Role:         input.Role,
	}

	var profileID string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		switch input.Role {
		case models.RoleDoctor:
			doctor := &models.Doctor{
				UserID:         user.ID,
				FirstName:      input.FirstName,
				LastName:       input.LastName,
				Specialization: input.Specialization,
				Education:      input.Education,
				Experience:     input.Experience,
				Description:    input.Description,
			}
			if err := tx.Create(doctor).Error; err != nil {
				return fmt.Errorf("failed to create doctor profile: %w", err)
			}
			profileID = doctor.ID
		case models.RolePatient:
			patient := &models.Patient{
				UserID:    user.ID,
				FirstName: input.FirstName,
				LastName:  input.LastName,
				Email:     input.Email,
				Phone:     input.Phone,
				Address:   input.Address,
			}
			if err := tx.Create(patient).Error; err != nil {
				return fmt.Errorf("failed to create patient profile: %w", err)
			}
			profileID = patient.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&user.ID, "user_registration",
		fmt.Sprintf("User %s registered as %s", input.Email, input.Role))

	return s.issueTokens(user, profileID)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	profileID, err := s.profileIDFor(user)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&user.ID, "user_login",
		fmt.Sprintf("User %s logged in", email))

	return s.issueTokens(user, profileID)
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// profileIDFor resolves the doctor or patient profile row for an account
func (s *AuthService) profileIDFor(user *models.User) (string, error) {
	switch user.Role {
	case models.RoleDoctor:
		doctor, err := s.doctorRepo.GetDoctorByUserID(user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrDoctorNotFound) {
				return "", nil
			}
			return "", err
		}
		return doctor.ID, nil
	case models.RolePatient:
		patient, err := s.patientRepo.GetPatientByUserID(user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrPatientNotFound) {
				return "", nil
			}
			return "", err
		}
		return patient.ID, nil
	}
	return "", nil
}

func (s *AuthService) issueTokens(user *models.User, profileID string) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
			ProfileID: profileID,
		},
	}, nil
}
