package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor specializations (fixed set)
const (
	SpecTherapist       = "therapist"
	SpecCardiologist    = "cardiologist"
	SpecNeurologist     = "neurologist"
	SpecPediatrician    = "pediatrician"
	SpecSurgeon         = "surgeon"
	SpecDentist         = "dentist"
	SpecOphthalmologist = "ophthalmologist"
	SpecDermatologist   = "dermatologist"
	SpecPsychiatrist    = "psychiatrist"
	SpecEndocrinologist = "endocrinologist"
)

// Specializations lists every valid specialization value.
var Specializations = []string{
	SpecTherapist,
	SpecCardiologist,
	SpecNeurologist,
	SpecPediatrician,
	SpecSurgeon,
	SpecDentist,
	SpecOphthalmologist,
	SpecDermatologist,
	SpecPsychiatrist,
	SpecEndocrinologist,
}

// IsValidSpecialization reports whether s is one of the fixed specializations.
func IsValidSpecialization(s string) bool {
	for _, spec := range Specializations {
		if spec == s {
			return true
		}
	}
	return false
}

// Doctor represents the doctors table. A doctor owns time slots and is
// referenced by appointments.
type Doctor struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:char(36);uniqueIndex;not null" json:"user_id"`
	FirstName      string    `gorm:"size:50;not null" json:"first_name"`
	LastName       string    `gorm:"size:50;not null" json:"last_name"`
	Specialization string    `gorm:"type:enum('therapist','cardiologist','neurologist','pediatrician','surgeon','dentist','ophthalmologist','dermatologist','psychiatrist','endocrinologist');not null" json:"specialization"`
	Education      string    `gorm:"type:text" json:"education,omitempty"`
	Experience     string    `gorm:"type:text" json:"experience,omitempty"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}

// BeforeCreate assigns a UUID primary key
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
