package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"clinic-booking-backend/internal/config"
	"clinic-booking-backend/internal/database"
	"clinic-booking-backend/internal/logger"
	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
	"clinic-booking-backend/internal/service"
	"clinic-booking-backend/pkg/utils"

	"gorm.io/gorm"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	phone     string
	password  string
	role      string

	// doctor profile
	specialization string
	education      string
	experience     string
	description    string

	// patient profile
	address string
}

var seedDoctors = []seedUser{
	{
		firstName: "Elena", lastName: "Petrova",
		email: "e.petrova@clinic.local", phone: "+1-555-0101",
		password: "doctor123", role: models.RoleDoctor,
		specialization: models.SpecCardiologist,
		education:      "State Medical University, MD",
		experience:     "12 years in cardiology",
		description:    "Specializes in adult cardiology and preventive care.",
	},
	{
		firstName: "Marcus", lastName: "Webb",
		email: "m.webb@clinic.local", phone: "+1-555-0102",
		password: "doctor123", role: models.RoleDoctor,
		specialization: models.SpecTherapist,
		education:      "City Medical School, MD",
		experience:     "8 years in general practice",
		description:    "General practitioner handling routine checkups and referrals.",
	},
	{
		firstName: "Aiko", lastName: "Tanaka",
		email: "a.tanaka@clinic.local", phone: "+1-555-0103",
		password: "doctor123", role: models.RoleDoctor,
		specialization: models.SpecPediatrician,
		education:      "National University Hospital residency",
		experience:     "10 years in pediatrics",
		description:    "Pediatric care from infancy through adolescence.",
	},
}

var seedPatients = []seedUser{
	{
		firstName: "John", lastName: "Smith",
		email: "john.smith@example.com", phone: "+1-555-0201",
		password: "patient123", role: models.RolePatient,
		address: "12 Oak Street, Springfield",
	},
	{
		firstName: "Maria", lastName: "Garcia",
		email: "maria.garcia@example.com", phone: "+1-555-0202",
		password: "patient123", role: models.RolePatient,
		address: "45 Elm Avenue, Springfield",
	},
}

func main() {
	days := flag.Int("days", 14, "number of days ahead to generate slots for")
	flag.Parse()

	cfg := config.LoadConfig()
	zapLogger := logger.New(cfg.Server.Env)
	defer zapLogger.Sync()

	db := database.Connect(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	doctorRepo := repository.NewDoctorRepo(db)
	timeSlotRepo := repository.NewTimeSlotRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	timeSlotService := service.NewTimeSlotService(timeSlotRepo, doctorRepo, auditRepo, zapLogger)

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	doctorIDs, err := seedProfiles(db)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	if err := seedSlots(timeSlotService, doctorIDs, *days); err != nil {
		log.Fatalf("Failed to seed time slots: %v", err)
	}

	log.Println("Seeding complete")
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping")
		return nil
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName:    "Clinic",
		LastName:     "Admin",
		Email:        "admin@clinic.local",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Created admin user admin@clinic.local")
	return nil
}

// seedProfiles creates doctor and patient accounts with their profile rows,
// skipping any email that already exists. Returns the doctor profile IDs so
// slots can be generated for them.
func seedProfiles(db *gorm.DB) ([]string, error) {
	var doctorIDs []string

	for _, su := range seedDoctors {
		userID, created, err := createUser(db, su)
		if err != nil {
			return nil, err
		}

		var doctor models.Doctor
		if created {
			doctor = models.Doctor{
				UserID:         userID,
				FirstName:      su.firstName,
				LastName:       su.lastName,
				Specialization: su.specialization,
				Education:      su.education,
				Experience:     su.experience,
				Description:    su.description,
			}
			if err := db.Create(&doctor).Error; err != nil {
				return nil, err
			}
			log.Printf("Created doctor %s %s (%s)", su.firstName, su.lastName, su.specialization)
		} else {
			if err := db.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
				return nil, err
			}
		}
		doctorIDs = append(doctorIDs, doctor.ID)
	}

	for _, su := range seedPatients {
		userID, created, err := createUser(db, su)
		if err != nil {
			return nil, err
		}
		if !created {
			continue
		}
		patient := models.Patient{
			UserID:    userID,
			FirstName: su.firstName,
			LastName:  su.lastName,
			Email:     su.email,
			Phone:     su.phone,
			Address:   su.address,
		}
		if err := db.Create(&patient).Error; err != nil {
			return nil, err
		}
		log.Printf("Created patient %s %s", su.firstName, su.lastName)
	}

	return doctorIDs, nil
}

func createUser(db *gorm.DB, su seedUser) (id string, created bool, err error) {
	var existing models.User
	err = db.Where("email = ?", su.email).First(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", false, err
	}

	hash, err := utils.HashPassword(su.password)
	if err != nil {
		return "", false, err
	}

	user := models.User{
		FirstName:    su.firstName,
		LastName:     su.lastName,
		Email:        su.email,
		Phone:        su.phone,
		PasswordHash: hash,
		Role:         su.role,
	}
	if err := db.Create(&user).Error; err != nil {
		return "", false, err
	}
	return user.ID, true, nil
}

// seedSlots fills each doctor's schedule for the next n days. Weekends are
// skipped here since the clinic is closed Saturday and Sunday.
func seedSlots(svc *service.TimeSlotService, doctorIDs []string, days int) error {
	today := time.Now()
	total := 0

	for _, doctorID := range doctorIDs {
		for i := 0; i < days; i++ {
			date := today.AddDate(0, 0, i)
			if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			slots, err := svc.GenerateSlots(doctorID, date)
			if err != nil {
				return fmt.Errorf("generate slots for doctor %s: %w", doctorID, err)
			}
			total += len(slots)
		}
	}

	log.Printf("Seeded %d time slots across %d doctors", total, len(doctorIDs))
	return nil
}
