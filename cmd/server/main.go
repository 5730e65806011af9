package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinic-booking-backend/internal/config"
	"clinic-booking-backend/internal/database"
	"clinic-booking-backend/internal/handler"
	"clinic-booking-backend/internal/logger"
	"clinic-booking-backend/internal/middleware"
	"clinic-booking-backend/internal/models"
	"clinic-booking-backend/internal/repository"
	"clinic-booking-backend/internal/service"
	"clinic-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	zapLogger := logger.New(cfg.Server.Env)
	defer zapLogger.Sync()

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := database.Connect(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	timeSlotRepo := repository.NewTimeSlotRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(db, userRepo, doctorRepo, patientRepo, auditRepo)
	userService := service.NewUserService(userRepo)
	doctorService := service.NewDoctorService(doctorRepo)
	timeSlotService := service.NewTimeSlotService(timeSlotRepo, doctorRepo, auditRepo, zapLogger)
	bookingService := service.NewBookingService(appointmentRepo, timeSlotRepo, doctorRepo, patientRepo, auditRepo, zapLogger)

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	registerValidators()

	// 7. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, zapLogger)
	doctorHandler := handler.NewDoctorHandler(doctorService, zapLogger)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotService, zapLogger)
	appointmentHandler := handler.NewAppointmentHandler(bookingService, zapLogger)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-booking-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// User profile routes (authenticated)
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.PUT("/password", userHandler.ChangePassword)
	}

	// Doctor catalogue routes (public)
	doctors := r.Group("/doctors")
	{
		doctors.GET("", doctorHandler.GetAll)
		doctors.GET("/:id", doctorHandler.GetByID)
		doctors.GET("/specialization/:specialization", doctorHandler.GetBySpecialization)
	}

	// Time slot routes
	slots := r.Group("/time-slots")
	{
		// Public reads
		slots.GET("/doctor/:doctorId", timeSlotHandler.GetDoctorSlots)
		slots.GET("/available/:doctorId", timeSlotHandler.GetAvailableSlots)

		// Schedule management (doctor/admin only)
		manage := slots.Group("")
		manage.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin))
		{
			manage.POST("/generate/:doctorId", timeSlotHandler.GenerateSlots)
			manage.POST("/generate-days/:doctorId", timeSlotHandler.GenerateSlotsForDays)
			manage.PUT("/status/:id", timeSlotHandler.UpdateSlotStatus)
			manage.POST("/unavailable", timeSlotHandler.MarkSlotsUnavailable)
		}
	}

	// Appointment routes (authenticated)
	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.POST("", middleware.RequireRoles(models.RolePatient), appointmentHandler.Book)
		appointments.GET("/all", middleware.RequireRoles(models.RoleAdmin), appointmentHandler.GetAll)
		appointments.GET("/doctor/:doctorId", middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin), appointmentHandler.GetDoctorAppointments)
		appointments.GET("/patient/:patientId", appointmentHandler.GetPatientAppointments)
		appointments.GET("/:id", appointmentHandler.GetByID)
		appointments.PUT("/:id/status", middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin), appointmentHandler.UpdateStatus)
		appointments.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), appointmentHandler.Delete)
	}

	// 10. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}

// registerValidators wires the status enums into gin's binding layer so
// request structs can declare them as tags.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("slotstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidSlotStatus(fl.Field().String())
	})
	v.RegisterValidation("apptstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidAppointmentStatus(fl.Field().String())
	})
}
