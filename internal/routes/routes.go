package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-care-server/internal/config"
	"hospital-care-server/internal/handlers"
	"hospital-care-server/internal/middleware"
	"hospital-care-server/internal/models"
	"hospital-care-server/internal/service"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Services
	accounts := service.NewAccountService(db)
	staff := service.NewStaffService(db, accounts)
	schedules := service.NewScheduleService(db)
	appointments := service.NewAppointmentService(db, schedules)
	consultations := service.NewConsultationService(db)
	billing := service.NewBillingService(db)
	catalog := service.NewCatalogService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(accounts, cfg)
	adminHandler := handlers.NewAdminHandler(staff, appointments, schedules, billing, catalog)
	doctorHandler := handlers.NewDoctorHandler(appointments, schedules, consultations, billing, catalog)
	patientHandler := handlers.NewPatientHandler(accounts, staff, appointments, schedules, consultations, billing)

	// Public routes (no authentication required)
	public := router.Group("/api/user")
	{
		public.GET("/check-username", authHandler.CheckUsername)
		public.POST("/register", authHandler.RegisterPatient)
		public.POST("/login", authHandler.Login)
	}

	// Administrator routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/admins", adminHandler.RegisterAdmin)

		admin.POST("/doctors", adminHandler.RegisterDoctor)
		admin.GET("/doctors/:id", adminHandler.GetDoctor)
		admin.PUT("/doctors/:id", adminHandler.UpdateDoctor)
		admin.DELETE("/doctors/:id", adminHandler.DeactivateDoctor)
		admin.GET("/doctors/:id/schedules", adminHandler.ListSchedules)

		admin.GET("/patients/:id", adminHandler.GetPatient)
		admin.PUT("/patients/:id", adminHandler.UpdatePatient)
		admin.DELETE("/patients/:id", adminHandler.DeactivatePatient)

		admin.GET("/appointments/:id", adminHandler.GetAppointment)
		admin.PUT("/appointments/:id/reschedule", adminHandler.RescheduleAppointment)

		admin.PUT("/schedules/:id", adminHandler.UpdateSchedule)
		admin.POST("/schedules/:id/cancel", adminHandler.CancelSchedule)
		admin.POST("/schedules/:id/complete", adminHandler.CompleteSchedule)

		admin.GET("/bills", adminHandler.ListBills)
		admin.POST("/bills/:id/pay", adminHandler.MarkBillPaid)

		admin.GET("/tests", adminHandler.ListTests)
		admin.POST("/tests", adminHandler.AddTest)
		admin.PUT("/tests/:id", adminHandler.UpdateTest)

		admin.GET("/medications", adminHandler.ListMedications)
		admin.POST("/medications", adminHandler.AddMedication)
		admin.PUT("/medications/:id", adminHandler.UpdateMedication)

		admin.GET("/specializations", adminHandler.ListSpecializations)
		admin.POST("/specializations", adminHandler.AddSpecialization)
	}

	// Doctor routes; the identity carries the caller's own doctor id
	doctor := router.Group("/api/doctor")
	doctor.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleDoctor), middleware.ResolveDoctor(accounts))
	{
		doctor.GET("/appointments", doctorHandler.ListAppointments)
		doctor.POST("/appointments/:id/approve", doctorHandler.ApproveAppointment)
		doctor.POST("/appointments/:id/cancel", doctorHandler.CancelAppointment)
		doctor.PUT("/appointments/:id/reschedule", doctorHandler.RescheduleAppointment)
		doctor.POST("/appointments/:id/consultation", doctorHandler.ConductConsultation)

		doctor.PUT("/medical-records/:id", doctorHandler.UpdateMedicalRecord)
		doctor.GET("/patients/:patientId/medical-history", doctorHandler.GetPatientMedicalHistory)

		doctor.GET("/schedules", doctorHandler.ListSchedules)
		doctor.POST("/schedules", doctorHandler.AddSchedule)
		doctor.PUT("/schedules/:id", doctorHandler.UpdateSchedule)
		doctor.POST("/schedules/:id/cancel", doctorHandler.CancelSchedule)
		doctor.POST("/schedules/:id/complete", doctorHandler.CompleteSchedule)

		doctor.GET("/bills", doctorHandler.ListBills)
		doctor.POST("/bills/:id/pay", doctorHandler.MarkBillPaid)

		doctor.GET("/tests", doctorHandler.ListTests)
		doctor.GET("/medications", doctorHandler.ListMedications)
	}

	// Patient routes; the identity carries the caller's own patient id
	patient := router.Group("/api/patient")
	patient.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RolePatient), middleware.ResolvePatient(accounts))
	{
		patient.GET("/profile", patientHandler.GetPersonalInfo)
		patient.PUT("/profile", patientHandler.UpdatePersonalInfo)

		patient.GET("/doctors", patientHandler.SearchDoctors)
		patient.GET("/doctors/:doctorId/schedules", patientHandler.GetDoctorSchedule)

		patient.POST("/appointments", patientHandler.BookAppointment)
		patient.GET("/appointments", patientHandler.ListAppointments)
		patient.POST("/appointments/:id/cancel", patientHandler.CancelAppointment)
		patient.PUT("/appointments/:id/reschedule", patientHandler.RescheduleAppointment)

		patient.GET("/medical-history", patientHandler.GetMedicalHistory)
		patient.GET("/tests", patientHandler.GetTestDetails)
		patient.GET("/prescriptions", patientHandler.GetPrescriptionDetails)
		patient.GET("/bills", patientHandler.GetBills)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
