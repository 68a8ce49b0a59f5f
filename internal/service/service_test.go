package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-care-server/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// seedDoctor creates a doctor with an attached login account.
func seedDoctor(t *testing.T, db *gorm.DB, name string) *models.Doctor {
	t.Helper()
	user := models.User{Username: name, Role: models.RoleDoctor}
	if err := user.SetPassword("secret-password"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating doctor user: %v", err)
	}
	doctor := models.Doctor{
		UserRef:       models.ActiveRef(user.ID),
		FullName:      name,
		Qualification: "MBBS",
		Designation:   "Physician",
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("creating doctor: %v", err)
	}
	return &doctor
}

// seedPatient creates a patient with an attached login account.
func seedPatient(t *testing.T, db *gorm.DB, name string) *models.Patient {
	t.Helper()
	user := models.User{Username: name, Role: models.RolePatient}
	if err := user.SetPassword("secret-password"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating patient user: %v", err)
	}
	patient := models.Patient{
		UserRef:  models.ActiveRef(user.ID),
		FullName: name,
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("creating patient: %v", err)
	}
	return &patient
}

// seedSchedule declares an availability window for a doctor.
func seedSchedule(t *testing.T, db *gorm.DB, doctorID string, start, end time.Time, status models.ScheduleStatus) *models.DoctorSchedule {
	t.Helper()
	schedule := models.DoctorSchedule{
		DoctorID:  doctorID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("creating schedule: %v", err)
	}
	return &schedule
}

// seedAppointment creates an appointment directly in the given status.
func seedAppointment(t *testing.T, db *gorm.DB, patientID, doctorID string, date time.Time, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appointment := models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		Status:          status,
		Symptoms:        "headache",
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("creating appointment: %v", err)
	}
	return &appointment
}

func reloadAppointment(t *testing.T, db *gorm.DB, id string) *models.Appointment {
	t.Helper()
	var appointment models.Appointment
	if err := db.First(&appointment, "id = ?", id).Error; err != nil {
		t.Fatalf("reloading appointment: %v", err)
	}
	return &appointment
}
