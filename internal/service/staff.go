package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// StaffService covers the administrator's management of doctors and
// patients, including the deactivation cascade that cancels every
// non-terminal appointment of a removed party.
type StaffService struct {
	DB       *gorm.DB
	Accounts *AccountService
}

// NewStaffService creates a new StaffService.
func NewStaffService(db *gorm.DB, accounts *AccountService) *StaffService {
	return &StaffService{DB: db, Accounts: accounts}
}

// AdminRegistration carries the fields for creating an administrator.
type AdminRegistration struct {
	Username string
	Password string
	FullName string
	Email    string
}

// RegisterAdmin creates an administrator login account.
func (s *StaffService) RegisterAdmin(reg AdminRegistration) (*models.User, error) {
	available, err := s.Accounts.IsUsernameAvailable(reg.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: username is already taken", ErrValidation)
	}

	user := models.User{Username: reg.Username, Role: models.RoleAdmin}
	if err := user.SetPassword(reg.Password); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DoctorRegistration carries the fields for creating a doctor with their
// login account.
type DoctorRegistration struct {
	Username        string
	Password        string
	FullName        string
	Email           string
	ExperienceYears int
	Qualification   string
	Designation     string
}

// RegisterDoctor creates a doctor login account and profile in one
// transaction.
func (s *StaffService) RegisterDoctor(reg DoctorRegistration) (*models.Doctor, error) {
	available, err := s.Accounts.IsUsernameAvailable(reg.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: username is already taken", ErrValidation)
	}

	var doctor models.Doctor
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{Username: reg.Username, Role: models.RoleDoctor}
		if err := user.SetPassword(reg.Password); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		doctor = models.Doctor{
			UserRef:         models.ActiveRef(user.ID),
			FullName:        reg.FullName,
			Email:           reg.Email,
			ExperienceYears: reg.ExperienceYears,
			Qualification:   reg.Qualification,
			Designation:     reg.Designation,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// DoctorUpdate carries optional profile corrections; empty fields are kept.
type DoctorUpdate struct {
	FullName        string
	Email           string
	ExperienceYears *int
	Qualification   string
	Designation     string
}

// UpdateDoctor patches a doctor profile.
func (s *StaffService) UpdateDoctor(doctorID string, update DoctorUpdate) error {
	doctor, err := s.GetDoctor(doctorID)
	if err != nil {
		return err
	}
	if update.FullName != "" {
		doctor.FullName = update.FullName
	}
	if update.Email != "" {
		doctor.Email = update.Email
	}
	if update.ExperienceYears != nil {
		doctor.ExperienceYears = *update.ExperienceYears
	}
	if update.Qualification != "" {
		doctor.Qualification = update.Qualification
	}
	if update.Designation != "" {
		doctor.Designation = update.Designation
	}
	return s.DB.Save(doctor).Error
}

// GetDoctor returns one doctor by id.
func (s *StaffService) GetDoctor(doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: doctor %s", ErrNotFound, doctorID)
		}
		return nil, err
	}
	return &doctor, nil
}

// GetPatient returns one patient by id.
func (s *StaffService) GetPatient(patientID string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
		}
		return nil, err
	}
	return &patient, nil
}

// PatientUpdate carries optional profile corrections; empty fields are kept.
type PatientUpdate struct {
	FullName       string
	Email          string
	DateOfBirth    *time.Time
	ContactNumber  string
	Address        string
	MedicalHistory string
}

// UpdatePatient patches a patient profile.
func (s *StaffService) UpdatePatient(patientID string, update PatientUpdate) error {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return err
	}
	if update.FullName != "" {
		patient.FullName = update.FullName
	}
	if update.Email != "" {
		patient.Email = update.Email
	}
	if update.DateOfBirth != nil {
		patient.DateOfBirth = update.DateOfBirth
	}
	if update.ContactNumber != "" {
		patient.ContactNumber = update.ContactNumber
	}
	if update.Address != "" {
		patient.Address = update.Address
	}
	if update.MedicalHistory != "" {
		patient.MedicalHistory = update.MedicalHistory
	}
	return s.DB.Save(patient).Error
}

// DeactivateDoctor detaches the doctor from their login account, removes the
// account and cancels every non-terminal appointment the doctor holds.
// The doctor record itself is kept for history with an Inactive designation.
func (s *StaffService) DeactivateDoctor(doctorID string) error {
	doctor, err := s.GetDoctor(doctorID)
	if err != nil {
		return err
	}
	if !doctor.Active() {
		return fmt.Errorf("%w: doctor is already inactive", ErrConflict)
	}
	userID := *doctor.UserID

	return s.DB.Transaction(func(tx *gorm.DB) error {
		doctor.Detach()
		doctor.Designation = "Inactive"
		if err := tx.Save(doctor).Error; err != nil {
			return err
		}
		if err := cancelAllNonTerminal(tx, "doctor_id", doctorID); err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}

// DeactivatePatient detaches the patient from their login account, removes
// the account and cancels every non-terminal appointment the patient holds.
func (s *StaffService) DeactivatePatient(patientID string) error {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return err
	}
	if !patient.Active() {
		return fmt.Errorf("%w: patient is already inactive", ErrConflict)
	}
	userID := *patient.UserID

	return s.DB.Transaction(func(tx *gorm.DB) error {
		patient.Detach()
		if err := tx.Save(patient).Error; err != nil {
			return err
		}
		if err := cancelAllNonTerminal(tx, "patient_id", patientID); err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}

// SearchDoctors returns active doctors, optionally filtered by a
// case-insensitive match on designation or qualification.
func (s *StaffService) SearchDoctors(specialization string) ([]models.Doctor, error) {
	query := s.DB.Where("user_id IS NOT NULL")
	if specialization != "" {
		pattern := "%" + specialization + "%"
		query = query.Where("designation LIKE ? OR qualification LIKE ?", pattern, pattern)
	}
	var doctors []models.Doctor
	err := query.Order("full_name asc").Find(&doctors).Error
	return doctors, err
}
