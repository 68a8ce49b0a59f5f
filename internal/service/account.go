package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// AccountService handles login accounts: registration, username checks and
// resolving the domain record behind a token subject.
type AccountService struct {
	DB *gorm.DB
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// IsUsernameAvailable reports whether no user holds the given username.
func (s *AccountService) IsUsernameAvailable(username string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// PatientRegistration carries everything needed to create a patient with
// their login account.
type PatientRegistration struct {
	Username       string
	Password       string
	FullName       string
	Email          string
	DateOfBirth    *time.Time
	Gender         string
	ContactNumber  string
	Address        string
	MedicalHistory string
}

// RegisterPatient creates a login user with the patient role and the linked
// patient profile in one transaction.
func (s *AccountService) RegisterPatient(reg PatientRegistration) (*models.Patient, error) {
	available, err := s.IsUsernameAvailable(reg.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: username is already taken", ErrValidation)
	}

	var patient models.Patient
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{Username: reg.Username, Role: models.RolePatient}
		if err := user.SetPassword(reg.Password); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		patient = models.Patient{
			UserRef:        models.ActiveRef(user.ID),
			FullName:       reg.FullName,
			Email:          reg.Email,
			DateOfBirth:    reg.DateOfBirth,
			Gender:         reg.Gender,
			ContactNumber:  reg.ContactNumber,
			Address:        reg.Address,
			MedicalHistory: reg.MedicalHistory,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// Authenticate verifies a username/password pair and returns the user.
func (s *AccountService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid password", ErrValidation)
	}
	return &user, nil
}

// DoctorForUser resolves the doctor record behind a login user id.
func (s *AccountService) DoctorForUser(userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.DB.First(&doctor, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no doctor record for this account", ErrNotFound)
		}
		return nil, err
	}
	return &doctor, nil
}

// PatientForUser resolves the patient record behind a login user id.
func (s *AccountService) PatientForUser(userID string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.DB.First(&patient, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no patient record for this account", ErrNotFound)
		}
		return nil, err
	}
	return &patient, nil
}

// PersonalInfo is a patient's own view of their account and profile.
type PersonalInfo struct {
	UserID         string     `json:"userId"`
	Username       string     `json:"username"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `json:"gender"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
}

// PersonalInfoForUser returns the combined account and patient profile.
func (s *AccountService) PersonalInfoForUser(userID string) (*PersonalInfo, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	patient, err := s.PatientForUser(userID)
	if err != nil {
		return nil, err
	}
	return &PersonalInfo{
		UserID:         user.ID,
		Username:       user.Username,
		FullName:       patient.FullName,
		Email:          patient.Email,
		DateOfBirth:    patient.DateOfBirth,
		Gender:         patient.Gender,
		ContactNumber:  patient.ContactNumber,
		Address:        patient.Address,
		MedicalHistory: patient.MedicalHistory,
	}, nil
}

// PersonalInfoUpdate carries a patient's self-service profile update.
// NewPassword is optional; an empty value keeps the current password.
type PersonalInfoUpdate struct {
	Username       string
	NewPassword    string
	FullName       string
	Email          string
	DateOfBirth    *time.Time
	Gender         string
	ContactNumber  string
	Address        string
	MedicalHistory string
}

// UpdatePersonalInfo updates a patient's account and profile. A username
// change is checked for availability first.
func (s *AccountService) UpdatePersonalInfo(userID string, update PersonalInfoUpdate) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}
	patient, err := s.PatientForUser(userID)
	if err != nil {
		return err
	}

	if update.Username != user.Username {
		available, err := s.IsUsernameAvailable(update.Username)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("%w: username is already taken", ErrValidation)
		}
		user.Username = update.Username
	}
	if update.NewPassword != "" {
		if err := user.SetPassword(update.NewPassword); err != nil {
			return err
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		patient.FullName = update.FullName
		patient.Email = update.Email
		patient.DateOfBirth = update.DateOfBirth
		patient.Gender = update.Gender
		patient.ContactNumber = update.ContactNumber
		patient.Address = update.Address
		patient.MedicalHistory = update.MedicalHistory
		return tx.Save(patient).Error
	})
}
