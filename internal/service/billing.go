package service

import (
	"fmt"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// BillingService handles bill queries and the single Pending -> Paid
// transition. Paid is terminal; paying a paid bill is reported as a failure.
type BillingService struct {
	DB *gorm.DB
}

// NewBillingService creates a new BillingService.
func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

// MarkPaidByDoctor marks one of the treating doctor's bills as paid.
func (s *BillingService) MarkPaidByDoctor(billingID, doctorID string) error {
	var billing models.Billing
	err := s.DB.First(&billing, "id = ? AND doctor_id = ?", billingID, doctorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: billing %s", ErrNotFound, billingID)
		}
		return err
	}
	return s.markPaid(&billing)
}

// MarkPaidByAdmin marks any bill as paid.
func (s *BillingService) MarkPaidByAdmin(billingID string) error {
	var billing models.Billing
	err := s.DB.First(&billing, "id = ?", billingID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: billing %s", ErrNotFound, billingID)
		}
		return err
	}
	return s.markPaid(&billing)
}

func (s *BillingService) markPaid(billing *models.Billing) error {
	if billing.Status == models.BillingPaid {
		return fmt.Errorf("%w: bill is already paid", ErrConflict)
	}
	billing.Status = models.BillingPaid
	return s.DB.Save(billing).Error
}

// BillingDetails is a bill together with both party names, used by the
// admin and doctor listings.
type BillingDetails struct {
	models.Billing
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

// ListAll returns every bill with patient and doctor names.
func (s *BillingService) ListAll() ([]BillingDetails, error) {
	var bills []models.Billing
	if err := s.DB.Preload("Patient").Preload("Doctor").
		Order("billing_date desc").Find(&bills).Error; err != nil {
		return nil, err
	}
	return withNames(bills), nil
}

// ListForDoctor returns every bill issued by a doctor.
func (s *BillingService) ListForDoctor(doctorID string) ([]BillingDetails, error) {
	var bills []models.Billing
	if err := s.DB.Preload("Patient").Preload("Doctor").
		Where("doctor_id = ?", doctorID).
		Order("billing_date desc").Find(&bills).Error; err != nil {
		return nil, err
	}
	return withNames(bills), nil
}

// ListForPatient returns every bill charged to a patient.
func (s *BillingService) ListForPatient(patientID string) ([]BillingDetails, error) {
	var bills []models.Billing
	if err := s.DB.Preload("Patient").Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("billing_date desc").Find(&bills).Error; err != nil {
		return nil, err
	}
	return withNames(bills), nil
}

func withNames(bills []models.Billing) []BillingDetails {
	out := make([]BillingDetails, len(bills))
	for i, b := range bills {
		out[i] = BillingDetails{
			Billing:     b,
			PatientName: b.Patient.FullName,
			DoctorName:  b.Doctor.FullName,
		}
	}
	return out
}
