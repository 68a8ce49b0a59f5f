package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// ConsultationService closes out scheduled appointments: it writes the
// medical record, prices ordered tests and prescriptions, creates the bill
// and completes the appointment — all in one transaction.
type ConsultationService struct {
	DB *gorm.DB
}

// NewConsultationService creates a new ConsultationService.
func NewConsultationService(db *gorm.DB) *ConsultationService {
	return &ConsultationService{DB: db}
}

// PrescriptionInput is one prescription line requested by the doctor.
type PrescriptionInput struct {
	MedicationID string `json:"medicationId" binding:"required,uuid"`
	Dosage       string `json:"dosage" binding:"required"`
	DurationDays int    `json:"durationDays" binding:"required,min=1"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
}

// ConsultationInput carries everything the doctor submits when conducting
// a consultation. The consultation fee is caller-supplied and not checked
// against any price table.
type ConsultationInput struct {
	Symptoms            string              `json:"symptoms" binding:"required"`
	PhysicalExamination string              `json:"physicalExamination" binding:"required"`
	TreatmentPlan       string              `json:"treatmentPlan" binding:"required"`
	FollowUpDate        *time.Time          `json:"followUpDate,omitempty"`
	TestIDs             []string            `json:"testIds"`
	Prescriptions       []PrescriptionInput `json:"prescriptions"`
	ConsultationFee     float64             `json:"consultationFee" binding:"min=0"`
}

// ConsultationResult is returned to the doctor after a successful
// consultation. Warnings list prescription lines that were dropped because
// they referenced unknown medications.
type ConsultationResult struct {
	RecordID string         `json:"recordId"`
	Billing  models.Billing `json:"billingDetails"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Conduct runs a consultation for one of the doctor's Scheduled appointments.
// The appointment must be in the Scheduled state; anything else is reported
// as not found. All writes happen in a single transaction, so a failure
// leaves no partial record or bill behind.
func (s *ConsultationService) Conduct(doctorID, appointmentID string, input ConsultationInput) (*ConsultationResult, error) {
	var result ConsultationResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		err := tx.First(&appointment, "id = ? AND doctor_id = ? AND status = ?",
			appointmentID, doctorID, models.AppointmentScheduled).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: no scheduled appointment %s for this doctor", ErrNotFound, appointmentID)
			}
			return err
		}

		record := models.MedicalRecord{
			AppointmentID:       appointment.ID,
			DoctorID:            doctorID,
			PatientID:           appointment.PatientID,
			Symptoms:            input.Symptoms,
			PhysicalExamination: input.PhysicalExamination,
			TreatmentPlan:       input.TreatmentPlan,
			FollowUpDate:        input.FollowUpDate,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		var totalTestsPrice float64
		if len(input.TestIDs) > 0 {
			var tests []models.Test
			if err := tx.Where("id IN ?", input.TestIDs).Find(&tests).Error; err != nil {
				return err
			}
			links := make([]models.MedicalRecordTest, len(tests))
			for i, t := range tests {
				links[i] = models.MedicalRecordTest{RecordID: record.ID, TestID: t.ID}
				totalTestsPrice += t.TestPrice
			}
			if len(links) > 0 {
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}
		}

		// Prescriptions referencing unknown medications are skipped, not
		// rejected. That is surfaced to the caller as a warning so the
		// dropped line does not vanish silently.
		var totalMedicationsPrice float64
		var prescriptions []models.Prescription
		for _, p := range input.Prescriptions {
			var medication models.Medication
			err := tx.First(&medication, "id = ?", p.MedicationID).Error
			if err == gorm.ErrRecordNotFound {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("prescription skipped: medication %s not found", p.MedicationID))
				continue
			}
			if err != nil {
				return err
			}
			line := models.Prescription{
				RecordID:       record.ID,
				MedicationID:   medication.ID,
				MedicationName: medication.MedicationName,
				Dosage:         p.Dosage,
				DurationDays:   p.DurationDays,
				Quantity:       p.Quantity,
				TotalPrice:     medication.PricePerUnit * float64(p.Quantity),
			}
			prescriptions = append(prescriptions, line)
			totalMedicationsPrice += line.TotalPrice
		}
		if len(prescriptions) > 0 {
			if err := tx.Create(&prescriptions).Error; err != nil {
				return err
			}
		}

		record.TotalPrice = totalTestsPrice + totalMedicationsPrice

		billing := models.Billing{
			PatientID:             appointment.PatientID,
			DoctorID:              doctorID,
			MedicalRecordID:       record.ID,
			ConsultationFee:       input.ConsultationFee,
			TotalTestsPrice:       totalTestsPrice,
			TotalMedicationsPrice: totalMedicationsPrice,
			GrandTotal:            input.ConsultationFee + totalTestsPrice + totalMedicationsPrice,
			Status:                models.BillingPending,
			BillingDate:           time.Now(),
		}
		if err := tx.Create(&billing).Error; err != nil {
			return err
		}

		// Back-fill the billing id onto the record and every prescription.
		record.BillingID = billing.ID
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		if len(prescriptions) > 0 {
			ids := make([]string, len(prescriptions))
			for i, p := range prescriptions {
				ids[i] = p.ID
			}
			if err := tx.Model(&models.Prescription{}).
				Where("id IN ?", ids).
				Update("billing_id", billing.ID).Error; err != nil {
				return err
			}
		}

		appointment.Status = models.AppointmentCompleted
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		result.RecordID = record.ID
		result.Billing = billing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordUpdate carries optional corrections to an existing medical record.
// Empty fields are left unchanged. Prices and billing are never touched;
// a billed consultation cannot be recomputed.
type RecordUpdate struct {
	Symptoms            string     `json:"symptoms"`
	PhysicalExamination string     `json:"physicalExamination"`
	TreatmentPlan       string     `json:"treatmentPlan"`
	FollowUpDate        *time.Time `json:"followUpDate,omitempty"`
}

// UpdateRecord patches the narrative fields of one of the doctor's records.
func (s *ConsultationService) UpdateRecord(doctorID, recordID, patientID string, update RecordUpdate) error {
	var record models.MedicalRecord
	err := s.DB.First(&record, "id = ? AND doctor_id = ? AND patient_id = ?",
		recordID, doctorID, patientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: medical record %s", ErrNotFound, recordID)
		}
		return err
	}

	if update.Symptoms != "" {
		record.Symptoms = update.Symptoms
	}
	if update.PhysicalExamination != "" {
		record.PhysicalExamination = update.PhysicalExamination
	}
	if update.TreatmentPlan != "" {
		record.TreatmentPlan = update.TreatmentPlan
	}
	if update.FollowUpDate != nil {
		record.FollowUpDate = update.FollowUpDate
	}
	return s.DB.Save(&record).Error
}

// MedicalHistoryEntry is one consultation in a patient's history, combining
// the record, its ordered tests, prescriptions and bill.
type MedicalHistoryEntry struct {
	RecordID            string                `json:"recordId"`
	AppointmentDate     time.Time             `json:"appointmentDate"`
	DoctorName          string                `json:"doctorName"`
	Symptoms            string                `json:"symptoms"`
	PhysicalExamination string                `json:"physicalExamination"`
	TreatmentPlan       string                `json:"treatmentPlan"`
	FollowUpDate        *time.Time            `json:"followUpDate,omitempty"`
	Tests               []models.Test         `json:"tests"`
	Prescriptions       []models.Prescription `json:"prescriptions"`
	Billing             *models.Billing       `json:"billingDetails,omitempty"`
}

// MedicalHistory returns every consultation on file for a patient, newest
// appointment first.
func (s *ConsultationService) MedicalHistory(patientID string) ([]MedicalHistoryEntry, error) {
	var records []models.MedicalRecord
	err := s.DB.Preload("Tests.Test").Preload("Prescriptions").
		Where("patient_id = ?", patientID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	entries := make([]MedicalHistoryEntry, 0, len(records))
	for _, record := range records {
		var appointment models.Appointment
		if err := s.DB.Preload("Doctor").First(&appointment, "id = ?", record.AppointmentID).Error; err != nil {
			return nil, err
		}

		entry := MedicalHistoryEntry{
			RecordID:            record.ID,
			AppointmentDate:     appointment.AppointmentDate,
			DoctorName:          appointment.Doctor.FullName,
			Symptoms:            record.Symptoms,
			PhysicalExamination: record.PhysicalExamination,
			TreatmentPlan:       record.TreatmentPlan,
			FollowUpDate:        record.FollowUpDate,
			Tests:               make([]models.Test, 0, len(record.Tests)),
			Prescriptions:       record.Prescriptions,
		}
		for _, link := range record.Tests {
			entry.Tests = append(entry.Tests, link.Test)
		}
		if record.BillingID != "" {
			var billing models.Billing
			if err := s.DB.First(&billing, "id = ?", record.BillingID).Error; err == nil {
				entry.Billing = &billing
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TestDetail is one priced test from a patient's history.
type TestDetail struct {
	TestName  string  `json:"testName"`
	TestPrice float64 `json:"testPrice"`
}

// TestDetails lists every test ever ordered for a patient.
func (s *ConsultationService) TestDetails(patientID string) ([]TestDetail, error) {
	var details []TestDetail
	err := s.DB.Model(&models.MedicalRecordTest{}).
		Select("tests.test_name, tests.test_price").
		Joins("JOIN tests ON tests.id = medical_record_tests.test_id").
		Joins("JOIN medical_records ON medical_records.id = medical_record_tests.record_id").
		Where("medical_records.patient_id = ?", patientID).
		Scan(&details).Error
	return details, err
}

// PrescriptionDetails lists every prescription ever issued to a patient.
func (s *ConsultationService) PrescriptionDetails(patientID string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := s.DB.
		Joins("JOIN medical_records ON medical_records.id = prescriptions.record_id").
		Where("medical_records.patient_id = ?", patientID).
		Find(&prescriptions).Error
	return prescriptions, err
}
