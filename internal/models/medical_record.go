package models

import (
	"time"
)

// MedicalRecord documents one completed consultation. Exactly one record is
// created per consultation and it is owned by the appointment it documents.
type MedicalRecord struct {
	BaseModel
	AppointmentID       string     `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	DoctorID            string     `gorm:"size:36;index" json:"doctorId"`
	PatientID           string     `gorm:"size:36;index" json:"patientId"`
	Symptoms            string     `gorm:"type:text" json:"symptoms"`
	PhysicalExamination string     `gorm:"type:text" json:"physicalExamination"`
	TreatmentPlan       string     `gorm:"type:text" json:"treatmentPlan"`
	FollowUpDate        *time.Time `json:"followUpDate,omitempty"`
	TotalPrice          float64    `json:"totalPrice"`
	BillingID           string     `gorm:"size:36;index" json:"billingId"`

	// Relations
	Appointment   Appointment         `gorm:"foreignKey:AppointmentID" json:"-"`
	Tests         []MedicalRecordTest `gorm:"foreignKey:RecordID" json:"tests,omitempty"`
	Prescriptions []Prescription      `gorm:"foreignKey:RecordID" json:"prescriptions,omitempty"`
}

// MedicalRecordTest links a medical record to one ordered test.
type MedicalRecordTest struct {
	BaseModel
	RecordID string `gorm:"size:36;index" json:"recordId"`
	TestID   string `gorm:"size:36;index" json:"testId"`

	Test Test `gorm:"foreignKey:TestID" json:"test,omitempty"`
}

// Prescription is one prescribed medication line under a medical record.
// TotalPrice is the medication unit price times the prescribed quantity,
// frozen at consultation time.
type Prescription struct {
	BaseModel
	RecordID       string  `gorm:"size:36;index" json:"recordId"`
	MedicationID   string  `gorm:"size:36;index" json:"medicationId"`
	MedicationName string  `gorm:"size:255" json:"medicationName"`
	Dosage         string  `gorm:"size:100" json:"dosage"`
	DurationDays   int     `json:"durationDays"`
	Quantity       int     `json:"quantity"`
	TotalPrice     float64 `json:"totalPrice"`
	BillingID      string  `gorm:"size:36;index" json:"billingId"`
}
