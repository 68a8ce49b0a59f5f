package models

import (
	"time"
)

// BillingStatus represents the payment state of a bill.
type BillingStatus string

const (
	BillingPending BillingStatus = "Pending"
	BillingPaid    BillingStatus = "Paid"
)

// Billing is the aggregated charge record for one consultation.
// GrandTotal is computed once at creation and never recomputed.
type Billing struct {
	BaseModel
	PatientID             string        `gorm:"size:36;index" json:"patientId"`
	DoctorID              string        `gorm:"size:36;index" json:"doctorId"`
	MedicalRecordID       string        `gorm:"size:36;uniqueIndex" json:"medicalRecordId"`
	ConsultationFee       float64       `json:"consultationFee"`
	TotalTestsPrice       float64       `json:"totalTestsPrice"`
	TotalMedicationsPrice float64       `json:"totalMedicationsPrice"`
	GrandTotal            float64       `json:"grandTotal"`
	Status                BillingStatus `gorm:"size:20;default:'Pending'" json:"status"`
	BillingDate           time.Time     `json:"billingDate"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}
