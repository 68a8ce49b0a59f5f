package models

// Test is one diagnostic test the hospital offers, with its current price.
type Test struct {
	BaseModel
	TestName  string  `gorm:"size:255;not null" json:"testName"`
	TestPrice float64 `json:"testPrice"`
}

// Medication is one medication the hospital dispenses, priced per unit.
type Medication struct {
	BaseModel
	MedicationName string  `gorm:"size:255;not null" json:"medicationName"`
	PricePerUnit   float64 `json:"pricePerUnit"`
}

// Specialization is one medical specialty the hospital recognizes. Doctor
// designations are free text; this list feeds registration and search UIs.
type Specialization struct {
	BaseModel
	SpecializationName string `gorm:"size:255;not null;uniqueIndex" json:"specializationName"`
}
