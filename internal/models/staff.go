package models

import "time"

// UserRef ties a domain record (doctor, patient) to its login account.
// A detached ref means the account was removed while the record was kept
// for history; the record can no longer log in or be acted upon.
type UserRef struct {
	UserID *string `gorm:"size:36;index" json:"userId,omitempty"`
}

// ActiveRef returns a UserRef attached to the given user.
func ActiveRef(userID string) UserRef {
	return UserRef{UserID: &userID}
}

// Active reports whether the record still has a login account.
func (r UserRef) Active() bool {
	return r.UserID != nil
}

// Detach severs the link to the login account.
func (r *UserRef) Detach() {
	r.UserID = nil
}

// Doctor represents a practitioner profile.
type Doctor struct {
	BaseModel
	UserRef
	FullName        string `gorm:"size:255;not null" json:"fullName"`
	Email           string `gorm:"size:255" json:"email"`
	ExperienceYears int    `json:"experienceYears"`
	Qualification   string `gorm:"size:255" json:"qualification"`
	Designation     string `gorm:"size:255" json:"designation"`

	Schedules    []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"-"`
	Appointments []Appointment    `gorm:"foreignKey:DoctorID" json:"-"`
}

// Patient represents a patient profile.
type Patient struct {
	BaseModel
	UserRef
	FullName       string     `gorm:"size:255;not null" json:"fullName"`
	Email          string     `gorm:"size:255" json:"email"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `gorm:"size:20" json:"gender"`
	ContactNumber  string     `gorm:"size:50" json:"contactNumber"`
	Address        string     `gorm:"size:255" json:"address"`
	MedicalHistory string     `gorm:"type:text" json:"medicalHistory"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
