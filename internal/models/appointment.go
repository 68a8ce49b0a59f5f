package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "Requested"
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCanceled  AppointmentStatus = "Canceled"
)

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCanceled
}

// Appointment represents one patient's visit request with a doctor.
// Appointments are never deleted, only moved through their lifecycle.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index" json:"doctorId"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	Status          AppointmentStatus `gorm:"size:20;default:'Requested'" json:"status"`
	Symptoms        string            `gorm:"type:text" json:"symptoms"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}

// ScheduleStatus represents the status of a doctor availability window.
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "Scheduled"
	ScheduleCancelled ScheduleStatus = "Cancelled"
	ScheduleCompleted ScheduleStatus = "Completed"
)

// DoctorSchedule is one availability window declared by a doctor.
// Only windows in the "Scheduled" state accept bookings.
type DoctorSchedule struct {
	BaseModel
	DoctorID  string         `gorm:"size:36;index" json:"doctorId"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Status    ScheduleStatus `gorm:"size:20;default:'Scheduled'" json:"status"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// Covers reports whether t falls inside the window, inclusive on both ends.
func (s *DoctorSchedule) Covers(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}
