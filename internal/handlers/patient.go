package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/middleware"
	"hospital-care-server/internal/models"
	"hospital-care-server/internal/service"
	"hospital-care-server/internal/utils"
)

// PatientHandler handles the patient self-service endpoints. Every route it
// serves runs behind ResolvePatient, so the identity always carries the
// caller's own patient id.
type PatientHandler struct {
	Accounts      *service.AccountService
	Staff         *service.StaffService
	Appointments  *service.AppointmentService
	Schedules     *service.ScheduleService
	Consultations *service.ConsultationService
	Billing       *service.BillingService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(
	accounts *service.AccountService,
	staff *service.StaffService,
	appointments *service.AppointmentService,
	schedules *service.ScheduleService,
	consultations *service.ConsultationService,
	billing *service.BillingService,
) *PatientHandler {
	return &PatientHandler{
		Accounts:      accounts,
		Staff:         staff,
		Appointments:  appointments,
		Schedules:     schedules,
		Consultations: consultations,
		Billing:       billing,
	}
}

// GetPersonalInfo returns the caller's account and profile details.
func (h *PatientHandler) GetPersonalInfo(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	info, err := h.Accounts.PersonalInfoForUser(identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Personal information fetched successfully", info)
}

// UpdatePersonalInfoRequest represents the patient profile update body.
type UpdatePersonalInfoRequest struct {
	Username       string     `json:"username" binding:"required,min=3"`
	NewPassword    string     `json:"newPassword,omitempty"`
	FullName       string     `json:"fullName" binding:"required"`
	Email          string     `json:"email" binding:"required,email"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `json:"gender"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
}

// UpdatePersonalInfo updates the caller's account and profile.
func (h *PatientHandler) UpdatePersonalInfo(c *gin.Context) {
	var req UpdatePersonalInfoRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	err := h.Accounts.UpdatePersonalInfo(identity.UserID, service.PersonalInfoUpdate{
		Username:       req.Username,
		NewPassword:    req.NewPassword,
		FullName:       req.FullName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Personal information updated successfully", nil)
}

// SearchDoctors lists active doctors, optionally filtered by specialization.
func (h *PatientHandler) SearchDoctors(c *gin.Context) {
	doctors, err := h.Staff.SearchDoctors(c.Query("specialization"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(doctors) == 0 {
		utils.NotFound(c, "No doctors found for the specified specialization")
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorSchedule lists a doctor's availability windows so the patient can
// pick a bookable time.
func (h *PatientHandler) GetDoctorSchedule(c *gin.Context) {
	schedules, err := h.Schedules.ListForDoctor(c.Param("doctorId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(schedules) == 0 {
		utils.NotFound(c, "No schedule found for the specified doctor")
		return
	}
	utils.Success(c, "Doctor schedule fetched successfully", schedules)
}

// BookAppointmentRequest represents the appointment booking body.
type BookAppointmentRequest struct {
	DoctorID        string    `json:"doctorId" binding:"required,uuid"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Symptoms        string    `json:"symptoms" binding:"required"`
}

// BookAppointment books an appointment for the caller. The appointment is
// created in the Requested state and waits for the doctor's approval.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	appointment, err := h.Appointments.Book(identity.DomainID, req.DoctorID, req.AppointmentDate, req.Symptoms)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Appointment requested successfully", appointment)
}

// ListAppointments returns all of the caller's appointments.
func (h *PatientHandler) ListAppointments(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	appointments, err := h.Appointments.ListForPatient(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// mayActOn loads an appointment and applies the authorization policy before
// a mutation runs. A denial answers not-found, so a foreign appointment id is
// indistinguishable from a missing one.
func (h *PatientHandler) mayActOn(c *gin.Context, identity middleware.Identity, appointmentID string) bool {
	appointment, err := h.Appointments.Get(appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	if !middleware.Allow(identity, models.RolePatient, appointment.PatientID) {
		utils.NotFound(c, "Appointment not found")
		return false
	}
	return true
}

// CancelAppointment cancels one of the caller's appointments.
func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if !h.mayActOn(c, identity, c.Param("id")) {
		return
	}
	if err := h.Appointments.CancelByPatient(identity.DomainID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment canceled successfully", nil)
}

// RescheduleRequest represents the reschedule body shared by all roles.
type RescheduleRequest struct {
	NewAppointmentDate time.Time `json:"newAppointmentDate" binding:"required"`
}

// RescheduleAppointment moves one of the caller's appointments to a new
// date. The appointment returns to the Requested state and must be approved
// again by the doctor.
func (h *PatientHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)
	if !h.mayActOn(c, identity, c.Param("id")) {
		return
	}

	appointment, err := h.Appointments.RescheduleByPatient(identity.DomainID, c.Param("id"), req.NewAppointmentDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment rescheduled successfully and awaits re-approval", appointment)
}

// GetMedicalHistory returns the caller's consultation history.
func (h *PatientHandler) GetMedicalHistory(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	history, err := h.Consultations.MedicalHistory(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(history) == 0 {
		utils.NotFound(c, "No medical history found")
		return
	}
	utils.Success(c, "Medical history fetched successfully", history)
}

// GetTestDetails lists every test ordered for the caller.
func (h *PatientHandler) GetTestDetails(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	details, err := h.Consultations.TestDetails(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Test details fetched successfully", details)
}

// GetPrescriptionDetails lists every prescription issued to the caller.
func (h *PatientHandler) GetPrescriptionDetails(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	prescriptions, err := h.Consultations.PrescriptionDetails(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Prescription details fetched successfully", prescriptions)
}

// GetBills lists every bill charged to the caller.
func (h *PatientHandler) GetBills(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	bills, err := h.Billing.ListForPatient(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Billing details fetched successfully", bills)
}
