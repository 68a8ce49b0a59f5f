package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/middleware"
	"hospital-care-server/internal/models"
	"hospital-care-server/internal/service"
	"hospital-care-server/internal/utils"
)

// DoctorHandler handles the doctor endpoints. Every route it serves runs
// behind ResolveDoctor, so the identity always carries the caller's own
// doctor id and services scope queries to it.
type DoctorHandler struct {
	Appointments  *service.AppointmentService
	Schedules     *service.ScheduleService
	Consultations *service.ConsultationService
	Billing       *service.BillingService
	Catalog       *service.CatalogService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(
	appointments *service.AppointmentService,
	schedules *service.ScheduleService,
	consultations *service.ConsultationService,
	billing *service.BillingService,
	catalog *service.CatalogService,
) *DoctorHandler {
	return &DoctorHandler{
		Appointments:  appointments,
		Schedules:     schedules,
		Consultations: consultations,
		Billing:       billing,
		Catalog:       catalog,
	}
}

// ListAppointments returns the caller's appointments filtered by status.
func (h *DoctorHandler) ListAppointments(c *gin.Context) {
	status := models.AppointmentStatus(c.DefaultQuery("status", string(models.AppointmentRequested)))
	switch status {
	case models.AppointmentRequested, models.AppointmentScheduled,
		models.AppointmentCompleted, models.AppointmentCanceled:
	default:
		utils.BadRequest(c, "Unknown appointment status: "+string(status))
		return
	}

	identity, _ := middleware.GetIdentity(c)
	appointments, err := h.Appointments.ListForDoctorByStatus(identity.DomainID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// mayActOn loads an appointment and applies the authorization policy before
// a mutation runs. A denial answers not-found, so a foreign appointment id is
// indistinguishable from a missing one.
func (h *DoctorHandler) mayActOn(c *gin.Context, identity middleware.Identity, appointmentID string) bool {
	appointment, err := h.Appointments.Get(appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	if !middleware.Allow(identity, models.RoleDoctor, appointment.DoctorID) {
		utils.NotFound(c, "Appointment not found")
		return false
	}
	return true
}

// ApproveAppointment moves one of the caller's Requested appointments to
// Scheduled.
func (h *DoctorHandler) ApproveAppointment(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if !h.mayActOn(c, identity, c.Param("id")) {
		return
	}
	appointment, err := h.Appointments.Approve(identity.DomainID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment approved", appointment)
}

// CancelAppointment cancels one of the caller's non-terminal appointments.
func (h *DoctorHandler) CancelAppointment(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if !h.mayActOn(c, identity, c.Param("id")) {
		return
	}
	if err := h.Appointments.CancelByDoctor(identity.DomainID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment canceled successfully", nil)
}

// RescheduleAppointment moves one of the caller's appointments to a new
// date. The current status is kept; no re-approval is needed.
func (h *DoctorHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)
	if !h.mayActOn(c, identity, c.Param("id")) {
		return
	}

	appointment, err := h.Appointments.RescheduleByDoctor(identity.DomainID, c.Param("id"), req.NewAppointmentDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment rescheduled successfully", appointment)
}

// ConductConsultation closes out one of the caller's Scheduled appointments:
// medical record, priced tests and prescriptions, bill, and the Completed
// transition, all in one transaction.
func (h *DoctorHandler) ConductConsultation(c *gin.Context) {
	var input service.ConsultationInput
	if !utils.BindAndValidate(c, &input) {
		return
	}
	identity, _ := middleware.GetIdentity(c)
	if !h.mayActOn(c, identity, c.Param("id")) {
		return
	}

	result, err := h.Consultations.Conduct(identity.DomainID, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Consultation recorded successfully", result)
}

// UpdateMedicalRecordRequest represents the medical record correction body.
type UpdateMedicalRecordRequest struct {
	PatientID           string     `json:"patientId" binding:"required,uuid"`
	Symptoms            string     `json:"symptoms"`
	PhysicalExamination string     `json:"physicalExamination"`
	TreatmentPlan       string     `json:"treatmentPlan"`
	FollowUpDate        *time.Time `json:"followUpDate,omitempty"`
}

// UpdateMedicalRecord patches the narrative fields of one of the caller's
// records. Prices and billing are never touched.
func (h *DoctorHandler) UpdateMedicalRecord(c *gin.Context) {
	var req UpdateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	err := h.Consultations.UpdateRecord(identity.DomainID, c.Param("id"), req.PatientID, service.RecordUpdate{
		Symptoms:            req.Symptoms,
		PhysicalExamination: req.PhysicalExamination,
		TreatmentPlan:       req.TreatmentPlan,
		FollowUpDate:        req.FollowUpDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Medical record updated successfully", nil)
}

// GetPatientMedicalHistory returns a patient's consultation history for
// review during treatment.
func (h *DoctorHandler) GetPatientMedicalHistory(c *gin.Context) {
	history, err := h.Consultations.MedicalHistory(c.Param("patientId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Medical history fetched successfully", history)
}

// ScheduleRequest represents the availability window body.
type ScheduleRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// AddSchedule declares a new availability window for the caller.
func (h *DoctorHandler) AddSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	schedule, err := h.Schedules.Add(identity.DomainID, req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Schedule added successfully", schedule)
}

// ListSchedules returns the caller's availability windows.
func (h *DoctorHandler) ListSchedules(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	schedules, err := h.Schedules.ListForDoctor(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedules fetched successfully", schedules)
}

// UpdateScheduleRequest represents the window update body.
type UpdateScheduleRequest struct {
	StartDate time.Time             `json:"startDate" binding:"required"`
	EndDate   time.Time             `json:"endDate" binding:"required"`
	Status    models.ScheduleStatus `json:"status" binding:"required,oneof=Scheduled Cancelled Completed"`
}

// UpdateSchedule replaces one of the caller's windows.
func (h *DoctorHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	if err := h.Schedules.Update(c.Param("id"), identity.DomainID, req.StartDate, req.EndDate, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedule updated successfully", nil)
}

// CancelSchedule cancels one of the caller's windows.
func (h *DoctorHandler) CancelSchedule(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if err := h.Schedules.Cancel(c.Param("id"), identity.DomainID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedule cancelled successfully", nil)
}

// CompleteSchedule marks one of the caller's windows completed.
func (h *DoctorHandler) CompleteSchedule(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if err := h.Schedules.Complete(c.Param("id"), identity.DomainID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedule completed successfully", nil)
}

// ListBills returns every bill issued by the caller.
func (h *DoctorHandler) ListBills(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	bills, err := h.Billing.ListForDoctor(identity.DomainID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Bills fetched successfully", bills)
}

// MarkBillPaid marks one of the caller's bills as paid. Paying an already
// paid bill is rejected.
func (h *DoctorHandler) MarkBillPaid(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	if err := h.Billing.MarkPaidByDoctor(c.Param("id"), identity.DomainID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Bill marked as paid", nil)
}

// ListTests returns the priced test catalog.
func (h *DoctorHandler) ListTests(c *gin.Context) {
	tests, err := h.Catalog.ListTests()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Tests fetched successfully", tests)
}

// ListMedications returns the priced medication catalog.
func (h *DoctorHandler) ListMedications(c *gin.Context) {
	medications, err := h.Catalog.ListMedications()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Medications fetched successfully", medications)
}
