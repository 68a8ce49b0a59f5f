package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/service"
	"hospital-care-server/internal/utils"
)

// AdminHandler handles the administrator endpoints: staff management,
// appointment oversight, schedules, billing and the priced catalogs.
type AdminHandler struct {
	Staff        *service.StaffService
	Appointments *service.AppointmentService
	Schedules    *service.ScheduleService
	Billing      *service.BillingService
	Catalog      *service.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	staff *service.StaffService,
	appointments *service.AppointmentService,
	schedules *service.ScheduleService,
	billing *service.BillingService,
	catalog *service.CatalogService,
) *AdminHandler {
	return &AdminHandler{
		Staff:        staff,
		Appointments: appointments,
		Schedules:    schedules,
		Billing:      billing,
		Catalog:      catalog,
	}
}

// RegisterAdminRequest represents the administrator registration body.
type RegisterAdminRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// RegisterAdmin creates another administrator account.
func (h *AdminHandler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	user, err := h.Staff.RegisterAdmin(service.AdminRegistration{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Administrator registered successfully", user.Sanitize())
}

// RegisterDoctorRequest represents the doctor registration body.
type RegisterDoctorRequest struct {
	Username        string `json:"username" binding:"required,min=3"`
	Password        string `json:"password" binding:"required,min=8"`
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	ExperienceYears int    `json:"experienceYears"`
	Qualification   string `json:"qualification"`
	Designation     string `json:"designation"`
}

// RegisterDoctor creates a doctor account and profile.
func (h *AdminHandler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	doctor, err := h.Staff.RegisterDoctor(service.DoctorRegistration{
		Username:        req.Username,
		Password:        req.Password,
		FullName:        req.FullName,
		Email:           req.Email,
		ExperienceYears: req.ExperienceYears,
		Qualification:   req.Qualification,
		Designation:     req.Designation,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Doctor registered successfully", doctor)
}

// GetDoctor returns one doctor's profile.
func (h *AdminHandler) GetDoctor(c *gin.Context) {
	doctor, err := h.Staff.GetDoctor(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Doctor fetched successfully", doctor)
}

// UpdateDoctorRequest represents the doctor profile update body.
// Empty fields are left unchanged.
type UpdateDoctorRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	ExperienceYears *int   `json:"experienceYears,omitempty"`
	Qualification   string `json:"qualification"`
	Designation     string `json:"designation"`
}

// UpdateDoctor patches a doctor profile.
func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	err := h.Staff.UpdateDoctor(c.Param("id"), service.DoctorUpdate{
		FullName:        req.FullName,
		Email:           req.Email,
		ExperienceYears: req.ExperienceYears,
		Qualification:   req.Qualification,
		Designation:     req.Designation,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Doctor updated successfully", nil)
}

// DeactivateDoctor removes a doctor's login account and cancels all their
// pending and scheduled appointments. The profile stays for history.
func (h *AdminHandler) DeactivateDoctor(c *gin.Context) {
	if err := h.Staff.DeactivateDoctor(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Doctor deactivated; open appointments were canceled", nil)
}

// GetPatient returns one patient's profile.
func (h *AdminHandler) GetPatient(c *gin.Context) {
	patient, err := h.Staff.GetPatient(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest represents the patient profile update body.
type UpdatePatientRequest struct {
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
}

// UpdatePatient patches a patient profile.
func (h *AdminHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	err := h.Staff.UpdatePatient(c.Param("id"), service.PatientUpdate{
		FullName:       req.FullName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient updated successfully", nil)
}

// DeactivatePatient removes a patient's login account and cancels all their
// pending and scheduled appointments.
func (h *AdminHandler) DeactivatePatient(c *gin.Context) {
	if err := h.Staff.DeactivatePatient(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient deactivated; open appointments were canceled", nil)
}

// GetAppointment returns any appointment with both parties.
func (h *AdminHandler) GetAppointment(c *gin.Context) {
	appointment, err := h.Appointments.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointment)
}

// RescheduleAppointment moves any appointment to a new date, keeping its
// current status.
func (h *AdminHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	appointment, err := h.Appointments.RescheduleByAdmin(c.Param("id"), req.NewAppointmentDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment rescheduled successfully", appointment)
}

// ListSchedules returns a doctor's windows with the doctor's name.
func (h *AdminHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.Schedules.ListWithDoctor(c.Param("doctorId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedules fetched successfully", schedules)
}

// UpdateSchedule replaces any window's bounds and reactivates it.
func (h *AdminHandler) UpdateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := h.Schedules.UpdateByAdmin(c.Param("id"), req.StartDate, req.EndDate); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedule updated successfully", nil)
}

// CancelSchedule cancels any doctor's window.
func (h *AdminHandler) CancelSchedule(c *gin.Context) {
	if err := h.Schedules.CancelByAdmin(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedule cancelled successfully", nil)
}

// CompleteSchedule marks any doctor's window completed.
func (h *AdminHandler) CompleteSchedule(c *gin.Context) {
	if err := h.Schedules.CompleteByAdmin(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Schedule completed successfully", nil)
}

// ListBills returns every bill with patient and doctor names.
func (h *AdminHandler) ListBills(c *gin.Context) {
	bills, err := h.Billing.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Bills fetched successfully", bills)
}

// MarkBillPaid marks any bill as paid. Paying an already paid bill is
// rejected.
func (h *AdminHandler) MarkBillPaid(c *gin.Context) {
	if err := h.Billing.MarkPaidByAdmin(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Bill marked as paid", nil)
}

// CatalogItemRequest represents the body shared by test and medication
// create/update endpoints.
type CatalogItemRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
}

// ListTests returns the test catalog.
func (h *AdminHandler) ListTests(c *gin.Context) {
	tests, err := h.Catalog.ListTests()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Tests fetched successfully", tests)
}

// AddTest creates a priced test.
func (h *AdminHandler) AddTest(c *gin.Context) {
	var req CatalogItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	test, err := h.Catalog.AddTest(req.Name, req.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Test added successfully", test)
}

// UpdateTest replaces a test's name and price.
func (h *AdminHandler) UpdateTest(c *gin.Context) {
	var req CatalogItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := h.Catalog.UpdateTest(c.Param("id"), req.Name, req.Price); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Test updated successfully", nil)
}

// ListMedications returns the medication catalog.
func (h *AdminHandler) ListMedications(c *gin.Context) {
	medications, err := h.Catalog.ListMedications()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Medications fetched successfully", medications)
}

// AddMedication creates a priced medication.
func (h *AdminHandler) AddMedication(c *gin.Context) {
	var req CatalogItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	medication, err := h.Catalog.AddMedication(req.Name, req.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Medication added successfully", medication)
}

// UpdateMedication replaces a medication's name and unit price.
func (h *AdminHandler) UpdateMedication(c *gin.Context) {
	var req CatalogItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := h.Catalog.UpdateMedication(c.Param("id"), req.Name, req.Price); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Medication updated successfully", nil)
}

// SpecializationRequest represents the body for adding a specialty.
type SpecializationRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListSpecializations returns the recognized specialties.
func (h *AdminHandler) ListSpecializations(c *gin.Context) {
	specializations, err := h.Catalog.ListSpecializations()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Specializations fetched successfully", specializations)
}

// AddSpecialization creates a specialty.
func (h *AdminHandler) AddSpecialization(c *gin.Context) {
	var req SpecializationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	specialization, err := h.Catalog.AddSpecialization(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Specialization added successfully", specialization)
}
