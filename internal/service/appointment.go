package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// AppointmentService owns the appointment lifecycle:
//
//	Requested -> Scheduled -> Completed
//	Requested | Scheduled -> Canceled
//
// Completed and Canceled are terminal. The Completed transition happens only
// as a side effect of a consultation (see ConsultationService).
type AppointmentService struct {
	DB        *gorm.DB
	Schedules *ScheduleService
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(db *gorm.DB, schedules *ScheduleService) *AppointmentService {
	return &AppointmentService{DB: db, Schedules: schedules}
}

// CanTransition reports whether the state machine permits moving an
// appointment from one status to another. Invalid transitions leave the
// appointment untouched.
func CanTransition(from, to models.AppointmentStatus) bool {
	switch from {
	case models.AppointmentRequested:
		return to == models.AppointmentScheduled || to == models.AppointmentCanceled
	case models.AppointmentScheduled:
		return to == models.AppointmentCompleted || to == models.AppointmentCanceled
	default:
		return false
	}
}

// Book creates an appointment in the Requested state after confirming the
// doctor has an active schedule window covering the requested date.
func (s *AppointmentService) Book(patientID, doctorID string, date time.Time, symptoms string) (*models.Appointment, error) {
	var doctor models.Doctor
	if err := s.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: doctor %s", ErrNotFound, doctorID)
		}
		return nil, err
	}
	if !doctor.Active() {
		return nil, fmt.Errorf("%w: doctor is no longer accepting appointments", ErrValidation)
	}

	available, err := s.Schedules.IsDoctorOnSchedule(doctorID, date)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: the doctor is not available at the selected date and time", ErrValidation)
	}

	appointment := models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		Symptoms:        symptoms,
		Status:          models.AppointmentRequested,
	}
	if err := s.DB.Create(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Approve moves a doctor's appointment from Requested to Scheduled.
// An appointment that is absent or not in the Requested state is reported
// as not found, matching the ownership-by-absence policy.
func (s *AppointmentService) Approve(doctorID, appointmentID string) (*models.Appointment, error) {
	appointment, err := s.getForDoctorInStatus(doctorID, appointmentID, models.AppointmentRequested)
	if err != nil {
		return nil, err
	}
	appointment.Status = models.AppointmentScheduled
	if err := s.DB.Save(appointment).Error; err != nil {
		return nil, err
	}
	return appointment, nil
}

// CancelByDoctor cancels one of the doctor's own non-terminal appointments.
func (s *AppointmentService) CancelByDoctor(doctorID, appointmentID string) error {
	var appointment models.Appointment
	err := s.DB.First(&appointment, "id = ? AND doctor_id = ?", appointmentID, doctorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return err
	}
	return s.cancel(&appointment)
}

// CancelByPatient cancels one of the patient's own non-terminal appointments.
func (s *AppointmentService) CancelByPatient(patientID, appointmentID string) error {
	var appointment models.Appointment
	err := s.DB.First(&appointment, "id = ? AND patient_id = ?", appointmentID, patientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return err
	}
	return s.cancel(&appointment)
}

func (s *AppointmentService) cancel(appointment *models.Appointment) error {
	if !CanTransition(appointment.Status, models.AppointmentCanceled) {
		return fmt.Errorf("%w: appointment is already %s", ErrConflict, appointment.Status)
	}
	appointment.Status = models.AppointmentCanceled
	return s.DB.Save(appointment).Error
}

// RescheduleByPatient moves a patient's appointment to a new future date
// inside one of the doctor's active windows. The status resets to Requested
// so the doctor has to approve the new time.
func (s *AppointmentService) RescheduleByPatient(patientID, appointmentID string, newDate time.Time) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.First(&appointment, "id = ? AND patient_id = ?", appointmentID, patientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return nil, err
	}

	if appointment.Status != models.AppointmentRequested && appointment.Status != models.AppointmentScheduled {
		return nil, fmt.Errorf("%w: only requested or scheduled appointments can be rescheduled", ErrValidation)
	}
	if err := s.checkNewDate(appointment.DoctorID, newDate); err != nil {
		return nil, err
	}

	appointment.AppointmentDate = newDate
	appointment.Status = models.AppointmentRequested
	if err := s.DB.Save(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// RescheduleByDoctor moves one of the doctor's appointments to a new future
// date inside an active window. The current status is kept.
func (s *AppointmentService) RescheduleByDoctor(doctorID, appointmentID string, newDate time.Time) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.First(&appointment, "id = ? AND doctor_id = ?", appointmentID, doctorID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return nil, err
	}
	return s.rescheduleKeepingStatus(&appointment, newDate)
}

// RescheduleByAdmin moves any appointment to a new future date inside an
// active window of its doctor. The current status is kept.
func (s *AppointmentService) RescheduleByAdmin(appointmentID string, newDate time.Time) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return nil, err
	}
	return s.rescheduleKeepingStatus(&appointment, newDate)
}

func (s *AppointmentService) rescheduleKeepingStatus(appointment *models.Appointment, newDate time.Time) (*models.Appointment, error) {
	if appointment.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment is already %s", ErrValidation, appointment.Status)
	}
	if err := s.checkNewDate(appointment.DoctorID, newDate); err != nil {
		return nil, err
	}
	appointment.AppointmentDate = newDate
	if err := s.DB.Save(appointment).Error; err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) checkNewDate(doctorID string, newDate time.Time) error {
	if !newDate.After(time.Now()) {
		return fmt.Errorf("%w: the new appointment date must be in the future", ErrValidation)
	}
	available, err := s.Schedules.IsDoctorOnSchedule(doctorID, newDate)
	if err != nil {
		return err
	}
	if !available {
		return fmt.Errorf("%w: the doctor is not available at the new date and time", ErrValidation)
	}
	return nil
}

// ListForDoctorByStatus returns a doctor's appointments filtered by status,
// with patient details preloaded.
func (s *AppointmentService) ListForDoctorByStatus(doctorID string, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Preload("Patient").
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Order("appointment_date asc").
		Find(&appointments).Error
	return appointments, err
}

// ListForPatient returns all of a patient's appointments with doctor details.
func (s *AppointmentService) ListForPatient(patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date asc").
		Find(&appointments).Error
	return appointments, err
}

// Get returns any appointment by id, with both parties preloaded.
func (s *AppointmentService) Get(appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return nil, err
	}
	return &appointment, nil
}

func (s *AppointmentService) getForDoctorInStatus(doctorID, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.First(&appointment, "id = ? AND doctor_id = ? AND status = ?", appointmentID, doctorID, status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: appointment %s in status %s", ErrNotFound, appointmentID, status)
		}
		return nil, err
	}
	return &appointment, nil
}

// cancelAllNonTerminal cancels every Requested or Scheduled appointment
// matching the column filter. Used by staff deactivation cascades; runs in
// the caller's transaction.
func cancelAllNonTerminal(tx *gorm.DB, column, id string) error {
	return tx.Model(&models.Appointment{}).
		Where(column+" = ? AND status IN ?", id,
			[]models.AppointmentStatus{models.AppointmentRequested, models.AppointmentScheduled}).
		Update("status", models.AppointmentCanceled).Error
}
