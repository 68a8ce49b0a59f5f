package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-care-server/internal/models"
)

// ScheduleService manages doctor availability windows and answers
// availability queries for booking and rescheduling.
type ScheduleService struct {
	DB *gorm.DB
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

// IsDoctorOnSchedule reports whether the doctor has an active window covering
// the proposed time. Overlapping appointments within one window are allowed;
// only the window itself is checked.
func (s *ScheduleService) IsDoctorOnSchedule(doctorID string, at time.Time) (bool, error) {
	var windows []models.DoctorSchedule
	err := s.DB.Where("doctor_id = ? AND status = ?", doctorID, models.ScheduleActive).
		Find(&windows).Error
	if err != nil {
		return false, fmt.Errorf("checking doctor schedule: %w", err)
	}
	for _, window := range windows {
		if window.Covers(at) {
			return true, nil
		}
	}
	return false, nil
}

// Add creates a new availability window in the active state.
func (s *ScheduleService) Add(doctorID string, startDate, endDate time.Time) (*models.DoctorSchedule, error) {
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("%w: schedule end must be after start", ErrValidation)
	}
	schedule := models.DoctorSchedule{
		DoctorID:  doctorID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.ScheduleActive,
	}
	if err := s.DB.Create(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListForDoctor returns every window declared by a doctor.
func (s *ScheduleService) ListForDoctor(doctorID string) ([]models.DoctorSchedule, error) {
	var schedules []models.DoctorSchedule
	err := s.DB.Where("doctor_id = ?", doctorID).Order("start_date asc").Find(&schedules).Error
	return schedules, err
}

// ScheduleWithDoctor is the admin view of a window, carrying the doctor name.
type ScheduleWithDoctor struct {
	models.DoctorSchedule
	DoctorName string `json:"doctorName"`
}

// ListWithDoctor returns a doctor's windows together with the doctor's name.
func (s *ScheduleService) ListWithDoctor(doctorID string) ([]ScheduleWithDoctor, error) {
	var schedules []models.DoctorSchedule
	if err := s.DB.Preload("Doctor").Where("doctor_id = ?", doctorID).
		Order("start_date asc").Find(&schedules).Error; err != nil {
		return nil, err
	}
	out := make([]ScheduleWithDoctor, len(schedules))
	for i, sch := range schedules {
		out[i] = ScheduleWithDoctor{DoctorSchedule: sch, DoctorName: sch.Doctor.FullName}
	}
	return out, nil
}

// Update replaces a window's bounds and status, scoped to the owning doctor.
func (s *ScheduleService) Update(scheduleID, doctorID string, startDate, endDate time.Time, status models.ScheduleStatus) error {
	schedule, err := s.getForDoctor(scheduleID, doctorID)
	if err != nil {
		return err
	}
	schedule.StartDate = startDate
	schedule.EndDate = endDate
	schedule.Status = status
	return s.DB.Save(schedule).Error
}

// UpdateByAdmin replaces a window's bounds and reactivates it.
func (s *ScheduleService) UpdateByAdmin(scheduleID string, startDate, endDate time.Time) error {
	schedule, err := s.get(scheduleID)
	if err != nil {
		return err
	}
	schedule.StartDate = startDate
	schedule.EndDate = endDate
	schedule.Status = models.ScheduleActive
	return s.DB.Save(schedule).Error
}

// Cancel marks a window cancelled. Completed windows cannot be cancelled.
func (s *ScheduleService) Cancel(scheduleID, doctorID string) error {
	schedule, err := s.getForDoctor(scheduleID, doctorID)
	if err != nil {
		return err
	}
	return s.cancel(schedule)
}

// CancelByAdmin marks any doctor's window cancelled.
func (s *ScheduleService) CancelByAdmin(scheduleID string) error {
	schedule, err := s.get(scheduleID)
	if err != nil {
		return err
	}
	return s.cancel(schedule)
}

// Complete marks a window completed. Cancelled windows cannot be completed.
func (s *ScheduleService) Complete(scheduleID, doctorID string) error {
	schedule, err := s.getForDoctor(scheduleID, doctorID)
	if err != nil {
		return err
	}
	return s.complete(schedule)
}

// CompleteByAdmin marks any doctor's window completed.
func (s *ScheduleService) CompleteByAdmin(scheduleID string) error {
	schedule, err := s.get(scheduleID)
	if err != nil {
		return err
	}
	return s.complete(schedule)
}

func (s *ScheduleService) cancel(schedule *models.DoctorSchedule) error {
	if schedule.Status == models.ScheduleCompleted {
		return fmt.Errorf("%w: schedule is already completed", ErrConflict)
	}
	if schedule.Status == models.ScheduleCancelled {
		return fmt.Errorf("%w: schedule is already cancelled", ErrConflict)
	}
	schedule.Status = models.ScheduleCancelled
	return s.DB.Save(schedule).Error
}

func (s *ScheduleService) complete(schedule *models.DoctorSchedule) error {
	if schedule.Status == models.ScheduleCancelled {
		return fmt.Errorf("%w: schedule is cancelled", ErrConflict)
	}
	schedule.Status = models.ScheduleCompleted
	return s.DB.Save(schedule).Error
}

func (s *ScheduleService) get(scheduleID string) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	if err := s.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: schedule %s", ErrNotFound, scheduleID)
		}
		return nil, err
	}
	return &schedule, nil
}

func (s *ScheduleService) getForDoctor(scheduleID, doctorID string) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	if err := s.DB.First(&schedule, "id = ? AND doctor_id = ?", scheduleID, doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: schedule %s", ErrNotFound, scheduleID)
		}
		return nil, err
	}
	return &schedule, nil
}
