package service

import (
	"testing"
	"time"

	"hospital-care-server/internal/models"
)

func TestIsDoctorOnSchedule(t *testing.T) {
	db := newTestDB(t)
	schedules := NewScheduleService(db)
	doctor := seedDoctor(t, db, "dr.smith")

	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 17, 0, 0, 0, time.UTC)
	seedSchedule(t, db, doctor.ID, start, end, models.ScheduleActive)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside window", time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC), true},
		{"window start is inclusive", start, true},
		{"window end is inclusive", end, true},
		{"before window", start.Add(-time.Minute), false},
		{"after window", end.Add(time.Minute), false},
		{"different day", time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := schedules.IsDoctorOnSchedule(doctor.ID, tc.at)
			if err != nil {
				t.Fatalf("checking schedule: %v", err)
			}
			if got != tc.want {
				t.Errorf("IsDoctorOnSchedule(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestInactiveWindowsDoNotCount(t *testing.T) {
	db := newTestDB(t)
	schedules := NewScheduleService(db)
	doctor := seedDoctor(t, db, "dr.smith")

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedSchedule(t, db, doctor.ID, at.Add(-time.Hour), at.Add(time.Hour), models.ScheduleCancelled)
	seedSchedule(t, db, doctor.ID, at.Add(-time.Hour), at.Add(time.Hour), models.ScheduleCompleted)

	available, err := schedules.IsDoctorOnSchedule(doctor.ID, at)
	if err != nil {
		t.Fatalf("checking schedule: %v", err)
	}
	if available {
		t.Error("cancelled and completed windows must not accept bookings")
	}
}

func TestScheduleLifecycle(t *testing.T) {
	db := newTestDB(t)
	schedules := NewScheduleService(db)
	doctor := seedDoctor(t, db, "dr.smith")

	start := time.Now().Add(24 * time.Hour)
	schedule, err := schedules.Add(doctor.ID, start, start.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("adding schedule: %v", err)
	}
	if schedule.Status != models.ScheduleActive {
		t.Errorf("new schedule status = %s, want Scheduled", schedule.Status)
	}

	if err := schedules.Complete(schedule.ID, doctor.ID); err != nil {
		t.Fatalf("completing schedule: %v", err)
	}
	if err := schedules.Cancel(schedule.ID, doctor.ID); !IsConflict(err) {
		t.Errorf("cancelling completed schedule: got %v, want conflict", err)
	}

	other, err := schedules.Add(doctor.ID, start, start.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("adding schedule: %v", err)
	}
	if err := schedules.Cancel(other.ID, doctor.ID); err != nil {
		t.Fatalf("cancelling schedule: %v", err)
	}
	if err := schedules.Complete(other.ID, doctor.ID); !IsConflict(err) {
		t.Errorf("completing cancelled schedule: got %v, want conflict", err)
	}
	if err := schedules.Cancel(other.ID, doctor.ID); !IsConflict(err) {
		t.Errorf("double cancel: got %v, want conflict", err)
	}
}

func TestScheduleAddRejectsInvertedWindow(t *testing.T) {
	db := newTestDB(t)
	schedules := NewScheduleService(db)
	doctor := seedDoctor(t, db, "dr.smith")

	start := time.Now().Add(24 * time.Hour)
	if _, err := schedules.Add(doctor.ID, start, start.Add(-time.Hour)); !IsValidation(err) {
		t.Fatalf("adding inverted window: got %v, want validation error", err)
	}
}

func TestScheduleScopedToOwningDoctor(t *testing.T) {
	db := newTestDB(t)
	schedules := NewScheduleService(db)
	doctor := seedDoctor(t, db, "dr.smith")
	other := seedDoctor(t, db, "dr.jones")

	start := time.Now().Add(24 * time.Hour)
	schedule, err := schedules.Add(doctor.ID, start, start.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("adding schedule: %v", err)
	}

	if err := schedules.Cancel(schedule.ID, other.ID); !IsNotFound(err) {
		t.Errorf("cancelling another doctor's schedule: got %v, want not-found", err)
	}

	// The admin path reaches any schedule.
	if err := schedules.CancelByAdmin(schedule.ID); err != nil {
		t.Errorf("admin cancelling schedule: %v", err)
	}
}

func TestUpdateByAdminReactivatesWindow(t *testing.T) {
	db := newTestDB(t)
	schedules := NewScheduleService(db)
	doctor := seedDoctor(t, db, "dr.smith")

	start := time.Now().Add(24 * time.Hour)
	schedule, err := schedules.Add(doctor.ID, start, start.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("adding schedule: %v", err)
	}
	if err := schedules.Cancel(schedule.ID, doctor.ID); err != nil {
		t.Fatalf("cancelling schedule: %v", err)
	}

	newStart := start.Add(48 * time.Hour)
	if err := schedules.UpdateByAdmin(schedule.ID, newStart, newStart.Add(4*time.Hour)); err != nil {
		t.Fatalf("admin updating schedule: %v", err)
	}

	var reloaded models.DoctorSchedule
	if err := db.First(&reloaded, "id = ?", schedule.ID).Error; err != nil {
		t.Fatalf("reloading schedule: %v", err)
	}
	if reloaded.Status != models.ScheduleActive {
		t.Errorf("status after admin update = %s, want Scheduled", reloaded.Status)
	}
}
