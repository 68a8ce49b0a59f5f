package service

import (
	"testing"
	"time"

	"hospital-care-server/internal/models"
)

func TestMarkBillPaidOnce(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(db)

	doctor := seedDoctor(t, db, "dr.smith")
	patient := seedPatient(t, db, "alice")
	bill := models.Billing{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		ConsultationFee: 100,
		GrandTotal:      100,
		Status:          models.BillingPending,
		BillingDate:     time.Now(),
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("creating bill: %v", err)
	}

	if err := billing.MarkPaidByDoctor(bill.ID, doctor.ID); err != nil {
		t.Fatalf("marking pending bill paid: %v", err)
	}

	var reloaded models.Billing
	if err := db.First(&reloaded, "id = ?", bill.ID).Error; err != nil {
		t.Fatalf("reloading bill: %v", err)
	}
	if reloaded.Status != models.BillingPaid {
		t.Errorf("status after payment = %s, want Paid", reloaded.Status)
	}

	// Paid is terminal for both the doctor and the admin path.
	if err := billing.MarkPaidByDoctor(bill.ID, doctor.ID); !IsConflict(err) {
		t.Errorf("doctor re-paying paid bill: got %v, want conflict", err)
	}
	if err := billing.MarkPaidByAdmin(bill.ID); !IsConflict(err) {
		t.Errorf("admin re-paying paid bill: got %v, want conflict", err)
	}
}

func TestMarkBillPaidScopedToTreatingDoctor(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(db)

	doctor := seedDoctor(t, db, "dr.smith")
	other := seedDoctor(t, db, "dr.jones")
	patient := seedPatient(t, db, "alice")
	bill := models.Billing{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		GrandTotal:  50,
		Status:      models.BillingPending,
		BillingDate: time.Now(),
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("creating bill: %v", err)
	}

	if err := billing.MarkPaidByDoctor(bill.ID, other.ID); !IsNotFound(err) {
		t.Errorf("other doctor paying bill: got %v, want not-found", err)
	}
	if err := billing.MarkPaidByAdmin(bill.ID); err != nil {
		t.Errorf("admin paying bill: %v", err)
	}
}

func TestBillListingsCarryNames(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(db)

	doctor := seedDoctor(t, db, "dr.smith")
	patient := seedPatient(t, db, "alice")
	bill := models.Billing{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		GrandTotal:  75,
		Status:      models.BillingPending,
		BillingDate: time.Now(),
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("creating bill: %v", err)
	}

	forPatient, err := billing.ListForPatient(patient.ID)
	if err != nil {
		t.Fatalf("listing patient bills: %v", err)
	}
	if len(forPatient) != 1 {
		t.Fatalf("patient bills = %d, want 1", len(forPatient))
	}
	if forPatient[0].DoctorName != "dr.smith" || forPatient[0].PatientName != "alice" {
		t.Errorf("names = %q/%q, want dr.smith/alice",
			forPatient[0].DoctorName, forPatient[0].PatientName)
	}

	forDoctor, err := billing.ListForDoctor(doctor.ID)
	if err != nil {
		t.Fatalf("listing doctor bills: %v", err)
	}
	if len(forDoctor) != 1 {
		t.Fatalf("doctor bills = %d, want 1", len(forDoctor))
	}

	all, err := billing.ListAll()
	if err != nil {
		t.Fatalf("listing all bills: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("all bills = %d, want 1", len(all))
	}
}
